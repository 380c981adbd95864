package model

import "time"

type SpaceFlight struct {
	DTO
	FlightNumber   string    `gorm:"size:50;uniqueIndex;not null" json:"flight_number"`
	Destination    string    `gorm:"size:100;not null" json:"destination"`
	LaunchDate     time.Time `gorm:"not null" json:"launch_date"`
	SeatsAvailable int       `gorm:"not null;check:seats_available >= 0" json:"seats_available"`
	Status         string    `gorm:"size:20;not null;default:'SCHEDULED'" json:"status"`
}

type FlightBooking struct {
	DTO
	PublicCode  string      `gorm:"size:20;uniqueIndex" json:"publicCode"`
	FlightID    uint        `gorm:"uniqueIndex:idx_booking_flight_user;not null" json:"flightId"`
	UserID      uint        `gorm:"uniqueIndex:idx_booking_flight_user;not null" json:"userId"`
	BookingDate time.Time   `gorm:"not null" json:"booking_date"`
	Flight      SpaceFlight `gorm:"foreignKey:FlightID" json:"-"`
	User        User        `gorm:"foreignKey:UserID" json:"-"`
}

type CreateFlightInput struct {
	FlightNumber   string `json:"flight_number" validate:"required,max=50"`
	Destination    string `json:"destination" validate:"required,max=100"`
	LaunchDate     string `json:"launch_date" validate:"required"`
	SeatsAvailable *int   `json:"seats_available" validate:"required,min=0"`
}

type BookFlightInput struct {
	FlightNumber string `json:"flight_number" validate:"required"`
}
