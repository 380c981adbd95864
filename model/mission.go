package model

import "time"

// Latitude/Longitude stay strings end to end: values are decimal(10,7)
// fixed-precision, validated on input, and stored in a text column so the
// scale (trailing zeros included) survives storage on every driver.
type LunarCoordinates struct {
	DTO
	Latitude  string `gorm:"size:12;not null" json:"latitude"`
	Longitude string `gorm:"size:12;not null" json:"longitude"`
}

type LaunchSite struct {
	DTO
	Name       string           `gorm:"size:200;not null" json:"name"`
	LocationID uint             `json:"-"`
	Location   LunarCoordinates `gorm:"foreignKey:LocationID" json:"location"`
}

type LandingSite struct {
	DTO
	Name          string           `gorm:"size:200;not null" json:"name"`
	CoordinatesID uint             `json:"-"`
	Coordinates   LunarCoordinates `gorm:"foreignKey:CoordinatesID" json:"coordinates"`
}

type CrewMember struct {
	DTO
	Name string `gorm:"size:200;not null" json:"name"`
	Role string `gorm:"size:100;not null" json:"role"`
}

type Spacecraft struct {
	DTO
	CommandModule string       `gorm:"size:200;not null" json:"command_module"`
	LunarModule   string       `gorm:"size:200;not null" json:"lunar_module"`
	Crew          []CrewMember `gorm:"many2many:spacecraft_crew" json:"crew"`
}

type LaunchDetails struct {
	DTO
	MissionID    uint       `gorm:"uniqueIndex" json:"-"`
	LaunchDate   time.Time  `gorm:"not null" json:"launch_date"`
	LaunchSiteID uint       `json:"-"`
	LaunchSite   LaunchSite `gorm:"foreignKey:LaunchSiteID" json:"launch_site"`
}

type LandingDetails struct {
	DTO
	MissionID     uint        `gorm:"uniqueIndex" json:"-"`
	LandingDate   time.Time   `gorm:"not null" json:"landing_date"`
	LandingSiteID uint        `json:"-"`
	LandingSite   LandingSite `gorm:"foreignKey:LandingSiteID" json:"landing_site"`
}

// LunarMission is the aggregate root. Name is the external identifier,
// Version guards concurrent in-place updates.
type LunarMission struct {
	DTO
	Name           string         `gorm:"size:200;uniqueIndex;not null" json:"name"`
	Slug           string         `gorm:"size:220;uniqueIndex" json:"slug"`
	SpacecraftID   uint           `json:"-"`
	Spacecraft     Spacecraft     `gorm:"foreignKey:SpacecraftID" json:"spacecraft"`
	Version        uint           `gorm:"not null;default:1" json:"-"`
	LaunchDetails  LaunchDetails  `gorm:"foreignKey:MissionID" json:"launch_details"`
	LandingDetails LandingDetails `gorm:"foreignKey:MissionID" json:"landing_details"`
}

type CoordinatesInput struct {
	Latitude  string `json:"latitude" validate:"required,lunar_decimal"`
	Longitude string `json:"longitude" validate:"required,lunar_decimal"`
}

type LaunchSiteInput struct {
	Name     string           `json:"name" validate:"required,max=200"`
	Location CoordinatesInput `json:"location"`
}

type LandingSiteInput struct {
	Name        string           `json:"name" validate:"required,max=200"`
	Coordinates CoordinatesInput `json:"coordinates"`
}

type LaunchDetailsInput struct {
	LaunchDate string          `json:"launch_date" validate:"required,mission_date"`
	LaunchSite LaunchSiteInput `json:"launch_site"`
}

type LandingDetailsInput struct {
	LandingDate string           `json:"landing_date" validate:"required,mission_date"`
	LandingSite LandingSiteInput `json:"landing_site"`
}

type CrewMemberInput struct {
	Name string `json:"name" validate:"required,max=200"`
	Role string `json:"role" validate:"required,max=100"`
}

type SpacecraftInput struct {
	CommandModule string            `json:"command_module" validate:"required,max=200"`
	LunarModule   string            `json:"lunar_module" validate:"required,max=200"`
	Crew          []CrewMemberInput `json:"crew" validate:"required,min=1,dive"`
}

type MissionInput struct {
	Name           string              `json:"name" validate:"required,max=200"`
	LaunchDetails  LaunchDetailsInput  `json:"launch_details"`
	LandingDetails LandingDetailsInput `json:"landing_details"`
	Spacecraft     SpacecraftInput     `json:"spacecraft"`
}

type MissionPayload struct {
	Mission MissionInput `json:"mission"`
}
