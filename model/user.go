package model

import (
	"fmt"
	"time"
)

type User struct {
	DTO
	FirstName  string    `gorm:"size:100;not null" json:"first_name"`
	LastName   string    `gorm:"size:100;not null" json:"last_name"`
	Patronymic string    `gorm:"size:100;not null" json:"patronymic"`
	Email      string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"not null" json:"-"`
	BirthDate  time.Time `json:"birth_date"`
	IsActive   bool      `gorm:"default:true" json:"isActive"`
}

// FullName renders "Last First Patronymic", the display order the API uses.
func (u User) FullName() string {
	return fmt.Sprintf("%s %s %s", u.LastName, u.FirstName, u.Patronymic)
}

type RegisterInput struct {
	FirstName  string `json:"first_name" validate:"required,max=100"`
	LastName   string `json:"last_name" validate:"required,max=100"`
	Patronymic string `json:"patronymic" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Password   string `json:"password" validate:"required"`
	BirthDate  string `json:"birth_date" validate:"required"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
