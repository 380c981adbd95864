package database

import (
	"log"
	"time"

	"mission_manager/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func parseDate(dateStr string) time.Time {
	t, _ := time.Parse("2006-01-02", dateStr)
	return t
}

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("Admin123"), 10)
	hashPassword := string(bytes)
	if err != nil {
		log.Println("failed to hash seed password:", err)
		return
	}

	users := []model.User{
		{
			FirstName:  "Mission",
			LastName:   "Control",
			Patronymic: "Admin",
			Email:      "admin@mission.local",
			Password:   hashPassword,
			BirthDate:  parseDate("1970-01-01"),
			IsActive:   true,
		},
	}

	for _, user := range users {
		if err := db.Where(model.User{Email: user.Email}).FirstOrCreate(&user).Error; err != nil {
			log.Println("failed to seed user:", user.Email, "error:", err)
		}
	}
}
