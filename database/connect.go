package database

import (
	"fmt"
	"strconv"

	"mission_manager/config"
	"mission_manager/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	p := config.Config("DB_PORT")
	port, err := strconv.ParseUint(p, 10, 32)

	if err != nil {
		panic("failed to parse database port")
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", config.Config("DB_HOST"), port, config.Config("DB_USER"), config.Config("DB_PASSWORD"), config.Config("DB_NAME"))
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})

	if err != nil {
		panic("failed to connect database")
	}

	fmt.Println("Connection Opened to Database")
	if err := Migrate(DB); err != nil {
		panic("failed to migrate database")
	}
	fmt.Println("Database Migrated")

	SeedData(DB)
}

// Migrate is shared with the test setup so both run the same schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.LunarCoordinates{},
		&model.LaunchSite{},
		&model.LandingSite{},
		&model.CrewMember{},
		&model.Spacecraft{},
		&model.LunarMission{},
		&model.LaunchDetails{},
		&model.LandingDetails{},
		&model.SpaceFlight{},
		&model.FlightBooking{},
		&model.WatermarkedImage{},
	)
}
