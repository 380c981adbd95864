package helper

import (
	"log"
	"time"

	"mission_manager/constants"
	"mission_manager/database"
	"mission_manager/model"

	"github.com/robfig/cron/v3"
)

var flightScheduler *cron.Cron

func StartFlightScheduler() {
	flightScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := flightScheduler.AddFunc("*/5 * * * *", markDepartedFlights)
	if err != nil {
		log.Printf("failed to start flight scheduler: %v", err)
		return
	}

	flightScheduler.Start()
	log.Println("flight departure scheduler started (every 5 minutes)")
}

// markDepartedFlights flips SCHEDULED flights whose launch date has passed.
func markDepartedFlights() {
	now := time.Now()
	result := database.DB.Model(&model.SpaceFlight{}).
		Where("status = ? AND launch_date < ?", constants.FLIGHT_SCHEDULED, now).
		Update("status", constants.FLIGHT_DEPARTED)

	if result.Error != nil {
		log.Printf("failed to mark departed flights: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("marked %d flights as departed", result.RowsAffected)
	}
}

func StopFlightScheduler() {
	if flightScheduler != nil {
		flightScheduler.Stop()
	}
}
