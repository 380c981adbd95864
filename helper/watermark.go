package helper

import (
	"log"
	"time"

	"mission_manager/database"
	"mission_manager/model"

	"github.com/go-co-op/gocron/v2"
)

var watermarkScheduler gocron.Scheduler

const watermarkRetention = 30 * 24 * time.Hour

func cleanupOldWatermarks() {
	cutoff := time.Now().Add(-watermarkRetention)
	result := database.DB.
		Where("created_at < ?", cutoff).
		Delete(&model.WatermarkedImage{})

	if result.Error != nil {
		log.Printf("failed to clean up watermark images: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("removed %d expired watermark images", result.RowsAffected)
	}
}

func StartWatermarkCleanupScheduler() {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal(err)
	}

	watermarkScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(cleanupOldWatermarks),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("watermark cleanup scheduler started (daily 00:05)")
}

func StopWatermarkCleanupScheduler() {
	if watermarkScheduler != nil {
		_ = watermarkScheduler.Shutdown()
	}
}
