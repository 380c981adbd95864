package handler

import (
	"encoding/base64"
	"errors"
	"log"
	"time"

	"mission_manager/constants"
	"mission_manager/database"
	"mission_manager/helper"
	"mission_manager/model"
	"mission_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// GetFlights is a public listing, no token required. limit/page paginate;
// without them the full schedule comes back.
func GetFlights(c *fiber.Ctx) error {
	limit := c.QueryInt("limit")
	page := c.QueryInt("page", 1)

	query := utils.ApplyPagination(database.DB.Order("id"), utils.Ptr(limit), utils.Ptr(page))

	var flights []model.SpaceFlight
	if err := query.Find(&flights).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	response := make([]fiber.Map, 0, len(flights))
	for _, flight := range flights {
		response = append(response, fiber.Map{
			"flight_number":   flight.FlightNumber,
			"destination":     flight.Destination,
			"launch_date":     utils.FormatDate(flight.LaunchDate),
			"seats_available": flight.SeatsAvailable,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func CreateFlight(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateFlightInput)
	db := database.DB

	launchDate, err := utils.ParseDate(input.LaunchDate)
	if err != nil {
		return utils.ValidationErrorResponse(c, utils.FieldError("launch_date", "must be a date in YYYY-MM-DD format"))
	}

	var count int64
	db.Model(&model.SpaceFlight{}).Where("flight_number = ?", input.FlightNumber).Count(&count)
	if count > 0 {
		return utils.ConflictResponse(c, "flight_number", constants.FLIGHT_NUMBER_EXISTS)
	}

	var flight model.SpaceFlight
	copier.Copy(&flight, &input)
	flight.LaunchDate = launchDate
	flight.SeatsAvailable = *input.SeatsAvailable
	flight.Status = constants.FLIGHT_SCHEDULED

	if err := db.Create(&flight).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.ConflictResponse(c, "flight_number", constants.FLIGHT_NUMBER_EXISTS)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"code":    fiber.StatusCreated,
			"message": "Space flight created",
		},
	})
}

// BookFlight is the one concurrency-sensitive write. The booking insert is
// backstopped by the (flight, user) unique index and the decrement is a
// guarded compare-and-swap: UPDATE ... WHERE seats_available > 0. Under N
// concurrent callers against K remaining seats, exactly K commits land; the
// rest roll back with no seat ever going negative.
func BookFlight(c *fiber.Ctx) error {
	input := c.Locals("input").(model.BookFlightInput)
	db := database.DB

	user, err := helper.GetUserFromToken(c)
	if err != nil || user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.LOGIN_FAILED, err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, tx.Error)
	}

	var flight model.SpaceFlight
	if err := tx.Where("flight_number = ?", input.FlightNumber).First(&flight).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundResponse(c)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if flight.SeatsAvailable <= 0 {
		tx.Rollback()
		return utils.ValidationErrorResponse(c, utils.FieldError("flight", constants.NO_SEATS_AVAILABLE))
	}

	var existing int64
	if err := tx.Model(&model.FlightBooking{}).
		Where("flight_id = ? AND user_id = ?", flight.ID, user.ID).
		Count(&existing).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if existing > 0 {
		tx.Rollback()
		return utils.ValidationErrorResponse(c, utils.FieldError("flight", constants.ALREADY_BOOKED))
	}

	booking := model.FlightBooking{
		PublicCode:  "BKG-" + uuid.New().String()[:8],
		FlightID:    flight.ID,
		UserID:      user.ID,
		BookingDate: time.Now(),
	}
	if err := tx.Create(&booking).Error; err != nil {
		tx.Rollback()
		// concurrent duplicate slipped past the pre-check
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.ValidationErrorResponse(c, utils.FieldError("flight", constants.ALREADY_BOOKED))
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	result := tx.Model(&model.SpaceFlight{}).
		Where("id = ? AND seats_available > 0", flight.ID).
		UpdateColumn("seats_available", gorm.Expr("seats_available - 1"))
	if result.Error != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}
	if result.RowsAffected == 0 {
		// another booking took the last seat between our read and the CAS
		tx.Rollback()
		return utils.ValidationErrorResponse(c, utils.FieldError("flight", constants.NO_SEATS_AVAILABLE))
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	go publishSeatUpdate(flight.ID)

	utils.SendBookingConfirmationEmail(user.Email, utils.BookingConfirmationData{
		BookingCode:  booking.PublicCode,
		FlightNumber: flight.FlightNumber,
		Destination:  flight.Destination,
		LaunchDate:   utils.FormatDate(flight.LaunchDate),
		FullName:     user.FullName(),
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"code":        fiber.StatusCreated,
			"message":     "Flight booked",
			"bookingCode": booking.PublicCode,
		},
	})
}

func GetMyBookings(c *fiber.Ctx) error {
	user, err := helper.GetUserFromToken(c)
	if err != nil || user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.LOGIN_FAILED, err)
	}

	var bookings []model.FlightBooking
	if err := database.DB.
		Preload("Flight").
		Where("user_id = ?", user.ID).
		Order("id").
		Find(&bookings).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	response := make([]fiber.Map, 0, len(bookings))
	for _, booking := range bookings {
		qrBase64 := ""
		qrBytes, err := utils.GenerateBoardingQR(booking.PublicCode, 400)
		if err != nil {
			log.Printf("failed to render boarding QR for %s: %v", booking.PublicCode, err)
		} else {
			qrBase64 = "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrBytes)
		}

		response = append(response, fiber.Map{
			"bookingCode":  booking.PublicCode,
			"flightNumber": booking.Flight.FlightNumber,
			"destination":  booking.Flight.Destination,
			"launchDate":   utils.FormatDate(booking.Flight.LaunchDate),
			"bookingDate":  utils.FormatDate(booking.BookingDate),
			"qrCode":       qrBase64,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, response)
}
