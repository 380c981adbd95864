package validate

import (
	"mission_manager/model"
	"mission_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateFlight() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateFlightInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ValidationErrorResponse(c, utils.FieldError("body", "invalid request body"))
		}

		if err := validate.Struct(input); err != nil {
			return utils.ValidationErrorResponse(c, fieldErrors(err))
		}

		launchDate, err := utils.ParseDate(input.LaunchDate)
		if err != nil {
			return utils.ValidationErrorResponse(c, utils.FieldError("launch_date", "must be a date in YYYY-MM-DD format"))
		}
		if utils.BeforeToday(launchDate) {
			return utils.ValidationErrorResponse(c, utils.FieldError("launch_date", "must not be earlier than the current date"))
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func BookFlight() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.BookFlightInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ValidationErrorResponse(c, utils.FieldError("body", "invalid request body"))
		}

		if err := validate.Struct(input); err != nil {
			return utils.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("input", input)
		return c.Next()
	}
}
