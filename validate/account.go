package validate

import (
	"mission_manager/constants"
	"mission_manager/helper"
	"mission_manager/model"
	"mission_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.RegisterInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ValidationErrorResponse(c, utils.FieldError("body", "invalid request body"))
		}

		if err := validate.Struct(input); err != nil {
			return utils.ValidationErrorResponse(c, fieldErrors(err))
		}

		errs := make(map[string][]string)
		if !helper.ValidPassword(input.Password) {
			errs["password"] = append(errs["password"], constants.WEAK_PASSWORD)
		}
		if !helper.StartsWithCapital(input.FirstName) {
			errs["first_name"] = append(errs["first_name"], "must start with a capital letter")
		}
		if !helper.StartsWithCapital(input.LastName) {
			errs["last_name"] = append(errs["last_name"], "must start with a capital letter")
		}
		if !helper.StartsWithCapital(input.Patronymic) {
			errs["patronymic"] = append(errs["patronymic"], "must start with a capital letter")
		}
		if _, err := utils.ParseDate(input.BirthDate); err != nil {
			errs["birth_date"] = append(errs["birth_date"], "must be a date in YYYY-MM-DD format")
		}
		if len(errs) > 0 {
			return utils.ValidationErrorResponse(c, errs)
		}

		existing, err := helper.GetUserByEmail(input.Email)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if existing != nil {
			return utils.ValidationErrorResponse(c, utils.FieldError("email", constants.EMAIL_EXISTS))
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.LoginInput
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
