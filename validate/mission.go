package validate

import (
	"mission_manager/model"
	"mission_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func missionPayload(c *fiber.Ctx) (model.MissionInput, bool, error) {
	var payload model.MissionPayload
	if err := c.BodyParser(&payload); err != nil {
		return model.MissionInput{}, false, utils.ValidationErrorResponse(c, utils.FieldError("body", "invalid request body"))
	}

	if err := validate.Struct(payload); err != nil {
		return model.MissionInput{}, false, utils.ValidationErrorResponse(c, fieldErrors(err))
	}

	return payload.Mission, true, nil
}

// CreateMission and UpdateMission share the same payload: an update is a
// full in-place rewrite of the aggregate, never a partial patch.
func CreateMission() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, ok, err := missionPayload(c)
		if !ok {
			return err
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func UpdateMission() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, ok, err := missionPayload(c)
		if !ok {
			return err
		}
		c.Locals("input", input)
		return c.Next()
	}
}
