package utils

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	var errMsg interface{}
	if err != nil {
		errMsg = err.Error()
	} else {
		errMsg = nil
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   errMsg,
	})
}

// SuccessResponse wraps payloads in the {"data": ...} envelope every read
// endpoint uses.
func SuccessResponse(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"data": data,
	})
}

// ValidationErrorResponse emits the structured error contract: a code, a
// generic message and per-field message lists keyed by field path.
func ValidationErrorResponse(c *fiber.Ctx, errs map[string][]string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    fiber.StatusUnprocessableEntity,
			"message": "Validation error",
			"errors":  errs,
		},
	})
}

func FieldError(field string, messages ...string) map[string][]string {
	return map[string][]string{field: messages}
}

func NotFoundResponse(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": "Not found",
		"code":    fiber.StatusNotFound,
	})
}

func ConflictResponse(c *fiber.Ctx, field string, message string) error {
	return c.Status(fiber.StatusConflict).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    fiber.StatusConflict,
			"message": "Conflict",
			"errors":  FieldError(field, message),
		},
	})
}

func ApplyPagination(query *gorm.DB, limit, page *int) *gorm.DB {
	if limit != nil && *limit > 0 && page != nil && *page >= 1 {
		query = query.Limit(*limit)
		offset := *limit * (*page - 1)
		query = query.Offset(offset)
	}

	return query
}

func Ptr[T any](v T) *T {
	return &v
}
