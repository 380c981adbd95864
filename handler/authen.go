package handler

import (
	"errors"

	"mission_manager/constants"
	"mission_manager/database"
	"mission_manager/helper"
	"mission_manager/model"
	"mission_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func Register(c *fiber.Ctx) error {
	input := c.Locals("input").(model.RegisterInput)

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	birthDate, err := utils.ParseDate(input.BirthDate)
	if err != nil {
		return utils.ValidationErrorResponse(c, utils.FieldError("birth_date", "must be a date in YYYY-MM-DD format"))
	}

	var newUser model.User
	copier.Copy(&newUser, &input)
	newUser.Password = hash
	newUser.BirthDate = birthDate
	newUser.IsActive = true

	if err := database.DB.Create(&newUser).Error; err != nil {
		// concurrent registration slipped past the middleware pre-check
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.ValidationErrorResponse(c, utils.FieldError("email", constants.EMAIL_EXISTS))
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": fiber.Map{
				"name":  newUser.FullName(),
				"email": newUser.Email,
			},
			"code":    fiber.StatusCreated,
			"message": "User created",
		},
	})
}

func Login(c *fiber.Ctx) error {
	input := c.Locals("input").(model.LoginInput)

	user, err := helper.GetUserByEmail(input.Email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if user == nil || !helper.CheckPasswordHash(input.Password, user.Password) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": constants.LOGIN_FAILED,
		})
	}
	if !user.IsActive {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": constants.LOGIN_FAILED,
		})
	}

	tokenClaim := model.TokenClaim{
		UserId: user.ID,
		Email:  user.Email,
	}
	token, err := helper.GenerateAccessToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	refreshToken, err := helper.GenerateRefreshToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		HTTPOnly: true,
		SameSite: "None",
		Path:     "/",
	})

	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		SameSite: "None",
		Path:     "/",
	})

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": fiber.Map{
				"id":         user.ID,
				"name":       user.FullName(),
				"birth_date": utils.FormatDate(user.BirthDate),
				"email":      user.Email,
			},
			"token": token,
		},
	})
}

func RefreshToken(c *fiber.Ctx) error {
	tokenString := c.Cookies("refresh_token")
	if tokenString == "" {
		type refreshRequest struct {
			RefreshToken string `json:"refreshToken"`
		}
		var req refreshRequest
		if err := c.BodyParser(&req); err == nil {
			tokenString = req.RefreshToken
		}
	}
	if tokenString == "" {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.LOGIN_FAILED, errors.New("no refresh token"))
	}

	token, err := helper.ParseToken(tokenString)
	if err != nil || !token.Valid {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.LOGIN_FAILED, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.LOGIN_FAILED, errors.New("unexpected claims"))
	}
	userId, _ := claims["userId"].(float64)
	email, _ := claims["email"].(string)

	accessToken, err := helper.GenerateAccessToken(model.TokenClaim{UserId: uint(userId), Email: email})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		HTTPOnly: true,
		SameSite: "None",
		Path:     "/",
	})

	return utils.SuccessResponse(c, fiber.StatusOK, model.TokenData{AccessToken: accessToken})
}

func Me(c *fiber.Ctx) error {
	user, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.LOGIN_FAILED, err)
	}
	if user == nil {
		return utils.NotFoundResponse(c)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"id":         user.ID,
		"name":       user.FullName(),
		"email":      user.Email,
		"birth_date": utils.FormatDate(user.BirthDate),
	})
}
