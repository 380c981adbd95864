package handler_test

import (
	"net/http"
	"testing"

	"mission_manager/database"
	"mission_manager/handler"
	"mission_manager/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerBody() map[string]any {
	return map[string]any{
		"first_name": "Neil",
		"last_name":  "Armstrong",
		"patronymic": "Alden",
		"email":      "neil@mission.local",
		"password":   "Secret1",
		"birth_date": "1930-08-05",
	}
}

func TestRegister(t *testing.T) {
	app := setupTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/registration", "", registerBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := decodeBody(t, resp)["data"].(map[string]any)
	user := data["user"].(map[string]any)
	assert.Equal(t, "Armstrong Neil Alden", user["name"])
	assert.Equal(t, "neil@mission.local", user["email"])

	var stored model.User
	require.NoError(t, database.DB.Where("email = ?", "neil@mission.local").First(&stored).Error)
	assert.True(t, stored.IsActive)
	assert.NotEqual(t, "Secret1", stored.Password)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := setupTestApp(t)

	require.Equal(t, http.StatusCreated,
		doJSON(t, app, http.MethodPost, "/api/v1/registration", "", registerBody()).StatusCode)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/registration", "", registerBody())
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	errs := decodeBody(t, resp)["error"].(map[string]any)["errors"].(map[string]any)
	msgs := errs["email"].([]any)
	assert.Equal(t, "Email already exists", msgs[0])
}

func TestRegisterDuplicateEmailRace(t *testing.T) {
	setupTestApp(t)
	createTestUser(t, "race@mission.local")

	// a concurrent registration that passed the pre-check before the first
	// insert committed: hand the handler its input directly, so the unique
	// index is the only guard left
	app := fiber.New()
	app.Post("/registration", func(c *fiber.Ctx) error {
		c.Locals("input", model.RegisterInput{
			FirstName:  "Neil",
			LastName:   "Armstrong",
			Patronymic: "Alden",
			Email:      "race@mission.local",
			Password:   "Secret1",
			BirthDate:  "1930-08-05",
		})
		return c.Next()
	}, handler.Register)

	resp := doJSON(t, app, http.MethodPost, "/registration", "", map[string]any{})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	errs := decodeBody(t, resp)["error"].(map[string]any)["errors"].(map[string]any)
	msgs := errs["email"].([]any)
	assert.Equal(t, "Email already exists", msgs[0])
}

func TestRegisterWeakPassword(t *testing.T) {
	app := setupTestApp(t)

	for _, password := range []string{"ab", "secret1", "SECRET1", "Secretx"} {
		body := registerBody()
		body["password"] = password
		resp := doJSON(t, app, http.MethodPost, "/api/v1/registration", "", body)
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, "password %q", password)

		errs := decodeBody(t, resp)["error"].(map[string]any)["errors"].(map[string]any)
		assert.Contains(t, errs, "password")
	}

	var count int64
	database.DB.Model(&model.User{}).Count(&count)
	assert.Zero(t, count)
}

func TestRegisterLowercaseName(t *testing.T) {
	app := setupTestApp(t)

	body := registerBody()
	body["first_name"] = "neil"
	resp := doJSON(t, app, http.MethodPost, "/api/v1/registration", "", body)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	errs := decodeBody(t, resp)["error"].(map[string]any)["errors"].(map[string]any)
	msgs := errs["first_name"].([]any)
	assert.Equal(t, "must start with a capital letter", msgs[0])
}

func TestRegisterMissingFields(t *testing.T) {
	app := setupTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/registration", "", map[string]any{"email": "x@mission.local"})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	errs := decodeBody(t, resp)["error"].(map[string]any)["errors"].(map[string]any)
	assert.Contains(t, errs, "first_name")
	assert.Contains(t, errs, "password")
	assert.Contains(t, errs, "birth_date")
}

func TestLogin(t *testing.T) {
	app := setupTestApp(t)

	require.Equal(t, http.StatusCreated,
		doJSON(t, app, http.MethodPost, "/api/v1/registration", "", registerBody()).StatusCode)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/authorization", "", map[string]any{
		"email":    "neil@mission.local",
		"password": "Secret1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeBody(t, resp)["data"].(map[string]any)
	assert.NotEmpty(t, data["token"])
	user := data["user"].(map[string]any)
	assert.Equal(t, "Armstrong Neil Alden", user["name"])
	assert.Equal(t, "1930-08-05", user["birth_date"])
}

func TestLoginWrongPassword(t *testing.T) {
	app := setupTestApp(t)

	require.Equal(t, http.StatusCreated,
		doJSON(t, app, http.MethodPost, "/api/v1/registration", "", registerBody()).StatusCode)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/authorization", "", map[string]any{
		"email":    "neil@mission.local",
		"password": "Wrong1x",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Login failed", decodeBody(t, resp)["message"])
}

func TestLoginUnknownEmail(t *testing.T) {
	app := setupTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/authorization", "", map[string]any{
		"email":    "nobody@mission.local",
		"password": "Secret1",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Login failed", decodeBody(t, resp)["message"])
}

func TestMe(t *testing.T) {
	app := setupTestApp(t)
	user, token := createTestUser(t, "me@mission.local")

	resp := doJSON(t, app, http.MethodGet, "/api/v1/account/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeBody(t, resp)["data"].(map[string]any)
	assert.Equal(t, float64(user.ID), data["id"])
	assert.Equal(t, "me@mission.local", data["email"])
}

func TestMeRequiresToken(t *testing.T) {
	app := setupTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/account/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
