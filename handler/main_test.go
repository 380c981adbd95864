package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"mission_manager/database"
	"mission_manager/helper"
	"mission_manager/model"
	"mission_manager/router"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestApp wires the real routes against a throwaway sqlite database.
// _txlock=immediate makes every transaction a writer from the start, so the
// concurrent booking tests exercise real serialization instead of deadlocks.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s/test.db?_busy_timeout=5000&_txlock=immediate", t.TempDir())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	app := fiber.New()
	router.SetupRoutes(app)
	return app
}

func createTestUser(t *testing.T, email string) (model.User, string) {
	t.Helper()

	hash, err := helper.HashPassword("Secret1")
	require.NoError(t, err)

	user := model.User{
		FirstName:  "Neil",
		LastName:   "Armstrong",
		Patronymic: "Alden",
		Email:      email,
		Password:   hash,
		IsActive:   true,
	}
	require.NoError(t, database.DB.Create(&user).Error)

	token, err := helper.GenerateAccessToken(model.TokenClaim{UserId: user.ID, Email: user.Email})
	require.NoError(t, err)
	return user, token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func decodeList(t *testing.T, resp *http.Response) []any {
	t.Helper()

	var out []any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func missionBody(name string) map[string]any {
	return map[string]any{
		"mission": map[string]any{
			"name": name,
			"launch_details": map[string]any{
				"launch_date": "1969-07-16",
				"launch_site": map[string]any{
					"name": "Kennedy Space Center LC-39A",
					"location": map[string]any{
						"latitude":  "28.6080585",
						"longitude": "-80.6039558",
					},
				},
			},
			"landing_details": map[string]any{
				"landing_date": "1969-07-24",
				"landing_site": map[string]any{
					"name": "Sea of Tranquility",
					"coordinates": map[string]any{
						"latitude":  "0.6875000",
						"longitude": "23.4333333",
					},
				},
			},
			"spacecraft": map[string]any{
				"command_module": "Columbia",
				"lunar_module":   "Eagle",
				"crew": []map[string]any{
					{"name": "Neil Armstrong", "role": "Commander"},
					{"name": "Buzz Aldrin", "role": "Lunar Module Pilot"},
					{"name": "Michael Collins", "role": "Command Module Pilot"},
				},
			},
		},
	}
}
