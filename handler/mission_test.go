package handler_test

import (
	"net/http"
	"net/url"
	"testing"

	"mission_manager/database"
	"mission_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missionPath(name string) string {
	return "/api/v1/lunar-missions/" + url.PathEscape(name)
}

func TestCreateMissionRoundTrip(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestUser(t, "roundtrip@mission.local")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/lunar-missions/", token, missionBody("Apollo 11"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, missionPath("Apollo 11"), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)

	mission := body["mission"].(map[string]any)
	assert.Equal(t, "Apollo 11", mission["name"])

	launch := mission["launch_details"].(map[string]any)
	assert.Equal(t, "1969-07-16", launch["launch_date"])
	launchSite := launch["launch_site"].(map[string]any)
	assert.Equal(t, "Kennedy Space Center LC-39A", launchSite["name"])
	location := launchSite["location"].(map[string]any)
	assert.Equal(t, "28.6080585", location["latitude"])
	assert.Equal(t, "-80.6039558", location["longitude"])

	landing := mission["landing_details"].(map[string]any)
	assert.Equal(t, "1969-07-24", landing["landing_date"])
	landingSite := landing["landing_site"].(map[string]any)
	assert.Equal(t, "Sea of Tranquility", landingSite["name"])
	coords := landingSite["coordinates"].(map[string]any)
	assert.Equal(t, "0.6875000", coords["latitude"])
	assert.Equal(t, "23.4333333", coords["longitude"])

	spacecraft := mission["spacecraft"].(map[string]any)
	assert.Equal(t, "Columbia", spacecraft["command_module"])
	assert.Equal(t, "Eagle", spacecraft["lunar_module"])

	crew := spacecraft["crew"].([]any)
	require.Len(t, crew, 3)
	first := crew[0].(map[string]any)
	assert.Equal(t, "Neil Armstrong", first["name"])
	assert.Equal(t, "Commander", first["role"])
}

func TestCreateMissionValidationFieldPaths(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestUser(t, "validation@mission.local")

	body := missionBody("Apollo 12")
	mission := body["mission"].(map[string]any)
	spacecraft := mission["spacecraft"].(map[string]any)
	spacecraft["crew"] = []map[string]any{{"name": "Pete Conrad"}}
	launch := mission["launch_details"].(map[string]any)
	site := launch["launch_site"].(map[string]any)
	site["location"] = map[string]any{"latitude": "not-a-decimal", "longitude": "12.5"}

	resp := doJSON(t, app, http.MethodPost, "/api/v1/lunar-missions/", token, body)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	payload := decodeBody(t, resp)
	errObj := payload["error"].(map[string]any)
	assert.Equal(t, float64(422), errObj["code"])
	errs := errObj["errors"].(map[string]any)
	assert.Contains(t, errs, "mission.spacecraft.crew[0].role")
	assert.Contains(t, errs, "mission.launch_details.launch_site.location.latitude")

	// nothing may be persisted on a failed validation
	var count int64
	database.DB.Model(&model.LunarMission{}).Count(&count)
	assert.Zero(t, count)
	database.DB.Model(&model.LunarCoordinates{}).Count(&count)
	assert.Zero(t, count)
}

func TestUpdateMissionReplacesCrew(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestUser(t, "update@mission.local")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/lunar-missions/", token, missionBody("Apollo 14"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	update := missionBody("Apollo 14")
	mission := update["mission"].(map[string]any)
	spacecraft := mission["spacecraft"].(map[string]any)
	spacecraft["command_module"] = "Kitty Hawk"
	spacecraft["lunar_module"] = "Antares"
	spacecraft["crew"] = []map[string]any{
		{"name": "Alan Shepard", "role": "Commander"},
	}

	resp = doJSON(t, app, http.MethodPatch, missionPath("Apollo 14"), token, update)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, missionPath("Apollo 14"), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)

	got := body["mission"].(map[string]any)["spacecraft"].(map[string]any)
	assert.Equal(t, "Kitty Hawk", got["command_module"])
	assert.Equal(t, "Antares", got["lunar_module"])

	crew := got["crew"].([]any)
	require.Len(t, crew, 1)
	assert.Equal(t, "Alan Shepard", crew[0].(map[string]any)["name"])

	// replacement, not union: the old crew rows are gone
	var count int64
	database.DB.Model(&model.CrewMember{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpdateMissionNotFound(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestUser(t, "updatemissing@mission.local")

	resp := doJSON(t, app, http.MethodPatch, missionPath("Luna 99"), token, missionBody("Luna 99"))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteMissionCascadesAndIsIdempotentFailure(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestUser(t, "delete@mission.local")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/lunar-missions/", token, missionBody("Apollo 15"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, missionPath("Apollo 15"), token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, missionPath("Apollo 15"), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// second delete fails the same way instead of crashing
	resp = doJSON(t, app, http.MethodDelete, missionPath("Apollo 15"), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// the whole ownership set went with the mission
	var count int64
	database.DB.Model(&model.LunarMission{}).Count(&count)
	assert.Zero(t, count)
	database.DB.Model(&model.Spacecraft{}).Count(&count)
	assert.Zero(t, count)
	database.DB.Model(&model.CrewMember{}).Count(&count)
	assert.Zero(t, count)
	database.DB.Model(&model.LaunchSite{}).Count(&count)
	assert.Zero(t, count)
	database.DB.Model(&model.LandingSite{}).Count(&count)
	assert.Zero(t, count)
	database.DB.Model(&model.LunarCoordinates{}).Count(&count)
	assert.Zero(t, count)
	database.DB.Model(&model.LaunchDetails{}).Count(&count)
	assert.Zero(t, count)
	database.DB.Model(&model.LandingDetails{}).Count(&count)
	assert.Zero(t, count)
}

func TestCoordinatesPreserveScale(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestUser(t, "scale@mission.local")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/lunar-missions/", token, missionBody("Apollo 11"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// trailing zeros survive storage, not just serialization
	var coords model.LunarCoordinates
	require.NoError(t, database.DB.Where("latitude = ?", "0.6875000").First(&coords).Error)
	assert.Equal(t, "0.6875000", coords.Latitude)
	assert.Equal(t, "23.4333333", coords.Longitude)
}

func TestMissionNameWithPlusSign(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestUser(t, "plusname@mission.local")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/lunar-missions/", token, missionBody("Apollo+X"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, missionPath("Apollo+X"), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Apollo+X", body["mission"].(map[string]any)["name"])

	resp = doJSON(t, app, http.MethodDelete, missionPath("Apollo+X"), token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestCreateMissionDuplicateName(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestUser(t, "dupname@mission.local")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/lunar-missions/", token, missionBody("Apollo 16"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/lunar-missions/", token, missionBody("Apollo 16"))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestListMissionsRequiresAuth(t *testing.T) {
	app := setupTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/lunar-missions/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestListMissions(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestUser(t, "list@mission.local")

	require.Equal(t, http.StatusCreated,
		doJSON(t, app, http.MethodPost, "/api/v1/lunar-missions/", token, missionBody("Apollo 11")).StatusCode)
	require.Equal(t, http.StatusCreated,
		doJSON(t, app, http.MethodPost, "/api/v1/lunar-missions/", token, missionBody("Apollo 17")).StatusCode)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/lunar-missions/", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	missions := decodeList(t, resp)
	require.Len(t, missions, 2)
	first := missions[0].(map[string]any)["mission"].(map[string]any)
	assert.Equal(t, "Apollo 11", first["name"])
}
