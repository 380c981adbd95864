package handler

import (
	"errors"
	"net/url"

	"mission_manager/constants"
	"mission_manager/database"
	"mission_manager/helper"
	"mission_manager/model"
	"mission_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// missionQuery preloads the whole aggregate. Crew is ordered by primary key
// so projections are deterministic.
func missionQuery(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Spacecraft.Crew", func(db *gorm.DB) *gorm.DB {
			return db.Order("crew_members.id")
		}).
		Preload("LaunchDetails.LaunchSite.Location").
		Preload("LandingDetails.LandingSite.Coordinates")
}

// missionNameParam decodes the path segment. PathUnescape keeps "+" literal,
// names may legitimately contain it.
func missionNameParam(c *fiber.Ctx) string {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return c.Params("name")
	}
	return name
}

func GetMissions(c *fiber.Ctx) error {
	var missions []model.LunarMission
	if err := missionQuery(database.DB).Order("id").Find(&missions).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	response := make([]fiber.Map, 0, len(missions))
	for _, mission := range missions {
		response = append(response, helper.BuildMissionResponse(mission))
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

func GetMissionByName(c *fiber.Ctx) error {
	name := missionNameParam(c)

	var mission model.LunarMission
	if err := missionQuery(database.DB).Where("name = ?", name).First(&mission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundResponse(c)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.Status(fiber.StatusOK).JSON(helper.BuildMissionResponse(mission))
}

// CreateMission writes the whole aggregate in one transaction: coordinates,
// sites, spacecraft, crew, the mission row and both detail rows. Readers
// never see a partial mission.
func CreateMission(c *fiber.Ctx) error {
	input := c.Locals("input").(model.MissionInput)
	db := database.DB

	launchDate, err := utils.ParseDate(input.LaunchDetails.LaunchDate)
	if err != nil {
		return utils.ValidationErrorResponse(c, utils.FieldError("mission.launch_details.launch_date", "must be a date in YYYY-MM-DD format"))
	}
	landingDate, err := utils.ParseDate(input.LandingDetails.LandingDate)
	if err != nil {
		return utils.ValidationErrorResponse(c, utils.FieldError("mission.landing_details.landing_date", "must be a date in YYYY-MM-DD format"))
	}

	var count int64
	db.Model(&model.LunarMission{}).Where("name = ?", input.Name).Count(&count)
	if count > 0 {
		return utils.ConflictResponse(c, "mission.name", constants.MISSION_NAME_EXISTS)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, tx.Error)
	}

	launchCoords := model.LunarCoordinates{
		Latitude:  input.LaunchDetails.LaunchSite.Location.Latitude,
		Longitude: input.LaunchDetails.LaunchSite.Location.Longitude,
	}
	if err := tx.Create(&launchCoords).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	launchSite := model.LaunchSite{
		Name:       input.LaunchDetails.LaunchSite.Name,
		LocationID: launchCoords.ID,
	}
	if err := tx.Create(&launchSite).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	landingCoords := model.LunarCoordinates{
		Latitude:  input.LandingDetails.LandingSite.Coordinates.Latitude,
		Longitude: input.LandingDetails.LandingSite.Coordinates.Longitude,
	}
	if err := tx.Create(&landingCoords).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	landingSite := model.LandingSite{
		Name:          input.LandingDetails.LandingSite.Name,
		CoordinatesID: landingCoords.ID,
	}
	if err := tx.Create(&landingSite).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	spacecraft := model.Spacecraft{
		CommandModule: input.Spacecraft.CommandModule,
		LunarModule:   input.Spacecraft.LunarModule,
	}
	if err := tx.Create(&spacecraft).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	for _, crewInput := range input.Spacecraft.Crew {
		member := model.CrewMember{Name: crewInput.Name, Role: crewInput.Role}
		if err := tx.Create(&member).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if err := tx.Model(&spacecraft).Association("Crew").Append(&member); err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	mission := model.LunarMission{
		Name:         input.Name,
		Slug:         helper.GenerateUniqueMissionSlug(tx, input.Name),
		SpacecraftID: spacecraft.ID,
	}
	if err := tx.Create(&mission).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.ConflictResponse(c, "mission.name", constants.MISSION_NAME_EXISTS)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	launchDetails := model.LaunchDetails{
		MissionID:    mission.ID,
		LaunchDate:   launchDate,
		LaunchSiteID: launchSite.ID,
	}
	if err := tx.Create(&launchDetails).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	landingDetails := model.LandingDetails{
		MissionID:     mission.ID,
		LandingDate:   landingDate,
		LandingSiteID: landingSite.ID,
	}
	if err := tx.Create(&landingDetails).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"code":    fiber.StatusCreated,
			"message": "Mission added",
			"name":    mission.Name,
		},
	})
}

// UpdateMission rewrites the aggregate in place inside one transaction and
// replaces the crew set wholesale. The version guard turns a concurrent
// update into a 409 instead of silently interleaving writes.
func UpdateMission(c *fiber.Ctx) error {
	name := missionNameParam(c)
	input := c.Locals("input").(model.MissionInput)
	db := database.DB

	var mission model.LunarMission
	if err := missionQuery(db).Where("name = ?", name).First(&mission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundResponse(c)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	launchDate, err := utils.ParseDate(input.LaunchDetails.LaunchDate)
	if err != nil {
		return utils.ValidationErrorResponse(c, utils.FieldError("mission.launch_details.launch_date", "must be a date in YYYY-MM-DD format"))
	}
	landingDate, err := utils.ParseDate(input.LandingDetails.LandingDate)
	if err != nil {
		return utils.ValidationErrorResponse(c, utils.FieldError("mission.landing_details.landing_date", "must be a date in YYYY-MM-DD format"))
	}

	tx := db.Begin()
	if tx.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, tx.Error)
	}

	// Coordinates and site names are overwritten in place: references stay
	// pointed at the same rows.
	if err := tx.Model(&mission.LaunchDetails.LaunchSite.Location).Updates(map[string]interface{}{
		"latitude":  input.LaunchDetails.LaunchSite.Location.Latitude,
		"longitude": input.LaunchDetails.LaunchSite.Location.Longitude,
	}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := tx.Model(&mission.LaunchDetails.LaunchSite).Update("name", input.LaunchDetails.LaunchSite.Name).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Model(&mission.LandingDetails.LandingSite.Coordinates).Updates(map[string]interface{}{
		"latitude":  input.LandingDetails.LandingSite.Coordinates.Latitude,
		"longitude": input.LandingDetails.LandingSite.Coordinates.Longitude,
	}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := tx.Model(&mission.LandingDetails.LandingSite).Update("name", input.LandingDetails.LandingSite.Name).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Model(&mission.LaunchDetails).Update("launch_date", launchDate).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := tx.Model(&mission.LandingDetails).Update("landing_date", landingDate).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Model(&mission.Spacecraft).Updates(map[string]interface{}{
		"command_module": input.Spacecraft.CommandModule,
		"lunar_module":   input.Spacecraft.LunarModule,
	}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// Crew replacement: drop every existing member and association, then
	// attach the new set. All within the transaction, so readers see either
	// the old crew or the new one.
	oldCrewIds := make([]uint, 0, len(mission.Spacecraft.Crew))
	for _, member := range mission.Spacecraft.Crew {
		oldCrewIds = append(oldCrewIds, member.ID)
	}
	if err := tx.Model(&mission.Spacecraft).Association("Crew").Clear(); err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if len(oldCrewIds) > 0 {
		if err := tx.Delete(&model.CrewMember{}, oldCrewIds).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}
	for _, crewInput := range input.Spacecraft.Crew {
		member := model.CrewMember{Name: crewInput.Name, Role: crewInput.Role}
		if err := tx.Create(&member).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if err := tx.Model(&mission.Spacecraft).Association("Crew").Append(&member); err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	updates := map[string]interface{}{
		"name":    input.Name,
		"version": mission.Version + 1,
	}
	if input.Name != mission.Name {
		updates["slug"] = helper.GenerateUniqueMissionSlug(tx, input.Name)
	}
	result := tx.Model(&model.LunarMission{}).
		Where("id = ? AND version = ?", mission.ID, mission.Version).
		Updates(updates)
	if result.Error != nil {
		tx.Rollback()
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return utils.ConflictResponse(c, "mission.name", constants.MISSION_NAME_EXISTS)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return utils.ConflictResponse(c, "mission", constants.MISSION_UPDATE_RACE)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"code":    fiber.StatusOK,
			"message": "Mission updated",
		},
	})
}

// DeleteMission removes the mission and every row it exclusively owns. The
// cascade set is explicit, nothing relies on database-side cascades.
func DeleteMission(c *fiber.Ctx) error {
	name := missionNameParam(c)
	db := database.DB

	var mission model.LunarMission
	if err := missionQuery(db).Where("name = ?", name).First(&mission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundResponse(c)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, tx.Error)
	}

	if err := tx.Delete(&model.LaunchDetails{}, "mission_id = ?", mission.ID).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := tx.Delete(&model.LandingDetails{}, "mission_id = ?", mission.ID).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := tx.Delete(&mission).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Delete(&model.LaunchSite{}, mission.LaunchDetails.LaunchSiteID).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := tx.Delete(&model.LunarCoordinates{}, mission.LaunchDetails.LaunchSite.LocationID).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := tx.Delete(&model.LandingSite{}, mission.LandingDetails.LandingSiteID).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := tx.Delete(&model.LunarCoordinates{}, mission.LandingDetails.LandingSite.CoordinatesID).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	crewIds := make([]uint, 0, len(mission.Spacecraft.Crew))
	for _, member := range mission.Spacecraft.Crew {
		crewIds = append(crewIds, member.ID)
	}
	if err := tx.Model(&mission.Spacecraft).Association("Crew").Clear(); err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if len(crewIds) > 0 {
		if err := tx.Delete(&model.CrewMember{}, crewIds).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}
	if err := tx.Delete(&model.Spacecraft{}, mission.SpacecraftID).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
