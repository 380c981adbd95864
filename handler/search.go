package handler

import (
	"mission_manager/constants"
	"mission_manager/database"
	"mission_manager/model"
	"mission_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// Search is a naive scan: case-insensitive substring over mission names and
// crew names, each result tagged with its kind, ordered by primary key.
// An empty query returns an empty list, not the whole table.
func Search(c *fiber.Ctx) error {
	query := c.Query("query")
	if query == "" {
		return utils.SuccessResponse(c, fiber.StatusOK, []fiber.Map{})
	}

	pattern := "%" + query + "%"
	db := database.DB

	var missions []model.LunarMission
	if err := missionQuery(db).
		Where("LOWER(name) LIKE LOWER(?)", pattern).
		Order("id").
		Find(&missions).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	results := make([]fiber.Map, 0, len(missions))
	for _, mission := range missions {
		crew := make([]fiber.Map, 0, len(mission.Spacecraft.Crew))
		for _, member := range mission.Spacecraft.Crew {
			crew = append(crew, fiber.Map{
				"name": member.Name,
				"role": member.Role,
			})
		}
		results = append(results, fiber.Map{
			"type":         constants.SEARCH_KIND_MISSION,
			"name":         mission.Name,
			"launch_date":  utils.FormatDate(mission.LaunchDetails.LaunchDate),
			"landing_date": utils.FormatDate(mission.LandingDetails.LandingDate),
			"crew":         crew,
			"landing_site": mission.LandingDetails.LandingSite.Name,
		})
	}

	var crewMembers []model.CrewMember
	if err := db.
		Where("LOWER(name) LIKE LOWER(?)", pattern).
		Order("id").
		Find(&crewMembers).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	for _, member := range crewMembers {
		results = append(results, fiber.Map{
			"type": constants.SEARCH_KIND_CREW,
			"name": member.Name,
			"role": member.Role,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, results)
}
