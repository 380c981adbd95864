package helper

import (
	"mission_manager/model"
	"mission_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// BuildMissionResponse projects a fully-preloaded mission aggregate into the
// nested external shape. This nested form (launch_details/landing_details
// objects) is the single supported contract.
func BuildMissionResponse(m model.LunarMission) fiber.Map {
	crew := make([]fiber.Map, 0, len(m.Spacecraft.Crew))
	for _, member := range m.Spacecraft.Crew {
		crew = append(crew, fiber.Map{
			"name": member.Name,
			"role": member.Role,
		})
	}

	return fiber.Map{
		"mission": fiber.Map{
			"name": m.Name,
			"slug": m.Slug,
			"launch_details": fiber.Map{
				"launch_date": utils.FormatDate(m.LaunchDetails.LaunchDate),
				"launch_site": fiber.Map{
					"name": m.LaunchDetails.LaunchSite.Name,
					"location": fiber.Map{
						"latitude":  m.LaunchDetails.LaunchSite.Location.Latitude,
						"longitude": m.LaunchDetails.LaunchSite.Location.Longitude,
					},
				},
			},
			"landing_details": fiber.Map{
				"landing_date": utils.FormatDate(m.LandingDetails.LandingDate),
				"landing_site": fiber.Map{
					"name": m.LandingDetails.LandingSite.Name,
					"coordinates": fiber.Map{
						"latitude":  m.LandingDetails.LandingSite.Coordinates.Latitude,
						"longitude": m.LandingDetails.LandingSite.Coordinates.Longitude,
					},
				},
			},
			"spacecraft": fiber.Map{
				"command_module": m.Spacecraft.CommandModule,
				"lunar_module":   m.Spacecraft.LunarModule,
				"crew":           crew,
			},
		},
	}
}
