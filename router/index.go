package router

import (
	"mission_manager/handler"
	"mission_manager/middleware"
	"mission_manager/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1")

	v1.Post("/registration", validate.Register(), handler.Register)
	v1.Post("/authorization", validate.Login(), handler.Login)
	v1.Post("/auth/refresh-token", handler.RefreshToken)
	v1.Get("/account/me", middleware.Protected(), handler.Me)

	mission := v1.Group("/lunar-missions", logger.New())
	mission.Get("/", middleware.Protected(), handler.GetMissions)
	mission.Post("/", middleware.Protected(), validate.CreateMission(), handler.CreateMission)
	mission.Get("/:name", middleware.Protected(), handler.GetMissionByName)
	mission.Patch("/:name", middleware.Protected(), validate.UpdateMission(), handler.UpdateMission)
	mission.Delete("/:name", middleware.Protected(), handler.DeleteMission)

	flight := v1.Group("/space-flights", logger.New())
	flight.Get("/", middleware.OptionalJWT(), handler.GetFlights)
	flight.Post("/", middleware.Protected(), validate.CreateFlight(), handler.CreateFlight)

	v1.Post("/book-flight", middleware.Protected(), validate.BookFlight(), handler.BookFlight)
	v1.Get("/my-bookings", middleware.Protected(), handler.GetMyBookings)

	v1.Get("/search", middleware.Protected(), handler.Search)

	v1.Post("/lunar-watermark", middleware.Protected(), handler.CreateWatermark)
	v1.Post("/upload-signature", middleware.Protected(), handler.GenerateUploadSignature)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/flight/:id", websocket.New(handler.FlightSeatSocket))
}
