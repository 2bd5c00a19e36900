package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp builds the fiber application with all portal routes.
func NewApp(h *Handlers, allowOrigins string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "jiscare",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	if allowOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: allowOrigins,
			AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowHeaders: "Origin, Content-Type, Accept",
		}))
	}

	api := app.Group("/api")

	api.Post("/login", h.login)
	api.Post("/logout", h.logout)
	api.Get("/session", h.currentSession)

	api.Get("/employees", h.listEmployees)
	api.Post("/employees", h.createEmployee)
	api.Put("/employees/:id", h.updateEmployee)
	api.Delete("/employees/:id", h.deleteEmployee)
	api.Post("/employees/:id/email", h.emailSchedule)

	api.Get("/rooms", h.listRooms)

	api.Get("/shifts", h.listShifts)
	api.Post("/shifts", h.saveShift)
	api.Delete("/shifts", h.deleteShift)
	api.Post("/schedule/check", h.checkSchedule)

	api.Get("/dayoffs", h.listDayOffs)
	api.Post("/dayoffs", h.submitDayOff)
	api.Patch("/dayoffs/:id", h.updateDayOff)

	api.Post("/refresh", h.refresh)
	api.Get("/export/schedule", h.exportSchedule)

	return app
}
