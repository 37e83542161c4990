package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/opscore/helpdesk-api/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Tickets  *handlers.TicketsHandler
	Events   *handlers.EventsHandler
	Products *handlers.ProductsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.JSON("pong")
	})

	if cfg.Health != nil {
		app.Get("/health/live", cfg.Health.Live)
		app.Get("/health/ready", cfg.Health.Ready)
	}

	tickets := app.Group("/tickets")
	tickets.Get("/", cfg.Tickets.List)
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Put("/:id", cfg.Tickets.Replace)
	tickets.Patch("/:id/status", cfg.Tickets.PatchStatus)
	tickets.Patch("/:id/assign", cfg.Tickets.PatchAssignee)
	tickets.Delete("/:id", cfg.Tickets.Delete)

	events := app.Group("/events")
	events.Get("/", cfg.Events.List)
	events.Post("/", cfg.Events.Create)
	events.Get("/:id", cfg.Events.Get)
	events.Put("/:id", cfg.Events.Replace)
	events.Delete("/:id", cfg.Events.Delete)

	products := app.Group("/products")
	products.Get("/", cfg.Products.List)
	products.Post("/", cfg.Products.Create)
	products.Get("/:id", cfg.Products.Get)
	products.Put("/:id", cfg.Products.Replace)
	products.Delete("/:id", cfg.Products.Delete)
}
