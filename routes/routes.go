package routes

import (
	"github.com/anjiri1684/tutor_orm/handlers"
	"github.com/anjiri1684/tutor_orm/metrics"
	"github.com/anjiri1684/tutor_orm/middleware"
	changes "github.com/anjiri1684/tutor_orm/websocket"
	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App, h *handlers.Handler, hub *changes.Hub, secret string) {
	app.Get("/health", h.Health)
	app.Get("/metrics", metrics.Handler())

	if hub != nil {
		app.Use("/ws", changes.Upgrade(secret))
		app.Get("/ws/changes", hub.Handler())
	}

	api := app.Group("/api/v1")
	AuthRoutes(api, h)

	protected := api.Group("", middleware.Protected(secret))
	WorkflowRoutes(protected, h)
	DataRoutes(protected, h)
}

func AuthRoutes(api fiber.Router, h *handlers.Handler) {
	auth := api.Group("/auth")
	auth.Post("/login", h.Login)
}

// WorkflowRoutes must be registered before DataRoutes so fixed paths win
// over /:id.
func WorkflowRoutes(api fiber.Router, h *handlers.Handler) {
	api.Post("/enrollments", h.Enroll)
	api.Post("/enrollments/:id/status", h.ChangeStatus)

	api.Post("/invoices/issue", h.IssueInvoice)
	api.Get("/invoices/export", h.ExportInvoices)
	api.Post("/invoices/:id/pay", h.PayInvoice)
	api.Post("/invoices/:id/document", h.RenderInvoice)

	api.Post("/students/import", middleware.AdminRequired(), h.ImportStudents)
}

// DataRoutes exposes every model under /api/v1/{model}.
func DataRoutes(api fiber.Router, h *handlers.Handler) {
	h.MountModels(api)
}
