package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/propnest/propnest/internal/property"
)

// RegisterPropertyRoutes wires the property CRUD, paging and search endpoints.
// The static segments are registered before /:id so they are not captured by
// it. idempotency guards creation when non-nil.
func RegisterPropertyRoutes(r fiber.Router, h *property.Handler, idempotency fiber.Handler) {
	group := r.Group("/properties")
	group.Get("/", h.List)
	group.Get("/paged", h.Paged)
	group.Get("/search", h.Search)
	group.Get("/:id", h.Get)
	if idempotency != nil {
		group.Post("/", idempotency, h.Create)
	} else {
		group.Post("/", h.Create)
	}
	group.Put("/:id", h.Update)
	group.Delete("/:id", h.Delete)
}
