package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/propnest/propnest/internal/auth"
)

// RegisterAuthRoutes wires the public login and registration endpoints.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler) {
	group := r.Group("/auth")
	group.Post("/login", h.Login)
	group.Post("/register", h.Register)
}
