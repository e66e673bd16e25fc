package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/propnest/propnest/internal/middleware"
)

// RegisterHelloRoute adds a protected greeting used to check a token end to end.
func RegisterHelloRoute(r fiber.Router) {
	r.Get("/hello", func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"message": "Hello from the backend",
			"user":    middleware.Subject(c),
		})
	})
}
