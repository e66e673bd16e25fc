package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/propnest/propnest/internal/auth"
)

// SubjectLocal is the fiber.Ctx locals key holding the authenticated subject.
const SubjectLocal = "subject"

const bearerPrefix = "bearer "

// Gateway authenticates every request except those whose path is in
// publicPaths. It expects an "Authorization: Bearer <token>" header and
// rejects with 401 before the route handler runs when the token is missing or
// fails verification. Each request is verified on its own; nothing is cached.
func Gateway(tokens *auth.TokenService, publicPaths []string, logger *slog.Logger) fiber.Handler {
	public := make(map[string]struct{}, len(publicPaths))
	for _, p := range publicPaths {
		public[normalizePath(p)] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodOptions {
			return c.Next()
		}
		if _, ok := public[normalizePath(c.Path())]; ok {
			return c.Next()
		}

		authz := c.Get(fiber.HeaderAuthorization)
		if len(authz) <= len(bearerPrefix) || !strings.EqualFold(authz[:len(bearerPrefix)], bearerPrefix) {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		tokenStr := strings.TrimSpace(authz[len(bearerPrefix):])

		subject, err := tokens.Verify(tokenStr)
		if err != nil {
			logger.Debug("token rejected",
				slog.String("path", c.Path()),
				slog.String("reason", auth.Reason(err)),
			)
			return fiber.NewError(http.StatusUnauthorized, "invalid token")
		}

		c.Locals(SubjectLocal, subject)
		c.SetUserContext(auth.WithSubject(c.UserContext(), subject))
		return c.Next()
	}
}

func normalizePath(p string) string {
	if len(p) > 1 {
		return strings.TrimSuffix(p, "/")
	}
	return p
}

// Subject returns the subject attached by Gateway, or "" on public routes.
func Subject(c *fiber.Ctx) string {
	subject, _ := c.Locals(SubjectLocal).(string)
	return subject
}
