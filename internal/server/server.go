package server

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/propnest/propnest/internal/middleware"
	"github.com/propnest/propnest/internal/routes"
)

// Server wraps the Fiber application and shared dependencies.
type Server struct {
	app  *fiber.App
	deps routes.Deps
}

// New instantiates the HTTP server and delegates route wiring to routes.Setup.
func New(deps routes.Deps, logger *slog.Logger) (*Server, error) {
	deps.Logger = logger
	app := fiber.New(fiber.Config{
		AppName:               deps.Cfg.AppName,
		ReadTimeout:           deps.Cfg.ReadTimeout,
		WriteTimeout:          deps.Cfg.WriteTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
		DisableStartupMessage: !deps.Cfg.IsDev(),
	})

	if err := routes.Setup(app, deps); err != nil {
		return nil, err
	}

	return &Server{app: app, deps: deps}, nil
}

// App exposes the underlying Fiber application, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen starts the HTTP server.
func (s *Server) Listen() error {
	s.deps.Logger.Info("http server listening", slog.String("addr", s.deps.Cfg.Address()), slog.String("driver", s.deps.Cfg.StoreDriver))
	return s.app.Listen(s.deps.Cfg.Address())
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
