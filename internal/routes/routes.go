package routes

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/propnest/propnest/internal/auth"
	"github.com/propnest/propnest/internal/config"
	"github.com/propnest/propnest/internal/credentials"
	"github.com/propnest/propnest/internal/middleware"
	"github.com/propnest/propnest/internal/property"
)

// Deps aggregates shared dependencies required to wire routes. DB is set for
// the postgres driver and SQLite for the sqlite driver; Cache is optional.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	SQLite *sql.DB
	Cache  *redis.Client
	Logger *slog.Logger
}

// PublicPaths are reachable without a bearer token.
var PublicPaths = []string{"/auth/login", "/auth/register", "/healthz"}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	credStore, propRepo, err := stores(d)
	if err != nil {
		return err
	}

	creds := credentials.NewService(credStore)
	if err := creds.Bootstrap(context.Background(), d.Cfg.BootstrapUsername, d.Cfg.BootstrapPassword); err != nil {
		return fmt.Errorf("bootstrap account: %w", err)
	}
	if d.Cfg.BootstrapUsername != "" {
		d.Logger.Info("bootstrap account ready", slog.String("username", d.Cfg.BootstrapUsername))
	}

	tokens := auth.NewTokenService(d.Cfg.JWTSecret, d.Cfg.TokenTTL, auth.WithIssuer(d.Cfg.AppName))
	authHandler := auth.NewHandler(creds, tokens, d.Logger)
	propHandler := property.NewHandler(property.NewService(propRepo))

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.AccessLog(d.Logger))
	if len(d.Cfg.CORSAllowedOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Join(d.Cfg.CORSAllowedOrigins, ","),
			AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
			AllowHeaders:     "Origin,Content-Type,Accept,Authorization,Idempotency-Key,X-Request-ID",
			AllowCredentials: true,
		}))
	}
	app.Use(middleware.Gateway(tokens, PublicPaths, d.Logger))

	// Public routes
	RegisterHealthRoutes(app, d)
	RegisterAuthRoutes(app, authHandler)

	// Protected routes
	RegisterHelloRoute(app)
	var idempotency fiber.Handler
	if d.Cache != nil {
		idempotency = middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger)
	}
	RegisterPropertyRoutes(app.Group("/api"), propHandler, idempotency)

	return nil
}

// stores picks the credential store and property repository for the
// configured driver.
func stores(d Deps) (credentials.Store, property.Repository, error) {
	switch d.Cfg.StoreDriver {
	case config.DriverPostgres:
		if d.DB == nil {
			return nil, nil, fmt.Errorf("database is required when STORE_DRIVER=%s", config.DriverPostgres)
		}
		return credentials.NewPostgresStore(d.DB), property.NewPostgresRepository(d.DB), nil
	case config.DriverSQLite:
		if d.SQLite == nil {
			return nil, nil, fmt.Errorf("sqlite database is required when STORE_DRIVER=%s", config.DriverSQLite)
		}
		return credentials.NewSQLiteStore(d.SQLite), property.NewSQLiteRepository(d.SQLite), nil
	case config.DriverMemory:
		return credentials.NewMemoryStore(), property.NewMemoryRepository(), nil
	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", d.Cfg.StoreDriver)
	}
}
