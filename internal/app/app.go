package app

import (
	"esdc-backend/internal/cache"
	"esdc-backend/internal/config"
	"esdc-backend/internal/database"
	"esdc-backend/internal/describe"
	"esdc-backend/internal/fetch"
	"esdc-backend/internal/health"
	"esdc-backend/internal/loader"
	"esdc-backend/internal/middleware"
	"esdc-backend/internal/migrate"
	"esdc-backend/internal/pkg/response"
	"esdc-backend/internal/report"
	"esdc-backend/internal/validate"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// App bundles the Fiber app with the resources the CLI also needs.
type App struct {
	Fiber *fiber.App
	DB    *gorm.DB
	Cache *cache.Cache
}

// New builds the Fiber app with all global middleware and route registration.
// The database is opened, base tables created and the migration sequence
// applied before any route is mounted.
func New(cfg *config.Config) (*App, error) {
	db, err := database.Open(cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	for _, table := range []string{"project_resources", "project_timeseries"} {
		migrations, err := migrate.ForTable(table)
		if err != nil {
			return nil, err
		}
		if err := migrate.Apply(db, migrations); err != nil {
			return nil, err
		}
	}

	reportCache, err := cache.New(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{AllowedSuffix: cfg.CORSSuffix}))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	// Health (no auth)
	healthHandlers := &health.Handlers{DB: db, Rdb: reportCache.Client()}
	app.Get("/health", healthHandlers.Live)
	app.Get("/health/json", healthHandlers.JSON)

	// Reports
	reportService := &report.Service{DB: db, Cache: reportCache}
	reportHandlers := &report.Handlers{Service: reportService}
	app.Get("/api/v1/reports/:table", reportHandlers.Get)

	// Narratives
	describeService := &describe.Service{Reports: reportService}
	describeHandlers := &describe.Handlers{Service: describeService}
	app.Get("/api/v1/describe/:table", describeHandlers.Get)

	// Ingest (write side, API key required)
	fetcher := &fetch.Client{
		BaseURL:  cfg.EsdcBaseURL,
		Username: cfg.EsdcUser,
		Password: cfg.EsdcPass,
	}
	loaderService := &loader.Service{DB: db, Cache: reportCache}
	loaderHandlers := &loader.Handlers{Service: loaderService, Fetcher: fetcher, DataDir: cfg.DataDir}
	ingestGroup := app.Group("/api/v1/ingest", middleware.RequireAPIKey(cfg.APIKeyHash))
	ingestGroup.Post("/reload", loaderHandlers.Reload)
	ingestGroup.Post("/fetch", loaderHandlers.Fetch)

	// Validation (run is a write, latest is a read)
	engine := &validate.Engine{DB: db, Rules: validate.DefaultRules()}
	validateHandlers := &validate.Handlers{Engine: engine}
	app.Get("/api/v1/validation/results", validateHandlers.Latest)
	app.Post("/api/v1/validation/run", middleware.RequireAPIKey(cfg.APIKeyHash), validateHandlers.Run)

	app.Use(func(c *fiber.Ctx) error {
		return response.Error(c, "Not Found", fiber.StatusNotFound, nil)
	})

	return &App{Fiber: app, DB: db, Cache: reportCache}, nil
}
