package router

import (
	"net/http"

	catsvc "resellution-backend/internal/application/catalog"
	listsvc "resellution-backend/internal/application/listings"
	"resellution-backend/internal/config"
	"resellution-backend/internal/infrastructure/database"
	healthhandler "resellution-backend/internal/interfaces/handlers/health"
	listhandler "resellution-backend/internal/interfaces/handlers/listings"
	"resellution-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp wires the listing API. With no DATABASE_URL the store runs on
// in-memory SQLite; with no REDIS_URL tokens are verified statically (any
// non-empty bearer token maps to a single dev user).
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
	}))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	var err error
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
	} else {
		db, err = database.OpenMemory()
	}
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, nil, err
	}
	if err := database.SeedCategories(db); err != nil {
		return nil, nil, nil, err
	}

	var rdb *redis.Client
	var verifier middleware.TokenVerifier
	if cfg.RedisURL != "" {
		opt, errRedis := redis.ParseURL(cfg.RedisURL)
		if errRedis != nil {
			return nil, nil, nil, errRedis
		}
		rdb = redis.NewClient(opt)
		verifier = &middleware.RedisTokenVerifier{Rdb: rdb}
	} else {
		verifier = &middleware.StaticTokenVerifier{UserID: "local-user"}
	}

	hh := &healthhandler.Handlers{Rdb: rdb, DB: &gormDBPinger{db: db}}
	app.Get("/health/json", hh.JSON)

	lh := &listhandler.Handlers{
		Service: &listsvc.Service{DB: db},
		Catalog: &catsvc.Service{DB: db},
	}
	api := app.Group("/api/v1", middleware.RequireAuth(verifier))
	api.Get("/categories", lh.GetCategories)
	api.Post("/listings", lh.CreateListing)
	api.Get("/listings/me", lh.MyListings)
	api.Patch("/listings/:id/status", lh.UpdateStatus)
	api.Delete("/listings/:id", lh.DeleteListing)
	api.Post("/listings/:id/images", lh.UploadImage)
	api.Get("/listings/:id/events", lh.GetEvents)

	return app, db, rdb, nil
}

// Handler adapts the fiber app for net/http hosts (serverless entrypoint).
func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
