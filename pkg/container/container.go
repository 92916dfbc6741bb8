package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"filmorate-backend/internal/config"
	infraCache "filmorate-backend/internal/infrastructure/cache"
	"filmorate-backend/internal/infrastructure/database"
	"filmorate-backend/pkg/cache"

	filmHandler "filmorate-backend/internal/domains/film/handler"
	filmRepo "filmorate-backend/internal/domains/film/repository"
	filmService "filmorate-backend/internal/domains/film/service"
	refHandler "filmorate-backend/internal/domains/reference/handler"
	refRepo "filmorate-backend/internal/domains/reference/repository"
	refService "filmorate-backend/internal/domains/reference/service"
	userHandler "filmorate-backend/internal/domains/user/handler"
	userRepo "filmorate-backend/internal/domains/user/repository"
	userService "filmorate-backend/internal/domains/user/service"
)

// Container holds every dependency of the application.
//
// Initialization order:
// 1. Infrastructure (DB, Cache), only for the postgres backend
// 2. Repositories
// 3. Services
// 4. Handlers
type Container struct {
	// INFRASTRUCTURE LAYER
	Config *config.Config
	DB     *database.PostgresDB // nil for the memory backend
	Cache  cache.Cache

	// REPOSITORY LAYER
	ReferenceRepo refRepo.RepositoryInterface
	FilmRepo      filmRepo.RepositoryInterface
	UserRepo      userRepo.RepositoryInterface

	// SERVICE LAYER
	Catalog     *refService.Catalog
	FilmService filmService.ServiceInterface
	UserService userService.ServiceInterface

	// HANDLER LAYER
	ReferenceHandler *refHandler.ReferenceHandler
	FilmHandler      *filmHandler.FilmHandler
	UserHandler      *userHandler.UserHandler
}

// NewContainer builds the dependency graph for cfg
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Str("backend", cfg.Storage.Backend).Msg("Initializing DI Container...")

	c := &Container{
		Config: cfg,
		Cache:  cache.NewNoop(),
	}

	if cfg.Storage.Backend == config.BackendPostgres {
		if err := c.initInfrastructure(ctx); err != nil {
			c.Cleanup()
			return nil, err
		}
	}

	c.initRepositories()

	if err := c.initServices(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	c.initHandlers()

	log.Info().Msg("DI Container initialized successfully")
	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.Connect(connectCtx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	if err := database.Migrate(ctx, db.Pool); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if !c.Config.Redis.Enabled {
		log.Info().Msg("Redis disabled, running without read cache")
		return nil
	}

	rc := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := rc.Connect(ctx); err != nil {
		// Redis failure is not critical, the repositories read through to Postgres
		log.Warn().Err(err).Msg("Redis connection failed (non-critical), cache disabled")
		_ = rc.Close()
		return nil
	}
	c.Cache = rc

	return nil
}

func (c *Container) initRepositories() {
	if c.DB == nil {
		c.ReferenceRepo = refRepo.NewMemoryRepository()
		c.UserRepo = userRepo.NewMemoryRepository()
		c.FilmRepo = filmRepo.NewMemoryRepository(filmRepo.WithUserCheck(c.userExists))
		return
	}

	ttl := c.Config.Redis.TTL
	c.ReferenceRepo = refRepo.NewPostgresRepository(c.DB.Pool)
	c.FilmRepo = filmRepo.NewPostgresRepository(c.DB.Pool, c.Cache, ttl)
	c.UserRepo = userRepo.NewPostgresRepository(c.DB.Pool, c.Cache, ttl)
}

func (c *Container) userExists(ctx context.Context, id int64) (bool, error) {
	_, found, err := c.UserRepo.FindByID(ctx, id)
	return found, err
}

func (c *Container) initServices(ctx context.Context) error {
	catalog, err := refService.LoadCatalog(ctx, c.ReferenceRepo)
	if err != nil {
		return fmt.Errorf("failed to load reference catalog: %w", err)
	}
	c.Catalog = catalog

	c.UserService = userService.NewUserService(c.UserRepo)
	c.FilmService = filmService.NewFilmService(c.FilmRepo, c.Catalog, c.UserService)
	return nil
}

func (c *Container) initHandlers() {
	c.ReferenceHandler = refHandler.NewReferenceHandler(c.Catalog)
	c.FilmHandler = filmHandler.NewFilmHandler(c.FilmService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
}

// HealthStatus reports storage and cache state, "ok" when healthy
func (c *Container) HealthStatus(ctx context.Context) map[string]string {
	status := map[string]string{
		"storage":  c.Config.Storage.Backend,
		"database": "not configured",
		"cache":    "disabled",
	}

	if c.DB != nil {
		if err := c.DB.HealthCheck(ctx); err != nil {
			status["database"] = "unhealthy: " + err.Error()
		} else {
			status["database"] = "ok"
		}
	}

	if _, isRedis := c.Cache.(*infraCache.RedisCache); isRedis {
		if err := c.Cache.Ping(ctx); err != nil {
			status["cache"] = "unhealthy: " + err.Error()
		} else {
			status["cache"] = "ok"
		}
	}

	return status
}

// Healthy is false when a configured backend fails its check
func (c *Container) Healthy(status map[string]string) bool {
	for _, key := range []string{"database", "cache"} {
		switch status[key] {
		case "ok", "not configured", "disabled":
		default:
			return false
		}
	}
	return true
}

// Cleanup releases resources on shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources...")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close database")
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		} else {
			log.Info().Msg("Redis connections closed")
		}
	}
}
