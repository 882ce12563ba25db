package container

import (
	"context"
	"fmt"
	"time"

	"promptvault-backend/internal/config"
	assetHandler "promptvault-backend/internal/domains/asset/handler"
	assetService "promptvault-backend/internal/domains/asset/service"
	promptHandler "promptvault-backend/internal/domains/prompt/handler"
	promptRepo "promptvault-backend/internal/domains/prompt/repository"
	promptService "promptvault-backend/internal/domains/prompt/service"
	tagHandler "promptvault-backend/internal/domains/tag/handler"
	tagRepo "promptvault-backend/internal/domains/tag/repository"
	tagService "promptvault-backend/internal/domains/tag/service"
	"promptvault-backend/internal/infrastructure/cache"
	"promptvault-backend/internal/infrastructure/database"
	"promptvault-backend/internal/infrastructure/storage"
	"promptvault-backend/pkg/logger"
)

// Container holds the application dependency graph. Everything in it is a
// singleton built once at startup; per-request scoping happens through the
// caller identity passed into each operation, not through per-request
// client instances.
type Container struct {
	Config  *config.Config
	DB      *database.PostgresDB
	Cache   cache.Cache
	Storage *storage.MinIOStorage

	PromptRepo promptRepo.PromptRepository
	TagRepo    tagRepo.TagRepository

	PromptService promptService.ServiceInterface
	TagService    tagService.ServiceInterface
	AssetService  assetService.ServiceInterface

	PromptHandler *promptHandler.PromptHandler
	TagHandler    *tagHandler.TagHandler
	AssetHandler  *assetHandler.AssetHandler
}

// NewContainer builds the dependency graph in order: config,
// infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	// Config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	// Infrastructure
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	c.DB = database.NewPostgresDB(&cfg.Database)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := c.DB.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	c.Cache = cache.NewRedisCache(&cfg.Redis)
	if err := c.Cache.Ping(ctx); err != nil {
		logger.Warn("Redis unavailable at startup, caching degraded", map[string]interface{}{
			"error": err.Error(),
		})
	}

	c.Storage, err = storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}

	// Repositories
	c.PromptRepo = promptRepo.NewPostgresPromptRepository(c.DB.Pool)
	c.TagRepo = tagRepo.NewPostgresTagRepository(c.DB.Pool)

	// Services
	c.PromptService = promptService.NewPromptService(c.PromptRepo, c.Cache)
	c.TagService = tagService.NewTagService(c.TagRepo, c.Cache)
	c.AssetService = assetService.NewAssetService(c.Storage, cfg.Upload)

	// Handlers
	c.PromptHandler = promptHandler.NewPromptHandler(c.PromptService, c.TagService)
	c.TagHandler = tagHandler.NewTagHandler(c.TagService)
	c.AssetHandler = assetHandler.NewAssetHandler(c.AssetService)

	return c, nil
}

// Cleanup releases infrastructure handles on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
}
