package container

import (
	"context"
	"fmt"
	"time"

	"blognest-backend/internal/config"
	infraCache "blognest-backend/internal/infrastructure/cache"
	"blognest-backend/internal/infrastructure/database"
	"blognest-backend/internal/infrastructure/imagehost"
	"blognest-backend/internal/session"
	"blognest-backend/pkg/cache"
	"blognest-backend/pkg/logger"

	"blognest-backend/internal/domains/post"
	postHandler "blognest-backend/internal/domains/post/handler"
	postRepo "blognest-backend/internal/domains/post/repository"
	postService "blognest-backend/internal/domains/post/service"

	"blognest-backend/internal/domains/profile"
	profileHandler "blognest-backend/internal/domains/profile/handler"
	profileRepo "blognest-backend/internal/domains/profile/repository"
	profileService "blognest-backend/internal/domains/profile/service"

	"blognest-backend/internal/domains/upload"
	uploadHandler "blognest-backend/internal/domains/upload/handler"
	uploadService "blognest-backend/internal/domains/upload/service"
)

// Container is the root of the dependency graph. Everything in it is
// a singleton for the process lifetime.
type Container struct {
	Config    *config.Config
	DB        *database.PostgresDB
	Cache     cache.Cache
	Session   *session.Holder
	ImageHost *imagehost.Client

	ProfileRepo profile.Repository
	PostRepo    post.Repository

	ProfileService profile.Service
	PostService    post.Service
	UploadService  upload.Service

	ProfileHandler *profileHandler.ProfileHandler
	PostHandler    *postHandler.PostHandler
	UploadHandler  *uploadHandler.UploadHandler
}

// NewContainer initializes the dependency graph in order:
// config → infrastructure → session → repositories → services →
// handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	c.DB = database.NewPostgresDB(cfg.Database)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	redisCache := infraCache.NewRedisCache(cfg.Redis)
	if err := redisCache.Ping(ctx); err != nil {
		// Cache is an optimization for the tag index; a cold start
		// without Redis still serves traffic.
		logger.Warn("redis unavailable at startup", err)
	}
	c.Cache = redisCache

	c.Session = session.NewHolder(cfg.Auth.AdminUIDs)
	c.ImageHost = imagehost.NewClient(cfg.ImageHost)

	c.ProfileRepo = profileRepo.NewPostgresRepository(c.DB.Pool)
	c.PostRepo = postRepo.NewPostgresRepository(c.DB.Pool, c.Cache)

	c.ProfileService = profileService.NewProfileService(c.ProfileRepo, c.Session, cfg.Content)
	c.PostService = postService.NewPostService(c.PostRepo, c.Session, cfg)
	c.UploadService = uploadService.NewUploadService(c.ImageHost, cfg.Upload)

	c.ProfileHandler = profileHandler.NewProfileHandler(c.ProfileService)
	c.PostHandler = postHandler.NewPostHandler(c.PostService, cfg.Content)
	c.UploadHandler = uploadHandler.NewUploadHandler(c.UploadService)

	logger.Info("container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})
	return c, nil
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			logger.Warn("failed to close redis", err)
		}
	}
}
