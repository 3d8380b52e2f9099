package container

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"library-backend/internal/config"
	"library-backend/internal/events"
	infracache "library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/pkg/cache"
	"library-backend/pkg/token"

	"library-backend/internal/domains/author"
	authorHandler "library-backend/internal/domains/author/handler"
	authorRepo "library-backend/internal/domains/author/repository"
	"library-backend/internal/domains/book"
	bookHandler "library-backend/internal/domains/book/handler"
	bookRepo "library-backend/internal/domains/book/repository"
	"library-backend/internal/domains/library"
	libraryHandler "library-backend/internal/domains/library/handler"
	libraryService "library-backend/internal/domains/library/service"
	"library-backend/internal/domains/user"
	userHandler "library-backend/internal/domains/user/handler"
	userRepo "library-backend/internal/domains/user/repository"
	userService "library-backend/internal/domains/user/service"
)

// Container holds the application's dependency graph. Initialization order
// matters: config, then infrastructure, then repositories, services and
// handlers.
type Container struct {
	// Infrastructure
	Config   *config.Config
	DB       *database.PostgresDB
	Cache    cache.Cache
	Tokens   *token.Manager
	EventHub *events.Hub

	// Repositories
	AuthorRepo author.Repository
	BookRepo   book.Repository
	UserRepo   user.Repository

	// Services
	UserService    user.Service
	LibraryService library.Service

	// Handlers
	UserHandler    *userHandler.UserHandler
	AuthorHandler  *authorHandler.AuthorHandler
	BookHandler    *bookHandler.BookHandler
	LibraryHandler *libraryHandler.LibraryHandler

	redisCache *infracache.RedisCache
}

// NewContainer builds and initializes the whole dependency graph.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	ctx := context.Background()

	c.DB = database.NewPostgresDB(&cfg.Database)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.Migrate(cfg.Database.DSN(), cfg.Database.MigrationsDir); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	c.redisCache = infracache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.redisCache.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = c.redisCache

	c.Tokens = token.NewManager(cfg.JWT.Secret)
	c.EventHub = events.NewHub()

	c.AuthorRepo = authorRepo.NewPostgresRepository(c.DB.Pool, c.Cache)
	c.BookRepo = bookRepo.NewPostgresRepository(c.DB.Pool)
	c.UserRepo = userRepo.NewPostgresRepository(c.DB.Pool)

	c.UserService = userService.NewUserService(c.UserRepo, c.Tokens)
	c.LibraryService = libraryService.NewLibraryService(c.AuthorRepo, c.BookRepo, c.EventHub)

	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorRepo)
	c.BookHandler = bookHandler.NewBookHandler(c.BookRepo)
	c.LibraryHandler = libraryHandler.NewLibraryHandler(c.LibraryService, c.EventHub)

	log.Info().Str("env", cfg.App.Environment).Msg("container initialized")

	return c, nil
}

// Cleanup releases infrastructure resources in reverse order.
func (c *Container) Cleanup() {
	if c.EventHub != nil {
		c.EventHub.Close()
	}
	if c.redisCache != nil {
		if err := c.redisCache.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close redis client")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
