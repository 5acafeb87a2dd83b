package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/application/commands"
	"github.com/felixgeelhaar/dayfocus/internal/prioritization/application/consumers"
	"github.com/felixgeelhaar/dayfocus/internal/prioritization/application/queries"
	"github.com/felixgeelhaar/dayfocus/internal/prioritization/application/services"
	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
	"github.com/felixgeelhaar/dayfocus/internal/prioritization/infrastructure/cache"
	"github.com/felixgeelhaar/dayfocus/internal/prioritization/infrastructure/persistence"
	"github.com/felixgeelhaar/dayfocus/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/dayfocus/internal/shared/infrastructure/database/postgres" // Register PostgreSQL driver
	_ "github.com/felixgeelhaar/dayfocus/internal/shared/infrastructure/database/sqlite"   // Register SQLite driver
	"github.com/felixgeelhaar/dayfocus/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/dayfocus/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/dayfocus/internal/shared/infrastructure/security"
	"github.com/felixgeelhaar/dayfocus/pkg/config"
	"github.com/felixgeelhaar/dayfocus/pkg/observability"
)

// Container holds all application dependencies.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics observability.Metrics

	// UserID is the user every CLI and MCP call acts for.
	UserID   uuid.UUID
	Location *time.Location
	Clock    queries.Clock

	// Database
	DBConn   database.Connection
	DBDriver database.Driver

	// Redis
	RedisClient *redis.Client

	// Repositories and outlets
	TaskRepo       domain.TaskRepository
	PlanCache      domain.PlanCache
	EventPublisher eventbus.Publisher

	// Scoring
	Engine      *services.PriorityEngine
	PlanBuilder *services.PlanBuilder

	// Command Handlers
	AddTaskHandler      *commands.AddTaskHandler
	CompleteTaskHandler *commands.CompleteTaskHandler
	ToggleTaskHandler   *commands.ToggleTaskHandler
	DeleteTaskHandler   *commands.DeleteTaskHandler

	// Query Handlers
	ListTasksHandler     *queries.ListTasksHandler
	RankTasksHandler     *queries.RankTasksHandler
	GetDailyPlanHandler  *queries.GetDailyPlanHandler
	GetCachedPlanHandler *queries.GetCachedPlanHandler
	SuggestHandler       *queries.SuggestHandler
	ExplainTaskHandler   *queries.ExplainTaskHandler
}

// NewContainer wires the application for cfg. An empty DATABASE_URL selects
// local mode: SQLite for tasks and plan snapshots and an in-process event bus,
// unless Redis or RabbitMQ URLs are configured explicitly.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	userID, err := cfg.User()
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config:   cfg,
		Logger:   logger,
		Metrics:  observability.NewInMemoryMetrics(),
		UserID:   userID,
		Location: loc,
		Clock:    queries.SystemClock(loc),
	}

	if err := c.initDatabase(ctx); err != nil {
		return nil, err
	}
	if err := c.initPlanCache(ctx); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.initPublisher(); err != nil {
		c.Close()
		return nil, err
	}

	c.wireHandlers()
	return c, nil
}

func (c *Container) initDatabase(ctx context.Context) error {
	dbCfg := database.Config{
		URL:        c.Config.DatabaseURL,
		SQLitePath: c.Config.SQLitePath,
	}
	if c.Config.IsLocalMode() {
		dbCfg.Driver = database.DriverSQLite
		if dbCfg.SQLitePath == "" {
			dbCfg.SQLitePath = database.DefaultSQLitePath()
		}
		path, err := security.ValidateDataPath(dbCfg.SQLitePath)
		if err != nil {
			return err
		}
		dbCfg.SQLitePath = path
		if err := database.EnsureDirectory(dbCfg.SQLitePath); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	conn, err := database.NewConnection(ctx, dbCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	c.Logger.Info("running migrations", "driver", conn.Driver())
	if err := migrations.Run(ctx, conn); err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	repo, err := persistence.NewTaskRepository(conn)
	if err != nil {
		_ = conn.Close()
		return err
	}

	c.DBConn = conn
	c.DBDriver = conn.Driver()
	c.TaskRepo = repo
	c.Logger.Info("connected to database", "driver", c.DBDriver)
	return nil
}

// initPlanCache connects to Redis when configured. In development an
// unreachable Redis falls back to the local cache.
func (c *Container) initPlanCache(ctx context.Context) error {
	if c.Config.RedisURL == "" {
		c.PlanCache = c.localPlanCache()
		return nil
	}

	client, err := cache.NewRedisClient(c.Config.RedisURL)
	if err == nil {
		err = client.Ping(ctx).Err()
		if err != nil {
			_ = client.Close()
		}
	}
	if err != nil {
		if !c.Config.IsDevelopment() {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.Logger.Warn("Redis not available, using local plan cache", "error", err)
		c.PlanCache = c.localPlanCache()
		return nil
	}

	c.RedisClient = client
	c.PlanCache = cache.NewBreakerPlanCache(
		cache.NewRedisPlanCache(client),
		cache.DefaultBreakerConfig(),
		c.Logger,
		c.Metrics,
	)
	c.Logger.Info("connected to Redis")
	return nil
}

// localPlanCache keeps snapshots next to the tasks when the database is
// SQLite, so separate CLI runs share them. Other drivers get a process-local
// cache.
func (c *Container) localPlanCache() domain.PlanCache {
	if c.DBDriver == database.DriverSQLite {
		return cache.NewSQLitePlanCache(c.DBConn)
	}
	return cache.NewInMemoryPlanCache()
}

// initPublisher connects to RabbitMQ when configured. Without a broker, plan
// events are dispatched in process.
func (c *Container) initPublisher() error {
	if c.Config.RabbitMQURL == "" {
		bus := eventbus.NewInProcessEventBus(c.Logger)
		bus.RegisterConsumer(consumers.NewPlanGeneratedConsumer(c.Logger, c.Metrics))
		c.EventPublisher = bus
		return nil
	}

	publisher, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, c.Logger)
	if err != nil {
		if !c.Config.IsDevelopment() {
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		c.Logger.Warn("RabbitMQ not available, using noop publisher", "error", err)
		c.EventPublisher = eventbus.NewNoopPublisher(c.Logger)
		return nil
	}
	c.EventPublisher = publisher
	return nil
}

func (c *Container) wireHandlers() {
	c.Engine = services.NewDefaultPriorityEngine()
	c.PlanBuilder = services.NewPlanBuilder(c.Engine)

	c.AddTaskHandler = commands.NewAddTaskHandler(c.TaskRepo, c.Clock, c.Logger, c.Metrics)
	c.CompleteTaskHandler = commands.NewCompleteTaskHandler(c.TaskRepo, c.Logger, c.Metrics)
	c.ToggleTaskHandler = commands.NewToggleTaskHandler(c.TaskRepo, c.Logger, c.Metrics)
	c.DeleteTaskHandler = commands.NewDeleteTaskHandler(c.TaskRepo, c.Logger, c.Metrics)

	c.ListTasksHandler = queries.NewListTasksHandler(c.TaskRepo, c.Logger, c.Metrics)

	c.RankTasksHandler = queries.NewRankTasksHandler(c.TaskRepo, c.Engine, c.Clock, c.Logger, c.Metrics)
	c.GetDailyPlanHandler = queries.NewGetDailyPlanHandler(
		c.TaskRepo,
		c.PlanBuilder,
		queries.PlanCollaborators{
			Cache:     c.PlanCache,
			Publisher: c.EventPublisher,
			CacheTTL:  c.Config.PlanCacheTTL,
		},
		c.Clock,
		c.Logger,
		c.Metrics,
	)
	c.GetCachedPlanHandler = queries.NewGetCachedPlanHandler(c.PlanCache, c.Clock, c.Logger, c.Metrics)
	c.SuggestHandler = queries.NewSuggestHandler(c.TaskRepo, c.Engine, c.Clock, c.Logger, c.Metrics)
	c.ExplainTaskHandler = queries.NewExplainTaskHandler(c.TaskRepo, c.Engine, c.Clock)
}

// Close releases every connection the container opened.
func (c *Container) Close() {
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis connection", "error", err)
		}
	}

	if c.DBConn != nil {
		if err := c.DBConn.Close(); err != nil {
			c.Logger.Warn("error closing database connection", "error", err)
		} else {
			c.Logger.Info("database connection closed", "driver", c.DBDriver)
		}
	}
}
