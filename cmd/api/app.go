package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"interview-booking-api/internal/handlers"
	"interview-booking-api/internal/middleware"
	"interview-booking-api/internal/repositories"
	"interview-booking-api/internal/services"
	"interview-booking-api/internal/validators"
	"interview-booking-api/pkg/cache"
	"interview-booking-api/pkg/config"
	"interview-booking-api/pkg/database"
	"interview-booking-api/pkg/metrics"
	"interview-booking-api/pkg/ratelimit"
	"interview-booking-api/pkg/supervisor"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// App represents the application structure
type App struct {
	Config         *config.Config
	Router         *gin.Engine
	AuthService    *services.AuthService
	AuthHandler    *handlers.AuthHandler
	CompanyHandler *handlers.CompanyHandler
	BookingHandler *handlers.BookingHandler
	RateLimiter    *ratelimit.Limiter
	Throttle       *middleware.Throttle
	Server         *http.Server

	checks map[string]func(context.Context) error
	tasks  []task
}

type task struct {
	name string
	fn   supervisor.Task
}

// repositorySet is everything the services persist through.
type repositorySet struct {
	users     repositories.UserRepository
	companies repositories.CompanyRepository
	bookings  repositories.BookingRepository
	cache     repositories.CompanyCache
}

// Create and initialize a new App instance
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{Config: cfg, checks: map[string]func(context.Context) error{}}

	// Initialize infrastructure
	app.initializeMetrics()
	if err := app.initializeDatabase(ctx); err != nil {
		return nil, err
	}
	if err := app.initializeCache(ctx); err != nil {
		app.cleanup()
		return nil, err
	}
	app.initializeRateLimiter()

	// Initialize business logic
	app.initializeDependencies(app.mongoRepositories())

	// Initialize web layer
	if err := app.initializeRouter(); err != nil {
		app.cleanup()
		return nil, err
	}
	return app, nil
}

// initialize the database connection
func (a *App) initializeDatabase(ctx context.Context) error {
	if err := database.InitDB(ctx, a.Config); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	db := database.NewMongoDatabase(database.DB)
	if err := db.CreateIndexes(ctx); err != nil {
		database.CloseDB()
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	a.checks["MongoDB"] = db.Ping
	return nil
}

// initialize the Redis cache when enabled
func (a *App) initializeCache(ctx context.Context) error {
	if !a.Config.Redis.Enabled {
		return nil
	}
	if err := cache.InitRedis(ctx, a.Config); err != nil {
		return fmt.Errorf("failed to initialize Redis: %w", err)
	}
	a.checks["Redis"] = func(ctx context.Context) error {
		return cache.RedisClient.Ping(ctx).Err()
	}
	return nil
}

// initialize Prometheus metrics
func (a *App) initializeMetrics() {
	metrics.Init()
}

// initialize the request limiter and the auth throttle
func (a *App) initializeRateLimiter() {
	var store ratelimit.Store
	if a.Config.RateLimit.Store == "redis" {
		store = ratelimit.NewRedisStore(cache.RedisClient, a.Config.RateLimit.KeyPrefix)
	} else {
		memory := ratelimit.NewMemoryStore()
		a.background("ratelimit-sweeper", func(ctx context.Context) error {
			return memory.Run(ctx, a.Config.RateLimit.Window)
		})
		store = memory
	}
	a.RateLimiter = ratelimit.NewLimiter(store, a.Config.RateLimit.Window, a.Config.RateLimit.Max)

	a.Throttle = middleware.NewThrottle(rate.Limit(a.Config.Throttle.RPS), a.Config.Throttle.Burst)
	a.background("auth-throttle-cleanup", func(ctx context.Context) error {
		return a.Throttle.Cleanup(ctx, time.Minute, 10*time.Minute)
	})
}

func (a *App) mongoRepositories() repositorySet {
	set := repositorySet{
		users:     repositories.NewUserRepository(database.DB),
		companies: repositories.NewCompanyRepository(database.DB),
		bookings:  repositories.NewBookingRepository(database.DB),
		cache:     repositories.NewNoopCompanyCache(),
	}
	if a.Config.Redis.Enabled {
		set.cache = repositories.NewCompanyCache(cache.New(cache.RedisClient))
	}
	return set
}

// initialize all dependencies
func (a *App) initializeDependencies(repos repositorySet) {
	// validators
	userValidator := validators.NewUserValidator()
	companyValidator := validators.NewCompanyValidator()
	bookingValidator := validators.NewBookingValidator()

	// services
	a.AuthService = services.NewAuthService(repos.users, userValidator, a.Config.JWT.Secret, a.Config.JWT.Expire)
	companyService := services.NewCompanyService(repos.companies, repos.bookings, repos.cache, companyValidator)
	bookingService := services.NewBookingService(repos.bookings, repos.companies, bookingValidator)

	// handlers
	a.AuthHandler = handlers.NewAuthHandler(a.AuthService, a.Config.JWT.CookieExpireDays, a.Config.IsProduction())
	a.CompanyHandler = handlers.NewCompanyHandler(companyService)
	a.BookingHandler = handlers.NewBookingHandler(bookingService)
}

// set up the Gin router with middleware and routes
func (a *App) initializeRouter() error {
	if a.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	a.Router = gin.New()
	if err := a.setupMiddleware(); err != nil {
		return err
	}
	a.setupRoutes()
	return nil
}

// background registers a task the supervisor runs next to the listener.
func (a *App) background(name string, fn supervisor.Task) {
	a.tasks = append(a.tasks, task{name: name, fn: fn})
}

// cleanup operations
func (a *App) cleanup() {
	database.CloseDB()
	cache.CloseRedis()
}
