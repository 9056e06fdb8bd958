package api

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/punchline/punchline-api/internal/api/handler"
	"github.com/punchline/punchline-api/internal/api/middleware"
	"github.com/punchline/punchline-api/internal/core/domain"
	"github.com/punchline/punchline-api/internal/core/security"
	"github.com/punchline/punchline-api/internal/core/service"
	"github.com/punchline/punchline-api/internal/infrastructure/db/postgres"
	"github.com/punchline/punchline-api/internal/infrastructure/db/redis"
)

// Options carries everything the router needs to assemble the service graph.
type Options struct {
	Pool      *pgxpool.Pool
	Redis     *goredis.Client
	JWTSecret string
	TokenTTL  time.Duration
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("punchline"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(opts.Pool)
	jokeRepo := postgres.NewJokeRepository(opts.Pool)
	userCache := redis.NewUserCache(opts.Redis, opts.Logger)

	hasher := security.NewArgon2Hasher()
	tokens := security.NewTokenService(opts.JWTSecret)

	registrationService := service.NewRegistrationService(userRepo, hasher, opts.Logger)
	loginService := service.NewLoginService(userRepo, hasher, tokens, opts.TokenTTL, opts.Logger)
	userService := service.NewUserService(userRepo, userCache, opts.Logger)
	jokeService := service.NewJokeService(jokeRepo, opts.Logger)

	authHandler := handler.NewAuthHandler(registrationService, loginService)
	userHandler := handler.NewUserHandler(userService)
	jokeHandler := handler.NewJokeHandler(jokeService)

	requireAuth := middleware.Auth(tokens)
	optionalAuth := middleware.OptionalAuth(tokens)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- User routes ---
	e.GET("/users/id/:id", userHandler.GetOwnProfile, requireAuth)
	e.GET("/users/:username", userHandler.GetProfile, optionalAuth)
	e.POST("/users/search", userHandler.Search, optionalAuth)
	e.POST("/users/:username/role", userHandler.ChangeRole, requireAuth, middleware.RequireRole(domain.RoleAdmin))

	// --- Joke routes ---
	e.GET("/jokes", jokeHandler.List)
	e.POST("/jokes", jokeHandler.Create, requireAuth, middleware.DisallowRole(domain.RoleNone))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(opts.Pool, opts.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
