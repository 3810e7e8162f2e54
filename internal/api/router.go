package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"

	_ "github.com/taskhive/todo-api/docs"
	"github.com/taskhive/todo-api/internal/api/handler"
	"github.com/taskhive/todo-api/internal/api/middleware"
	"github.com/taskhive/todo-api/internal/core/domain"
	"github.com/taskhive/todo-api/internal/core/service"
	mongodb "github.com/taskhive/todo-api/internal/infrastructure/db/mongo"
	redisdb "github.com/taskhive/todo-api/internal/infrastructure/db/redis"
	"github.com/taskhive/todo-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("todoapi"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	todoRepo := mongodb.NewTodoRepository(db)
	revoker := redisdb.NewRevocationStore(rdb)

	authService := service.NewAuthService(userRepo, revoker, cfg.JWTSecret, cfg.TokenTTL, log)
	todoService := service.NewTodoService(todoRepo, log)
	userService := service.NewUserService(userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	todoHandler := handler.NewTodoHandler(todoService)
	adminHandler := handler.NewAdminHandler(todoService)
	userHandler := handler.NewUserHandler(userService)

	requireAuth := middleware.Auth(cfg.JWTSecret, revoker)
	requireAdmin := middleware.RBAC(domain.RoleAdmin)

	// Per-IP limiter on the credential-guessing surface.
	loginLimiter := echomiddleware.RateLimiter(
		echomiddleware.NewRateLimiterMemoryStore(rate.Limit(cfg.LoginRPS)),
	)

	// --- Auth routes ---
	e.POST("/auth/", authHandler.Register)
	e.POST("/auth/token", authHandler.Token, loginLimiter)
	e.POST("/auth/logout", authHandler.Logout, requireAuth)

	// --- Todo routes (owner-scoped) ---
	todos := e.Group("/todos", requireAuth)
	todos.GET("/", todoHandler.List)
	todos.GET("/:id", todoHandler.Get)
	todos.POST("/", todoHandler.Create)
	todos.PUT("/:id", todoHandler.Update)
	todos.DELETE("/:id", todoHandler.Delete)

	// --- Admin routes ---
	admin := e.Group("/admin", requireAuth, requireAdmin)
	admin.GET("/todo", adminHandler.ListTodos)
	admin.DELETE("/todo/:id", adminHandler.DeleteTodo)

	// --- User self-service routes ---
	user := e.Group("/user", requireAuth)
	user.GET("/", userHandler.Profile)
	user.PUT("/password", userHandler.ChangePassword)
	user.PUT("/update-profile", userHandler.UpdateProfile)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/healthy", healthHandler.Liveness)
	e.GET("/healthy/ready", healthDepsHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
