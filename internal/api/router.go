package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/accountly/user-service/internal/api/handler"
	"github.com/accountly/user-service/internal/api/middleware"
	"github.com/accountly/user-service/internal/core/service"
	"github.com/accountly/user-service/internal/infrastructure/config"
	mongodb "github.com/accountly/user-service/internal/infrastructure/db/mongo"
	"github.com/accountly/user-service/internal/infrastructure/security"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS()) // any origin
	e.Use(echoprometheus.NewMiddleware("user_api"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	hasher := security.NewBcryptHasher(0)
	issuer := security.NewJWTIssuer(cfg.JWTSecret, cfg.TokenExpire)
	userService := service.NewUserService(userRepo, hasher, issuer, log)
	userHandler := handler.NewUserHandler(userService)

	// Tokens are issued but no user route checks them yet; the
	// middleware exists for routes that will need it.
	authMiddleware := middleware.Auth(cfg.JWTSecret)
	_ = authMiddleware

	// --- User routes ---
	users := e.Group("/api/users")
	users.POST("/register", userHandler.Register)
	users.POST("/login-user", userHandler.Login)
	users.GET("/all", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Health probes ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – is the database up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
