package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nearcare/directory-api/internal/api/handler"
	"github.com/nearcare/directory-api/internal/api/middleware"
	"github.com/nearcare/directory-api/internal/core/domain"
	"github.com/nearcare/directory-api/internal/core/service"
	mongodb "github.com/nearcare/directory-api/internal/infrastructure/db/mongo"
	redisdb "github.com/nearcare/directory-api/internal/infrastructure/db/redis"
	"github.com/nearcare/directory-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; without it tokens are stateless and no logout route exists.
func NewRouter(db *mongo.Database, rdb *goredis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("directory"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	users := service.NewUserService(userRepo, tokens, log)

	var denylist *redisdb.TokenDenylist
	var gateDenylist middleware.Denylist
	if rdb != nil {
		denylist = redisdb.NewTokenDenylist(rdb, tokens.TTL())
		gateDenylist = denylist
	}
	authGate := middleware.Auth(tokens, gateDenylist)

	authHandler := handler.NewAuthHandler(users, tokens, denylist)
	userHandler := handler.NewUserHandler(users)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	if denylist != nil {
		auth.POST("/logout", authHandler.Logout, authGate)
	}

	// --- User routes ---
	// The gate is an attachable capability: the deployer decides whether the
	// directory is public (the default) or bearer-token protected.
	user := e.Group("/api/user")
	if cfg.AuthRequired {
		user.Use(authGate)
	}
	user.GET("/getNearbyUsers", userHandler.GetNearby)
	user.GET("/allUsers", userHandler.GetAll)
	user.PUT("/userById", userHandler.Update)
	user.DELETE("/userById", userHandler.Delete)
	user.GET("/userDataById", userHandler.GetByID)
	if cfg.AuthRequired {
		user.POST("/createUser", userHandler.Create, middleware.RBAC(domain.RoleAdmin))
	} else {
		user.POST("/createUser", userHandler.Create)
	}

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
