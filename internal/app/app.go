package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/callscope/core/internal/config"
	"github.com/callscope/core/internal/database"
	"github.com/callscope/core/internal/middleware"
	pkgredis "github.com/callscope/core/internal/pkg/redis"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	mongo  *database.Mongo
	pg     *pgxpool.Pool
	redis  *pkgredis.Client
	logger *zap.Logger
}

// New initializes the application: config → Mongo → Postgres → Redis → routes.
func New(ctx context.Context, logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	mongo, err := database.ConnectMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		return nil, fmt.Errorf("mongo: %w", err)
	}

	pg, err := database.ConnectPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	rc, err := pkgredis.Connect(cfg.Redis.URLValue())
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))

	app := &App{cfg: cfg, router: router, mongo: mongo, pg: pg, redis: rc, logger: logger}
	app.registerRoutes()

	return app, nil
}

// corsConfig allows the configured dashboard origins with credentials so the
// session cookie survives cross-origin requests. Development allows any
// origin.
func corsConfig(cfg *config.AppConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "x-idempotence"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		patterns := cfg.AllowedOrigins
		c.AllowOriginFunc = func(origin string) bool {
			host := extractOriginHost(origin)
			for _, pattern := range patterns {
				if matchOriginPattern(pattern, host) {
					return true
				}
			}
			return false
		}
	} else {
		c.AllowOriginFunc = func(origin string) bool { return true }
	}
	return c
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown releases database and cache connections.
func (a *App) Shutdown(ctx context.Context) {
	if err := a.mongo.Close(ctx); err != nil {
		a.logger.Warn("mongo close", zap.Error(err))
	}
	a.pg.Close()
	if err := a.redis.Close(); err != nil {
		a.logger.Warn("redis close", zap.Error(err))
	}
}
