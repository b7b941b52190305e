package app

import (
	"github.com/gin-gonic/gin"

	"github.com/callscope/core/internal/middleware"
	"github.com/callscope/core/internal/modules/auth"
	"github.com/callscope/core/internal/modules/calls"
	"github.com/callscope/core/internal/modules/debug"
	"github.com/callscope/core/internal/modules/health"
	"github.com/callscope/core/internal/pkg/response"
	"github.com/callscope/core/internal/pkg/token"
)

func (a *App) registerRoutes() {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "not found")
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.GET("/", func(c *gin.Context) {
		response.OK(c, gin.H{
			"name":    "callscope-core",
			"version": "1.0.0",
			"status":  "running",
		})
	})

	issuer := token.NewIssuer(a.cfg.JWTSecret, a.cfg.SessionTTL)
	authMW := middleware.Auth(issuer)

	api := r.Group("/api")
	api.Use(middleware.OptionalAuth(issuer))
	api.Use(middleware.RateLimit(a.redis.Raw()))
	api.Use(middleware.Idempotence(a.redis.Raw()))

	authSvc := auth.NewService(auth.NewMongoUserStore(a.mongo.Users()), issuer, a.logger)
	auth.NewHandler(authSvc, a.cfg.IsProd()).RegisterRoutes(api, authMW)

	callsSvc := calls.NewService(calls.NewStore(a.pg), a.logger)
	calls.NewHandler(callsSvc).RegisterRoutes(api, authMW)

	health.NewHandler(map[string]health.Pinger{
		"mongo":    health.PingFunc(a.mongo.Ping),
		"postgres": health.PingFunc(a.pg.Ping),
		"redis":    health.PingFunc(a.redis.Ping),
	}).RegisterRoutes(api)

	debug.NewHandler(a.cfg, health.PingFunc(a.mongo.Ping)).RegisterRoutes(api)
}
