package debug

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/callscope/core/internal/config"
	"github.com/callscope/core/internal/modules/health"
)

// redactedHeaders are never echoed back, even in development.
var redactedHeaders = map[string]bool{
	"authorization": true,
	"cookie":        true,
}

type Handler struct {
	cfg   *config.AppConfig
	mongo health.Pinger
}

func NewHandler(cfg *config.AppConfig, mongo health.Pinger) *Handler {
	return &Handler{cfg: cfg, mongo: mongo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/debug", h.echo)
}

// echo mirrors the request back for troubleshooting CORS and cookie issues.
// Credentials are redacted; cookies are reported by name only.
func (h *Handler) echo(c *gin.Context) {
	headers := gin.H{}
	for name, values := range c.Request.Header {
		if redactedHeaders[strings.ToLower(name)] {
			headers[name] = "[redacted]"
			continue
		}
		headers[name] = strings.Join(values, ", ")
	}

	cookieNames := []string{}
	for _, ck := range c.Request.Cookies() {
		cookieNames = append(cookieNames, ck.Name)
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	mongoUp := h.mongo != nil && h.mongo.Ping(ctx) == nil

	c.JSON(http.StatusOK, gin.H{
		"headers": headers,
		"cookies": cookieNames,
		"environment": gin.H{
			"env":             h.cfg.Env,
			"mongo_connected": mongoUp,
		},
	})
}
