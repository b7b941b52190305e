package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is anything whose liveness the health endpoint reports.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to the Pinger interface.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type Handler struct {
	deps map[string]Pinger
}

func NewHandler(deps map[string]Pinger) *Handler {
	return &Handler{deps: deps}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.check)
}

// check pings every dependency with a short deadline. Any failure flips the
// overall status to degraded but still returns 200, so load balancers keep
// routing while operators see which backend is down.
func (h *Handler) check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	status := "ok"
	deps := gin.H{}
	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			deps[name] = "down"
			status = "degraded"
			continue
		}
		deps[name] = "ok"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       status,
		"dependencies": deps,
		"time":         time.Now().UTC(),
	})
}
