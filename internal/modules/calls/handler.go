package calls

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/callscope/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the call-data endpoints. All of them require auth.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/data", authMW)
	g.GET("", h.list)
	g.GET("/stats", h.stats)
	g.GET("/export", h.export)
}

func (h *Handler) bindFilter(c *gin.Context) (ListFilter, bool) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return ListFilter{}, false
	}
	f, err := q.Filter()
	if err != nil {
		response.BadRequest(c, "invalid filter parameters")
		return ListFilter{}, false
	}
	return f, true
}

// list serves the dashboard table. The body is the bare row array, which is
// what the frontend has always consumed.
func (h *Handler) list(c *gin.Context) {
	f, ok := h.bindFilter(c)
	if !ok {
		return
	}
	rows, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, rows)
}

func (h *Handler) stats(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, st)
}

func (h *Handler) export(c *gin.Context) {
	f, ok := h.bindFilter(c)
	if !ok {
		return
	}
	data, err := h.svc.Export(c.Request.Context(), f)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	filename := fmt.Sprintf("call-summaries-%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
