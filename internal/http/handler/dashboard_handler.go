package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Zuckmantra/dashboard-Camila/internal/service"
)

// DashboardHandler serves the aggregate metric endpoints.
type DashboardHandler struct {
	Dashboard *service.DashboardService
}

func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{Dashboard: dashboard}
}

// Stats returns total client count plus the most recent registrations.
func (h *DashboardHandler) Stats(c *gin.Context) {
	limit := queryInt(c, "limit", 10)
	c.JSON(http.StatusOK, h.Dashboard.Stats(c.Request.Context(), limit))
}

// Charts returns the full dashboard payload. Each metric degrades to its
// zero value independently, so a partial database never fails the request.
func (h *DashboardHandler) Charts(c *gin.Context) {
	period := c.DefaultQuery("period", "day")
	days := queryInt(c, "days", 7)
	month := queryInt(c, "month", 0)
	year := queryInt(c, "year", 0)

	c.JSON(http.StatusOK, h.Dashboard.Charts(c.Request.Context(), period, days, month, year))
}

func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
