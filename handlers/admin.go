package handlers

import (
	"net/http"
	"time"

	"courtflow/services/schedule"
	"courtflow/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes operational endpoints.
type AdminHandler struct {
	Dispatcher schedule.ReminderDispatcher
}

func NewAdminHandler(dispatcher schedule.ReminderDispatcher) *AdminHandler {
	return &AdminHandler{Dispatcher: dispatcher}
}

// TickHandler runs one reminder evaluation pass on demand and returns the
// dispatches it committed. The recurring cron drives the same code path;
// this endpoint exists for observability and testing.
func (h *AdminHandler) TickHandler(c *gin.Context) {
	now := time.Now().UTC()
	if at := c.Query("at"); at != "" {
		parsed, err := time.Parse(time.RFC3339, at)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'at' instant", "details": err.Error()})
			return
		}
		now = parsed
	}

	dispatched, err := h.Dispatcher.Tick(c.Request.Context(), now)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "reminder tick failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"dispatched": dispatched, "count": len(dispatched)})
}

// HealthHandler reports the latest external-service health snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
}
