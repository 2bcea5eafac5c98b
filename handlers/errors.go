package handlers

import (
	"errors"
	"net/http"

	"courtflow/services/schedule"
	"courtflow/utils"

	"github.com/gin-gonic/gin"
)

// writeScheduleError maps the schedule service taxonomy onto HTTP statuses:
// validation 400, stale state 404/409, conflicts 409, everything else 500.
func writeScheduleError(c *gin.Context, err error) {
	var se *schedule.ScheduleError
	if !errors.As(err, &se) {
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
		return
	}

	status := http.StatusInternalServerError
	switch se.Code {
	case "MISSING_REASON", "MALFORMED_SLOT", "SLOT_NOT_OFFERED", "MISSING_SLOTS":
		status = http.StatusBadRequest
	case "NOT_FOUND":
		status = http.StatusNotFound
	case "SLOT_UNAVAILABLE", "DUPLICATE_PENDING_REQUEST", "DUPLICATE_OPEN_PROPOSAL", "ALREADY_RESOLVED":
		status = http.StatusConflict
	}

	c.JSON(status, gin.H{"error": se.Code, "message": se.Message})
}
