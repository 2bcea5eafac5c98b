package handlers

import (
	"net/http"
	"time"

	applicationRepo "courtflow/database/repository/application"
	caseRepo "courtflow/database/repository/case"
	"courtflow/models"
	"courtflow/services/schedule"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CaseHandler exposes case filing, lookup and the war-room gate.
type CaseHandler struct {
	Cases    caseRepo.CaseRepository
	Apps     applicationRepo.ApplicationRepository
	Resolver schedule.ConflictResolver
	Service  schedule.NegotiationService
}

func NewCaseHandler(cases caseRepo.CaseRepository, apps applicationRepo.ApplicationRepository,
	resolver schedule.ConflictResolver, svc schedule.NegotiationService) *CaseHandler {
	return &CaseHandler{Cases: cases, Apps: apps, Resolver: resolver, Service: svc}
}

// CreateCaseHandler files a case with its initial trial slot. The slot is
// validated against the jurisdiction pool before the record exists.
func (h *CaseHandler) CreateCaseHandler(c *gin.Context) {
	var input struct {
		CaseNumber      string          `json:"caseNumber" binding:"required"`
		Jurisdiction    string          `json:"jurisdiction" binding:"required"`
		Title           string          `json:"title" binding:"required"`
		Description     string          `json:"description"`
		Slot            models.TimeSlot `json:"slot" binding:"required"`
		TZOffsetMinutes int             `json:"tzOffsetMinutes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if err := h.Resolver.CheckAvailable(ctx, input.Jurisdiction, input.Slot, ""); err != nil {
		writeScheduleError(c, err)
		return
	}

	now := time.Now().UTC()
	newCase := &models.Case{
		ID:              uuid.New().String(),
		CaseNumber:      input.CaseNumber,
		Jurisdiction:    input.Jurisdiction,
		AttorneyID:      c.GetString("userID"),
		Title:           input.Title,
		Description:     input.Description,
		ScheduledDate:   input.Slot.Date,
		ScheduledTime:   input.Slot.Time,
		TZOffsetMinutes: input.TZOffsetMinutes,
		Status:          models.CaseStatusAwaitingTrial,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := h.Cases.Create(ctx, newCase); err != nil {
		writeScheduleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newCase)
}

// GetCaseHandler returns one case record.
func (h *CaseHandler) GetCaseHandler(c *gin.Context) {
	caseRecord, err := h.Cases.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeScheduleError(c, err)
		return
	}
	if caseRecord == nil {
		writeScheduleError(c, schedule.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, caseRecord)
}

// CaseWindowHandler reports whether the war room is open for a case. An
// optional ?at= RFC 3339 instant supports clients probing future windows.
func (h *CaseHandler) CaseWindowHandler(c *gin.Context) {
	now := time.Now().UTC()
	if at := c.Query("at"); at != "" {
		parsed, err := time.Parse(time.RFC3339, at)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'at' instant", "details": err.Error()})
			return
		}
		now = parsed
	}

	window, err := h.Service.EvaluateWindow(c.Request.Context(), c.Param("id"), now)
	if err != nil {
		writeScheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, window)
}

// SubmitApplicationHandler records a juror applying to sit on a case.
func (h *CaseHandler) SubmitApplicationHandler(c *gin.Context) {
	caseID := c.Param("id")
	ctx := c.Request.Context()

	caseRecord, err := h.Cases.GetByID(ctx, caseID)
	if err != nil {
		writeScheduleError(c, err)
		return
	}
	if caseRecord == nil {
		writeScheduleError(c, schedule.ErrNotFound)
		return
	}

	app := &models.JurorApplication{
		ID:        uuid.New().String(),
		CaseID:    caseID,
		JurorID:   c.GetString("userID"),
		Status:    models.ApplicationStatusSubmitted,
		AppliedAt: time.Now().UTC(),
	}
	if err := h.Apps.Insert(ctx, app); err != nil {
		writeScheduleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// ListApplicationsHandler returns the juror applications for a case.
func (h *CaseHandler) ListApplicationsHandler(c *gin.Context) {
	apps, err := h.Apps.ListByCase(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeScheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}
