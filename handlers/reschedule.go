package handlers

import (
	"errors"
	"io"
	"net/http"

	"courtflow/models"
	"courtflow/services/schedule"

	"github.com/gin-gonic/gin"
)

// RescheduleHandler exposes the negotiation flows over HTTP.
type RescheduleHandler struct {
	Service schedule.NegotiationService
}

func NewRescheduleHandler(svc schedule.NegotiationService) *RescheduleHandler {
	return &RescheduleHandler{Service: svc}
}

// CreateRequestHandler lets an attorney ask for a new trial slot.
func (h *RescheduleHandler) CreateRequestHandler(c *gin.Context) {
	var input struct {
		CaseID  string          `json:"caseId" binding:"required"`
		NewSlot models.TimeSlot `json:"newSlot" binding:"required"`
		Reason  string          `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	attorneyID := c.GetString("userID")
	req, err := h.Service.CreateRequest(c.Request.Context(), input.CaseID, attorneyID, input.NewSlot, input.Reason)
	if err != nil {
		writeScheduleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"requestId": req.ID, "request": req})
}

// ApproveRequestHandler resolves a pending request and applies the cascade.
// The body is optional; an approve without comments is a bare POST.
func (h *RescheduleHandler) ApproveRequestHandler(c *gin.Context) {
	requestID := c.Param("id")
	var input struct {
		Comments string `json:"comments"`
	}
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	adminID := c.GetString("userID")
	if err := h.Service.Approve(c.Request.Context(), requestID, adminID, input.Comments); err != nil {
		writeScheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": models.RescheduleStatusApproved})
}

// RejectRequestHandler resolves a pending request without moving the case.
// An empty body falls through to the service, which demands comments.
func (h *RescheduleHandler) RejectRequestHandler(c *gin.Context) {
	requestID := c.Param("id")
	var input struct {
		Comments string `json:"comments"`
	}
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	adminID := c.GetString("userID")
	if err := h.Service.Reject(c.Request.Context(), requestID, adminID, input.Comments); err != nil {
		writeScheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": models.RescheduleStatusRejected})
}

// ProposeSlotsHandler lets an admin offer alternate slots for a case.
func (h *RescheduleHandler) ProposeSlotsHandler(c *gin.Context) {
	var input struct {
		CaseID string            `json:"caseId" binding:"required"`
		Slots  []models.TimeSlot `json:"slots" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	adminID := c.GetString("userID")
	p, err := h.Service.ProposeSlots(c.Request.Context(), input.CaseID, adminID, input.Slots)
	if err != nil {
		writeScheduleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"proposalId": p.ID, "proposal": p})
}

// ConfirmSlotHandler applies the attorney's selection from an open proposal.
func (h *RescheduleHandler) ConfirmSlotHandler(c *gin.Context) {
	var input struct {
		CaseID     string          `json:"caseId" binding:"required"`
		ChosenSlot models.TimeSlot `json:"chosenSlot" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Service.ConfirmSlot(c.Request.Context(), input.CaseID, input.ChosenSlot); err != nil {
		writeScheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "confirmed"})
}

// WithdrawProposalHandler lets an admin retract the case's open proposal.
func (h *RescheduleHandler) WithdrawProposalHandler(c *gin.Context) {
	var input struct {
		CaseID string `json:"caseId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	adminID := c.GetString("userID")
	if err := h.Service.WithdrawProposal(c.Request.Context(), input.CaseID, adminID); err != nil {
		writeScheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": models.ProposalStatusWithdrawn})
}
