package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
	"github.com/crewlearn/crewlearn-backend/internal/http/response"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
	"github.com/crewlearn/crewlearn-backend/internal/requestdata"
	"github.com/crewlearn/crewlearn-backend/internal/services"
)

type AssignmentHandler struct {
	log         *logger.Logger
	assignments services.AssignmentService
}

func NewAssignmentHandler(log *logger.Logger, assignments services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		log:         log.With("handler", "AssignmentHandler"),
		assignments: assignments,
	}
}

func (h *AssignmentHandler) Create(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	var req struct {
		Kind           string     `json:"kind" binding:"required"`
		CourseID       *uuid.UUID `json:"course_id"`
		PathID         *uuid.UUID `json:"path_id"`
		TargetUserID   *uuid.UUID `json:"target_user_id"`
		TargetBranchID *uuid.UUID `json:"target_branch_id"`
		TargetRoleID   *uuid.UUID `json:"target_role_id"`
		DueAt          *time.Time `json:"due_at"`
	}
	if !bindJSON(c, &req) {
		return
	}
	in := domainagg.CreateAssignmentInput{
		TenantID:       tenantID,
		Kind:           req.Kind,
		CourseID:       req.CourseID,
		PathID:         req.PathID,
		TargetUserID:   req.TargetUserID,
		TargetBranchID: req.TargetBranchID,
		TargetRoleID:   req.TargetRoleID,
		DueAt:          req.DueAt,
	}
	if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil && rd.UserID != uuid.Nil {
		creator := rd.UserID
		in.CreatedByID = &creator
	}
	out, err := h.assignments.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"assignment_id": out.AssignmentID})
}

func (h *AssignmentHandler) Deactivate(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	assignmentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.assignments.Deactivate(c.Request.Context(), domainagg.DeactivateAssignmentInput{
		TenantID:     tenantID,
		AssignmentID: assignmentID,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"assignment_id":    out.AssignmentID,
		"already_inactive": out.AlreadyInactive,
	})
}

func (h *AssignmentHandler) ListActive(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	assignments, err := h.assignments.ListActive(c.Request.Context(), tenantID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"assignments": assignments})
}

func (h *AssignmentHandler) ListMine(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	assignments, err := h.assignments.ListForUser(c.Request.Context(), userID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"assignments": assignments})
}
