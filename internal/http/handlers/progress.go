package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
	"github.com/crewlearn/crewlearn-backend/internal/http/response"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
	"github.com/crewlearn/crewlearn-backend/internal/services"
)

type ProgressHandler struct {
	log      *logger.Logger
	progress services.ProgressService
}

func NewProgressHandler(log *logger.Logger, progress services.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		log:      log.With("handler", "ProgressHandler"),
		progress: progress,
	}
}

func (h *ProgressHandler) Enroll(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req struct {
		CourseID *uuid.UUID `json:"course_id"`
		PathID   *uuid.UUID `json:"path_id"`
	}
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.progress.Enroll(c.Request.Context(), domainagg.EnrollInput{
		TenantID: tenantID,
		UserID:   userID,
		CourseID: req.CourseID,
		PathID:   req.PathID,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"enrollment_id": out.EnrollmentID, "enrolled_at": out.EnrolledAt})
}

func (h *ProgressHandler) ListMyEnrollments(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	enrollments, err := h.progress.ListEnrollments(c.Request.Context(), userID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"enrollments": enrollments})
}

func (h *ProgressHandler) CompleteEnrollment(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	enrollmentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.progress.CompleteEnrollment(c.Request.Context(), domainagg.CompleteEnrollmentInput{
		TenantID:     tenantID,
		UserID:       userID,
		EnrollmentID: enrollmentID,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"enrollment_id":     out.EnrollmentID,
		"completed_at":      out.CompletedAt,
		"already_completed": out.AlreadyCompleted,
	})
}

func (h *ProgressHandler) RecordLessonProgress(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	lessonID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Percent             int `json:"percent"`
		LastPositionSeconds int `json:"last_position_seconds"`
	}
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.progress.RecordLessonProgress(c.Request.Context(), domainagg.RecordLessonProgressInput{
		TenantID:            tenantID,
		UserID:              userID,
		LessonID:            lessonID,
		Percent:             req.Percent,
		LastPositionSeconds: req.LastPositionSeconds,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"progress_id":  out.ProgressID,
		"percent":      out.Percent,
		"completed_at": out.CompletedAt,
	})
}

func (h *ProgressHandler) GetCourseProgress(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	progress, err := h.progress.GetCourseProgress(c.Request.Context(), userID, courseID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, progress)
}
