package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
	"github.com/crewlearn/crewlearn-backend/internal/http/response"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
	"github.com/crewlearn/crewlearn-backend/internal/services"
)

type ContentHandler struct {
	log     *logger.Logger
	content services.ContentService
}

func NewContentHandler(log *logger.Logger, content services.ContentService) *ContentHandler {
	return &ContentHandler{
		log:     log.With("handler", "ContentHandler"),
		content: content,
	}
}

func (h *ContentHandler) CreateCourse(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	var req struct {
		Title            string `json:"title" binding:"required"`
		Description      string `json:"description"`
		EstimatedMinutes int    `json:"estimated_minutes"`
	}
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.content.CreateCourse(c.Request.Context(), services.CreateCourseInput{
		TenantID:         tenantID,
		Title:            req.Title,
		Description:      req.Description,
		EstimatedMinutes: req.EstimatedMinutes,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, course)
}

func (h *ContentHandler) ListCourses(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	courses, err := h.content.ListCourses(c.Request.Context(), tenantID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"courses": courses})
}

func (h *ContentHandler) GetCourse(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	detail, err := h.content.GetCourse(c.Request.Context(), tenantID, id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, detail)
}

func (h *ContentHandler) SetCourseStatus(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	err := h.content.SetCourseStatus(c.Request.Context(), tenantID, courseID, types.ContentStatus(req.Status))
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"course_id": courseID, "status": req.Status})
}

func (h *ContentHandler) SetCourseBranches(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		BranchIDs []uuid.UUID `json:"branch_ids"`
	}
	if !bindJSON(c, &req) {
		return
	}
	err := h.content.SetCourseBranches(c.Request.Context(), domainagg.SetCourseBranchesInput{
		TenantID:  tenantID,
		CourseID:  courseID,
		BranchIDs: req.BranchIDs,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"course_id": courseID, "branch_ids": req.BranchIDs})
}

func (h *ContentHandler) AddModule(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Title string `json:"title" binding:"required"`
		Order int    `json:"order"`
	}
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.content.AddModule(c.Request.Context(), domainagg.AddModuleInput{
		TenantID: tenantID,
		CourseID: courseID,
		Title:    req.Title,
		Order:    req.Order,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"module_id": out.ModuleID, "order": out.Order})
}

func (h *ContentHandler) AddLesson(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	moduleID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Title               string     `json:"title" binding:"required"`
		Kind                string     `json:"kind" binding:"required"`
		Order               int        `json:"order"`
		TextContent         string     `json:"text_content"`
		VideoURL            string     `json:"video_url"`
		FileKey             string     `json:"file_key"`
		SOPID               *uuid.UUID `json:"sop_id"`
		ChecklistTemplateID *uuid.UUID `json:"checklist_template_id"`
		QuizID              *uuid.UUID `json:"quiz_id"`
	}
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.content.AddLesson(c.Request.Context(), domainagg.AddLessonInput{
		TenantID:            tenantID,
		ModuleID:            moduleID,
		Title:               req.Title,
		Kind:                req.Kind,
		Order:               req.Order,
		TextContent:         req.TextContent,
		VideoURL:            req.VideoURL,
		FileKey:             req.FileKey,
		SOPID:               req.SOPID,
		ChecklistTemplateID: req.ChecklistTemplateID,
		QuizID:              req.QuizID,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"lesson_id": out.LessonID, "order": out.Order})
}

func (h *ContentHandler) CreatePath(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}
	if !bindJSON(c, &req) {
		return
	}
	path, err := h.content.CreatePath(c.Request.Context(), services.CreatePathInput{
		TenantID:    tenantID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, path)
}

func (h *ContentHandler) ListPaths(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	paths, err := h.content.ListPaths(c.Request.Context(), tenantID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"paths": paths})
}

func (h *ContentHandler) AddCourseToPath(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	pID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		CourseID uuid.UUID `json:"course_id" binding:"required"`
		Order    int       `json:"order"`
	}
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.content.AddCourseToPath(c.Request.Context(), domainagg.AddCourseToPathInput{
		TenantID: tenantID,
		PathID:   pID,
		CourseID: req.CourseID,
		Order:    req.Order,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"entry_id": out.EntryID, "order": out.Order})
}

func (h *ContentHandler) ListPathCourses(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	pID, ok := pathID(c, "id")
	if !ok {
		return
	}
	entries, err := h.content.ListPathCourses(c.Request.Context(), tenantID, pID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"courses": entries})
}

func (h *ContentHandler) CreateResource(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	var req struct {
		Title       string `json:"title" binding:"required"`
		FileKey     string `json:"file_key" binding:"required"`
		Description string `json:"description"`
	}
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.content.CreateResource(c.Request.Context(), services.CreateResourceInput{
		TenantID:    tenantID,
		Title:       req.Title,
		FileKey:     req.FileKey,
		Description: req.Description,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, res)
}

func (h *ContentHandler) ListResources(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	resources, err := h.content.ListResources(c.Request.Context(), tenantID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"resources": resources})
}
