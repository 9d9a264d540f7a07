package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
	"github.com/crewlearn/crewlearn-backend/internal/http/response"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
	"github.com/crewlearn/crewlearn-backend/internal/services"
)

type ChecklistHandler struct {
	log        *logger.Logger
	checklists services.ChecklistService
}

func NewChecklistHandler(log *logger.Logger, checklists services.ChecklistService) *ChecklistHandler {
	return &ChecklistHandler{
		log:        log.With("handler", "ChecklistHandler"),
		checklists: checklists,
	}
}

func (h *ChecklistHandler) CreateTemplate(c *gin.Context) {
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
	tpl, err := h.checklists.CreateTemplate(c.Request.Context(), services.CreateChecklistTemplateInput{
		TenantID:    tenantID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, tpl)
}

func (h *ChecklistHandler) ListTemplates(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	templates, err := h.checklists.ListTemplates(c.Request.Context(), tenantID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"templates": templates})
}

func (h *ChecklistHandler) AddItem(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	templateID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Text       string `json:"text" binding:"required"`
		Order      int    `json:"order"`
		IsRequired bool   `json:"is_required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.checklists.AddItem(c.Request.Context(), domainagg.AddChecklistItemInput{
		TenantID:   tenantID,
		TemplateID: templateID,
		Text:       req.Text,
		Order:      req.Order,
		IsRequired: req.IsRequired,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"item_id": out.ItemID, "order": out.Order})
}

func (h *ChecklistHandler) ListItems(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	templateID, ok := pathID(c, "id")
	if !ok {
		return
	}
	items, err := h.checklists.ListItems(c.Request.Context(), tenantID, templateID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"items": items})
}

func (h *ChecklistHandler) StartRun(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	templateID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		BranchID *uuid.UUID `json:"branch_id"`
		Notes    string     `json:"notes"`
	}
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.checklists.StartRun(c.Request.Context(), domainagg.StartChecklistRunInput{
		TenantID:      tenantID,
		TemplateID:    templateID,
		BranchID:      req.BranchID,
		PerformedByID: userID,
		Notes:         req.Notes,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"run_id": out.RunID, "performed_at": out.PerformedAt})
}

func (h *ChecklistHandler) RecordItemResult(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	runID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		ItemID  uuid.UUID `json:"item_id" binding:"required"`
		IsDone  bool      `json:"is_done"`
		Comment string    `json:"comment"`
	}
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.checklists.RecordItemResult(c.Request.Context(), domainagg.RecordItemResultInput{
		TenantID: tenantID,
		RunID:    runID,
		ItemID:   req.ItemID,
		IsDone:   req.IsDone,
		Comment:  req.Comment,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"result_id": out.ResultID, "updated": out.Updated})
}

func (h *ChecklistHandler) ApproveRun(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	runID, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.checklists.ApproveRun(c.Request.Context(), domainagg.ApproveChecklistRunInput{
		TenantID:     tenantID,
		RunID:        runID,
		ApprovedByID: userID,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"run_id":           out.RunID,
		"approved_at":      out.ApprovedAt,
		"already_approved": out.AlreadyApproved,
	})
}

func (h *ChecklistHandler) GetRun(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	runID, ok := pathID(c, "id")
	if !ok {
		return
	}
	detail, err := h.checklists.GetRun(c.Request.Context(), tenantID, runID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, detail)
}

func (h *ChecklistHandler) ListRuns(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	runs, err := h.checklists.ListRuns(c.Request.Context(), tenantID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"runs": runs})
}
