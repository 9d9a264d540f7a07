package handlers

import (
	"github.com/gin-gonic/gin"

	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
	"github.com/crewlearn/crewlearn-backend/internal/http/response"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
	"github.com/crewlearn/crewlearn-backend/internal/services"
)

type SOPHandler struct {
	log  *logger.Logger
	sops services.SOPService
}

func NewSOPHandler(log *logger.Logger, sops services.SOPService) *SOPHandler {
	return &SOPHandler{
		log:  log.With("handler", "SOPHandler"),
		sops: sops,
	}
}

func (h *SOPHandler) Create(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	var req struct {
		Title string `json:"title" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	sop, err := h.sops.CreateSOP(c.Request.Context(), services.CreateSOPInput{
		TenantID: tenantID,
		Title:    req.Title,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, sop)
}

func (h *SOPHandler) List(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	sops, err := h.sops.ListSOPs(c.Request.Context(), tenantID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"sops": sops})
}

func (h *SOPHandler) AddVersion(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	sopID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Version int    `json:"version"`
		Content string `json:"content" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.sops.AddVersion(c.Request.Context(), domainagg.AddSOPVersionInput{
		TenantID: tenantID,
		SOPID:    sopID,
		Version:  req.Version,
		Content:  req.Content,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"version_id": out.VersionID, "version": out.Version})
}

func (h *SOPHandler) ListVersions(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	sopID, ok := pathID(c, "id")
	if !ok {
		return
	}
	versions, err := h.sops.ListVersions(c.Request.Context(), tenantID, sopID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"versions": versions})
}

func (h *SOPHandler) PublishVersion(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	versionID, ok := pathID(c, "versionId")
	if !ok {
		return
	}
	out, err := h.sops.PublishVersion(c.Request.Context(), domainagg.PublishSOPVersionInput{
		TenantID:  tenantID,
		VersionID: versionID,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"version_id":        out.VersionID,
		"published_at":      out.PublishedAt,
		"already_published": out.AlreadyPublished,
	})
}

func (h *SOPHandler) GetPublished(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	sopID, ok := pathID(c, "id")
	if !ok {
		return
	}
	version, err := h.sops.GetPublished(c.Request.Context(), tenantID, sopID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, version)
}
