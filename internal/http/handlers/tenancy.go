package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
	"github.com/crewlearn/crewlearn-backend/internal/http/response"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
	"github.com/crewlearn/crewlearn-backend/internal/services"
)

type TenancyHandler struct {
	log     *logger.Logger
	tenancy services.TenancyService
}

func NewTenancyHandler(log *logger.Logger, tenancy services.TenancyService) *TenancyHandler {
	return &TenancyHandler{
		log:     log.With("handler", "TenancyHandler"),
		tenancy: tenancy,
	}
}

func (h *TenancyHandler) CreateTenant(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Slug     string `json:"slug" binding:"required"`
		PlanName string `json:"plan_name"`
	}
	if !bindJSON(c, &req) {
		return
	}
	tenant, err := h.tenancy.CreateTenant(c.Request.Context(), services.CreateTenantInput{
		Name:     req.Name,
		Slug:     req.Slug,
		PlanName: req.PlanName,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, tenant)
}

func (h *TenancyHandler) ListTenants(c *gin.Context) {
	tenants, err := h.tenancy.ListTenants(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"tenants": tenants})
}

func (h *TenancyHandler) GetTenant(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	tenant, err := h.tenancy.GetTenant(c.Request.Context(), tenantID, id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, tenant)
}

func (h *TenancyHandler) CreateBranch(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name" binding:"required"`
		Code string `json:"code"`
		City string `json:"city"`
	}
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.tenancy.CreateBranch(c.Request.Context(), domainagg.CreateBranchInput{
		TenantID: tenantID,
		Name:     req.Name,
		Code:     req.Code,
		City:     req.City,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"branch_id": out.BranchID})
}

func (h *TenancyHandler) ListBranches(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	branches, err := h.tenancy.ListBranches(c.Request.Context(), tenantID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"branches": branches})
}

func (h *TenancyHandler) CreateRole(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	var req struct {
		Name          string `json:"name" binding:"required"`
		IsManagerRole bool   `json:"is_manager_role"`
	}
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.tenancy.CreateRole(c.Request.Context(), domainagg.CreateRoleInput{
		TenantID:      tenantID,
		Name:          req.Name,
		IsManagerRole: req.IsManagerRole,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"role_id": out.RoleID})
}

func (h *TenancyHandler) ListRoles(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	roles, err := h.tenancy.ListRoles(c.Request.Context(), tenantID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"roles": roles})
}

func (h *TenancyHandler) ListUsers(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	users, err := h.tenancy.ListUsers(c.Request.Context(), tenantID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"users": users})
}

func (h *TenancyHandler) GetUser(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := h.tenancy.GetUser(c.Request.Context(), tenantID, id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, user)
}

func (h *TenancyHandler) AttachUserToBranch(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		BranchID uuid.UUID `json:"branch_id" binding:"required"`
		Primary  bool      `json:"primary"`
	}
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.tenancy.AttachUserToBranch(c.Request.Context(), domainagg.AttachUserToBranchInput{
		TenantID: tenantID,
		UserID:   userID,
		BranchID: req.BranchID,
		Primary:  req.Primary,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"user_branch_id":   out.UserBranchID,
		"already_attached": out.AlreadyAttached,
		"demoted_primary":  out.DemotedPrimary,
	})
}

func (h *TenancyHandler) GrantRole(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		RoleID uuid.UUID `json:"role_id" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.tenancy.GrantRole(c.Request.Context(), domainagg.GrantRoleInput{
		TenantID: tenantID,
		UserID:   userID,
		RoleID:   req.RoleID,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"user_role_id": out.UserRoleID})
}

func (h *TenancyHandler) RevokeRole(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	roleID, ok := pathID(c, "roleId")
	if !ok {
		return
	}
	err := h.tenancy.RevokeRole(c.Request.Context(), domainagg.RevokeRoleInput{
		TenantID: tenantID,
		UserID:   userID,
		RoleID:   roleID,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"revoked": true})
}
