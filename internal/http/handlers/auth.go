package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
	"github.com/crewlearn/crewlearn-backend/internal/http/response"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
	"github.com/crewlearn/crewlearn-backend/internal/services"
)

type AuthHandler struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		log:         log.With("handler", "AuthHandler"),
		authService: authService,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username   string     `json:"username" binding:"required"`
		Email      string     `json:"email" binding:"required"`
		Password   string     `json:"password" binding:"required"`
		Phone      string     `json:"phone"`
		EmployeeID string     `json:"employee_id"`
		TenantID   *uuid.UUID `json:"tenant_id"`
	}
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.authService.RegisterUser(c.Request.Context(), domainagg.RegisterUserInput{
		TenantID:   req.TenantID,
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		Phone:      req.Phone,
		EmployeeID: req.EmployeeID,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"user_id": out.UserID})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.authService.LoginUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	response.RespondOK(c, gin.H{
		"access_token": out.AccessToken,
		"user_id":      out.UserID,
		"tenant_id":    out.TenantID,
		"expires_at":   out.ExpiresAt,
	})
}
