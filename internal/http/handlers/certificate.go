package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
	"github.com/crewlearn/crewlearn-backend/internal/http/response"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
	"github.com/crewlearn/crewlearn-backend/internal/services"
)

type CertificateHandler struct {
	log          *logger.Logger
	certificates services.CertificateService
}

func NewCertificateHandler(log *logger.Logger, certificates services.CertificateService) *CertificateHandler {
	return &CertificateHandler{
		log:          log.With("handler", "CertificateHandler"),
		certificates: certificates,
	}
}

func (h *CertificateHandler) Issue(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	var req struct {
		UserID   uuid.UUID  `json:"user_id" binding:"required"`
		CourseID *uuid.UUID `json:"course_id"`
		PathID   *uuid.UUID `json:"path_id"`
	}
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.certificates.Issue(c.Request.Context(), domainagg.IssueCertificateInput{
		TenantID: tenantID,
		UserID:   req.UserID,
		CourseID: req.CourseID,
		PathID:   req.PathID,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{
		"certificate_id": out.CertificateID,
		"code":           out.Code,
		"issued_at":      out.IssuedAt,
	})
}

func (h *CertificateHandler) ListMine(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	certificates, err := h.certificates.ListForUser(c.Request.Context(), userID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"certificates": certificates})
}

// Verify is public. Anyone holding a certificate code can confirm it
// without authenticating.
func (h *CertificateHandler) Verify(c *gin.Context) {
	cert, err := h.certificates.VerifyByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"valid":       true,
		"certificate": cert,
	})
}
