package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dataagg "github.com/crewlearn/crewlearn-backend/internal/data/aggregates"
	"github.com/crewlearn/crewlearn-backend/internal/data/repos"
	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
)

type CertificateService interface {
	Issue(ctx context.Context, in domainagg.IssueCertificateInput) (domainagg.IssueCertificateResult, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*types.Certificate, error)

	// VerifyByCode is the public verification lookup; codes are matched
	// case-insensitively.
	VerifyByCode(ctx context.Context, code string) (*types.Certificate, error)
}

type certificateService struct {
	db           *gorm.DB
	log          *logger.Logger
	certificates repos.CertificateRepo
	agg          domainagg.CertificateAggregate
}

func NewCertificateService(
	db *gorm.DB,
	log *logger.Logger,
	certificates repos.CertificateRepo,
	agg domainagg.CertificateAggregate,
) CertificateService {
	return &certificateService{
		db:           db,
		log:          log.With("service", "CertificateService"),
		certificates: certificates,
		agg:          agg,
	}
}

func (s *certificateService) Issue(ctx context.Context, in domainagg.IssueCertificateInput) (domainagg.IssueCertificateResult, error) {
	return s.agg.IssueCertificate(ctx, in)
}

func (s *certificateService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*types.Certificate, error) {
	certificates, err := s.certificates.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	return certificates, nil
}

func (s *certificateService) VerifyByCode(ctx context.Context, code string) (*types.Certificate, error) {
	const op = "Progress.VerifyCertificate"

	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing code", nil)
	}
	certificate, err := s.certificates.GetByCode(ctx, nil, code)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	return certificate, nil
}
