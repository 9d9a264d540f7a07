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

type CreateSOPInput struct {
	TenantID uuid.UUID
	Title    string
}

type SOPService interface {
	CreateSOP(ctx context.Context, in CreateSOPInput) (*types.SOP, error)
	ListSOPs(ctx context.Context, tenantID uuid.UUID) ([]*types.SOP, error)

	AddVersion(ctx context.Context, in domainagg.AddSOPVersionInput) (domainagg.AddSOPVersionResult, error)
	PublishVersion(ctx context.Context, in domainagg.PublishSOPVersionInput) (domainagg.PublishSOPVersionResult, error)
	ListVersions(ctx context.Context, tenantID, sopID uuid.UUID) ([]*types.SOPVersion, error)

	// GetPublished returns the latest published version of a SOP, which
	// is what the learner-facing surface serves.
	GetPublished(ctx context.Context, tenantID, sopID uuid.UUID) (*types.SOPVersion, error)
}

type sopService struct {
	db       *gorm.DB
	log      *logger.Logger
	sops     repos.SOPRepo
	versions repos.SOPVersionRepo
	agg      domainagg.SOPAggregate
}

func NewSOPService(
	db *gorm.DB,
	log *logger.Logger,
	sops repos.SOPRepo,
	versions repos.SOPVersionRepo,
	agg domainagg.SOPAggregate,
) SOPService {
	return &sopService{
		db:       db,
		log:      log.With("service", "SOPService"),
		sops:     sops,
		versions: versions,
		agg:      agg,
	}
}

func (s *sopService) CreateSOP(ctx context.Context, in CreateSOPInput) (*types.SOP, error) {
	const op = "Learning.CreateSOP"

	title := strings.TrimSpace(in.Title)
	if in.TenantID == uuid.Nil || title == "" {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "tenant_id and title are required", nil)
	}
	var created *types.SOP
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sop, err := s.sops.Create(ctx, tx, &types.SOP{
			TenantID: in.TenantID,
			Title:    title,
			IsActive: true,
		})
		if err != nil {
			return err
		}
		created = sop
		return nil
	})
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	return created, nil
}

func (s *sopService) ListSOPs(ctx context.Context, tenantID uuid.UUID) ([]*types.SOP, error) {
	sops, err := s.sops.GetByTenantID(ctx, nil, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list sops: %w", err)
	}
	return sops, nil
}

func (s *sopService) AddVersion(ctx context.Context, in domainagg.AddSOPVersionInput) (domainagg.AddSOPVersionResult, error) {
	return s.agg.AddVersion(ctx, in)
}

func (s *sopService) PublishVersion(ctx context.Context, in domainagg.PublishSOPVersionInput) (domainagg.PublishSOPVersionResult, error) {
	return s.agg.PublishVersion(ctx, in)
}

func (s *sopService) ListVersions(ctx context.Context, tenantID, sopID uuid.UUID) ([]*types.SOPVersion, error) {
	const op = "Learning.ListSOPVersions"

	if err := s.requireOwnedSOP(ctx, op, tenantID, sopID); err != nil {
		return nil, err
	}
	versions, err := s.versions.GetBySOPID(ctx, nil, sopID)
	if err != nil {
		return nil, fmt.Errorf("list sop versions: %w", err)
	}
	return versions, nil
}

func (s *sopService) GetPublished(ctx context.Context, tenantID, sopID uuid.UUID) (*types.SOPVersion, error) {
	const op = "Learning.GetPublishedSOP"

	if err := s.requireOwnedSOP(ctx, op, tenantID, sopID); err != nil {
		return nil, err
	}
	version, err := s.versions.LatestPublishedBySOPID(ctx, nil, sopID)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	return version, nil
}

func (s *sopService) requireOwnedSOP(ctx context.Context, op string, tenantID, sopID uuid.UUID) error {
	sop, err := s.sops.GetByID(ctx, nil, sopID)
	if err != nil {
		return dataagg.MapError(op, err)
	}
	if sop.TenantID != tenantID {
		return domainagg.NewError(domainagg.CodeNotFound, op, "sop not found", nil)
	}
	return nil
}
