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

type CreateChecklistTemplateInput struct {
	TenantID    uuid.UUID
	Title       string
	Description string
}

// RunDetail bundles a run with its recorded item results.
type RunDetail struct {
	Run     *types.ChecklistRun
	Results []*types.ChecklistItemResult
}

type ChecklistService interface {
	CreateTemplate(ctx context.Context, in CreateChecklistTemplateInput) (*types.ChecklistTemplate, error)
	ListTemplates(ctx context.Context, tenantID uuid.UUID) ([]*types.ChecklistTemplate, error)
	ListItems(ctx context.Context, tenantID, templateID uuid.UUID) ([]*types.ChecklistItem, error)

	AddItem(ctx context.Context, in domainagg.AddChecklistItemInput) (domainagg.AddChecklistItemResult, error)
	StartRun(ctx context.Context, in domainagg.StartChecklistRunInput) (domainagg.StartChecklistRunResult, error)
	RecordItemResult(ctx context.Context, in domainagg.RecordItemResultInput) (domainagg.RecordItemResultResult, error)
	ApproveRun(ctx context.Context, in domainagg.ApproveChecklistRunInput) (domainagg.ApproveChecklistRunResult, error)

	GetRun(ctx context.Context, tenantID, runID uuid.UUID) (*RunDetail, error)
	ListRuns(ctx context.Context, tenantID uuid.UUID) ([]*types.ChecklistRun, error)
}

type checklistService struct {
	db        *gorm.DB
	log       *logger.Logger
	templates repos.ChecklistTemplateRepo
	items     repos.ChecklistItemRepo
	runs      repos.ChecklistRunRepo
	results   repos.ChecklistItemResultRepo
	agg       domainagg.ChecklistAggregate
}

func NewChecklistService(
	db *gorm.DB,
	log *logger.Logger,
	templates repos.ChecklistTemplateRepo,
	items repos.ChecklistItemRepo,
	runs repos.ChecklistRunRepo,
	results repos.ChecklistItemResultRepo,
	agg domainagg.ChecklistAggregate,
) ChecklistService {
	return &checklistService{
		db:        db,
		log:       log.With("service", "ChecklistService"),
		templates: templates,
		items:     items,
		runs:      runs,
		results:   results,
		agg:       agg,
	}
}

func (s *checklistService) CreateTemplate(ctx context.Context, in CreateChecklistTemplateInput) (*types.ChecklistTemplate, error) {
	const op = "Learning.CreateChecklistTemplate"

	title := strings.TrimSpace(in.Title)
	if in.TenantID == uuid.Nil || title == "" {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "tenant_id and title are required", nil)
	}
	var created *types.ChecklistTemplate
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tmpl, err := s.templates.Create(ctx, tx, &types.ChecklistTemplate{
			TenantID:    in.TenantID,
			Title:       title,
			Description: in.Description,
		})
		if err != nil {
			return err
		}
		created = tmpl
		return nil
	})
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	return created, nil
}

func (s *checklistService) ListTemplates(ctx context.Context, tenantID uuid.UUID) ([]*types.ChecklistTemplate, error) {
	templates, err := s.templates.GetByTenantID(ctx, nil, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list checklist templates: %w", err)
	}
	return templates, nil
}

func (s *checklistService) ListItems(ctx context.Context, tenantID, templateID uuid.UUID) ([]*types.ChecklistItem, error) {
	const op = "Learning.ListChecklistItems"

	tmpl, err := s.templates.GetByID(ctx, nil, templateID)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	if tmpl.TenantID != tenantID {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, "checklist template not found", nil)
	}
	items, err := s.items.GetByTemplateID(ctx, nil, templateID)
	if err != nil {
		return nil, fmt.Errorf("list checklist items: %w", err)
	}
	return items, nil
}

func (s *checklistService) AddItem(ctx context.Context, in domainagg.AddChecklistItemInput) (domainagg.AddChecklistItemResult, error) {
	return s.agg.AddItem(ctx, in)
}

func (s *checklistService) StartRun(ctx context.Context, in domainagg.StartChecklistRunInput) (domainagg.StartChecklistRunResult, error) {
	return s.agg.StartRun(ctx, in)
}

func (s *checklistService) RecordItemResult(ctx context.Context, in domainagg.RecordItemResultInput) (domainagg.RecordItemResultResult, error) {
	return s.agg.RecordItemResult(ctx, in)
}

func (s *checklistService) ApproveRun(ctx context.Context, in domainagg.ApproveChecklistRunInput) (domainagg.ApproveChecklistRunResult, error) {
	return s.agg.ApproveRun(ctx, in)
}

func (s *checklistService) GetRun(ctx context.Context, tenantID, runID uuid.UUID) (*RunDetail, error) {
	const op = "Progress.GetChecklistRun"

	run, err := s.runs.GetByID(ctx, nil, runID)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	if run.TenantID != tenantID {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, "checklist run not found", nil)
	}
	results, err := s.results.GetByRunID(ctx, nil, runID)
	if err != nil {
		return nil, fmt.Errorf("load run results: %w", err)
	}
	return &RunDetail{Run: run, Results: results}, nil
}

func (s *checklistService) ListRuns(ctx context.Context, tenantID uuid.UUID) ([]*types.ChecklistRun, error) {
	runs, err := s.runs.GetByTenantID(ctx, nil, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list checklist runs: %w", err)
	}
	return runs, nil
}
