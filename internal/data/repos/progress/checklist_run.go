package progress

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
)

type ChecklistRunRepo interface {
	Create(ctx context.Context, tx *gorm.DB, run *types.ChecklistRun) (*types.ChecklistRun, error)
	GetByID(ctx context.Context, tx *gorm.DB, runID uuid.UUID) (*types.ChecklistRun, error)
	GetByTemplateID(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) ([]*types.ChecklistRun, error)
	GetByTenantID(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.ChecklistRun, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, runID uuid.UUID, updates map[string]any) error
}

type checklistRunRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChecklistRunRepo(db *gorm.DB, baseLog *logger.Logger) ChecklistRunRepo {
	return &checklistRunRepo{db: db, log: baseLog.With("repo", "ChecklistRunRepo")}
}

func (r *checklistRunRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *checklistRunRepo) Create(ctx context.Context, tx *gorm.DB, run *types.ChecklistRun) (*types.ChecklistRun, error) {
	if err := r.conn(tx).WithContext(ctx).Create(run).Error; err != nil {
		return nil, err
	}
	return run, nil
}

func (r *checklistRunRepo) GetByID(ctx context.Context, tx *gorm.DB, runID uuid.UUID) (*types.ChecklistRun, error) {
	var result types.ChecklistRun
	if err := r.conn(tx).WithContext(ctx).
		Where("id = ?", runID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *checklistRunRepo) GetByTemplateID(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) ([]*types.ChecklistRun, error) {
	var results []*types.ChecklistRun
	if err := r.conn(tx).WithContext(ctx).
		Where("template_id = ?", templateID).
		Order("performed_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *checklistRunRepo) GetByTenantID(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.ChecklistRun, error) {
	var results []*types.ChecklistRun
	if err := r.conn(tx).WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("performed_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *checklistRunRepo) UpdateFields(ctx context.Context, tx *gorm.DB, runID uuid.UUID, updates map[string]any) error {
	return r.conn(tx).WithContext(ctx).
		Model(&types.ChecklistRun{}).
		Where("id = ?", runID).
		Updates(updates).Error
}
