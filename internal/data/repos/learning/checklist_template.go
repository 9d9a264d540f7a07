package learning

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
)

type ChecklistTemplateRepo interface {
	Create(ctx context.Context, tx *gorm.DB, template *types.ChecklistTemplate) (*types.ChecklistTemplate, error)
	GetByID(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) (*types.ChecklistTemplate, error)
	GetByTenantID(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.ChecklistTemplate, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) error
}

type checklistTemplateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChecklistTemplateRepo(db *gorm.DB, baseLog *logger.Logger) ChecklistTemplateRepo {
	return &checklistTemplateRepo{db: db, log: baseLog.With("repo", "ChecklistTemplateRepo")}
}

func (r *checklistTemplateRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *checklistTemplateRepo) Create(ctx context.Context, tx *gorm.DB, template *types.ChecklistTemplate) (*types.ChecklistTemplate, error) {
	if err := r.conn(tx).WithContext(ctx).Create(template).Error; err != nil {
		return nil, err
	}
	return template, nil
}

func (r *checklistTemplateRepo) GetByID(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) (*types.ChecklistTemplate, error) {
	var result types.ChecklistTemplate
	if err := r.conn(tx).WithContext(ctx).
		Where("id = ?", templateID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *checklistTemplateRepo) GetByTenantID(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.ChecklistTemplate, error) {
	var results []*types.ChecklistTemplate
	if err := r.conn(tx).WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("title ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *checklistTemplateRepo) DeleteByID(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("id = ?", templateID).
		Delete(&types.ChecklistTemplate{}).Error
}
