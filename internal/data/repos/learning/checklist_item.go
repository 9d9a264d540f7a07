package learning

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
)

type ChecklistItemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, item *types.ChecklistItem) (*types.ChecklistItem, error)
	GetByID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (*types.ChecklistItem, error)
	GetByTemplateID(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) ([]*types.ChecklistItem, error)
	MaxOrderByTemplateID(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) (int, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) error
}

type checklistItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChecklistItemRepo(db *gorm.DB, baseLog *logger.Logger) ChecklistItemRepo {
	return &checklistItemRepo{db: db, log: baseLog.With("repo", "ChecklistItemRepo")}
}

func (r *checklistItemRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *checklistItemRepo) Create(ctx context.Context, tx *gorm.DB, item *types.ChecklistItem) (*types.ChecklistItem, error) {
	if err := r.conn(tx).WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *checklistItemRepo) GetByID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (*types.ChecklistItem, error) {
	var result types.ChecklistItem
	if err := r.conn(tx).WithContext(ctx).
		Where("id = ?", itemID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *checklistItemRepo) GetByTemplateID(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) ([]*types.ChecklistItem, error) {
	var results []*types.ChecklistItem
	if err := r.conn(tx).WithContext(ctx).
		Where("template_id = ?", templateID).
		Order("position ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *checklistItemRepo) MaxOrderByTemplateID(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) (int, error) {
	var max int
	if err := r.conn(tx).WithContext(ctx).
		Model(&types.ChecklistItem{}).
		Where("template_id = ?", templateID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max, nil
}

func (r *checklistItemRepo) DeleteByID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("id = ?", itemID).
		Delete(&types.ChecklistItem{}).Error
}
