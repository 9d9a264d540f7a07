package progress

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
)

type ChecklistItemResultRepo interface {
	Create(ctx context.Context, tx *gorm.DB, result *types.ChecklistItemResult) (*types.ChecklistItemResult, error)
	GetByRunID(ctx context.Context, tx *gorm.DB, runID uuid.UUID) ([]*types.ChecklistItemResult, error)
	GetByRunAndItem(ctx context.Context, tx *gorm.DB, runID, itemID uuid.UUID) (*types.ChecklistItemResult, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, resultID uuid.UUID, updates map[string]any) error
}

type checklistItemResultRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChecklistItemResultRepo(db *gorm.DB, baseLog *logger.Logger) ChecklistItemResultRepo {
	return &checklistItemResultRepo{db: db, log: baseLog.With("repo", "ChecklistItemResultRepo")}
}

func (r *checklistItemResultRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *checklistItemResultRepo) Create(ctx context.Context, tx *gorm.DB, result *types.ChecklistItemResult) (*types.ChecklistItemResult, error) {
	if err := r.conn(tx).WithContext(ctx).Create(result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (r *checklistItemResultRepo) GetByRunID(ctx context.Context, tx *gorm.DB, runID uuid.UUID) ([]*types.ChecklistItemResult, error) {
	var results []*types.ChecklistItemResult
	if err := r.conn(tx).WithContext(ctx).
		Where("run_id = ?", runID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *checklistItemResultRepo) GetByRunAndItem(ctx context.Context, tx *gorm.DB, runID, itemID uuid.UUID) (*types.ChecklistItemResult, error) {
	var result types.ChecklistItemResult
	if err := r.conn(tx).WithContext(ctx).
		Where("run_id = ? AND item_id = ?", runID, itemID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *checklistItemResultRepo) UpdateFields(ctx context.Context, tx *gorm.DB, resultID uuid.UUID, updates map[string]any) error {
	return r.conn(tx).WithContext(ctx).
		Model(&types.ChecklistItemResult{}).
		Where("id = ?", resultID).
		Updates(updates).Error
}
