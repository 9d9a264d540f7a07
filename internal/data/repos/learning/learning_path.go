package learning

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
)

type LearningPathRepo interface {
	Create(ctx context.Context, tx *gorm.DB, path *types.LearningPath) (*types.LearningPath, error)
	GetByID(ctx context.Context, tx *gorm.DB, pathID uuid.UUID) (*types.LearningPath, error)
	GetByTenantID(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.LearningPath, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, pathID uuid.UUID, updates map[string]any) error
	DeleteByID(ctx context.Context, tx *gorm.DB, pathID uuid.UUID) error
}

type learningPathRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningPathRepo(db *gorm.DB, baseLog *logger.Logger) LearningPathRepo {
	return &learningPathRepo{db: db, log: baseLog.With("repo", "LearningPathRepo")}
}

func (r *learningPathRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *learningPathRepo) Create(ctx context.Context, tx *gorm.DB, path *types.LearningPath) (*types.LearningPath, error) {
	if err := r.conn(tx).WithContext(ctx).Create(path).Error; err != nil {
		return nil, err
	}
	return path, nil
}

func (r *learningPathRepo) GetByID(ctx context.Context, tx *gorm.DB, pathID uuid.UUID) (*types.LearningPath, error) {
	var result types.LearningPath
	if err := r.conn(tx).WithContext(ctx).
		Where("id = ?", pathID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *learningPathRepo) GetByTenantID(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.LearningPath, error) {
	var results []*types.LearningPath
	if err := r.conn(tx).WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("title ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *learningPathRepo) UpdateFields(ctx context.Context, tx *gorm.DB, pathID uuid.UUID, updates map[string]any) error {
	return r.conn(tx).WithContext(ctx).
		Model(&types.LearningPath{}).
		Where("id = ?", pathID).
		Updates(updates).Error
}

func (r *learningPathRepo) DeleteByID(ctx context.Context, tx *gorm.DB, pathID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("id = ?", pathID).
		Delete(&types.LearningPath{}).Error
}
