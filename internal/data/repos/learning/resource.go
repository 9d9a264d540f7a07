package learning

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
)

type ResourceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, resource *types.Resource) (*types.Resource, error)
	GetByID(ctx context.Context, tx *gorm.DB, resourceID uuid.UUID) (*types.Resource, error)
	GetByTenantID(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.Resource, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, resourceID uuid.UUID) error
}

type resourceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResourceRepo(db *gorm.DB, baseLog *logger.Logger) ResourceRepo {
	return &resourceRepo{db: db, log: baseLog.With("repo", "ResourceRepo")}
}

func (r *resourceRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *resourceRepo) Create(ctx context.Context, tx *gorm.DB, resource *types.Resource) (*types.Resource, error) {
	if err := r.conn(tx).WithContext(ctx).Create(resource).Error; err != nil {
		return nil, err
	}
	return resource, nil
}

func (r *resourceRepo) GetByID(ctx context.Context, tx *gorm.DB, resourceID uuid.UUID) (*types.Resource, error) {
	var result types.Resource
	if err := r.conn(tx).WithContext(ctx).
		Where("id = ?", resourceID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *resourceRepo) GetByTenantID(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.Resource, error) {
	var results []*types.Resource
	if err := r.conn(tx).WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("title ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *resourceRepo) DeleteByID(ctx context.Context, tx *gorm.DB, resourceID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("id = ?", resourceID).
		Delete(&types.Resource{}).Error
}
