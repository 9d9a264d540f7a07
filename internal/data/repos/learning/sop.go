package learning

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
)

type SOPRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sop *types.SOP) (*types.SOP, error)
	GetByID(ctx context.Context, tx *gorm.DB, sopID uuid.UUID) (*types.SOP, error)
	GetByTenantID(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.SOP, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, sopID uuid.UUID, updates map[string]any) error
	DeleteByID(ctx context.Context, tx *gorm.DB, sopID uuid.UUID) error
}

type sopRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSOPRepo(db *gorm.DB, baseLog *logger.Logger) SOPRepo {
	return &sopRepo{db: db, log: baseLog.With("repo", "SOPRepo")}
}

func (r *sopRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *sopRepo) Create(ctx context.Context, tx *gorm.DB, sop *types.SOP) (*types.SOP, error) {
	if err := r.conn(tx).WithContext(ctx).Create(sop).Error; err != nil {
		return nil, err
	}
	return sop, nil
}

func (r *sopRepo) GetByID(ctx context.Context, tx *gorm.DB, sopID uuid.UUID) (*types.SOP, error) {
	var result types.SOP
	if err := r.conn(tx).WithContext(ctx).
		Where("id = ?", sopID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *sopRepo) GetByTenantID(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.SOP, error) {
	var results []*types.SOP
	if err := r.conn(tx).WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("title ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *sopRepo) UpdateFields(ctx context.Context, tx *gorm.DB, sopID uuid.UUID, updates map[string]any) error {
	return r.conn(tx).WithContext(ctx).
		Model(&types.SOP{}).
		Where("id = ?", sopID).
		Updates(updates).Error
}

func (r *sopRepo) DeleteByID(ctx context.Context, tx *gorm.DB, sopID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("id = ?", sopID).
		Delete(&types.SOP{}).Error
}
