package tenancy

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
)

type BranchRepo interface {
	Create(ctx context.Context, tx *gorm.DB, branch *types.Branch) (*types.Branch, error)
	GetByID(ctx context.Context, tx *gorm.DB, branchID uuid.UUID) (*types.Branch, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, branchIDs []uuid.UUID) ([]*types.Branch, error)
	GetByTenantID(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.Branch, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, updates map[string]any) error
	DeleteByID(ctx context.Context, tx *gorm.DB, branchID uuid.UUID) error
}

type branchRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBranchRepo(db *gorm.DB, baseLog *logger.Logger) BranchRepo {
	return &branchRepo{db: db, log: baseLog.With("repo", "BranchRepo")}
}

func (r *branchRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *branchRepo) Create(ctx context.Context, tx *gorm.DB, branch *types.Branch) (*types.Branch, error) {
	if err := r.conn(tx).WithContext(ctx).Create(branch).Error; err != nil {
		return nil, err
	}
	return branch, nil
}

func (r *branchRepo) GetByID(ctx context.Context, tx *gorm.DB, branchID uuid.UUID) (*types.Branch, error) {
	var result types.Branch
	if err := r.conn(tx).WithContext(ctx).
		Where("id = ?", branchID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *branchRepo) GetByIDs(ctx context.Context, tx *gorm.DB, branchIDs []uuid.UUID) ([]*types.Branch, error) {
	var results []*types.Branch
	if len(branchIDs) == 0 {
		return results, nil
	}
	if err := r.conn(tx).WithContext(ctx).
		Where("id IN ?", branchIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *branchRepo) GetByTenantID(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.Branch, error) {
	var results []*types.Branch
	if err := r.conn(tx).WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *branchRepo) UpdateFields(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, updates map[string]any) error {
	return r.conn(tx).WithContext(ctx).
		Model(&types.Branch{}).
		Where("id = ?", branchID).
		Updates(updates).Error
}

func (r *branchRepo) DeleteByID(ctx context.Context, tx *gorm.DB, branchID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("id = ?", branchID).
		Delete(&types.Branch{}).Error
}
