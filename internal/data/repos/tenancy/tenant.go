package tenancy

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
)

type TenantRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tenant *types.Tenant) (*types.Tenant, error)
	GetByID(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) (*types.Tenant, error)
	GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.Tenant, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, updates map[string]any) error
	List(ctx context.Context, tx *gorm.DB) ([]*types.Tenant, error)
}

type tenantRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTenantRepo(db *gorm.DB, baseLog *logger.Logger) TenantRepo {
	return &tenantRepo{db: db, log: baseLog.With("repo", "TenantRepo")}
}

func (r *tenantRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *tenantRepo) Create(ctx context.Context, tx *gorm.DB, tenant *types.Tenant) (*types.Tenant, error) {
	if err := r.conn(tx).WithContext(ctx).Create(tenant).Error; err != nil {
		return nil, err
	}
	return tenant, nil
}

func (r *tenantRepo) GetByID(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) (*types.Tenant, error) {
	var result types.Tenant
	if err := r.conn(tx).WithContext(ctx).
		Where("id = ?", tenantID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *tenantRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.Tenant, error) {
	var result types.Tenant
	if err := r.conn(tx).WithContext(ctx).
		Where("slug = ?", slug).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *tenantRepo) UpdateFields(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, updates map[string]any) error {
	return r.conn(tx).WithContext(ctx).
		Model(&types.Tenant{}).
		Where("id = ?", tenantID).
		Updates(updates).Error
}

func (r *tenantRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Tenant, error) {
	var results []*types.Tenant
	if err := r.conn(tx).WithContext(ctx).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
