package tenancy

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
)

type RoleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, role *types.Role) (*types.Role, error)
	GetByID(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) (*types.Role, error)
	GetByTenantID(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.Role, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) error
}

type roleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRoleRepo(db *gorm.DB, baseLog *logger.Logger) RoleRepo {
	return &roleRepo{db: db, log: baseLog.With("repo", "RoleRepo")}
}

func (r *roleRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *roleRepo) Create(ctx context.Context, tx *gorm.DB, role *types.Role) (*types.Role, error) {
	if err := r.conn(tx).WithContext(ctx).Create(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}

func (r *roleRepo) GetByID(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) (*types.Role, error) {
	var result types.Role
	if err := r.conn(tx).WithContext(ctx).
		Where("id = ?", roleID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *roleRepo) GetByTenantID(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.Role, error) {
	var results []*types.Role
	if err := r.conn(tx).WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *roleRepo) DeleteByID(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("id = ?", roleID).
		Delete(&types.Role{}).Error
}
