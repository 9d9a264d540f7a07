package tenancy

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
)

type UserRoleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, grant *types.UserRole) (*types.UserRole, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserRole, error)
	GetByRoleIDs(ctx context.Context, tx *gorm.DB, roleIDs []uuid.UUID) ([]*types.UserRole, error)
	DeleteByUserAndRole(ctx context.Context, tx *gorm.DB, userID, roleID uuid.UUID) (int64, error)
}

type userRoleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRoleRepo(db *gorm.DB, baseLog *logger.Logger) UserRoleRepo {
	return &userRoleRepo{db: db, log: baseLog.With("repo", "UserRoleRepo")}
}

func (r *userRoleRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *userRoleRepo) Create(ctx context.Context, tx *gorm.DB, grant *types.UserRole) (*types.UserRole, error) {
	if err := r.conn(tx).WithContext(ctx).Create(grant).Error; err != nil {
		return nil, err
	}
	return grant, nil
}

func (r *userRoleRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserRole, error) {
	var results []*types.UserRole
	if err := r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *userRoleRepo) GetByRoleIDs(ctx context.Context, tx *gorm.DB, roleIDs []uuid.UUID) ([]*types.UserRole, error) {
	var results []*types.UserRole
	if len(roleIDs) == 0 {
		return results, nil
	}
	if err := r.conn(tx).WithContext(ctx).
		Where("role_id IN ?", roleIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *userRoleRepo) DeleteByUserAndRole(ctx context.Context, tx *gorm.DB, userID, roleID uuid.UUID) (int64, error) {
	res := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Delete(&types.UserRole{})
	return res.RowsAffected, res.Error
}
