package tenancy

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
)

type UserBranchRepo interface {
	Create(ctx context.Context, tx *gorm.DB, link *types.UserBranch) (*types.UserBranch, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserBranch, error)
	GetByUserAndBranch(ctx context.Context, tx *gorm.DB, userID, branchID uuid.UUID) (*types.UserBranch, error)
	ClearPrimaryForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	DeleteByUserAndBranch(ctx context.Context, tx *gorm.DB, userID, branchID uuid.UUID) error
}

type userBranchRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserBranchRepo(db *gorm.DB, baseLog *logger.Logger) UserBranchRepo {
	return &userBranchRepo{db: db, log: baseLog.With("repo", "UserBranchRepo")}
}

func (r *userBranchRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *userBranchRepo) Create(ctx context.Context, tx *gorm.DB, link *types.UserBranch) (*types.UserBranch, error) {
	if err := r.conn(tx).WithContext(ctx).Create(link).Error; err != nil {
		return nil, err
	}
	return link, nil
}

func (r *userBranchRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserBranch, error) {
	var results []*types.UserBranch
	if err := r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *userBranchRepo) GetByUserAndBranch(ctx context.Context, tx *gorm.DB, userID, branchID uuid.UUID) (*types.UserBranch, error) {
	var result types.UserBranch
	if err := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND branch_id = ?", userID, branchID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *userBranchRepo) ClearPrimaryForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Model(&types.UserBranch{}).
		Where("user_id = ? AND is_primary = true", userID).
		Update("is_primary", false).Error
}

func (r *userBranchRepo) DeleteByUserAndBranch(ctx context.Context, tx *gorm.DB, userID, branchID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND branch_id = ?", userID, branchID).
		Delete(&types.UserBranch{}).Error
}
