package progress

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
)

type AssignmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, assignment *types.Assignment) (*types.Assignment, error)
	GetByID(ctx context.Context, tx *gorm.DB, assignmentID uuid.UUID) (*types.Assignment, error)
	GetActiveByTenantID(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.Assignment, error)
	GetForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, branchIDs, roleIDs []uuid.UUID) ([]*types.Assignment, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, assignmentID uuid.UUID, updates map[string]any) error
	DeleteByID(ctx context.Context, tx *gorm.DB, assignmentID uuid.UUID) error
}

type assignmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssignmentRepo(db *gorm.DB, baseLog *logger.Logger) AssignmentRepo {
	return &assignmentRepo{db: db, log: baseLog.With("repo", "AssignmentRepo")}
}

func (r *assignmentRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *assignmentRepo) Create(ctx context.Context, tx *gorm.DB, assignment *types.Assignment) (*types.Assignment, error) {
	if err := r.conn(tx).WithContext(ctx).Create(assignment).Error; err != nil {
		return nil, err
	}
	return assignment, nil
}

func (r *assignmentRepo) GetByID(ctx context.Context, tx *gorm.DB, assignmentID uuid.UUID) (*types.Assignment, error) {
	var result types.Assignment
	if err := r.conn(tx).WithContext(ctx).
		Where("id = ?", assignmentID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *assignmentRepo) GetActiveByTenantID(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.Assignment, error) {
	var results []*types.Assignment
	if err := r.conn(tx).WithContext(ctx).
		Where("tenant_id = ? AND is_active = true", tenantID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetForUser resolves the assignments reaching a user directly or
// through any of their branches or roles.
func (r *assignmentRepo) GetForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, branchIDs, roleIDs []uuid.UUID) ([]*types.Assignment, error) {
	db := r.conn(tx).WithContext(ctx).Where("is_active = true")
	cond := db.Where("target_user_id = ?", userID)
	if len(branchIDs) > 0 {
		cond = cond.Or("target_branch_id IN ?", branchIDs)
	}
	if len(roleIDs) > 0 {
		cond = cond.Or("target_role_id IN ?", roleIDs)
	}
	var results []*types.Assignment
	if err := db.Where(cond).
		Order("due_at ASC NULLS LAST").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *assignmentRepo) UpdateFields(ctx context.Context, tx *gorm.DB, assignmentID uuid.UUID, updates map[string]any) error {
	return r.conn(tx).WithContext(ctx).
		Model(&types.Assignment{}).
		Where("id = ?", assignmentID).
		Updates(updates).Error
}

func (r *assignmentRepo) DeleteByID(ctx context.Context, tx *gorm.DB, assignmentID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("id = ?", assignmentID).
		Delete(&types.Assignment{}).Error
}
