package learning

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
)

type CourseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, course *types.Course) (*types.Course, error)
	GetByID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (*types.Course, error)
	GetByTenantID(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.Course, error)
	GetByTenantAndStatus(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, status types.ContentStatus) ([]*types.Course, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, updates map[string]any) error
	ReplaceBranches(ctx context.Context, tx *gorm.DB, course *types.Course, branches []*types.Branch) error
	DeleteByID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) error
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return &courseRepo{db: db, log: baseLog.With("repo", "CourseRepo")}
}

func (r *courseRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *courseRepo) Create(ctx context.Context, tx *gorm.DB, course *types.Course) (*types.Course, error) {
	if err := r.conn(tx).WithContext(ctx).Create(course).Error; err != nil {
		return nil, err
	}
	return course, nil
}

func (r *courseRepo) GetByID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (*types.Course, error) {
	var result types.Course
	if err := r.conn(tx).WithContext(ctx).
		Where("id = ?", courseID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *courseRepo) GetByTenantID(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.Course, error) {
	var results []*types.Course
	if err := r.conn(tx).WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("title ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseRepo) GetByTenantAndStatus(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, status types.ContentStatus) ([]*types.Course, error) {
	var results []*types.Course
	if err := r.conn(tx).WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID, status).
		Order("title ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseRepo) UpdateFields(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, updates map[string]any) error {
	return r.conn(tx).WithContext(ctx).
		Model(&types.Course{}).
		Where("id = ?", courseID).
		Updates(updates).Error
}

func (r *courseRepo) ReplaceBranches(ctx context.Context, tx *gorm.DB, course *types.Course, branches []*types.Branch) error {
	return r.conn(tx).WithContext(ctx).
		Model(course).
		Association("Branches").
		Replace(branches)
}

func (r *courseRepo) DeleteByID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("id = ?", courseID).
		Delete(&types.Course{}).Error
}
