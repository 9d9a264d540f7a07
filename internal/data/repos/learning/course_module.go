package learning

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
)

type CourseModuleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, module *types.CourseModule) (*types.CourseModule, error)
	GetByID(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) (*types.CourseModule, error)
	GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*types.CourseModule, error)
	MaxOrderByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (int, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID, updates map[string]any) error
	DeleteByID(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) error
}

type courseModuleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseModuleRepo(db *gorm.DB, baseLog *logger.Logger) CourseModuleRepo {
	return &courseModuleRepo{db: db, log: baseLog.With("repo", "CourseModuleRepo")}
}

func (r *courseModuleRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *courseModuleRepo) Create(ctx context.Context, tx *gorm.DB, module *types.CourseModule) (*types.CourseModule, error) {
	if err := r.conn(tx).WithContext(ctx).Create(module).Error; err != nil {
		return nil, err
	}
	return module, nil
}

func (r *courseModuleRepo) GetByID(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) (*types.CourseModule, error) {
	var result types.CourseModule
	if err := r.conn(tx).WithContext(ctx).
		Where("id = ?", moduleID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *courseModuleRepo) GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*types.CourseModule, error) {
	var results []*types.CourseModule
	if err := r.conn(tx).WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("position ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseModuleRepo) MaxOrderByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (int, error) {
	var max int
	if err := r.conn(tx).WithContext(ctx).
		Model(&types.CourseModule{}).
		Where("course_id = ?", courseID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max, nil
}

func (r *courseModuleRepo) UpdateFields(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID, updates map[string]any) error {
	return r.conn(tx).WithContext(ctx).
		Model(&types.CourseModule{}).
		Where("id = ?", moduleID).
		Updates(updates).Error
}

func (r *courseModuleRepo) DeleteByID(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("id = ?", moduleID).
		Delete(&types.CourseModule{}).Error
}
