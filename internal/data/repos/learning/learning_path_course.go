package learning

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
)

type LearningPathCourseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entry *types.LearningPathCourse) (*types.LearningPathCourse, error)
	GetByPathID(ctx context.Context, tx *gorm.DB, pathID uuid.UUID) ([]*types.LearningPathCourse, error)
	MaxOrderByPathID(ctx context.Context, tx *gorm.DB, pathID uuid.UUID) (int, error)
	DeleteByPathAndCourse(ctx context.Context, tx *gorm.DB, pathID, courseID uuid.UUID) error
}

type learningPathCourseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningPathCourseRepo(db *gorm.DB, baseLog *logger.Logger) LearningPathCourseRepo {
	return &learningPathCourseRepo{db: db, log: baseLog.With("repo", "LearningPathCourseRepo")}
}

func (r *learningPathCourseRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *learningPathCourseRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.LearningPathCourse) (*types.LearningPathCourse, error) {
	if err := r.conn(tx).WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *learningPathCourseRepo) GetByPathID(ctx context.Context, tx *gorm.DB, pathID uuid.UUID) ([]*types.LearningPathCourse, error) {
	var results []*types.LearningPathCourse
	if err := r.conn(tx).WithContext(ctx).
		Where("path_id = ?", pathID).
		Order("position ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *learningPathCourseRepo) MaxOrderByPathID(ctx context.Context, tx *gorm.DB, pathID uuid.UUID) (int, error) {
	var max int
	if err := r.conn(tx).WithContext(ctx).
		Model(&types.LearningPathCourse{}).
		Where("path_id = ?", pathID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max, nil
}

func (r *learningPathCourseRepo) DeleteByPathAndCourse(ctx context.Context, tx *gorm.DB, pathID, courseID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("path_id = ? AND course_id = ?", pathID, courseID).
		Delete(&types.LearningPathCourse{}).Error
}
