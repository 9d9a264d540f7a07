package learning

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
)

type QuizRepo interface {
	Create(ctx context.Context, tx *gorm.DB, quiz *types.Quiz) (*types.Quiz, error)
	GetByID(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) (*types.Quiz, error)
	GetByTenantID(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.Quiz, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, quizID uuid.UUID, updates map[string]any) error
	DeleteByID(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) error
}

type quizRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizRepo(db *gorm.DB, baseLog *logger.Logger) QuizRepo {
	return &quizRepo{db: db, log: baseLog.With("repo", "QuizRepo")}
}

func (r *quizRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *quizRepo) Create(ctx context.Context, tx *gorm.DB, quiz *types.Quiz) (*types.Quiz, error) {
	if err := r.conn(tx).WithContext(ctx).Create(quiz).Error; err != nil {
		return nil, err
	}
	return quiz, nil
}

func (r *quizRepo) GetByID(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) (*types.Quiz, error) {
	var result types.Quiz
	if err := r.conn(tx).WithContext(ctx).
		Where("id = ?", quizID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *quizRepo) GetByTenantID(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.Quiz, error) {
	var results []*types.Quiz
	if err := r.conn(tx).WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("title ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *quizRepo) UpdateFields(ctx context.Context, tx *gorm.DB, quizID uuid.UUID, updates map[string]any) error {
	return r.conn(tx).WithContext(ctx).
		Model(&types.Quiz{}).
		Where("id = ?", quizID).
		Updates(updates).Error
}

func (r *quizRepo) DeleteByID(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("id = ?", quizID).
		Delete(&types.Quiz{}).Error
}
