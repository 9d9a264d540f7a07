package learning

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
)

type QuestionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, question *types.Question) (*types.Question, error)
	GetByID(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) (*types.Question, error)
	GetByQuizID(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) ([]*types.Question, error)
	MaxOrderByQuizID(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) (int, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) error
}

type questionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	return &questionRepo{db: db, log: baseLog.With("repo", "QuestionRepo")}
}

func (r *questionRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *questionRepo) Create(ctx context.Context, tx *gorm.DB, question *types.Question) (*types.Question, error) {
	if err := r.conn(tx).WithContext(ctx).Create(question).Error; err != nil {
		return nil, err
	}
	return question, nil
}

func (r *questionRepo) GetByID(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) (*types.Question, error) {
	var result types.Question
	if err := r.conn(tx).WithContext(ctx).
		Where("id = ?", questionID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *questionRepo) GetByQuizID(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) ([]*types.Question, error) {
	var results []*types.Question
	if err := r.conn(tx).WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("position ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *questionRepo) MaxOrderByQuizID(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) (int, error) {
	var max int
	if err := r.conn(tx).WithContext(ctx).
		Model(&types.Question{}).
		Where("quiz_id = ?", quizID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max, nil
}

func (r *questionRepo) DeleteByID(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("id = ?", questionID).
		Delete(&types.Question{}).Error
}
