package progress

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
)

type QuizAnswerRepo interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, answers []*types.QuizAnswer) ([]*types.QuizAnswer, error)
	GetByAttemptID(ctx context.Context, tx *gorm.DB, attemptID uuid.UUID) ([]*types.QuizAnswer, error)
	DeleteByAttemptID(ctx context.Context, tx *gorm.DB, attemptID uuid.UUID) error
}

type quizAnswerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizAnswerRepo(db *gorm.DB, baseLog *logger.Logger) QuizAnswerRepo {
	return &quizAnswerRepo{db: db, log: baseLog.With("repo", "QuizAnswerRepo")}
}

func (r *quizAnswerRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *quizAnswerRepo) CreateBatch(ctx context.Context, tx *gorm.DB, answers []*types.QuizAnswer) ([]*types.QuizAnswer, error) {
	if len(answers) == 0 {
		return []*types.QuizAnswer{}, nil
	}
	if err := r.conn(tx).WithContext(ctx).Create(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *quizAnswerRepo) GetByAttemptID(ctx context.Context, tx *gorm.DB, attemptID uuid.UUID) ([]*types.QuizAnswer, error) {
	var results []*types.QuizAnswer
	if err := r.conn(tx).WithContext(ctx).
		Where("attempt_id = ?", attemptID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *quizAnswerRepo) DeleteByAttemptID(ctx context.Context, tx *gorm.DB, attemptID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("attempt_id = ?", attemptID).
		Delete(&types.QuizAnswer{}).Error
}
