package learning

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
)

type ChoiceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, choice *types.Choice) (*types.Choice, error)
	GetByQuestionIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) ([]*types.Choice, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, choiceID uuid.UUID) error
}

type choiceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChoiceRepo(db *gorm.DB, baseLog *logger.Logger) ChoiceRepo {
	return &choiceRepo{db: db, log: baseLog.With("repo", "ChoiceRepo")}
}

func (r *choiceRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *choiceRepo) Create(ctx context.Context, tx *gorm.DB, choice *types.Choice) (*types.Choice, error) {
	if err := r.conn(tx).WithContext(ctx).Create(choice).Error; err != nil {
		return nil, err
	}
	return choice, nil
}

func (r *choiceRepo) GetByQuestionIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) ([]*types.Choice, error) {
	var results []*types.Choice
	if len(questionIDs) == 0 {
		return results, nil
	}
	if err := r.conn(tx).WithContext(ctx).
		Where("question_id IN ?", questionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *choiceRepo) DeleteByID(ctx context.Context, tx *gorm.DB, choiceID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("id = ?", choiceID).
		Delete(&types.Choice{}).Error
}
