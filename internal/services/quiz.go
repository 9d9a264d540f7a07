package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dataagg "github.com/crewlearn/crewlearn-backend/internal/data/aggregates"
	"github.com/crewlearn/crewlearn-backend/internal/data/repos"
	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
)

type CreateQuizInput struct {
	TenantID     uuid.UUID
	Title        string
	Description  string
	PassingScore int
	MaxAttempts  int
}

// QuizDetail bundles a quiz with its ordered questions and choices.
type QuizDetail struct {
	Quiz      *types.Quiz
	Questions []QuestionDetail
}

type QuestionDetail struct {
	Question *types.Question
	Choices  []*types.Choice
}

type QuizService interface {
	CreateQuiz(ctx context.Context, in CreateQuizInput) (*types.Quiz, error)
	GetQuiz(ctx context.Context, tenantID, quizID uuid.UUID) (*QuizDetail, error)
	ListQuizzes(ctx context.Context, tenantID uuid.UUID) ([]*types.Quiz, error)

	AddQuestion(ctx context.Context, in domainagg.AddQuestionInput) (domainagg.AddQuestionResult, error)
	AddChoice(ctx context.Context, in domainagg.AddChoiceInput) (domainagg.AddChoiceResult, error)

	StartAttempt(ctx context.Context, in domainagg.StartQuizAttemptInput) (domainagg.StartQuizAttemptResult, error)
	SubmitAttempt(ctx context.Context, in domainagg.SubmitQuizAttemptInput) (domainagg.SubmitQuizAttemptResult, error)
	ListAttempts(ctx context.Context, userID, quizID uuid.UUID) ([]*types.QuizAttempt, error)
}

type quizService struct {
	db        *gorm.DB
	log       *logger.Logger
	quizzes   repos.QuizRepo
	questions repos.QuestionRepo
	choices   repos.ChoiceRepo
	attempts  repos.QuizAttemptRepo
	agg       domainagg.QuizAggregate
}

func NewQuizService(
	db *gorm.DB,
	log *logger.Logger,
	quizzes repos.QuizRepo,
	questions repos.QuestionRepo,
	choices repos.ChoiceRepo,
	attempts repos.QuizAttemptRepo,
	agg domainagg.QuizAggregate,
) QuizService {
	return &quizService{
		db:        db,
		log:       log.With("service", "QuizService"),
		quizzes:   quizzes,
		questions: questions,
		choices:   choices,
		attempts:  attempts,
		agg:       agg,
	}
}

func (s *quizService) CreateQuiz(ctx context.Context, in CreateQuizInput) (*types.Quiz, error) {
	const op = "Learning.CreateQuiz"

	title := strings.TrimSpace(in.Title)
	if in.TenantID == uuid.Nil || title == "" {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "tenant_id and title are required", nil)
	}
	if in.PassingScore < 0 || in.PassingScore > 100 {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "passing_score must be between 0 and 100.", nil)
	}
	if in.MaxAttempts < 0 {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "max_attempts must be >= 0", nil)
	}
	var created *types.Quiz
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		quiz, err := s.quizzes.Create(ctx, tx, &types.Quiz{
			TenantID:     in.TenantID,
			Title:        title,
			Description:  in.Description,
			PassingScore: in.PassingScore,
			MaxAttempts:  in.MaxAttempts,
		})
		if err != nil {
			return err
		}
		created = quiz
		return nil
	})
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	return created, nil
}

func (s *quizService) GetQuiz(ctx context.Context, tenantID, quizID uuid.UUID) (*QuizDetail, error) {
	const op = "Learning.GetQuiz"

	quiz, err := s.quizzes.GetByID(ctx, nil, quizID)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	if quiz.TenantID != tenantID {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, "quiz not found", nil)
	}
	questions, err := s.questions.GetByQuizID(ctx, nil, quizID)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	questionIDs := make([]uuid.UUID, 0, len(questions))
	for _, q := range questions {
		questionIDs = append(questionIDs, q.ID)
	}
	choices, err := s.choices.GetByQuestionIDs(ctx, nil, questionIDs)
	if err != nil {
		return nil, fmt.Errorf("load choices: %w", err)
	}
	byQuestion := make(map[uuid.UUID][]*types.Choice, len(questions))
	for _, c := range choices {
		byQuestion[c.QuestionID] = append(byQuestion[c.QuestionID], c)
	}
	detail := &QuizDetail{Quiz: quiz, Questions: make([]QuestionDetail, 0, len(questions))}
	for _, q := range questions {
		detail.Questions = append(detail.Questions, QuestionDetail{
			Question: q,
			Choices:  byQuestion[q.ID],
		})
	}
	return detail, nil
}

func (s *quizService) ListQuizzes(ctx context.Context, tenantID uuid.UUID) ([]*types.Quiz, error) {
	quizzes, err := s.quizzes.GetByTenantID(ctx, nil, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	return quizzes, nil
}

func (s *quizService) AddQuestion(ctx context.Context, in domainagg.AddQuestionInput) (domainagg.AddQuestionResult, error) {
	return s.agg.AddQuestion(ctx, in)
}

func (s *quizService) AddChoice(ctx context.Context, in domainagg.AddChoiceInput) (domainagg.AddChoiceResult, error) {
	return s.agg.AddChoice(ctx, in)
}

func (s *quizService) StartAttempt(ctx context.Context, in domainagg.StartQuizAttemptInput) (domainagg.StartQuizAttemptResult, error) {
	return s.agg.StartAttempt(ctx, in)
}

func (s *quizService) SubmitAttempt(ctx context.Context, in domainagg.SubmitQuizAttemptInput) (domainagg.SubmitQuizAttemptResult, error) {
	return s.agg.SubmitAttempt(ctx, in)
}

func (s *quizService) ListAttempts(ctx context.Context, userID, quizID uuid.UUID) ([]*types.QuizAttempt, error) {
	attempts, err := s.attempts.GetByUserAndQuiz(ctx, nil, userID, quizID)
	if err != nil {
		return nil, fmt.Errorf("list quiz attempts: %w", err)
	}
	return attempts, nil
}
