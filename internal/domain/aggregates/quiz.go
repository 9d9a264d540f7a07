package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"
)

var QuizAggregateContract = Contract{
	Name:             "Progress.QuizAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns atomic quiz attempt lifecycle: start under attempt limits, grade on submit.",
}

// QuizAggregate owns quiz attempt invariants: attempts respect the
// quiz's attempt limit, scores stay within 0..100, and pass/fail is
// derived from the quiz's passing threshold at submit time.
//
// Write method failures should return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeConflict, CodeInvariantViolation,
// CodePreconditionFailed, CodeInternal.
type QuizAggregate interface {
	Aggregate

	// AddQuestion atomically appends a question to a quiz; (quiz, order)
	// is unique and Order 0 means append after the current last question.
	AddQuestion(ctx context.Context, in AddQuestionInput) (AddQuestionResult, error)

	// AddChoice atomically adds a choice to a question.
	AddChoice(ctx context.Context, in AddChoiceInput) (AddChoiceResult, error)

	// StartAttempt atomically opens an attempt. When the quiz has a
	// positive MaxAttempts and the user has exhausted it, the write fails
	// with CodePreconditionFailed.
	StartAttempt(ctx context.Context, in StartQuizAttemptInput) (StartQuizAttemptResult, error)

	// SubmitAttempt atomically stores the answers, grades the attempt,
	// and stamps the submission. Resubmitting fails with CodeConflict.
	SubmitAttempt(ctx context.Context, in SubmitQuizAttemptInput) (SubmitQuizAttemptResult, error)
}

type AddQuestionInput struct {
	TenantID uuid.UUID
	QuizID   uuid.UUID
	Text     string
	Order    int
}

type AddQuestionResult struct {
	QuestionID uuid.UUID
	Order      int
}

type AddChoiceInput struct {
	TenantID   uuid.UUID
	QuestionID uuid.UUID
	Text       string
	IsCorrect  bool
}

type AddChoiceResult struct {
	ChoiceID uuid.UUID
}

type StartQuizAttemptInput struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	QuizID   uuid.UUID
}

type StartQuizAttemptResult struct {
	AttemptID     uuid.UUID
	StartedAt     time.Time
	AttemptNumber int
}

// QuizAnswerInput carries one answer. ChoiceID is set for choice
// questions, TextAnswer for free-text ones.
type QuizAnswerInput struct {
	QuestionID uuid.UUID
	ChoiceID   *uuid.UUID
	TextAnswer string
}

type SubmitQuizAttemptInput struct {
	TenantID  uuid.UUID
	UserID    uuid.UUID
	AttemptID uuid.UUID
	Answers   []QuizAnswerInput
}

type SubmitQuizAttemptResult struct {
	AttemptID    uuid.UUID
	ScorePercent int
	Passed       bool
	SubmittedAt  time.Time
}
