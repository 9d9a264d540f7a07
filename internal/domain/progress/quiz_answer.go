package progress

import (
	"github.com/google/uuid"

	"github.com/crewlearn/crewlearn-backend/internal/domain/tenancy"
)

// QuizAnswer stores the raw question and choice ids instead of foreign
// keys so answers survive quiz edits after submission. The quiz
// aggregate validates both ids against the live quiz at submit time.
type QuizAnswer struct {
	ID        uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AttemptID uuid.UUID    `gorm:"type:uuid;not null;index:idx_answer_attempt_question" json:"attempt_id"`
	Attempt   *QuizAttempt `gorm:"constraint:OnDelete:CASCADE;foreignKey:AttemptID;references:ID" json:"attempt,omitempty"`

	QuestionID uuid.UUID  `gorm:"type:uuid;not null;index:idx_answer_attempt_question" json:"question_id"`
	ChoiceID   *uuid.UUID `gorm:"type:uuid" json:"choice_id,omitempty"`
	TextAnswer string     `gorm:"type:text;not null;default:''" json:"text_answer,omitempty"`

	tenancy.Timestamps
}

func (QuizAnswer) TableName() string { return "quiz_answer" }
