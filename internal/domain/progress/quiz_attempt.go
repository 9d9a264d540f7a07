package progress

import (
	"time"

	"github.com/google/uuid"

	"github.com/crewlearn/crewlearn-backend/internal/domain/learning"
	"github.com/crewlearn/crewlearn-backend/internal/domain/tenancy"
)

// QuizAttempt records one sitting of a quiz. ScorePercent and Passed
// are computed at submit time by the quiz aggregate; Passed compares
// the score against the quiz's passing threshold.
type QuizAttempt struct {
	ID       uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TenantID uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Tenant   *tenancy.Tenant `gorm:"constraint:OnDelete:CASCADE;foreignKey:TenantID;references:ID" json:"tenant,omitempty"`
	UserID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User     *tenancy.User   `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	QuizID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Quiz     *learning.Quiz  `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuizID;references:ID" json:"quiz,omitempty"`

	StartedAt   time.Time  `gorm:"column:started_at;not null;default:now()" json:"started_at"`
	SubmittedAt *time.Time `gorm:"column:submitted_at;index" json:"submitted_at,omitempty"`

	ScorePercent int  `gorm:"column:score_percent;not null;default:0" json:"score_percent"`
	Passed       bool `gorm:"column:passed;not null;default:false" json:"passed"`

	Answers []*QuizAnswer `gorm:"foreignKey:AttemptID" json:"answers,omitempty"`

	tenancy.Timestamps
}

func (QuizAttempt) TableName() string { return "quiz_attempt" }

func (a *QuizAttempt) IsSubmitted() bool { return a.SubmittedAt != nil }
