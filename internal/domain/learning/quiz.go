package learning

import (
	"github.com/google/uuid"

	"github.com/crewlearn/crewlearn-backend/internal/domain/tenancy"
)

type Quiz struct {
	ID       uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TenantID uuid.UUID       `gorm:"type:uuid;not null;index:uq_quiz_tenant_title,unique" json:"tenant_id"`
	Tenant   *tenancy.Tenant `gorm:"constraint:OnDelete:CASCADE;foreignKey:TenantID;references:ID" json:"tenant,omitempty"`

	Title        string `gorm:"column:title;not null;index:uq_quiz_tenant_title,unique" json:"title"`
	Description  string `gorm:"column:description;type:text" json:"description"`
	PassingScore int    `gorm:"column:passing_score;not null;default:70" json:"passing_score"` // percentage
	MaxAttempts  int    `gorm:"column:max_attempts;not null;default:0" json:"max_attempts"`    // 0 = unlimited

	tenancy.Timestamps
}

func (Quiz) TableName() string { return "quiz" }

type Question struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuizID uuid.UUID `gorm:"type:uuid;not null;index:uq_question_quiz_order,unique" json:"quiz_id"`
	Quiz   *Quiz     `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuizID;references:ID" json:"quiz,omitempty"`

	Text  string `gorm:"column:text;type:text;not null" json:"text"`
	Order int    `gorm:"column:position;not null;default:1;index:uq_question_quiz_order,unique" json:"order"`

	tenancy.Timestamps
}

func (Question) TableName() string { return "question" }

type Choice struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
	Question   *Question `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionID;references:ID" json:"question,omitempty"`

	Text      string `gorm:"column:text;not null" json:"text"`
	IsCorrect bool   `gorm:"column:is_correct;not null;default:false" json:"is_correct"`

	tenancy.Timestamps
}

func (Choice) TableName() string { return "choice" }
