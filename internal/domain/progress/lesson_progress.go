package progress

import (
	"time"

	"github.com/google/uuid"

	"github.com/crewlearn/crewlearn-backend/internal/domain/learning"
	"github.com/crewlearn/crewlearn-backend/internal/domain/tenancy"
)

// LessonProgress is one row per user per lesson. Percent stays within
// 0..100; video lessons additionally track the last playback position.
type LessonProgress struct {
	ID       uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TenantID uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Tenant   *tenancy.Tenant `gorm:"constraint:OnDelete:CASCADE;foreignKey:TenantID;references:ID" json:"tenant,omitempty"`
	UserID   uuid.UUID       `gorm:"type:uuid;not null;index:uq_user_lesson_progress,unique" json:"user_id"`
	User     *tenancy.User   `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	LessonID uuid.UUID       `gorm:"type:uuid;not null;index:uq_user_lesson_progress,unique" json:"lesson_id"`
	Lesson   *learning.Lesson `gorm:"constraint:OnDelete:CASCADE;foreignKey:LessonID;references:ID" json:"lesson,omitempty"`

	StartedAt      *time.Time `gorm:"column:started_at" json:"started_at,omitempty"`
	LastActivityAt time.Time  `gorm:"column:last_activity_at;not null;default:now()" json:"last_activity_at"`
	CompletedAt    *time.Time `gorm:"column:completed_at;index" json:"completed_at,omitempty"`

	Percent             int `gorm:"column:percent;not null;default:0" json:"percent"`
	LastPositionSeconds int `gorm:"column:last_position_seconds;not null;default:0" json:"last_position_seconds"`

	tenancy.Timestamps
}

func (LessonProgress) TableName() string { return "lesson_progress" }
