package progress

import (
	"time"

	"github.com/google/uuid"

	"github.com/crewlearn/crewlearn-backend/internal/domain/learning"
	"github.com/crewlearn/crewlearn-backend/internal/domain/tenancy"
)

// Enrollment ties a user to exactly one of a course or a path. Both
// references are nullable columns; the enrollment aggregate rejects
// writes with zero or two of them set.
type Enrollment struct {
	ID       uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TenantID uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Tenant   *tenancy.Tenant `gorm:"constraint:OnDelete:CASCADE;foreignKey:TenantID;references:ID" json:"tenant,omitempty"`
	UserID   uuid.UUID       `gorm:"type:uuid;not null;index:uq_enroll_user_course,unique;index:uq_enroll_user_path,unique" json:"user_id"`
	User     *tenancy.User   `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	CourseID *uuid.UUID             `gorm:"type:uuid;index:uq_enroll_user_course,unique" json:"course_id,omitempty"`
	Course   *learning.Course       `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	PathID   *uuid.UUID             `gorm:"type:uuid;index:uq_enroll_user_path,unique" json:"path_id,omitempty"`
	Path     *learning.LearningPath `gorm:"constraint:OnDelete:CASCADE;foreignKey:PathID;references:ID" json:"path,omitempty"`

	EnrolledAt  time.Time  `gorm:"column:enrolled_at;not null;default:now()" json:"enrolled_at"`
	CompletedAt *time.Time `gorm:"column:completed_at;index" json:"completed_at,omitempty"`

	tenancy.Timestamps
}

func (Enrollment) TableName() string { return "enrollment" }

func (e *Enrollment) IsCompleted() bool { return e.CompletedAt != nil }
