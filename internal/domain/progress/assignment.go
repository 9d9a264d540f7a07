package progress

import (
	"time"

	"github.com/google/uuid"

	"github.com/crewlearn/crewlearn-backend/internal/domain/learning"
	"github.com/crewlearn/crewlearn-backend/internal/domain/tenancy"
)

type AssignmentKind string

const (
	AssignmentKindCourse AssignmentKind = "course"
	AssignmentKindPath   AssignmentKind = "path"
)

// Assignment pushes a course or path to a target audience. Kind names
// which content column must be set; exactly one of the three target
// columns (user, role, branch) must be set. Both rules are enforced by
// the assignment aggregate before any write.
type Assignment struct {
	ID       uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TenantID uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Tenant   *tenancy.Tenant `gorm:"constraint:OnDelete:CASCADE;foreignKey:TenantID;references:ID" json:"tenant,omitempty"`

	Kind     AssignmentKind         `gorm:"type:varchar(16);not null" json:"kind"`
	CourseID *uuid.UUID             `gorm:"type:uuid;index" json:"course_id,omitempty"`
	Course   *learning.Course       `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	PathID   *uuid.UUID             `gorm:"type:uuid;index" json:"path_id,omitempty"`
	Path     *learning.LearningPath `gorm:"constraint:OnDelete:CASCADE;foreignKey:PathID;references:ID" json:"path,omitempty"`

	TargetUserID   *uuid.UUID      `gorm:"type:uuid;index" json:"target_user_id,omitempty"`
	TargetUser     *tenancy.User   `gorm:"constraint:OnDelete:CASCADE;foreignKey:TargetUserID;references:ID" json:"target_user,omitempty"`
	TargetRoleID   *uuid.UUID      `gorm:"type:uuid;index" json:"target_role_id,omitempty"`
	TargetRole     *tenancy.Role   `gorm:"constraint:OnDelete:CASCADE;foreignKey:TargetRoleID;references:ID" json:"target_role,omitempty"`
	TargetBranchID *uuid.UUID      `gorm:"type:uuid;index" json:"target_branch_id,omitempty"`
	TargetBranch   *tenancy.Branch `gorm:"constraint:OnDelete:CASCADE;foreignKey:TargetBranchID;references:ID" json:"target_branch,omitempty"`

	DueAt       *time.Time    `gorm:"column:due_at;index" json:"due_at,omitempty"`
	CreatedByID *uuid.UUID    `gorm:"type:uuid" json:"created_by_id,omitempty"`
	CreatedBy   *tenancy.User `gorm:"constraint:OnDelete:SET NULL;foreignKey:CreatedByID;references:ID" json:"created_by,omitempty"`
	IsActive    bool          `gorm:"column:is_active;not null;default:true" json:"is_active"`

	tenancy.Timestamps
}

func (Assignment) TableName() string { return "assignment" }
