package learning

import (
	"github.com/google/uuid"

	"github.com/crewlearn/crewlearn-backend/internal/domain/tenancy"
)

type ContentStatus string

const (
	ContentStatusDraft     ContentStatus = "draft"
	ContentStatusPublished ContentStatus = "published"
	ContentStatusArchived  ContentStatus = "archived"
)

type Course struct {
	ID       uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TenantID uuid.UUID       `gorm:"type:uuid;not null;index:uq_course_tenant_title,unique" json:"tenant_id"`
	Tenant   *tenancy.Tenant `gorm:"constraint:OnDelete:CASCADE;foreignKey:TenantID;references:ID" json:"tenant,omitempty"`

	Title       string        `gorm:"column:title;not null;index:uq_course_tenant_title,unique" json:"title"`
	Description string        `gorm:"column:description;type:text" json:"description"`
	Status      ContentStatus `gorm:"column:status;not null;default:'draft';index" json:"status"`

	// Branch scoping: when false, the course is visible only to the
	// branches attached through the join table.
	AvailableToAllBranches bool              `gorm:"column:available_to_all_branches;not null;default:true" json:"available_to_all_branches"`
	Branches               []*tenancy.Branch `gorm:"many2many:course_branch" json:"branches,omitempty"`

	EstimatedMinutes int `gorm:"column:estimated_minutes;not null;default:0" json:"estimated_minutes"`

	tenancy.Timestamps
}

func (Course) TableName() string { return "course" }
