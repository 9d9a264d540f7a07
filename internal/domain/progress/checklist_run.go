package progress

import (
	"time"

	"github.com/google/uuid"

	"github.com/crewlearn/crewlearn-backend/internal/domain/learning"
	"github.com/crewlearn/crewlearn-backend/internal/domain/tenancy"
)

// ChecklistRun is one execution of a checklist template, usually per
// shift. Approval is optional and recorded by setting approver and
// timestamp together.
type ChecklistRun struct {
	ID         uuid.UUID                  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TenantID   uuid.UUID                  `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Tenant     *tenancy.Tenant            `gorm:"constraint:OnDelete:CASCADE;foreignKey:TenantID;references:ID" json:"tenant,omitempty"`
	TemplateID uuid.UUID                  `gorm:"type:uuid;not null;index" json:"template_id"`
	Template   *learning.ChecklistTemplate `gorm:"constraint:OnDelete:CASCADE;foreignKey:TemplateID;references:ID" json:"template,omitempty"`
	BranchID   *uuid.UUID                 `gorm:"type:uuid;index" json:"branch_id,omitempty"`
	Branch     *tenancy.Branch            `gorm:"constraint:OnDelete:SET NULL;foreignKey:BranchID;references:ID" json:"branch,omitempty"`

	PerformedByID uuid.UUID     `gorm:"type:uuid;not null;index" json:"performed_by_id"`
	PerformedBy   *tenancy.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:PerformedByID;references:ID" json:"performed_by,omitempty"`
	PerformedAt   time.Time     `gorm:"column:performed_at;not null;default:now();index" json:"performed_at"`

	ApprovedByID *uuid.UUID    `gorm:"type:uuid" json:"approved_by_id,omitempty"`
	ApprovedBy   *tenancy.User `gorm:"constraint:OnDelete:SET NULL;foreignKey:ApprovedByID;references:ID" json:"approved_by,omitempty"`
	ApprovedAt   *time.Time    `gorm:"column:approved_at" json:"approved_at,omitempty"`

	Notes string `gorm:"type:text;not null;default:''" json:"notes,omitempty"`

	ItemResults []*ChecklistItemResult `gorm:"foreignKey:RunID" json:"item_results,omitempty"`

	tenancy.Timestamps
}

func (ChecklistRun) TableName() string { return "checklist_run" }

func (r *ChecklistRun) IsApproved() bool { return r.ApprovedAt != nil }
