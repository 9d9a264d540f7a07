package learning

import (
	"github.com/google/uuid"

	"github.com/crewlearn/crewlearn-backend/internal/domain/tenancy"
)

type LearningPath struct {
	ID       uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TenantID uuid.UUID       `gorm:"type:uuid;not null;index:uq_path_tenant_title,unique" json:"tenant_id"`
	Tenant   *tenancy.Tenant `gorm:"constraint:OnDelete:CASCADE;foreignKey:TenantID;references:ID" json:"tenant,omitempty"`

	Title       string        `gorm:"column:title;not null;index:uq_path_tenant_title,unique" json:"title"`
	Description string        `gorm:"column:description;type:text" json:"description"`
	Status      ContentStatus `gorm:"column:status;not null;default:'draft';index" json:"status"`

	AvailableToAllBranches bool              `gorm:"column:available_to_all_branches;not null;default:true" json:"available_to_all_branches"`
	Branches               []*tenancy.Branch `gorm:"many2many:learning_path_branch" json:"branches,omitempty"`

	tenancy.Timestamps
}

func (LearningPath) TableName() string { return "learning_path" }
