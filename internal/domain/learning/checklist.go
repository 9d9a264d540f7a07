package learning

import (
	"github.com/google/uuid"

	"github.com/crewlearn/crewlearn-backend/internal/domain/tenancy"
)

type ChecklistTemplate struct {
	ID       uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TenantID uuid.UUID       `gorm:"type:uuid;not null;index:uq_checklist_tenant_title,unique" json:"tenant_id"`
	Tenant   *tenancy.Tenant `gorm:"constraint:OnDelete:CASCADE;foreignKey:TenantID;references:ID" json:"tenant,omitempty"`

	Title       string `gorm:"column:title;not null;index:uq_checklist_tenant_title,unique" json:"title"`
	Description string `gorm:"column:description;type:text" json:"description"`
	IsActive    bool   `gorm:"column:is_active;not null;default:true" json:"is_active"`

	tenancy.Timestamps
}

func (ChecklistTemplate) TableName() string { return "checklist_template" }

type ChecklistItem struct {
	ID         uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TemplateID uuid.UUID          `gorm:"type:uuid;not null;index:uq_checklist_item_order,unique" json:"template_id"`
	Template   *ChecklistTemplate `gorm:"constraint:OnDelete:CASCADE;foreignKey:TemplateID;references:ID" json:"template,omitempty"`

	Text       string `gorm:"column:text;not null" json:"text"`
	Order      int    `gorm:"column:position;not null;default:1;index:uq_checklist_item_order,unique" json:"order"`
	IsRequired bool   `gorm:"column:is_required;not null;default:true" json:"is_required"`

	tenancy.Timestamps
}

func (ChecklistItem) TableName() string { return "checklist_item" }
