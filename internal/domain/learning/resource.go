package learning

import (
	"github.com/google/uuid"

	"github.com/crewlearn/crewlearn-backend/internal/domain/tenancy"
)

// Resource is a reusable tenant file (policies, PDFs, images).
type Resource struct {
	ID       uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TenantID uuid.UUID       `gorm:"type:uuid;not null;index:uq_resource_tenant_title,unique" json:"tenant_id"`
	Tenant   *tenancy.Tenant `gorm:"constraint:OnDelete:CASCADE;foreignKey:TenantID;references:ID" json:"tenant,omitempty"`

	Title       string `gorm:"column:title;not null;index:uq_resource_tenant_title,unique" json:"title"`
	FileKey     string `gorm:"column:file_key;not null" json:"file_key"`
	Description string `gorm:"column:description;type:text" json:"description"`

	tenancy.Timestamps
}

func (Resource) TableName() string { return "resource" }
