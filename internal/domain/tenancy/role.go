package tenancy

import (
	"github.com/google/uuid"
)

// Role is tenant-scoped (Cashier, Barista, Kitchen, Manager, ...).
// Kept as a data table so each tenant can define its own roles.
type Role struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index:uq_role_tenant_name,unique" json:"tenant_id"`
	Tenant   *Tenant   `gorm:"constraint:OnDelete:CASCADE;foreignKey:TenantID;references:ID" json:"tenant,omitempty"`

	Name          string `gorm:"column:name;not null;index:uq_role_tenant_name,unique" json:"name"`
	IsManagerRole bool   `gorm:"column:is_manager_role;not null;default:false" json:"is_manager_role"`

	Timestamps
}

func (Role) TableName() string { return "role" }
