package tenancy

import (
	"github.com/google/uuid"
)

type Branch struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index:uq_branch_tenant_name,unique" json:"tenant_id"`
	Tenant   *Tenant   `gorm:"constraint:OnDelete:CASCADE;foreignKey:TenantID;references:ID" json:"tenant,omitempty"`

	Name     string `gorm:"column:name;not null;index:uq_branch_tenant_name,unique" json:"name"`
	Code     string `gorm:"column:code" json:"code"`
	City     string `gorm:"column:city" json:"city"`
	IsActive bool   `gorm:"column:is_active;not null;default:true" json:"is_active"`

	Timestamps
}

func (Branch) TableName() string { return "branch" }
