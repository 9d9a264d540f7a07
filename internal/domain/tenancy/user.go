package tenancy

import (
	"github.com/google/uuid"
)

// User is tenant-scoped. TenantID is nullable only for superusers;
// the membership aggregate rejects non-superusers without a tenant.
type User struct {
	ID       uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TenantID *uuid.UUID `gorm:"type:uuid;index" json:"tenant_id,omitempty"`
	Tenant   *Tenant    `gorm:"constraint:OnDelete:CASCADE;foreignKey:TenantID;references:ID" json:"tenant,omitempty"`

	Username string `gorm:"column:username;uniqueIndex;not null" json:"username"`
	Email    string `gorm:"column:email;not null;index" json:"email"`
	Password string `gorm:"column:password;not null" json:"-"`

	Phone         string `gorm:"column:phone" json:"phone"`
	EmployeeID    string `gorm:"column:employee_id" json:"employee_id"`
	IsTenantAdmin bool   `gorm:"column:is_tenant_admin;not null;default:false" json:"is_tenant_admin"`
	IsSuperuser   bool   `gorm:"column:is_superuser;not null;default:false" json:"is_superuser"`

	Timestamps
}

func (User) TableName() string { return "user" }
