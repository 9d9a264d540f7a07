package tenancy

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
	TenantStatusTrial     TenantStatus = "trial"
	TenantStatusArchived  TenantStatus = "archived"
)

// Timestamps is embedded by every table in the schema.
type Timestamps struct {
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

// Tenant is the root owner of all scoped data. Everything below it
// carries a tenant_id partitioning key.
type Tenant struct {
	ID     uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name   string       `gorm:"column:name;not null" json:"name"`
	Slug   string       `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	Status TenantStatus `gorm:"column:status;not null;default:'trial';index" json:"status"`

	// Free-form branding/settings, kept as jsonb to avoid over-modeling early.
	Settings datatypes.JSON `gorm:"column:settings;type:jsonb" json:"settings"`

	PlanName   string `gorm:"column:plan_name" json:"plan_name"`
	SeatsLimit int    `gorm:"column:seats_limit;not null;default:0" json:"seats_limit"` // 0 = unlimited

	Timestamps
}

func (Tenant) TableName() string { return "tenant" }
