package learning

import (
	"time"

	"github.com/google/uuid"

	"github.com/crewlearn/crewlearn-backend/internal/domain/tenancy"
)

// SOP is a standard-operating-procedure container. The actual content
// lives in versions.
type SOP struct {
	ID       uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TenantID uuid.UUID       `gorm:"type:uuid;not null;index:uq_sop_tenant_title,unique" json:"tenant_id"`
	Tenant   *tenancy.Tenant `gorm:"constraint:OnDelete:CASCADE;foreignKey:TenantID;references:ID" json:"tenant,omitempty"`

	Title    string `gorm:"column:title;not null;index:uq_sop_tenant_title,unique" json:"title"`
	IsActive bool   `gorm:"column:is_active;not null;default:true" json:"is_active"`

	tenancy.Timestamps
}

func (SOP) TableName() string { return "sop" }

type SOPVersion struct {
	ID    uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SOPID uuid.UUID `gorm:"type:uuid;not null;index:uq_sop_version,unique" json:"sop_id"`
	SOP   *SOP      `gorm:"constraint:OnDelete:CASCADE;foreignKey:SOPID;references:ID" json:"sop,omitempty"`

	Version     int        `gorm:"column:version;not null;default:1;index:uq_sop_version,unique" json:"version"`
	Content     string     `gorm:"column:content;type:text;not null" json:"content"` // markdown/plain text steps
	PublishedAt *time.Time `gorm:"column:published_at;index" json:"published_at,omitempty"`

	tenancy.Timestamps
}

func (SOPVersion) TableName() string { return "sop_version" }
