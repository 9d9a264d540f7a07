package progress

import (
	"time"

	"github.com/google/uuid"

	"github.com/crewlearn/crewlearn-backend/internal/domain/learning"
	"github.com/crewlearn/crewlearn-backend/internal/domain/tenancy"
)

// Certificate is a completion proof for exactly one of a course or a
// path. Content references use SET NULL so a certificate outlives the
// content it was issued for; Code is the printable verification code.
type Certificate struct {
	ID       uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TenantID uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Tenant   *tenancy.Tenant `gorm:"constraint:OnDelete:CASCADE;foreignKey:TenantID;references:ID" json:"tenant,omitempty"`
	UserID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User     *tenancy.User   `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	CourseID *uuid.UUID             `gorm:"type:uuid" json:"course_id,omitempty"`
	Course   *learning.Course       `gorm:"constraint:OnDelete:SET NULL;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	PathID   *uuid.UUID             `gorm:"type:uuid" json:"path_id,omitempty"`
	Path     *learning.LearningPath `gorm:"constraint:OnDelete:SET NULL;foreignKey:PathID;references:ID" json:"path,omitempty"`

	IssuedAt time.Time `gorm:"column:issued_at;not null;default:now();index" json:"issued_at"`
	Code     string    `gorm:"type:varchar(32);not null;uniqueIndex" json:"code"`

	tenancy.Timestamps
}

func (Certificate) TableName() string { return "certificate" }
