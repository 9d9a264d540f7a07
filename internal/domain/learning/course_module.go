package learning

import (
	"github.com/google/uuid"

	"github.com/crewlearn/crewlearn-backend/internal/domain/tenancy"
)

type CourseModule struct {
	ID       uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TenantID uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Tenant   *tenancy.Tenant `gorm:"constraint:OnDelete:CASCADE;foreignKey:TenantID;references:ID" json:"tenant,omitempty"`
	CourseID uuid.UUID       `gorm:"type:uuid;not null;index:uq_module_course_order,unique" json:"course_id"`
	Course   *Course         `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`

	Title string `gorm:"column:title;not null" json:"title"`
	Order int    `gorm:"column:position;not null;default:1;index:uq_module_course_order,unique" json:"order"`

	tenancy.Timestamps
}

func (CourseModule) TableName() string { return "course_module" }
