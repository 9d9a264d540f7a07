package tenancy

import (
	"github.com/google/uuid"
)

type UserRole struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:uq_user_role,unique" json:"user_id"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	RoleID uuid.UUID `gorm:"type:uuid;not null;index:uq_user_role,unique" json:"role_id"`
	Role   *Role     `gorm:"constraint:OnDelete:CASCADE;foreignKey:RoleID;references:ID" json:"role,omitempty"`

	Timestamps
}

func (UserRole) TableName() string { return "user_role" }
