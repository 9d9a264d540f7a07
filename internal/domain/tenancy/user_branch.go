package tenancy

import (
	"github.com/google/uuid"
)

// UserBranch is the membership of a user in a branch. A user can belong
// to several branches; is_primary marks the home branch.
type UserBranch struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index:uq_user_branch,unique" json:"user_id"`
	User     *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	BranchID uuid.UUID `gorm:"type:uuid;not null;index:uq_user_branch,unique" json:"branch_id"`
	Branch   *Branch   `gorm:"constraint:OnDelete:CASCADE;foreignKey:BranchID;references:ID" json:"branch,omitempty"`

	IsPrimary bool `gorm:"column:is_primary;not null;default:false" json:"is_primary"`

	Timestamps
}

func (UserBranch) TableName() string { return "user_branch" }
