package progress

import (
	"github.com/google/uuid"

	"github.com/crewlearn/crewlearn-backend/internal/domain/learning"
	"github.com/crewlearn/crewlearn-backend/internal/domain/tenancy"
)

// ChecklistItemResult marks one template item within a run. The
// checklist aggregate rejects items that belong to a different
// template than the run's.
type ChecklistItemResult struct {
	ID    uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RunID uuid.UUID     `gorm:"type:uuid;not null;index:uq_run_item,unique" json:"run_id"`
	Run   *ChecklistRun `gorm:"constraint:OnDelete:CASCADE;foreignKey:RunID;references:ID" json:"run,omitempty"`

	ItemID uuid.UUID               `gorm:"type:uuid;not null;index:uq_run_item,unique" json:"item_id"`
	Item   *learning.ChecklistItem `gorm:"constraint:OnDelete:CASCADE;foreignKey:ItemID;references:ID" json:"item,omitempty"`

	IsDone  bool   `gorm:"column:is_done;not null;default:false" json:"is_done"`
	Comment string `gorm:"type:varchar(300);not null;default:''" json:"comment,omitempty"`

	tenancy.Timestamps
}

func (ChecklistItemResult) TableName() string { return "checklist_item_result" }
