package learning

import (
	"github.com/google/uuid"

	"github.com/crewlearn/crewlearn-backend/internal/domain/tenancy"
)

// LearningPathCourse orders courses inside a path. Order values are
// unique per path but gaps are allowed; nothing renumbers on delete.
type LearningPathCourse struct {
	ID       uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PathID   uuid.UUID     `gorm:"type:uuid;not null;index:uq_path_course,unique;index:uq_path_course_order,unique" json:"path_id"`
	Path     *LearningPath `gorm:"constraint:OnDelete:CASCADE;foreignKey:PathID;references:ID" json:"path,omitempty"`
	CourseID uuid.UUID     `gorm:"type:uuid;not null;index:uq_path_course,unique" json:"course_id"`
	Course   *Course       `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`

	Order int `gorm:"column:position;not null;default:1;index:uq_path_course_order,unique" json:"order"`

	tenancy.Timestamps
}

func (LearningPathCourse) TableName() string { return "learning_path_course" }
