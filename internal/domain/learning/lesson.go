package learning

import (
	"github.com/google/uuid"

	"github.com/crewlearn/crewlearn-backend/internal/domain/tenancy"
)

type LessonKind string

const (
	LessonKindText      LessonKind = "text"
	LessonKindVideoURL  LessonKind = "video_url"
	LessonKindFile      LessonKind = "file"
	LessonKindSOP       LessonKind = "sop"
	LessonKindChecklist LessonKind = "checklist"
	LessonKindQuiz      LessonKind = "quiz"
)

// Lesson is the leaf of the Course -> CourseModule -> Lesson hierarchy.
// Content fields are used according to kind; the optional SOP /
// checklist / quiz links are nullified (not cascaded) when the linked
// object goes away.
type Lesson struct {
	ID       uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TenantID uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Tenant   *tenancy.Tenant `gorm:"constraint:OnDelete:CASCADE;foreignKey:TenantID;references:ID" json:"tenant,omitempty"`
	ModuleID uuid.UUID       `gorm:"type:uuid;not null;index:uq_lesson_module_order,unique" json:"module_id"`
	Module   *CourseModule   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ModuleID;references:ID" json:"module,omitempty"`

	Title string     `gorm:"column:title;not null" json:"title"`
	Order int        `gorm:"column:position;not null;default:1;index:uq_lesson_module_order,unique" json:"order"`
	Kind  LessonKind `gorm:"column:kind;not null;default:'text';index" json:"kind"`

	TextContent string `gorm:"column:text_content;type:text" json:"text_content"`
	VideoURL    string `gorm:"column:video_url" json:"video_url"`
	FileKey     string `gorm:"column:file_key" json:"file_key"` // opaque storage reference

	SOPID               *uuid.UUID         `gorm:"type:uuid" json:"sop_id,omitempty"`
	SOP                 *SOP               `gorm:"constraint:OnDelete:SET NULL;foreignKey:SOPID;references:ID" json:"sop,omitempty"`
	ChecklistTemplateID *uuid.UUID         `gorm:"type:uuid" json:"checklist_template_id,omitempty"`
	ChecklistTemplate   *ChecklistTemplate `gorm:"constraint:OnDelete:SET NULL;foreignKey:ChecklistTemplateID;references:ID" json:"checklist_template,omitempty"`
	QuizID              *uuid.UUID         `gorm:"type:uuid" json:"quiz_id,omitempty"`
	Quiz                *Quiz              `gorm:"constraint:OnDelete:SET NULL;foreignKey:QuizID;references:ID" json:"quiz,omitempty"`

	tenancy.Timestamps
}

func (Lesson) TableName() string { return "lesson" }
