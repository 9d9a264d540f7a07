package domain

import (
	"github.com/crewlearn/crewlearn-backend/internal/domain/learning"
	"github.com/crewlearn/crewlearn-backend/internal/domain/progress"
	"github.com/crewlearn/crewlearn-backend/internal/domain/tenancy"
)

const (
	TenantStatusActive    = tenancy.TenantStatusActive
	TenantStatusSuspended = tenancy.TenantStatusSuspended
	TenantStatusTrial     = tenancy.TenantStatusTrial
	TenantStatusArchived  = tenancy.TenantStatusArchived

	ContentStatusDraft     = learning.ContentStatusDraft
	ContentStatusPublished = learning.ContentStatusPublished
	ContentStatusArchived  = learning.ContentStatusArchived

	LessonKindText      = learning.LessonKindText
	LessonKindVideoURL  = learning.LessonKindVideoURL
	LessonKindFile      = learning.LessonKindFile
	LessonKindSOP       = learning.LessonKindSOP
	LessonKindChecklist = learning.LessonKindChecklist
	LessonKindQuiz      = learning.LessonKindQuiz

	AssignmentKindCourse = progress.AssignmentKindCourse
	AssignmentKindPath   = progress.AssignmentKindPath
)

type TenantStatus = tenancy.TenantStatus
type Tenant = tenancy.Tenant
type Branch = tenancy.Branch
type User = tenancy.User
type UserBranch = tenancy.UserBranch
type Role = tenancy.Role
type UserRole = tenancy.UserRole
type Timestamps = tenancy.Timestamps

type ContentStatus = learning.ContentStatus
type LessonKind = learning.LessonKind
type Course = learning.Course
type CourseModule = learning.CourseModule
type Lesson = learning.Lesson
type LearningPath = learning.LearningPath
type LearningPathCourse = learning.LearningPathCourse
type Resource = learning.Resource
type SOP = learning.SOP
type SOPVersion = learning.SOPVersion
type ChecklistTemplate = learning.ChecklistTemplate
type ChecklistItem = learning.ChecklistItem
type Quiz = learning.Quiz
type Question = learning.Question
type Choice = learning.Choice

type AssignmentKind = progress.AssignmentKind
type Enrollment = progress.Enrollment
type Assignment = progress.Assignment
type LessonProgress = progress.LessonProgress
type QuizAttempt = progress.QuizAttempt
type QuizAnswer = progress.QuizAnswer
type ChecklistRun = progress.ChecklistRun
type ChecklistItemResult = progress.ChecklistItemResult
type Certificate = progress.Certificate

// AllModels lists every persisted type in migration order. Referenced
// tables come before their referencers so AutoMigrate can create
// foreign keys in one pass.
func AllModels() []any {
	return []any{
		&Tenant{},
		&Branch{},
		&User{},
		&UserBranch{},
		&Role{},
		&UserRole{},
		&Course{},
		&CourseModule{},
		&LearningPath{},
		&LearningPathCourse{},
		&Resource{},
		&SOP{},
		&SOPVersion{},
		&ChecklistTemplate{},
		&ChecklistItem{},
		&Quiz{},
		&Question{},
		&Choice{},
		&Lesson{},
		&Enrollment{},
		&Assignment{},
		&LessonProgress{},
		&QuizAttempt{},
		&QuizAnswer{},
		&ChecklistRun{},
		&ChecklistItemResult{},
		&Certificate{},
	}
}
