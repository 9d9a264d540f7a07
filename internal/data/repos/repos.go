package repos

import (
	"gorm.io/gorm"

	"github.com/crewlearn/crewlearn-backend/internal/data/repos/learning"
	"github.com/crewlearn/crewlearn-backend/internal/data/repos/progress"
	"github.com/crewlearn/crewlearn-backend/internal/data/repos/tenancy"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
)

type TenantRepo = tenancy.TenantRepo
type BranchRepo = tenancy.BranchRepo
type UserRepo = tenancy.UserRepo
type UserBranchRepo = tenancy.UserBranchRepo
type RoleRepo = tenancy.RoleRepo
type UserRoleRepo = tenancy.UserRoleRepo

type CourseRepo = learning.CourseRepo
type CourseModuleRepo = learning.CourseModuleRepo
type LessonRepo = learning.LessonRepo
type LearningPathRepo = learning.LearningPathRepo
type LearningPathCourseRepo = learning.LearningPathCourseRepo
type ResourceRepo = learning.ResourceRepo
type SOPRepo = learning.SOPRepo
type SOPVersionRepo = learning.SOPVersionRepo
type ChecklistTemplateRepo = learning.ChecklistTemplateRepo
type ChecklistItemRepo = learning.ChecklistItemRepo
type QuizRepo = learning.QuizRepo
type QuestionRepo = learning.QuestionRepo
type ChoiceRepo = learning.ChoiceRepo

type EnrollmentRepo = progress.EnrollmentRepo
type AssignmentRepo = progress.AssignmentRepo
type LessonProgressRepo = progress.LessonProgressRepo
type QuizAttemptRepo = progress.QuizAttemptRepo
type QuizAnswerRepo = progress.QuizAnswerRepo
type ChecklistRunRepo = progress.ChecklistRunRepo
type ChecklistItemResultRepo = progress.ChecklistItemResultRepo
type CertificateRepo = progress.CertificateRepo

func NewTenantRepo(db *gorm.DB, baseLog *logger.Logger) TenantRepo {
	return tenancy.NewTenantRepo(db, baseLog)
}
func NewBranchRepo(db *gorm.DB, baseLog *logger.Logger) BranchRepo {
	return tenancy.NewBranchRepo(db, baseLog)
}
func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return tenancy.NewUserRepo(db, baseLog)
}
func NewUserBranchRepo(db *gorm.DB, baseLog *logger.Logger) UserBranchRepo {
	return tenancy.NewUserBranchRepo(db, baseLog)
}
func NewRoleRepo(db *gorm.DB, baseLog *logger.Logger) RoleRepo {
	return tenancy.NewRoleRepo(db, baseLog)
}
func NewUserRoleRepo(db *gorm.DB, baseLog *logger.Logger) UserRoleRepo {
	return tenancy.NewUserRoleRepo(db, baseLog)
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return learning.NewCourseRepo(db, baseLog)
}
func NewCourseModuleRepo(db *gorm.DB, baseLog *logger.Logger) CourseModuleRepo {
	return learning.NewCourseModuleRepo(db, baseLog)
}
func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
	return learning.NewLessonRepo(db, baseLog)
}
func NewLearningPathRepo(db *gorm.DB, baseLog *logger.Logger) LearningPathRepo {
	return learning.NewLearningPathRepo(db, baseLog)
}
func NewLearningPathCourseRepo(db *gorm.DB, baseLog *logger.Logger) LearningPathCourseRepo {
	return learning.NewLearningPathCourseRepo(db, baseLog)
}
func NewResourceRepo(db *gorm.DB, baseLog *logger.Logger) ResourceRepo {
	return learning.NewResourceRepo(db, baseLog)
}
func NewSOPRepo(db *gorm.DB, baseLog *logger.Logger) SOPRepo {
	return learning.NewSOPRepo(db, baseLog)
}
func NewSOPVersionRepo(db *gorm.DB, baseLog *logger.Logger) SOPVersionRepo {
	return learning.NewSOPVersionRepo(db, baseLog)
}
func NewChecklistTemplateRepo(db *gorm.DB, baseLog *logger.Logger) ChecklistTemplateRepo {
	return learning.NewChecklistTemplateRepo(db, baseLog)
}
func NewChecklistItemRepo(db *gorm.DB, baseLog *logger.Logger) ChecklistItemRepo {
	return learning.NewChecklistItemRepo(db, baseLog)
}
func NewQuizRepo(db *gorm.DB, baseLog *logger.Logger) QuizRepo {
	return learning.NewQuizRepo(db, baseLog)
}
func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	return learning.NewQuestionRepo(db, baseLog)
}
func NewChoiceRepo(db *gorm.DB, baseLog *logger.Logger) ChoiceRepo {
	return learning.NewChoiceRepo(db, baseLog)
}

func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	return progress.NewEnrollmentRepo(db, baseLog)
}
func NewAssignmentRepo(db *gorm.DB, baseLog *logger.Logger) AssignmentRepo {
	return progress.NewAssignmentRepo(db, baseLog)
}
func NewLessonProgressRepo(db *gorm.DB, baseLog *logger.Logger) LessonProgressRepo {
	return progress.NewLessonProgressRepo(db, baseLog)
}
func NewQuizAttemptRepo(db *gorm.DB, baseLog *logger.Logger) QuizAttemptRepo {
	return progress.NewQuizAttemptRepo(db, baseLog)
}
func NewQuizAnswerRepo(db *gorm.DB, baseLog *logger.Logger) QuizAnswerRepo {
	return progress.NewQuizAnswerRepo(db, baseLog)
}
func NewChecklistRunRepo(db *gorm.DB, baseLog *logger.Logger) ChecklistRunRepo {
	return progress.NewChecklistRunRepo(db, baseLog)
}
func NewChecklistItemResultRepo(db *gorm.DB, baseLog *logger.Logger) ChecklistItemResultRepo {
	return progress.NewChecklistItemResultRepo(db, baseLog)
}
func NewCertificateRepo(db *gorm.DB, baseLog *logger.Logger) CertificateRepo {
	return progress.NewCertificateRepo(db, baseLog)
}
