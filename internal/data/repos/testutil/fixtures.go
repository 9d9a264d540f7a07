package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crewlearn/crewlearn-backend/internal/domain"
)

// Fixture helpers seed minimal rows for integration tests. Each helper
// fails the test on error so call sites stay linear.

func SeedTenant(tb testing.TB, tx *gorm.DB, name string) *types.Tenant {
	tb.Helper()
	tenant := &types.Tenant{
		Name: name,
		Slug: fmt.Sprintf("%s-%s", name, uuid.NewString()[:8]),
	}
	if err := tx.Create(tenant).Error; err != nil {
		tb.Fatalf("seed tenant: %v", err)
	}
	return tenant
}

func SeedBranch(tb testing.TB, tx *gorm.DB, tenantID uuid.UUID, name string) *types.Branch {
	tb.Helper()
	branch := &types.Branch{TenantID: tenantID, Name: name, IsActive: true}
	if err := tx.Create(branch).Error; err != nil {
		tb.Fatalf("seed branch: %v", err)
	}
	return branch
}

func SeedUser(tb testing.TB, tx *gorm.DB, tenantID uuid.UUID, username string) *types.User {
	tb.Helper()
	user := &types.User{
		TenantID: &tenantID,
		Username: fmt.Sprintf("%s-%s", username, uuid.NewString()[:8]),
		Password: "x",
	}
	if err := tx.Create(user).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return user
}

func SeedRole(tb testing.TB, tx *gorm.DB, tenantID uuid.UUID, name string) *types.Role {
	tb.Helper()
	role := &types.Role{TenantID: tenantID, Name: name}
	if err := tx.Create(role).Error; err != nil {
		tb.Fatalf("seed role: %v", err)
	}
	return role
}

func SeedCourse(tb testing.TB, tx *gorm.DB, tenantID uuid.UUID, title string) *types.Course {
	tb.Helper()
	course := &types.Course{
		TenantID: tenantID,
		Title:    title,
		Status:   types.ContentStatusPublished,
	}
	if err := tx.Create(course).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return course
}

func SeedModule(tb testing.TB, tx *gorm.DB, course *types.Course, title string, order int) *types.CourseModule {
	tb.Helper()
	module := &types.CourseModule{
		TenantID: course.TenantID,
		CourseID: course.ID,
		Title:    title,
		Order:    order,
	}
	if err := tx.Create(module).Error; err != nil {
		tb.Fatalf("seed module: %v", err)
	}
	return module
}

func SeedLesson(tb testing.TB, tx *gorm.DB, module *types.CourseModule, title string, order int) *types.Lesson {
	tb.Helper()
	lesson := &types.Lesson{
		TenantID:    module.TenantID,
		ModuleID:    module.ID,
		Title:       title,
		Kind:        types.LessonKindText,
		Order:       order,
		TextContent: "body",
	}
	if err := tx.Create(lesson).Error; err != nil {
		tb.Fatalf("seed lesson: %v", err)
	}
	return lesson
}

func SeedPath(tb testing.TB, tx *gorm.DB, tenantID uuid.UUID, title string) *types.LearningPath {
	tb.Helper()
	path := &types.LearningPath{
		TenantID: tenantID,
		Title:    title,
		Status:   types.ContentStatusPublished,
	}
	if err := tx.Create(path).Error; err != nil {
		tb.Fatalf("seed path: %v", err)
	}
	return path
}

func SeedSOP(tb testing.TB, tx *gorm.DB, tenantID uuid.UUID, title string) *types.SOP {
	tb.Helper()
	sop := &types.SOP{TenantID: tenantID, Title: title, IsActive: true}
	if err := tx.Create(sop).Error; err != nil {
		tb.Fatalf("seed sop: %v", err)
	}
	return sop
}

func SeedChecklistTemplate(tb testing.TB, tx *gorm.DB, tenantID uuid.UUID, title string) *types.ChecklistTemplate {
	tb.Helper()
	tmpl := &types.ChecklistTemplate{TenantID: tenantID, Title: title}
	if err := tx.Create(tmpl).Error; err != nil {
		tb.Fatalf("seed checklist template: %v", err)
	}
	return tmpl
}

func SeedChecklistItem(tb testing.TB, tx *gorm.DB, tmpl *types.ChecklistTemplate, text string, order int) *types.ChecklistItem {
	tb.Helper()
	item := &types.ChecklistItem{
		TemplateID: tmpl.ID,
		Text:       text,
		Order:      order,
		IsRequired: true,
	}
	if err := tx.Create(item).Error; err != nil {
		tb.Fatalf("seed checklist item: %v", err)
	}
	return item
}

func SeedQuiz(tb testing.TB, tx *gorm.DB, tenantID uuid.UUID, title string, passingScore, maxAttempts int) *types.Quiz {
	tb.Helper()
	quiz := &types.Quiz{
		TenantID:     tenantID,
		Title:        title,
		PassingScore: passingScore,
		MaxAttempts:  maxAttempts,
	}
	if err := tx.Create(quiz).Error; err != nil {
		tb.Fatalf("seed quiz: %v", err)
	}
	return quiz
}

func SeedQuestion(tb testing.TB, tx *gorm.DB, quiz *types.Quiz, text string, order int) *types.Question {
	tb.Helper()
	question := &types.Question{QuizID: quiz.ID, Text: text, Order: order}
	if err := tx.Create(question).Error; err != nil {
		tb.Fatalf("seed question: %v", err)
	}
	return question
}

func SeedChoice(tb testing.TB, tx *gorm.DB, question *types.Question, text string, correct bool) *types.Choice {
	tb.Helper()
	choice := &types.Choice{QuestionID: question.ID, Text: text, IsCorrect: correct}
	if err := tx.Create(choice).Error; err != nil {
		tb.Fatalf("seed choice: %v", err)
	}
	return choice
}
