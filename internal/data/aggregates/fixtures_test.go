package aggregates

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	repotest "github.com/crewlearn/crewlearn-backend/internal/data/repos/testutil"
	types "github.com/crewlearn/crewlearn-backend/internal/domain"
)

// testFixtures wraps the shared seed helpers with the test and tx
// bound, keeping aggregate tests free of plumbing.
type testFixtures struct {
	t  *testing.T
	tx *gorm.DB
}

func newTestFixtures(t *testing.T, tx *gorm.DB) *testFixtures {
	return &testFixtures{t: t, tx: tx}
}

func (f *testFixtures) Tenant(name string) *types.Tenant {
	return repotest.SeedTenant(f.t, f.tx, name)
}

func (f *testFixtures) Branch(tenantID uuid.UUID, name string) *types.Branch {
	return repotest.SeedBranch(f.t, f.tx, tenantID, name)
}

func (f *testFixtures) User(tenantID uuid.UUID, username string) *types.User {
	return repotest.SeedUser(f.t, f.tx, tenantID, username)
}

func (f *testFixtures) Role(tenantID uuid.UUID, name string) *types.Role {
	return repotest.SeedRole(f.t, f.tx, tenantID, name)
}

func (f *testFixtures) Course(tenantID uuid.UUID, title string) *types.Course {
	return repotest.SeedCourse(f.t, f.tx, tenantID, title)
}

func (f *testFixtures) Module(course *types.Course, title string, order int) *types.CourseModule {
	return repotest.SeedModule(f.t, f.tx, course, title, order)
}

func (f *testFixtures) Lesson(module *types.CourseModule, title string, order int) *types.Lesson {
	return repotest.SeedLesson(f.t, f.tx, module, title, order)
}

func (f *testFixtures) Path(tenantID uuid.UUID, title string) *types.LearningPath {
	return repotest.SeedPath(f.t, f.tx, tenantID, title)
}

func (f *testFixtures) SOP(tenantID uuid.UUID, title string) *types.SOP {
	return repotest.SeedSOP(f.t, f.tx, tenantID, title)
}

func (f *testFixtures) ChecklistTemplate(tenantID uuid.UUID, title string) *types.ChecklistTemplate {
	return repotest.SeedChecklistTemplate(f.t, f.tx, tenantID, title)
}

func (f *testFixtures) ChecklistItem(tmpl *types.ChecklistTemplate, text string, order int) *types.ChecklistItem {
	return repotest.SeedChecklistItem(f.t, f.tx, tmpl, text, order)
}

func (f *testFixtures) Quiz(tenantID uuid.UUID, title string, passingScore, maxAttempts int) *types.Quiz {
	return repotest.SeedQuiz(f.t, f.tx, tenantID, title, passingScore, maxAttempts)
}

func (f *testFixtures) Question(quiz *types.Quiz, text string, order int) *types.Question {
	return repotest.SeedQuestion(f.t, f.tx, quiz, text, order)
}

func (f *testFixtures) Choice(question *types.Question, text string, correct bool) *types.Choice {
	return repotest.SeedChoice(f.t, f.tx, question, text, correct)
}
