package aggregates

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/crewlearn/crewlearn-backend/internal/data/repos"
	repotest "github.com/crewlearn/crewlearn-backend/internal/data/repos/testutil"
	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
)

func newContentAggregateForTest(t *testing.T) (domainagg.ContentAggregate, *testFixtures) {
	t.Helper()
	db := repotest.DB(t)
	tx := repotest.Tx(t, db)
	log := repotest.Logger(t)

	agg := NewContentAggregate(ContentAggregateDeps{
		Base: BaseDeps{
			DB:     tx,
			Log:    log,
			Runner: NewGormTxRunner(tx),
		},
		Courses:     repos.NewCourseRepo(tx, log),
		Modules:     repos.NewCourseModuleRepo(tx, log),
		Lessons:     repos.NewLessonRepo(tx, log),
		Paths:       repos.NewLearningPathRepo(tx, log),
		PathCourses: repos.NewLearningPathCourseRepo(tx, log),
		Branches:    repos.NewBranchRepo(tx, log),
		SOPs:        repos.NewSOPRepo(tx, log),
		Checklists:  repos.NewChecklistTemplateRepo(tx, log),
		Quizzes:     repos.NewQuizRepo(tx, log),
	})
	return agg, newTestFixtures(t, tx)
}

func TestAddModuleAppendsNextOrder(t *testing.T) {
	agg, fx := newContentAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	course := fx.Course(tenant.ID, "Food Safety")

	first, err := agg.AddModule(ctx, domainagg.AddModuleInput{
		TenantID: tenant.ID, CourseID: course.ID, Title: "Basics",
	})
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if first.Order != 1 {
		t.Fatalf("first order: want=1 got=%d", first.Order)
	}

	second, err := agg.AddModule(ctx, domainagg.AddModuleInput{
		TenantID: tenant.ID, CourseID: course.ID, Title: "Advanced",
	})
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if second.Order != 2 {
		t.Fatalf("second order: want=2 got=%d", second.Order)
	}
}

func TestAddModuleDuplicateOrderConflicts(t *testing.T) {
	agg, fx := newContentAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	course := fx.Course(tenant.ID, "Food Safety")

	if _, err := agg.AddModule(ctx, domainagg.AddModuleInput{
		TenantID: tenant.ID, CourseID: course.ID, Title: "Basics", Order: 1,
	}); err != nil {
		t.Fatalf("first: %v", err)
	}
	_, err := agg.AddModule(ctx, domainagg.AddModuleInput{
		TenantID: tenant.ID, CourseID: course.ID, Title: "Clash", Order: 1,
	})
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("want conflict, got %v", err)
	}
}

func TestAddModuleCrossTenantCourse(t *testing.T) {
	agg, fx := newContentAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	other := fx.Tenant("rival")
	course := fx.Course(other.ID, "Rival Course")

	_, err := agg.AddModule(ctx, domainagg.AddModuleInput{
		TenantID: tenant.ID, CourseID: course.ID, Title: "Basics",
	})
	if !domainagg.IsCode(err, domainagg.CodeInvariantViolation) {
		t.Fatalf("want invariant_violation, got %v", err)
	}
	if !strings.Contains(err.Error(), "Module tenant must match course tenant.") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestAddLessonKindContentAgreement(t *testing.T) {
	agg, fx := newContentAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	course := fx.Course(tenant.ID, "Food Safety")
	module := fx.Module(course, "Basics", 1)

	_, err := agg.AddLesson(ctx, domainagg.AddLessonInput{
		TenantID: tenant.ID, ModuleID: module.ID, Title: "Empty", Kind: "text",
	})
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("text without content: want validation, got %v", err)
	}

	out, err := agg.AddLesson(ctx, domainagg.AddLessonInput{
		TenantID: tenant.ID, ModuleID: module.ID, Title: "Intro",
		Kind: "text", TextContent: "Wash your hands.",
	})
	if err != nil {
		t.Fatalf("valid text lesson: %v", err)
	}
	if out.Order != 1 {
		t.Fatalf("order: want=1 got=%d", out.Order)
	}
}

func TestAddLessonQuizRefMustShareTenant(t *testing.T) {
	agg, fx := newContentAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	other := fx.Tenant("rival")
	course := fx.Course(tenant.ID, "Food Safety")
	module := fx.Module(course, "Basics", 1)
	foreignQuiz := fx.Quiz(other.ID, "Rival Quiz", 70, 0)

	_, err := agg.AddLesson(ctx, domainagg.AddLessonInput{
		TenantID: tenant.ID, ModuleID: module.ID, Title: "Check",
		Kind: "quiz", QuizID: &foreignQuiz.ID,
	})
	if !domainagg.IsCode(err, domainagg.CodeInvariantViolation) {
		t.Fatalf("want invariant_violation, got %v", err)
	}
}

func TestAddCourseToPathOrderUnique(t *testing.T) {
	agg, fx := newContentAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	path := fx.Path(tenant.ID, "Onboarding")
	courseA := fx.Course(tenant.ID, "Course A")
	courseB := fx.Course(tenant.ID, "Course B")

	if _, err := agg.AddCourseToPath(ctx, domainagg.AddCourseToPathInput{
		TenantID: tenant.ID, PathID: path.ID, CourseID: courseA.ID, Order: 1,
	}); err != nil {
		t.Fatalf("first: %v", err)
	}
	_, err := agg.AddCourseToPath(ctx, domainagg.AddCourseToPathInput{
		TenantID: tenant.ID, PathID: path.ID, CourseID: courseB.ID, Order: 1,
	})
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("duplicate order: want conflict, got %v", err)
	}
}

func TestSetCourseBranchesToleratesRepeatedIDs(t *testing.T) {
	agg, fx := newContentAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	course := fx.Course(tenant.ID, "Food Safety")
	branch := fx.Branch(tenant.ID, "Downtown")

	err := agg.SetCourseBranches(ctx, domainagg.SetCourseBranchesInput{
		TenantID:  tenant.ID,
		CourseID:  course.ID,
		BranchIDs: []uuid.UUID{branch.ID, branch.ID},
	})
	if err != nil {
		t.Fatalf("repeated branch id: %v", err)
	}
}

func TestSetCourseBranchesRejectsForeignBranch(t *testing.T) {
	agg, fx := newContentAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	other := fx.Tenant("rival")
	course := fx.Course(tenant.ID, "Food Safety")
	foreign := fx.Branch(other.ID, "Rival HQ")

	err := agg.SetCourseBranches(ctx, domainagg.SetCourseBranchesInput{
		TenantID:  tenant.ID,
		CourseID:  course.ID,
		BranchIDs: []uuid.UUID{foreign.ID},
	})
	if !domainagg.IsCode(err, domainagg.CodeInvariantViolation) {
		t.Fatalf("want invariant_violation, got %v", err)
	}
}
