package aggregates

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/crewlearn/crewlearn-backend/internal/data/repos"
	repotest "github.com/crewlearn/crewlearn-backend/internal/data/repos/testutil"
	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
)

func newEnrollmentAggregateForTest(t *testing.T) (domainagg.EnrollmentAggregate, *testFixtures) {
	t.Helper()
	db := repotest.DB(t)
	tx := repotest.Tx(t, db)
	log := repotest.Logger(t)

	agg := NewEnrollmentAggregate(EnrollmentAggregateDeps{
		Base: BaseDeps{
			DB:     tx,
			Log:    log,
			Runner: NewGormTxRunner(tx),
		},
		Enrollments: repos.NewEnrollmentRepo(tx, log),
		Progress:    repos.NewLessonProgressRepo(tx, log),
		Users:       repos.NewUserRepo(tx, log),
		Courses:     repos.NewCourseRepo(tx, log),
		Paths:       repos.NewLearningPathRepo(tx, log),
		Lessons:     repos.NewLessonRepo(tx, log),
	})
	return agg, newTestFixtures(t, tx)
}

func TestEnrollExactlyOneOfCourseOrPath(t *testing.T) {
	agg, fx := newEnrollmentAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	user := fx.User(tenant.ID, "worker")
	course := fx.Course(tenant.ID, "Food Safety")
	path := fx.Path(tenant.ID, "Onboarding")

	_, err := agg.Enroll(ctx, domainagg.EnrollInput{
		TenantID: tenant.ID,
		UserID:   user.ID,
	})
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("neither set: want validation, got %v", err)
	}

	_, err = agg.Enroll(ctx, domainagg.EnrollInput{
		TenantID: tenant.ID,
		UserID:   user.ID,
		CourseID: &course.ID,
		PathID:   &path.ID,
	})
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("both set: want validation, got %v", err)
	}

	out, err := agg.Enroll(ctx, domainagg.EnrollInput{
		TenantID: tenant.ID,
		UserID:   user.ID,
		CourseID: &course.ID,
	})
	if err != nil {
		t.Fatalf("course only: %v", err)
	}
	if out.EnrollmentID == uuid.Nil {
		t.Fatal("course only: missing enrollment id")
	}
}

func TestEnrollRejectsCrossTenantCourse(t *testing.T) {
	agg, fx := newEnrollmentAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	other := fx.Tenant("rival")
	user := fx.User(tenant.ID, "worker")
	foreignCourse := fx.Course(other.ID, "Rival Course")

	_, err := agg.Enroll(ctx, domainagg.EnrollInput{
		TenantID: tenant.ID,
		UserID:   user.ID,
		CourseID: &foreignCourse.ID,
	})
	if !domainagg.IsCode(err, domainagg.CodeInvariantViolation) {
		t.Fatalf("want invariant_violation, got %v", err)
	}
}

func TestEnrollDuplicateCourseConflicts(t *testing.T) {
	agg, fx := newEnrollmentAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	user := fx.User(tenant.ID, "worker")
	course := fx.Course(tenant.ID, "Food Safety")

	if _, err := agg.Enroll(ctx, domainagg.EnrollInput{
		TenantID: tenant.ID, UserID: user.ID, CourseID: &course.ID,
	}); err != nil {
		t.Fatalf("first enroll: %v", err)
	}
	_, err := agg.Enroll(ctx, domainagg.EnrollInput{
		TenantID: tenant.ID, UserID: user.ID, CourseID: &course.ID,
	})
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("want conflict, got %v", err)
	}
}

func TestRecordLessonProgressPercentBounds(t *testing.T) {
	agg, fx := newEnrollmentAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	user := fx.User(tenant.ID, "worker")
	course := fx.Course(tenant.ID, "Food Safety")
	module := fx.Module(course, "Basics", 1)
	lesson := fx.Lesson(module, "Intro", 1)

	_, err := agg.RecordLessonProgress(ctx, domainagg.RecordLessonProgressInput{
		TenantID: tenant.ID,
		UserID:   user.ID,
		LessonID: lesson.ID,
		Percent:  101,
	})
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("101: want validation, got %v", err)
	}

	out, err := agg.RecordLessonProgress(ctx, domainagg.RecordLessonProgressInput{
		TenantID: tenant.ID,
		UserID:   user.ID,
		LessonID: lesson.ID,
		Percent:  100,
	})
	if err != nil {
		t.Fatalf("100: %v", err)
	}
	if out.CompletedAt == nil {
		t.Fatal("100: want completed_at stamped")
	}
}

func TestRecordLessonProgressUpsertsSingleRow(t *testing.T) {
	agg, fx := newEnrollmentAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	user := fx.User(tenant.ID, "worker")
	course := fx.Course(tenant.ID, "Food Safety")
	module := fx.Module(course, "Basics", 1)
	lesson := fx.Lesson(module, "Intro", 1)

	first, err := agg.RecordLessonProgress(ctx, domainagg.RecordLessonProgressInput{
		TenantID: tenant.ID, UserID: user.ID, LessonID: lesson.ID, Percent: 40,
	})
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := agg.RecordLessonProgress(ctx, domainagg.RecordLessonProgressInput{
		TenantID: tenant.ID, UserID: user.ID, LessonID: lesson.ID, Percent: 80,
	})
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if first.ProgressID != second.ProgressID {
		t.Fatalf("want same progress row, got %s then %s", first.ProgressID, second.ProgressID)
	}
	if second.Percent != 80 {
		t.Fatalf("percent: want=80 got=%d", second.Percent)
	}
}

func TestCompleteEnrollmentIdempotent(t *testing.T) {
	agg, fx := newEnrollmentAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	user := fx.User(tenant.ID, "worker")
	course := fx.Course(tenant.ID, "Food Safety")

	enrolled, err := agg.Enroll(ctx, domainagg.EnrollInput{
		TenantID: tenant.ID, UserID: user.ID, CourseID: &course.ID,
	})
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}

	first, err := agg.CompleteEnrollment(ctx, domainagg.CompleteEnrollmentInput{
		TenantID: tenant.ID, UserID: user.ID, EnrollmentID: enrolled.EnrollmentID,
	})
	if err != nil {
		t.Fatalf("first complete: %v", err)
	}
	if first.AlreadyCompleted {
		t.Fatal("first complete: want fresh stamp")
	}

	second, err := agg.CompleteEnrollment(ctx, domainagg.CompleteEnrollmentInput{
		TenantID: tenant.ID, UserID: user.ID, EnrollmentID: enrolled.EnrollmentID,
	})
	if err != nil {
		t.Fatalf("second complete: %v", err)
	}
	if !second.AlreadyCompleted {
		t.Fatal("second complete: want no-op")
	}
	if !second.CompletedAt.Equal(first.CompletedAt) {
		t.Fatalf("completed_at changed: %v vs %v", first.CompletedAt, second.CompletedAt)
	}
}

func TestCompleteEnrollmentRejectsOtherUsersEnrollment(t *testing.T) {
	agg, fx := newEnrollmentAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	owner := fx.User(tenant.ID, "worker")
	intruder := fx.User(tenant.ID, "coworker")
	course := fx.Course(tenant.ID, "Food Safety")

	enrolled, err := agg.Enroll(ctx, domainagg.EnrollInput{
		TenantID: tenant.ID, UserID: owner.ID, CourseID: &course.ID,
	})
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}

	_, err = agg.CompleteEnrollment(ctx, domainagg.CompleteEnrollmentInput{
		TenantID: tenant.ID, UserID: intruder.ID, EnrollmentID: enrolled.EnrollmentID,
	})
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("foreign complete: want not_found, got %v", err)
	}

	if _, err := agg.CompleteEnrollment(ctx, domainagg.CompleteEnrollmentInput{
		TenantID: tenant.ID, UserID: owner.ID, EnrollmentID: enrolled.EnrollmentID,
	}); err != nil {
		t.Fatalf("owner complete: %v", err)
	}
}
