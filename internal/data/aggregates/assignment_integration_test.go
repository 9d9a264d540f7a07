package aggregates

import (
	"context"
	"testing"

	"github.com/crewlearn/crewlearn-backend/internal/data/repos"
	repotest "github.com/crewlearn/crewlearn-backend/internal/data/repos/testutil"
	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
)

func newAssignmentAggregateForTest(t *testing.T) (domainagg.AssignmentAggregate, *testFixtures) {
	t.Helper()
	db := repotest.DB(t)
	tx := repotest.Tx(t, db)
	log := repotest.Logger(t)

	agg := NewAssignmentAggregate(AssignmentAggregateDeps{
		Base: BaseDeps{
			DB:     tx,
			Log:    log,
			Runner: NewGormTxRunner(tx),
		},
		Assignments: repos.NewAssignmentRepo(tx, log),
		Courses:     repos.NewCourseRepo(tx, log),
		Paths:       repos.NewLearningPathRepo(tx, log),
		Users:       repos.NewUserRepo(tx, log),
		Branches:    repos.NewBranchRepo(tx, log),
		Roles:       repos.NewRoleRepo(tx, log),
	})
	return agg, newTestFixtures(t, tx)
}

func TestCreateAssignmentKindContentAgreement(t *testing.T) {
	agg, fx := newAssignmentAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	user := fx.User(tenant.ID, "worker")
	course := fx.Course(tenant.ID, "Food Safety")
	path := fx.Path(tenant.ID, "Onboarding")

	cases := []struct {
		name string
		in   domainagg.CreateAssignmentInput
	}{
		{
			name: "course kind without course",
			in: domainagg.CreateAssignmentInput{
				TenantID: tenant.ID, Kind: "course",
				PathID: &path.ID, TargetUserID: &user.ID,
			},
		},
		{
			name: "path kind with course set",
			in: domainagg.CreateAssignmentInput{
				TenantID: tenant.ID, Kind: "path",
				PathID: &path.ID, CourseID: &course.ID, TargetUserID: &user.ID,
			},
		},
		{
			name: "unknown kind",
			in: domainagg.CreateAssignmentInput{
				TenantID: tenant.ID, Kind: "bundle",
				CourseID: &course.ID, TargetUserID: &user.ID,
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := agg.CreateAssignment(ctx, tc.in)
			if !domainagg.IsCode(err, domainagg.CodeValidation) {
				t.Fatalf("want validation, got %v", err)
			}
		})
	}
}

func TestCreateAssignmentSingleTarget(t *testing.T) {
	agg, fx := newAssignmentAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	user := fx.User(tenant.ID, "worker")
	branch := fx.Branch(tenant.ID, "Downtown")
	course := fx.Course(tenant.ID, "Food Safety")

	_, err := agg.CreateAssignment(ctx, domainagg.CreateAssignmentInput{
		TenantID: tenant.ID, Kind: "course", CourseID: &course.ID,
		TargetUserID: &user.ID, TargetBranchID: &branch.ID,
	})
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("two targets: want validation, got %v", err)
	}

	_, err = agg.CreateAssignment(ctx, domainagg.CreateAssignmentInput{
		TenantID: tenant.ID, Kind: "course", CourseID: &course.ID,
	})
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("no target: want validation, got %v", err)
	}

	out, err := agg.CreateAssignment(ctx, domainagg.CreateAssignmentInput{
		TenantID: tenant.ID, Kind: "course", CourseID: &course.ID,
		TargetBranchID: &branch.ID,
	})
	if err != nil {
		t.Fatalf("branch target: %v", err)
	}
	if out.AssignmentID.String() == "" {
		t.Fatalf("missing assignment id")
	}
}

func TestCreateAssignmentCrossTenantTarget(t *testing.T) {
	agg, fx := newAssignmentAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	other := fx.Tenant("rival")
	course := fx.Course(tenant.ID, "Food Safety")
	outsider := fx.User(other.ID, "outsider")

	_, err := agg.CreateAssignment(ctx, domainagg.CreateAssignmentInput{
		TenantID: tenant.ID, Kind: "course", CourseID: &course.ID,
		TargetUserID: &outsider.ID,
	})
	if !domainagg.IsCode(err, domainagg.CodeInvariantViolation) {
		t.Fatalf("want invariant_violation, got %v", err)
	}
}

func TestDeactivateAssignmentIdempotent(t *testing.T) {
	agg, fx := newAssignmentAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	user := fx.User(tenant.ID, "worker")
	course := fx.Course(tenant.ID, "Food Safety")

	created, err := agg.CreateAssignment(ctx, domainagg.CreateAssignmentInput{
		TenantID: tenant.ID, Kind: "course", CourseID: &course.ID,
		TargetUserID: &user.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := agg.DeactivateAssignment(ctx, domainagg.DeactivateAssignmentInput{
		TenantID: tenant.ID, AssignmentID: created.AssignmentID,
	})
	if err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if first.AlreadyInactive {
		t.Fatalf("first deactivation reported already inactive")
	}

	again, err := agg.DeactivateAssignment(ctx, domainagg.DeactivateAssignmentInput{
		TenantID: tenant.ID, AssignmentID: created.AssignmentID,
	})
	if err != nil {
		t.Fatalf("re-deactivate: %v", err)
	}
	if !again.AlreadyInactive {
		t.Fatalf("re-deactivation should report already inactive")
	}
}
