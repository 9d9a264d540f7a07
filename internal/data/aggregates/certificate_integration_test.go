package aggregates

import (
	"context"
	"strings"
	"testing"

	"github.com/crewlearn/crewlearn-backend/internal/data/repos"
	repotest "github.com/crewlearn/crewlearn-backend/internal/data/repos/testutil"
	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
)

func newCertificateAggregateForTest(t *testing.T) (domainagg.CertificateAggregate, *testFixtures) {
	t.Helper()
	db := repotest.DB(t)
	tx := repotest.Tx(t, db)
	log := repotest.Logger(t)

	agg := NewCertificateAggregate(CertificateAggregateDeps{
		Base: BaseDeps{
			DB:     tx,
			Log:    log,
			Runner: NewGormTxRunner(tx),
		},
		Certificates: repos.NewCertificateRepo(tx, log),
		Users:        repos.NewUserRepo(tx, log),
		Courses:      repos.NewCourseRepo(tx, log),
		Paths:        repos.NewLearningPathRepo(tx, log),
	})
	return agg, newTestFixtures(t, tx)
}

func TestIssueCertificateExactlyOneOfCourseOrPath(t *testing.T) {
	agg, fx := newCertificateAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	user := fx.User(tenant.ID, "worker")
	course := fx.Course(tenant.ID, "Food Safety")
	path := fx.Path(tenant.ID, "Onboarding")

	_, err := agg.IssueCertificate(ctx, domainagg.IssueCertificateInput{
		TenantID: tenant.ID, UserID: user.ID,
	})
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("neither: want validation, got %v", err)
	}
	if !strings.Contains(err.Error(), "Certificate must have exactly one of course or path.") {
		t.Fatalf("unexpected message: %v", err)
	}

	_, err = agg.IssueCertificate(ctx, domainagg.IssueCertificateInput{
		TenantID: tenant.ID, UserID: user.ID,
		CourseID: &course.ID, PathID: &path.ID,
	})
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("both: want validation, got %v", err)
	}
}

func TestIssueCertificateGeneratesCode(t *testing.T) {
	agg, fx := newCertificateAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	user := fx.User(tenant.ID, "worker")
	course := fx.Course(tenant.ID, "Food Safety")

	out, err := agg.IssueCertificate(ctx, domainagg.IssueCertificateInput{
		TenantID: tenant.ID, UserID: user.ID, CourseID: &course.ID,
	})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if len(out.Code) != 16 {
		t.Fatalf("code length: want=16 got=%d (%q)", len(out.Code), out.Code)
	}
	for _, c := range out.Code {
		if !strings.ContainsRune(certCodeAlphabet, c) {
			t.Fatalf("code %q contains %q outside the alphabet", out.Code, c)
		}
	}
	if out.IssuedAt.IsZero() {
		t.Fatalf("issued_at not stamped")
	}
}

func TestIssueCertificateDuplicateCodeConflicts(t *testing.T) {
	agg, fx := newCertificateAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	user := fx.User(tenant.ID, "worker")
	course := fx.Course(tenant.ID, "Food Safety")
	path := fx.Path(tenant.ID, "Onboarding")

	if _, err := agg.IssueCertificate(ctx, domainagg.IssueCertificateInput{
		TenantID: tenant.ID, UserID: user.ID, CourseID: &course.ID,
		Code: "FIXEDCODE1234567",
	}); err != nil {
		t.Fatalf("first: %v", err)
	}
	_, err := agg.IssueCertificate(ctx, domainagg.IssueCertificateInput{
		TenantID: tenant.ID, UserID: user.ID, PathID: &path.ID,
		Code: "FIXEDCODE1234567",
	})
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("want conflict, got %v", err)
	}
}

func TestIssueCertificateCrossTenantCourse(t *testing.T) {
	agg, fx := newCertificateAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	other := fx.Tenant("rival")
	user := fx.User(tenant.ID, "worker")
	course := fx.Course(other.ID, "Rival Course")

	_, err := agg.IssueCertificate(ctx, domainagg.IssueCertificateInput{
		TenantID: tenant.ID, UserID: user.ID, CourseID: &course.ID,
	})
	if !domainagg.IsCode(err, domainagg.CodeInvariantViolation) {
		t.Fatalf("want invariant_violation, got %v", err)
	}
}
