package aggregates

import (
	"context"
	"testing"

	"github.com/crewlearn/crewlearn-backend/internal/data/repos"
	repotest "github.com/crewlearn/crewlearn-backend/internal/data/repos/testutil"
	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
)

func newSOPAggregateForTest(t *testing.T) (domainagg.SOPAggregate, *testFixtures) {
	t.Helper()
	db := repotest.DB(t)
	tx := repotest.Tx(t, db)
	log := repotest.Logger(t)

	agg := NewSOPAggregate(SOPAggregateDeps{
		Base: BaseDeps{
			DB:     tx,
			Log:    log,
			Runner: NewGormTxRunner(tx),
		},
		SOPs:     repos.NewSOPRepo(tx, log),
		Versions: repos.NewSOPVersionRepo(tx, log),
	})
	return agg, newTestFixtures(t, tx)
}

func TestAddVersionNumbersSequentially(t *testing.T) {
	agg, fx := newSOPAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	sop := fx.SOP(tenant.ID, "Closing Procedure")

	first, err := agg.AddVersion(ctx, domainagg.AddSOPVersionInput{
		TenantID: tenant.ID, SOPID: sop.ID, Content: "Lock the doors.",
	})
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if first.Version != 1 {
		t.Fatalf("first version: want=1 got=%d", first.Version)
	}

	second, err := agg.AddVersion(ctx, domainagg.AddSOPVersionInput{
		TenantID: tenant.ID, SOPID: sop.ID, Content: "Lock the doors. Set the alarm.",
	})
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if second.Version != 2 {
		t.Fatalf("second version: want=2 got=%d", second.Version)
	}
}

func TestAddVersionDuplicateNumberConflicts(t *testing.T) {
	agg, fx := newSOPAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	sop := fx.SOP(tenant.ID, "Closing Procedure")

	if _, err := agg.AddVersion(ctx, domainagg.AddSOPVersionInput{
		TenantID: tenant.ID, SOPID: sop.ID, Version: 3, Content: "v3",
	}); err != nil {
		t.Fatalf("first: %v", err)
	}
	_, err := agg.AddVersion(ctx, domainagg.AddSOPVersionInput{
		TenantID: tenant.ID, SOPID: sop.ID, Version: 3, Content: "v3 again",
	})
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("want conflict, got %v", err)
	}
}

func TestPublishVersionIdempotent(t *testing.T) {
	agg, fx := newSOPAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	sop := fx.SOP(tenant.ID, "Closing Procedure")

	added, err := agg.AddVersion(ctx, domainagg.AddSOPVersionInput{
		TenantID: tenant.ID, SOPID: sop.ID, Content: "Lock the doors.",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	first, err := agg.PublishVersion(ctx, domainagg.PublishSOPVersionInput{
		TenantID: tenant.ID, VersionID: added.VersionID,
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if first.AlreadyPublished {
		t.Fatalf("first publish reported already published")
	}

	again, err := agg.PublishVersion(ctx, domainagg.PublishSOPVersionInput{
		TenantID: tenant.ID, VersionID: added.VersionID,
	})
	if err != nil {
		t.Fatalf("republish: %v", err)
	}
	if !again.AlreadyPublished {
		t.Fatalf("republish should report already published")
	}
	if again.PublishedAt.Before(first.PublishedAt) {
		t.Fatalf("republish stamp went backwards: first=%v again=%v", first.PublishedAt, again.PublishedAt)
	}
}

func TestPublishVersionCrossTenant(t *testing.T) {
	agg, fx := newSOPAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	other := fx.Tenant("rival")
	sop := fx.SOP(other.ID, "Rival Procedure")

	added, err := agg.AddVersion(ctx, domainagg.AddSOPVersionInput{
		TenantID: other.ID, SOPID: sop.ID, Content: "secret",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	_, err = agg.PublishVersion(ctx, domainagg.PublishSOPVersionInput{
		TenantID: tenant.ID, VersionID: added.VersionID,
	})
	if !domainagg.IsCode(err, domainagg.CodeInvariantViolation) {
		t.Fatalf("want invariant_violation, got %v", err)
	}
}
