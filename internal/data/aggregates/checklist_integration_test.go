package aggregates

import (
	"context"
	"strings"
	"testing"

	"github.com/crewlearn/crewlearn-backend/internal/data/repos"
	repotest "github.com/crewlearn/crewlearn-backend/internal/data/repos/testutil"
	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
)

func newChecklistAggregateForTest(t *testing.T) (domainagg.ChecklistAggregate, *testFixtures) {
	t.Helper()
	db := repotest.DB(t)
	tx := repotest.Tx(t, db)
	log := repotest.Logger(t)

	agg := NewChecklistAggregate(ChecklistAggregateDeps{
		Base: BaseDeps{
			DB:     tx,
			Log:    log,
			Runner: NewGormTxRunner(tx),
		},
		Templates: repos.NewChecklistTemplateRepo(tx, log),
		Items:     repos.NewChecklistItemRepo(tx, log),
		Runs:      repos.NewChecklistRunRepo(tx, log),
		Results:   repos.NewChecklistItemResultRepo(tx, log),
		Users:     repos.NewUserRepo(tx, log),
		Branches:  repos.NewBranchRepo(tx, log),
	})
	return agg, newTestFixtures(t, tx)
}

func TestStartRunStampsPerformedAt(t *testing.T) {
	agg, fx := newChecklistAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	tmpl := fx.ChecklistTemplate(tenant.ID, "Opening Checklist")
	worker := fx.User(tenant.ID, "worker")

	out, err := agg.StartRun(ctx, domainagg.StartChecklistRunInput{
		TenantID: tenant.ID, TemplateID: tmpl.ID, PerformedByID: worker.ID,
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if out.PerformedAt.IsZero() {
		t.Fatalf("performed_at not stamped")
	}
}

func TestStartRunRejectsForeignBranch(t *testing.T) {
	agg, fx := newChecklistAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	other := fx.Tenant("rival")
	tmpl := fx.ChecklistTemplate(tenant.ID, "Opening Checklist")
	worker := fx.User(tenant.ID, "worker")
	foreign := fx.Branch(other.ID, "Rival HQ")

	_, err := agg.StartRun(ctx, domainagg.StartChecklistRunInput{
		TenantID: tenant.ID, TemplateID: tmpl.ID,
		PerformedByID: worker.ID, BranchID: &foreign.ID,
	})
	if !domainagg.IsCode(err, domainagg.CodeInvariantViolation) {
		t.Fatalf("want invariant_violation, got %v", err)
	}
}

func TestRecordItemResultRejectsForeignItem(t *testing.T) {
	agg, fx := newChecklistAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	tmpl := fx.ChecklistTemplate(tenant.ID, "Opening Checklist")
	otherTmpl := fx.ChecklistTemplate(tenant.ID, "Closing Checklist")
	foreignItem := fx.ChecklistItem(otherTmpl, "Lock up", 1)
	worker := fx.User(tenant.ID, "worker")

	run, err := agg.StartRun(ctx, domainagg.StartChecklistRunInput{
		TenantID: tenant.ID, TemplateID: tmpl.ID, PerformedByID: worker.ID,
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	_, err = agg.RecordItemResult(ctx, domainagg.RecordItemResultInput{
		TenantID: tenant.ID, RunID: run.RunID, ItemID: foreignItem.ID, IsDone: true,
	})
	if !domainagg.IsCode(err, domainagg.CodeInvariantViolation) {
		t.Fatalf("want invariant_violation, got %v", err)
	}
	if !strings.Contains(err.Error(), "must belong to the same template as the run") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestRecordItemResultUpsertsByRunAndItem(t *testing.T) {
	agg, fx := newChecklistAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	tmpl := fx.ChecklistTemplate(tenant.ID, "Opening Checklist")
	item := fx.ChecklistItem(tmpl, "Check fridge temps", 1)
	worker := fx.User(tenant.ID, "worker")

	run, err := agg.StartRun(ctx, domainagg.StartChecklistRunInput{
		TenantID: tenant.ID, TemplateID: tmpl.ID, PerformedByID: worker.ID,
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	first, err := agg.RecordItemResult(ctx, domainagg.RecordItemResultInput{
		TenantID: tenant.ID, RunID: run.RunID, ItemID: item.ID, IsDone: false,
	})
	if err != nil {
		t.Fatalf("first record: %v", err)
	}
	if first.Updated {
		t.Fatalf("first record reported an update")
	}

	second, err := agg.RecordItemResult(ctx, domainagg.RecordItemResultInput{
		TenantID: tenant.ID, RunID: run.RunID, ItemID: item.ID,
		IsDone: true, Comment: "fixed after restock",
	})
	if err != nil {
		t.Fatalf("second record: %v", err)
	}
	if !second.Updated {
		t.Fatalf("second record should update in place")
	}
	if second.ResultID != first.ResultID {
		t.Fatalf("result row changed: first=%s second=%s", first.ResultID, second.ResultID)
	}
}

func TestApproveRunIdempotent(t *testing.T) {
	agg, fx := newChecklistAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	tmpl := fx.ChecklistTemplate(tenant.ID, "Opening Checklist")
	worker := fx.User(tenant.ID, "worker")
	manager := fx.User(tenant.ID, "manager")

	run, err := agg.StartRun(ctx, domainagg.StartChecklistRunInput{
		TenantID: tenant.ID, TemplateID: tmpl.ID, PerformedByID: worker.ID,
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	first, err := agg.ApproveRun(ctx, domainagg.ApproveChecklistRunInput{
		TenantID: tenant.ID, RunID: run.RunID, ApprovedByID: manager.ID,
	})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if first.AlreadyApproved {
		t.Fatalf("first approval reported already approved")
	}

	again, err := agg.ApproveRun(ctx, domainagg.ApproveChecklistRunInput{
		TenantID: tenant.ID, RunID: run.RunID, ApprovedByID: manager.ID,
	})
	if err != nil {
		t.Fatalf("re-approve: %v", err)
	}
	if !again.AlreadyApproved {
		t.Fatalf("re-approval should report already approved")
	}
	if !again.ApprovedAt.Equal(first.ApprovedAt) {
		t.Fatalf("approval stamp moved: first=%v again=%v", first.ApprovedAt, again.ApprovedAt)
	}
}
