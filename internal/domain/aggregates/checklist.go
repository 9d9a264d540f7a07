package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"
)

var ChecklistAggregateContract = Contract{
	Name:             "Progress.ChecklistAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns atomic checklist run lifecycle: start, item results, approval.",
}

// ChecklistAggregate owns checklist run invariants: the run, its
// performer, branch, and approver share one tenant, and every recorded
// item belongs to the run's template.
//
// Write method failures should return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeConflict, CodeInvariantViolation, CodeInternal.
type ChecklistAggregate interface {
	Aggregate

	// AddItem atomically appends an item to a template; (template, order)
	// is unique and Order 0 means append after the current last item.
	AddItem(ctx context.Context, in AddChecklistItemInput) (AddChecklistItemResult, error)

	// StartRun atomically opens a run of a template.
	StartRun(ctx context.Context, in StartChecklistRunInput) (StartChecklistRunResult, error)

	// RecordItemResult atomically upserts one item's result within a run.
	// Items from a different template fail with CodeInvariantViolation.
	RecordItemResult(ctx context.Context, in RecordItemResultInput) (RecordItemResultResult, error)

	// ApproveRun stamps a run approved by a same-tenant user. Approving
	// an already approved run is a no-op returning the original stamp.
	ApproveRun(ctx context.Context, in ApproveChecklistRunInput) (ApproveChecklistRunResult, error)
}

type AddChecklistItemInput struct {
	TenantID   uuid.UUID
	TemplateID uuid.UUID
	Text       string
	Order      int
	IsRequired bool
}

type AddChecklistItemResult struct {
	ItemID uuid.UUID
	Order  int
}

type StartChecklistRunInput struct {
	TenantID      uuid.UUID
	TemplateID    uuid.UUID
	BranchID      *uuid.UUID
	PerformedByID uuid.UUID
	Notes         string
}

type StartChecklistRunResult struct {
	RunID       uuid.UUID
	PerformedAt time.Time
}

type RecordItemResultInput struct {
	TenantID uuid.UUID
	RunID    uuid.UUID
	ItemID   uuid.UUID
	IsDone   bool
	Comment  string
}

type RecordItemResultResult struct {
	ResultID uuid.UUID
	Updated  bool
}

type ApproveChecklistRunInput struct {
	TenantID     uuid.UUID
	RunID        uuid.UUID
	ApprovedByID uuid.UUID
}

type ApproveChecklistRunResult struct {
	RunID           uuid.UUID
	ApprovedAt      time.Time
	AlreadyApproved bool
}
