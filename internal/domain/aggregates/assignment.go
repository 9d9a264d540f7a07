package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"
)

var AssignmentAggregateContract = Contract{
	Name:             "Progress.AssignmentAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns atomic assignment creation with kind/content and single-target rules.",
}

// AssignmentAggregate owns assignment invariants: the content column
// agrees with Kind, exactly one target (user, branch, role) is set, and
// content plus target share the assignment's tenant.
//
// Write method failures should return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeInvariantViolation, CodeInternal.
type AssignmentAggregate interface {
	Aggregate

	// CreateAssignment atomically creates an assignment.
	CreateAssignment(ctx context.Context, in CreateAssignmentInput) (CreateAssignmentResult, error)

	// DeactivateAssignment marks an assignment inactive. Deactivating an
	// inactive assignment is a no-op.
	DeactivateAssignment(ctx context.Context, in DeactivateAssignmentInput) (DeactivateAssignmentResult, error)
}

type CreateAssignmentInput struct {
	TenantID       uuid.UUID
	Kind           string
	CourseID       *uuid.UUID
	PathID         *uuid.UUID
	TargetUserID   *uuid.UUID
	TargetBranchID *uuid.UUID
	TargetRoleID   *uuid.UUID
	DueAt          *time.Time
	CreatedByID    *uuid.UUID
}

type CreateAssignmentResult struct {
	AssignmentID uuid.UUID
}

type DeactivateAssignmentInput struct {
	TenantID     uuid.UUID
	AssignmentID uuid.UUID
}

type DeactivateAssignmentResult struct {
	AssignmentID    uuid.UUID
	AlreadyInactive bool
}
