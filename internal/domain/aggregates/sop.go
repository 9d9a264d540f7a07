package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"
)

var SOPAggregateContract = Contract{
	Name:             "Learning.SOPAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns atomic SOP version creation and publication.",
}

// SOPAggregate owns SOP version numbering and publication state.
//
// Write method failures should return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeConflict, CodeInternal.
type SOPAggregate interface {
	Aggregate

	// AddVersion atomically creates the next version of an SOP. When
	// Version is zero the aggregate picks max(existing)+1.
	AddVersion(ctx context.Context, in AddSOPVersionInput) (AddSOPVersionResult, error)

	// PublishVersion stamps a version's publication time. Publishing an
	// already published version is a no-op returning the original stamp.
	PublishVersion(ctx context.Context, in PublishSOPVersionInput) (PublishSOPVersionResult, error)
}

type AddSOPVersionInput struct {
	TenantID uuid.UUID
	SOPID    uuid.UUID
	Version  int
	Content  string
}

type AddSOPVersionResult struct {
	VersionID uuid.UUID
	Version   int
}

type PublishSOPVersionInput struct {
	TenantID  uuid.UUID
	VersionID uuid.UUID
}

type PublishSOPVersionResult struct {
	VersionID        uuid.UUID
	PublishedAt      time.Time
	AlreadyPublished bool
}
