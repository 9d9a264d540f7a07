package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"
)

var CertificateAggregateContract = Contract{
	Name:             "Progress.CertificateAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns atomic certificate issuance with verification code generation.",
}

// CertificateAggregate owns certificate invariants: exactly one of
// course/path, tenant agreement across user and content, and a
// generated verification code when none is supplied.
//
// Write method failures should return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeInvariantViolation, CodeInternal.
type CertificateAggregate interface {
	Aggregate

	// IssueCertificate atomically issues a completion certificate.
	IssueCertificate(ctx context.Context, in IssueCertificateInput) (IssueCertificateResult, error)
}

type IssueCertificateInput struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	CourseID *uuid.UUID
	PathID   *uuid.UUID
	Code     string
}

type IssueCertificateResult struct {
	CertificateID uuid.UUID
	Code          string
	IssuedAt      time.Time
}
