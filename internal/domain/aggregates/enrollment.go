package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"
)

var EnrollmentAggregateContract = Contract{
	Name:             "Progress.EnrollmentAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns atomic enrollment and per-lesson progress mutations.",
}

// EnrollmentAggregate owns enrollment invariants: exactly one of
// course/path per enrollment, one enrollment per user per content, and
// per-lesson progress rows (one per user per lesson, percent 0..100).
//
// Write method failures should return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeConflict, CodeInvariantViolation, CodeInternal.
type EnrollmentAggregate interface {
	Aggregate

	// Enroll atomically enrolls a user in a course or a path.
	Enroll(ctx context.Context, in EnrollInput) (EnrollResult, error)

	// RecordLessonProgress atomically upserts a user's progress on one
	// lesson. Reaching 100 percent stamps CompletedAt.
	RecordLessonProgress(ctx context.Context, in RecordLessonProgressInput) (RecordLessonProgressResult, error)

	// CompleteEnrollment stamps the enrollment completed. Completing an
	// already completed enrollment is a no-op returning the original stamp.
	CompleteEnrollment(ctx context.Context, in CompleteEnrollmentInput) (CompleteEnrollmentResult, error)
}

type EnrollInput struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	CourseID *uuid.UUID
	PathID   *uuid.UUID
}

type EnrollResult struct {
	EnrollmentID uuid.UUID
	EnrolledAt   time.Time
}

type RecordLessonProgressInput struct {
	TenantID            uuid.UUID
	UserID              uuid.UUID
	LessonID            uuid.UUID
	Percent             int
	LastPositionSeconds int
}

type RecordLessonProgressResult struct {
	ProgressID  uuid.UUID
	Percent     int
	CompletedAt *time.Time
}

type CompleteEnrollmentInput struct {
	TenantID     uuid.UUID
	UserID       uuid.UUID
	EnrollmentID uuid.UUID
}

type CompleteEnrollmentResult struct {
	EnrollmentID     uuid.UUID
	CompletedAt      time.Time
	AlreadyCompleted bool
}
