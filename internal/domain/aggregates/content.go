package aggregates

import (
	"context"

	"github.com/google/uuid"
)

var ContentAggregateContract = Contract{
	Name:             "Learning.ContentAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns atomic course/module/lesson/path structure mutations and their ordering uniqueness.",
}

// ContentAggregate owns the structural invariants of learning content:
// modules match their course's tenant, lessons match their module's
// course tenant, path entries match the path's tenant, and every order
// value is unique within its container.
//
// Write method failures should return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeConflict, CodeInvariantViolation, CodeInternal.
type ContentAggregate interface {
	Aggregate

	// AddModule atomically appends or inserts a module into a course.
	AddModule(ctx context.Context, in AddModuleInput) (AddModuleResult, error)

	// AddLesson atomically inserts a lesson into a module. Content columns
	// must agree with Kind (exactly the matching one set).
	AddLesson(ctx context.Context, in AddLessonInput) (AddLessonResult, error)

	// AddCourseToPath atomically inserts a course into a learning path at
	// a unique position.
	AddCourseToPath(ctx context.Context, in AddCourseToPathInput) (AddCourseToPathResult, error)

	// SetCourseBranches atomically replaces a course's branch visibility
	// list. All branches must belong to the course's tenant.
	SetCourseBranches(ctx context.Context, in SetCourseBranchesInput) error
}

type AddModuleInput struct {
	TenantID uuid.UUID
	CourseID uuid.UUID
	Title    string
	Order    int
}

type AddModuleResult struct {
	ModuleID uuid.UUID
	Order    int
}

type AddLessonInput struct {
	TenantID            uuid.UUID
	ModuleID            uuid.UUID
	Title               string
	Kind                string
	Order               int
	TextContent         string
	VideoURL            string
	FileKey             string
	SOPID               *uuid.UUID
	ChecklistTemplateID *uuid.UUID
	QuizID              *uuid.UUID
}

type AddLessonResult struct {
	LessonID uuid.UUID
	Order    int
}

type AddCourseToPathInput struct {
	TenantID uuid.UUID
	PathID   uuid.UUID
	CourseID uuid.UUID
	Order    int
}

type AddCourseToPathResult struct {
	EntryID uuid.UUID
	Order   int
}

type SetCourseBranchesInput struct {
	TenantID  uuid.UUID
	CourseID  uuid.UUID
	BranchIDs []uuid.UUID
}
