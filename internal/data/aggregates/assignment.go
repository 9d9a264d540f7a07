package aggregates

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/crewlearn/crewlearn-backend/internal/data/repos"
	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
	"github.com/crewlearn/crewlearn-backend/internal/platform/dbctx"
)

type AssignmentAggregateDeps struct {
	Base BaseDeps

	Assignments repos.AssignmentRepo
	Courses     repos.CourseRepo
	Paths       repos.LearningPathRepo
	Users       repos.UserRepo
	Branches    repos.BranchRepo
	Roles       repos.RoleRepo
}

type assignmentAggregate struct {
	deps AssignmentAggregateDeps
}

func NewAssignmentAggregate(deps AssignmentAggregateDeps) domainagg.AssignmentAggregate {
	deps.Base = deps.Base.withDefaults()
	return &assignmentAggregate{deps: deps}
}

func (a *assignmentAggregate) Contract() domainagg.Contract {
	return domainagg.AssignmentAggregateContract
}

func (a *assignmentAggregate) CreateAssignment(ctx context.Context, in domainagg.CreateAssignmentInput) (domainagg.CreateAssignmentResult, error) {
	const op = "Progress.Assignment.CreateAssignment"
	var out domainagg.CreateAssignmentResult

	kind := types.AssignmentKind(strings.TrimSpace(in.Kind))
	hasRef := func(id *uuid.UUID) bool { return id != nil && *id != uuid.Nil }
	switch kind {
	case types.AssignmentKindCourse:
		if !hasRef(in.CourseID) || hasRef(in.PathID) {
			return out, domainagg.NewError(domainagg.CodeValidation, op,
				"Course assignment must have course set and path empty.", nil)
		}
	case types.AssignmentKindPath:
		if !hasRef(in.PathID) || hasRef(in.CourseID) {
			return out, domainagg.NewError(domainagg.CodeValidation, op,
				"Path assignment must have path set and course empty.", nil)
		}
	default:
		return out, domainagg.NewError(domainagg.CodeValidation, op, "unknown assignment kind", nil)
	}

	targets := 0
	for _, id := range []*uuid.UUID{in.TargetUserID, in.TargetBranchID, in.TargetRoleID} {
		if hasRef(id) {
			targets++
		}
	}
	if targets != 1 {
		return out, domainagg.NewError(domainagg.CodeValidation, op,
			"Assignment must target exactly one of user, branch, or role.", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if hasRef(in.CourseID) {
			course, err := a.deps.Courses.GetByID(dbc.Ctx, dbc.Tx, *in.CourseID)
			if err != nil {
				return err
			}
			if gerr := RequireSameTenant("Assignment", in.TenantID, "course", course.TenantID); gerr != nil {
				return gerr
			}
		}
		if hasRef(in.PathID) {
			path, err := a.deps.Paths.GetByID(dbc.Ctx, dbc.Tx, *in.PathID)
			if err != nil {
				return err
			}
			if gerr := RequireSameTenant("Assignment", in.TenantID, "path", path.TenantID); gerr != nil {
				return gerr
			}
		}
		if hasRef(in.TargetUserID) {
			user, err := a.deps.Users.GetByID(dbc.Ctx, dbc.Tx, *in.TargetUserID)
			if err != nil {
				return err
			}
			if user.TenantID == nil {
				return InvariantError("Assignment tenant must match user tenant.")
			}
			if gerr := RequireSameTenant("Assignment", in.TenantID, "user", *user.TenantID); gerr != nil {
				return gerr
			}
		}
		if hasRef(in.TargetBranchID) {
			branch, err := a.deps.Branches.GetByID(dbc.Ctx, dbc.Tx, *in.TargetBranchID)
			if err != nil {
				return err
			}
			if gerr := RequireSameTenant("Assignment", in.TenantID, "branch", branch.TenantID); gerr != nil {
				return gerr
			}
		}
		if hasRef(in.TargetRoleID) {
			role, err := a.deps.Roles.GetByID(dbc.Ctx, dbc.Tx, *in.TargetRoleID)
			if err != nil {
				return err
			}
			if gerr := RequireSameTenant("Assignment", in.TenantID, "role", role.TenantID); gerr != nil {
				return gerr
			}
		}
		created, err := a.deps.Assignments.Create(dbc.Ctx, dbc.Tx, &types.Assignment{
			TenantID:       in.TenantID,
			Kind:           kind,
			CourseID:       in.CourseID,
			PathID:         in.PathID,
			TargetUserID:   in.TargetUserID,
			TargetBranchID: in.TargetBranchID,
			TargetRoleID:   in.TargetRoleID,
			DueAt:          in.DueAt,
			CreatedByID:    in.CreatedByID,
			IsActive:       true,
		})
		if err != nil {
			return err
		}
		out.AssignmentID = created.ID
		return nil
	})
	return out, err
}

func (a *assignmentAggregate) DeactivateAssignment(ctx context.Context, in domainagg.DeactivateAssignmentInput) (domainagg.DeactivateAssignmentResult, error) {
	const op = "Progress.Assignment.DeactivateAssignment"
	var out domainagg.DeactivateAssignmentResult

	if in.AssignmentID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing assignment_id", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		assignment, err := a.deps.Assignments.GetByID(dbc.Ctx, dbc.Tx, in.AssignmentID)
		if err != nil {
			return err
		}
		if gerr := RequireSameTenant("Assignment", in.TenantID, "assignment", assignment.TenantID); gerr != nil {
			return gerr
		}
		out.AssignmentID = assignment.ID
		if !assignment.IsActive {
			out.AlreadyInactive = true
			return nil
		}
		return a.deps.Assignments.UpdateFields(dbc.Ctx, dbc.Tx, assignment.ID, map[string]any{
			"is_active": false,
		})
	})
	return out, err
}
