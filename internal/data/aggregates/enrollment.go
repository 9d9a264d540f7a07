package aggregates

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crewlearn/crewlearn-backend/internal/data/repos"
	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
	"github.com/crewlearn/crewlearn-backend/internal/platform/dbctx"
)

type EnrollmentAggregateDeps struct {
	Base BaseDeps

	Enrollments repos.EnrollmentRepo
	Progress    repos.LessonProgressRepo
	Users       repos.UserRepo
	Courses     repos.CourseRepo
	Paths       repos.LearningPathRepo
	Lessons     repos.LessonRepo
}

type enrollmentAggregate struct {
	deps EnrollmentAggregateDeps
}

func NewEnrollmentAggregate(deps EnrollmentAggregateDeps) domainagg.EnrollmentAggregate {
	deps.Base = deps.Base.withDefaults()
	return &enrollmentAggregate{deps: deps}
}

func (a *enrollmentAggregate) Contract() domainagg.Contract {
	return domainagg.EnrollmentAggregateContract
}

func (a *enrollmentAggregate) Enroll(ctx context.Context, in domainagg.EnrollInput) (domainagg.EnrollResult, error) {
	const op = "Progress.Enrollment.Enroll"
	var out domainagg.EnrollResult

	if in.UserID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing user_id", nil)
	}
	if err := RequireExactlyOne("Enrollment", map[string]*uuid.UUID{
		"course": in.CourseID,
		"path":   in.PathID,
	}, "course", "path"); err != nil {
		return out, MapError(op, err)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		user, err := a.deps.Users.GetByID(dbc.Ctx, dbc.Tx, in.UserID)
		if err != nil {
			return err
		}
		if user.TenantID != nil {
			if gerr := RequireSameTenant("Enrollment", in.TenantID, "user", *user.TenantID); gerr != nil {
				return gerr
			}
		}
		if in.CourseID != nil {
			course, err := a.deps.Courses.GetByID(dbc.Ctx, dbc.Tx, *in.CourseID)
			if err != nil {
				return err
			}
			if gerr := RequireSameTenant("Enrollment", in.TenantID, "course", course.TenantID); gerr != nil {
				return gerr
			}
		}
		if in.PathID != nil {
			path, err := a.deps.Paths.GetByID(dbc.Ctx, dbc.Tx, *in.PathID)
			if err != nil {
				return err
			}
			if gerr := RequireSameTenant("Enrollment", in.TenantID, "path", path.TenantID); gerr != nil {
				return gerr
			}
		}
		now := time.Now().UTC()
		created, err := a.deps.Enrollments.Create(dbc.Ctx, dbc.Tx, &types.Enrollment{
			TenantID:   in.TenantID,
			UserID:     in.UserID,
			CourseID:   in.CourseID,
			PathID:     in.PathID,
			EnrolledAt: now,
		})
		if err != nil {
			return err
		}
		out.EnrollmentID = created.ID
		out.EnrolledAt = created.EnrolledAt
		return nil
	})
	return out, err
}

func (a *enrollmentAggregate) RecordLessonProgress(ctx context.Context, in domainagg.RecordLessonProgressInput) (domainagg.RecordLessonProgressResult, error) {
	const op = "Progress.Enrollment.RecordLessonProgress"
	var out domainagg.RecordLessonProgressResult

	if in.UserID == uuid.Nil || in.LessonID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing user_id or lesson_id", nil)
	}
	if err := RequirePercent("percent", in.Percent); err != nil {
		return out, MapError(op, err)
	}
	if in.LastPositionSeconds < 0 {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "last_position_seconds must be >= 0", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		user, err := a.deps.Users.GetByID(dbc.Ctx, dbc.Tx, in.UserID)
		if err != nil {
			return err
		}
		if user.TenantID == nil {
			return InvariantError("LessonProgress tenant must match user tenant.")
		}
		if gerr := RequireSameTenant("LessonProgress", in.TenantID, "user", *user.TenantID); gerr != nil {
			return gerr
		}
		lesson, err := a.deps.Lessons.GetByID(dbc.Ctx, dbc.Tx, in.LessonID)
		if err != nil {
			return err
		}
		if gerr := RequireSameTenant("LessonProgress", in.TenantID, "lesson", lesson.TenantID); gerr != nil {
			return gerr
		}

		now := time.Now().UTC()
		var completedAt *time.Time
		if in.Percent >= 100 {
			completedAt = &now
		}

		existing, err := a.deps.Progress.GetByUserAndLesson(dbc.Ctx, dbc.Tx, in.UserID, in.LessonID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if existing != nil {
			updates := map[string]any{
				"percent":               in.Percent,
				"last_position_seconds": in.LastPositionSeconds,
				"last_activity_at":      now,
			}
			// Completion never regresses once stamped.
			if completedAt != nil && existing.CompletedAt == nil {
				updates["completed_at"] = now
			}
			if err := a.deps.Progress.UpdateFields(dbc.Ctx, dbc.Tx, existing.ID, updates); err != nil {
				return err
			}
			out.ProgressID = existing.ID
			out.Percent = in.Percent
			if existing.CompletedAt != nil {
				out.CompletedAt = existing.CompletedAt
			} else {
				out.CompletedAt = completedAt
			}
			return nil
		}
		record := &types.LessonProgress{
			TenantID:            in.TenantID,
			UserID:              in.UserID,
			LessonID:            in.LessonID,
			StartedAt:           &now,
			LastActivityAt:      now,
			CompletedAt:         completedAt,
			Percent:             in.Percent,
			LastPositionSeconds: in.LastPositionSeconds,
		}
		created, err := a.deps.Progress.Create(dbc.Ctx, dbc.Tx, record)
		if err != nil {
			return err
		}
		out.ProgressID = created.ID
		out.Percent = created.Percent
		out.CompletedAt = created.CompletedAt
		return nil
	})
	return out, err
}

func (a *enrollmentAggregate) CompleteEnrollment(ctx context.Context, in domainagg.CompleteEnrollmentInput) (domainagg.CompleteEnrollmentResult, error) {
	const op = "Progress.Enrollment.CompleteEnrollment"
	var out domainagg.CompleteEnrollmentResult

	if in.EnrollmentID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing enrollment_id", nil)
	}
	if in.UserID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing user_id", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		enrollment, err := a.deps.Enrollments.GetByID(dbc.Ctx, dbc.Tx, in.EnrollmentID)
		if err != nil {
			return err
		}
		if gerr := RequireSameTenant("Enrollment", in.TenantID, "enrollment", enrollment.TenantID); gerr != nil {
			return gerr
		}
		// Completion is the learner's own act; another user's id does not resolve.
		if enrollment.UserID != in.UserID {
			return domainagg.NewError(domainagg.CodeNotFound, op, "enrollment not found", nil)
		}
		if enrollment.CompletedAt != nil {
			out.EnrollmentID = enrollment.ID
			out.CompletedAt = *enrollment.CompletedAt
			out.AlreadyCompleted = true
			return nil
		}
		now := time.Now().UTC()
		if err := a.deps.Enrollments.UpdateFields(dbc.Ctx, dbc.Tx, enrollment.ID, map[string]any{
			"completed_at": now,
		}); err != nil {
			return err
		}
		out.EnrollmentID = enrollment.ID
		out.CompletedAt = now
		return nil
	})
	return out, err
}
