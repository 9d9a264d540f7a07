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

type ContentAggregateDeps struct {
	Base BaseDeps

	Courses     repos.CourseRepo
	Modules     repos.CourseModuleRepo
	Lessons     repos.LessonRepo
	Paths       repos.LearningPathRepo
	PathCourses repos.LearningPathCourseRepo
	Branches    repos.BranchRepo
	SOPs        repos.SOPRepo
	Checklists  repos.ChecklistTemplateRepo
	Quizzes     repos.QuizRepo
}

type contentAggregate struct {
	deps ContentAggregateDeps
}

func NewContentAggregate(deps ContentAggregateDeps) domainagg.ContentAggregate {
	deps.Base = deps.Base.withDefaults()
	return &contentAggregate{deps: deps}
}

func (a *contentAggregate) Contract() domainagg.Contract {
	return domainagg.ContentAggregateContract
}

func (a *contentAggregate) AddModule(ctx context.Context, in domainagg.AddModuleInput) (domainagg.AddModuleResult, error) {
	const op = "Learning.Content.AddModule"
	var out domainagg.AddModuleResult

	if in.CourseID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing course_id", nil)
	}
	if strings.TrimSpace(in.Title) == "" {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing title", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		course, err := a.deps.Courses.GetByID(dbc.Ctx, dbc.Tx, in.CourseID)
		if err != nil {
			return err
		}
		if gerr := RequireSameTenant("Module", in.TenantID, "course", course.TenantID); gerr != nil {
			return gerr
		}
		order := in.Order
		if order == 0 {
			max, err := a.deps.Modules.MaxOrderByCourseID(dbc.Ctx, dbc.Tx, in.CourseID)
			if err != nil {
				return err
			}
			order = max + 1
		}
		if gerr := RequireOrder("order", order); gerr != nil {
			return gerr
		}
		module := &types.CourseModule{
			TenantID: course.TenantID,
			CourseID: in.CourseID,
			Title:    strings.TrimSpace(in.Title),
			Order:    order,
		}
		created, err := a.deps.Modules.Create(dbc.Ctx, dbc.Tx, module)
		if err != nil {
			return err
		}
		out.ModuleID = created.ID
		out.Order = created.Order
		return nil
	})
	return out, err
}

func (a *contentAggregate) AddLesson(ctx context.Context, in domainagg.AddLessonInput) (domainagg.AddLessonResult, error) {
	const op = "Learning.Content.AddLesson"
	var out domainagg.AddLessonResult

	if in.ModuleID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing module_id", nil)
	}
	if strings.TrimSpace(in.Title) == "" {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing title", nil)
	}
	kind := types.LessonKind(strings.TrimSpace(in.Kind))
	if err := validateLessonContent(kind, in); err != nil {
		return out, MapError(op, err)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		module, err := a.deps.Modules.GetByID(dbc.Ctx, dbc.Tx, in.ModuleID)
		if err != nil {
			return err
		}
		if gerr := RequireSameTenant("Lesson", in.TenantID, "module", module.TenantID); gerr != nil {
			return gerr
		}
		if err := a.requireSameTenantRefs(dbc, in); err != nil {
			return err
		}
		order := in.Order
		if order == 0 {
			max, err := a.deps.Lessons.MaxOrderByModuleID(dbc.Ctx, dbc.Tx, in.ModuleID)
			if err != nil {
				return err
			}
			order = max + 1
		}
		if gerr := RequireOrder("order", order); gerr != nil {
			return gerr
		}
		lesson := &types.Lesson{
			TenantID:            module.TenantID,
			ModuleID:            in.ModuleID,
			Title:               strings.TrimSpace(in.Title),
			Kind:                kind,
			Order:               order,
			TextContent:         in.TextContent,
			VideoURL:            strings.TrimSpace(in.VideoURL),
			FileKey:             strings.TrimSpace(in.FileKey),
			SOPID:               in.SOPID,
			ChecklistTemplateID: in.ChecklistTemplateID,
			QuizID:              in.QuizID,
		}
		created, err := a.deps.Lessons.Create(dbc.Ctx, dbc.Tx, lesson)
		if err != nil {
			return err
		}
		out.LessonID = created.ID
		out.Order = created.Order
		return nil
	})
	return out, err
}

// requireSameTenantRefs checks that every referenced content entity of
// a lesson lives in the lesson's tenant.
func (a *contentAggregate) requireSameTenantRefs(dbc dbctx.Context, in domainagg.AddLessonInput) error {
	if in.SOPID != nil && *in.SOPID != uuid.Nil {
		sop, err := a.deps.SOPs.GetByID(dbc.Ctx, dbc.Tx, *in.SOPID)
		if err != nil {
			return err
		}
		if gerr := RequireSameTenant("Lesson", in.TenantID, "SOP", sop.TenantID); gerr != nil {
			return gerr
		}
	}
	if in.ChecklistTemplateID != nil && *in.ChecklistTemplateID != uuid.Nil {
		tmpl, err := a.deps.Checklists.GetByID(dbc.Ctx, dbc.Tx, *in.ChecklistTemplateID)
		if err != nil {
			return err
		}
		if gerr := RequireSameTenant("Lesson", in.TenantID, "checklist template", tmpl.TenantID); gerr != nil {
			return gerr
		}
	}
	if in.QuizID != nil && *in.QuizID != uuid.Nil {
		quiz, err := a.deps.Quizzes.GetByID(dbc.Ctx, dbc.Tx, *in.QuizID)
		if err != nil {
			return err
		}
		if gerr := RequireSameTenant("Lesson", in.TenantID, "quiz", quiz.TenantID); gerr != nil {
			return gerr
		}
	}
	return nil
}

// validateLessonContent enforces that exactly the content columns
// matching the lesson kind are populated.
func validateLessonContent(kind types.LessonKind, in domainagg.AddLessonInput) error {
	hasRef := func(id *uuid.UUID) bool { return id != nil && *id != uuid.Nil }
	switch kind {
	case types.LessonKindText:
		if strings.TrimSpace(in.TextContent) == "" {
			return ValidationError("Text lesson must have text_content set.")
		}
	case types.LessonKindVideoURL:
		if strings.TrimSpace(in.VideoURL) == "" {
			return ValidationError("Video lesson must have video_url set.")
		}
	case types.LessonKindFile:
		if strings.TrimSpace(in.FileKey) == "" {
			return ValidationError("File lesson must have file_key set.")
		}
	case types.LessonKindSOP:
		if !hasRef(in.SOPID) {
			return ValidationError("SOP lesson must have sop set.")
		}
	case types.LessonKindChecklist:
		if !hasRef(in.ChecklistTemplateID) {
			return ValidationError("Checklist lesson must have checklist_template set.")
		}
	case types.LessonKindQuiz:
		if !hasRef(in.QuizID) {
			return ValidationError("Quiz lesson must have quiz set.")
		}
	default:
		return ValidationError("unknown lesson kind")
	}
	return nil
}

func (a *contentAggregate) AddCourseToPath(ctx context.Context, in domainagg.AddCourseToPathInput) (domainagg.AddCourseToPathResult, error) {
	const op = "Learning.Content.AddCourseToPath"
	var out domainagg.AddCourseToPathResult

	if in.PathID == uuid.Nil || in.CourseID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing path_id or course_id", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		path, err := a.deps.Paths.GetByID(dbc.Ctx, dbc.Tx, in.PathID)
		if err != nil {
			return err
		}
		course, err := a.deps.Courses.GetByID(dbc.Ctx, dbc.Tx, in.CourseID)
		if err != nil {
			return err
		}
		if gerr := RequireSameTenant("LearningPathCourse", path.TenantID, "course", course.TenantID); gerr != nil {
			return gerr
		}
		if gerr := RequireSameTenant("LearningPathCourse", in.TenantID, "path", path.TenantID); gerr != nil {
			return gerr
		}
		order := in.Order
		if order == 0 {
			max, err := a.deps.PathCourses.MaxOrderByPathID(dbc.Ctx, dbc.Tx, in.PathID)
			if err != nil {
				return err
			}
			order = max + 1
		}
		if gerr := RequireOrder("order", order); gerr != nil {
			return gerr
		}
		entry := &types.LearningPathCourse{
			PathID:   in.PathID,
			CourseID: in.CourseID,
			Order:    order,
		}
		created, err := a.deps.PathCourses.Create(dbc.Ctx, dbc.Tx, entry)
		if err != nil {
			return err
		}
		out.EntryID = created.ID
		out.Order = created.Order
		return nil
	})
	return out, err
}

func (a *contentAggregate) SetCourseBranches(ctx context.Context, in domainagg.SetCourseBranchesInput) error {
	const op = "Learning.Content.SetCourseBranches"

	if in.CourseID == uuid.Nil {
		return domainagg.NewError(domainagg.CodeValidation, op, "missing course_id", nil)
	}

	// Repeated IDs would make the existence count below lie.
	seen := make(map[uuid.UUID]bool, len(in.BranchIDs))
	branchIDs := make([]uuid.UUID, 0, len(in.BranchIDs))
	for _, id := range in.BranchIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		branchIDs = append(branchIDs, id)
	}

	return executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		course, err := a.deps.Courses.GetByID(dbc.Ctx, dbc.Tx, in.CourseID)
		if err != nil {
			return err
		}
		if gerr := RequireSameTenant("Course", in.TenantID, "course", course.TenantID); gerr != nil {
			return gerr
		}
		branches, err := a.deps.Branches.GetByIDs(dbc.Ctx, dbc.Tx, branchIDs)
		if err != nil {
			return err
		}
		if len(branches) != len(branchIDs) {
			return PreconditionError("one or more branches not found")
		}
		for _, b := range branches {
			if gerr := RequireSameTenant("Course", course.TenantID, "branch", b.TenantID); gerr != nil {
				return gerr
			}
		}
		return a.deps.Courses.ReplaceBranches(dbc.Ctx, dbc.Tx, course, branches)
	})
}
