package aggregates

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crewlearn/crewlearn-backend/internal/data/repos"
	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
	"github.com/crewlearn/crewlearn-backend/internal/platform/dbctx"
)

type ChecklistAggregateDeps struct {
	Base BaseDeps

	Templates repos.ChecklistTemplateRepo
	Items     repos.ChecklistItemRepo
	Runs      repos.ChecklistRunRepo
	Results   repos.ChecklistItemResultRepo
	Users     repos.UserRepo
	Branches  repos.BranchRepo
}

type checklistAggregate struct {
	deps ChecklistAggregateDeps
}

func NewChecklistAggregate(deps ChecklistAggregateDeps) domainagg.ChecklistAggregate {
	deps.Base = deps.Base.withDefaults()
	return &checklistAggregate{deps: deps}
}

func (a *checklistAggregate) Contract() domainagg.Contract {
	return domainagg.ChecklistAggregateContract
}

func (a *checklistAggregate) AddItem(ctx context.Context, in domainagg.AddChecklistItemInput) (domainagg.AddChecklistItemResult, error) {
	const op = "Progress.Checklist.AddItem"
	var out domainagg.AddChecklistItemResult

	if in.TemplateID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing template_id", nil)
	}
	if strings.TrimSpace(in.Text) == "" {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing text", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		tmpl, err := a.deps.Templates.GetByID(dbc.Ctx, dbc.Tx, in.TemplateID)
		if err != nil {
			return err
		}
		if gerr := RequireSameTenant("ChecklistItem", in.TenantID, "template", tmpl.TenantID); gerr != nil {
			return gerr
		}
		order := in.Order
		if order == 0 {
			max, err := a.deps.Items.MaxOrderByTemplateID(dbc.Ctx, dbc.Tx, in.TemplateID)
			if err != nil {
				return err
			}
			order = max + 1
		}
		if gerr := RequireOrder("order", order); gerr != nil {
			return gerr
		}
		created, err := a.deps.Items.Create(dbc.Ctx, dbc.Tx, &types.ChecklistItem{
			TemplateID: in.TemplateID,
			Text:       strings.TrimSpace(in.Text),
			Order:      order,
			IsRequired: in.IsRequired,
		})
		if err != nil {
			return err
		}
		out.ItemID = created.ID
		out.Order = created.Order
		return nil
	})
	return out, err
}

func (a *checklistAggregate) StartRun(ctx context.Context, in domainagg.StartChecklistRunInput) (domainagg.StartChecklistRunResult, error) {
	const op = "Progress.Checklist.StartRun"
	var out domainagg.StartChecklistRunResult

	if in.TemplateID == uuid.Nil || in.PerformedByID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing template_id or performed_by_id", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		tmpl, err := a.deps.Templates.GetByID(dbc.Ctx, dbc.Tx, in.TemplateID)
		if err != nil {
			return err
		}
		if gerr := RequireSameTenant("ChecklistRun", in.TenantID, "template", tmpl.TenantID); gerr != nil {
			return gerr
		}
		performer, err := a.deps.Users.GetByID(dbc.Ctx, dbc.Tx, in.PerformedByID)
		if err != nil {
			return err
		}
		if performer.TenantID == nil {
			return InvariantError("ChecklistRun tenant must match performer tenant.")
		}
		if gerr := RequireSameTenant("ChecklistRun", in.TenantID, "performer", *performer.TenantID); gerr != nil {
			return gerr
		}
		if in.BranchID != nil && *in.BranchID != uuid.Nil {
			branch, err := a.deps.Branches.GetByID(dbc.Ctx, dbc.Tx, *in.BranchID)
			if err != nil {
				return err
			}
			if gerr := RequireSameTenant("ChecklistRun", in.TenantID, "branch", branch.TenantID); gerr != nil {
				return gerr
			}
		}
		now := time.Now().UTC()
		run := &types.ChecklistRun{
			TenantID:      in.TenantID,
			TemplateID:    in.TemplateID,
			BranchID:      in.BranchID,
			PerformedByID: in.PerformedByID,
			PerformedAt:   now,
			Notes:         strings.TrimSpace(in.Notes),
		}
		created, err := a.deps.Runs.Create(dbc.Ctx, dbc.Tx, run)
		if err != nil {
			return err
		}
		out.RunID = created.ID
		out.PerformedAt = created.PerformedAt
		return nil
	})
	return out, err
}

func (a *checklistAggregate) RecordItemResult(ctx context.Context, in domainagg.RecordItemResultInput) (domainagg.RecordItemResultResult, error) {
	const op = "Progress.Checklist.RecordItemResult"
	var out domainagg.RecordItemResultResult

	if in.RunID == uuid.Nil || in.ItemID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing run_id or item_id", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		run, err := a.deps.Runs.GetByID(dbc.Ctx, dbc.Tx, in.RunID)
		if err != nil {
			return err
		}
		if gerr := RequireSameTenant("ChecklistItemResult", in.TenantID, "run", run.TenantID); gerr != nil {
			return gerr
		}
		item, err := a.deps.Items.GetByID(dbc.Ctx, dbc.Tx, in.ItemID)
		if err != nil {
			return err
		}
		if item.TemplateID != run.TemplateID {
			return InvariantError("ChecklistItemResult item must belong to the same template as the run.")
		}

		existing, err := a.deps.Results.GetByRunAndItem(dbc.Ctx, dbc.Tx, in.RunID, in.ItemID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if existing != nil {
			if err := a.deps.Results.UpdateFields(dbc.Ctx, dbc.Tx, existing.ID, map[string]any{
				"is_done": in.IsDone,
				"comment": strings.TrimSpace(in.Comment),
			}); err != nil {
				return err
			}
			out.ResultID = existing.ID
			out.Updated = true
			return nil
		}
		created, err := a.deps.Results.Create(dbc.Ctx, dbc.Tx, &types.ChecklistItemResult{
			RunID:   in.RunID,
			ItemID:  in.ItemID,
			IsDone:  in.IsDone,
			Comment: strings.TrimSpace(in.Comment),
		})
		if err != nil {
			return err
		}
		out.ResultID = created.ID
		return nil
	})
	return out, err
}

func (a *checklistAggregate) ApproveRun(ctx context.Context, in domainagg.ApproveChecklistRunInput) (domainagg.ApproveChecklistRunResult, error) {
	const op = "Progress.Checklist.ApproveRun"
	var out domainagg.ApproveChecklistRunResult

	if in.RunID == uuid.Nil || in.ApprovedByID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing run_id or approved_by_id", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		run, err := a.deps.Runs.GetByID(dbc.Ctx, dbc.Tx, in.RunID)
		if err != nil {
			return err
		}
		if gerr := RequireSameTenant("ChecklistRun", in.TenantID, "run", run.TenantID); gerr != nil {
			return gerr
		}
		if run.ApprovedAt != nil {
			out.RunID = run.ID
			out.ApprovedAt = *run.ApprovedAt
			out.AlreadyApproved = true
			return nil
		}
		approver, err := a.deps.Users.GetByID(dbc.Ctx, dbc.Tx, in.ApprovedByID)
		if err != nil {
			return err
		}
		if approver.TenantID == nil {
			return InvariantError("ChecklistRun tenant must match approver tenant.")
		}
		if gerr := RequireSameTenant("ChecklistRun", in.TenantID, "approver", *approver.TenantID); gerr != nil {
			return gerr
		}
		now := time.Now().UTC()
		if err := a.deps.Runs.UpdateFields(dbc.Ctx, dbc.Tx, run.ID, map[string]any{
			"approved_by_id": in.ApprovedByID,
			"approved_at":    now,
		}); err != nil {
			return err
		}
		out.RunID = run.ID
		out.ApprovedAt = now
		return nil
	})
	return out, err
}
