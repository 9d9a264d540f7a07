package aggregates

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/crewlearn/crewlearn-backend/internal/data/repos"
	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
	"github.com/crewlearn/crewlearn-backend/internal/platform/dbctx"
)

type SOPAggregateDeps struct {
	Base BaseDeps

	SOPs     repos.SOPRepo
	Versions repos.SOPVersionRepo
}

type sopAggregate struct {
	deps SOPAggregateDeps
}

func NewSOPAggregate(deps SOPAggregateDeps) domainagg.SOPAggregate {
	deps.Base = deps.Base.withDefaults()
	return &sopAggregate{deps: deps}
}

func (a *sopAggregate) Contract() domainagg.Contract {
	return domainagg.SOPAggregateContract
}

func (a *sopAggregate) AddVersion(ctx context.Context, in domainagg.AddSOPVersionInput) (domainagg.AddSOPVersionResult, error) {
	const op = "Learning.SOP.AddVersion"
	var out domainagg.AddSOPVersionResult

	if in.SOPID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing sop_id", nil)
	}
	if strings.TrimSpace(in.Content) == "" {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing content", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		sop, err := a.deps.SOPs.GetByID(dbc.Ctx, dbc.Tx, in.SOPID)
		if err != nil {
			return err
		}
		if gerr := RequireSameTenant("SOPVersion", in.TenantID, "SOP", sop.TenantID); gerr != nil {
			return gerr
		}
		version := in.Version
		if version == 0 {
			max, err := a.deps.Versions.MaxVersionBySOPID(dbc.Ctx, dbc.Tx, in.SOPID)
			if err != nil {
				return err
			}
			version = max + 1
		}
		if version < 1 {
			return ValidationError("version must be >= 1")
		}
		created, err := a.deps.Versions.Create(dbc.Ctx, dbc.Tx, &types.SOPVersion{
			SOPID:   in.SOPID,
			Version: version,
			Content: in.Content,
		})
		if err != nil {
			return err
		}
		out.VersionID = created.ID
		out.Version = created.Version
		return nil
	})
	return out, err
}

func (a *sopAggregate) PublishVersion(ctx context.Context, in domainagg.PublishSOPVersionInput) (domainagg.PublishSOPVersionResult, error) {
	const op = "Learning.SOP.PublishVersion"
	var out domainagg.PublishSOPVersionResult

	if in.VersionID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing version_id", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		version, err := a.deps.Versions.GetByID(dbc.Ctx, dbc.Tx, in.VersionID)
		if err != nil {
			return err
		}
		sop, err := a.deps.SOPs.GetByID(dbc.Ctx, dbc.Tx, version.SOPID)
		if err != nil {
			return err
		}
		if gerr := RequireSameTenant("SOPVersion", in.TenantID, "SOP", sop.TenantID); gerr != nil {
			return gerr
		}
		// Publishing twice is not an error; the timestamp just moves
		// forward.
		out.AlreadyPublished = version.PublishedAt != nil
		now := time.Now().UTC()
		if err := a.deps.Versions.UpdateFields(dbc.Ctx, dbc.Tx, version.ID, map[string]any{
			"published_at": now,
		}); err != nil {
			return err
		}
		out.VersionID = version.ID
		out.PublishedAt = now
		return nil
	})
	return out, err
}
