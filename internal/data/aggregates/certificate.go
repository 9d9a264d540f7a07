package aggregates

import (
	"context"
	"crypto/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/crewlearn/crewlearn-backend/internal/data/repos"
	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
	"github.com/crewlearn/crewlearn-backend/internal/platform/dbctx"
)

type CertificateAggregateDeps struct {
	Base BaseDeps

	Certificates repos.CertificateRepo
	Users        repos.UserRepo
	Courses      repos.CourseRepo
	Paths        repos.LearningPathRepo
}

type certificateAggregate struct {
	deps CertificateAggregateDeps
}

func NewCertificateAggregate(deps CertificateAggregateDeps) domainagg.CertificateAggregate {
	deps.Base = deps.Base.withDefaults()
	return &certificateAggregate{deps: deps}
}

func (a *certificateAggregate) Contract() domainagg.Contract {
	return domainagg.CertificateAggregateContract
}

// certCodeAlphabet omits easily confused characters for codes read
// aloud or typed from print.
const certCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func newCertificateCode() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	var b strings.Builder
	for _, c := range buf {
		b.WriteByte(certCodeAlphabet[int(c)%len(certCodeAlphabet)])
	}
	return b.String(), nil
}

func (a *certificateAggregate) IssueCertificate(ctx context.Context, in domainagg.IssueCertificateInput) (domainagg.IssueCertificateResult, error) {
	const op = "Progress.Certificate.IssueCertificate"
	var out domainagg.IssueCertificateResult

	if in.UserID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing user_id", nil)
	}
	if err := RequireExactlyOne("Certificate", map[string]*uuid.UUID{
		"course": in.CourseID,
		"path":   in.PathID,
	}, "course", "path"); err != nil {
		return out, MapError(op, err)
	}

	code := strings.TrimSpace(in.Code)
	if code == "" {
		generated, err := newCertificateCode()
		if err != nil {
			return out, domainagg.NewError(domainagg.CodeInternal, op, "code generation failed", err)
		}
		code = generated
	}
	if len(code) > 32 {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "code must be at most 32 characters", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		user, err := a.deps.Users.GetByID(dbc.Ctx, dbc.Tx, in.UserID)
		if err != nil {
			return err
		}
		if user.TenantID == nil {
			return InvariantError("Certificate tenant must match user tenant.")
		}
		if gerr := RequireSameTenant("Certificate", in.TenantID, "user", *user.TenantID); gerr != nil {
			return gerr
		}
		if in.CourseID != nil {
			course, err := a.deps.Courses.GetByID(dbc.Ctx, dbc.Tx, *in.CourseID)
			if err != nil {
				return err
			}
			if gerr := RequireSameTenant("Certificate", in.TenantID, "course", course.TenantID); gerr != nil {
				return gerr
			}
		}
		if in.PathID != nil {
			path, err := a.deps.Paths.GetByID(dbc.Ctx, dbc.Tx, *in.PathID)
			if err != nil {
				return err
			}
			if gerr := RequireSameTenant("Certificate", in.TenantID, "path", path.TenantID); gerr != nil {
				return gerr
			}
		}
		now := time.Now().UTC()
		created, err := a.deps.Certificates.Create(dbc.Ctx, dbc.Tx, &types.Certificate{
			TenantID: in.TenantID,
			UserID:   in.UserID,
			CourseID: in.CourseID,
			PathID:   in.PathID,
			IssuedAt: now,
			Code:     code,
		})
		if err != nil {
			return err
		}
		out.CertificateID = created.ID
		out.Code = created.Code
		out.IssuedAt = created.IssuedAt
		return nil
	})
	return out, err
}
