package aggregates

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/crewlearn/crewlearn-backend/internal/data/repos"
	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
	"github.com/crewlearn/crewlearn-backend/internal/platform/dbctx"
)

type MembershipAggregateDeps struct {
	Base BaseDeps

	Tenants      repos.TenantRepo
	Users        repos.UserRepo
	Branches     repos.BranchRepo
	UserBranches repos.UserBranchRepo
	Roles        repos.RoleRepo
	UserRoles    repos.UserRoleRepo
}

type membershipAggregate struct {
	deps MembershipAggregateDeps
}

func NewMembershipAggregate(deps MembershipAggregateDeps) domainagg.MembershipAggregate {
	deps.Base = deps.Base.withDefaults()
	return &membershipAggregate{deps: deps}
}

func (a *membershipAggregate) Contract() domainagg.Contract {
	return domainagg.MembershipAggregateContract
}

func (a *membershipAggregate) RegisterUser(ctx context.Context, in domainagg.RegisterUserInput) (domainagg.RegisterUserResult, error) {
	const op = "Tenancy.Membership.RegisterUser"
	var out domainagg.RegisterUserResult

	username := strings.TrimSpace(in.Username)
	if username == "" {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing username", nil)
	}
	if strings.TrimSpace(in.Password) == "" {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing password", nil)
	}
	if !in.IsSuperuser && (in.TenantID == nil || *in.TenantID == uuid.Nil) {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "Non-superuser accounts must belong to a tenant.", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "password hashing failed", err)
	}

	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if in.TenantID != nil && *in.TenantID != uuid.Nil {
			if _, err := a.deps.Tenants.GetByID(dbc.Ctx, dbc.Tx, *in.TenantID); err != nil {
				return err
			}
		}
		user := &types.User{
			TenantID:      in.TenantID,
			Username:      username,
			Email:         strings.TrimSpace(in.Email),
			Password:      string(hash),
			Phone:         strings.TrimSpace(in.Phone),
			EmployeeID:    strings.TrimSpace(in.EmployeeID),
			IsTenantAdmin: in.IsTenantAdmin,
			IsSuperuser:   in.IsSuperuser,
		}
		created, err := a.deps.Users.Create(dbc.Ctx, dbc.Tx, user)
		if err != nil {
			return err
		}
		out.UserID = created.ID
		return nil
	})
	return out, err
}

func (a *membershipAggregate) CreateBranch(ctx context.Context, in domainagg.CreateBranchInput) (domainagg.CreateBranchResult, error) {
	const op = "Tenancy.Membership.CreateBranch"
	var out domainagg.CreateBranchResult

	if in.TenantID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing tenant_id", nil)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing name", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if _, err := a.deps.Tenants.GetByID(dbc.Ctx, dbc.Tx, in.TenantID); err != nil {
			return err
		}
		created, err := a.deps.Branches.Create(dbc.Ctx, dbc.Tx, &types.Branch{
			TenantID: in.TenantID,
			Name:     name,
			Code:     strings.TrimSpace(in.Code),
			City:     strings.TrimSpace(in.City),
			IsActive: true,
		})
		if err != nil {
			return err
		}
		out.BranchID = created.ID
		return nil
	})
	return out, err
}

func (a *membershipAggregate) CreateRole(ctx context.Context, in domainagg.CreateRoleInput) (domainagg.CreateRoleResult, error) {
	const op = "Tenancy.Membership.CreateRole"
	var out domainagg.CreateRoleResult

	if in.TenantID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing tenant_id", nil)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing name", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if _, err := a.deps.Tenants.GetByID(dbc.Ctx, dbc.Tx, in.TenantID); err != nil {
			return err
		}
		created, err := a.deps.Roles.Create(dbc.Ctx, dbc.Tx, &types.Role{
			TenantID:      in.TenantID,
			Name:          name,
			IsManagerRole: in.IsManagerRole,
		})
		if err != nil {
			return err
		}
		out.RoleID = created.ID
		return nil
	})
	return out, err
}

func (a *membershipAggregate) AttachUserToBranch(ctx context.Context, in domainagg.AttachUserToBranchInput) (domainagg.AttachUserToBranchResult, error) {
	const op = "Tenancy.Membership.AttachUserToBranch"
	var out domainagg.AttachUserToBranchResult

	if in.UserID == uuid.Nil || in.BranchID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing user_id or branch_id", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		user, err := a.deps.Users.GetByID(dbc.Ctx, dbc.Tx, in.UserID)
		if err != nil {
			return err
		}
		branch, err := a.deps.Branches.GetByID(dbc.Ctx, dbc.Tx, in.BranchID)
		if err != nil {
			return err
		}
		if user.TenantID != nil {
			if gerr := RequireSameTenant("UserBranch", *user.TenantID, "branch", branch.TenantID); gerr != nil {
				return gerr
			}
		}
		if gerr := RequireSameTenant("UserBranch", in.TenantID, "branch", branch.TenantID); gerr != nil {
			return gerr
		}

		existing, err := a.deps.UserBranches.GetByUserAndBranch(dbc.Ctx, dbc.Tx, in.UserID, in.BranchID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if in.Primary {
			if err := a.deps.UserBranches.ClearPrimaryForUser(dbc.Ctx, dbc.Tx, in.UserID); err != nil {
				return err
			}
			out.DemotedPrimary = true
		}
		if existing != nil {
			out.UserBranchID = existing.ID
			out.AlreadyAttached = true
			if in.Primary && !existing.IsPrimary {
				return dbc.Tx.WithContext(dbc.Ctx).
					Model(existing).
					Update("is_primary", true).Error
			}
			return nil
		}
		link := &types.UserBranch{
			UserID:    in.UserID,
			BranchID:  in.BranchID,
			IsPrimary: in.Primary,
		}
		created, err := a.deps.UserBranches.Create(dbc.Ctx, dbc.Tx, link)
		if err != nil {
			return err
		}
		out.UserBranchID = created.ID
		return nil
	})
	return out, err
}

func (a *membershipAggregate) GrantRole(ctx context.Context, in domainagg.GrantRoleInput) (domainagg.GrantRoleResult, error) {
	const op = "Tenancy.Membership.GrantRole"
	var out domainagg.GrantRoleResult

	if in.UserID == uuid.Nil || in.RoleID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing user_id or role_id", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		user, err := a.deps.Users.GetByID(dbc.Ctx, dbc.Tx, in.UserID)
		if err != nil {
			return err
		}
		role, err := a.deps.Roles.GetByID(dbc.Ctx, dbc.Tx, in.RoleID)
		if err != nil {
			return err
		}
		if user.TenantID != nil {
			if gerr := RequireSameTenant("UserRole", *user.TenantID, "role", role.TenantID); gerr != nil {
				return gerr
			}
		}
		if gerr := RequireSameTenant("UserRole", in.TenantID, "role", role.TenantID); gerr != nil {
			return gerr
		}
		grant := &types.UserRole{UserID: in.UserID, RoleID: in.RoleID}
		created, err := a.deps.UserRoles.Create(dbc.Ctx, dbc.Tx, grant)
		if err != nil {
			return err
		}
		out.UserRoleID = created.ID
		return nil
	})
	return out, err
}

func (a *membershipAggregate) RevokeRole(ctx context.Context, in domainagg.RevokeRoleInput) error {
	const op = "Tenancy.Membership.RevokeRole"

	if in.UserID == uuid.Nil || in.RoleID == uuid.Nil {
		return domainagg.NewError(domainagg.CodeValidation, op, "missing user_id or role_id", nil)
	}

	return executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		affected, err := a.deps.UserRoles.DeleteByUserAndRole(dbc.Ctx, dbc.Tx, in.UserID, in.RoleID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return domainagg.NewError(domainagg.CodeNotFound, op, "role grant not found", nil)
		}
		return nil
	})
}
