package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dataagg "github.com/crewlearn/crewlearn-backend/internal/data/aggregates"
	"github.com/crewlearn/crewlearn-backend/internal/data/repos"
	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
)

type CreateTenantInput struct {
	Name     string
	Slug     string
	PlanName string
}

// TenancyService owns tenant administration: the tenant record itself
// plus branches, roles, and membership links (the latter through the
// membership aggregate).
type TenancyService interface {
	CreateTenant(ctx context.Context, in CreateTenantInput) (*types.Tenant, error)
	GetTenant(ctx context.Context, callerTenantID, tenantID uuid.UUID) (*types.Tenant, error)
	ListTenants(ctx context.Context) ([]*types.Tenant, error)

	CreateBranch(ctx context.Context, in domainagg.CreateBranchInput) (domainagg.CreateBranchResult, error)
	ListBranches(ctx context.Context, tenantID uuid.UUID) ([]*types.Branch, error)

	CreateRole(ctx context.Context, in domainagg.CreateRoleInput) (domainagg.CreateRoleResult, error)
	ListRoles(ctx context.Context, tenantID uuid.UUID) ([]*types.Role, error)

	ListUsers(ctx context.Context, tenantID uuid.UUID) ([]*types.User, error)
	GetUser(ctx context.Context, tenantID, userID uuid.UUID) (*types.User, error)

	AttachUserToBranch(ctx context.Context, in domainagg.AttachUserToBranchInput) (domainagg.AttachUserToBranchResult, error)
	GrantRole(ctx context.Context, in domainagg.GrantRoleInput) (domainagg.GrantRoleResult, error)
	RevokeRole(ctx context.Context, in domainagg.RevokeRoleInput) error
}

type tenancyService struct {
	db         *gorm.DB
	log        *logger.Logger
	tenants    repos.TenantRepo
	branches   repos.BranchRepo
	roles      repos.RoleRepo
	users      repos.UserRepo
	membership domainagg.MembershipAggregate
}

func NewTenancyService(
	db *gorm.DB,
	log *logger.Logger,
	tenants repos.TenantRepo,
	branches repos.BranchRepo,
	roles repos.RoleRepo,
	users repos.UserRepo,
	membership domainagg.MembershipAggregate,
) TenancyService {
	return &tenancyService{
		db:         db,
		log:        log.With("service", "TenancyService"),
		tenants:    tenants,
		branches:   branches,
		roles:      roles,
		users:      users,
		membership: membership,
	}
}

func (s *tenancyService) CreateTenant(ctx context.Context, in CreateTenantInput) (*types.Tenant, error) {
	const op = "Tenancy.CreateTenant"

	name := strings.TrimSpace(in.Name)
	slug := strings.TrimSpace(strings.ToLower(in.Slug))
	if name == "" || slug == "" {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "name and slug are required", nil)
	}

	var created *types.Tenant
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tenant, err := s.tenants.Create(ctx, tx, &types.Tenant{
			Name:     name,
			Slug:     slug,
			Status:   types.TenantStatusTrial,
			PlanName: strings.TrimSpace(in.PlanName),
		})
		if err != nil {
			return err
		}
		created = tenant
		return nil
	})
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	return created, nil
}

func (s *tenancyService) GetTenant(ctx context.Context, callerTenantID, tenantID uuid.UUID) (*types.Tenant, error) {
	const op = "Tenancy.GetTenant"

	// Settings and plan details are not visible across tenant lines.
	if tenantID != callerTenantID {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, "tenant not found", nil)
	}
	tenant, err := s.tenants.GetByID(ctx, nil, tenantID)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	return tenant, nil
}

func (s *tenancyService) ListTenants(ctx context.Context) ([]*types.Tenant, error) {
	tenants, err := s.tenants.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	return tenants, nil
}

func (s *tenancyService) CreateBranch(ctx context.Context, in domainagg.CreateBranchInput) (domainagg.CreateBranchResult, error) {
	return s.membership.CreateBranch(ctx, in)
}

func (s *tenancyService) ListBranches(ctx context.Context, tenantID uuid.UUID) ([]*types.Branch, error) {
	branches, err := s.branches.GetByTenantID(ctx, nil, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	return branches, nil
}

func (s *tenancyService) CreateRole(ctx context.Context, in domainagg.CreateRoleInput) (domainagg.CreateRoleResult, error) {
	return s.membership.CreateRole(ctx, in)
}

func (s *tenancyService) ListRoles(ctx context.Context, tenantID uuid.UUID) ([]*types.Role, error) {
	roles, err := s.roles.GetByTenantID(ctx, nil, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}

func (s *tenancyService) ListUsers(ctx context.Context, tenantID uuid.UUID) ([]*types.User, error) {
	users, err := s.users.GetByTenantID(ctx, nil, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *tenancyService) GetUser(ctx context.Context, tenantID, userID uuid.UUID) (*types.User, error) {
	const op = "Tenancy.GetUser"

	user, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	if user.TenantID == nil || *user.TenantID != tenantID {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, "user not found", nil)
	}
	return user, nil
}

func (s *tenancyService) AttachUserToBranch(ctx context.Context, in domainagg.AttachUserToBranchInput) (domainagg.AttachUserToBranchResult, error) {
	return s.membership.AttachUserToBranch(ctx, in)
}

func (s *tenancyService) GrantRole(ctx context.Context, in domainagg.GrantRoleInput) (domainagg.GrantRoleResult, error) {
	return s.membership.GrantRole(ctx, in)
}

func (s *tenancyService) RevokeRole(ctx context.Context, in domainagg.RevokeRoleInput) error {
	return s.membership.RevokeRole(ctx, in)
}
