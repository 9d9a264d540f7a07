package aggregates

import (
	"context"

	"github.com/google/uuid"
)

var MembershipAggregateContract = Contract{
	Name:             "Tenancy.MembershipAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns atomic user, branch membership, and role grant mutations within a tenant.",
}

// MembershipAggregate owns tenant membership invariants: users, their
// branch attachments, and their role grants all stay inside one tenant.
//
// Write method failures should return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeConflict, CodeInvariantViolation, CodeInternal.
type MembershipAggregate interface {
	Aggregate

	// RegisterUser atomically creates a tenant-scoped user with a hashed password.
	RegisterUser(ctx context.Context, in RegisterUserInput) (RegisterUserResult, error)

	// CreateBranch atomically creates a branch; (tenant, name) is unique.
	CreateBranch(ctx context.Context, in CreateBranchInput) (CreateBranchResult, error)

	// CreateRole atomically creates a role; (tenant, name) is unique.
	CreateRole(ctx context.Context, in CreateRoleInput) (CreateRoleResult, error)

	// AttachUserToBranch atomically links a user to a branch of the same tenant.
	// Setting Primary demotes any previous primary branch in the same write.
	AttachUserToBranch(ctx context.Context, in AttachUserToBranchInput) (AttachUserToBranchResult, error)

	// GrantRole atomically links a user to a role of the same tenant.
	GrantRole(ctx context.Context, in GrantRoleInput) (GrantRoleResult, error)

	// RevokeRole removes a role grant. Missing grants fail with CodeNotFound.
	RevokeRole(ctx context.Context, in RevokeRoleInput) error
}

type RegisterUserInput struct {
	TenantID      *uuid.UUID
	Username      string
	Email         string
	Password      string
	Phone         string
	EmployeeID    string
	IsTenantAdmin bool
	IsSuperuser   bool
}

type RegisterUserResult struct {
	UserID uuid.UUID
}

type CreateBranchInput struct {
	TenantID uuid.UUID
	Name     string
	Code     string
	City     string
}

type CreateBranchResult struct {
	BranchID uuid.UUID
}

type CreateRoleInput struct {
	TenantID      uuid.UUID
	Name          string
	IsManagerRole bool
}

type CreateRoleResult struct {
	RoleID uuid.UUID
}

type AttachUserToBranchInput struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	BranchID uuid.UUID
	Primary  bool
}

type AttachUserToBranchResult struct {
	UserBranchID    uuid.UUID
	DemotedPrimary  bool
	AlreadyAttached bool
}

type GrantRoleInput struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	RoleID   uuid.UUID
}

type GrantRoleResult struct {
	UserRoleID uuid.UUID
}

type RevokeRoleInput struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	RoleID   uuid.UUID
}
