package services

import (
	"context"
	"testing"

	dataagg "github.com/crewlearn/crewlearn-backend/internal/data/aggregates"
	"github.com/crewlearn/crewlearn-backend/internal/data/repos"
)

func TestEnsureInitialAdminSeedsOnce(t *testing.T) {
	tx, log := scopeTestTx(t)
	ctx := context.Background()

	tenants := repos.NewTenantRepo(tx, log)
	users := repos.NewUserRepo(tx, log)
	membership := dataagg.NewMembershipAggregate(dataagg.MembershipAggregateDeps{
		Base: dataagg.BaseDeps{
			DB:     tx,
			Log:    log,
			Runner: dataagg.NewGormTxRunner(tx),
		},
		Tenants:      tenants,
		Users:        users,
		Branches:     repos.NewBranchRepo(tx, log),
		UserBranches: repos.NewUserBranchRepo(tx, log),
		Roles:        repos.NewRoleRepo(tx, log),
		UserRoles:    repos.NewUserRoleRepo(tx, log),
	})

	cfg := InitialAdminConfig{
		Username:   "Boss",
		Email:      "boss@example.com",
		Password:   "pw",
		TenantName: "Platform",
		TenantSlug: "platform",
	}
	if err := EnsureInitialAdmin(ctx, log, tenants, users, membership, cfg); err != nil {
		t.Fatalf("first seed: %v", err)
	}

	admin, err := users.GetByUsername(ctx, nil, "boss")
	if err != nil {
		t.Fatalf("load admin: %v", err)
	}
	if !admin.IsTenantAdmin || !admin.IsSuperuser {
		t.Fatalf("admin flags: tenant_admin=%v superuser=%v", admin.IsTenantAdmin, admin.IsSuperuser)
	}
	if admin.TenantID == nil {
		t.Fatal("admin tenant missing")
	}

	if err := EnsureInitialAdmin(ctx, log, tenants, users, membership, cfg); err != nil {
		t.Fatalf("rerun: %v", err)
	}
}

func TestEnsureInitialAdminSkipsWhenUnconfigured(t *testing.T) {
	tx, log := scopeTestTx(t)
	ctx := context.Background()

	tenants := repos.NewTenantRepo(tx, log)
	users := repos.NewUserRepo(tx, log)

	if err := EnsureInitialAdmin(ctx, log, tenants, users, nil, InitialAdminConfig{}); err != nil {
		t.Fatalf("unconfigured: %v", err)
	}
}
