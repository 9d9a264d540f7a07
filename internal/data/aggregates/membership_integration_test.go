package aggregates

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/crewlearn/crewlearn-backend/internal/data/repos"
	repotest "github.com/crewlearn/crewlearn-backend/internal/data/repos/testutil"
	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
)

func newMembershipAggregateForTest(t *testing.T) (domainagg.MembershipAggregate, *testFixtures) {
	t.Helper()
	db := repotest.DB(t)
	tx := repotest.Tx(t, db)
	log := repotest.Logger(t)

	agg := NewMembershipAggregate(MembershipAggregateDeps{
		Base: BaseDeps{
			DB:     tx,
			Log:    log,
			Runner: NewGormTxRunner(tx),
		},
		Tenants:      repos.NewTenantRepo(tx, log),
		Users:        repos.NewUserRepo(tx, log),
		Branches:     repos.NewBranchRepo(tx, log),
		UserBranches: repos.NewUserBranchRepo(tx, log),
		Roles:        repos.NewRoleRepo(tx, log),
		UserRoles:    repos.NewUserRoleRepo(tx, log),
	})
	return agg, newTestFixtures(t, tx)
}

func TestRegisterUserHashesPassword(t *testing.T) {
	agg, fx := newMembershipAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	out, err := agg.RegisterUser(ctx, domainagg.RegisterUserInput{
		TenantID: &tenant.ID,
		Username: "newhire",
		Password: "s3cret-pass",
		Email:    "newhire@example.com",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	stored, err := repos.NewUserRepo(fx.tx, repotest.Logger(t)).GetByID(ctx, fx.tx, out.UserID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if stored.Password == "s3cret-pass" {
		t.Fatalf("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("s3cret-pass")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestRegisterUserRequiresTenantUnlessSuperuser(t *testing.T) {
	agg, fx := newMembershipAggregateForTest(t)
	ctx := context.Background()

	_, err := agg.RegisterUser(ctx, domainagg.RegisterUserInput{
		Username: "orphan",
		Password: "pw",
	})
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("tenant-less user: want validation, got %v", err)
	}

	out, err := agg.RegisterUser(ctx, domainagg.RegisterUserInput{
		Username:    "root-admin",
		Password:    "pw",
		IsSuperuser: true,
	})
	if err != nil {
		t.Fatalf("tenant-less superuser: %v", err)
	}
	stored, err := repos.NewUserRepo(fx.tx, repotest.Logger(t)).GetByID(ctx, fx.tx, out.UserID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if stored.TenantID != nil {
		t.Fatalf("superuser tenant: want nil, got %v", stored.TenantID)
	}
	if !stored.IsSuperuser {
		t.Fatal("superuser flag not persisted")
	}
}

func TestRegisterUserDuplicateUsernameConflicts(t *testing.T) {
	agg, fx := newMembershipAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	in := domainagg.RegisterUserInput{
		TenantID: &tenant.ID,
		Username: "dupe",
		Password: "pw",
	}
	if _, err := agg.RegisterUser(ctx, in); err != nil {
		t.Fatalf("first: %v", err)
	}
	_, err := agg.RegisterUser(ctx, in)
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("want conflict, got %v", err)
	}
}

func TestAttachUserToBranchPrimarySwap(t *testing.T) {
	agg, fx := newMembershipAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	user := fx.User(tenant.ID, "worker")
	downtown := fx.Branch(tenant.ID, "Downtown")
	uptown := fx.Branch(tenant.ID, "Uptown")

	first, err := agg.AttachUserToBranch(ctx, domainagg.AttachUserToBranchInput{
		TenantID: tenant.ID, UserID: user.ID, BranchID: downtown.ID, Primary: true,
	})
	if err != nil {
		t.Fatalf("attach downtown: %v", err)
	}
	if first.AlreadyAttached {
		t.Fatalf("fresh attach reported already attached")
	}

	second, err := agg.AttachUserToBranch(ctx, domainagg.AttachUserToBranchInput{
		TenantID: tenant.ID, UserID: user.ID, BranchID: uptown.ID, Primary: true,
	})
	if err != nil {
		t.Fatalf("attach uptown: %v", err)
	}
	if !second.DemotedPrimary {
		t.Fatalf("promoting uptown should demote the previous primary")
	}

	links := repos.NewUserBranchRepo(fx.tx, repotest.Logger(t))
	old, err := links.GetByUserAndBranch(ctx, fx.tx, user.ID, downtown.ID)
	if err != nil {
		t.Fatalf("load downtown link: %v", err)
	}
	if old.IsPrimary {
		t.Fatalf("downtown link still primary after swap")
	}
}

func TestAttachUserToBranchIdempotent(t *testing.T) {
	agg, fx := newMembershipAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	user := fx.User(tenant.ID, "worker")
	branch := fx.Branch(tenant.ID, "Downtown")

	first, err := agg.AttachUserToBranch(ctx, domainagg.AttachUserToBranchInput{
		TenantID: tenant.ID, UserID: user.ID, BranchID: branch.ID,
	})
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	again, err := agg.AttachUserToBranch(ctx, domainagg.AttachUserToBranchInput{
		TenantID: tenant.ID, UserID: user.ID, BranchID: branch.ID,
	})
	if err != nil {
		t.Fatalf("re-attach: %v", err)
	}
	if !again.AlreadyAttached {
		t.Fatalf("re-attach should report already attached")
	}
	if again.UserBranchID != first.UserBranchID {
		t.Fatalf("link row changed: first=%s again=%s", first.UserBranchID, again.UserBranchID)
	}
}

func TestGrantRoleCrossTenant(t *testing.T) {
	agg, fx := newMembershipAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	other := fx.Tenant("rival")
	user := fx.User(tenant.ID, "worker")
	foreignRole := fx.Role(other.ID, "manager")

	_, err := agg.GrantRole(ctx, domainagg.GrantRoleInput{
		TenantID: tenant.ID, UserID: user.ID, RoleID: foreignRole.ID,
	})
	if !domainagg.IsCode(err, domainagg.CodeInvariantViolation) {
		t.Fatalf("want invariant_violation, got %v", err)
	}
}

func TestGrantRoleTwiceConflicts(t *testing.T) {
	agg, fx := newMembershipAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	user := fx.User(tenant.ID, "worker")
	role := fx.Role(tenant.ID, "manager")

	in := domainagg.GrantRoleInput{TenantID: tenant.ID, UserID: user.ID, RoleID: role.ID}
	if _, err := agg.GrantRole(ctx, in); err != nil {
		t.Fatalf("first: %v", err)
	}
	_, err := agg.GrantRole(ctx, in)
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("want conflict, got %v", err)
	}
}

func TestRevokeRoleMissingGrant(t *testing.T) {
	agg, fx := newMembershipAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	user := fx.User(tenant.ID, "worker")
	role := fx.Role(tenant.ID, "manager")

	err := agg.RevokeRole(ctx, domainagg.RevokeRoleInput{
		TenantID: tenant.ID, UserID: user.ID, RoleID: role.ID,
	})
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("want not_found, got %v", err)
	}
}

func TestGrantThenRevokeRole(t *testing.T) {
	agg, fx := newMembershipAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	user := fx.User(tenant.ID, "worker")
	role := fx.Role(tenant.ID, "manager")

	if _, err := agg.GrantRole(ctx, domainagg.GrantRoleInput{
		TenantID: tenant.ID, UserID: user.ID, RoleID: role.ID,
	}); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if err := agg.RevokeRole(ctx, domainagg.RevokeRoleInput{
		TenantID: tenant.ID, UserID: user.ID, RoleID: role.ID,
	}); err != nil {
		t.Fatalf("revoke: %v", err)
	}
}
