package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/crewlearn/crewlearn-backend/internal/data/repos"
	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
)

// InitialAdminConfig seeds the first tenant-admin account so a fresh
// deployment can reach the admin API. Registration and login never
// mint admin rights on their own.
type InitialAdminConfig struct {
	Username   string
	Email      string
	Password   string
	TenantName string
	TenantSlug string
}

// EnsureInitialAdmin creates the configured admin user, and its tenant
// when missing, on startup. Reruns are no-ops once the user exists.
func EnsureInitialAdmin(
	ctx context.Context,
	log *logger.Logger,
	tenants repos.TenantRepo,
	users repos.UserRepo,
	membership domainagg.MembershipAggregate,
	cfg InitialAdminConfig,
) error {
	log = log.With("component", "InitialAdmin")

	username := strings.TrimSpace(strings.ToLower(cfg.Username))
	if username == "" || cfg.Password == "" {
		log.Debug("No initial admin configured, skipping seed")
		return nil
	}

	if _, err := users.GetByUsername(ctx, nil, username); err == nil {
		log.Debug("Initial admin already present", "username", username)
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	slug := strings.TrimSpace(strings.ToLower(cfg.TenantSlug))
	tenant, err := tenants.GetBySlug(ctx, nil, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tenant, err = tenants.Create(ctx, nil, &types.Tenant{
			Name:   strings.TrimSpace(cfg.TenantName),
			Slug:   slug,
			Status: types.TenantStatusActive,
		})
	}
	if err != nil {
		return err
	}

	out, err := membership.RegisterUser(ctx, domainagg.RegisterUserInput{
		TenantID:      &tenant.ID,
		Username:      username,
		Email:         strings.TrimSpace(strings.ToLower(cfg.Email)),
		Password:      cfg.Password,
		IsTenantAdmin: true,
		IsSuperuser:   true,
	})
	if err != nil {
		return err
	}
	log.Info("Seeded initial admin", "username", username, "user_id", out.UserID, "tenant_id", tenant.ID)
	return nil
}
