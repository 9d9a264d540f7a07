package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crewlearn/crewlearn-backend/internal/data/repos"
	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
)

type AssignmentService interface {
	Create(ctx context.Context, in domainagg.CreateAssignmentInput) (domainagg.CreateAssignmentResult, error)
	Deactivate(ctx context.Context, in domainagg.DeactivateAssignmentInput) (domainagg.DeactivateAssignmentResult, error)
	ListActive(ctx context.Context, tenantID uuid.UUID) ([]*types.Assignment, error)

	// ListForUser resolves the user's branch and role memberships and
	// returns every active assignment targeting the user directly or
	// through one of those memberships, due-soonest first.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*types.Assignment, error)
}

type assignmentService struct {
	db           *gorm.DB
	log          *logger.Logger
	assignments  repos.AssignmentRepo
	userBranches repos.UserBranchRepo
	userRoles    repos.UserRoleRepo
	agg          domainagg.AssignmentAggregate
}

func NewAssignmentService(
	db *gorm.DB,
	log *logger.Logger,
	assignments repos.AssignmentRepo,
	userBranches repos.UserBranchRepo,
	userRoles repos.UserRoleRepo,
	agg domainagg.AssignmentAggregate,
) AssignmentService {
	return &assignmentService{
		db:           db,
		log:          log.With("service", "AssignmentService"),
		assignments:  assignments,
		userBranches: userBranches,
		userRoles:    userRoles,
		agg:          agg,
	}
}

func (s *assignmentService) Create(ctx context.Context, in domainagg.CreateAssignmentInput) (domainagg.CreateAssignmentResult, error) {
	return s.agg.CreateAssignment(ctx, in)
}

func (s *assignmentService) Deactivate(ctx context.Context, in domainagg.DeactivateAssignmentInput) (domainagg.DeactivateAssignmentResult, error) {
	return s.agg.DeactivateAssignment(ctx, in)
}

func (s *assignmentService) ListActive(ctx context.Context, tenantID uuid.UUID) ([]*types.Assignment, error) {
	assignments, err := s.assignments.GetActiveByTenantID(ctx, nil, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list active assignments: %w", err)
	}
	return assignments, nil
}

func (s *assignmentService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*types.Assignment, error) {
	links, err := s.userBranches.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load branch memberships: %w", err)
	}
	branchIDs := make([]uuid.UUID, 0, len(links))
	for _, l := range links {
		branchIDs = append(branchIDs, l.BranchID)
	}
	grants, err := s.userRoles.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load role grants: %w", err)
	}
	roleIDs := make([]uuid.UUID, 0, len(grants))
	for _, g := range grants {
		roleIDs = append(roleIDs, g.RoleID)
	}
	assignments, err := s.assignments.GetForUser(ctx, nil, userID, branchIDs, roleIDs)
	if err != nil {
		return nil, fmt.Errorf("list assignments for user: %w", err)
	}
	return assignments, nil
}
