package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/crewlearn/crewlearn-backend/internal/data/repos"
	repotest "github.com/crewlearn/crewlearn-backend/internal/data/repos/testutil"
	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
)

func scopeTestTx(t *testing.T) (*gorm.DB, *logger.Logger) {
	t.Helper()
	db := repotest.DB(t)
	return repotest.Tx(t, db), repotest.Logger(t)
}

func TestGetCourseHiddenAcrossTenants(t *testing.T) {
	tx, log := scopeTestTx(t)
	ctx := context.Background()

	svc := NewContentService(tx, log,
		repos.NewCourseRepo(tx, log),
		repos.NewCourseModuleRepo(tx, log),
		repos.NewLessonRepo(tx, log),
		repos.NewLearningPathRepo(tx, log),
		repos.NewLearningPathCourseRepo(tx, log),
		repos.NewResourceRepo(tx, log),
		nil,
	)

	owner := repotest.SeedTenant(t, tx, "acme")
	rival := repotest.SeedTenant(t, tx, "rival")
	course := repotest.SeedCourse(t, tx, owner.ID, "Food Safety")
	path := repotest.SeedPath(t, tx, owner.ID, "Onboarding")

	if _, err := svc.GetCourse(ctx, owner.ID, course.ID); err != nil {
		t.Fatalf("owner read: %v", err)
	}
	_, err := svc.GetCourse(ctx, rival.ID, course.ID)
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("cross-tenant course read: want not_found, got %v", err)
	}

	if _, err := svc.ListPathCourses(ctx, owner.ID, path.ID); err != nil {
		t.Fatalf("owner path read: %v", err)
	}
	_, err = svc.ListPathCourses(ctx, rival.ID, path.ID)
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("cross-tenant path read: want not_found, got %v", err)
	}
}

func TestGetTenantAndUserHiddenAcrossTenants(t *testing.T) {
	tx, log := scopeTestTx(t)
	ctx := context.Background()

	svc := NewTenancyService(tx, log,
		repos.NewTenantRepo(tx, log),
		repos.NewBranchRepo(tx, log),
		repos.NewRoleRepo(tx, log),
		repos.NewUserRepo(tx, log),
		nil,
	)

	owner := repotest.SeedTenant(t, tx, "acme")
	rival := repotest.SeedTenant(t, tx, "rival")
	worker := repotest.SeedUser(t, tx, owner.ID, "worker")

	if _, err := svc.GetTenant(ctx, owner.ID, owner.ID); err != nil {
		t.Fatalf("own tenant read: %v", err)
	}
	_, err := svc.GetTenant(ctx, rival.ID, owner.ID)
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("foreign tenant read: want not_found, got %v", err)
	}

	if _, err := svc.GetUser(ctx, owner.ID, worker.ID); err != nil {
		t.Fatalf("own user read: %v", err)
	}
	_, err = svc.GetUser(ctx, rival.ID, worker.ID)
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("foreign user read: want not_found, got %v", err)
	}
}

func TestGetQuizHiddenAcrossTenants(t *testing.T) {
	tx, log := scopeTestTx(t)
	ctx := context.Background()

	svc := NewQuizService(tx, log,
		repos.NewQuizRepo(tx, log),
		repos.NewQuestionRepo(tx, log),
		repos.NewChoiceRepo(tx, log),
		repos.NewQuizAttemptRepo(tx, log),
		nil,
	)

	owner := repotest.SeedTenant(t, tx, "acme")
	rival := repotest.SeedTenant(t, tx, "rival")
	quiz := repotest.SeedQuiz(t, tx, owner.ID, "Safety Quiz", 70, 0)

	if _, err := svc.GetQuiz(ctx, owner.ID, quiz.ID); err != nil {
		t.Fatalf("owner read: %v", err)
	}
	_, err := svc.GetQuiz(ctx, rival.ID, quiz.ID)
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("cross-tenant quiz read: want not_found, got %v", err)
	}
}

func TestChecklistReadsHiddenAcrossTenants(t *testing.T) {
	tx, log := scopeTestTx(t)
	ctx := context.Background()

	svc := NewChecklistService(tx, log,
		repos.NewChecklistTemplateRepo(tx, log),
		repos.NewChecklistItemRepo(tx, log),
		repos.NewChecklistRunRepo(tx, log),
		repos.NewChecklistItemResultRepo(tx, log),
		nil,
	)

	owner := repotest.SeedTenant(t, tx, "acme")
	rival := repotest.SeedTenant(t, tx, "rival")
	worker := repotest.SeedUser(t, tx, owner.ID, "worker")
	tmpl := repotest.SeedChecklistTemplate(t, tx, owner.ID, "Opening")
	run := &types.ChecklistRun{
		TenantID:      owner.ID,
		TemplateID:    tmpl.ID,
		PerformedByID: worker.ID,
		PerformedAt:   time.Now().UTC(),
	}
	if err := tx.Create(run).Error; err != nil {
		t.Fatalf("seed run: %v", err)
	}

	if _, err := svc.ListItems(ctx, owner.ID, tmpl.ID); err != nil {
		t.Fatalf("owner items read: %v", err)
	}
	_, err := svc.ListItems(ctx, rival.ID, tmpl.ID)
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("cross-tenant items read: want not_found, got %v", err)
	}

	if _, err := svc.GetRun(ctx, owner.ID, run.ID); err != nil {
		t.Fatalf("owner run read: %v", err)
	}
	_, err = svc.GetRun(ctx, rival.ID, run.ID)
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("cross-tenant run read: want not_found, got %v", err)
	}
}

func TestSOPReadsHiddenAcrossTenants(t *testing.T) {
	tx, log := scopeTestTx(t)
	ctx := context.Background()

	svc := NewSOPService(tx, log,
		repos.NewSOPRepo(tx, log),
		repos.NewSOPVersionRepo(tx, log),
		nil,
	)

	owner := repotest.SeedTenant(t, tx, "acme")
	rival := repotest.SeedTenant(t, tx, "rival")
	sop := repotest.SeedSOP(t, tx, owner.ID, "Fryer Cleaning")
	now := time.Now().UTC()
	version := &types.SOPVersion{
		SOPID:       sop.ID,
		Version:     1,
		Content:     "steps",
		PublishedAt: &now,
	}
	if err := tx.Create(version).Error; err != nil {
		t.Fatalf("seed version: %v", err)
	}

	if _, err := svc.ListVersions(ctx, owner.ID, sop.ID); err != nil {
		t.Fatalf("owner versions read: %v", err)
	}
	_, err := svc.ListVersions(ctx, rival.ID, sop.ID)
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("cross-tenant versions read: want not_found, got %v", err)
	}

	if _, err := svc.GetPublished(ctx, owner.ID, sop.ID); err != nil {
		t.Fatalf("owner published read: %v", err)
	}
	_, err = svc.GetPublished(ctx, rival.ID, sop.ID)
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("cross-tenant published read: want not_found, got %v", err)
	}
}
