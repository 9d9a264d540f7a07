package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/crewlearn/crewlearn-backend/internal/data/aggregates"
	"github.com/crewlearn/crewlearn-backend/internal/data/repos"
	"github.com/crewlearn/crewlearn-backend/internal/db"
	apphttp "github.com/crewlearn/crewlearn-backend/internal/http"
	"github.com/crewlearn/crewlearn-backend/internal/http/handlers"
	"github.com/crewlearn/crewlearn-backend/internal/http/middleware"
	"github.com/crewlearn/crewlearn-backend/internal/observability"
	"github.com/crewlearn/crewlearn-backend/internal/platform/envutil"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
	"github.com/crewlearn/crewlearn-backend/internal/services"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		fmt.Printf("failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOtel := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: envutil.String("OTEL_SERVICE_NAME", "crewlearn-backend"),
		Environment: envutil.String("APP_ENV", "development"),
		Version:     envutil.String("APP_VERSION", ""),
	})
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOtel(shutdownCtx); err != nil {
			log.Warn("otel shutdown failed", "error", err)
		}
	}()

	metrics := observability.NewMetrics()

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("failed to connect to postgres", "error", err)
	}
	defer pg.Close()
	if err := pg.AutoMigrateAll(); err != nil {
		log.Fatal("failed to run migrations", "error", err)
	}
	gdb := pg.DB()

	// Repos
	tenantRepo := repos.NewTenantRepo(gdb, log)
	branchRepo := repos.NewBranchRepo(gdb, log)
	userRepo := repos.NewUserRepo(gdb, log)
	userBranchRepo := repos.NewUserBranchRepo(gdb, log)
	roleRepo := repos.NewRoleRepo(gdb, log)
	userRoleRepo := repos.NewUserRoleRepo(gdb, log)

	courseRepo := repos.NewCourseRepo(gdb, log)
	moduleRepo := repos.NewCourseModuleRepo(gdb, log)
	lessonRepo := repos.NewLessonRepo(gdb, log)
	pathRepo := repos.NewLearningPathRepo(gdb, log)
	pathCourseRepo := repos.NewLearningPathCourseRepo(gdb, log)
	resourceRepo := repos.NewResourceRepo(gdb, log)
	sopRepo := repos.NewSOPRepo(gdb, log)
	sopVersionRepo := repos.NewSOPVersionRepo(gdb, log)
	checklistTemplateRepo := repos.NewChecklistTemplateRepo(gdb, log)
	checklistItemRepo := repos.NewChecklistItemRepo(gdb, log)
	quizRepo := repos.NewQuizRepo(gdb, log)
	questionRepo := repos.NewQuestionRepo(gdb, log)
	choiceRepo := repos.NewChoiceRepo(gdb, log)

	enrollmentRepo := repos.NewEnrollmentRepo(gdb, log)
	assignmentRepo := repos.NewAssignmentRepo(gdb, log)
	lessonProgressRepo := repos.NewLessonProgressRepo(gdb, log)
	quizAttemptRepo := repos.NewQuizAttemptRepo(gdb, log)
	quizAnswerRepo := repos.NewQuizAnswerRepo(gdb, log)
	checklistRunRepo := repos.NewChecklistRunRepo(gdb, log)
	checklistItemResultRepo := repos.NewChecklistItemResultRepo(gdb, log)
	certificateRepo := repos.NewCertificateRepo(gdb, log)

	// Aggregates
	base := aggregates.BaseDeps{
		DB:    gdb,
		Log:   log,
		Hooks: aggregates.NewMetricsHooks(metrics),
	}
	membershipAgg := aggregates.NewMembershipAggregate(aggregates.MembershipAggregateDeps{
		Base:         base,
		Tenants:      tenantRepo,
		Users:        userRepo,
		Branches:     branchRepo,
		UserBranches: userBranchRepo,
		Roles:        roleRepo,
		UserRoles:    userRoleRepo,
	})
	contentAgg := aggregates.NewContentAggregate(aggregates.ContentAggregateDeps{
		Base:        base,
		Courses:     courseRepo,
		Modules:     moduleRepo,
		Lessons:     lessonRepo,
		Paths:       pathRepo,
		PathCourses: pathCourseRepo,
		Branches:    branchRepo,
		SOPs:        sopRepo,
		Checklists:  checklistTemplateRepo,
		Quizzes:     quizRepo,
	})
	sopAgg := aggregates.NewSOPAggregate(aggregates.SOPAggregateDeps{
		Base:     base,
		SOPs:     sopRepo,
		Versions: sopVersionRepo,
	})
	checklistAgg := aggregates.NewChecklistAggregate(aggregates.ChecklistAggregateDeps{
		Base:      base,
		Templates: checklistTemplateRepo,
		Items:     checklistItemRepo,
		Runs:      checklistRunRepo,
		Results:   checklistItemResultRepo,
		Users:     userRepo,
		Branches:  branchRepo,
	})
	quizAgg := aggregates.NewQuizAggregate(aggregates.QuizAggregateDeps{
		Base:      base,
		Quizzes:   quizRepo,
		Questions: questionRepo,
		Choices:   choiceRepo,
		Attempts:  quizAttemptRepo,
		Answers:   quizAnswerRepo,
		Users:     userRepo,
	})
	enrollmentAgg := aggregates.NewEnrollmentAggregate(aggregates.EnrollmentAggregateDeps{
		Base:        base,
		Enrollments: enrollmentRepo,
		Progress:    lessonProgressRepo,
		Users:       userRepo,
		Courses:     courseRepo,
		Paths:       pathRepo,
		Lessons:     lessonRepo,
	})
	assignmentAgg := aggregates.NewAssignmentAggregate(aggregates.AssignmentAggregateDeps{
		Base:        base,
		Assignments: assignmentRepo,
		Courses:     courseRepo,
		Paths:       pathRepo,
		Users:       userRepo,
		Branches:    branchRepo,
		Roles:       roleRepo,
	})
	certificateAgg := aggregates.NewCertificateAggregate(aggregates.CertificateAggregateDeps{
		Base:         base,
		Certificates: certificateRepo,
		Users:        userRepo,
		Courses:      courseRepo,
		Paths:        pathRepo,
	})

	// Services
	jwtSecret := envutil.String("JWT_SECRET_KEY", "")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET_KEY is required")
	}
	accessTTL := envutil.Duration("ACCESS_TOKEN_TTL", 24*time.Hour)

	authService := services.NewAuthService(gdb, log, userRepo, membershipAgg, jwtSecret, accessTTL)
	tenancyService := services.NewTenancyService(gdb, log, tenantRepo, branchRepo, roleRepo, userRepo, membershipAgg)
	contentService := services.NewContentService(gdb, log, courseRepo, moduleRepo, lessonRepo, pathRepo, pathCourseRepo, resourceRepo, contentAgg)
	sopService := services.NewSOPService(gdb, log, sopRepo, sopVersionRepo, sopAgg)
	checklistService := services.NewChecklistService(gdb, log, checklistTemplateRepo, checklistItemRepo, checklistRunRepo, checklistItemResultRepo, checklistAgg)
	quizService := services.NewQuizService(gdb, log, quizRepo, questionRepo, choiceRepo, quizAttemptRepo, quizAgg)
	progressService := services.NewProgressService(gdb, log, enrollmentRepo, moduleRepo, lessonRepo, lessonProgressRepo, enrollmentAgg)
	assignmentService := services.NewAssignmentService(gdb, log, assignmentRepo, userBranchRepo, userRoleRepo, assignmentAgg)
	certificateService := services.NewCertificateService(gdb, log, certificateRepo, certificateAgg)

	// First tenant-admin account; without it the admin API is unreachable
	// on a fresh database.
	if err := services.EnsureInitialAdmin(ctx, log, tenantRepo, userRepo, membershipAgg, services.InitialAdminConfig{
		Username:   envutil.String("ADMIN_USERNAME", ""),
		Email:      envutil.String("ADMIN_EMAIL", ""),
		Password:   envutil.String("ADMIN_PASSWORD", ""),
		TenantName: envutil.String("ADMIN_TENANT_NAME", "Platform"),
		TenantSlug: envutil.String("ADMIN_TENANT_SLUG", "platform"),
	}); err != nil {
		log.Fatal("Failed to seed initial admin", "error", err)
	}

	// HTTP
	server := apphttp.NewServer(apphttp.RouterConfig{
		Log:                log,
		Metrics:            metrics,
		AuthMiddleware:     middleware.NewAuthMiddleware(log, authService),
		HealthHandler:      handlers.NewHealthHandler(gdb),
		AuthHandler:        handlers.NewAuthHandler(log, authService),
		TenancyHandler:     handlers.NewTenancyHandler(log, tenancyService),
		ContentHandler:     handlers.NewContentHandler(log, contentService),
		SOPHandler:         handlers.NewSOPHandler(log, sopService),
		ChecklistHandler:   handlers.NewChecklistHandler(log, checklistService),
		QuizHandler:        handlers.NewQuizHandler(log, quizService),
		ProgressHandler:    handlers.NewProgressHandler(log, progressService),
		AssignmentHandler:  handlers.NewAssignmentHandler(log, assignmentService),
		CertificateHandler: handlers.NewCertificateHandler(log, certificateService),
	})

	addr := fmt.Sprintf(":%s", envutil.String("PORT", "8080"))
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting HTTP server", "addr", addr)
		errCh <- server.Run(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal("server exited", "error", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	}
}
