package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/crewlearn/crewlearn-backend/internal/http/handlers"
	"github.com/crewlearn/crewlearn-backend/internal/http/middleware"
	"github.com/crewlearn/crewlearn-backend/internal/observability"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log     *logger.Logger
	Metrics *observability.Metrics

	AuthMiddleware *middleware.AuthMiddleware

	HealthHandler      *handlers.HealthHandler
	AuthHandler        *handlers.AuthHandler
	TenancyHandler     *handlers.TenancyHandler
	ContentHandler     *handlers.ContentHandler
	SOPHandler         *handlers.SOPHandler
	ChecklistHandler   *handlers.ChecklistHandler
	QuizHandler        *handlers.QuizHandler
	ProgressHandler    *handlers.ProgressHandler
	AssignmentHandler  *handlers.AssignmentHandler
	CertificateHandler *handlers.CertificateHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(otelgin.Middleware("crewlearn-backend"))
	router.Use(middleware.AttachTraceContext())
	router.Use(middleware.Metrics(cfg.Metrics))
	router.Use(middleware.RequestLogger(cfg.Log))

	if cfg.HealthHandler != nil {
		router.GET("/healthz", cfg.HealthHandler.Check)
	}
	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Metrics.Registry(), promhttp.HandlerOpts{})))
	}

	api := router.Group("/api/v1")

	if cfg.AuthHandler != nil {
		api.POST("/auth/register", cfg.AuthHandler.Register)
		api.POST("/auth/login", cfg.AuthHandler.Login)
	}
	if cfg.CertificateHandler != nil {
		api.GET("/certificates/verify/:code", cfg.CertificateHandler.Verify)
	}

	if cfg.AuthMiddleware == nil {
		return router
	}

	protected := api.Group("")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	admin := protected.Group("")
	admin.Use(cfg.AuthMiddleware.RequireTenantAdmin())

	if cfg.TenancyHandler != nil {
		admin.POST("/tenants", cfg.TenancyHandler.CreateTenant)
		admin.GET("/tenants", cfg.TenancyHandler.ListTenants)
		protected.GET("/tenants/:id", cfg.TenancyHandler.GetTenant)

		admin.POST("/branches", cfg.TenancyHandler.CreateBranch)
		protected.GET("/branches", cfg.TenancyHandler.ListBranches)

		admin.POST("/roles", cfg.TenancyHandler.CreateRole)
		protected.GET("/roles", cfg.TenancyHandler.ListRoles)

		admin.GET("/users", cfg.TenancyHandler.ListUsers)
		protected.GET("/users/:id", cfg.TenancyHandler.GetUser)
		admin.POST("/users/:id/branches", cfg.TenancyHandler.AttachUserToBranch)
		admin.POST("/users/:id/roles", cfg.TenancyHandler.GrantRole)
		admin.DELETE("/users/:id/roles/:roleId", cfg.TenancyHandler.RevokeRole)
	}

	if cfg.ContentHandler != nil {
		admin.POST("/courses", cfg.ContentHandler.CreateCourse)
		protected.GET("/courses", cfg.ContentHandler.ListCourses)
		protected.GET("/courses/:id", cfg.ContentHandler.GetCourse)
		admin.PATCH("/courses/:id/status", cfg.ContentHandler.SetCourseStatus)
		admin.PUT("/courses/:id/branches", cfg.ContentHandler.SetCourseBranches)
		admin.POST("/courses/:id/modules", cfg.ContentHandler.AddModule)
		admin.POST("/modules/:id/lessons", cfg.ContentHandler.AddLesson)

		admin.POST("/paths", cfg.ContentHandler.CreatePath)
		protected.GET("/paths", cfg.ContentHandler.ListPaths)
		admin.POST("/paths/:id/courses", cfg.ContentHandler.AddCourseToPath)
		protected.GET("/paths/:id/courses", cfg.ContentHandler.ListPathCourses)

		admin.POST("/resources", cfg.ContentHandler.CreateResource)
		protected.GET("/resources", cfg.ContentHandler.ListResources)
	}

	if cfg.SOPHandler != nil {
		admin.POST("/sops", cfg.SOPHandler.Create)
		protected.GET("/sops", cfg.SOPHandler.List)
		admin.POST("/sops/:id/versions", cfg.SOPHandler.AddVersion)
		protected.GET("/sops/:id/versions", cfg.SOPHandler.ListVersions)
		admin.POST("/sops/:id/versions/:versionId/publish", cfg.SOPHandler.PublishVersion)
		protected.GET("/sops/:id/published", cfg.SOPHandler.GetPublished)
	}

	if cfg.ChecklistHandler != nil {
		admin.POST("/checklist-templates", cfg.ChecklistHandler.CreateTemplate)
		protected.GET("/checklist-templates", cfg.ChecklistHandler.ListTemplates)
		admin.POST("/checklist-templates/:id/items", cfg.ChecklistHandler.AddItem)
		protected.GET("/checklist-templates/:id/items", cfg.ChecklistHandler.ListItems)

		protected.POST("/checklist-templates/:id/runs", cfg.ChecklistHandler.StartRun)
		protected.GET("/checklist-runs", cfg.ChecklistHandler.ListRuns)
		protected.GET("/checklist-runs/:id", cfg.ChecklistHandler.GetRun)
		protected.POST("/checklist-runs/:id/results", cfg.ChecklistHandler.RecordItemResult)
		protected.POST("/checklist-runs/:id/approve", cfg.ChecklistHandler.ApproveRun)
	}

	if cfg.QuizHandler != nil {
		admin.POST("/quizzes", cfg.QuizHandler.Create)
		protected.GET("/quizzes", cfg.QuizHandler.List)
		protected.GET("/quizzes/:id", cfg.QuizHandler.Get)
		admin.POST("/quizzes/:id/questions", cfg.QuizHandler.AddQuestion)
		admin.POST("/questions/:questionId/choices", cfg.QuizHandler.AddChoice)

		protected.POST("/quizzes/:id/attempts", cfg.QuizHandler.StartAttempt)
		protected.GET("/quizzes/:id/attempts", cfg.QuizHandler.ListMyAttempts)
		protected.POST("/attempts/:attemptId/submit", cfg.QuizHandler.SubmitAttempt)
	}

	if cfg.ProgressHandler != nil {
		protected.POST("/enrollments", cfg.ProgressHandler.Enroll)
		protected.GET("/enrollments", cfg.ProgressHandler.ListMyEnrollments)
		protected.POST("/enrollments/:id/complete", cfg.ProgressHandler.CompleteEnrollment)
		protected.PUT("/lessons/:id/progress", cfg.ProgressHandler.RecordLessonProgress)
		protected.GET("/courses/:id/progress", cfg.ProgressHandler.GetCourseProgress)
	}

	if cfg.AssignmentHandler != nil {
		admin.POST("/assignments", cfg.AssignmentHandler.Create)
		admin.GET("/assignments", cfg.AssignmentHandler.ListActive)
		admin.POST("/assignments/:id/deactivate", cfg.AssignmentHandler.Deactivate)
		protected.GET("/assignments/mine", cfg.AssignmentHandler.ListMine)
	}

	if cfg.CertificateHandler != nil {
		admin.POST("/certificates", cfg.CertificateHandler.Issue)
		protected.GET("/certificates/mine", cfg.CertificateHandler.ListMine)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "not found", "code": "not_found"}})
	})

	return router
}
