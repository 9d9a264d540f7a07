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

type CreateCourseInput struct {
	TenantID         uuid.UUID
	Title            string
	Description      string
	EstimatedMinutes int
}

type CreatePathInput struct {
	TenantID    uuid.UUID
	Title       string
	Description string
}

type CreateResourceInput struct {
	TenantID    uuid.UUID
	Title       string
	FileKey     string
	Description string
}

// CourseDetail bundles a course with its ordered modules and lessons.
type CourseDetail struct {
	Course  *types.Course
	Modules []ModuleDetail
}

type ModuleDetail struct {
	Module  *types.CourseModule
	Lessons []*types.Lesson
}

type ContentService interface {
	CreateCourse(ctx context.Context, in CreateCourseInput) (*types.Course, error)
	GetCourse(ctx context.Context, tenantID, courseID uuid.UUID) (*CourseDetail, error)
	ListCourses(ctx context.Context, tenantID uuid.UUID) ([]*types.Course, error)
	SetCourseStatus(ctx context.Context, tenantID, courseID uuid.UUID, status types.ContentStatus) error
	SetCourseBranches(ctx context.Context, in domainagg.SetCourseBranchesInput) error

	AddModule(ctx context.Context, in domainagg.AddModuleInput) (domainagg.AddModuleResult, error)
	AddLesson(ctx context.Context, in domainagg.AddLessonInput) (domainagg.AddLessonResult, error)

	CreatePath(ctx context.Context, in CreatePathInput) (*types.LearningPath, error)
	ListPaths(ctx context.Context, tenantID uuid.UUID) ([]*types.LearningPath, error)
	AddCourseToPath(ctx context.Context, in domainagg.AddCourseToPathInput) (domainagg.AddCourseToPathResult, error)
	ListPathCourses(ctx context.Context, tenantID, pathID uuid.UUID) ([]*types.LearningPathCourse, error)

	CreateResource(ctx context.Context, in CreateResourceInput) (*types.Resource, error)
	ListResources(ctx context.Context, tenantID uuid.UUID) ([]*types.Resource, error)
}

type contentService struct {
	db      *gorm.DB
	log     *logger.Logger
	courses repos.CourseRepo
	modules repos.CourseModuleRepo
	lessons repos.LessonRepo
	paths   repos.LearningPathRepo
	entries repos.LearningPathCourseRepo

	resources repos.ResourceRepo
	content   domainagg.ContentAggregate
}

func NewContentService(
	db *gorm.DB,
	log *logger.Logger,
	courses repos.CourseRepo,
	modules repos.CourseModuleRepo,
	lessons repos.LessonRepo,
	paths repos.LearningPathRepo,
	entries repos.LearningPathCourseRepo,
	resources repos.ResourceRepo,
	content domainagg.ContentAggregate,
) ContentService {
	return &contentService{
		db:        db,
		log:       log.With("service", "ContentService"),
		courses:   courses,
		modules:   modules,
		lessons:   lessons,
		paths:     paths,
		entries:   entries,
		resources: resources,
		content:   content,
	}
}

func (s *contentService) CreateCourse(ctx context.Context, in CreateCourseInput) (*types.Course, error) {
	const op = "Learning.CreateCourse"

	title := strings.TrimSpace(in.Title)
	if in.TenantID == uuid.Nil || title == "" {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "tenant_id and title are required", nil)
	}
	var created *types.Course
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		course, err := s.courses.Create(ctx, tx, &types.Course{
			TenantID:               in.TenantID,
			Title:                  title,
			Description:            in.Description,
			Status:                 types.ContentStatusDraft,
			AvailableToAllBranches: true,
			EstimatedMinutes:       in.EstimatedMinutes,
		})
		if err != nil {
			return err
		}
		created = course
		return nil
	})
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	return created, nil
}

func (s *contentService) GetCourse(ctx context.Context, tenantID, courseID uuid.UUID) (*CourseDetail, error) {
	const op = "Learning.GetCourse"

	course, err := s.courses.GetByID(ctx, nil, courseID)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	if course.TenantID != tenantID {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, "course not found", nil)
	}
	modules, err := s.modules.GetByCourseID(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("load modules: %w", err)
	}
	detail := &CourseDetail{Course: course, Modules: make([]ModuleDetail, 0, len(modules))}
	for _, m := range modules {
		lessons, err := s.lessons.GetByModuleID(ctx, nil, m.ID)
		if err != nil {
			return nil, fmt.Errorf("load lessons: %w", err)
		}
		detail.Modules = append(detail.Modules, ModuleDetail{Module: m, Lessons: lessons})
	}
	return detail, nil
}

func (s *contentService) ListCourses(ctx context.Context, tenantID uuid.UUID) ([]*types.Course, error) {
	courses, err := s.courses.GetByTenantID(ctx, nil, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

func (s *contentService) SetCourseStatus(ctx context.Context, tenantID, courseID uuid.UUID, status types.ContentStatus) error {
	const op = "Learning.SetCourseStatus"

	switch status {
	case types.ContentStatusDraft, types.ContentStatusPublished, types.ContentStatusArchived:
	default:
		return domainagg.NewError(domainagg.CodeValidation, op, "unknown status", nil)
	}
	course, err := s.courses.GetByID(ctx, nil, courseID)
	if err != nil {
		return dataagg.MapError(op, err)
	}
	if course.TenantID != tenantID {
		return domainagg.NewError(domainagg.CodeNotFound, op, "course not found", nil)
	}
	if err := s.courses.UpdateFields(ctx, nil, courseID, map[string]any{"status": status}); err != nil {
		return dataagg.MapError(op, err)
	}
	return nil
}

func (s *contentService) SetCourseBranches(ctx context.Context, in domainagg.SetCourseBranchesInput) error {
	return s.content.SetCourseBranches(ctx, in)
}

func (s *contentService) AddModule(ctx context.Context, in domainagg.AddModuleInput) (domainagg.AddModuleResult, error) {
	return s.content.AddModule(ctx, in)
}

func (s *contentService) AddLesson(ctx context.Context, in domainagg.AddLessonInput) (domainagg.AddLessonResult, error) {
	return s.content.AddLesson(ctx, in)
}

func (s *contentService) CreatePath(ctx context.Context, in CreatePathInput) (*types.LearningPath, error) {
	const op = "Learning.CreatePath"

	title := strings.TrimSpace(in.Title)
	if in.TenantID == uuid.Nil || title == "" {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "tenant_id and title are required", nil)
	}
	var created *types.LearningPath
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		path, err := s.paths.Create(ctx, tx, &types.LearningPath{
			TenantID:               in.TenantID,
			Title:                  title,
			Description:            in.Description,
			Status:                 types.ContentStatusDraft,
			AvailableToAllBranches: true,
		})
		if err != nil {
			return err
		}
		created = path
		return nil
	})
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	return created, nil
}

func (s *contentService) ListPaths(ctx context.Context, tenantID uuid.UUID) ([]*types.LearningPath, error) {
	paths, err := s.paths.GetByTenantID(ctx, nil, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list paths: %w", err)
	}
	return paths, nil
}

func (s *contentService) AddCourseToPath(ctx context.Context, in domainagg.AddCourseToPathInput) (domainagg.AddCourseToPathResult, error) {
	return s.content.AddCourseToPath(ctx, in)
}

func (s *contentService) ListPathCourses(ctx context.Context, tenantID, pathID uuid.UUID) ([]*types.LearningPathCourse, error) {
	const op = "Learning.ListPathCourses"

	path, err := s.paths.GetByID(ctx, nil, pathID)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	if path.TenantID != tenantID {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, "path not found", nil)
	}
	entries, err := s.entries.GetByPathID(ctx, nil, pathID)
	if err != nil {
		return nil, fmt.Errorf("list path courses: %w", err)
	}
	return entries, nil
}

func (s *contentService) CreateResource(ctx context.Context, in CreateResourceInput) (*types.Resource, error) {
	const op = "Learning.CreateResource"

	title := strings.TrimSpace(in.Title)
	fileKey := strings.TrimSpace(in.FileKey)
	if in.TenantID == uuid.Nil || title == "" || fileKey == "" {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "tenant_id, title, and file_key are required", nil)
	}
	var created *types.Resource
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		resource, err := s.resources.Create(ctx, tx, &types.Resource{
			TenantID:    in.TenantID,
			Title:       title,
			FileKey:     fileKey,
			Description: in.Description,
		})
		if err != nil {
			return err
		}
		created = resource
		return nil
	})
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	return created, nil
}

func (s *contentService) ListResources(ctx context.Context, tenantID uuid.UUID) ([]*types.Resource, error) {
	resources, err := s.resources.GetByTenantID(ctx, nil, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	return resources, nil
}
