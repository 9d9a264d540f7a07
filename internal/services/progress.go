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

// CourseProgress summarizes a learner's position in one course.
type CourseProgress struct {
	CourseID         uuid.UUID
	TotalLessons     int
	CompletedLessons int
	Percent          int
}

type ProgressService interface {
	Enroll(ctx context.Context, in domainagg.EnrollInput) (domainagg.EnrollResult, error)
	CompleteEnrollment(ctx context.Context, in domainagg.CompleteEnrollmentInput) (domainagg.CompleteEnrollmentResult, error)
	ListEnrollments(ctx context.Context, userID uuid.UUID) ([]*types.Enrollment, error)

	RecordLessonProgress(ctx context.Context, in domainagg.RecordLessonProgressInput) (domainagg.RecordLessonProgressResult, error)
	GetCourseProgress(ctx context.Context, userID, courseID uuid.UUID) (*CourseProgress, error)
}

type progressService struct {
	db          *gorm.DB
	log         *logger.Logger
	enrollments repos.EnrollmentRepo
	modules     repos.CourseModuleRepo
	lessons     repos.LessonRepo
	records     repos.LessonProgressRepo
	agg         domainagg.EnrollmentAggregate
}

func NewProgressService(
	db *gorm.DB,
	log *logger.Logger,
	enrollments repos.EnrollmentRepo,
	modules repos.CourseModuleRepo,
	lessons repos.LessonRepo,
	records repos.LessonProgressRepo,
	agg domainagg.EnrollmentAggregate,
) ProgressService {
	return &progressService{
		db:          db,
		log:         log.With("service", "ProgressService"),
		enrollments: enrollments,
		modules:     modules,
		lessons:     lessons,
		records:     records,
		agg:         agg,
	}
}

func (s *progressService) Enroll(ctx context.Context, in domainagg.EnrollInput) (domainagg.EnrollResult, error) {
	return s.agg.Enroll(ctx, in)
}

func (s *progressService) CompleteEnrollment(ctx context.Context, in domainagg.CompleteEnrollmentInput) (domainagg.CompleteEnrollmentResult, error) {
	return s.agg.CompleteEnrollment(ctx, in)
}

func (s *progressService) ListEnrollments(ctx context.Context, userID uuid.UUID) ([]*types.Enrollment, error) {
	enrollments, err := s.enrollments.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, nil
}

func (s *progressService) RecordLessonProgress(ctx context.Context, in domainagg.RecordLessonProgressInput) (domainagg.RecordLessonProgressResult, error) {
	return s.agg.RecordLessonProgress(ctx, in)
}

func (s *progressService) GetCourseProgress(ctx context.Context, userID, courseID uuid.UUID) (*CourseProgress, error) {
	modules, err := s.modules.GetByCourseID(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("load modules: %w", err)
	}
	var lessonIDs []uuid.UUID
	for _, m := range modules {
		lessons, err := s.lessons.GetByModuleID(ctx, nil, m.ID)
		if err != nil {
			return nil, fmt.Errorf("load lessons: %w", err)
		}
		for _, l := range lessons {
			lessonIDs = append(lessonIDs, l.ID)
		}
	}
	progress := &CourseProgress{CourseID: courseID, TotalLessons: len(lessonIDs)}
	if len(lessonIDs) == 0 {
		return progress, nil
	}
	completed, err := s.records.CountCompletedByUserAndLessonIDs(ctx, nil, userID, lessonIDs)
	if err != nil {
		return nil, fmt.Errorf("count completed lessons: %w", err)
	}
	progress.CompletedLessons = int(completed)
	progress.Percent = progress.CompletedLessons * 100 / progress.TotalLessons
	return progress, nil
}
