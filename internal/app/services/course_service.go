package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/englishclub/academy/internal/app/models"
	"github.com/englishclub/academy/internal/app/stats"
	"github.com/englishclub/academy/internal/pkg/apperrors"
)

// CourseStore is the persistence surface the course service needs
type CourseStore interface {
	CreateCourse(ctx context.Context, course *models.Course) (uuid.UUID, error)
	GetCourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	GetAllCourses(ctx context.Context) ([]*models.Course, error)
	UpdateCourse(ctx context.Context, course *models.Course) error
	HasEnrolledStudents(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteCourse(ctx context.Context, id uuid.UUID) error
}

// CourseService defines the interface for course-related operations
type CourseService interface {
	CreateCourse(ctx context.Context, course *models.Course) (*models.Course, error)
	GetCourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	GetAllCourses(ctx context.Context) ([]*models.Course, error)
	UpdateCourse(ctx context.Context, course *models.Course) error
	DeleteCourse(ctx context.Context, id uuid.UUID) error
	GetOccupancy(ctx context.Context) ([]stats.CourseOccupancy, error)
}

type courseServiceImpl struct {
	courseRepo CourseStore
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo CourseStore) CourseService {
	return &courseServiceImpl{courseRepo: courseRepo}
}

func (s *courseServiceImpl) validateCourse(course *models.Course) error {
	if course == nil {
		return fmt.Errorf("%w: course is nil", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(course.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(course.Level) == "" {
		return fmt.Errorf("%w: level cannot be empty", apperrors.ErrValidationFailed)
	}
	if course.MaxStudents <= 0 {
		return fmt.Errorf("%w: maxStudents must be positive", apperrors.ErrValidationFailed)
	}
	return nil
}

func (s *courseServiceImpl) CreateCourse(ctx context.Context, course *models.Course) (*models.Course, error) {
	if err := s.validateCourse(course); err != nil {
		return nil, err
	}

	id, err := s.courseRepo.CreateCourse(ctx, course)
	if err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	return s.courseRepo.GetCourseByID(ctx, id)
}

func (s *courseServiceImpl) GetCourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	return s.courseRepo.GetCourseByID(ctx, id)
}

func (s *courseServiceImpl) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	return s.courseRepo.GetAllCourses(ctx)
}

func (s *courseServiceImpl) UpdateCourse(ctx context.Context, course *models.Course) error {
	if err := s.validateCourse(course); err != nil {
		return err
	}
	if course.ID == uuid.Nil {
		return fmt.Errorf("%w: course id is required", apperrors.ErrValidationFailed)
	}

	return s.courseRepo.UpdateCourse(ctx, course)
}

// DeleteCourse refuses to delete a course with an active roster. The
// roster check runs before anything is touched so a failed delete has
// no side effects.
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	hasStudents, err := s.courseRepo.HasEnrolledStudents(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check course roster: %w", err)
	}
	if hasStudents {
		return apperrors.ErrCourseHasStudents
	}

	return s.courseRepo.DeleteCourse(ctx, id)
}

// GetOccupancy computes roster fill per course. Percentages are not
// clamped, overbooked courses report over 100.
func (s *courseServiceImpl) GetOccupancy(ctx context.Context) ([]stats.CourseOccupancy, error) {
	courses, err := s.courseRepo.GetAllCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	occupancy := make([]stats.CourseOccupancy, 0, len(courses))
	for _, course := range courses {
		occupancy = append(occupancy, stats.CourseOccupancy{
			CourseID:      course.ID,
			CourseName:    course.Name,
			StudentsCount: course.StudentsCount,
			MaxStudents:   course.MaxStudents,
			Percent:       stats.Occupancy(course.StudentsCount, course.MaxStudents),
		})
	}

	return occupancy, nil
}
