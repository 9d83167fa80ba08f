package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/englishclub/academy/internal/app/models"
	"github.com/englishclub/academy/internal/app/repositories"
	"github.com/englishclub/academy/internal/app/stats"
	"github.com/englishclub/academy/internal/pkg/apperrors"
	"github.com/englishclub/academy/internal/pkg/logger"
)

// GradeStore is the persistence surface the grade service needs
type GradeStore interface {
	FindByNaturalKey(ctx context.Context, studentID, courseID uuid.UUID, examNumber int) (*models.Grade, error)
	CreateGrade(ctx context.Context, grade *models.Grade) (uuid.UUID, error)
	UpdateGrade(ctx context.Context, grade *models.Grade) error
	GetByStudentAndCourse(ctx context.Context, studentID, courseID uuid.UUID) ([]*models.Grade, error)
	GetByCourse(ctx context.Context, courseID uuid.UUID) ([]*models.Grade, error)
	DeleteGrade(ctx context.Context, id uuid.UUID) error
}

// GradebookRow is one student's row in the course gradebook
type GradebookRow struct {
	StudentID   uuid.UUID
	StudentName string
	Scores      map[int]*int
	Average     *int
	Trend       stats.Trend
}

// GradeService defines the interface for grade operations
type GradeService interface {
	UpsertGrade(ctx context.Context, grade *models.Grade) (*models.Grade, error)
	GetByStudentAndCourse(ctx context.Context, studentID, courseID uuid.UUID) ([]*models.Grade, error)
	GetGradebook(ctx context.Context, courseID uuid.UUID) ([]GradebookRow, error)
	DeleteGrade(ctx context.Context, id uuid.UUID) error
}

type gradeServiceImpl struct {
	gradeRepo   GradeStore
	studentRepo StudentStore
}

// NewGradeService creates a new grade service instance
func NewGradeService(gradeRepo GradeStore, studentRepo StudentStore) GradeService {
	return &gradeServiceImpl{
		gradeRepo:   gradeRepo,
		studentRepo: studentRepo,
	}
}

func (s *gradeServiceImpl) validateGrade(grade *models.Grade) error {
	if grade == nil {
		return fmt.Errorf("%w: grade is nil", apperrors.ErrValidationFailed)
	}
	if grade.StudentID == uuid.Nil {
		return fmt.Errorf("%w: studentId is required", apperrors.ErrValidationFailed)
	}
	if grade.CourseID == uuid.Nil {
		return fmt.Errorf("%w: courseId is required", apperrors.ErrValidationFailed)
	}
	if grade.ExamNumber < models.ExamSlotMin || grade.ExamNumber > models.ExamSlotMax {
		return fmt.Errorf("%w: examNumber must be between %d and %d",
			apperrors.ErrValidationFailed, models.ExamSlotMin, models.ExamSlotMax)
	}
	if grade.Score != nil && (*grade.Score < models.ScoreMin || *grade.Score > models.ScoreMax) {
		return fmt.Errorf("%w: score must be between %d and %d",
			apperrors.ErrValidationFailed, models.ScoreMin, models.ScoreMax)
	}
	return nil
}

// UpsertGrade writes the score identified by
// (student, course, exam slot). Re-posting a slot overwrites it, a
// student never accumulates two rows for the same exam. A nil score is
// stored as-is and keeps the slot out of every average.
func (s *gradeServiceImpl) UpsertGrade(ctx context.Context, grade *models.Grade) (*models.Grade, error) {
	if err := s.validateGrade(grade); err != nil {
		return nil, err
	}

	existing, err := s.gradeRepo.FindByNaturalKey(ctx, grade.StudentID, grade.CourseID, grade.ExamNumber)
	if err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, fmt.Errorf("failed to look up grade record: %w", err)
	}

	if existing != nil {
		existing.Score = grade.Score
		existing.Date = grade.Date
		existing.Notes = grade.Notes
		if err := s.gradeRepo.UpdateGrade(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update grade record: %w", err)
		}
		return existing, nil
	}

	id, err := s.gradeRepo.CreateGrade(ctx, grade)
	if err != nil {
		return nil, fmt.Errorf("failed to create grade record: %w", err)
	}
	grade.ID = id
	return grade, nil
}

func (s *gradeServiceImpl) GetByStudentAndCourse(ctx context.Context, studentID, courseID uuid.UUID) ([]*models.Grade, error) {
	return s.gradeRepo.GetByStudentAndCourse(ctx, studentID, courseID)
}

// GetGradebook assembles the per-student score grid of one course.
// Ungraded slots are nil; averages cover the periodic slots only.
func (s *gradeServiceImpl) GetGradebook(ctx context.Context, courseID uuid.UUID) ([]GradebookRow, error) {
	grades, err := s.gradeRepo.GetByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load course grades: %w", err)
	}

	// One roster query covers every row, including students whose
	// grades outlived a course reassignment.
	students, err := s.studentRepo.GetStudents(ctx, repositories.StudentFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	names := make(map[uuid.UUID]string, len(students))
	for _, student := range students {
		names[student.ID] = student.FullName()
	}

	byStudent := make(map[uuid.UUID][]models.Grade)
	order := []uuid.UUID{}
	for _, g := range grades {
		if _, seen := byStudent[g.StudentID]; !seen {
			order = append(order, g.StudentID)
		}
		byStudent[g.StudentID] = append(byStudent[g.StudentID], *g)
	}

	rows := make([]GradebookRow, 0, len(order))
	for _, studentID := range order {
		studentGrades := byStudent[studentID]

		row := GradebookRow{
			StudentID: studentID,
			Scores:    make(map[int]*int, models.ExamSlotMax),
			Trend:     stats.GradeTrend(studentGrades),
		}
		for slot := models.ExamSlotMin; slot <= models.ExamSlotMax; slot++ {
			row.Scores[slot] = stats.ScoreForSlot(studentGrades, slot)
		}
		if avg, ok := stats.GradeAverage(studentGrades); ok {
			row.Average = &avg
		}

		if name, ok := names[studentID]; ok {
			row.StudentName = name
		} else {
			logger.Warn().Str("studentID", studentID.String()).Msg("Graded student missing from roster")
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func (s *gradeServiceImpl) DeleteGrade(ctx context.Context, id uuid.UUID) error {
	return s.gradeRepo.DeleteGrade(ctx, id)
}
