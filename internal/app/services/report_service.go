package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/englishclub/academy/internal/app/models"
	"github.com/englishclub/academy/internal/app/stats"
	"github.com/englishclub/academy/internal/pkg/apperrors"
)

// ReportStore is the persistence surface the report service needs
type ReportStore interface {
	FindByNaturalKey(ctx context.Context, studentID, courseID uuid.UUID, semester, year int) (*models.Report, error)
	CreateReport(ctx context.Context, report *models.Report) (uuid.UUID, error)
	UpdateReport(ctx context.Context, report *models.Report) error
	GetByStudent(ctx context.Context, studentID uuid.UUID, courseID *uuid.UUID, year *int) ([]*models.Report, error)
	DeleteReport(ctx context.Context, id uuid.UUID) error
}

// ReportService defines the interface for stage report operations
type ReportService interface {
	UpsertReport(ctx context.Context, report *models.Report) (*models.Report, error)
	GetByStudent(ctx context.Context, studentID uuid.UUID, courseID *uuid.UUID, year *int) ([]*models.Report, error)
	GetReportCard(ctx context.Context, studentID uuid.UUID, year int) (*stats.ReportCard, error)
	DeleteReport(ctx context.Context, id uuid.UUID) error
}

type reportServiceImpl struct {
	reportRepo     ReportStore
	studentRepo    StudentStore
	courseRepo     CourseStore
	gradeRepo      GradeReader
	attendanceRepo AttendanceReader
}

// NewReportService creates a new report service instance
func NewReportService(reportRepo ReportStore, studentRepo StudentStore, courseRepo CourseStore, gradeRepo GradeReader, attendanceRepo AttendanceReader) ReportService {
	return &reportServiceImpl{
		reportRepo:     reportRepo,
		studentRepo:    studentRepo,
		courseRepo:     courseRepo,
		gradeRepo:      gradeRepo,
		attendanceRepo: attendanceRepo,
	}
}

func (s *reportServiceImpl) validateReport(report *models.Report) error {
	if report == nil {
		return fmt.Errorf("%w: report is nil", apperrors.ErrValidationFailed)
	}
	if report.StudentID == uuid.Nil {
		return fmt.Errorf("%w: studentId is required", apperrors.ErrValidationFailed)
	}
	if report.CourseID == uuid.Nil {
		return fmt.Errorf("%w: courseId is required", apperrors.ErrValidationFailed)
	}
	if report.Semester != 1 && report.Semester != 2 {
		return fmt.Errorf("%w: semester must be 1 or 2", apperrors.ErrValidationFailed)
	}
	if report.Year <= 0 {
		return fmt.Errorf("%w: year is required", apperrors.ErrValidationFailed)
	}
	switch report.Status {
	case "":
		report.Status = models.ReportPending
	default:
		if !report.Status.Valid() {
			return fmt.Errorf("%w: unknown report status %q", apperrors.ErrValidationFailed, report.Status)
		}
	}
	return nil
}

// UpsertReport writes the stage report identified by
// (student, course, semester, year). Saving the same stage twice
// overwrites the earlier text, a student ends the year with at most two
// reports per course.
func (s *reportServiceImpl) UpsertReport(ctx context.Context, report *models.Report) (*models.Report, error) {
	if err := s.validateReport(report); err != nil {
		return nil, err
	}

	existing, err := s.reportRepo.FindByNaturalKey(ctx, report.StudentID, report.CourseID, report.Semester, report.Year)
	if err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, fmt.Errorf("failed to look up report record: %w", err)
	}

	if existing != nil {
		existing.Content = report.Content
		existing.Status = report.Status
		existing.Period = report.Period
		if err := s.reportRepo.UpdateReport(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update report record: %w", err)
		}
		return existing, nil
	}

	id, err := s.reportRepo.CreateReport(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("failed to create report record: %w", err)
	}
	report.ID = id
	return report, nil
}

func (s *reportServiceImpl) GetByStudent(ctx context.Context, studentID uuid.UUID, courseID *uuid.UUID, year *int) ([]*models.Report, error) {
	return s.reportRepo.GetByStudent(ctx, studentID, courseID, year)
}

// GetReportCard assembles a student's printable year summary. The
// student must be assigned to a course; the card covers that course
// only.
func (s *reportServiceImpl) GetReportCard(ctx context.Context, studentID uuid.UUID, year int) (*stats.ReportCard, error) {
	student, err := s.studentRepo.GetStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.CourseID == nil {
		return nil, apperrors.ErrStudentUnassigned
	}

	course, err := s.courseRepo.GetCourseByID(ctx, *student.CourseID)
	if err != nil {
		return nil, err
	}

	grades, err := s.gradeRepo.GetByStudentAndCourse(ctx, studentID, *student.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load grades: %w", err)
	}

	reports, err := s.reportRepo.GetByStudent(ctx, studentID, student.CourseID, &year)
	if err != nil {
		return nil, fmt.Errorf("failed to load reports: %w", err)
	}

	attendance, err := s.attendanceRepo.GetByStudent(ctx, studentID, student.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance: %w", err)
	}

	card := stats.BuildReportCard(
		student,
		course,
		derefGrades(grades),
		derefReports(reports),
		derefAttendance(attendance),
		year,
	)
	return &card, nil
}

func (s *reportServiceImpl) DeleteReport(ctx context.Context, id uuid.UUID) error {
	return s.reportRepo.DeleteReport(ctx, id)
}

func derefReports(in []*models.Report) []models.Report {
	out := make([]models.Report, 0, len(in))
	for _, r := range in {
		out = append(out, *r)
	}
	return out
}
