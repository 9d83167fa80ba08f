package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/englishclub/academy/internal/app/models"
	"github.com/englishclub/academy/internal/app/repositories"
	"github.com/englishclub/academy/internal/app/stats"
	"github.com/englishclub/academy/internal/pkg/apperrors"
)

// StudentStore is the persistence surface the student service needs
type StudentStore interface {
	CreateStudent(ctx context.Context, student *models.Student) (uuid.UUID, error)
	GetStudentByID(ctx context.Context, id uuid.UUID) (*models.Student, error)
	GetStudents(ctx context.Context, filter repositories.StudentFilter) ([]*models.Student, error)
	UpdateStudent(ctx context.Context, student *models.Student) error
	DeleteStudent(ctx context.Context, id uuid.UUID) error
}

// PaymentReader supplies the payment rows standing is computed from
type PaymentReader interface {
	GetPayments(ctx context.Context, filter repositories.PaymentFilter) ([]*models.Payment, error)
}

// AttendanceReader supplies a student's attendance history
type AttendanceReader interface {
	GetByStudent(ctx context.Context, studentID uuid.UUID, courseID *uuid.UUID) ([]*models.Attendance, error)
}

// GradeReader supplies a student's grades in a course
type GradeReader interface {
	GetByStudentAndCourse(ctx context.Context, studentID, courseID uuid.UUID) ([]*models.Grade, error)
}

// StudentStanding bundles the derived columns of one roster row
type StudentStanding struct {
	PaymentStanding stats.PaymentStanding
	AttendanceRate  *int
	GradeAverage    *int
	GradeTrend      stats.Trend
}

// StudentService defines the interface for student-related operations
type StudentService interface {
	CreateStudent(ctx context.Context, student *models.Student) (*models.Student, error)
	GetStudentByID(ctx context.Context, id uuid.UUID) (*models.Student, error)
	GetStudents(ctx context.Context, filter repositories.StudentFilter) ([]*models.Student, error)
	UpdateStudent(ctx context.Context, student *models.Student) error
	DeleteStudent(ctx context.Context, id uuid.UUID) error
	GetStanding(ctx context.Context, student *models.Student) (*StudentStanding, error)
	GetPaymentStandings(ctx context.Context) (map[string]stats.PaymentStanding, error)
}

type studentServiceImpl struct {
	studentRepo    StudentStore
	courseRepo     CourseStore
	paymentRepo    PaymentReader
	attendanceRepo AttendanceReader
	gradeRepo      GradeReader
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo StudentStore, courseRepo CourseStore, paymentRepo PaymentReader, attendanceRepo AttendanceReader, gradeRepo GradeReader) StudentService {
	return &studentServiceImpl{
		studentRepo:    studentRepo,
		courseRepo:     courseRepo,
		paymentRepo:    paymentRepo,
		attendanceRepo: attendanceRepo,
		gradeRepo:      gradeRepo,
	}
}

func (s *studentServiceImpl) validateStudent(student *models.Student) error {
	if student == nil {
		return fmt.Errorf("%w: student is nil", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(student.FirstName) == "" {
		return fmt.Errorf("%w: firstName cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(student.LastName) == "" {
		return fmt.Errorf("%w: lastName cannot be empty", apperrors.ErrValidationFailed)
	}
	switch student.Status {
	case models.StudentActive, models.StudentInactive, models.StudentWithdrawn:
	case "":
		student.Status = models.StudentActive
	default:
		return fmt.Errorf("%w: unknown status %q", apperrors.ErrValidationFailed, student.Status)
	}
	return nil
}

// resolveCourse verifies the referenced course exists before the write
func (s *studentServiceImpl) resolveCourse(ctx context.Context, courseID *uuid.UUID) error {
	if courseID == nil {
		return nil
	}
	if _, err := s.courseRepo.GetCourseByID(ctx, *courseID); err != nil {
		return err
	}
	return nil
}

func (s *studentServiceImpl) CreateStudent(ctx context.Context, student *models.Student) (*models.Student, error) {
	if err := s.validateStudent(student); err != nil {
		return nil, err
	}
	if err := s.resolveCourse(ctx, student.CourseID); err != nil {
		return nil, err
	}

	id, err := s.studentRepo.CreateStudent(ctx, student)
	if err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	return s.studentRepo.GetStudentByID(ctx, id)
}

func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	return s.studentRepo.GetStudentByID(ctx, id)
}

func (s *studentServiceImpl) GetStudents(ctx context.Context, filter repositories.StudentFilter) ([]*models.Student, error) {
	return s.studentRepo.GetStudents(ctx, filter)
}

func (s *studentServiceImpl) UpdateStudent(ctx context.Context, student *models.Student) error {
	if err := s.validateStudent(student); err != nil {
		return err
	}
	if student.ID == uuid.Nil {
		return fmt.Errorf("%w: student id is required", apperrors.ErrValidationFailed)
	}
	if err := s.resolveCourse(ctx, student.CourseID); err != nil {
		return err
	}

	return s.studentRepo.UpdateStudent(ctx, student)
}

// DeleteStudent removes the student together with their attendance,
// grades, reports and payments.
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id uuid.UUID) error {
	if _, err := s.studentRepo.GetStudentByID(ctx, id); err != nil {
		return err
	}
	return s.studentRepo.DeleteStudent(ctx, id)
}

// GetStanding computes the derived roster columns for one student.
// Students without payment, attendance or grade history get the
// documented no-data markers rather than zeros.
func (s *studentServiceImpl) GetStanding(ctx context.Context, student *models.Student) (*StudentStanding, error) {
	if student == nil {
		return nil, fmt.Errorf("%w: student is nil", apperrors.ErrValidationFailed)
	}

	payments, err := s.paymentRepo.GetPayments(ctx, repositories.PaymentFilter{StudentID: &student.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	standing := &StudentStanding{
		PaymentStanding: stats.ClassifyPayments(derefPayments(payments)),
		GradeTrend:      stats.TrendNone,
	}

	if student.CourseID == nil {
		// No course, so no attendance or grade context.
		return standing, nil
	}

	attendance, err := s.attendanceRepo.GetByStudent(ctx, student.ID, student.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance: %w", err)
	}
	if rate, ok := stats.AttendanceRate(derefAttendance(attendance)); ok {
		standing.AttendanceRate = &rate
	}

	grades, err := s.gradeRepo.GetByStudentAndCourse(ctx, student.ID, *student.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load grades: %w", err)
	}
	gradeValues := derefGrades(grades)
	if avg, ok := stats.GradeAverage(gradeValues); ok {
		standing.GradeAverage = &avg
	}
	standing.GradeTrend = stats.GradeTrend(gradeValues)

	return standing, nil
}

// GetPaymentStandings classifies every student with payment history,
// keyed by student ID. Students without any payments are absent from
// the map and read as no-history.
func (s *studentServiceImpl) GetPaymentStandings(ctx context.Context) (map[string]stats.PaymentStanding, error) {
	payments, err := s.paymentRepo.GetPayments(ctx, repositories.PaymentFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	return stats.ClassifyPaymentsByStudent(derefPayments(payments)), nil
}

func derefPayments(in []*models.Payment) []models.Payment {
	out := make([]models.Payment, 0, len(in))
	for _, p := range in {
		out = append(out, *p)
	}
	return out
}

func derefAttendance(in []*models.Attendance) []models.Attendance {
	out := make([]models.Attendance, 0, len(in))
	for _, a := range in {
		out = append(out, *a)
	}
	return out
}

func derefGrades(in []*models.Grade) []models.Grade {
	out := make([]models.Grade, 0, len(in))
	for _, g := range in {
		out = append(out, *g)
	}
	return out
}
