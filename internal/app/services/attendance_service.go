package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/englishclub/academy/internal/app/models"
	"github.com/englishclub/academy/internal/pkg/apperrors"
	"github.com/englishclub/academy/internal/pkg/logger"
)

// bulkMarkConcurrency caps parallel upserts during roster marking.
const bulkMarkConcurrency = 8

// AttendanceStore is the persistence surface the attendance service needs
type AttendanceStore interface {
	FindByNaturalKey(ctx context.Context, studentID, courseID uuid.UUID, date time.Time) (*models.Attendance, error)
	CreateAttendance(ctx context.Context, record *models.Attendance) (uuid.UUID, error)
	UpdateAttendance(ctx context.Context, record *models.Attendance) error
	GetByCourseAndDate(ctx context.Context, courseID uuid.UUID, date time.Time) ([]*models.Attendance, error)
	GetByStudent(ctx context.Context, studentID uuid.UUID, courseID *uuid.UUID) ([]*models.Attendance, error)
	DeleteAttendance(ctx context.Context, id uuid.UUID) error
}

// AttendanceService defines the interface for attendance operations
type AttendanceService interface {
	UpsertAttendance(ctx context.Context, record *models.Attendance) (*models.Attendance, error)
	BulkMark(ctx context.Context, courseID uuid.UUID, date time.Time, marks []*models.Attendance) ([]*models.Attendance, error)
	GetByCourseAndDate(ctx context.Context, courseID uuid.UUID, date time.Time) ([]*models.Attendance, error)
	GetByStudent(ctx context.Context, studentID uuid.UUID, courseID *uuid.UUID) ([]*models.Attendance, error)
	DeleteAttendance(ctx context.Context, id uuid.UUID) error
}

type attendanceServiceImpl struct {
	attendanceRepo AttendanceStore
}

// NewAttendanceService creates a new attendance service instance
func NewAttendanceService(attendanceRepo AttendanceStore) AttendanceService {
	return &attendanceServiceImpl{attendanceRepo: attendanceRepo}
}

func (s *attendanceServiceImpl) validateRecord(record *models.Attendance) error {
	if record == nil {
		return fmt.Errorf("%w: attendance record is nil", apperrors.ErrValidationFailed)
	}
	if record.StudentID == uuid.Nil {
		return fmt.Errorf("%w: studentId is required", apperrors.ErrValidationFailed)
	}
	if record.CourseID == uuid.Nil {
		return fmt.Errorf("%w: courseId is required", apperrors.ErrValidationFailed)
	}
	if record.Date.IsZero() {
		return fmt.Errorf("%w: date is required", apperrors.ErrValidationFailed)
	}
	if !record.Status.Valid() {
		return fmt.Errorf("%w: unknown attendance status %q", apperrors.ErrValidationFailed, record.Status)
	}
	return nil
}

// UpsertAttendance writes the mark identified by
// (student, course, date). An existing record is overwritten in place,
// so marking the same day twice keeps exactly one row. The lookup and
// write are separate statements; concurrent marks of the same triple
// resolve last-write-wins.
func (s *attendanceServiceImpl) UpsertAttendance(ctx context.Context, record *models.Attendance) (*models.Attendance, error) {
	if err := s.validateRecord(record); err != nil {
		return nil, err
	}

	record.Date = truncateToDay(record.Date)

	existing, err := s.attendanceRepo.FindByNaturalKey(ctx, record.StudentID, record.CourseID, record.Date)
	if err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, fmt.Errorf("failed to look up attendance record: %w", err)
	}

	if existing != nil {
		existing.Status = record.Status
		existing.Notes = record.Notes
		if err := s.attendanceRepo.UpdateAttendance(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update attendance record: %w", err)
		}
		return existing, nil
	}

	id, err := s.attendanceRepo.CreateAttendance(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to create attendance record: %w", err)
	}
	record.ID = id
	return record, nil
}

// BulkMark upserts a whole roster for one date. Marks run concurrently;
// the first failure cancels the rest and is returned.
func (s *attendanceServiceImpl) BulkMark(ctx context.Context, courseID uuid.UUID, date time.Time, marks []*models.Attendance) ([]*models.Attendance, error) {
	if courseID == uuid.Nil {
		return nil, fmt.Errorf("%w: courseId is required", apperrors.ErrValidationFailed)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", apperrors.ErrValidationFailed)
	}

	date = truncateToDay(date)
	results := make([]*models.Attendance, len(marks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkMarkConcurrency)

	for i, mark := range marks {
		i, mark := i, mark
		g.Go(func() error {
			mark.CourseID = courseID
			mark.Date = date
			saved, err := s.UpsertAttendance(gctx, mark)
			if err != nil {
				return err
			}
			results[i] = saved
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("courseID", courseID.String()).
		Int("marks", len(marks)).
		Msg("Bulk attendance marking completed")

	return results, nil
}

func (s *attendanceServiceImpl) GetByCourseAndDate(ctx context.Context, courseID uuid.UUID, date time.Time) ([]*models.Attendance, error) {
	return s.attendanceRepo.GetByCourseAndDate(ctx, courseID, truncateToDay(date))
}

func (s *attendanceServiceImpl) GetByStudent(ctx context.Context, studentID uuid.UUID, courseID *uuid.UUID) ([]*models.Attendance, error) {
	return s.attendanceRepo.GetByStudent(ctx, studentID, courseID)
}

func (s *attendanceServiceImpl) DeleteAttendance(ctx context.Context, id uuid.UUID) error {
	return s.attendanceRepo.DeleteAttendance(ctx, id)
}

// truncateToDay drops the time-of-day component so every mark of the
// same calendar day hits the same natural key.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
