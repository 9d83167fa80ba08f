package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/englishclub/academy/internal/app/models"
	"github.com/englishclub/academy/internal/pkg/apperrors"
	"github.com/englishclub/academy/internal/pkg/logger"
)

// AttendanceRepository handles attendance database operations
type AttendanceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var attendanceColumns = []string{
	"id", "student_id", "course_id", "date", "status", "notes", "created_at",
}

func scanAttendance(row pgx.Row) (*models.Attendance, error) {
	record := &models.Attendance{}
	err := row.Scan(
		&record.ID, &record.StudentID, &record.CourseID, &record.Date,
		&record.Status, &record.Notes, &record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// FindByNaturalKey looks up the record identified by
// (student, course, date). Returns apperrors.ErrResourceNotFound when
// no record exists for the triple.
func (r *AttendanceRepository) FindByNaturalKey(ctx context.Context, studentID, courseID uuid.UUID, date time.Time) (*models.Attendance, error) {
	sql, args, err := r.sb.Select(attendanceColumns...).
		From("attendance").
		Where(squirrel.Eq{
			"student_id": studentID,
			"course_id":  courseID,
			"date":       date,
		}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building find attendance SQL")
		return nil, fmt.Errorf("failed to build find attendance query: %w", err)
	}

	record, err := scanAttendance(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Msg("Error scanning attendance row")
		return nil, fmt.Errorf("error finding attendance record: %w", err)
	}

	return record, nil
}

// CreateAttendance inserts a new attendance record
func (r *AttendanceRepository) CreateAttendance(ctx context.Context, record *models.Attendance) (uuid.UUID, error) {
	sql, args, err := r.sb.Insert("attendance").
		Columns("id", "student_id", "course_id", "date", "status", "notes").
		Values(uuid.New(), record.StudentID, record.CourseID, record.Date, record.Status, record.Notes).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create attendance SQL")
		return uuid.Nil, fmt.Errorf("failed to build create attendance query: %w", err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create attendance query")
		return uuid.Nil, fmt.Errorf("error creating attendance record: %w", err)
	}

	return id, nil
}

// UpdateAttendance overwrites the status and notes of an existing record
func (r *AttendanceRepository) UpdateAttendance(ctx context.Context, record *models.Attendance) error {
	sql, args, err := r.sb.Update("attendance").
		SetMap(map[string]interface{}{
			"status": record.Status,
			"notes":  record.Notes,
		}).
		Where(squirrel.Eq{"id": record.ID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update attendance SQL")
		return fmt.Errorf("failed to build update attendance query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("attendanceID", record.ID.String()).Msg("Error executing update attendance query")
		return fmt.Errorf("error updating attendance record: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}

// GetByCourseAndDate retrieves every mark of one course on one date
func (r *AttendanceRepository) GetByCourseAndDate(ctx context.Context, courseID uuid.UUID, date time.Time) ([]*models.Attendance, error) {
	sql, args, err := r.sb.Select(attendanceColumns...).
		From("attendance").
		Where(squirrel.Eq{"course_id": courseID, "date": date}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get attendance by course/date SQL")
		return nil, fmt.Errorf("failed to build attendance list query: %w", err)
	}

	return r.queryList(ctx, sql, args)
}

// GetByStudent retrieves a student's full attendance history,
// optionally limited to one course.
func (r *AttendanceRepository) GetByStudent(ctx context.Context, studentID uuid.UUID, courseID *uuid.UUID) ([]*models.Attendance, error) {
	builder := r.sb.Select(attendanceColumns...).
		From("attendance").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("date ASC")

	if courseID != nil {
		builder = builder.Where(squirrel.Eq{"course_id": *courseID})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get attendance by student SQL")
		return nil, fmt.Errorf("failed to build attendance history query: %w", err)
	}

	return r.queryList(ctx, sql, args)
}

func (r *AttendanceRepository) queryList(ctx context.Context, sql string, args []interface{}) ([]*models.Attendance, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing attendance list query")
		return nil, fmt.Errorf("error querying attendance records: %w", err)
	}
	defer rows.Close()

	records := []*models.Attendance{}
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning attendance row during list")
			return nil, fmt.Errorf("error scanning attendance row: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating attendance rows")
		return nil, fmt.Errorf("error iterating attendance rows: %w", err)
	}

	return records, nil
}

// DeleteAttendance deletes a record by ID
func (r *AttendanceRepository) DeleteAttendance(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("attendance").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete attendance SQL")
		return fmt.Errorf("failed to build delete attendance query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("attendanceID", id.String()).Msg("Error executing delete attendance query")
		return fmt.Errorf("error deleting attendance record: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}
