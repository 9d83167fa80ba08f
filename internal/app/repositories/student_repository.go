package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/englishclub/academy/internal/app/models"
	"github.com/englishclub/academy/internal/db"
	"github.com/englishclub/academy/internal/pkg/apperrors"
	"github.com/englishclub/academy/internal/pkg/logger"
)

// StudentFilter narrows student list queries. Zero values mean no filter.
type StudentFilter struct {
	CourseID *uuid.UUID
	Status   models.StudentStatus
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var studentColumns = []string{
	"id", "first_name", "last_name", "birth_date", "course_id",
	"tutor_name", "tutor_phone", "tutor_email", "address",
	"status", "enrollment_date", "notes", "created_at",
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	student := &models.Student{}
	err := row.Scan(
		&student.ID, &student.FirstName, &student.LastName, &student.BirthDate,
		&student.CourseID, &student.TutorName, &student.TutorPhone, &student.TutorEmail,
		&student.Address, &student.Status, &student.EnrollmentDate, &student.Notes,
		&student.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return student, nil
}

// CreateStudent creates a new student
func (r *StudentRepository) CreateStudent(ctx context.Context, student *models.Student) (uuid.UUID, error) {
	sql, args, err := r.sb.Insert("students").
		Columns(
			"id", "first_name", "last_name", "birth_date", "course_id",
			"tutor_name", "tutor_phone", "tutor_email", "address",
			"status", "enrollment_date", "notes",
		).
		Values(
			uuid.New(), student.FirstName, student.LastName, student.BirthDate, student.CourseID,
			student.TutorName, student.TutorPhone, student.TutorEmail, student.Address,
			student.Status, student.EnrollmentDate, student.Notes,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return uuid.Nil, fmt.Errorf("failed to build create student query: %w", err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create student query")
		return uuid.Nil, fmt.Errorf("error creating student: %w", err)
	}

	return id, nil
}

// GetStudentByID retrieves a student by ID
func (r *StudentRepository) GetStudentByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get student by ID SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("studentID", id.String()).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}

	return student, nil
}

// GetStudents retrieves students matching the filter, ordered by last name
func (r *StudentRepository) GetStudents(ctx context.Context, filter StudentFilter) ([]*models.Student, error) {
	builder := r.sb.Select(studentColumns...).
		From("students").
		OrderBy("last_name ASC", "first_name ASC")

	if filter.CourseID != nil {
		builder = builder.Where(squirrel.Eq{"course_id": *filter.CourseID})
	}
	if filter.Status != "" {
		builder = builder.Where(squirrel.Eq{"status": filter.Status})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get students SQL")
		return nil, fmt.Errorf("failed to build get students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get students query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning student row during list")
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating student rows")
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}

// UpdateStudent updates an existing student
func (r *StudentRepository) UpdateStudent(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		SetMap(map[string]interface{}{
			"first_name":      student.FirstName,
			"last_name":       student.LastName,
			"birth_date":      student.BirthDate,
			"course_id":       student.CourseID,
			"tutor_name":      student.TutorName,
			"tutor_phone":     student.TutorPhone,
			"tutor_email":     student.TutorEmail,
			"address":         student.Address,
			"status":          student.Status,
			"enrollment_date": student.EnrollmentDate,
			"notes":           student.Notes,
		}).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update student SQL")
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("studentID", student.ID.String()).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// DeleteStudent removes a student and every dependent record
// (attendance, grades, reports, payments) in one transaction.
func (r *StudentRepository) DeleteStudent(ctx context.Context, id uuid.UUID) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		// Dependents first, the student row last.
		for _, table := range []string{"attendance", "grades", "reports", "payments"} {
			sql, args, err := r.sb.Delete(table).
				Where(squirrel.Eq{"student_id": id}).
				ToSql()
			if err != nil {
				logger.Error().Err(err).Str("table", table).Msg("Error building dependent delete SQL")
				return fmt.Errorf("failed to build %s delete query: %w", table, err)
			}
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				logger.Error().Err(err).Str("table", table).Str("studentID", id.String()).Msg("Error deleting dependent rows")
				return fmt.Errorf("error deleting %s rows: %w", table, err)
			}
		}

		sql, args, err := r.sb.Delete("students").
			Where(squirrel.Eq{"id": id}).
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building delete student SQL")
			return fmt.Errorf("failed to build delete student query: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			logger.Error().Err(err).Str("studentID", id.String()).Msg("Error executing delete student query")
			return fmt.Errorf("error deleting student: %w", err)
		}

		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrStudentNotFound
		}

		return nil
	})
}

// CountByStatus counts students per enrollment status
func (r *StudentRepository) CountByStatus(ctx context.Context) (total int, active int, err error) {
	sql, args, err := r.sb.Select(
		"COUNT(*)",
		fmt.Sprintf("COUNT(*) FILTER (WHERE status = '%s')", models.StudentActive),
	).
		From("students").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building count students SQL")
		return 0, 0, fmt.Errorf("failed to build count students query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total, &active); err != nil {
		logger.Error().Err(err).Msg("Error counting students")
		return 0, 0, fmt.Errorf("error counting students: %w", err)
	}

	return total, active, nil
}
