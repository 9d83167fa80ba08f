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
	"github.com/englishclub/academy/internal/pkg/apperrors"
	"github.com/englishclub/academy/internal/pkg/logger"
)

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// courseColumns selects course fields plus the derived roster size.
// students_count is always computed from the students table.
const courseStudentsCount = "(SELECT COUNT(*) FROM students s WHERE s.course_id = courses.id) AS students_count"

func scanCourse(row pgx.Row) (*models.Course, error) {
	course := &models.Course{}
	err := row.Scan(
		&course.ID, &course.Name, &course.Level, &course.Schedule,
		&course.MaxStudents, &course.TeacherID, &course.TeacherName,
		&course.CreatedAt, &course.StudentsCount,
	)
	if err != nil {
		return nil, err
	}
	return course, nil
}

// CreateCourse creates a new course
func (r *CourseRepository) CreateCourse(ctx context.Context, course *models.Course) (uuid.UUID, error) {
	sql, args, err := r.sb.Insert("courses").
		Columns("id", "name", "level", "schedule", "max_students", "teacher_id", "teacher_name").
		Values(uuid.New(), course.Name, course.Level, course.Schedule, course.MaxStudents, course.TeacherID, course.TeacherName).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return uuid.Nil, fmt.Errorf("failed to build create course query: %w", err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create course query")
		return uuid.Nil, fmt.Errorf("error creating course: %w", err)
	}

	return id, nil
}

// GetCourseByID retrieves a course by ID with its derived roster size
func (r *CourseRepository) GetCourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	sql, args, err := r.sb.Select(
		"id", "name", "level", "schedule", "max_students", "teacher_id", "teacher_name", "created_at",
		courseStudentsCount,
	).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get course by ID SQL")
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Str("courseID", id.String()).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}

	return course, nil
}

// GetAllCourses retrieves all courses ordered by name
func (r *CourseRepository) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := r.sb.Select(
		"id", "name", "level", "schedule", "max_students", "teacher_id", "teacher_name", "created_at",
		courseStudentsCount,
	).
		From("courses").
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get all courses SQL")
		return nil, fmt.Errorf("failed to build get all courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning course row during get all")
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating course rows")
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, nil
}

// UpdateCourse updates an existing course
func (r *CourseRepository) UpdateCourse(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Update("courses").
		SetMap(map[string]interface{}{
			"name":         course.Name,
			"level":        course.Level,
			"schedule":     course.Schedule,
			"max_students": course.MaxStudents,
			"teacher_id":   course.TeacherID,
			"teacher_name": course.TeacherName,
		}).
		Where(squirrel.Eq{"id": course.ID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update course SQL")
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("courseID", course.ID.String()).Msg("Error executing update course query")
		return fmt.Errorf("error updating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// HasEnrolledStudents reports whether any student is assigned to the course
func (r *CourseRepository) HasEnrolledStudents(ctx context.Context, id uuid.UUID) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("students").
		Where(squirrel.Eq{"course_id": id}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building check enrolled students SQL")
		return false, fmt.Errorf("failed to build check enrolled students query: %w", err)
	}

	var hasStudents bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&hasStudents)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Str("courseID", id.String()).Msg("Error checking enrolled students")
		return false, fmt.Errorf("error checking enrolled students: %w", err)
	}

	return hasStudents, nil
}

// DeleteCourse deletes a course by ID. The caller is expected to have
// verified the roster is empty; the check is repeated here so a direct
// repository call cannot orphan students.
func (r *CourseRepository) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	hasStudents, err := r.HasEnrolledStudents(ctx, id)
	if err != nil {
		return err
	}
	if hasStudents {
		return apperrors.ErrCourseHasStudents
	}

	sql, args, err := r.sb.Delete("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete course SQL")
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("courseID", id.String()).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}
