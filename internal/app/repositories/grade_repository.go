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

// GradeRepository handles grade database operations
type GradeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewGradeRepository creates a new GradeRepository
func NewGradeRepository(db *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var gradeColumns = []string{
	"id", "student_id", "course_id", "exam_number", "score", "date", "notes", "created_at",
}

func scanGrade(row pgx.Row) (*models.Grade, error) {
	grade := &models.Grade{}
	err := row.Scan(
		&grade.ID, &grade.StudentID, &grade.CourseID, &grade.ExamNumber,
		&grade.Score, &grade.Date, &grade.Notes, &grade.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return grade, nil
}

// FindByNaturalKey looks up the record identified by
// (student, course, exam slot).
func (r *GradeRepository) FindByNaturalKey(ctx context.Context, studentID, courseID uuid.UUID, examNumber int) (*models.Grade, error) {
	sql, args, err := r.sb.Select(gradeColumns...).
		From("grades").
		Where(squirrel.Eq{
			"student_id":  studentID,
			"course_id":   courseID,
			"exam_number": examNumber,
		}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building find grade SQL")
		return nil, fmt.Errorf("failed to build find grade query: %w", err)
	}

	grade, err := scanGrade(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Msg("Error scanning grade row")
		return nil, fmt.Errorf("error finding grade record: %w", err)
	}

	return grade, nil
}

// CreateGrade inserts a new grade record
func (r *GradeRepository) CreateGrade(ctx context.Context, grade *models.Grade) (uuid.UUID, error) {
	sql, args, err := r.sb.Insert("grades").
		Columns("id", "student_id", "course_id", "exam_number", "score", "date", "notes").
		Values(uuid.New(), grade.StudentID, grade.CourseID, grade.ExamNumber, grade.Score, grade.Date, grade.Notes).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create grade SQL")
		return uuid.Nil, fmt.Errorf("failed to build create grade query: %w", err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create grade query")
		return uuid.Nil, fmt.Errorf("error creating grade record: %w", err)
	}

	return id, nil
}

// UpdateGrade overwrites the score, date and notes of an existing record
func (r *GradeRepository) UpdateGrade(ctx context.Context, grade *models.Grade) error {
	sql, args, err := r.sb.Update("grades").
		SetMap(map[string]interface{}{
			"score": grade.Score,
			"date":  grade.Date,
			"notes": grade.Notes,
		}).
		Where(squirrel.Eq{"id": grade.ID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update grade SQL")
		return fmt.Errorf("failed to build update grade query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("gradeID", grade.ID.String()).Msg("Error executing update grade query")
		return fmt.Errorf("error updating grade record: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}

// GetByStudentAndCourse retrieves a student's grades in one course,
// ordered by exam slot.
func (r *GradeRepository) GetByStudentAndCourse(ctx context.Context, studentID, courseID uuid.UUID) ([]*models.Grade, error) {
	sql, args, err := r.sb.Select(gradeColumns...).
		From("grades").
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID}).
		OrderBy("exam_number ASC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get grades SQL")
		return nil, fmt.Errorf("failed to build grades query: %w", err)
	}

	return r.queryList(ctx, sql, args)
}

// GetByCourse retrieves every grade in a course for the gradebook view
func (r *GradeRepository) GetByCourse(ctx context.Context, courseID uuid.UUID) ([]*models.Grade, error) {
	sql, args, err := r.sb.Select(gradeColumns...).
		From("grades").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("student_id ASC", "exam_number ASC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get course grades SQL")
		return nil, fmt.Errorf("failed to build course grades query: %w", err)
	}

	return r.queryList(ctx, sql, args)
}

func (r *GradeRepository) queryList(ctx context.Context, sql string, args []interface{}) ([]*models.Grade, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing grade list query")
		return nil, fmt.Errorf("error querying grade records: %w", err)
	}
	defer rows.Close()

	grades := []*models.Grade{}
	for rows.Next() {
		grade, err := scanGrade(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning grade row during list")
			return nil, fmt.Errorf("error scanning grade row: %w", err)
		}
		grades = append(grades, grade)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating grade rows")
		return nil, fmt.Errorf("error iterating grade rows: %w", err)
	}

	return grades, nil
}

// DeleteGrade deletes a record by ID
func (r *GradeRepository) DeleteGrade(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("grades").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete grade SQL")
		return fmt.Errorf("failed to build delete grade query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("gradeID", id.String()).Msg("Error executing delete grade query")
		return fmt.Errorf("error deleting grade record: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}
