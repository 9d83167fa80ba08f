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

// ReportRepository handles stage report database operations
type ReportRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var reportColumns = []string{
	"id", "student_id", "course_id", "semester", "year", "content", "status", "period", "created_at",
}

func scanReport(row pgx.Row) (*models.Report, error) {
	report := &models.Report{}
	err := row.Scan(
		&report.ID, &report.StudentID, &report.CourseID, &report.Semester,
		&report.Year, &report.Content, &report.Status, &report.Period,
		&report.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// FindByNaturalKey looks up the record identified by
// (student, course, semester, year).
func (r *ReportRepository) FindByNaturalKey(ctx context.Context, studentID, courseID uuid.UUID, semester, year int) (*models.Report, error) {
	sql, args, err := r.sb.Select(reportColumns...).
		From("reports").
		Where(squirrel.Eq{
			"student_id": studentID,
			"course_id":  courseID,
			"semester":   semester,
			"year":       year,
		}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building find report SQL")
		return nil, fmt.Errorf("failed to build find report query: %w", err)
	}

	report, err := scanReport(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Msg("Error scanning report row")
		return nil, fmt.Errorf("error finding report record: %w", err)
	}

	return report, nil
}

// CreateReport inserts a new stage report
func (r *ReportRepository) CreateReport(ctx context.Context, report *models.Report) (uuid.UUID, error) {
	sql, args, err := r.sb.Insert("reports").
		Columns("id", "student_id", "course_id", "semester", "year", "content", "status", "period").
		Values(uuid.New(), report.StudentID, report.CourseID, report.Semester, report.Year, report.Content, report.Status, report.Period).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create report SQL")
		return uuid.Nil, fmt.Errorf("failed to build create report query: %w", err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create report query")
		return uuid.Nil, fmt.Errorf("error creating report record: %w", err)
	}

	return id, nil
}

// UpdateReport overwrites the content, status and period of an existing record
func (r *ReportRepository) UpdateReport(ctx context.Context, report *models.Report) error {
	sql, args, err := r.sb.Update("reports").
		SetMap(map[string]interface{}{
			"content": report.Content,
			"status":  report.Status,
			"period":  report.Period,
		}).
		Where(squirrel.Eq{"id": report.ID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update report SQL")
		return fmt.Errorf("failed to build update report query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("reportID", report.ID.String()).Msg("Error executing update report query")
		return fmt.Errorf("error updating report record: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}

// GetByStudent retrieves a student's reports, optionally limited to one
// course and year, newest first.
func (r *ReportRepository) GetByStudent(ctx context.Context, studentID uuid.UUID, courseID *uuid.UUID, year *int) ([]*models.Report, error) {
	builder := r.sb.Select(reportColumns...).
		From("reports").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("year DESC", "semester DESC")

	if courseID != nil {
		builder = builder.Where(squirrel.Eq{"course_id": *courseID})
	}
	if year != nil {
		builder = builder.Where(squirrel.Eq{"year": *year})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get reports SQL")
		return nil, fmt.Errorf("failed to build reports query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing report list query")
		return nil, fmt.Errorf("error querying report records: %w", err)
	}
	defer rows.Close()

	reports := []*models.Report{}
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning report row during list")
			return nil, fmt.Errorf("error scanning report row: %w", err)
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating report rows")
		return nil, fmt.Errorf("error iterating report rows: %w", err)
	}

	return reports, nil
}

// DeleteReport deletes a record by ID
func (r *ReportRepository) DeleteReport(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("reports").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete report SQL")
		return fmt.Errorf("failed to build delete report query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("reportID", id.String()).Msg("Error executing delete report query")
		return fmt.Errorf("error deleting report record: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}
