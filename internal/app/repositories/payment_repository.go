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

// PaymentFilter narrows payment list queries. Nil fields mean no filter.
type PaymentFilter struct {
	StudentID *uuid.UUID
	Month     *int
	Year      *int
	Status    models.PaymentStatus
}

// PaymentRepository handles payment database operations
type PaymentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var paymentColumns = []string{
	"id", "student_id", "concept_id", "month", "year", "amount",
	"status", "payment_date", "payment_method", "notes", "created_at",
}

func scanPayment(row pgx.Row) (*models.Payment, error) {
	payment := &models.Payment{}
	err := row.Scan(
		&payment.ID, &payment.StudentID, &payment.ConceptID, &payment.Month,
		&payment.Year, &payment.Amount, &payment.Status, &payment.PaymentDate,
		&payment.PaymentMethod, &payment.Notes, &payment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// FindByNaturalKey looks up the record identified by
// (student, month, year).
func (r *PaymentRepository) FindByNaturalKey(ctx context.Context, studentID uuid.UUID, month, year int) (*models.Payment, error) {
	sql, args, err := r.sb.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{
			"student_id": studentID,
			"month":      month,
			"year":       year,
		}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building find payment SQL")
		return nil, fmt.Errorf("failed to build find payment query: %w", err)
	}

	payment, err := scanPayment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Msg("Error scanning payment row")
		return nil, fmt.Errorf("error finding payment record: %w", err)
	}

	return payment, nil
}

// CreatePayment inserts a new payment record
func (r *PaymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) (uuid.UUID, error) {
	sql, args, err := r.sb.Insert("payments").
		Columns("id", "student_id", "concept_id", "month", "year", "amount", "status", "payment_date", "payment_method", "notes").
		Values(
			uuid.New(), payment.StudentID, payment.ConceptID, payment.Month, payment.Year,
			payment.Amount, payment.Status, payment.PaymentDate, payment.PaymentMethod, payment.Notes,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create payment SQL")
		return uuid.Nil, fmt.Errorf("failed to build create payment query: %w", err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create payment query")
		return uuid.Nil, fmt.Errorf("error creating payment record: %w", err)
	}

	return id, nil
}

// UpdatePayment overwrites the mutable fields of an existing record
func (r *PaymentRepository) UpdatePayment(ctx context.Context, payment *models.Payment) error {
	sql, args, err := r.sb.Update("payments").
		SetMap(map[string]interface{}{
			"concept_id":     payment.ConceptID,
			"amount":         payment.Amount,
			"status":         payment.Status,
			"payment_date":   payment.PaymentDate,
			"payment_method": payment.PaymentMethod,
			"notes":          payment.Notes,
		}).
		Where(squirrel.Eq{"id": payment.ID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update payment SQL")
		return fmt.Errorf("failed to build update payment query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("paymentID", payment.ID.String()).Msg("Error executing update payment query")
		return fmt.Errorf("error updating payment record: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPaymentNotFound
	}

	return nil
}

// GetPayments retrieves payments matching the filter, newest period first
func (r *PaymentRepository) GetPayments(ctx context.Context, filter PaymentFilter) ([]*models.Payment, error) {
	builder := r.sb.Select(paymentColumns...).
		From("payments").
		OrderBy("year DESC", "month DESC")

	if filter.StudentID != nil {
		builder = builder.Where(squirrel.Eq{"student_id": *filter.StudentID})
	}
	if filter.Month != nil {
		builder = builder.Where(squirrel.Eq{"month": *filter.Month})
	}
	if filter.Year != nil {
		builder = builder.Where(squirrel.Eq{"year": *filter.Year})
	}
	if filter.Status != "" {
		builder = builder.Where(squirrel.Eq{"status": filter.Status})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get payments SQL")
		return nil, fmt.Errorf("failed to build payments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing payment list query")
		return nil, fmt.Errorf("error querying payment records: %w", err)
	}
	defer rows.Close()

	payments := []*models.Payment{}
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning payment row during list")
			return nil, fmt.Errorf("error scanning payment row: %w", err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating payment rows")
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}

	return payments, nil
}

// PaymentTotals aggregates the dashboard counters in one query
type PaymentTotals struct {
	PendingCount     int
	OverdueCount     int
	CollectedAmount  float64
	OutstandingTotal float64
}

// GetTotals computes payment counters across all students
func (r *PaymentRepository) GetTotals(ctx context.Context) (*PaymentTotals, error) {
	sql, args, err := r.sb.Select(
		fmt.Sprintf("COUNT(*) FILTER (WHERE status = '%s')", models.PaymentPending),
		fmt.Sprintf("COUNT(*) FILTER (WHERE status = '%s')", models.PaymentOverdue),
		fmt.Sprintf("COALESCE(SUM(amount) FILTER (WHERE status = '%s'), 0)", models.PaymentPaid),
		fmt.Sprintf("COALESCE(SUM(amount) FILTER (WHERE status IN ('%s', '%s')), 0)", models.PaymentPending, models.PaymentOverdue),
	).
		From("payments").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building payment totals SQL")
		return nil, fmt.Errorf("failed to build payment totals query: %w", err)
	}

	totals := &PaymentTotals{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&totals.PendingCount, &totals.OverdueCount,
		&totals.CollectedAmount, &totals.OutstandingTotal,
	)
	if err != nil {
		logger.Error().Err(err).Msg("Error computing payment totals")
		return nil, fmt.Errorf("error computing payment totals: %w", err)
	}

	return totals, nil
}

// DeletePayment deletes a record by ID
func (r *PaymentRepository) DeletePayment(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("payments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete payment SQL")
		return fmt.Errorf("failed to build delete payment query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("paymentID", id.String()).Msg("Error executing delete payment query")
		return fmt.Errorf("error deleting payment record: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPaymentNotFound
	}

	return nil
}
