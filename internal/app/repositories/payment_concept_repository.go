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

// ErrPaymentConceptAlreadyExists is returned when a concept with the same name exists.
var ErrPaymentConceptAlreadyExists = errors.New("payment concept with this name already exists")

// PaymentConceptRepository handles charge template database operations
type PaymentConceptRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPaymentConceptRepository creates a new PaymentConceptRepository
func NewPaymentConceptRepository(db *pgxpool.Pool) *PaymentConceptRepository {
	return &PaymentConceptRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var paymentConceptColumns = []string{
	"id", "name", "description", "default_amount", "is_recurring", "is_active", "created_at",
}

func scanPaymentConcept(row pgx.Row) (*models.PaymentConcept, error) {
	concept := &models.PaymentConcept{}
	err := row.Scan(
		&concept.ID, &concept.Name, &concept.Description, &concept.DefaultAmount,
		&concept.IsRecurring, &concept.IsActive, &concept.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return concept, nil
}

// CreatePaymentConcept creates a new charge template
func (r *PaymentConceptRepository) CreatePaymentConcept(ctx context.Context, concept *models.PaymentConcept) (uuid.UUID, error) {
	sql, args, err := r.sb.Insert("payment_concepts").
		Columns("id", "name", "description", "default_amount", "is_recurring", "is_active").
		Values(uuid.New(), concept.Name, concept.Description, concept.DefaultAmount, concept.IsRecurring, concept.IsActive).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create payment concept SQL")
		return uuid.Nil, fmt.Errorf("failed to build create payment concept query: %w", err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if isDuplicateKeyError(err) {
			return uuid.Nil, ErrPaymentConceptAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create payment concept query")
		return uuid.Nil, fmt.Errorf("error creating payment concept: %w", err)
	}

	return id, nil
}

// GetPaymentConceptByID retrieves a charge template by ID
func (r *PaymentConceptRepository) GetPaymentConceptByID(ctx context.Context, id uuid.UUID) (*models.PaymentConcept, error) {
	sql, args, err := r.sb.Select(paymentConceptColumns...).
		From("payment_concepts").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get payment concept SQL")
		return nil, fmt.Errorf("failed to build get payment concept query: %w", err)
	}

	concept, err := scanPaymentConcept(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPaymentConceptNotFound
		}
		logger.Error().Err(err).Str("conceptID", id.String()).Msg("Error scanning payment concept row")
		return nil, fmt.Errorf("error getting payment concept by ID: %w", err)
	}

	return concept, nil
}

// GetAllPaymentConcepts retrieves charge templates, optionally only active ones
func (r *PaymentConceptRepository) GetAllPaymentConcepts(ctx context.Context, activeOnly bool) ([]*models.PaymentConcept, error) {
	builder := r.sb.Select(paymentConceptColumns...).
		From("payment_concepts").
		OrderBy("name ASC")

	if activeOnly {
		builder = builder.Where(squirrel.Eq{"is_active": true})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all payment concepts SQL")
		return nil, fmt.Errorf("failed to build get all payment concepts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all payment concepts query")
		return nil, fmt.Errorf("error querying payment concepts: %w", err)
	}
	defer rows.Close()

	concepts := []*models.PaymentConcept{}
	for rows.Next() {
		concept, err := scanPaymentConcept(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning payment concept row during get all")
			return nil, fmt.Errorf("error scanning payment concept row: %w", err)
		}
		concepts = append(concepts, concept)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating payment concept rows")
		return nil, fmt.Errorf("error iterating payment concept rows: %w", err)
	}

	return concepts, nil
}

// UpdatePaymentConcept updates an existing charge template
func (r *PaymentConceptRepository) UpdatePaymentConcept(ctx context.Context, concept *models.PaymentConcept) error {
	sql, args, err := r.sb.Update("payment_concepts").
		SetMap(map[string]interface{}{
			"name":           concept.Name,
			"description":    concept.Description,
			"default_amount": concept.DefaultAmount,
			"is_recurring":   concept.IsRecurring,
			"is_active":      concept.IsActive,
		}).
		Where(squirrel.Eq{"id": concept.ID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update payment concept SQL")
		return fmt.Errorf("failed to build update payment concept query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrPaymentConceptAlreadyExists
		}
		logger.Error().Err(err).Str("conceptID", concept.ID.String()).Msg("Error executing update payment concept query")
		return fmt.Errorf("error updating payment concept: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPaymentConceptNotFound
	}

	return nil
}

// DeletePaymentConcept deletes a charge template by ID. Existing
// payments keep their recorded amount, only the template goes away.
func (r *PaymentConceptRepository) DeletePaymentConcept(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("payment_concepts").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete payment concept SQL")
		return fmt.Errorf("failed to build delete payment concept query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("conceptID", id.String()).Msg("Error executing delete payment concept query")
		return fmt.Errorf("error deleting payment concept: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPaymentConceptNotFound
	}

	return nil
}
