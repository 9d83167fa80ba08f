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

// CommunicationRepository handles broadcast message database operations
type CommunicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCommunicationRepository creates a new CommunicationRepository
func NewCommunicationRepository(db *pgxpool.Pool) *CommunicationRepository {
	return &CommunicationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var communicationColumns = []string{
	"id", "course_id", "author_id", "title", "content", "created_at",
}

func scanCommunication(row pgx.Row) (*models.Communication, error) {
	comm := &models.Communication{}
	err := row.Scan(
		&comm.ID, &comm.CourseID, &comm.AuthorID, &comm.Title,
		&comm.Content, &comm.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return comm, nil
}

// CreateCommunication stores a broadcast message
func (r *CommunicationRepository) CreateCommunication(ctx context.Context, comm *models.Communication) (uuid.UUID, error) {
	sql, args, err := r.sb.Insert("communications").
		Columns("id", "course_id", "author_id", "title", "content").
		Values(uuid.New(), comm.CourseID, comm.AuthorID, comm.Title, comm.Content).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create communication SQL")
		return uuid.Nil, fmt.Errorf("failed to build create communication query: %w", err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create communication query")
		return uuid.Nil, fmt.Errorf("error creating communication: %w", err)
	}

	return id, nil
}

// GetCommunicationByID retrieves a broadcast message by ID
func (r *CommunicationRepository) GetCommunicationByID(ctx context.Context, id uuid.UUID) (*models.Communication, error) {
	sql, args, err := r.sb.Select(communicationColumns...).
		From("communications").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get communication SQL")
		return nil, fmt.Errorf("failed to build get communication query: %w", err)
	}

	comm, err := scanCommunication(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommunicationNotFound
		}
		logger.Error().Err(err).Str("communicationID", id.String()).Msg("Error scanning communication row")
		return nil, fmt.Errorf("error getting communication by ID: %w", err)
	}

	return comm, nil
}

// GetCommunications retrieves messages newest first. With a course ID
// the list includes that course's messages plus academy-wide ones.
func (r *CommunicationRepository) GetCommunications(ctx context.Context, courseID *uuid.UUID) ([]*models.Communication, error) {
	builder := r.sb.Select(communicationColumns...).
		From("communications").
		OrderBy("created_at DESC")

	if courseID != nil {
		builder = builder.Where(squirrel.Or{
			squirrel.Eq{"course_id": *courseID},
			squirrel.Eq{"course_id": nil},
		})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get communications SQL")
		return nil, fmt.Errorf("failed to build get communications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing communication list query")
		return nil, fmt.Errorf("error querying communications: %w", err)
	}
	defer rows.Close()

	comms := []*models.Communication{}
	for rows.Next() {
		comm, err := scanCommunication(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning communication row during list")
			return nil, fmt.Errorf("error scanning communication row: %w", err)
		}
		comms = append(comms, comm)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating communication rows")
		return nil, fmt.Errorf("error iterating communication rows: %w", err)
	}

	return comms, nil
}

// DeleteCommunication deletes a broadcast message by ID
func (r *CommunicationRepository) DeleteCommunication(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("communications").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete communication SQL")
		return fmt.Errorf("failed to build delete communication query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("communicationID", id.String()).Msg("Error executing delete communication query")
		return fmt.Errorf("error deleting communication: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCommunicationNotFound
	}

	return nil
}
