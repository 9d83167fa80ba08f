package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/englishclub/academy/internal/app/models"
	"github.com/englishclub/academy/internal/app/repositories"
	"github.com/englishclub/academy/internal/pkg/apperrors"
	"github.com/englishclub/academy/internal/pkg/logger"
	"github.com/englishclub/academy/internal/pkg/notify"
)

// CommunicationStore is the persistence surface the communication service needs
type CommunicationStore interface {
	CreateCommunication(ctx context.Context, comm *models.Communication) (uuid.UUID, error)
	GetCommunicationByID(ctx context.Context, id uuid.UUID) (*models.Communication, error)
	GetCommunications(ctx context.Context, courseID *uuid.UUID) ([]*models.Communication, error)
	DeleteCommunication(ctx context.Context, id uuid.UUID) error
}

// DeliveryResult summarizes the email fan-out of one broadcast
type DeliveryResult struct {
	Communication *models.Communication
	Recipients    int
	Sent          int
	Failed        int
	Errors        []string
}

// CommunicationService defines the interface for broadcast operations
type CommunicationService interface {
	CreateCommunication(ctx context.Context, comm *models.Communication, sendEmail bool) (*DeliveryResult, error)
	GetCommunications(ctx context.Context, courseID *uuid.UUID) ([]*models.Communication, error)
	DeleteCommunication(ctx context.Context, id uuid.UUID) error
}

type communicationServiceImpl struct {
	commRepo    CommunicationStore
	studentRepo StudentStore
	courseRepo  CourseStore
	dispatcher  notify.Dispatcher
}

// NewCommunicationService creates a new communication service instance.
// dispatcher may be nil, in which case broadcasts are stored without
// any email fan-out.
func NewCommunicationService(commRepo CommunicationStore, studentRepo StudentStore, courseRepo CourseStore, dispatcher notify.Dispatcher) CommunicationService {
	return &communicationServiceImpl{
		commRepo:    commRepo,
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		dispatcher:  dispatcher,
	}
}

func (s *communicationServiceImpl) validateCommunication(comm *models.Communication) error {
	if comm == nil {
		return fmt.Errorf("%w: communication is nil", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(comm.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(comm.Content) == "" {
		return fmt.Errorf("%w: content cannot be empty", apperrors.ErrValidationFailed)
	}
	return nil
}

// CreateCommunication stores the broadcast, then fans it out to every
// tutor email on the addressed roster when sendEmail is set. Delivery
// is best effort: the message is persisted even when every send fails,
// and per-recipient errors come back in the result instead of aborting
// the call.
func (s *communicationServiceImpl) CreateCommunication(ctx context.Context, comm *models.Communication, sendEmail bool) (*DeliveryResult, error) {
	if err := s.validateCommunication(comm); err != nil {
		return nil, err
	}

	if comm.CourseID != nil {
		if _, err := s.courseRepo.GetCourseByID(ctx, *comm.CourseID); err != nil {
			return nil, err
		}
	}

	id, err := s.commRepo.CreateCommunication(ctx, comm)
	if err != nil {
		return nil, fmt.Errorf("failed to store communication: %w", err)
	}
	comm.ID = id

	if !sendEmail {
		return &DeliveryResult{Communication: comm}, nil
	}

	recipients, err := s.collectRecipients(ctx, comm.CourseID)
	if err != nil {
		// The broadcast is already stored; report delivery as failed
		// rather than erroring the whole operation.
		logger.Warn().Err(err).Msg("Failed to collect broadcast recipients")
		return &DeliveryResult{
			Communication: comm,
			Errors:        []string{err.Error()},
		}, nil
	}

	result := &DeliveryResult{
		Communication: comm,
		Recipients:    len(recipients),
	}

	if s.dispatcher == nil || len(recipients) == 0 {
		return result, nil
	}

	sendResult, sendErr := s.dispatcher.SendCommunication(ctx, comm.Title, comm.Content, recipients)
	result.Sent = sendResult.Sent
	result.Failed = sendResult.Errors
	if sendErr != nil {
		result.Errors = append(result.Errors, sendErr.Error())
	}

	logger.Info().
		Str("communicationID", comm.ID.String()).
		Int("recipients", result.Recipients).
		Int("sent", result.Sent).
		Int("failed", result.Failed).
		Msg("Broadcast delivered")

	return result, nil
}

// collectRecipients gathers tutor emails for the addressed roster. A
// nil course ID addresses every student. Students without a tutor email
// are skipped; duplicate emails collapse to one recipient.
func (s *communicationServiceImpl) collectRecipients(ctx context.Context, courseID *uuid.UUID) ([]notify.Recipient, error) {
	filter := repositories.StudentFilter{Status: models.StudentActive}
	if courseID != nil {
		filter.CourseID = courseID
	}

	students, err := s.studentRepo.GetStudents(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	seen := make(map[string]bool)
	recipients := []notify.Recipient{}
	for _, student := range students {
		if student.TutorEmail == nil || strings.TrimSpace(*student.TutorEmail) == "" {
			continue
		}
		email := strings.ToLower(strings.TrimSpace(*student.TutorEmail))
		if seen[email] {
			continue
		}
		seen[email] = true

		recipient := notify.Recipient{
			Email:       email,
			StudentName: student.FullName(),
		}
		if student.TutorName != nil {
			recipient.Name = *student.TutorName
		}
		recipients = append(recipients, recipient)
	}

	return recipients, nil
}

func (s *communicationServiceImpl) GetCommunications(ctx context.Context, courseID *uuid.UUID) ([]*models.Communication, error) {
	return s.commRepo.GetCommunications(ctx, courseID)
}

func (s *communicationServiceImpl) DeleteCommunication(ctx context.Context, id uuid.UUID) error {
	return s.commRepo.DeleteCommunication(ctx, id)
}
