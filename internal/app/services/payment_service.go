package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/englishclub/academy/internal/app/models"
	"github.com/englishclub/academy/internal/app/repositories"
	"github.com/englishclub/academy/internal/pkg/apperrors"
)

// PaymentStore is the persistence surface the payment service needs
type PaymentStore interface {
	FindByNaturalKey(ctx context.Context, studentID uuid.UUID, month, year int) (*models.Payment, error)
	CreatePayment(ctx context.Context, payment *models.Payment) (uuid.UUID, error)
	UpdatePayment(ctx context.Context, payment *models.Payment) error
	GetPayments(ctx context.Context, filter repositories.PaymentFilter) ([]*models.Payment, error)
	GetTotals(ctx context.Context) (*repositories.PaymentTotals, error)
	DeletePayment(ctx context.Context, id uuid.UUID) error
}

// PaymentConceptStore is the persistence surface for charge templates
type PaymentConceptStore interface {
	CreatePaymentConcept(ctx context.Context, concept *models.PaymentConcept) (uuid.UUID, error)
	GetPaymentConceptByID(ctx context.Context, id uuid.UUID) (*models.PaymentConcept, error)
	GetAllPaymentConcepts(ctx context.Context, activeOnly bool) ([]*models.PaymentConcept, error)
	UpdatePaymentConcept(ctx context.Context, concept *models.PaymentConcept) error
	DeletePaymentConcept(ctx context.Context, id uuid.UUID) error
}

// PaymentService defines the interface for payment operations
type PaymentService interface {
	UpsertPayment(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	GetPayments(ctx context.Context, filter repositories.PaymentFilter) ([]*models.Payment, error)
	DeletePayment(ctx context.Context, id uuid.UUID) error

	CreateConcept(ctx context.Context, concept *models.PaymentConcept) (*models.PaymentConcept, error)
	GetConcepts(ctx context.Context, activeOnly bool) ([]*models.PaymentConcept, error)
	UpdateConcept(ctx context.Context, concept *models.PaymentConcept) error
	DeleteConcept(ctx context.Context, id uuid.UUID) error
}

type paymentServiceImpl struct {
	paymentRepo PaymentStore
	conceptRepo PaymentConceptStore
	studentRepo StudentStore
}

// NewPaymentService creates a new payment service instance
func NewPaymentService(paymentRepo PaymentStore, conceptRepo PaymentConceptStore, studentRepo StudentStore) PaymentService {
	return &paymentServiceImpl{
		paymentRepo: paymentRepo,
		conceptRepo: conceptRepo,
		studentRepo: studentRepo,
	}
}

func (s *paymentServiceImpl) validatePayment(payment *models.Payment) error {
	if payment == nil {
		return fmt.Errorf("%w: payment is nil", apperrors.ErrValidationFailed)
	}
	if payment.StudentID == uuid.Nil {
		return fmt.Errorf("%w: studentId is required", apperrors.ErrValidationFailed)
	}
	if payment.Month < 1 || payment.Month > 12 {
		return fmt.Errorf("%w: month must be between 1 and 12", apperrors.ErrValidationFailed)
	}
	if payment.Year <= 0 {
		return fmt.Errorf("%w: year is required", apperrors.ErrValidationFailed)
	}
	switch payment.Status {
	case "":
		payment.Status = models.PaymentPending
	default:
		if !payment.Status.Valid() {
			return fmt.Errorf("%w: unknown payment status %q", apperrors.ErrValidationFailed, payment.Status)
		}
	}
	if payment.Amount < 0 {
		return fmt.Errorf("%w: amount cannot be negative", apperrors.ErrValidationFailed)
	}
	return nil
}

// UpsertPayment writes the charge identified by (student, month, year).
// Re-posting the month overwrites it in place. A zero amount with a
// concept reference is filled from the concept's default.
func (s *paymentServiceImpl) UpsertPayment(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	if err := s.validatePayment(payment); err != nil {
		return nil, err
	}

	if _, err := s.studentRepo.GetStudentByID(ctx, payment.StudentID); err != nil {
		return nil, err
	}

	if payment.ConceptID != nil {
		concept, err := s.conceptRepo.GetPaymentConceptByID(ctx, *payment.ConceptID)
		if err != nil {
			return nil, err
		}
		if payment.Amount == 0 {
			payment.Amount = concept.DefaultAmount
		}
	}

	existing, err := s.paymentRepo.FindByNaturalKey(ctx, payment.StudentID, payment.Month, payment.Year)
	if err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, fmt.Errorf("failed to look up payment record: %w", err)
	}

	if existing != nil {
		existing.ConceptID = payment.ConceptID
		existing.Amount = payment.Amount
		existing.Status = payment.Status
		existing.PaymentDate = payment.PaymentDate
		existing.PaymentMethod = payment.PaymentMethod
		existing.Notes = payment.Notes
		if err := s.paymentRepo.UpdatePayment(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update payment record: %w", err)
		}
		return existing, nil
	}

	id, err := s.paymentRepo.CreatePayment(ctx, payment)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment record: %w", err)
	}
	payment.ID = id
	return payment, nil
}

func (s *paymentServiceImpl) GetPayments(ctx context.Context, filter repositories.PaymentFilter) ([]*models.Payment, error) {
	return s.paymentRepo.GetPayments(ctx, filter)
}

func (s *paymentServiceImpl) DeletePayment(ctx context.Context, id uuid.UUID) error {
	return s.paymentRepo.DeletePayment(ctx, id)
}

func (s *paymentServiceImpl) validateConcept(concept *models.PaymentConcept) error {
	if concept == nil {
		return fmt.Errorf("%w: concept is nil", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(concept.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if concept.DefaultAmount <= 0 {
		return fmt.Errorf("%w: defaultAmount must be positive", apperrors.ErrValidationFailed)
	}
	return nil
}

func (s *paymentServiceImpl) CreateConcept(ctx context.Context, concept *models.PaymentConcept) (*models.PaymentConcept, error) {
	if err := s.validateConcept(concept); err != nil {
		return nil, err
	}
	concept.IsActive = true

	id, err := s.conceptRepo.CreatePaymentConcept(ctx, concept)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment concept: %w", err)
	}

	return s.conceptRepo.GetPaymentConceptByID(ctx, id)
}

func (s *paymentServiceImpl) GetConcepts(ctx context.Context, activeOnly bool) ([]*models.PaymentConcept, error) {
	return s.conceptRepo.GetAllPaymentConcepts(ctx, activeOnly)
}

func (s *paymentServiceImpl) UpdateConcept(ctx context.Context, concept *models.PaymentConcept) error {
	if err := s.validateConcept(concept); err != nil {
		return err
	}
	if concept.ID == uuid.Nil {
		return fmt.Errorf("%w: concept id is required", apperrors.ErrValidationFailed)
	}
	return s.conceptRepo.UpdatePaymentConcept(ctx, concept)
}

func (s *paymentServiceImpl) DeleteConcept(ctx context.Context, id uuid.UUID) error {
	return s.conceptRepo.DeletePaymentConcept(ctx, id)
}
