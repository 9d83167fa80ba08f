package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/englishclub/academy/internal/app/models"
	"github.com/englishclub/academy/internal/app/repositories"
	"github.com/englishclub/academy/internal/pkg/apperrors"
)

type fakePaymentStore struct {
	records map[string]*models.Payment
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{records: make(map[string]*models.Payment)}
}

func paymentKey(studentID uuid.UUID, month, year int) string {
	return fmt.Sprintf("%s|%d|%d", studentID, month, year)
}

func (f *fakePaymentStore) FindByNaturalKey(_ context.Context, studentID uuid.UUID, month, year int) (*models.Payment, error) {
	if payment, ok := f.records[paymentKey(studentID, month, year)]; ok {
		copied := *payment
		return &copied, nil
	}
	return nil, apperrors.ErrResourceNotFound
}

func (f *fakePaymentStore) CreatePayment(_ context.Context, payment *models.Payment) (uuid.UUID, error) {
	id := uuid.New()
	stored := *payment
	stored.ID = id
	f.records[paymentKey(payment.StudentID, payment.Month, payment.Year)] = &stored
	return id, nil
}

func (f *fakePaymentStore) UpdatePayment(_ context.Context, payment *models.Payment) error {
	for key, stored := range f.records {
		if stored.ID == payment.ID {
			copied := *payment
			f.records[key] = &copied
			return nil
		}
	}
	return apperrors.ErrPaymentNotFound
}

func (f *fakePaymentStore) GetPayments(_ context.Context, filter repositories.PaymentFilter) ([]*models.Payment, error) {
	out := []*models.Payment{}
	for _, payment := range f.records {
		if filter.StudentID != nil && payment.StudentID != *filter.StudentID {
			continue
		}
		if filter.Status != "" && payment.Status != filter.Status {
			continue
		}
		out = append(out, payment)
	}
	return out, nil
}

func (f *fakePaymentStore) GetTotals(_ context.Context) (*repositories.PaymentTotals, error) {
	totals := &repositories.PaymentTotals{}
	for _, payment := range f.records {
		switch payment.Status {
		case models.PaymentPending:
			totals.PendingCount++
			totals.OutstandingTotal += payment.Amount
		case models.PaymentOverdue:
			totals.OverdueCount++
			totals.OutstandingTotal += payment.Amount
		case models.PaymentPaid:
			totals.CollectedAmount += payment.Amount
		}
	}
	return totals, nil
}

func (f *fakePaymentStore) DeletePayment(_ context.Context, id uuid.UUID) error {
	for key, stored := range f.records {
		if stored.ID == id {
			delete(f.records, key)
			return nil
		}
	}
	return apperrors.ErrPaymentNotFound
}

type fakeConceptStore struct {
	concepts map[uuid.UUID]*models.PaymentConcept
}

func newFakeConceptStore() *fakeConceptStore {
	return &fakeConceptStore{concepts: make(map[uuid.UUID]*models.PaymentConcept)}
}

func (f *fakeConceptStore) add(concept *models.PaymentConcept) *models.PaymentConcept {
	if concept.ID == uuid.Nil {
		concept.ID = uuid.New()
	}
	f.concepts[concept.ID] = concept
	return concept
}

func (f *fakeConceptStore) CreatePaymentConcept(_ context.Context, concept *models.PaymentConcept) (uuid.UUID, error) {
	stored := *concept
	stored.ID = uuid.New()
	f.concepts[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeConceptStore) GetPaymentConceptByID(_ context.Context, id uuid.UUID) (*models.PaymentConcept, error) {
	if concept, ok := f.concepts[id]; ok {
		return concept, nil
	}
	return nil, apperrors.ErrPaymentConceptNotFound
}

func (f *fakeConceptStore) GetAllPaymentConcepts(_ context.Context, activeOnly bool) ([]*models.PaymentConcept, error) {
	out := []*models.PaymentConcept{}
	for _, concept := range f.concepts {
		if activeOnly && !concept.IsActive {
			continue
		}
		out = append(out, concept)
	}
	return out, nil
}

func (f *fakeConceptStore) UpdatePaymentConcept(_ context.Context, concept *models.PaymentConcept) error {
	if _, ok := f.concepts[concept.ID]; !ok {
		return apperrors.ErrPaymentConceptNotFound
	}
	f.concepts[concept.ID] = concept
	return nil
}

func (f *fakeConceptStore) DeletePaymentConcept(_ context.Context, id uuid.UUID) error {
	if _, ok := f.concepts[id]; !ok {
		return apperrors.ErrPaymentConceptNotFound
	}
	delete(f.concepts, id)
	return nil
}

func TestUpsertPaymentTwiceKeepsOneRow(t *testing.T) {
	store := newFakePaymentStore()
	students := newFakeStudentStore()
	service := NewPaymentService(store, newFakeConceptStore(), students)

	student := students.add(&models.Student{FirstName: "Luis", LastName: "Perez"})

	first, err := service.UpsertPayment(context.Background(), &models.Payment{
		StudentID: student.ID,
		Month:     3,
		Year:      2026,
		Amount:    120,
		Status:    models.PaymentPending,
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second, err := service.UpsertPayment(context.Background(), &models.Payment{
		StudentID: student.ID,
		Month:     3,
		Year:      2026,
		Amount:    120,
		Status:    models.PaymentPaid,
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if len(store.records) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(store.records))
	}
	if second.ID != first.ID {
		t.Errorf("expected the same record to be updated, got new ID %s", second.ID)
	}
	if second.Status != models.PaymentPaid {
		t.Errorf("expected status PAID after overwrite, got %s", second.Status)
	}
}

func TestUpsertPaymentDefaultsAmountFromConcept(t *testing.T) {
	store := newFakePaymentStore()
	students := newFakeStudentStore()
	concepts := newFakeConceptStore()
	service := NewPaymentService(store, concepts, students)

	student := students.add(&models.Student{FirstName: "Marta", LastName: "Lopez"})
	concept := concepts.add(&models.PaymentConcept{Name: "Cuota mensual", DefaultAmount: 150, IsActive: true})

	saved, err := service.UpsertPayment(context.Background(), &models.Payment{
		StudentID: student.ID,
		ConceptID: &concept.ID,
		Month:     4,
		Year:      2026,
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if saved.Amount != 150 {
		t.Errorf("amount = %v, want concept default 150", saved.Amount)
	}
	if saved.Status != models.PaymentPending {
		t.Errorf("status = %s, want default PENDING", saved.Status)
	}
}

func TestUpsertPaymentValidation(t *testing.T) {
	students := newFakeStudentStore()
	student := students.add(&models.Student{FirstName: "Eva", LastName: "Diaz"})
	service := NewPaymentService(newFakePaymentStore(), newFakeConceptStore(), students)

	tests := []struct {
		name    string
		payment models.Payment
	}{
		{"month zero", models.Payment{StudentID: student.ID, Month: 0, Year: 2026}},
		{"month thirteen", models.Payment{StudentID: student.ID, Month: 13, Year: 2026}},
		{"missing year", models.Payment{StudentID: student.ID, Month: 5}},
		{"missing student", models.Payment{Month: 5, Year: 2026}},
		{"bad status", models.Payment{StudentID: student.ID, Month: 5, Year: 2026, Status: "PAGADO"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment := tt.payment
			if _, err := service.UpsertPayment(context.Background(), &payment); !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Errorf("expected ErrValidationFailed, got %v", err)
			}
		})
	}
}

func TestUpsertPaymentUnknownStudent(t *testing.T) {
	service := NewPaymentService(newFakePaymentStore(), newFakeConceptStore(), newFakeStudentStore())

	_, err := service.UpsertPayment(context.Background(), &models.Payment{
		StudentID: uuid.New(),
		Month:     1,
		Year:      2026,
	})
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}
