package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment is one record per student per calendar month.
// (student_id, month, year) is the natural key.
type Payment struct {
	ID            uuid.UUID     `json:"id"`
	StudentID     uuid.UUID     `json:"studentId"`
	ConceptID     *uuid.UUID    `json:"conceptId,omitempty"`
	Month         int           `json:"month"`
	Year          int           `json:"year"`
	Amount        float64       `json:"amount"`
	Status        PaymentStatus `json:"status"`
	PaymentDate   *time.Time    `json:"paymentDate,omitempty"`
	PaymentMethod *string       `json:"paymentMethod,omitempty"`
	Notes         *string       `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`

	Student *Student        `json:"student,omitempty"`
	Concept *PaymentConcept `json:"concept,omitempty"`
}

// PaymentConcept is a reusable named charge template. New payments may
// default their amount from a concept; the concept has its own
// lifecycle and is never required afterwards.
type PaymentConcept struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description,omitempty"`
	DefaultAmount float64   `json:"defaultAmount"`
	IsRecurring   bool      `json:"isRecurring"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}
