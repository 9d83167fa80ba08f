package dto

// UpsertPaymentRequest carries one monthly charge. The (studentId,
// month, year) triple identifies the record. When amount is omitted
// and a concept is given, the concept's default amount applies.
type UpsertPaymentRequest struct {
	StudentID     string   `json:"studentId" binding:"required"`
	ConceptID     *string  `json:"conceptId"`
	Month         int      `json:"month" binding:"required,min=1,max=12"`
	Year          int      `json:"year" binding:"required"`
	Amount        *float64 `json:"amount"`
	Status        string   `json:"status" enums:"PENDING,PAID,OVERDUE"`
	PaymentDate   *string  `json:"paymentDate"`
	PaymentMethod *string  `json:"paymentMethod"`
	Notes         *string  `json:"notes"`
}

// CreatePaymentConceptRequest represents charge template creation data
type CreatePaymentConceptRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   *string `json:"description"`
	DefaultAmount float64 `json:"defaultAmount" binding:"required,gt=0"`
	IsRecurring   bool    `json:"isRecurring"`
}

// UpdatePaymentConceptRequest represents charge template update data
type UpdatePaymentConceptRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   *string `json:"description"`
	DefaultAmount float64 `json:"defaultAmount" binding:"required,gt=0"`
	IsRecurring   bool    `json:"isRecurring"`
	IsActive      bool    `json:"isActive"`
}
