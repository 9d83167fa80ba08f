package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/englishclub/academy/internal/app/models"
	"github.com/englishclub/academy/internal/app/models/dto"
	"github.com/englishclub/academy/internal/app/repositories"
	"github.com/englishclub/academy/internal/app/services"
	"github.com/englishclub/academy/internal/middleware"
)

// PaymentController handles monthly payment and charge template operations
type PaymentController struct {
	paymentService services.PaymentService
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(paymentService services.PaymentService) *PaymentController {
	return &PaymentController{paymentService: paymentService}
}

// UpsertPayment records or corrects one monthly charge
// @Summary Upsert a payment
// @Description Records one charge per student, month and year. Posting the same triple again updates the existing charge. Omitting the amount applies the concept's default.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpsertPaymentRequest true "Monthly charge"
// @Success 200 {object} dto.APIResponse{data=models.Payment} "Payment recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Student or concept not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments [put]
func (c *PaymentController) UpsertPayment(ctx *gin.Context) {
	var req dto.UpsertPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid payment data", err)
		return
	}

	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		bindError(ctx, "Invalid student ID", err)
		return
	}
	conceptID, err := parseOptionalUUID(req.ConceptID)
	if err != nil {
		bindError(ctx, "Invalid concept ID", err)
		return
	}
	paymentDate, err := parseOptionalDate(req.PaymentDate)
	if err != nil {
		bindError(ctx, "Invalid payment date, expected yyyy-mm-dd", err)
		return
	}

	payment := &models.Payment{
		StudentID:     studentID,
		ConceptID:     conceptID,
		Month:         req.Month,
		Year:          req.Year,
		Status:        models.PaymentStatus(req.Status),
		PaymentDate:   paymentDate,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	if req.Amount != nil {
		payment.Amount = *req.Amount
	}

	recorded, err := c.paymentService.UpsertPayment(ctx, payment)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(recorded, "Payment recorded"))
}

// GetPayments lists charges with optional filters
// @Summary List payments
// @Description Retrieves charges filtered by student, month, year or status
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param studentId query string false "Filter by student" Format(uuid)
// @Param month query int false "Filter by month" minimum(1) maximum(12)
// @Param year query int false "Filter by year" example(2026)
// @Param status query string false "Filter by status" Enums(PENDING,PAID,OVERDUE)
// @Success 200 {object} dto.APIResponse{data=[]models.Payment} "Payments retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments [get]
func (c *PaymentController) GetPayments(ctx *gin.Context) {
	filter, ok := c.paymentFilter(ctx)
	if !ok {
		return
	}

	payments, err := c.paymentService.GetPayments(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(payments, "Payments retrieved"))
}

func (c *PaymentController) paymentFilter(ctx *gin.Context) (repositories.PaymentFilter, bool) {
	filter := repositories.PaymentFilter{}

	if statusStr := ctx.Query("status"); statusStr != "" {
		status := models.PaymentStatus(statusStr)
		switch status {
		case models.PaymentPending, models.PaymentPaid, models.PaymentOverdue:
			filter.Status = status
		default:
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status filter").
				WithField("status").
				WithDetails("Must be one of PENDING, PAID, OVERDUE")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return filter, false
		}
	}
	if studentIDStr := ctx.Query("studentId"); studentIDStr != "" {
		studentID, err := uuid.Parse(studentIDStr)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student filter").
				WithField("studentId").
				WithDetails("Must be a valid UUID")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return filter, false
		}
		filter.StudentID = &studentID
	}
	if monthStr := ctx.Query("month"); monthStr != "" {
		month, err := strconv.Atoi(monthStr)
		if err != nil || month < 1 || month > 12 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid month filter").
				WithField("month").
				WithDetails("Must be a number between 1 and 12")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return filter, false
		}
		filter.Month = &month
	}
	if yearStr := ctx.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid year filter").
				WithField("year").
				WithDetails("Must be a number")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return filter, false
		}
		filter.Year = &year
	}

	return filter, true
}

// DeletePayment removes one charge
// @Summary Delete a payment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID" Format(uuid)
// @Success 200 {object} dto.APIResponse "Payment deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid payment ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments/{id} [delete]
func (c *PaymentController) DeletePayment(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.paymentService.DeletePayment(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Payment deleted"))
}

// CreateConcept creates a charge template
// @Summary Create a payment concept
// @Description Creates a reusable named charge template with a default amount
// @Tags payment-concepts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePaymentConceptRequest true "Concept information"
// @Success 201 {object} dto.APIResponse{data=models.PaymentConcept} "Concept created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 409 {object} dto.ErrorResponse "Concept already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payment-concepts [post]
func (c *PaymentController) CreateConcept(ctx *gin.Context) {
	var req dto.CreatePaymentConceptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid concept data", err)
		return
	}

	concept, err := c.paymentService.CreateConcept(ctx, &models.PaymentConcept{
		Name:          req.Name,
		Description:   req.Description,
		DefaultAmount: req.DefaultAmount,
		IsRecurring:   req.IsRecurring,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(concept, "Concept created"))
}

// GetConcepts lists charge templates
// @Summary List payment concepts
// @Description Retrieves charge templates, optionally only the active ones
// @Tags payment-concepts
// @Produce json
// @Security BearerAuth
// @Param activeOnly query bool false "Only active concepts"
// @Success 200 {object} dto.APIResponse{data=[]models.PaymentConcept} "Concepts retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payment-concepts [get]
func (c *PaymentController) GetConcepts(ctx *gin.Context) {
	activeOnly := ctx.Query("activeOnly") == "true"

	concepts, err := c.paymentService.GetConcepts(ctx, activeOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(concepts, "Concepts retrieved"))
}

// UpdateConcept updates a charge template
// @Summary Update a payment concept
// @Tags payment-concepts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Concept ID" Format(uuid)
// @Param request body dto.UpdatePaymentConceptRequest true "Concept information"
// @Success 200 {object} dto.APIResponse{data=models.PaymentConcept} "Concept updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Concept not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payment-concepts/{id} [put]
func (c *PaymentController) UpdateConcept(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdatePaymentConceptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid concept data", err)
		return
	}

	concept := &models.PaymentConcept{
		ID:            id,
		Name:          req.Name,
		Description:   req.Description,
		DefaultAmount: req.DefaultAmount,
		IsRecurring:   req.IsRecurring,
		IsActive:      req.IsActive,
	}

	if err := c.paymentService.UpdateConcept(ctx, concept); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(concept, "Concept updated"))
}

// DeleteConcept removes a charge template
// @Summary Delete a payment concept
// @Tags payment-concepts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Concept ID" Format(uuid)
// @Success 200 {object} dto.APIResponse "Concept deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid concept ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Concept not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payment-concepts/{id} [delete]
func (c *PaymentController) DeleteConcept(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.paymentService.DeleteConcept(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Concept deleted"))
}
