package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/englishclub/academy/internal/app/models"
	"github.com/englishclub/academy/internal/app/models/dto"
	"github.com/englishclub/academy/internal/app/services"
	"github.com/englishclub/academy/internal/middleware"
)

// CommunicationController handles broadcast message operations
type CommunicationController struct {
	communicationService services.CommunicationService
}

// NewCommunicationController creates a new CommunicationController
func NewCommunicationController(communicationService services.CommunicationService) *CommunicationController {
	return &CommunicationController{communicationService: communicationService}
}

// CreateCommunication stores a broadcast and fans it out to tutors
// @Summary Send a communication
// @Description Stores a broadcast message and emails the tutors of the targeted course, or of every course when no course is given. The message is kept even if some deliveries fail.
// @Tags communications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCommunicationRequest true "Message"
// @Success 201 {object} dto.APIResponse{data=dto.CommunicationDeliveryResponse} "Communication sent"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Targeted course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /communications [post]
func (c *CommunicationController) CreateCommunication(ctx *gin.Context) {
	var req dto.CreateCommunicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid communication data", err)
		return
	}

	courseID, err := parseOptionalUUID(req.CourseID)
	if err != nil {
		bindError(ctx, "Invalid course ID", err)
		return
	}

	comm := &models.Communication{
		CourseID: courseID,
		Title:    req.Title,
		Content:  req.Content,
	}
	if value, exists := ctx.Get(middleware.ContextUserID); exists {
		if userID, ok := value.(uuid.UUID); ok {
			comm.AuthorID = &userID
		}
	}

	sendEmail := req.SendEmail == nil || *req.SendEmail

	result, err := c.communicationService.CreateCommunication(ctx, comm, sendEmail)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.CommunicationDeliveryResponse{
		Communication: result.Communication,
		Recipients:    result.Recipients,
		Sent:          result.Sent,
		Failed:        result.Failed,
		Errors:        result.Errors,
	}, "Communication sent"))
}

// GetCommunications lists broadcast messages
// @Summary List communications
// @Description Retrieves broadcasts, optionally narrowed to one course. Academy-wide messages are always included.
// @Tags communications
// @Produce json
// @Security BearerAuth
// @Param courseId query string false "Filter by course" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=[]models.Communication} "Communications retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /communications [get]
func (c *CommunicationController) GetCommunications(ctx *gin.Context) {
	var courseID *uuid.UUID
	if courseIDStr := ctx.Query("courseId"); courseIDStr != "" {
		parsed, err := uuid.Parse(courseIDStr)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course filter").
				WithField("courseId").
				WithDetails("Must be a valid UUID")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		courseID = &parsed
	}

	communications, err := c.communicationService.GetCommunications(ctx, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(communications, "Communications retrieved"))
}

// DeleteCommunication removes a stored broadcast
// @Summary Delete a communication
// @Tags communications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Communication ID" Format(uuid)
// @Success 200 {object} dto.APIResponse "Communication deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid communication ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Communication not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /communications/{id} [delete]
func (c *CommunicationController) DeleteCommunication(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.communicationService.DeleteCommunication(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Communication deleted"))
}
