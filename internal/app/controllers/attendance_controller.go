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

// AttendanceController handles attendance operations
type AttendanceController struct {
	attendanceService services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService services.AttendanceService) *AttendanceController {
	return &AttendanceController{attendanceService: attendanceService}
}

// UpsertAttendance records or corrects one attendance mark
// @Summary Upsert an attendance mark
// @Description Records one mark per student, course and date. Posting the same triple again updates the existing mark.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpsertAttendanceRequest true "Attendance mark"
// @Success 200 {object} dto.APIResponse{data=models.Attendance} "Attendance recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance [put]
func (c *AttendanceController) UpsertAttendance(ctx *gin.Context) {
	var req dto.UpsertAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid attendance data", err)
		return
	}

	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		bindError(ctx, "Invalid student ID", err)
		return
	}
	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		bindError(ctx, "Invalid course ID", err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		bindError(ctx, "Invalid date, expected yyyy-mm-dd", err)
		return
	}

	record, err := c.attendanceService.UpsertAttendance(ctx, &models.Attendance{
		StudentID: studentID,
		CourseID:  courseID,
		Date:      date,
		Status:    models.AttendanceStatus(req.Status),
		Notes:     req.Notes,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(record, "Attendance recorded"))
}

// BulkMark records a whole course roster for one date
// @Summary Bulk mark attendance
// @Description Records marks for many students of one course and date in a single call
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkAttendanceRequest true "Roster marks"
// @Success 200 {object} dto.APIResponse{data=[]models.Attendance} "Attendance recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/bulk [post]
func (c *AttendanceController) BulkMark(ctx *gin.Context) {
	var req dto.BulkAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid attendance data", err)
		return
	}

	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		bindError(ctx, "Invalid course ID", err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		bindError(ctx, "Invalid date, expected yyyy-mm-dd", err)
		return
	}

	marks := make([]*models.Attendance, 0, len(req.Marks))
	for _, entry := range req.Marks {
		studentID, err := uuid.Parse(entry.StudentID)
		if err != nil {
			bindError(ctx, "Invalid student ID in marks", err)
			return
		}
		marks = append(marks, &models.Attendance{
			StudentID: studentID,
			Status:    models.AttendanceStatus(entry.Status),
			Notes:     entry.Notes,
		})
	}

	records, err := c.attendanceService.BulkMark(ctx, courseID, date, marks)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(records, "Attendance recorded"))
}

// GetByCourseAndDate lists the marks of one course on one date
// @Summary List attendance for a course and date
// @Description Retrieves every mark recorded for one course on one calendar date
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param courseId query string true "Course ID" Format(uuid)
// @Param date query string true "Calendar date" example(2026-03-12)
// @Success 200 {object} dto.APIResponse{data=[]models.Attendance} "Attendance retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance [get]
func (c *AttendanceController) GetByCourseAndDate(ctx *gin.Context) {
	courseID, err := uuid.Parse(ctx.Query("courseId"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course filter").
			WithField("courseId").
			WithDetails("Must be a valid UUID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	date, err := parseDate(ctx.Query("date"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid date filter").
			WithField("date").
			WithDetails("Must be formatted as yyyy-mm-dd")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	records, err := c.attendanceService.GetByCourseAndDate(ctx, courseID, date)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(records, "Attendance retrieved"))
}

// GetByStudent lists one student's attendance history
// @Summary List a student's attendance
// @Description Retrieves a student's marks, optionally narrowed to one course
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student ID" Format(uuid)
// @Param courseId query string false "Filter by course" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=[]models.Attendance} "Attendance retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid identifier"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/students/{studentId} [get]
func (c *AttendanceController) GetByStudent(ctx *gin.Context) {
	studentID, ok := parseUUIDParam(ctx, "studentId")
	if !ok {
		return
	}

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

	records, err := c.attendanceService.GetByStudent(ctx, studentID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(records, "Attendance retrieved"))
}

// DeleteAttendance removes one mark
// @Summary Delete an attendance mark
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path string true "Attendance ID" Format(uuid)
// @Success 200 {object} dto.APIResponse "Attendance deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid attendance ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Attendance not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/{id} [delete]
func (c *AttendanceController) DeleteAttendance(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.attendanceService.DeleteAttendance(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Attendance deleted"))
}
