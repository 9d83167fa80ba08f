package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/englishclub/academy/internal/app/models"
	"github.com/englishclub/academy/internal/app/models/dto"
	"github.com/englishclub/academy/internal/app/services"
	"github.com/englishclub/academy/internal/middleware"
	"github.com/englishclub/academy/internal/pkg/reportcard"
)

// ReportController handles stage report and report card operations
type ReportController struct {
	reportService services.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService services.ReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

// UpsertReport records or corrects one stage report
// @Summary Upsert a stage report
// @Description Records one free-text report per student, course, semester and year. Posting the same tuple again updates the existing report.
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpsertReportRequest true "Stage report"
// @Success 200 {object} dto.APIResponse{data=models.Report} "Report recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports [put]
func (c *ReportController) UpsertReport(ctx *gin.Context) {
	var req dto.UpsertReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid report data", err)
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

	report, err := c.reportService.UpsertReport(ctx, &models.Report{
		StudentID: studentID,
		CourseID:  courseID,
		Semester:  req.Semester,
		Year:      req.Year,
		Content:   req.Content,
		Status:    models.ReportStatus(req.Status),
		Period:    req.Period,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(report, "Report recorded"))
}

// GetByStudent lists one student's stage reports
// @Summary List a student's reports
// @Description Retrieves a student's stage reports, optionally narrowed by course and year
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student ID" Format(uuid)
// @Param courseId query string false "Filter by course" Format(uuid)
// @Param year query int false "Filter by year" example(2026)
// @Success 200 {object} dto.APIResponse{data=[]models.Report} "Reports retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/students/{studentId} [get]
func (c *ReportController) GetByStudent(ctx *gin.Context) {
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

	var year *int
	if yearStr := ctx.Query("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid year filter").
				WithField("year").
				WithDetails("Must be a number")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		year = &parsed
	}

	reports, err := c.reportService.GetByStudent(ctx, studentID, courseID, year)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(reports, "Reports retrieved"))
}

// GetReportCard assembles a student's yearly report card
// @Summary Get a report card
// @Description Aggregates stage reports, exam scores and attendance into a yearly report card. Pass format=html for a printable document.
// @Tags reports
// @Produce json
// @Produce html
// @Security BearerAuth
// @Param studentId path string true "Student ID" Format(uuid)
// @Param year query int false "Academic year, defaults to the current year" example(2026)
// @Param format query string false "Response format" Enums(json,html)
// @Success 200 {object} dto.APIResponse{data=stats.ReportCard} "Report card assembled"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 409 {object} dto.ErrorResponse "Student has no assigned course"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/students/{studentId}/card [get]
func (c *ReportController) GetReportCard(ctx *gin.Context) {
	studentID, ok := parseUUIDParam(ctx, "studentId")
	if !ok {
		return
	}

	year := time.Now().Year()
	if yearStr := ctx.Query("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid year").
				WithField("year").
				WithDetails("Must be a number")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		year = parsed
	}

	card, err := c.reportService.GetReportCard(ctx, studentID, year)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if ctx.Query("format") == "html" {
		ctx.Header("Content-Disposition", `inline; filename="report-card.html"`)
		ctx.Data(http.StatusOK, "text/html; charset=utf-8", reportcard.RenderHTML(*card))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(card, "Report card assembled"))
}

// DeleteReport removes one stage report
// @Summary Delete a report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID" Format(uuid)
// @Success 200 {object} dto.APIResponse "Report deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid report ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Report not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/{id} [delete]
func (c *ReportController) DeleteReport(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.reportService.DeleteReport(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Report deleted"))
}
