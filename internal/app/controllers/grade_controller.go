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

// GradeController handles grade operations
type GradeController struct {
	gradeService services.GradeService
}

// NewGradeController creates a new GradeController
func NewGradeController(gradeService services.GradeService) *GradeController {
	return &GradeController{gradeService: gradeService}
}

// UpsertGrade records or corrects one exam score
// @Summary Upsert a grade
// @Description Records one score per student, course and exam slot. Posting the same triple again updates the existing score.
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpsertGradeRequest true "Exam score"
// @Success 200 {object} dto.APIResponse{data=models.Grade} "Grade recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /grades [put]
func (c *GradeController) UpsertGrade(ctx *gin.Context) {
	var req dto.UpsertGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid grade data", err)
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
	date, err := parseOptionalDate(req.Date)
	if err != nil {
		bindError(ctx, "Invalid date, expected yyyy-mm-dd", err)
		return
	}

	grade, err := c.gradeService.UpsertGrade(ctx, &models.Grade{
		StudentID:  studentID,
		CourseID:   courseID,
		ExamNumber: req.ExamNumber,
		Score:      req.Score,
		Date:       date,
		Notes:      req.Notes,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(grade, "Grade recorded"))
}

// GetByStudentAndCourse lists one student's grades in one course
// @Summary List a student's grades
// @Description Retrieves the exam slots of one student in one course, ordered by slot
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param studentId query string true "Student ID" Format(uuid)
// @Param courseId query string true "Course ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=[]models.Grade} "Grades retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /grades [get]
func (c *GradeController) GetByStudentAndCourse(ctx *gin.Context) {
	studentID, err := uuid.Parse(ctx.Query("studentId"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student filter").
			WithField("studentId").
			WithDetails("Must be a valid UUID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	courseID, err := uuid.Parse(ctx.Query("courseId"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course filter").
			WithField("courseId").
			WithDetails("Must be a valid UUID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	grades, err := c.gradeService.GetByStudentAndCourse(ctx, studentID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(grades, "Grades retrieved"))
}

// GetGradebook returns the score grid of one course
// @Summary Course gradebook
// @Description Retrieves every enrolled student with scores per exam slot, periodic average and trend
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=[]dto.GradeSummary} "Gradebook retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /grades/gradebook/{courseId} [get]
func (c *GradeController) GetGradebook(ctx *gin.Context) {
	courseID, ok := parseUUIDParam(ctx, "courseId")
	if !ok {
		return
	}

	rows, err := c.gradeService.GetGradebook(ctx, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	summaries := make([]dto.GradeSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, dto.GradeSummary{
			StudentID:   row.StudentID.String(),
			StudentName: row.StudentName,
			Scores:      row.Scores,
			Average:     row.Average,
			Trend:       string(row.Trend),
		})
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(summaries, "Gradebook retrieved"))
}

// DeleteGrade removes one score
// @Summary Delete a grade
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param id path string true "Grade ID" Format(uuid)
// @Success 200 {object} dto.APIResponse "Grade deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid grade ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Grade not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /grades/{id} [delete]
func (c *GradeController) DeleteGrade(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.gradeService.DeleteGrade(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Grade deleted"))
}
