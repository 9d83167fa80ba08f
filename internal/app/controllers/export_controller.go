package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/englishclub/academy/internal/app/models"
	"github.com/englishclub/academy/internal/app/models/dto"
	"github.com/englishclub/academy/internal/app/repositories"
	"github.com/englishclub/academy/internal/app/services"
	"github.com/englishclub/academy/internal/middleware"
	"github.com/englishclub/academy/internal/pkg/export"
)

// ExportController produces spreadsheet downloads of the main lists
type ExportController struct {
	studentService services.StudentService
	paymentService services.PaymentService
	courseService  services.CourseService
	gradeService   services.GradeService
}

// NewExportController creates a new ExportController
func NewExportController(studentService services.StudentService, paymentService services.PaymentService, courseService services.CourseService, gradeService services.GradeService) *ExportController {
	return &ExportController{
		studentService: studentService,
		paymentService: paymentService,
		courseService:  courseService,
		gradeService:   gradeService,
	}
}

func (c *ExportController) writeCSV(ctx *gin.Context, filename string, data []byte) {
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func optionalString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func optionalDate(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.Format(dateLayout)
}

// ExportStudents downloads the roster as CSV
// @Summary Export students
// @Description Downloads the full roster as a UTF-8 CSV file
// @Tags export
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string "CSV file"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /export/students [get]
func (c *ExportController) ExportStudents(ctx *gin.Context) {
	students, err := c.studentService.GetStudents(ctx, repositories.StudentFilter{})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	courseNames, err := c.courseNames(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	rows := make([]export.Row, 0, len(students))
	for _, student := range students {
		course := ""
		if student.CourseID != nil {
			course = courseNames[*student.CourseID]
		}
		rows = append(rows, export.Row{
			"firstName":      student.FirstName,
			"lastName":       student.LastName,
			"birthDate":      optionalDate(student.BirthDate),
			"course":         course,
			"status":         string(student.Status),
			"tutorName":      optionalString(student.TutorName),
			"tutorPhone":     optionalString(student.TutorPhone),
			"tutorEmail":     optionalString(student.TutorEmail),
			"enrollmentDate": optionalDate(student.EnrollmentDate),
		})
	}

	data := export.CSV(rows, []export.Column{
		{Field: "firstName", Label: "First name"},
		{Field: "lastName", Label: "Last name"},
		{Field: "birthDate", Label: "Birth date"},
		{Field: "course", Label: "Course"},
		{Field: "status", Label: "Status"},
		{Field: "tutorName", Label: "Tutor"},
		{Field: "tutorPhone", Label: "Tutor phone"},
		{Field: "tutorEmail", Label: "Tutor email"},
		{Field: "enrollmentDate", Label: "Enrolled"},
	})

	c.writeCSV(ctx, "students.csv", data)
}

// ExportPayments downloads the payment ledger as CSV
// @Summary Export payments
// @Description Downloads charges as a UTF-8 CSV file, honoring the same filters as the list endpoint
// @Tags export
// @Produce text/csv
// @Security BearerAuth
// @Param studentId query string false "Filter by student" Format(uuid)
// @Param month query int false "Filter by month" minimum(1) maximum(12)
// @Param year query int false "Filter by year" example(2026)
// @Param status query string false "Filter by status" Enums(PENDING,PAID,OVERDUE)
// @Success 200 {string} string "CSV file"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /export/payments [get]
func (c *ExportController) ExportPayments(ctx *gin.Context) {
	paymentCtrl := PaymentController{paymentService: c.paymentService}
	filter, ok := paymentCtrl.paymentFilter(ctx)
	if !ok {
		return
	}

	payments, err := c.paymentService.GetPayments(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	studentNames, err := c.studentNames(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	rows := make([]export.Row, 0, len(payments))
	for _, payment := range payments {
		rows = append(rows, export.Row{
			"student":     studentNames[payment.StudentID],
			"month":       strconv.Itoa(payment.Month),
			"year":        strconv.Itoa(payment.Year),
			"amount":      strconv.FormatFloat(payment.Amount, 'f', 2, 64),
			"status":      string(payment.Status),
			"paymentDate": optionalDate(payment.PaymentDate),
			"method":      optionalString(payment.PaymentMethod),
			"notes":       optionalString(payment.Notes),
		})
	}

	data := export.CSV(rows, []export.Column{
		{Field: "student", Label: "Student"},
		{Field: "month", Label: "Month"},
		{Field: "year", Label: "Year"},
		{Field: "amount", Label: "Amount"},
		{Field: "status", Label: "Status"},
		{Field: "paymentDate", Label: "Paid on"},
		{Field: "method", Label: "Method"},
		{Field: "notes", Label: "Notes"},
	})

	c.writeCSV(ctx, "payments.csv", data)
}

// ExportGrades downloads one course's gradebook as CSV
// @Summary Export gradebook
// @Description Downloads the score grid of one course as a UTF-8 CSV file
// @Tags export
// @Produce text/csv
// @Security BearerAuth
// @Param courseId query string true "Course" Format(uuid)
// @Success 200 {string} string "CSV file"
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid course"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /export/grades [get]
func (c *ExportController) ExportGrades(ctx *gin.Context) {
	courseID, err := uuid.Parse(ctx.Query("courseId"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course").
			WithField("courseId").
			WithDetails("Must be a valid UUID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	gradebook, err := c.gradeService.GetGradebook(ctx, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	rows := make([]export.Row, 0, len(gradebook))
	for _, entry := range gradebook {
		row := export.Row{
			"student": entry.StudentName,
			"average": optionalScore(entry.Average),
			"trend":   string(entry.Trend),
		}
		for slot := models.ExamSlotMin; slot <= models.ExamSlotMax; slot++ {
			row[fmt.Sprintf("exam%d", slot)] = optionalScore(entry.Scores[slot])
		}
		rows = append(rows, row)
	}

	columns := []export.Column{{Field: "student", Label: "Student"}}
	for slot := models.ExamSlotMin; slot <= models.ExamSlotMax; slot++ {
		columns = append(columns, export.Column{
			Field: fmt.Sprintf("exam%d", slot),
			Label: fmt.Sprintf("Exam %d", slot),
		})
	}
	columns = append(columns,
		export.Column{Field: "average", Label: "Average"},
		export.Column{Field: "trend", Label: "Trend"},
	)

	c.writeCSV(ctx, "grades.csv", export.CSV(rows, columns))
}

func optionalScore(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}

func (c *ExportController) courseNames(ctx *gin.Context) (map[uuid.UUID]string, error) {
	courses, err := c.courseService.GetAllCourses(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(courses))
	for _, course := range courses {
		names[course.ID] = course.Name
	}
	return names, nil
}

func (c *ExportController) studentNames(ctx *gin.Context) (map[uuid.UUID]string, error) {
	students, err := c.studentService.GetStudents(ctx, repositories.StudentFilter{})
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(students))
	for _, student := range students {
		names[student.ID] = student.FullName()
	}
	return names, nil
}
