package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/englishclub/academy/internal/app/models"
	"github.com/englishclub/academy/internal/app/models/dto"
	"github.com/englishclub/academy/internal/app/repositories"
	"github.com/englishclub/academy/internal/app/services"
	"github.com/englishclub/academy/internal/app/stats"
	"github.com/englishclub/academy/internal/middleware"
	"github.com/englishclub/academy/internal/pkg/logger"
)

// StudentController handles student operations
type StudentController struct {
	studentService services.StudentService
	courseService  services.CourseService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, courseService services.CourseService) *StudentController {
	return &StudentController{
		studentService: studentService,
		courseService:  courseService,
	}
}

func (c *StudentController) studentFromRequest(ctx *gin.Context, req *dto.CreateStudentRequest) (*models.Student, bool) {
	courseID, err := parseOptionalUUID(req.CourseID)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course ID").
			WithField("courseId").
			WithDetails("Must be a valid UUID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}

	birthDate, err := parseOptionalDate(req.BirthDate)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid birth date").
			WithField("birthDate").
			WithDetails("Must be formatted as yyyy-mm-dd")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}

	enrollmentDate, err := parseOptionalDate(req.EnrollmentDate)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid enrollment date").
			WithField("enrollmentDate").
			WithDetails("Must be formatted as yyyy-mm-dd")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}

	return &models.Student{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		BirthDate:      birthDate,
		CourseID:       courseID,
		TutorName:      req.TutorName,
		TutorPhone:     req.TutorPhone,
		TutorEmail:     req.TutorEmail,
		Address:        req.Address,
		Status:         models.StudentStatus(req.Status),
		EnrollmentDate: enrollmentDate,
		Notes:          req.Notes,
	}, true
}

// CreateStudent enrolls a new student
// @Summary Create a student
// @Description Enrolls a new student, optionally assigned to a course
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=models.Student} "Student created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Assigned course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid student data", err)
		return
	}

	student, ok := c.studentFromRequest(ctx, &req)
	if !ok {
		return
	}

	created, err := c.studentService.CreateStudent(ctx, student)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(created, "Student created"))
}

// GetStudents lists students with their derived standing
// @Summary List students
// @Description Retrieves the roster with payment standing, attendance rate and grade trend per student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param courseId query string false "Filter by course" Format(uuid)
// @Param status query string false "Filter by enrollment status" Enums(ACTIVE,INACTIVE,WITHDRAWN)
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentSummary} "Students retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [get]
func (c *StudentController) GetStudents(ctx *gin.Context) {
	filter := repositories.StudentFilter{
		Status: models.StudentStatus(ctx.Query("status")),
	}

	if courseIDStr := ctx.Query("courseId"); courseIDStr != "" {
		courseID, err := uuid.Parse(courseIDStr)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course filter").
				WithField("courseId").
				WithDetails("Must be a valid UUID")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.CourseID = &courseID
	}

	students, err := c.studentService.GetStudents(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	courseNames, err := c.courseNames(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	summaries := make([]dto.StudentSummary, 0, len(students))
	for _, student := range students {
		summary := dto.StudentSummary{
			ID:        student.ID.String(),
			FirstName: student.FirstName,
			LastName:  student.LastName,
			Status:    string(student.Status),
		}
		if student.CourseID != nil {
			courseID := student.CourseID.String()
			summary.CourseID = &courseID
			if name, ok := courseNames[*student.CourseID]; ok {
				summary.CourseName = &name
			}
		}

		standing, err := c.studentService.GetStanding(ctx, student)
		if err != nil {
			// A broken standing must not take down the roster view.
			logger.Warn().Err(err).Str("studentId", student.ID.String()).Msg("Failed to compute student standing")
			summary.PaymentStanding = string(stats.StandingNoHistory)
			summary.GradeTrend = string(stats.TrendNone)
		} else {
			summary.PaymentStanding = string(standing.PaymentStanding)
			summary.AttendanceRate = standing.AttendanceRate
			summary.GradeAverage = standing.GradeAverage
			summary.GradeTrend = string(standing.GradeTrend)
		}
		summaries = append(summaries, summary)
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(summaries, "Students retrieved"))
}

func (c *StudentController) courseNames(ctx *gin.Context) (map[uuid.UUID]string, error) {
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

// GetPaymentStandings summarizes payment standing per student
// @Summary Payment standing per student
// @Description Classifies every student with payment history as OUTSTANDING or CURRENT, keyed by student ID. Students without payments are omitted and read as NO_HISTORY.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=map[string]string} "Payment standings retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/payment-status [get]
func (c *StudentController) GetPaymentStandings(ctx *gin.Context) {
	standings, err := c.studentService.GetPaymentStandings(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(standings, "Payment standings retrieved"))
}

// GetStudentByID retrieves one student
// @Summary Get student details
// @Description Retrieves one student by ID
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [get]
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	student, err := c.studentService.GetStudentByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student, "Student retrieved"))
}

// UpdateStudent updates an existing student
// @Summary Update a student
// @Description Updates a student's personal, tutor and enrollment data
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID" Format(uuid)
// @Param request body dto.UpdateStudentRequest true "Student information"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid student data", err)
		return
	}

	student, ok := c.studentFromRequest(ctx, (*dto.CreateStudentRequest)(&req))
	if !ok {
		return
	}
	student.ID = id

	if err := c.studentService.UpdateStudent(ctx, student); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	updated, err := c.studentService.GetStudentByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(updated, "Student updated"))
}

// DeleteStudent removes a student and every dependent record
// @Summary Delete a student
// @Description Deletes a student together with attendance, grades, reports and payments
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID" Format(uuid)
// @Success 200 {object} dto.APIResponse "Student deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.studentService.DeleteStudent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Student deleted"))
}
