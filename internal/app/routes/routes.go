package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/englishclub/academy/internal/app/auth"
	"github.com/englishclub/academy/internal/app/controllers"
	"github.com/englishclub/academy/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	dashboardController *controllers.DashboardController,
	courseController *controllers.CourseController,
	studentController *controllers.StudentController,
	attendanceController *controllers.AttendanceController,
	gradeController *controllers.GradeController,
	reportController *controllers.ReportController,
	paymentController *controllers.PaymentController,
	communicationController *controllers.CommunicationController,
	exportController *controllers.ExportController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// Public auth routes
	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/login", authController.Login)
	}

	// Everything else requires a valid token
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/profile", authController.GetProfile)

		// Profile registration stays with administrators
		adminOnly := authenticated.Group("")
		adminOnly.Use(authMiddleware.AdminRequired())
		{
			adminOnly.POST("/auth/register", authController.Register)
		}

		// The dashboard itself is open to every signed-in role
		dashboard := authenticated.Group("/dashboard")
		dashboard.Use(authMiddleware.RoleRequired(auth.SectionDashboard))
		{
			dashboard.GET("/summary", dashboardController.GetSummary)
			dashboard.GET("/navigation", dashboardController.GetNavigation)
		}

		// Teacher lookup backs the course assignment dropdown
		teachers := authenticated.Group("/teachers")
		teachers.Use(authMiddleware.RoleRequired(auth.SectionCourses))
		{
			teachers.GET("", authController.GetTeachers)
		}

		courses := authenticated.Group("/courses")
		courses.Use(authMiddleware.RoleRequired(auth.SectionCourses))
		{
			courses.GET("", courseController.GetAllCourses)
			courses.GET("/occupancy", courseController.GetOccupancy)
			courses.GET("/:id", courseController.GetCourseByID)
			courses.POST("", courseController.CreateCourse)
			courses.PUT("/:id", courseController.UpdateCourse)
			courses.DELETE("/:id", courseController.DeleteCourse)
		}

		students := authenticated.Group("/students")
		students.Use(authMiddleware.RoleRequired(auth.SectionStudents))
		{
			students.GET("", studentController.GetStudents)
			students.GET("/payment-status", studentController.GetPaymentStandings)
			students.GET("/:id", studentController.GetStudentByID)
			students.POST("", studentController.CreateStudent)
			students.PUT("/:id", studentController.UpdateStudent)
			students.DELETE("/:id", studentController.DeleteStudent)
		}

		attendance := authenticated.Group("/attendance")
		attendance.Use(authMiddleware.RoleRequired(auth.SectionAttendance))
		{
			attendance.GET("", attendanceController.GetByCourseAndDate)
			attendance.GET("/students/:studentId", attendanceController.GetByStudent)
			attendance.PUT("", attendanceController.UpsertAttendance)
			attendance.POST("/bulk", attendanceController.BulkMark)
			attendance.DELETE("/:id", attendanceController.DeleteAttendance)
		}

		grades := authenticated.Group("/grades")
		grades.Use(authMiddleware.RoleRequired(auth.SectionGrades))
		{
			grades.GET("", gradeController.GetByStudentAndCourse)
			grades.GET("/gradebook/:courseId", gradeController.GetGradebook)
			grades.PUT("", gradeController.UpsertGrade)
			grades.DELETE("/:id", gradeController.DeleteGrade)
		}

		reports := authenticated.Group("/reports")
		reports.Use(authMiddleware.RoleRequired(auth.SectionReports))
		{
			reports.GET("/students/:studentId", reportController.GetByStudent)
			reports.GET("/students/:studentId/card", reportController.GetReportCard)
			reports.PUT("", reportController.UpsertReport)
			reports.DELETE("/:id", reportController.DeleteReport)
		}

		payments := authenticated.Group("/payments")
		payments.Use(authMiddleware.RoleRequired(auth.SectionPayments))
		{
			payments.GET("", paymentController.GetPayments)
			payments.PUT("", paymentController.UpsertPayment)
			payments.DELETE("/:id", paymentController.DeletePayment)
		}

		concepts := authenticated.Group("/payment-concepts")
		concepts.Use(authMiddleware.RoleRequired(auth.SectionPayments))
		{
			concepts.GET("", paymentController.GetConcepts)
			concepts.POST("", paymentController.CreateConcept)
			concepts.PUT("/:id", paymentController.UpdateConcept)
			concepts.DELETE("/:id", paymentController.DeleteConcept)
		}

		communications := authenticated.Group("/communications")
		communications.Use(authMiddleware.RoleRequired(auth.SectionCommunications))
		{
			communications.GET("", communicationController.GetCommunications)
			communications.POST("", communicationController.CreateCommunication)
			communications.DELETE("/:id", communicationController.DeleteCommunication)
		}

		// Exports follow the permissions of the lists they render
		exports := authenticated.Group("/export")
		{
			exportStudents := exports.Group("")
			exportStudents.Use(authMiddleware.RoleRequired(auth.SectionStudents))
			exportStudents.GET("/students", exportController.ExportStudents)

			exportPayments := exports.Group("")
			exportPayments.Use(authMiddleware.RoleRequired(auth.SectionPayments))
			exportPayments.GET("/payments", exportController.ExportPayments)

			exportGrades := exports.Group("")
			exportGrades.Use(authMiddleware.RoleRequired(auth.SectionGrades))
			exportGrades.GET("/grades", exportController.ExportGrades)
		}
	}
}
