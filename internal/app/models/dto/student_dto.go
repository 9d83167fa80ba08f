package dto

// CreateStudentRequest represents student enrollment data
type CreateStudentRequest struct {
	FirstName      string  `json:"firstName" binding:"required"`
	LastName       string  `json:"lastName" binding:"required"`
	BirthDate      *string `json:"birthDate"`
	CourseID       *string `json:"courseId"`
	TutorName      *string `json:"tutorName"`
	TutorPhone     *string `json:"tutorPhone"`
	TutorEmail     *string `json:"tutorEmail"`
	Address        *string `json:"address"`
	Status         string  `json:"status" enums:"ACTIVE,INACTIVE,WITHDRAWN"`
	EnrollmentDate *string `json:"enrollmentDate"`
	Notes          *string `json:"notes"`
}

// UpdateStudentRequest represents student update data
type UpdateStudentRequest struct {
	FirstName      string  `json:"firstName" binding:"required"`
	LastName       string  `json:"lastName" binding:"required"`
	BirthDate      *string `json:"birthDate"`
	CourseID       *string `json:"courseId"`
	TutorName      *string `json:"tutorName"`
	TutorPhone     *string `json:"tutorPhone"`
	TutorEmail     *string `json:"tutorEmail"`
	Address        *string `json:"address"`
	Status         string  `json:"status" enums:"ACTIVE,INACTIVE,WITHDRAWN"`
	EnrollmentDate *string `json:"enrollmentDate"`
	Notes          *string `json:"notes"`
}

// StudentSummary is the roster view of a student with derived
// standing columns.
type StudentSummary struct {
	ID              string  `json:"id"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	CourseID        *string `json:"courseId,omitempty"`
	CourseName      *string `json:"courseName,omitempty"`
	Status          string  `json:"status"`
	PaymentStanding string  `json:"paymentStanding"`
	AttendanceRate  *int    `json:"attendanceRate,omitempty"`
	GradeAverage    *int    `json:"gradeAverage,omitempty"`
	GradeTrend      string  `json:"gradeTrend"`
}
