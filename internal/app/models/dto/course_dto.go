package dto

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	Name        string  `json:"name" binding:"required"`
	Level       string  `json:"level" binding:"required"`
	Schedule    string  `json:"schedule"`
	MaxStudents int     `json:"maxStudents" binding:"required,gt=0"`
	TeacherID   *string `json:"teacherId"`
	TeacherName *string `json:"teacherName"`
}

// UpdateCourseRequest represents course update data
type UpdateCourseRequest struct {
	Name        string  `json:"name" binding:"required"`
	Level       string  `json:"level" binding:"required"`
	Schedule    string  `json:"schedule"`
	MaxStudents int     `json:"maxStudents" binding:"required,gt=0"`
	TeacherID   *string `json:"teacherId"`
	TeacherName *string `json:"teacherName"`
}
