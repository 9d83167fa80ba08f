package dto

// UpsertReportRequest carries one stage report. The (studentId,
// courseId, semester, year) tuple identifies the record.
type UpsertReportRequest struct {
	StudentID string  `json:"studentId" binding:"required"`
	CourseID  string  `json:"courseId" binding:"required"`
	Semester  int     `json:"semester" binding:"required,min=1,max=2"`
	Year      int     `json:"year" binding:"required"`
	Content   *string `json:"content"`
	Status    string  `json:"status" enums:"PENDING,DRAFT,FINALIZED,DELIVERED"`
	Period    *string `json:"period"`
}
