package dto

// UpsertGradeRequest carries one exam score. The (studentId, courseId,
// examNumber) triple identifies the record. A nil score registers the
// slot as ungraded.
type UpsertGradeRequest struct {
	StudentID  string  `json:"studentId" binding:"required"`
	CourseID   string  `json:"courseId" binding:"required"`
	ExamNumber int     `json:"examNumber" binding:"required,min=1,max=6"`
	Score      *int    `json:"score"`
	Date       *string `json:"date"`
	Notes      *string `json:"notes"`
}

// GradeSummary is the gradebook view of one student in one course,
// scores indexed by exam slot.
type GradeSummary struct {
	StudentID   string       `json:"studentId"`
	StudentName string       `json:"studentName"`
	Scores      map[int]*int `json:"scores"`
	Average     *int         `json:"average,omitempty"`
	Trend       string       `json:"trend"`
}
