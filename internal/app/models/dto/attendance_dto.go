package dto

// UpsertAttendanceRequest carries one attendance mark. The
// (studentId, courseId, date) triple identifies the record, posting
// the same triple twice updates in place.
type UpsertAttendanceRequest struct {
	StudentID string  `json:"studentId" binding:"required"`
	CourseID  string  `json:"courseId" binding:"required"`
	Date      string  `json:"date" binding:"required" example:"2026-03-12"`
	Status    string  `json:"status" binding:"required" enums:"PRESENT,ABSENT,LATE,EXCUSED"`
	Notes     *string `json:"notes"`
}

// BulkAttendanceRequest marks a whole course roster for one date
type BulkAttendanceRequest struct {
	CourseID string                `json:"courseId" binding:"required"`
	Date     string                `json:"date" binding:"required" example:"2026-03-12"`
	Marks    []BulkAttendanceEntry `json:"marks" binding:"required,dive"`
}

// BulkAttendanceEntry is one roster row inside a bulk request
type BulkAttendanceEntry struct {
	StudentID string  `json:"studentId" binding:"required"`
	Status    string  `json:"status" binding:"required" enums:"PRESENT,ABSENT,LATE,EXCUSED"`
	Notes     *string `json:"notes"`
}
