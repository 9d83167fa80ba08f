package models

import (
	"time"

	"github.com/google/uuid"
)

// Attendance is one record per student per course per calendar date.
// (student_id, course_id, date) is the natural key.
type Attendance struct {
	ID        uuid.UUID        `json:"id"`
	StudentID uuid.UUID        `json:"studentId"`
	CourseID  uuid.UUID        `json:"courseId"`
	Date      time.Time        `json:"date"`
	Status    AttendanceStatus `json:"status"`
	Notes     *string          `json:"notes,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`

	Student *Student `json:"student,omitempty"`
}
