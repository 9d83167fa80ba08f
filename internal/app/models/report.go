package models

import (
	"time"

	"github.com/google/uuid"
)

// Report is a free-text stage evaluation, two expected per student per
// year. (student_id, course_id, semester, year) is the natural key.
type Report struct {
	ID        uuid.UUID    `json:"id"`
	StudentID uuid.UUID    `json:"studentId"`
	CourseID  uuid.UUID    `json:"courseId"`
	Semester  int          `json:"semester"`
	Year      int          `json:"year"`
	Content   *string      `json:"content"`
	Status    ReportStatus `json:"status"`
	Period    *string      `json:"period,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`

	Student *Student `json:"student,omitempty"`
}
