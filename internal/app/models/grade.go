package models

import (
	"time"

	"github.com/google/uuid"
)

// Grade is one record per student per course per exam slot.
// (student_id, course_id, exam_number) is the natural key. A nil score
// means the slot exists but is ungraded.
type Grade struct {
	ID         uuid.UUID  `json:"id"`
	StudentID  uuid.UUID  `json:"studentId"`
	CourseID   uuid.UUID  `json:"courseId"`
	ExamNumber int        `json:"examNumber"`
	Score      *int       `json:"score"`
	Date       *time.Time `json:"date,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`

	Student *Student `json:"student,omitempty"`
}

// IsPeriodic reports whether the grade sits in one of the four periodic
// exam slots that feed the yearly average.
func (g *Grade) IsPeriodic() bool {
	return g.ExamNumber >= ExamSlotMin && g.ExamNumber <= PeriodicSlotMax
}
