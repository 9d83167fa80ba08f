package models

import (
	"time"

	"github.com/google/uuid"
)

// Communication is a broadcast message, optionally scoped to one course
// (nil CourseID means all courses). The email fan-out happens at
// creation time and is not part of the stored state.
type Communication struct {
	ID        uuid.UUID  `json:"id"`
	CourseID  *uuid.UUID `json:"courseId,omitempty"`
	AuthorID  *uuid.UUID `json:"authorId,omitempty"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`

	Course *Course `json:"course,omitempty"`
}
