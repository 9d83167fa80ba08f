package models

import (
	"time"

	"github.com/google/uuid"
)

// Course represents a course group at the academy
type Course struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Level       string     `json:"level"`
	Schedule    string     `json:"schedule"`
	MaxStudents int        `json:"maxStudents"`
	TeacherID   *uuid.UUID `json:"teacherId,omitempty"`
	TeacherName *string    `json:"teacherName,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`

	// StudentsCount is derived from the roster, not stored.
	StudentsCount int `json:"studentsCount"`
}
