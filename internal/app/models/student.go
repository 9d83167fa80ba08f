package models

import (
	"time"

	"github.com/google/uuid"
)

// Student represents an enrolled (or unassigned) student. The tutor
// fields identify the guardian who receives communications and owes
// payments.
type Student struct {
	ID             uuid.UUID     `json:"id"`
	FirstName      string        `json:"firstName"`
	LastName       string        `json:"lastName"`
	BirthDate      *time.Time    `json:"birthDate,omitempty"`
	CourseID       *uuid.UUID    `json:"courseId,omitempty"`
	TutorName      *string       `json:"tutorName,omitempty"`
	TutorPhone     *string       `json:"tutorPhone,omitempty"`
	TutorEmail     *string       `json:"tutorEmail,omitempty"`
	Address        *string       `json:"address,omitempty"`
	Status         StudentStatus `json:"status"`
	EnrollmentDate *time.Time    `json:"enrollmentDate,omitempty"`
	Notes          *string       `json:"notes,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`

	Course *Course `json:"course,omitempty"`
}

// FullName returns "First Last" for display and exports.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
