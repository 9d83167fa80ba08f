package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a staff or parent profile able to sign in to the dashboard.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	RoleType     RoleType  `json:"roleType"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FullName returns "First Last" for display.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
