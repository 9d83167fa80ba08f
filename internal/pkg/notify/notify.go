// Package notify delivers communication emails to tutors. Delivery is
// best effort: the communication record is already persisted before any
// dispatcher runs, and dispatch failures are logged by the caller and
// never surfaced as a failure of the creating action.
package notify

import "context"

// Recipient is one tutor to notify, with the student the message is
// about.
type Recipient struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	StudentName string `json:"studentName"`
}

// Result summarizes a dispatch attempt.
type Result struct {
	Sent   int
	Errors int
}

// Dispatcher fans a communication out to its recipients.
type Dispatcher interface {
	SendCommunication(ctx context.Context, title, content string, recipients []Recipient) (Result, error)
}
