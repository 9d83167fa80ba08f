package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
)

// Course errors
var (
	ErrCourseNotFound    = errors.New("course not found")
	ErrCourseHasStudents = errors.New("course has enrolled students and cannot be deleted")
)

// Student errors
var (
	ErrStudentNotFound = errors.New("student not found")
	// ErrStudentUnassigned is returned when an operation needs the
	// student's course and none is assigned.
	ErrStudentUnassigned = errors.New("student is not assigned to a course")
)

// Payment errors
var (
	ErrPaymentNotFound        = errors.New("payment not found")
	ErrPaymentConceptNotFound = errors.New("payment concept not found")
)

// Communication errors
var (
	ErrCommunicationNotFound = errors.New("communication not found")
)

// User errors
var (
	ErrUserNotFound = errors.New("user not found")
)
