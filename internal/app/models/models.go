package models

// RoleType defines the staff/parent role attached to a profile
type RoleType string

const (
	RoleAdmin     RoleType = "ADMIN"
	RoleSecretary RoleType = "SECRETARY"
	RoleTeacher   RoleType = "TEACHER"
	RoleParent    RoleType = "PARENT"
)

// AttendanceStatus is the canonical attendance vocabulary.
// Stored values are English regardless of the UI language.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
	AttendanceExcused AttendanceStatus = "EXCUSED"
)

// Valid reports whether s is a known attendance status.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused:
		return true
	}
	return false
}

// PaymentStatus is the canonical payment vocabulary. Every comparison
// site uses these identifiers; localized labels live in the UI only.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentOverdue PaymentStatus = "OVERDUE"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentOverdue:
		return true
	}
	return false
}

// ReportStatus tracks the lifecycle of a stage report.
type ReportStatus string

const (
	ReportPending   ReportStatus = "PENDING"
	ReportDraft     ReportStatus = "DRAFT"
	ReportFinalized ReportStatus = "FINALIZED"
	ReportDelivered ReportStatus = "DELIVERED"
)

// Valid reports whether s is a known report status.
func (s ReportStatus) Valid() bool {
	switch s {
	case ReportPending, ReportDraft, ReportFinalized, ReportDelivered:
		return true
	}
	return false
}

// StudentStatus tracks enrollment state.
type StudentStatus string

const (
	StudentActive    StudentStatus = "ACTIVE"
	StudentInactive  StudentStatus = "INACTIVE"
	StudentWithdrawn StudentStatus = "WITHDRAWN"
)

// Exam slot layout: slots 1-4 are the periodic written exams, slot 5 is
// the oral/project mark and slot 6 the final exam.
const (
	ExamSlotMin     = 1
	ExamSlotMax     = 6
	PeriodicSlotMax = 4
	ExamSlotOral    = 5
	ExamSlotFinal   = 6
	ScoreMin        = 0
	ScoreMax        = 100
)
