// Package stats holds the pure summary computations the dashboard views
// depend on. Every function operates on already-fetched rows; none of
// them touch the database.
package stats

import (
	"math"

	"github.com/google/uuid"

	"github.com/englishclub/academy/internal/app/models"
)

// PaymentStanding classifies a student's overall payment situation.
type PaymentStanding string

const (
	// StandingOutstanding means at least one pending or overdue month
	// exists. It dominates any number of paid months.
	StandingOutstanding PaymentStanding = "OUTSTANDING"
	// StandingCurrent means payment history exists and nothing is owed.
	StandingCurrent PaymentStanding = "CURRENT"
	// StandingNoHistory means the student has no payment rows at all.
	StandingNoHistory PaymentStanding = "NO_HISTORY"
)

// ClassifyPayments derives a student's standing from their payment rows.
func ClassifyPayments(payments []models.Payment) PaymentStanding {
	if len(payments) == 0 {
		return StandingNoHistory
	}
	for _, p := range payments {
		if p.Status == models.PaymentPending || p.Status == models.PaymentOverdue {
			return StandingOutstanding
		}
	}
	return StandingCurrent
}

// ClassifyPaymentsByStudent buckets payment rows per student and
// classifies each bucket. Students without rows are absent from the map.
func ClassifyPaymentsByStudent(payments []models.Payment) map[string]PaymentStanding {
	standings := make(map[string]PaymentStanding)
	for _, p := range payments {
		key := p.StudentID.String()
		if p.Status == models.PaymentPending || p.Status == models.PaymentOverdue {
			standings[key] = StandingOutstanding
		} else if _, seen := standings[key]; !seen {
			standings[key] = StandingCurrent
		}
	}
	return standings
}

// AttendanceRate returns the percentage of PRESENT records, rounded to
// the nearest integer. ok is false when there are no records; callers
// must render a "no data" marker rather than 0.
func AttendanceRate(records []models.Attendance) (rate int, ok bool) {
	if len(records) == 0 {
		return 0, false
	}
	present := 0
	for _, r := range records {
		if r.Status == models.AttendancePresent {
			present++
		}
	}
	return int(math.Round(float64(present) / float64(len(records)) * 100)), true
}

// AttendanceBreakdown counts records per status. Percentage counts
// present, late and excused records as attended, matching the report
// card rather than the roster view's strict present-only rate.
type AttendanceBreakdown struct {
	Total      int `json:"total"`
	Present    int `json:"present"`
	Absent     int `json:"absent"`
	Late       int `json:"late"`
	Excused    int `json:"excused"`
	Percentage int `json:"percentage"`
}

// BreakdownAttendance tallies records into an AttendanceBreakdown.
// ok is false when there are no records.
func BreakdownAttendance(records []models.Attendance) (AttendanceBreakdown, bool) {
	var b AttendanceBreakdown
	b.Total = len(records)
	if b.Total == 0 {
		return b, false
	}
	for _, r := range records {
		switch r.Status {
		case models.AttendancePresent:
			b.Present++
		case models.AttendanceAbsent:
			b.Absent++
		case models.AttendanceLate:
			b.Late++
		case models.AttendanceExcused:
			b.Excused++
		}
	}
	attended := b.Present + b.Late + b.Excused
	b.Percentage = int(math.Round(float64(attended) / float64(b.Total) * 100))
	return b, true
}

// GradeAverage returns the rounded mean of the non-nil periodic exam
// scores (slots 1-4). Nil slots are excluded from both numerator and
// denominator. ok is false when no periodic slot has a score.
func GradeAverage(grades []models.Grade) (avg int, ok bool) {
	sum, n := 0, 0
	for _, g := range grades {
		if g.IsPeriodic() && g.Score != nil {
			sum += *g.Score
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return int(math.Round(float64(sum) / float64(n))), true
}

// Trend describes the direction of the last two periodic exam scores.
type Trend string

const (
	TrendUp     Trend = "UP"
	TrendDown   Trend = "DOWN"
	TrendStable Trend = "STABLE"
	TrendNone   Trend = "NONE"
)

// GradeTrend compares the last two non-nil periodic scores in slot
// order. Fewer than two scored slots yields TrendNone.
func GradeTrend(grades []models.Grade) Trend {
	scores := periodicScoresInOrder(grades)
	if len(scores) < 2 {
		return TrendNone
	}
	last, prev := scores[len(scores)-1], scores[len(scores)-2]
	switch {
	case last > prev:
		return TrendUp
	case last < prev:
		return TrendDown
	default:
		return TrendStable
	}
}

// periodicScoresInOrder collects non-nil periodic scores sorted by exam
// slot. Input order does not matter.
func periodicScoresInOrder(grades []models.Grade) []int {
	bySlot := [models.PeriodicSlotMax + 1]*int{}
	for _, g := range grades {
		if g.IsPeriodic() && g.Score != nil {
			bySlot[g.ExamNumber] = g.Score
		}
	}
	var scores []int
	for slot := models.ExamSlotMin; slot <= models.PeriodicSlotMax; slot++ {
		if bySlot[slot] != nil {
			scores = append(scores, *bySlot[slot])
		}
	}
	return scores
}

// ScoreForSlot returns the score recorded in the given exam slot, or
// nil when the slot is missing or ungraded.
func ScoreForSlot(grades []models.Grade, slot int) *int {
	for _, g := range grades {
		if g.ExamNumber == slot {
			return g.Score
		}
	}
	return nil
}

// Occupancy returns enrolled/max as a rounded percentage. The value is
// unclamped so over-enrollment shows as >100.
func Occupancy(enrolled, maxStudents int) int {
	if maxStudents <= 0 {
		return 0
	}
	return int(math.Round(float64(enrolled) / float64(maxStudents) * 100))
}

// CourseOccupancy pairs one course's roster size with its capacity.
type CourseOccupancy struct {
	CourseID      uuid.UUID `json:"courseId"`
	CourseName    string    `json:"courseName"`
	StudentsCount int       `json:"studentsCount"`
	MaxStudents   int       `json:"maxStudents"`
	Percent       int       `json:"percent"`
}
