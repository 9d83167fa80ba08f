package stats

import (
	"testing"

	"github.com/google/uuid"

	"github.com/englishclub/academy/internal/app/models"
)

func intPtr(v int) *int { return &v }

func gradesFromScores(scores []*int) []models.Grade {
	grades := make([]models.Grade, 0, len(scores))
	for i, s := range scores {
		grades = append(grades, models.Grade{ExamNumber: i + 1, Score: s})
	}
	return grades
}

func attendanceWith(statuses ...models.AttendanceStatus) []models.Attendance {
	records := make([]models.Attendance, 0, len(statuses))
	for _, st := range statuses {
		records = append(records, models.Attendance{Status: st})
	}
	return records
}

func TestClassifyPayments(t *testing.T) {
	tests := []struct {
		name     string
		statuses []models.PaymentStatus
		want     PaymentStanding
	}{
		{name: "no rows", want: StandingNoHistory},
		{name: "all paid", statuses: []models.PaymentStatus{models.PaymentPaid, models.PaymentPaid}, want: StandingCurrent},
		{name: "overdue dominates paid", statuses: []models.PaymentStatus{models.PaymentPaid, models.PaymentOverdue, models.PaymentPaid}, want: StandingOutstanding},
		{name: "pending dominates", statuses: []models.PaymentStatus{models.PaymentPending}, want: StandingOutstanding},
		{name: "many paid one overdue", statuses: append(paidMonths(10), models.PaymentOverdue), want: StandingOutstanding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payments []models.Payment
			for _, st := range tt.statuses {
				payments = append(payments, models.Payment{Status: st})
			}
			if got := ClassifyPayments(payments); got != tt.want {
				t.Errorf("ClassifyPayments() = %v, want %v", got, tt.want)
			}
		})
	}
}

func paidMonths(n int) []models.PaymentStatus {
	statuses := make([]models.PaymentStatus, n)
	for i := range statuses {
		statuses[i] = models.PaymentPaid
	}
	return statuses
}

func TestClassifyPaymentsByStudent(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()
	payments := []models.Payment{
		{StudentID: alice, Status: models.PaymentPaid},
		{StudentID: alice, Status: models.PaymentOverdue},
		{StudentID: alice, Status: models.PaymentPaid},
		{StudentID: bob, Status: models.PaymentPaid},
	}

	standings := ClassifyPaymentsByStudent(payments)
	if got := standings[alice.String()]; got != StandingOutstanding {
		t.Errorf("alice standing = %v, want %v", got, StandingOutstanding)
	}
	if got := standings[bob.String()]; got != StandingCurrent {
		t.Errorf("bob standing = %v, want %v", got, StandingCurrent)
	}
	if _, exists := standings[uuid.New().String()]; exists {
		t.Error("student without payments should not appear in standings")
	}
}

func TestAttendanceRate(t *testing.T) {
	t.Run("seven of ten present", func(t *testing.T) {
		records := attendanceWith(
			models.AttendancePresent, models.AttendancePresent, models.AttendancePresent,
			models.AttendancePresent, models.AttendancePresent, models.AttendancePresent,
			models.AttendancePresent, models.AttendanceAbsent, models.AttendanceLate,
			models.AttendanceExcused,
		)
		rate, ok := AttendanceRate(records)
		if !ok {
			t.Fatal("expected ok for non-empty records")
		}
		if rate != 70 {
			t.Errorf("rate = %d, want 70", rate)
		}
	})

	t.Run("no records is no data, not zero", func(t *testing.T) {
		if _, ok := AttendanceRate(nil); ok {
			t.Error("expected ok=false for empty records")
		}
	})
}

func TestBreakdownAttendance(t *testing.T) {
	records := attendanceWith(
		models.AttendancePresent, models.AttendancePresent,
		models.AttendanceLate, models.AttendanceExcused, models.AttendanceAbsent,
	)
	b, ok := BreakdownAttendance(records)
	if !ok {
		t.Fatal("expected ok")
	}
	if b.Present != 2 || b.Absent != 1 || b.Late != 1 || b.Excused != 1 || b.Total != 5 {
		t.Errorf("unexpected counts: %+v", b)
	}
	// 4 of 5 attended (present+late+excused)
	if b.Percentage != 80 {
		t.Errorf("percentage = %d, want 80", b.Percentage)
	}

	if _, ok := BreakdownAttendance(nil); ok {
		t.Error("expected ok=false for empty records")
	}
}

func TestGradeAverage(t *testing.T) {
	tests := []struct {
		name   string
		scores []*int
		want   int
		wantOK bool
	}{
		{name: "null slots excluded", scores: []*int{intPtr(80), nil, intPtr(90), nil}, want: 85, wantOK: true},
		{name: "all null is no data", scores: []*int{nil, nil, nil, nil}, wantOK: false},
		{name: "rounding", scores: []*int{intPtr(70), intPtr(71), intPtr(70)}, want: 70, wantOK: true},
		{name: "empty", scores: nil, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avg, ok := GradeAverage(gradesFromScores(tt.scores))
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && avg != tt.want {
				t.Errorf("avg = %d, want %d", avg, tt.want)
			}
		})
	}
}

func TestGradeAverageIgnoresOralAndFinal(t *testing.T) {
	grades := []models.Grade{
		{ExamNumber: 1, Score: intPtr(80)},
		{ExamNumber: 2, Score: intPtr(90)},
		{ExamNumber: models.ExamSlotOral, Score: intPtr(10)},
		{ExamNumber: models.ExamSlotFinal, Score: intPtr(10)},
	}
	avg, ok := GradeAverage(grades)
	if !ok || avg != 85 {
		t.Errorf("avg = %d ok=%v, want 85 true (slots 5 and 6 excluded)", avg, ok)
	}
}

func TestGradeTrend(t *testing.T) {
	tests := []struct {
		name   string
		scores []*int
		want   Trend
	}{
		{name: "up", scores: []*int{intPtr(70), intPtr(80)}, want: TrendUp},
		{name: "down", scores: []*int{intPtr(80), intPtr(70)}, want: TrendDown},
		{name: "stable", scores: []*int{intPtr(90), intPtr(90)}, want: TrendStable},
		{name: "single score is no data", scores: []*int{intPtr(80)}, want: TrendNone},
		{name: "empty", scores: nil, want: TrendNone},
		{name: "nulls skipped, last two compared", scores: []*int{intPtr(60), nil, intPtr(70), intPtr(80)}, want: TrendUp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GradeTrend(gradesFromScores(tt.scores)); got != tt.want {
				t.Errorf("GradeTrend() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGradeTrendSlotOrderIndependentOfInput(t *testing.T) {
	// Rows arrive unordered from the store; slot order decides the trend.
	grades := []models.Grade{
		{ExamNumber: 4, Score: intPtr(60)},
		{ExamNumber: 3, Score: intPtr(90)},
	}
	if got := GradeTrend(grades); got != TrendDown {
		t.Errorf("GradeTrend() = %v, want %v", got, TrendDown)
	}
}

func TestOccupancy(t *testing.T) {
	tests := []struct {
		name     string
		enrolled int
		max      int
		want     int
	}{
		{name: "over-enrolled is not clamped", enrolled: 18, max: 15, want: 120},
		{name: "exact", enrolled: 15, max: 15, want: 100},
		{name: "partial", enrolled: 12, max: 15, want: 80},
		{name: "empty course", enrolled: 0, max: 15, want: 0},
		{name: "zero capacity guards division", enrolled: 3, max: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Occupancy(tt.enrolled, tt.max); got != tt.want {
				t.Errorf("Occupancy(%d, %d) = %d, want %d", tt.enrolled, tt.max, got, tt.want)
			}
		})
	}
}

func TestBuildReportCard(t *testing.T) {
	student := &models.Student{FirstName: "Ana", LastName: "García"}
	teacherName := "Laura"
	course := &models.Course{Name: "B2 Adults", TeacherName: &teacherName}
	content := "Great progress this stage."
	grades := []models.Grade{
		{ExamNumber: 1, Score: intPtr(80)},
		{ExamNumber: 3, Score: intPtr(90)},
		{ExamNumber: models.ExamSlotFinal, Score: intPtr(95)},
	}
	reports := []models.Report{
		{Semester: 1, Year: 2026, Content: &content},
		{Semester: 2, Year: 2025, Content: &content}, // wrong year, ignored
	}
	attendance := attendanceWith(models.AttendancePresent, models.AttendanceAbsent)

	card := BuildReportCard(student, course, grades, reports, attendance, 2026)

	if card.StudentName != "Ana García" {
		t.Errorf("StudentName = %q", card.StudentName)
	}
	if card.Level != "B2 Adults" || card.Teacher != "Laura" {
		t.Errorf("course block = %q / %q", card.Level, card.Teacher)
	}
	if card.Stage1Report == nil || *card.Stage1Report != content {
		t.Error("stage 1 report missing")
	}
	if card.Stage2Report != nil {
		t.Error("stage 2 report from another year must not leak in")
	}
	if card.Exam2 != nil || card.Exam4 != nil || card.Oral != nil {
		t.Error("ungraded slots must stay nil")
	}
	if card.YearlyAverage == nil || *card.YearlyAverage != 85 {
		t.Errorf("YearlyAverage = %v, want 85", card.YearlyAverage)
	}
	if card.Final == nil || *card.Final != 95 {
		t.Errorf("Final = %v, want 95", card.Final)
	}
	if card.Attendance == nil || card.Attendance.Total != 2 {
		t.Errorf("Attendance = %+v", card.Attendance)
	}
}

func TestBuildReportCardWithoutData(t *testing.T) {
	student := &models.Student{FirstName: "Leo", LastName: "Pérez"}

	card := BuildReportCard(student, nil, nil, nil, nil, 2026)

	if card.YearlyAverage != nil {
		t.Error("average without grades must be nil, not zero")
	}
	if card.Attendance != nil {
		t.Error("attendance block must be omitted when no records exist")
	}
	if card.Stage1Report != nil || card.Stage2Report != nil {
		t.Error("stage reports must be nil when absent")
	}
}
