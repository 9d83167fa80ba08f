package stats

import (
	"time"

	"github.com/englishclub/academy/internal/app/models"
)

// ReportCard is the structured description of a printable report card.
// Optional fields are pointers; a nil value renders as an explicit
// "not available" marker, never as zero.
type ReportCard struct {
	StudentName string `json:"studentName"`
	Level       string `json:"level"`
	Teacher     string `json:"teacher"`
	Year        int    `json:"year"`

	Stage1Report *string `json:"stage1Report"`
	Stage2Report *string `json:"stage2Report"`

	Exam1 *int `json:"exam1"`
	Exam2 *int `json:"exam2"`
	Exam3 *int `json:"exam3"`
	Exam4 *int `json:"exam4"`
	Oral  *int `json:"oral"`
	Final *int `json:"final"`

	YearlyAverage *int `json:"yearlyAverage"`

	Attendance *AttendanceBreakdown `json:"attendance,omitempty"`

	GeneratedAt time.Time `json:"generatedAt"`
}

// BuildReportCard aggregates a student's year into a report card. All
// inputs are already-fetched rows; any of them may be empty.
func BuildReportCard(
	student *models.Student,
	course *models.Course,
	grades []models.Grade,
	reports []models.Report,
	attendance []models.Attendance,
	year int,
) ReportCard {
	card := ReportCard{
		StudentName: student.FullName(),
		Level:       "Sin asignar",
		Teacher:     "Docente",
		Year:        year,
		GeneratedAt: time.Now(),
	}

	if course != nil {
		card.Level = course.Name
		if course.TeacherName != nil {
			card.Teacher = *course.TeacherName
		}
	}

	for _, r := range reports {
		if r.Year != year || r.Content == nil {
			continue
		}
		switch r.Semester {
		case 1:
			card.Stage1Report = r.Content
		case 2:
			card.Stage2Report = r.Content
		}
	}

	card.Exam1 = ScoreForSlot(grades, 1)
	card.Exam2 = ScoreForSlot(grades, 2)
	card.Exam3 = ScoreForSlot(grades, 3)
	card.Exam4 = ScoreForSlot(grades, 4)
	card.Oral = ScoreForSlot(grades, models.ExamSlotOral)
	card.Final = ScoreForSlot(grades, models.ExamSlotFinal)

	if avg, ok := GradeAverage(grades); ok {
		card.YearlyAverage = &avg
	}

	if breakdown, ok := BreakdownAttendance(attendance); ok {
		card.Attendance = &breakdown
	}

	return card
}
