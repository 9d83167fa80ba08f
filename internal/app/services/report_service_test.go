package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/englishclub/academy/internal/app/models"
	"github.com/englishclub/academy/internal/pkg/apperrors"
)

type fakeReportStore struct {
	records map[string]*models.Report
}

func newFakeReportStore() *fakeReportStore {
	return &fakeReportStore{records: make(map[string]*models.Report)}
}

func reportKey(studentID, courseID uuid.UUID, semester, year int) string {
	return fmt.Sprintf("%s|%s|%d|%d", studentID, courseID, semester, year)
}

func (f *fakeReportStore) FindByNaturalKey(_ context.Context, studentID, courseID uuid.UUID, semester, year int) (*models.Report, error) {
	if report, ok := f.records[reportKey(studentID, courseID, semester, year)]; ok {
		copied := *report
		return &copied, nil
	}
	return nil, apperrors.ErrResourceNotFound
}

func (f *fakeReportStore) CreateReport(_ context.Context, report *models.Report) (uuid.UUID, error) {
	id := uuid.New()
	stored := *report
	stored.ID = id
	f.records[reportKey(report.StudentID, report.CourseID, report.Semester, report.Year)] = &stored
	return id, nil
}

func (f *fakeReportStore) UpdateReport(_ context.Context, report *models.Report) error {
	for key, stored := range f.records {
		if stored.ID == report.ID {
			copied := *report
			f.records[key] = &copied
			return nil
		}
	}
	return apperrors.ErrResourceNotFound
}

func (f *fakeReportStore) GetByStudent(_ context.Context, studentID uuid.UUID, courseID *uuid.UUID, year *int) ([]*models.Report, error) {
	out := []*models.Report{}
	for _, report := range f.records {
		if report.StudentID != studentID {
			continue
		}
		if courseID != nil && report.CourseID != *courseID {
			continue
		}
		if year != nil && report.Year != *year {
			continue
		}
		out = append(out, report)
	}
	return out, nil
}

func (f *fakeReportStore) DeleteReport(_ context.Context, id uuid.UUID) error {
	for key, stored := range f.records {
		if stored.ID == id {
			delete(f.records, key)
			return nil
		}
	}
	return apperrors.ErrResourceNotFound
}

func newReportService(reports *fakeReportStore, students *fakeStudentStore, courses *fakeCourseStore, grades *fakeGradeStore, attendance *fakeAttendanceStore) ReportService {
	return NewReportService(reports, students, courses, grades, attendance)
}

func TestUpsertReportTwiceKeepsOneRow(t *testing.T) {
	store := newFakeReportStore()
	service := newReportService(store, newFakeStudentStore(), newFakeCourseStore(), newFakeGradeStore(), newFakeAttendanceStore())

	studentID := uuid.New()
	courseID := uuid.New()

	first, err := service.UpsertReport(context.Background(), &models.Report{
		StudentID: studentID,
		CourseID:  courseID,
		Semester:  1,
		Year:      2026,
		Content:   strPtr("Buen progreso."),
		Status:    models.ReportDraft,
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second, err := service.UpsertReport(context.Background(), &models.Report{
		StudentID: studentID,
		CourseID:  courseID,
		Semester:  1,
		Year:      2026,
		Content:   strPtr("Excelente progreso."),
		Status:    models.ReportFinalized,
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if len(store.records) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(store.records))
	}
	if second.ID != first.ID {
		t.Errorf("expected the same record to be updated, got new ID %s", second.ID)
	}
	if second.Content == nil || *second.Content != "Excelente progreso." {
		t.Errorf("content not overwritten: %v", second.Content)
	}
	if second.Status != models.ReportFinalized {
		t.Errorf("status = %s, want FINALIZED", second.Status)
	}
}

func TestUpsertReportValidation(t *testing.T) {
	service := newReportService(newFakeReportStore(), newFakeStudentStore(), newFakeCourseStore(), newFakeGradeStore(), newFakeAttendanceStore())

	tests := []struct {
		name   string
		report models.Report
	}{
		{"semester zero", models.Report{StudentID: uuid.New(), CourseID: uuid.New(), Semester: 0, Year: 2026}},
		{"semester three", models.Report{StudentID: uuid.New(), CourseID: uuid.New(), Semester: 3, Year: 2026}},
		{"missing year", models.Report{StudentID: uuid.New(), CourseID: uuid.New(), Semester: 1}},
		{"missing course", models.Report{StudentID: uuid.New(), Semester: 1, Year: 2026}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := tt.report
			if _, err := service.UpsertReport(context.Background(), &report); !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Errorf("expected ErrValidationFailed, got %v", err)
			}
		})
	}
}

func TestGetReportCardRequiresCourse(t *testing.T) {
	students := newFakeStudentStore()
	service := newReportService(newFakeReportStore(), students, newFakeCourseStore(), newFakeGradeStore(), newFakeAttendanceStore())

	student := students.add(&models.Student{FirstName: "Ana", LastName: "Garcia"})

	_, err := service.GetReportCard(context.Background(), student.ID, 2026)
	if !errors.Is(err, apperrors.ErrStudentUnassigned) {
		t.Fatalf("expected ErrStudentUnassigned, got %v", err)
	}
}

func TestGetReportCardAssemblesYear(t *testing.T) {
	reports := newFakeReportStore()
	students := newFakeStudentStore()
	courses := newFakeCourseStore()
	grades := newFakeGradeStore()
	attendance := newFakeAttendanceStore()
	service := newReportService(reports, students, courses, grades, attendance)

	teacher := "Laura"
	course := courses.add(&models.Course{Name: "Teens B1", Level: "B1", MaxStudents: 15, TeacherName: &teacher})
	student := students.add(&models.Student{FirstName: "Ana", LastName: "Garcia", CourseID: &course.ID})

	if _, err := service.UpsertReport(context.Background(), &models.Report{
		StudentID: student.ID, CourseID: course.ID, Semester: 1, Year: 2026,
		Content: strPtr("Primera etapa."),
	}); err != nil {
		t.Fatalf("seed report: %v", err)
	}

	for slot, score := range map[int]int{1: 80, 3: 90} {
		grades.records[gradeKey(student.ID, course.ID, slot)] = &models.Grade{
			ID: uuid.New(), StudentID: student.ID, CourseID: course.ID,
			ExamNumber: slot, Score: intPtr(score),
		}
	}

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	attendance.records[attendanceKey(student.ID, course.ID, date)] = &models.Attendance{
		ID: uuid.New(), StudentID: student.ID, CourseID: course.ID,
		Date: date, Status: models.AttendancePresent,
	}

	card, err := service.GetReportCard(context.Background(), student.ID, 2026)
	if err != nil {
		t.Fatalf("report card: %v", err)
	}

	if card.StudentName != "Ana Garcia" {
		t.Errorf("student name = %q", card.StudentName)
	}
	if card.Level != "Teens B1" || card.Teacher != "Laura" {
		t.Errorf("level/teacher = %q/%q", card.Level, card.Teacher)
	}
	if card.Stage1Report == nil || *card.Stage1Report != "Primera etapa." {
		t.Errorf("stage 1 report missing")
	}
	if card.Stage2Report != nil {
		t.Errorf("stage 2 report should be nil")
	}
	if card.Exam1 == nil || *card.Exam1 != 80 {
		t.Errorf("exam1 = %v, want 80", card.Exam1)
	}
	if card.YearlyAverage == nil || *card.YearlyAverage != 85 {
		t.Errorf("yearly average = %v, want 85", card.YearlyAverage)
	}
	if card.Attendance == nil || card.Attendance.Percentage != 100 {
		t.Errorf("attendance breakdown missing or wrong")
	}
}
