package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/englishclub/academy/internal/app/models"
	"github.com/englishclub/academy/internal/app/repositories"
	"github.com/englishclub/academy/internal/pkg/apperrors"
)

type fakeGradeStore struct {
	records map[string]*models.Grade
}

func newFakeGradeStore() *fakeGradeStore {
	return &fakeGradeStore{records: make(map[string]*models.Grade)}
}

func gradeKey(studentID, courseID uuid.UUID, examNumber int) string {
	return fmt.Sprintf("%s|%s|%d", studentID, courseID, examNumber)
}

func (f *fakeGradeStore) FindByNaturalKey(_ context.Context, studentID, courseID uuid.UUID, examNumber int) (*models.Grade, error) {
	if grade, ok := f.records[gradeKey(studentID, courseID, examNumber)]; ok {
		copied := *grade
		return &copied, nil
	}
	return nil, apperrors.ErrResourceNotFound
}

func (f *fakeGradeStore) CreateGrade(_ context.Context, grade *models.Grade) (uuid.UUID, error) {
	id := uuid.New()
	stored := *grade
	stored.ID = id
	f.records[gradeKey(grade.StudentID, grade.CourseID, grade.ExamNumber)] = &stored
	return id, nil
}

func (f *fakeGradeStore) UpdateGrade(_ context.Context, grade *models.Grade) error {
	for key, stored := range f.records {
		if stored.ID == grade.ID {
			copied := *grade
			f.records[key] = &copied
			return nil
		}
	}
	return apperrors.ErrResourceNotFound
}

func (f *fakeGradeStore) GetByStudentAndCourse(_ context.Context, studentID, courseID uuid.UUID) ([]*models.Grade, error) {
	out := []*models.Grade{}
	for _, grade := range f.records {
		if grade.StudentID == studentID && grade.CourseID == courseID {
			out = append(out, grade)
		}
	}
	return out, nil
}

func (f *fakeGradeStore) GetByCourse(_ context.Context, courseID uuid.UUID) ([]*models.Grade, error) {
	out := []*models.Grade{}
	for _, grade := range f.records {
		if grade.CourseID == courseID {
			out = append(out, grade)
		}
	}
	return out, nil
}

func (f *fakeGradeStore) DeleteGrade(_ context.Context, id uuid.UUID) error {
	for key, stored := range f.records {
		if stored.ID == id {
			delete(f.records, key)
			return nil
		}
	}
	return apperrors.ErrResourceNotFound
}

type fakeStudentStore struct {
	students     map[uuid.UUID]*models.Student
	deleted      []uuid.UUID
	getByIDCalls int
	listCalls    int
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: make(map[uuid.UUID]*models.Student)}
}

func (f *fakeStudentStore) add(student *models.Student) *models.Student {
	if student.ID == uuid.Nil {
		student.ID = uuid.New()
	}
	f.students[student.ID] = student
	return student
}

func (f *fakeStudentStore) CreateStudent(_ context.Context, student *models.Student) (uuid.UUID, error) {
	stored := *student
	stored.ID = uuid.New()
	f.students[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeStudentStore) GetStudentByID(_ context.Context, id uuid.UUID) (*models.Student, error) {
	f.getByIDCalls++
	if student, ok := f.students[id]; ok {
		return student, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentStore) GetStudents(_ context.Context, filter repositories.StudentFilter) ([]*models.Student, error) {
	f.listCalls++
	out := []*models.Student{}
	for _, student := range f.students {
		if filter.CourseID != nil && (student.CourseID == nil || *student.CourseID != *filter.CourseID) {
			continue
		}
		if filter.Status != "" && student.Status != filter.Status {
			continue
		}
		out = append(out, student)
	}
	return out, nil
}

func (f *fakeStudentStore) UpdateStudent(_ context.Context, student *models.Student) error {
	if _, ok := f.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	f.students[student.ID] = student
	return nil
}

func (f *fakeStudentStore) DeleteStudent(_ context.Context, id uuid.UUID) error {
	if _, ok := f.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(f.students, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func intPtr(v int) *int { return &v }

func TestUpsertGradeTwiceKeepsOneRow(t *testing.T) {
	store := newFakeGradeStore()
	service := NewGradeService(store, newFakeStudentStore())

	studentID := uuid.New()
	courseID := uuid.New()

	first, err := service.UpsertGrade(context.Background(), &models.Grade{
		StudentID:  studentID,
		CourseID:   courseID,
		ExamNumber: 2,
		Score:      intPtr(70),
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second, err := service.UpsertGrade(context.Background(), &models.Grade{
		StudentID:  studentID,
		CourseID:   courseID,
		ExamNumber: 2,
		Score:      intPtr(85),
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
	if second.Score == nil || *second.Score != 85 {
		t.Errorf("expected score 85 after overwrite, got %v", second.Score)
	}
}

func TestUpsertGradeAllowsNilScore(t *testing.T) {
	store := newFakeGradeStore()
	service := NewGradeService(store, newFakeStudentStore())

	saved, err := service.UpsertGrade(context.Background(), &models.Grade{
		StudentID:  uuid.New(),
		CourseID:   uuid.New(),
		ExamNumber: 1,
		Score:      nil,
	})
	if err != nil {
		t.Fatalf("upsert with nil score: %v", err)
	}
	if saved.Score != nil {
		t.Errorf("expected nil score to be stored as nil, got %v", *saved.Score)
	}
}

func TestUpsertGradeValidation(t *testing.T) {
	service := NewGradeService(newFakeGradeStore(), newFakeStudentStore())

	tests := []struct {
		name  string
		grade models.Grade
	}{
		{"slot zero", models.Grade{StudentID: uuid.New(), CourseID: uuid.New(), ExamNumber: 0}},
		{"slot seven", models.Grade{StudentID: uuid.New(), CourseID: uuid.New(), ExamNumber: 7}},
		{"score above range", models.Grade{StudentID: uuid.New(), CourseID: uuid.New(), ExamNumber: 1, Score: intPtr(101)}},
		{"score below range", models.Grade{StudentID: uuid.New(), CourseID: uuid.New(), ExamNumber: 1, Score: intPtr(-1)}},
		{"missing course", models.Grade{StudentID: uuid.New(), ExamNumber: 1, Score: intPtr(50)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grade := tt.grade
			if _, err := service.UpsertGrade(context.Background(), &grade); !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Errorf("expected ErrValidationFailed, got %v", err)
			}
		})
	}
}

func TestGetGradebookBuildsScoreGrid(t *testing.T) {
	store := newFakeGradeStore()
	students := newFakeStudentStore()
	service := NewGradeService(store, students)

	courseID := uuid.New()
	student := students.add(&models.Student{FirstName: "Ana", LastName: "Garcia", CourseID: &courseID})

	for slot, score := range map[int]*int{1: intPtr(80), 3: intPtr(90)} {
		if _, err := service.UpsertGrade(context.Background(), &models.Grade{
			StudentID:  student.ID,
			CourseID:   courseID,
			ExamNumber: slot,
			Score:      score,
		}); err != nil {
			t.Fatalf("seed grade slot %d: %v", slot, err)
		}
	}

	rows, err := service.GetGradebook(context.Background(), courseID)
	if err != nil {
		t.Fatalf("gradebook: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	row := rows[0]
	if row.StudentName != "Ana Garcia" {
		t.Errorf("student name = %q, want %q", row.StudentName, "Ana Garcia")
	}
	if row.Scores[1] == nil || *row.Scores[1] != 80 {
		t.Errorf("slot 1 = %v, want 80", row.Scores[1])
	}
	if row.Scores[2] != nil {
		t.Errorf("slot 2 should be nil, got %v", *row.Scores[2])
	}
	// Mean of 80 and 90, nil slots ignored.
	if row.Average == nil || *row.Average != 85 {
		t.Errorf("average = %v, want 85", row.Average)
	}
}

func TestGetGradebookResolvesNamesFromOneRosterQuery(t *testing.T) {
	store := newFakeGradeStore()
	students := newFakeStudentStore()
	service := NewGradeService(store, students)

	courseID := uuid.New()
	otherCourse := uuid.New()
	enrolled := students.add(&models.Student{FirstName: "Ana", LastName: "Garcia", CourseID: &courseID})
	// Reassigned after grading: still named through the global roster.
	moved := students.add(&models.Student{FirstName: "Leo", LastName: "Ruiz", CourseID: &otherCourse})
	ghost := uuid.New()

	for _, studentID := range []uuid.UUID{enrolled.ID, moved.ID, ghost} {
		if _, err := service.UpsertGrade(context.Background(), &models.Grade{
			StudentID:  studentID,
			CourseID:   courseID,
			ExamNumber: 1,
			Score:      intPtr(75),
		}); err != nil {
			t.Fatalf("seed grade: %v", err)
		}
	}

	rows, err := service.GetGradebook(context.Background(), courseID)
	if err != nil {
		t.Fatalf("gradebook: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	named := map[uuid.UUID]string{}
	for _, row := range rows {
		named[row.StudentID] = row.StudentName
	}
	if named[enrolled.ID] != "Ana Garcia" {
		t.Errorf("enrolled student name = %q, want %q", named[enrolled.ID], "Ana Garcia")
	}
	if named[moved.ID] != "Leo Ruiz" {
		t.Errorf("moved student name = %q, want %q", named[moved.ID], "Leo Ruiz")
	}
	if named[ghost] != "" {
		t.Errorf("unknown student name = %q, want empty", named[ghost])
	}

	if students.listCalls != 1 {
		t.Errorf("roster queries = %d, want 1", students.listCalls)
	}
	if students.getByIDCalls != 0 {
		t.Errorf("per-student lookups = %d, want 0", students.getByIDCalls)
	}
}
