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

type fakeAttendanceStore struct {
	records map[string]*models.Attendance
}

func newFakeAttendanceStore() *fakeAttendanceStore {
	return &fakeAttendanceStore{records: make(map[string]*models.Attendance)}
}

func attendanceKey(studentID, courseID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("%s|%s|%s", studentID, courseID, date.Format("2006-01-02"))
}

func (f *fakeAttendanceStore) FindByNaturalKey(_ context.Context, studentID, courseID uuid.UUID, date time.Time) (*models.Attendance, error) {
	if record, ok := f.records[attendanceKey(studentID, courseID, date)]; ok {
		copied := *record
		return &copied, nil
	}
	return nil, apperrors.ErrResourceNotFound
}

func (f *fakeAttendanceStore) CreateAttendance(_ context.Context, record *models.Attendance) (uuid.UUID, error) {
	id := uuid.New()
	stored := *record
	stored.ID = id
	f.records[attendanceKey(record.StudentID, record.CourseID, record.Date)] = &stored
	return id, nil
}

func (f *fakeAttendanceStore) UpdateAttendance(_ context.Context, record *models.Attendance) error {
	for key, stored := range f.records {
		if stored.ID == record.ID {
			copied := *record
			f.records[key] = &copied
			return nil
		}
	}
	return apperrors.ErrResourceNotFound
}

func (f *fakeAttendanceStore) GetByCourseAndDate(_ context.Context, courseID uuid.UUID, date time.Time) ([]*models.Attendance, error) {
	out := []*models.Attendance{}
	for _, record := range f.records {
		if record.CourseID == courseID && record.Date.Equal(date) {
			out = append(out, record)
		}
	}
	return out, nil
}

func (f *fakeAttendanceStore) GetByStudent(_ context.Context, studentID uuid.UUID, courseID *uuid.UUID) ([]*models.Attendance, error) {
	out := []*models.Attendance{}
	for _, record := range f.records {
		if record.StudentID != studentID {
			continue
		}
		if courseID != nil && record.CourseID != *courseID {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func (f *fakeAttendanceStore) DeleteAttendance(_ context.Context, id uuid.UUID) error {
	for key, stored := range f.records {
		if stored.ID == id {
			delete(f.records, key)
			return nil
		}
	}
	return apperrors.ErrResourceNotFound
}

func strPtr(s string) *string { return &s }

func TestUpsertAttendanceTwiceKeepsOneRow(t *testing.T) {
	store := newFakeAttendanceStore()
	service := NewAttendanceService(store)

	studentID := uuid.New()
	courseID := uuid.New()
	date := time.Date(2026, 3, 12, 14, 30, 0, 0, time.UTC)

	first, err := service.UpsertAttendance(context.Background(), &models.Attendance{
		StudentID: studentID,
		CourseID:  courseID,
		Date:      date,
		Status:    models.AttendanceAbsent,
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	// Same day, different wall-clock time: still the same record.
	second, err := service.UpsertAttendance(context.Background(), &models.Attendance{
		StudentID: studentID,
		CourseID:  courseID,
		Date:      date.Add(3 * time.Hour),
		Status:    models.AttendancePresent,
		Notes:     strPtr("corrected"),
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
	if second.Status != models.AttendancePresent {
		t.Errorf("expected status PRESENT after overwrite, got %s", second.Status)
	}
}

func TestUpsertAttendanceRejectsIncompleteKey(t *testing.T) {
	service := NewAttendanceService(newFakeAttendanceStore())

	tests := []struct {
		name   string
		record models.Attendance
	}{
		{"missing student", models.Attendance{CourseID: uuid.New(), Date: time.Now(), Status: models.AttendancePresent}},
		{"missing course", models.Attendance{StudentID: uuid.New(), Date: time.Now(), Status: models.AttendancePresent}},
		{"missing date", models.Attendance{StudentID: uuid.New(), CourseID: uuid.New(), Status: models.AttendancePresent}},
		{"bad status", models.Attendance{StudentID: uuid.New(), CourseID: uuid.New(), Date: time.Now(), Status: "TARDE"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := tt.record
			if _, err := service.UpsertAttendance(context.Background(), &record); !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Errorf("expected ErrValidationFailed, got %v", err)
			}
		})
	}
}

func TestBulkMarkWritesWholeRoster(t *testing.T) {
	store := newFakeAttendanceStore()
	service := NewAttendanceService(store)

	courseID := uuid.New()
	date := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	marks := []*models.Attendance{
		{StudentID: uuid.New(), Status: models.AttendancePresent},
		{StudentID: uuid.New(), Status: models.AttendanceLate},
		{StudentID: uuid.New(), Status: models.AttendanceExcused},
	}

	results, err := service.BulkMark(context.Background(), courseID, date, marks)
	if err != nil {
		t.Fatalf("bulk mark: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if len(store.records) != 3 {
		t.Fatalf("expected 3 stored records, got %d", len(store.records))
	}
	for _, saved := range results {
		if saved.CourseID != courseID {
			t.Errorf("mark stored with course %s, want %s", saved.CourseID, courseID)
		}
		if !saved.Date.Equal(date) {
			t.Errorf("mark stored with date %s, want %s", saved.Date, date)
		}
	}
}

func TestBulkMarkStopsOnInvalidMark(t *testing.T) {
	store := newFakeAttendanceStore()
	service := NewAttendanceService(store)

	marks := []*models.Attendance{
		{StudentID: uuid.New(), Status: models.AttendancePresent},
		{StudentID: uuid.New(), Status: "PRESENTE"},
	}

	_, err := service.BulkMark(context.Background(), uuid.New(), time.Now(), marks)
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}
