package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/englishclub/academy/internal/app/models"
	"github.com/englishclub/academy/internal/pkg/apperrors"
)

type fakeCourseStore struct {
	courses     map[uuid.UUID]*models.Course
	withRoster  map[uuid.UUID]bool
	deleteCalls int
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{
		courses:    make(map[uuid.UUID]*models.Course),
		withRoster: make(map[uuid.UUID]bool),
	}
}

func (f *fakeCourseStore) add(course *models.Course) *models.Course {
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	f.courses[course.ID] = course
	return course
}

func (f *fakeCourseStore) CreateCourse(_ context.Context, course *models.Course) (uuid.UUID, error) {
	stored := *course
	stored.ID = uuid.New()
	f.courses[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeCourseStore) GetCourseByID(_ context.Context, id uuid.UUID) (*models.Course, error) {
	if course, ok := f.courses[id]; ok {
		return course, nil
	}
	return nil, apperrors.ErrCourseNotFound
}

func (f *fakeCourseStore) GetAllCourses(_ context.Context) ([]*models.Course, error) {
	out := []*models.Course{}
	for _, course := range f.courses {
		out = append(out, course)
	}
	return out, nil
}

func (f *fakeCourseStore) UpdateCourse(_ context.Context, course *models.Course) error {
	if _, ok := f.courses[course.ID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	f.courses[course.ID] = course
	return nil
}

func (f *fakeCourseStore) HasEnrolledStudents(_ context.Context, id uuid.UUID) (bool, error) {
	return f.withRoster[id], nil
}

func (f *fakeCourseStore) DeleteCourse(_ context.Context, id uuid.UUID) error {
	f.deleteCalls++
	if _, ok := f.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(f.courses, id)
	return nil
}

func TestDeleteCourseWithRosterIsRejected(t *testing.T) {
	store := newFakeCourseStore()
	service := NewCourseService(store)

	course := store.add(&models.Course{Name: "Kids A", Level: "A1", MaxStudents: 15})
	store.withRoster[course.ID] = true

	err := service.DeleteCourse(context.Background(), course.ID)
	if !errors.Is(err, apperrors.ErrCourseHasStudents) {
		t.Fatalf("expected ErrCourseHasStudents, got %v", err)
	}
	// The guard fires before any delete reaches the store.
	if store.deleteCalls != 0 {
		t.Errorf("delete reached the store %d times, want 0", store.deleteCalls)
	}
	if _, ok := store.courses[course.ID]; !ok {
		t.Error("course was deleted despite enrolled students")
	}
}

func TestDeleteCourseWithEmptyRoster(t *testing.T) {
	store := newFakeCourseStore()
	service := NewCourseService(store)

	course := store.add(&models.Course{Name: "Adults B2", Level: "B2", MaxStudents: 12})

	if err := service.DeleteCourse(context.Background(), course.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := store.courses[course.ID]; ok {
		t.Error("course still present after delete")
	}
}

func TestCreateCourseValidation(t *testing.T) {
	service := NewCourseService(newFakeCourseStore())

	tests := []struct {
		name   string
		course models.Course
	}{
		{"empty name", models.Course{Level: "A1", MaxStudents: 10}},
		{"empty level", models.Course{Name: "Kids A", MaxStudents: 10}},
		{"zero capacity", models.Course{Name: "Kids A", Level: "A1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			course := tt.course
			if _, err := service.CreateCourse(context.Background(), &course); !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Errorf("expected ErrValidationFailed, got %v", err)
			}
		})
	}
}

func TestGetOccupancyIsUnclamped(t *testing.T) {
	store := newFakeCourseStore()
	service := NewCourseService(store)

	course := store.add(&models.Course{Name: "Teens C", Level: "B1", MaxStudents: 15})
	course.StudentsCount = 18

	occupancy, err := service.GetOccupancy(context.Background())
	if err != nil {
		t.Fatalf("occupancy: %v", err)
	}
	if len(occupancy) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(occupancy))
	}
	if occupancy[0].Percent != 120 {
		t.Errorf("percent = %d, want 120", occupancy[0].Percent)
	}
}
