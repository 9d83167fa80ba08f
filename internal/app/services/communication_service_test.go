package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/englishclub/academy/internal/app/models"
	"github.com/englishclub/academy/internal/pkg/apperrors"
	"github.com/englishclub/academy/internal/pkg/notify"
)

type fakeCommunicationStore struct {
	comms map[uuid.UUID]*models.Communication
}

func newFakeCommunicationStore() *fakeCommunicationStore {
	return &fakeCommunicationStore{comms: make(map[uuid.UUID]*models.Communication)}
}

func (f *fakeCommunicationStore) CreateCommunication(_ context.Context, comm *models.Communication) (uuid.UUID, error) {
	id := uuid.New()
	stored := *comm
	stored.ID = id
	f.comms[id] = &stored
	return id, nil
}

func (f *fakeCommunicationStore) GetCommunicationByID(_ context.Context, id uuid.UUID) (*models.Communication, error) {
	if comm, ok := f.comms[id]; ok {
		return comm, nil
	}
	return nil, apperrors.ErrCommunicationNotFound
}

func (f *fakeCommunicationStore) GetCommunications(_ context.Context, courseID *uuid.UUID) ([]*models.Communication, error) {
	out := []*models.Communication{}
	for _, comm := range f.comms {
		if courseID != nil && comm.CourseID != nil && *comm.CourseID != *courseID {
			continue
		}
		out = append(out, comm)
	}
	return out, nil
}

func (f *fakeCommunicationStore) DeleteCommunication(_ context.Context, id uuid.UUID) error {
	if _, ok := f.comms[id]; !ok {
		return apperrors.ErrCommunicationNotFound
	}
	delete(f.comms, id)
	return nil
}

type recordingDispatcher struct {
	title      string
	recipients []notify.Recipient
	result     notify.Result
	err        error
}

func (d *recordingDispatcher) SendCommunication(_ context.Context, title, _ string, recipients []notify.Recipient) (notify.Result, error) {
	d.title = title
	d.recipients = recipients
	return d.result, d.err
}

func seedRoster(students *fakeStudentStore, courseID uuid.UUID) {
	email1 := "tutor1@example.com"
	email2 := "tutor2@example.com"
	students.add(&models.Student{FirstName: "Ana", LastName: "Garcia", CourseID: &courseID, Status: models.StudentActive, TutorEmail: &email1})
	students.add(&models.Student{FirstName: "Leo", LastName: "Ruiz", CourseID: &courseID, Status: models.StudentActive, TutorEmail: &email2})
	// Sibling sharing a tutor mailbox: must collapse to one recipient.
	students.add(&models.Student{FirstName: "Eva", LastName: "Garcia", CourseID: &courseID, Status: models.StudentActive, TutorEmail: &email1})
	// No tutor email: skipped.
	students.add(&models.Student{FirstName: "Sam", LastName: "Mora", CourseID: &courseID, Status: models.StudentActive})
}

func TestCreateCommunicationFansOutToTutors(t *testing.T) {
	store := newFakeCommunicationStore()
	students := newFakeStudentStore()
	courses := newFakeCourseStore()
	dispatcher := &recordingDispatcher{result: notify.Result{Sent: 2}}

	course := courses.add(&models.Course{Name: "Kids A", Level: "A1", MaxStudents: 15})
	seedRoster(students, course.ID)

	service := NewCommunicationService(store, students, courses, dispatcher)

	result, err := service.CreateCommunication(context.Background(), &models.Communication{
		CourseID: &course.ID,
		Title:    "Reunion de padres",
		Content:  "El viernes a las 18:00.",
	}, true)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(store.comms) != 1 {
		t.Fatalf("expected 1 stored communication, got %d", len(store.comms))
	}
	if result.Recipients != 2 {
		t.Errorf("recipients = %d, want 2 (deduplicated, no-email skipped)", result.Recipients)
	}
	if result.Sent != 2 {
		t.Errorf("sent = %d, want 2", result.Sent)
	}
	if len(dispatcher.recipients) != 2 {
		t.Errorf("dispatcher got %d recipients, want 2", len(dispatcher.recipients))
	}
}

func TestCreateCommunicationStoredEvenWhenDeliveryFails(t *testing.T) {
	store := newFakeCommunicationStore()
	students := newFakeStudentStore()
	courses := newFakeCourseStore()
	dispatcher := &recordingDispatcher{
		result: notify.Result{Errors: 1},
		err:    errors.New("webhook returned status 502"),
	}

	course := courses.add(&models.Course{Name: "Kids A", Level: "A1", MaxStudents: 15})
	email := "tutor@example.com"
	students.add(&models.Student{FirstName: "Ana", LastName: "Garcia", CourseID: &course.ID, Status: models.StudentActive, TutorEmail: &email})

	service := NewCommunicationService(store, students, courses, dispatcher)

	result, err := service.CreateCommunication(context.Background(), &models.Communication{
		CourseID: &course.ID,
		Title:    "Aviso",
		Content:  "Contenido",
	}, true)
	if err != nil {
		t.Fatalf("create should not fail on delivery errors: %v", err)
	}

	if len(store.comms) != 1 {
		t.Fatalf("communication was not stored")
	}
	if result.Failed != 1 {
		t.Errorf("failed = %d, want 1", result.Failed)
	}
	if len(result.Errors) == 0 {
		t.Error("expected delivery error to be reported")
	}
}

func TestCreateCommunicationWithoutDispatcher(t *testing.T) {
	store := newFakeCommunicationStore()
	students := newFakeStudentStore()
	courses := newFakeCourseStore()

	service := NewCommunicationService(store, students, courses, nil)

	result, err := service.CreateCommunication(context.Background(), &models.Communication{
		Title:   "Cierre por feriado",
		Content: "La academia permanece cerrada el lunes.",
	}, true)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if result.Sent != 0 {
		t.Errorf("sent = %d, want 0 without dispatcher", result.Sent)
	}
	if len(store.comms) != 1 {
		t.Fatalf("communication was not stored")
	}
}

func TestCreateCommunicationWithoutEmail(t *testing.T) {
	store := newFakeCommunicationStore()
	students := newFakeStudentStore()
	courses := newFakeCourseStore()
	dispatcher := &recordingDispatcher{result: notify.Result{Sent: 1}}

	course := courses.add(&models.Course{Name: "Kids A", Level: "A1", MaxStudents: 15})
	seedRoster(students, course.ID)

	service := NewCommunicationService(store, students, courses, dispatcher)

	result, err := service.CreateCommunication(context.Background(), &models.Communication{
		CourseID: &course.ID,
		Title:    "Nota interna",
		Content:  "Solo para el tablero.",
	}, false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(store.comms) != 1 {
		t.Fatalf("communication was not stored")
	}
	if result.Recipients != 0 || result.Sent != 0 {
		t.Errorf("expected no fan-out, got recipients=%d sent=%d", result.Recipients, result.Sent)
	}
	if len(dispatcher.recipients) != 0 {
		t.Errorf("dispatcher should not have been called")
	}
}

func TestCreateCommunicationValidation(t *testing.T) {
	service := NewCommunicationService(newFakeCommunicationStore(), newFakeStudentStore(), newFakeCourseStore(), nil)

	tests := []struct {
		name string
		comm models.Communication
	}{
		{"empty title", models.Communication{Content: "body"}},
		{"empty content", models.Communication{Title: "title"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comm := tt.comm
			if _, err := service.CreateCommunication(context.Background(), &comm, true); !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Errorf("expected ErrValidationFailed, got %v", err)
			}
		})
	}
}

func TestCreateCommunicationUnknownCourse(t *testing.T) {
	service := NewCommunicationService(newFakeCommunicationStore(), newFakeStudentStore(), newFakeCourseStore(), nil)

	courseID := uuid.New()
	_, err := service.CreateCommunication(context.Background(), &models.Communication{
		CourseID: &courseID,
		Title:    "Aviso",
		Content:  "Contenido",
	}, true)
	if !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}
