package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/englishclub/academy/internal/app/models"
	"github.com/englishclub/academy/internal/pkg/apperrors"
	"github.com/englishclub/academy/internal/pkg/auth"
)

type fakeUserStore struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*models.User)}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *models.User) (uuid.UUID, error) {
	stored := *user
	stored.ID = uuid.New()
	f.users[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) GetUsersByRole(_ context.Context, role models.RoleType) ([]*models.User, error) {
	out := []*models.User{}
	for _, user := range f.users {
		if user.RoleType == role {
			out = append(out, user)
		}
	}
	return out, nil
}

func (f *fakeUserStore) UserExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetUserByEmail(ctx, email)
	return err == nil, nil
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "academy.test",
	})
}

func TestRegisterAndLogin(t *testing.T) {
	store := newFakeUserStore()
	service := NewAuthService(store, testJWTService())

	user, err := service.Register(context.Background(), &models.User{
		Email:     "Admin@EnglishClub.edu",
		FirstName: "Root",
		LastName:  "Admin",
		RoleType:  models.RoleAdmin,
	}, "correct-horse")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "admin@englishclub.edu" {
		t.Errorf("email not normalized: %q", user.Email)
	}

	result, err := service.Login(context.Background(), "admin@englishclub.edu", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Error("empty token")
	}
	if result.User.ID != user.ID {
		t.Errorf("login returned wrong profile")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	store := newFakeUserStore()
	service := NewAuthService(store, testJWTService())

	if _, err := service.Register(context.Background(), &models.User{
		Email:     "staff@englishclub.edu",
		FirstName: "Staff",
		LastName:  "Member",
		RoleType:  models.RoleSecretary,
	}, "right-password"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := service.Login(context.Background(), "staff@englishclub.edu", "wrong-password")
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	service := NewAuthService(newFakeUserStore(), testJWTService())

	_, err := service.Login(context.Background(), "ghost@englishclub.edu", "whatever")
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	service := NewAuthService(newFakeUserStore(), testJWTService())

	tests := []struct {
		name     string
		user     models.User
		password string
	}{
		{"bad email", models.User{Email: "not-an-email", RoleType: models.RoleAdmin}, "long-enough"},
		{"short password", models.User{Email: "a@b.edu", RoleType: models.RoleAdmin}, "short"},
		{"bad role", models.User{Email: "a@b.edu", RoleType: "OWNER"}, "long-enough"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := tt.user
			if _, err := service.Register(context.Background(), &user, tt.password); !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Errorf("expected ErrValidationFailed, got %v", err)
			}
		})
	}
}

func TestListTeachersFiltersByRole(t *testing.T) {
	store := newFakeUserStore()
	service := NewAuthService(store, testJWTService())

	for _, u := range []models.User{
		{Email: "teacher1@englishclub.edu", FirstName: "Nora", LastName: "Vidal", RoleType: models.RoleTeacher},
		{Email: "teacher2@englishclub.edu", FirstName: "Ivan", LastName: "Campos", RoleType: models.RoleTeacher},
		{Email: "admin@englishclub.edu", FirstName: "Root", LastName: "Admin", RoleType: models.RoleAdmin},
	} {
		user := u
		if _, err := service.Register(context.Background(), &user, "long-enough"); err != nil {
			t.Fatalf("register %s: %v", u.Email, err)
		}
	}

	teachers, err := service.ListTeachers(context.Background())
	if err != nil {
		t.Fatalf("list teachers: %v", err)
	}
	if len(teachers) != 2 {
		t.Fatalf("expected 2 teachers, got %d", len(teachers))
	}
	for _, teacher := range teachers {
		if teacher.RoleType != models.RoleTeacher {
			t.Errorf("unexpected role %s in teacher list", teacher.RoleType)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service := NewAuthService(newFakeUserStore(), testJWTService())

	base := models.User{
		Email:     "dup@englishclub.edu",
		FirstName: "First",
		LastName:  "User",
		RoleType:  models.RoleTeacher,
	}

	first := base
	if _, err := service.Register(context.Background(), &first, "password-one"); err != nil {
		t.Fatalf("first register: %v", err)
	}

	second := base
	_, err := service.Register(context.Background(), &second, "password-two")
	if !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		t.Fatalf("expected ErrResourceAlreadyExists, got %v", err)
	}
}
