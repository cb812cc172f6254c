package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"yatube/internal/form"
	"yatube/internal/model"
)

// =============================================================================
// REGISTER TESTS
// =============================================================================

func TestUserService_Register_Success(t *testing.T) {
	mockRepo := &mockUserRepository{
		createFn: func(ctx context.Context, user *model.User) error {
			// Simulate database setting ID and timestamps
			user.ID = 1
			user.CreatedAt = time.Now()
			return nil
		},
	}
	svc := NewUserService(mockRepo)

	f := model.SignupForm{
		Username:  "ivan",
		Password:  "securepassword123",
		FirstName: "Ivan",
	}

	user, err := svc.Register(context.Background(), f)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if user.Username != f.Username {
		t.Errorf("username = %q, want %q", user.Username, f.Username)
	}
	if user.FullName() != "Ivan" {
		t.Errorf("full name = %q, want Ivan", user.FullName())
	}

	// Verify password was hashed (not stored in plain text!)
	if user.PasswordHashed == f.Password {
		t.Error("password should be hashed, not stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(f.Password)); err != nil {
		t.Error("password hash should be valid bcrypt hash")
	}

	if len(mockRepo.createCalls) != 1 {
		t.Errorf("Create called %d times, want 1", len(mockRepo.createCalls))
	}
}

func TestUserService_Register_UsernameExists(t *testing.T) {
	mockRepo := &mockUserRepository{
		existsByUsernameFn: func(ctx context.Context, username string) (bool, error) {
			return true, nil
		},
	}
	svc := NewUserService(mockRepo)

	user, err := svc.Register(context.Background(), model.SignupForm{Username: "taken", Password: "password123"})

	if !errors.Is(err, model.ErrUsernameExists) {
		t.Errorf("error = %v, want %v", err, model.ErrUsernameExists)
	}
	if user != nil {
		t.Error("user should be nil when registration fails")
	}
	if len(mockRepo.createCalls) != 0 {
		t.Error("Create should not be called when username exists")
	}
}

func TestUserService_Register_InvalidForm(t *testing.T) {
	tests := []struct {
		name      string
		form      model.SignupForm
		wantField string
	}{
		{name: "missing username", form: model.SignupForm{Password: "password123"}, wantField: "username"},
		{name: "short password", form: model.SignupForm{Username: "ivan", Password: "short"}, wantField: "password"},
		{name: "reserved username", form: model.SignupForm{Username: "follow", Password: "password123"}, wantField: "username"},
		{name: "password over bcrypt limit", form: model.SignupForm{Username: "ivan", Password: strings.Repeat("é", 40)}, wantField: "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mockUserRepository{}
			svc := NewUserService(mockRepo)

			_, err := svc.Register(context.Background(), tt.form)

			var errs form.Errors
			if !errors.As(err, &errs) {
				t.Fatalf("error = %v, want form.Errors", err)
			}
			if errs.Get(tt.wantField) == "" {
				t.Errorf("missing error for %s: %v", tt.wantField, errs)
			}
			if len(mockRepo.createCalls) != 0 {
				t.Error("Create should not be called for an invalid form")
			}
		})
	}
}

func TestUserService_Register_CreateError(t *testing.T) {
	dbError := errors.New("insert failed")
	mockRepo := &mockUserRepository{
		createFn: func(ctx context.Context, user *model.User) error {
			return dbError
		},
	}
	svc := NewUserService(mockRepo)

	_, err := svc.Register(context.Background(), model.SignupForm{Username: "ivan", Password: "password123"})

	if !errors.Is(err, dbError) {
		t.Errorf("error should wrap create error, got %v", err)
	}
}

// =============================================================================
// LOGIN TESTS
// =============================================================================

var errDatabase = errors.New("database error")

func TestUserService_Login(t *testing.T) {
	validPassword := "correctpassword"
	validHash, _ := bcrypt.GenerateFromPassword([]byte(validPassword), bcrypt.MinCost)

	testUser := &model.User{
		ID:             1,
		Username:       "ivan",
		PasswordHashed: string(validHash),
	}

	tests := []struct {
		name          string
		username      string
		password      string
		mockGetByUser func(ctx context.Context, username string) (*model.User, error)
		wantErr       error
		wantUser      bool
	}{
		{
			name:     "successful login",
			username: "ivan",
			password: validPassword,
			mockGetByUser: func(ctx context.Context, username string) (*model.User, error) {
				return testUser, nil
			},
			wantUser: true,
		},
		{
			name:     "user not found",
			username: "nonexistent",
			password: "anypassword",
			mockGetByUser: func(ctx context.Context, username string) (*model.User, error) {
				return nil, model.ErrUserNotFound
			},
			wantErr: model.ErrInvalidCredentials, // Don't reveal user doesn't exist
		},
		{
			name:     "wrong password",
			username: "ivan",
			password: "wrongpassword",
			mockGetByUser: func(ctx context.Context, username string) (*model.User, error) {
				return testUser, nil
			},
			wantErr: model.ErrInvalidCredentials,
		},
		{
			name:     "database error",
			username: "ivan",
			password: validPassword,
			mockGetByUser: func(ctx context.Context, username string) (*model.User, error) {
				return nil, errDatabase
			},
			wantErr: errDatabase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(&mockUserRepository{getByUsernameFn: tt.mockGetByUser})

			user, err := svc.Login(context.Background(), model.LoginForm{Username: tt.username, Password: tt.password})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if tt.wantUser && user == nil {
				t.Error("expected user, got nil")
			}
			if !tt.wantUser && user != nil {
				t.Error("expected nil user")
			}
		})
	}
}

func TestUserService_Login_EmptyForm(t *testing.T) {
	svc := NewUserService(&mockUserRepository{})

	_, err := svc.Login(context.Background(), model.LoginForm{})

	var errs form.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("error = %v, want form.Errors", err)
	}
	if errs.Get("username") == "" || errs.Get("password") == "" {
		t.Errorf("expected both fields to be required, got %v", errs)
	}
}
