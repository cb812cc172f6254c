package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"yatube/internal/form"
	"yatube/internal/model"
	"yatube/internal/repository"
)

// UserService handles business logic for user operations
type UserService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register validates the signup form and creates the account.
// Field problems come back as form.Errors; a taken username as ErrUsernameExists.
func (s *UserService) Register(ctx context.Context, f model.SignupForm) (*model.User, error) {
	errs := form.Validate(f)
	if len(f.Password) > model.MaxPasswordBytes {
		errs.Add("password", fmt.Sprintf("Ensure this value has at most %d bytes.", model.MaxPasswordBytes))
	}
	if model.IsReservedUsername(f.Username) {
		errs.Add("username", "This username is not available.")
	}
	if len(errs) > 0 {
		return nil, errs
	}

	// Check if username already exists
	exists, err := s.repo.ExistsByUsername(ctx, f.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, model.ErrUsernameExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(f.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:       f.Username,
		PasswordHashed: string(hashedPassword),
		FirstName:      f.FirstName,
		LastName:       f.LastName,
	}

	// The unique index still guards against a concurrent signup with the same name.
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrUsernameExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user with username and password.
func (s *UserService) Login(ctx context.Context, f model.LoginForm) (*model.User, error) {
	if errs := form.Validate(f); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.repo.GetByUsername(ctx, f.Username)
	if errors.Is(err, model.ErrUserNotFound) {
		// Don't reveal whether username exists or not
		return nil, model.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(f.Password))
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return user, nil
}
