package services

import (
	"context"
	"errors"

	"autonuoma/app/models"
	"autonuoma/app/repositories"
	"autonuoma/pkg/auth"
	"autonuoma/pkg/validate"
)

// Account errors, surfaced verbatim to the client as 400s.
var (
	ErrMissingCredentials = errors.New("all fields are required")
	ErrInvalidEmail       = errors.New("email is not valid")
	ErrWeakPassword       = errors.New("password is too weak")
	ErrEmailTaken         = errors.New("email is already in use")
	ErrUnknownEmail       = errors.New("incorrect email")
	ErrWrongPassword      = errors.New("incorrect password")
)

// UserStore is the slice of the record store the account workflows need.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	Create(ctx context.Context, user models.User) (models.User, error)
}

// UserService implements signup and login.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// Signup registers a new non-admin account and issues a bearer token.
// Email uniqueness is checked here and additionally enforced by the unique
// index, so a concurrent duplicate still fails with the same error.
func (s *UserService) Signup(ctx context.Context, email, password string) (models.User, string, error) {
	if email == "" || password == "" {
		return models.User{}, "", ErrMissingCredentials
	}
	if !validate.IsEmail(email) {
		return models.User{}, "", ErrInvalidEmail
	}
	if !validate.IsStrongPassword(password) {
		return models.User{}, "", ErrWeakPassword
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return models.User{}, "", ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return models.User{}, "", err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, "", err
	}

	user, err := s.users.Create(ctx, models.User{
		Email:    email,
		Password: hash,
		IsAdmin:  false, // the public surface never creates elevated accounts
	})
	if errors.Is(err, repositories.ErrEmailTaken) {
		return models.User{}, "", ErrEmailTaken
	}
	if err != nil {
		return models.User{}, "", err
	}

	token, err := auth.GenerateToken(user.ID.Hex())
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Login verifies the credentials and issues a bearer token.
func (s *UserService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	if email == "" || password == "" {
		return models.User{}, "", ErrMissingCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.User{}, "", ErrUnknownEmail
	}
	if err != nil {
		return models.User{}, "", err
	}

	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, "", ErrWrongPassword
	}

	token, err := auth.GenerateToken(user.ID.Hex())
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}
