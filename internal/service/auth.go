package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tasklight/tasklight/internal/auth"
	"github.com/tasklight/tasklight/internal/metrics"
	"github.com/tasklight/tasklight/internal/model"
	"github.com/tasklight/tasklight/internal/repository"
)

// Service errors.
var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid registration input")
)

// Input limits for registration.
const (
	maxUsernameLength = 64
	maxEmailLength    = 254
	maxPasswordLength = 72 // bcrypt input limit
	minPasswordLength = 1
)

// AuthService handles registration, login and token issuance.
type AuthService struct {
	users   UserStore
	tokens  *auth.TokenIssuer
	metrics metrics.Recorder
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, tokens *auth.TokenIssuer, recorder metrics.Recorder) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AuthService{
		users:   users,
		tokens:  tokens,
		metrics: recorder,
	}
}

// Register creates a new user with a bcrypt-hashed password and returns a
// signed bearer token for the new identity. Fails with ErrUserExists when
// the username or email is already taken.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if err := validateRegistration(username, email, password); err != nil {
		s.metrics.RecordAuthAttempt("register", "invalid_input")
		return "", err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		s.metrics.RecordAuthAttempt("register", "error")
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			s.metrics.RecordAuthAttempt("register", "duplicate")
			return "", ErrUserExists
		}
		s.metrics.RecordAuthAttempt("register", "error")
		return "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.metrics.RecordAuthAttempt("register", "error")
		return "", err
	}

	s.metrics.RecordAuthAttempt("register", "success")
	return token, nil
}

// Login verifies the credentials and returns a freshly signed token.
// Unknown username and wrong password both fail with ErrInvalidCredentials;
// a dummy hash comparison runs on the unknown-username path so the two
// failures do comparable work.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			auth.VerifyDummy(password)
			s.metrics.RecordAuthAttempt("login", "failure")
			return "", ErrInvalidCredentials
		}
		s.metrics.RecordAuthAttempt("login", "error")
		return "", err
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		s.metrics.RecordAuthAttempt("login", "failure")
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.metrics.RecordAuthAttempt("login", "error")
		return "", err
	}

	s.metrics.RecordAuthAttempt("login", "success")
	return token, nil
}

// validateRegistration rejects empty or oversized registration fields.
func validateRegistration(username, email, password string) error {
	if username == "" || len(username) > maxUsernameLength {
		return ErrInvalidInput
	}
	if email == "" || len(email) > maxEmailLength || !strings.Contains(email, "@") {
		return ErrInvalidInput
	}
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return ErrInvalidInput
	}
	return nil
}
