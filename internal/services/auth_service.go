package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hwigle/reactStudy/internal/apperr"
	"github.com/hwigle/reactStudy/internal/auth"
	"github.com/hwigle/reactStudy/internal/models"
)

// AuthServiceProvider defines the interface for registration and login.
type AuthServiceProvider interface {
	Register(username, password string) (models.User, error)
	Login(username, password string) (string, error)
}

// AuthService provides registration and login on top of the credential
// store and the token service.
type AuthService struct {
	db       *sql.DB
	tokens   *auth.TokenService
	eventSvc EventServiceProvider
}

// NewAuthService creates a new AuthService.
func NewAuthService(db *sql.DB, tokens *auth.TokenService, eventSvc EventServiceProvider) *AuthService {
	return &AuthService{db: db, tokens: tokens, eventSvc: eventSvc}
}

// Register creates a new account with a hashed password. The returned
// user never carries the password or its hash.
func (s *AuthService) Register(username, password string) (models.User, error) {
	var exists bool
	if err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)", username).Scan(&exists); err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, apperr.ErrCredentialConflict
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:        uuid.New().String(),
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
	_, err = s.db.Exec("INSERT INTO users(id, username, password_hash, created_at) VALUES(?, ?, ?, ?)",
		user.ID, user.Username, hash, user.CreatedAt)
	if err != nil {
		return models.User{}, err
	}

	s.eventSvc.CreateEvent("user.register", "info", "New user registered", &user.Username)
	return user, nil
}

// Login verifies the supplied credentials and issues a signed token.
// Unknown usernames and wrong passwords are indistinguishable to the
// caller.
func (s *AuthService) Login(username, password string) (string, error) {
	var hash string
	err := s.db.QueryRow("SELECT password_hash FROM users WHERE username = ?", username).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		s.eventSvc.CreateEvent("auth.login.fail", "warn", "Failed login attempt", nil)
		return "", apperr.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if !auth.CheckPassword(hash, password) {
		s.eventSvc.CreateEvent("auth.login.fail", "warn", "Failed login attempt", nil)
		return "", apperr.ErrInvalidCredentials
	}

	return s.tokens.Issue(username)
}
