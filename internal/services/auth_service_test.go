package services

import (
	"testing"

	"github.com/hwigle/reactStudy/internal/apperr"
	"github.com/hwigle/reactStudy/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	tokens := auth.NewTokenService("test-secret")
	svc := NewAuthService(db, tokens, NewEventService(db))

	user, err := svc.Register("alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, user.ID)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.Register("alice", "pw2")
	assert.ErrorIs(t, err, apperr.ErrCredentialConflict)

	_, err = svc.Login("alice", "wrong")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	// Unknown user fails with the same error as a wrong password.
	_, err = svc.Login("nobody", "pw1")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	tokenStr, err := svc.Login("alice", "pw1")
	require.NoError(t, err)

	subject, err := tokens.Subject(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestStoredPasswordIsHashed(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, auth.NewTokenService("test-secret"), NewEventService(db))

	_, err := svc.Register("alice", "pw1")
	require.NoError(t, err)

	var hash string
	require.NoError(t, db.QueryRow("SELECT password_hash FROM users WHERE username = ?", "alice").Scan(&hash))
	assert.NotEqual(t, "pw1", hash)
	assert.True(t, auth.CheckPassword(hash, "pw1"))
}

func TestRegisterRecordsEvent(t *testing.T) {
	db := newTestDB(t)
	events := NewEventService(db)
	svc := NewAuthService(db, auth.NewTokenService("test-secret"), events)

	_, err := svc.Register("alice", "pw1")
	require.NoError(t, err)

	recent, err := events.GetRecentEvents(10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "user.register", recent[0].Type)
}
