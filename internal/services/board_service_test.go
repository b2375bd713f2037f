package services

import (
	"fmt"
	"testing"

	"github.com/hwigle/reactStudy/internal/apperr"
	"github.com/hwigle/reactStudy/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardOwnership(t *testing.T) {
	db := newTestDB(t)
	registerUsers(t, db, "alice", "bob")
	svc := NewBoardService(db, NewEventService(db))

	alice := &auth.Principal{Username: "alice"}
	bob := &auth.Principal{Username: "bob"}

	board, err := svc.Create(alice, "hello", "first post")
	require.NoError(t, err)
	assert.Equal(t, "alice", board.AuthorUsername)

	// A different principal can neither update nor delete.
	_, err = svc.Update(bob, board.ID, "hijacked", "x")
	assert.ErrorIs(t, err, apperr.ErrNotAuthorized)
	assert.ErrorIs(t, svc.Delete(bob, board.ID), apperr.ErrNotAuthorized)

	// Missing principal fails closed the same way.
	assert.ErrorIs(t, svc.Delete(nil, board.ID), apperr.ErrNotAuthorized)

	updated, err := svc.Update(alice, board.ID, "hello again", "edited")
	require.NoError(t, err)
	assert.Equal(t, "hello again", updated.Title)
	assert.Equal(t, "alice", updated.AuthorUsername)

	require.NoError(t, svc.Delete(alice, board.ID))
	_, err = svc.Get(board.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestBoardCreateRequiresPrincipal(t *testing.T) {
	db := newTestDB(t)
	svc := NewBoardService(db, NewEventService(db))

	_, err := svc.Create(nil, "hello", "x")
	assert.ErrorIs(t, err, apperr.ErrAuthenticationRequired)
}

func TestBoardMutateMissing(t *testing.T) {
	db := newTestDB(t)
	registerUsers(t, db, "alice")
	svc := NewBoardService(db, NewEventService(db))
	alice := &auth.Principal{Username: "alice"}

	_, err := svc.Get(42)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = svc.Update(alice, 42, "t", "c")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(alice, 42), apperr.ErrNotFound)
}

func TestBoardPagination(t *testing.T) {
	db := newTestDB(t)
	registerUsers(t, db, "alice")
	svc := NewBoardService(db, NewEventService(db))
	alice := &auth.Principal{Username: "alice"}

	for i := 1; i <= 15; i++ {
		_, err := svc.Create(alice, fmt.Sprintf("post %d", i), "content")
		require.NoError(t, err)
	}

	first, err := svc.List(0, 10)
	require.NoError(t, err)
	assert.Len(t, first.Content, 10)
	assert.EqualValues(t, 15, first.TotalElements)
	assert.Equal(t, 2, first.TotalPages)
	assert.Equal(t, 0, first.Number)
	// Newest first.
	assert.Equal(t, "post 15", first.Content[0].Title)

	second, err := svc.List(1, 10)
	require.NoError(t, err)
	assert.Len(t, second.Content, 5)
	assert.Equal(t, "post 5", second.Content[0].Title)

	// Out-of-range arguments fall back to defaults.
	fallback, err := svc.List(-1, 0)
	require.NoError(t, err)
	assert.Len(t, fallback.Content, 10)
	assert.Equal(t, 0, fallback.Number)
	assert.Equal(t, 10, fallback.Size)
}
