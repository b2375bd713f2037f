package services

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/hwigle/reactStudy/internal/auth"
	"github.com/hwigle/reactStudy/internal/database"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a private in-memory database with the full schema.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := database.New("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func registerUsers(t *testing.T, db *sql.DB, usernames ...string) {
	t.Helper()
	svc := NewAuthService(db, auth.NewTokenService("test-secret"), NewEventService(db))
	for _, username := range usernames {
		_, err := svc.Register(username, "pw")
		require.NoError(t, err)
	}
}
