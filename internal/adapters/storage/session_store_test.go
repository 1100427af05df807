package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/backend/internal/domain/entities"
	apperrors "github.com/clinicdesk/backend/pkg/errors"
)

func sampleSession(token string, expiresAt time.Time) *entities.Session {
	return &entities.Session{
		Token:     token,
		UserID:    "user-1",
		Email:     "ada@clinic.example",
		CreatedAt: expiresAt.Add(-24 * time.Hour),
		ExpiresAt: expiresAt,
	}
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(newMemKV())

	session := sampleSession("tok-1", time.Now().Add(time.Hour))
	require.NoError(t, store.Save(ctx, session))

	got, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, session.UserID, got.UserID)
	assert.Equal(t, session.Email, got.Email)
}

func TestSessionStore_Get_UnknownToken(t *testing.T) {
	store := NewSessionStore(newMemKV())

	_, err := store.Get(context.Background(), "missing")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
}

func TestSessionStore_Get_ExpiredSessionRemoved(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	store := NewSessionStore(kv)

	expiry := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, sampleSession("tok-1", expiry)))

	store.now = func() time.Time { return expiry.Add(time.Minute) }

	_, err := store.Get(ctx, "tok-1")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))

	_, found, err := kv.Get(ctx, sessionKeyPrefix+"tok-1")
	require.NoError(t, err)
	assert.False(t, found, "expired sessions are deleted on read")
}

func TestSessionStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(newMemKV())

	require.NoError(t, store.Save(ctx, sampleSession("tok-1", time.Now().Add(time.Hour))))
	require.NoError(t, store.Delete(ctx, "tok-1"))

	_, err := store.Get(ctx, "tok-1")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))

	// Deleting an unknown token is a no-op.
	require.NoError(t, store.Delete(ctx, "missing"))
}
