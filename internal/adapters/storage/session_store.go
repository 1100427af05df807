package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/clinicdesk/backend/internal/domain/entities"
	"github.com/clinicdesk/backend/internal/domain/providers"
	apperrors "github.com/clinicdesk/backend/pkg/errors"
)

const sessionKeyPrefix = "session:"

// SessionStore persists bearer-token sessions in the key-value store.
// Expiry lives inside the session record so the file and Redis backends
// behave identically.
type SessionStore struct {
	kv  providers.KeyValueStore
	now func() time.Time
}

// NewSessionStore creates a new session store
func NewSessionStore(kv providers.KeyValueStore) *SessionStore {
	return &SessionStore{kv: kv, now: time.Now}
}

// Save persists a session under its token.
func (s *SessionStore) Save(ctx context.Context, session *entities.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return apperrors.NewInternalError("failed to serialize session", err)
	}
	if err := s.kv.Set(ctx, sessionKeyPrefix+session.Token, string(data)); err != nil {
		return apperrors.NewInternalError("failed to persist session", err)
	}
	return nil
}

// Get returns the session for a token. Unknown or expired tokens yield an
// unauthorized error; expired sessions are removed on the way out.
func (s *SessionStore) Get(ctx context.Context, token string) (*entities.Session, error) {
	raw, found, err := s.kv.Get(ctx, sessionKeyPrefix+token)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to read session", err)
	}
	if !found {
		return nil, apperrors.NewUnauthorizedError("invalid session token")
	}

	var session entities.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid session token")
	}

	if session.Expired(s.now()) {
		_ = s.kv.Delete(ctx, sessionKeyPrefix+token)
		return nil, apperrors.NewUnauthorizedError("session expired")
	}

	return &session, nil
}

// Delete removes a session.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	return s.kv.Delete(ctx, sessionKeyPrefix+token)
}
