package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"github.com/inovotek/book-directory-api/internal/domain"
	"github.com/inovotek/book-directory-api/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const DefaultSessionTTL = 24 * time.Hour

// SessionManager persists session state keyed by an opaque token. Every
// call round-trips the backing store; there is no in-memory cache.
type SessionManager struct {
	sessions repository.SessionRepository
	ttl      time.Duration
}

func NewSessionManager(sessions repository.SessionRepository, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionManager{
		sessions: sessions,
		ttl:      ttl,
	}
}

func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Create stores an immutable snapshot of the subject and returns the new
// session token. The password hash is excluded from the snapshot by its
// serialization tag.
func (m *SessionManager) Create(ctx context.Context, subject *domain.User) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	snapshot, err := json.Marshal(subject)
	if err != nil {
		return "", err
	}

	session := &domain.Session{
		Token:     token,
		AuthUser:  datatypes.JSON(snapshot),
		ExpiresAt: time.Now().Add(m.ttl),
	}

	if err := m.sessions.Create(ctx, session); err != nil {
		return "", err
	}

	return token, nil
}

// Get returns the subject snapshot for a live session. Unknown and expired
// tokens both fail softly with ErrSessionNotFound; an expired row is
// removed on the way out.
func (m *SessionManager) Get(ctx context.Context, token string) (*domain.User, error) {
	session, err := m.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	if time.Now().After(session.ExpiresAt) {
		_ = m.sessions.Delete(ctx, token)
		return nil, domain.ErrSessionNotFound
	}

	var subject domain.User
	if err := json.Unmarshal(session.AuthUser, &subject); err != nil {
		return nil, err
	}

	return &subject, nil
}

// Destroy removes the session. Destroying an already-gone session is not
// an error.
func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	return m.sessions.Delete(ctx, token)
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
