package domain

import (
	"context"
	"time"
)

// Session represents an active login. Sessions are ephemeral: they bind a
// token to an account id for the lifetime of the process and are never
// persisted to the store.
type Session struct {
	Token     string
	AccountID int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// SessionRepository defines the port for session storage.
type SessionRepository interface {
	Create(ctx context.Context, accountID int64, token string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}
