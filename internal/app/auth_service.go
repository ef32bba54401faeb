// Package app holds the application services and business logic.
package app

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"market/internal/domain"
)

var (
	// ErrInvalidCredentials indicates that the provided username or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrSessionNotFound indicates that the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates that the session has expired.
	ErrSessionExpired = errors.New("session expired")
)

// SessionDuration is how long a login remains valid.
const SessionDuration = 24 * time.Hour

// AuthService handles registration, authentication and session management.
type AuthService struct {
	accounts    domain.AccountRepository
	sessions    domain.SessionRepository
	credentials CredentialScheme
}

// NewAuthService creates a new authentication service.
func NewAuthService(accounts domain.AccountRepository, sessions domain.SessionRepository, credentials CredentialScheme) *AuthService {
	return &AuthService{
		accounts:    accounts,
		sessions:    sessions,
		credentials: credentials,
	}
}

// Register creates a new account with the default starting balance. The
// username must not already be taken; uniqueness is enforced by an
// existence check, matching the historical behavior.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.Account, error) {
	existing, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}

	stored, err := s.credentials.Hash(password)
	if err != nil {
		return nil, err
	}
	return s.accounts.Create(ctx, username, stored, domain.DefaultBalance)
}

// Login authenticates an account and creates a session.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	acct, err := s.accounts.GetByUsername(ctx, username)
	if err != nil || acct == nil {
		return "", ErrInvalidCredentials
	}

	if !s.credentials.Verify(acct.Password, password) {
		return "", ErrInvalidCredentials
	}

	return s.createSession(ctx, acct.ID)
}

// LoginWithAccount creates a session for an already-authenticated account,
// e.g. after an SSO callback.
func (s *AuthService) LoginWithAccount(ctx context.Context, username string) (string, error) {
	acct, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if acct == nil {
		// First SSO login: provision an account with the standard
		// starting balance and an unusable credential.
		acct, err = s.accounts.Create(ctx, username, "", domain.DefaultBalance)
		if err != nil {
			createErr := err
			// Lost a race with a concurrent first login; fetch again.
			acct, err = s.accounts.GetByUsername(ctx, username)
			if err != nil {
				return "", err
			}
			if acct == nil {
				// Not a lost race; the create genuinely failed.
				return "", createErr
			}
		}
	}

	return s.createSession(ctx, acct.ID)
}

// Logout invalidates a session. Unconditional: unknown tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// ValidateSession resolves a session token to the acting account.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*domain.Account, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil || session == nil {
		return nil, ErrSessionNotFound
	}

	if time.Now().After(session.ExpiresAt) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	acct, err := s.accounts.GetByID(ctx, session.AccountID)
	if err != nil || acct == nil {
		return nil, domain.ErrAccountNotFound
	}

	return acct, nil
}

func (s *AuthService) createSession(ctx context.Context, accountID int64) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().Add(SessionDuration)
	if err := s.sessions.Create(ctx, accountID, token, expiresAt); err != nil {
		return "", err
	}
	return token, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
