// Package memory implements in-memory repositories for development and
// testing, and holds the session store used in production (sessions are
// process-scoped by design).
package memory

import (
	"context"
	"sync"
	"time"

	"market/internal/domain"
)

// DB implements the account and listing repositories in memory.
type DB struct {
	mu       sync.Mutex
	accounts []*domain.Account
	listings []*domain.Listing

	accountIDCounter int64
	listingIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{}
}

// Ensure interfaces are met.
var _ domain.AccountRepository = (*AccountRepo)(nil)
var _ domain.ListingRepository = (*ListingRepo)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// AccountRepo implements account persistence on DB.
type AccountRepo struct {
	db *DB
}

// NewAccountRepo wraps a DB as an AccountRepository.
func (db *DB) NewAccountRepo() *AccountRepo {
	return &AccountRepo{db: db}
}

// GetByUsername retrieves an account by username.
func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, a := range r.db.accounts {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepo) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if a := r.db.findAccount(id); a != nil {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

// Create creates a new account.
func (r *AccountRepo) Create(ctx context.Context, username, password string, balance int64) (*domain.Account, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, a := range r.db.accounts {
		if a.Username == username {
			return nil, domain.ErrUsernameTaken
		}
	}

	r.db.accountIDCounter++
	a := &domain.Account{
		ID:        r.db.accountIDCounter,
		Username:  username,
		Password:  password,
		Balance:   balance,
		CreatedAt: time.Now().UTC(),
	}
	r.db.accounts = append(r.db.accounts, a)
	cp := *a
	return &cp, nil
}

// Transfer applies the debit and credit under one lock so the pair is
// observed atomically.
func (r *AccountRepo) Transfer(ctx context.Context, senderID, recipientID, amount int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	sender := r.db.findAccount(senderID)
	recipient := r.db.findAccount(recipientID)
	if sender == nil || recipient == nil {
		return domain.ErrAccountNotFound
	}
	if sender.Balance < amount {
		return domain.ErrInsufficientBalance
	}

	sender.Balance -= amount
	recipient.Balance += amount
	return nil
}

func (db *DB) findAccount(id int64) *domain.Account {
	for _, a := range db.accounts {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// ListingRepo implements listing persistence on DB.
type ListingRepo struct {
	db *DB
}

// NewListingRepo wraps a DB as a ListingRepository.
func (db *DB) NewListingRepo() *ListingRepo {
	return &ListingRepo{db: db}
}

// GetByID retrieves a listing by ID.
func (r *ListingRepo) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, l := range r.db.listings {
		if l.ID == id {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

// Create creates a new listing.
func (r *ListingRepo) Create(ctx context.Context, accountID int64, name, price, description string) (*domain.Listing, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.listingIDCounter++
	l := &domain.Listing{
		ID:          r.db.listingIDCounter,
		Name:        name,
		Price:       price,
		Description: description,
		AccountID:   accountID,
		CreatedAt:   time.Now().UTC(),
	}
	r.db.listings = append(r.db.listings, l)
	cp := *l
	return &cp, nil
}

// ListAll returns every listing.
func (r *ListingRepo) ListAll(ctx context.Context) ([]domain.Listing, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	result := make([]domain.Listing, 0, len(r.db.listings))
	for _, l := range r.db.listings {
		result = append(result, *l)
	}
	return result, nil
}

// SessionRepo implements session persistence. Sessions only ever live here;
// they are destroyed with the process.
type SessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

// NewSessionRepo creates a new session repository.
func NewSessionRepo() *SessionRepo {
	return &SessionRepo{sessions: make(map[string]*domain.Session)}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, accountID int64, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[token] = &domain.Session{
		Token:     token,
		AccountID: accountID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[token]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for k, v := range r.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.sessions, k)
		}
	}
	return nil
}
