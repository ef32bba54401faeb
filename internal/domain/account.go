// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"errors"
	"time"
)

// DefaultBalance is the balance granted to every newly registered account.
const DefaultBalance int64 = 10000

// Transfer errors. Repositories and services return these so handlers can
// map each failure to a user-visible notice.
var (
	// ErrAccountNotFound indicates that the account does not exist.
	ErrAccountNotFound = errors.New("account not found")
	// ErrRecipientNotFound indicates that no account matches the recipient username.
	ErrRecipientNotFound = errors.New("recipient not found")
	// ErrSelfTransfer indicates an attempt to transfer balance to oneself.
	ErrSelfTransfer = errors.New("cannot transfer to yourself")
	// ErrInsufficientBalance indicates the sender's balance cannot cover the amount.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInvalidAmount indicates a transfer amount that is not a positive integer.
	ErrInvalidAmount = errors.New("invalid transfer amount")
	// ErrUsernameTaken indicates a registration with an already-used username.
	ErrUsernameTaken = errors.New("username already taken")
)

// Account represents a registered marketplace user. Password is an opaque
// credential string whose format is owned by the configured credential
// scheme; callers must never interpret it.
type Account struct {
	ID        int64
	Username  string
	Password  string
	Balance   int64
	CreatedAt time.Time
}

// AccountRepository defines the port for account persistence operations.
type AccountRepository interface {
	GetByUsername(ctx context.Context, username string) (*Account, error)
	GetByID(ctx context.Context, id int64) (*Account, error)
	Create(ctx context.Context, username, password string, balance int64) (*Account, error)

	// Transfer atomically moves amount from sender to recipient. Both
	// mutations commit together or not at all. Returns
	// ErrInsufficientBalance when the sender cannot cover amount, leaving
	// both balances untouched.
	Transfer(ctx context.Context, senderID, recipientID, amount int64) error
}
