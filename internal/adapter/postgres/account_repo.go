package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"market/internal/domain"
)

// AccountRepo implements account repository operations on DB.
type AccountRepo struct {
	db *DB
}

// NewAccountRepo wraps a DB as an AccountRepository.
func NewAccountRepo(db *DB) *AccountRepo {
	return &AccountRepo{db: db}
}

// GetByUsername retrieves an account by username.
func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var a domain.Account
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT id, username, password, balance, created_at FROM accounts WHERE username = $1",
		username,
	).Scan(&a.ID, &a.Username, &a.Password, &a.Balance, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepo) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	var a domain.Account
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT id, username, password, balance, created_at FROM accounts WHERE id = $1",
		id,
	).Scan(&a.ID, &a.Username, &a.Password, &a.Balance, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create creates a new account.
func (r *AccountRepo) Create(ctx context.Context, username, password string, balance int64) (*domain.Account, error) {
	var a domain.Account
	err := r.db.sql.QueryRowContext(ctx,
		"INSERT INTO accounts (username, password, balance, created_at) VALUES ($1, $2, $3, $4) RETURNING id, username, password, balance, created_at",
		username, password, balance, time.Now(),
	).Scan(&a.ID, &a.Username, &a.Password, &a.Balance, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Transfer debits the sender and credits the recipient inside a single
// transaction. The debit is guarded by the sender's current balance, so an
// uncovered amount rolls back with ErrInsufficientBalance and neither
// balance changes.
func (r *AccountRepo) Transfer(ctx context.Context, senderID, recipientID, amount int64) error {
	tx, err := r.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("transfer: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"UPDATE accounts SET balance = balance - $1 WHERE id = $2 AND balance >= $1",
		amount, senderID,
	)
	if err != nil {
		return fmt.Errorf("transfer: debit: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("transfer: debit rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrInsufficientBalance
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE accounts SET balance = balance + $1 WHERE id = $2",
		amount, recipientID,
	); err != nil {
		return fmt.Errorf("transfer: credit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transfer: commit: %w", err)
	}
	return nil
}
