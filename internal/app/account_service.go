package app

import (
	"context"
	"strconv"

	"market/internal/domain"
)

// AccountService encapsulates balance-transfer use cases.
type AccountService struct {
	accounts domain.AccountRepository
}

// NewAccountService creates an AccountService backed by the given repository.
func NewAccountService(accounts domain.AccountRepository) *AccountService {
	return &AccountService{accounts: accounts}
}

// Get returns the account with the given id.
func (s *AccountService) Get(ctx context.Context, id int64) (*domain.Account, error) {
	acct, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, domain.ErrAccountNotFound
	}
	return acct, nil
}

// Transfer moves balance from the sender to the account named by
// recipientUsername. amountRaw is untrusted form input; anything that is not
// a positive integer is rejected before any balance is touched.
//
// Checks run in this order: amount syntax, recipient existence, self
// transfer, balance cover. Existence is checked before the identity
// comparison so a nonexistent recipient can never be dereferenced.
func (s *AccountService) Transfer(ctx context.Context, senderID int64, recipientUsername, amountRaw string) error {
	amount, err := strconv.ParseInt(amountRaw, 10, 64)
	if err != nil || amount <= 0 {
		return domain.ErrInvalidAmount
	}

	recipient, err := s.accounts.GetByUsername(ctx, recipientUsername)
	if err != nil {
		return err
	}
	if recipient == nil {
		return domain.ErrRecipientNotFound
	}
	if recipient.ID == senderID {
		return domain.ErrSelfTransfer
	}

	// The repository applies the debit and credit atomically and reports
	// ErrInsufficientBalance without partial state.
	return s.accounts.Transfer(ctx, senderID, recipient.ID, amount)
}
