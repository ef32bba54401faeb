package app

import (
	"context"
	"testing"

	"market/internal/adapter/memory"
	"market/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccounts(t *testing.T) (*memory.AccountRepo, *domain.Account, *domain.Account) {
	t.Helper()
	ctx := context.Background()
	repo := memory.New().NewAccountRepo()

	alice, err := repo.Create(ctx, "alice", "pw", domain.DefaultBalance)
	require.NoError(t, err)
	bob, err := repo.Create(ctx, "bob", "pw", domain.DefaultBalance)
	require.NoError(t, err)
	return repo, alice, bob
}

func balances(t *testing.T, repo *memory.AccountRepo, ids ...int64) []int64 {
	t.Helper()
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		acct, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		require.NotNil(t, acct)
		out = append(out, acct.Balance)
	}
	return out
}

func TestAccountService_Transfer_MovesBalance(t *testing.T) {
	ctx := context.Background()
	repo, alice, bob := newTestAccounts(t)
	svc := NewAccountService(repo)

	// Both start at 10000; a 3000 transfer leaves 7000/13000.
	require.NoError(t, svc.Transfer(ctx, alice.ID, "bob", "3000"))
	got := balances(t, repo, alice.ID, bob.ID)
	assert.Equal(t, int64(7000), got[0])
	assert.Equal(t, int64(13000), got[1])

	// An uncovered follow-up is rejected and changes nothing.
	err := svc.Transfer(ctx, alice.ID, "bob", "20000")
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	got = balances(t, repo, alice.ID, bob.ID)
	assert.Equal(t, int64(7000), got[0])
	assert.Equal(t, int64(13000), got[1])
}

func TestAccountService_Transfer_ConservesTotal(t *testing.T) {
	ctx := context.Background()
	repo, alice, bob := newTestAccounts(t)
	svc := NewAccountService(repo)

	for _, amount := range []string{"1", "250", "9999"} {
		before := balances(t, repo, alice.ID, bob.ID)
		err := svc.Transfer(ctx, alice.ID, "bob", amount)
		after := balances(t, repo, alice.ID, bob.ID)
		assert.Equal(t, before[0]+before[1], after[0]+after[1], "total balance must be conserved (amount=%s, err=%v)", amount, err)
	}
}

func TestAccountService_Transfer_SelfRejected(t *testing.T) {
	ctx := context.Background()
	repo, alice, _ := newTestAccounts(t)
	svc := NewAccountService(repo)

	err := svc.Transfer(ctx, alice.ID, "alice", "1")
	assert.ErrorIs(t, err, domain.ErrSelfTransfer)
	assert.Equal(t, []int64{domain.DefaultBalance}, balances(t, repo, alice.ID))
}

func TestAccountService_Transfer_RecipientMissing(t *testing.T) {
	ctx := context.Background()
	repo, alice, _ := newTestAccounts(t)
	svc := NewAccountService(repo)

	err := svc.Transfer(ctx, alice.ID, "mallory", "1")
	assert.ErrorIs(t, err, domain.ErrRecipientNotFound)
}

// The recipient existence check must run before any comparison against the
// recipient, so an unknown username can never be dereferenced.
func TestAccountService_Transfer_ExistenceCheckedFirst(t *testing.T) {
	transferCalled := false
	repo := &mockAccountRepo{
		transferFn: func(ctx context.Context, senderID, recipientID, amount int64) error {
			transferCalled = true
			return nil
		},
	}
	svc := NewAccountService(repo)

	err := svc.Transfer(context.Background(), 1, "ghost", "100")
	assert.ErrorIs(t, err, domain.ErrRecipientNotFound)
	assert.False(t, transferCalled, "no balance mutation may happen for an unknown recipient")
}

func TestAccountService_Transfer_RejectsBadAmounts(t *testing.T) {
	ctx := context.Background()
	repo, alice, bob := newTestAccounts(t)
	svc := NewAccountService(repo)

	for _, amount := range []string{"", "abc", "-1", "0", "12.5", "1e3"} {
		err := svc.Transfer(ctx, alice.ID, "bob", amount)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, "amount=%q", amount)
	}

	got := balances(t, repo, alice.ID, bob.ID)
	assert.Equal(t, []int64{domain.DefaultBalance, domain.DefaultBalance}, got)
}

func TestAccountService_Get_Missing(t *testing.T) {
	repo, _, _ := newTestAccounts(t)
	svc := NewAccountService(repo)

	_, err := svc.Get(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}
