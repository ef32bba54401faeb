package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"market/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*AccountRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewAccountRepo(&DB{sql: db}), mock
}

func TestAccountRepo_GetByUsername(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery("SELECT id, username, password, balance, created_at FROM accounts WHERE username = $1").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "balance", "created_at"}).
			AddRow(1, "alice", "pw", 10000, now))

	a, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, int64(10000), a.Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_GetByUsername_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT id, username, password, balance, created_at FROM accounts WHERE username = $1").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "balance", "created_at"}))

	a, err := repo.GetByUsername(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, a, "missing rows map to nil, nil")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_Transfer_Commits(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE accounts SET balance = balance - $1 WHERE id = $2 AND balance >= $1").
		WithArgs(int64(3000), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE accounts SET balance = balance + $1 WHERE id = $2").
		WithArgs(int64(3000), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Transfer(context.Background(), 1, 2, 3000)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_Transfer_InsufficientRollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE accounts SET balance = balance - $1 WHERE id = $2 AND balance >= $1").
		WithArgs(int64(20000), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Transfer(context.Background(), 1, 2, 20000)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.NoError(t, mock.ExpectationsWereMet(), "the credit must never run after a failed debit")
}

func TestAccountRepo_Transfer_CreditFailureRollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)
	boom := errors.New("connection reset")

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE accounts SET balance = balance - $1 WHERE id = $2 AND balance >= $1").
		WithArgs(int64(100), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE accounts SET balance = balance + $1 WHERE id = $2").
		WithArgs(int64(100), int64(2)).
		WillReturnError(boom)
	mock.ExpectRollback()

	err := repo.Transfer(context.Background(), 1, 2, 100)
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
