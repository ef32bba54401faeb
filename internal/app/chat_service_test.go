package app

import (
	"context"
	"testing"

	"market/internal/adapter/memory"
	"market/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatService_BroadcastReachesAllSubscribers(t *testing.T) {
	ctx := context.Background()
	repo := memory.New().NewAccountRepo()
	alice, err := repo.Create(ctx, "alice", "pw", domain.DefaultBalance)
	require.NoError(t, err)

	svc := NewChatService(repo)
	a := svc.Subscribe()
	b := svc.Subscribe()
	c := svc.Subscribe()
	defer svc.Unsubscribe(a)
	defer svc.Unsubscribe(b)
	defer svc.Unsubscribe(c)

	require.NoError(t, svc.Broadcast(ctx, alice.ID, "hello"))

	want := domain.ChatMessage{Username: "alice", Message: "hello"}
	for _, ch := range []chan domain.ChatMessage{a, b, c} {
		select {
		case got := <-ch:
			assert.Equal(t, want, got)
		default:
			t.Fatal("subscriber did not receive the broadcast")
		}
	}
}

func TestChatService_UnknownSender(t *testing.T) {
	repo := memory.New().NewAccountRepo()
	svc := NewChatService(repo)

	sub := svc.Subscribe()
	defer svc.Unsubscribe(sub)

	err := svc.Broadcast(context.Background(), 42, "hello")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	assert.Empty(t, sub, "nothing may be delivered for an unresolvable sender")
}

func TestChatService_UnsubscribedReceivesNothing(t *testing.T) {
	ctx := context.Background()
	repo := memory.New().NewAccountRepo()
	alice, err := repo.Create(ctx, "alice", "pw", domain.DefaultBalance)
	require.NoError(t, err)

	svc := NewChatService(repo)
	gone := svc.Subscribe()
	stay := svc.Subscribe()
	defer svc.Unsubscribe(stay)

	svc.Unsubscribe(gone)
	require.NoError(t, svc.Broadcast(ctx, alice.ID, "hi"))

	_, open := <-gone
	assert.False(t, open, "unsubscribed channel must be closed")
	assert.Len(t, stay, 1)
	assert.Equal(t, 1, svc.Subscribers())
}

func TestChatService_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	ctx := context.Background()
	repo := memory.New().NewAccountRepo()
	alice, err := repo.Create(ctx, "alice", "pw", domain.DefaultBalance)
	require.NoError(t, err)

	svc := NewChatService(repo)
	slow := svc.Subscribe()
	defer svc.Unsubscribe(slow)

	// Overfill the subscriber queue; Broadcast must never block.
	for i := 0; i < subscriberBuffer+5; i++ {
		require.NoError(t, svc.Broadcast(ctx, alice.ID, "spam"))
	}
	assert.Len(t, slow, subscriberBuffer)
}

func TestChatService_UnsubscribeTwice(t *testing.T) {
	svc := NewChatService(memory.New().NewAccountRepo())
	sub := svc.Subscribe()
	svc.Unsubscribe(sub)
	// Second call must not panic on the already-closed channel.
	svc.Unsubscribe(sub)
}
