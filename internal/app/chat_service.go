package app

import (
	"context"
	"sync"

	"market/internal/domain"
)

// subscriberBuffer is the per-subscriber queue depth. A subscriber that
// falls further behind than this misses messages; there is no replay.
const subscriberBuffer = 16

// ChatService fans chat messages out to every subscribed connection. Sender
// identity is resolved from the store at the moment each message is
// broadcast, not cached at subscribe time.
type ChatService struct {
	accounts domain.AccountRepository

	mu   sync.Mutex
	subs map[chan domain.ChatMessage]struct{}
}

// NewChatService creates a ChatService backed by the given account repository.
func NewChatService(accounts domain.AccountRepository) *ChatService {
	return &ChatService{
		accounts: accounts,
		subs:     make(map[chan domain.ChatMessage]struct{}),
	}
}

// Subscribe registers a new listener and returns its delivery channel. A
// subscriber added while a broadcast is in flight may miss that message.
func (s *ChatService) Subscribe() chan domain.ChatMessage {
	ch := make(chan domain.ChatMessage, subscriberBuffer)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener and closes its channel.
func (s *ChatService) Unsubscribe(ch chan domain.ChatMessage) {
	s.mu.Lock()
	if _, ok := s.subs[ch]; ok {
		delete(s.subs, ch)
		close(ch)
	}
	s.mu.Unlock()
}

// Broadcast resolves the sender's username and delivers the message to
// every current subscriber, including the sender. A sender whose account
// cannot be resolved (e.g. session expired mid-connection) gets an error;
// nothing is delivered.
func (s *ChatService) Broadcast(ctx context.Context, senderID int64, message string) error {
	acct, err := s.accounts.GetByID(ctx, senderID)
	if err != nil {
		return err
	}
	if acct == nil {
		return domain.ErrAccountNotFound
	}

	msg := domain.ChatMessage{Username: acct.Username, Message: message}

	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- msg:
		default:
			// Subscriber is not keeping up; drop rather than block
			// the broadcast.
		}
	}
	return nil
}

// Subscribers returns the number of connected listeners.
func (s *ChatService) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
