package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// flakySender fails a configured number of times before succeeding.
type flakySender struct {
	mu       sync.Mutex
	failures int
	calls    []Message
}

func (s *flakySender) Send(_ context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, msg)
	if s.failures > 0 {
		s.failures--
		return errors.New("provider unavailable")
	}
	return nil
}

func (s *flakySender) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func TestNotifier_DeliversAfterRetry(t *testing.T) {
	sender := &flakySender{failures: 2}
	n := New(map[string]Sender{KindEmail: sender}, 8, 3, WithRetryDelay(time.Millisecond))
	n.Start()

	n.Enqueue(Message{Kind: KindEmail, To: "a@b.test", Subject: "hi", Body: "hello"})
	n.Stop()

	assert.Equal(t, 3, sender.callCount())
}

func TestNotifier_GivesUpAfterMaxRetries(t *testing.T) {
	sender := &flakySender{failures: 10}
	n := New(map[string]Sender{KindSMS: sender}, 8, 2, WithRetryDelay(time.Millisecond))
	n.Start()

	n.Enqueue(Message{Kind: KindSMS, To: "+15550001111", Body: "code"})
	n.Stop()

	// Exactly maxRetries attempts, then the failure is logged and dropped.
	assert.Equal(t, 2, sender.callCount())
}

func TestNotifier_UnknownKindIsDropped(t *testing.T) {
	sender := &flakySender{}
	n := New(map[string]Sender{KindEmail: sender}, 8, 3, WithRetryDelay(time.Millisecond))
	n.Start()

	n.Enqueue(Message{Kind: "pigeon", To: "roof"})
	n.Stop()

	assert.Equal(t, 0, sender.callCount())
}
