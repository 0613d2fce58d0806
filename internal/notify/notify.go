// Package notify delivers outbound messages (email, SMS, WhatsApp) off the
// request path. Sends are enqueued after the primary write and processed by
// a background worker with bounded retries, so provider latency or failure
// never alters a client-visible response.
package notify

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"sync"
	"time"
)

// Message kinds, routed to the matching sender.
const (
	KindEmail    = "email"
	KindSMS      = "sms"
	KindWhatsApp = "whatsapp"
)

// Message is one outbound notification.
type Message struct {
	Kind    string
	To      string
	Subject string
	Body    string
}

// Sender delivers a single message to its provider.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Notifier owns the queue and the delivery worker.
type Notifier struct {
	queue      chan Message
	senders    map[string]Sender
	maxRetries int
	retryDelay time.Duration

	wg   sync.WaitGroup
	once sync.Once
	enc  *json.Encoder
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithRetryDelay overrides the pause between delivery attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(n *Notifier) { n.retryDelay = d }
}

// New builds a Notifier with the given senders keyed by message kind.
func New(senders map[string]Sender, queueSize, maxRetries int, opts ...Option) *Notifier {
	if queueSize <= 0 {
		queueSize = 256
	}
	if maxRetries <= 0 {
		maxRetries = 3
	}
	n := &Notifier{
		queue:      make(chan Message, queueSize),
		senders:    senders,
		maxRetries: maxRetries,
		retryDelay: 2 * time.Second,
		enc:        json.NewEncoder(os.Stdout),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Start launches the delivery worker.
func (n *Notifier) Start() {
	n.wg.Add(1)
	go n.worker()
}

// Stop closes the queue and waits for in-flight deliveries to finish.
func (n *Notifier) Stop() {
	n.once.Do(func() { close(n.queue) })
	n.wg.Wait()
}

// Enqueue hands a message to the worker without blocking the caller. A full
// queue drops the message with a log entry; the primary action has already
// succeeded at this point.
func (n *Notifier) Enqueue(msg Message) {
	select {
	case n.queue <- msg:
	default:
		n.logEvent(map[string]any{
			"component": "notify",
			"event":     "queue_full_dropped",
			"kind":      msg.Kind,
			"to":        msg.To,
		})
	}
}

func (n *Notifier) worker() {
	defer n.wg.Done()
	for msg := range n.queue {
		n.deliver(msg)
	}
}

func (n *Notifier) deliver(msg Message) {
	sender, ok := n.senders[msg.Kind]
	if !ok {
		n.logEvent(map[string]any{
			"component": "notify",
			"event":     "no_sender_for_kind",
			"kind":      msg.Kind,
		})
		return
	}

	var lastErr error
	for attempt := 1; attempt <= n.maxRetries; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		lastErr = sender.Send(ctx, msg)
		cancel()
		if lastErr == nil {
			n.logEvent(map[string]any{
				"component": "notify",
				"event":     "delivered",
				"kind":      msg.Kind,
				"to":        msg.To,
				"attempt":   attempt,
			})
			return
		}
		if attempt < n.maxRetries {
			time.Sleep(n.retryDelay)
		}
	}

	n.logEvent(map[string]any{
		"component": "notify",
		"event":     "delivery_failed",
		"kind":      msg.Kind,
		"to":        msg.To,
		"attempts":  n.maxRetries,
		"error":     lastErr.Error(),
	})
}

func (n *Notifier) logEvent(fields map[string]any) {
	fields["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	if err := n.enc.Encode(fields); err != nil {
		log.Printf("notify: failed to encode log entry: %v", err)
	}
}
