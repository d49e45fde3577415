// Package events is the in-process invalidation bus. Views that show
// transaction-derived data subscribe to TransactionCreated and refresh.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/GregMSThompson/finan-bff/pkg/logger"
)

type Topic string

// TransactionCreated fires after any transaction-mutating action: create,
// delete and reward claim.
const TransactionCreated Topic = "transaction:created"

type Event struct {
	Topic         Topic     `json:"topic"`
	Origin        string    `json:"origin"`
	At            time.Time `json:"at"`
	TransactionID string    `json:"transactionId,omitempty"`
	CardID        string    `json:"cardId,omitempty"`
}

func (e Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

func UnmarshalEvent(b []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(b, &e); err != nil {
		return e, fmt.Errorf("decode event: %w", err)
	}
	if e.Topic == "" {
		return e, fmt.Errorf("decode event: missing topic")
	}
	return e, nil
}

// Handler runs synchronously inside Publish and must not block; start a
// goroutine for slow work.
type Handler func(ctx context.Context, e Event)

// Forwarder ships locally published events to other instances.
type Forwarder interface {
	Forward(ctx context.Context, e Event) error
}

type Bus struct {
	instance string

	mu         sync.RWMutex
	next       uint64
	subs       map[Topic]map[uint64]Handler
	forwarders []Forwarder
}

func NewBus(instanceID string) *Bus {
	return &Bus{
		instance: instanceID,
		subs:     make(map[Topic]map[uint64]Handler),
	}
}

func (b *Bus) Instance() string { return b.instance }

// Subscribe registers h for topic and returns the function that removes it.
func (b *Bus) Subscribe(topic Topic, h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	id := b.next
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[uint64]Handler)
	}
	b.subs[topic][id] = h

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs[topic], id)
		})
	}
}

func (b *Bus) AddForwarder(f Forwarder) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.forwarders = append(b.forwarders, f)
}

// Publish delivers e to local subscribers and then to every forwarder.
func (b *Bus) Publish(ctx context.Context, e Event) {
	if e.Origin == "" {
		e.Origin = b.instance
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	b.Deliver(ctx, e)

	b.mu.RLock()
	fwd := append([]Forwarder(nil), b.forwarders...)
	b.mu.RUnlock()
	for _, f := range fwd {
		if err := f.Forward(ctx, e); err != nil {
			logger.FromContext(ctx).Warn("event forward failed", "topic", e.Topic, "error", err)
		}
	}
}

// Deliver runs local subscribers only. Forwarders use it for events
// received from other instances.
func (b *Bus) Deliver(ctx context.Context, e Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[e.Topic]))
	for _, h := range b.subs[e.Topic] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, e)
	}
}
