// Package events carries notifications from the engine to whatever renders
// them: toast messages and "collection changed" signals.
package events

import (
	"sync"

	EventBus "github.com/asaskevich/EventBus"
)

// Topics published by the services.
const (
	TopicNotify          = "notify"
	TopicCartUpdated     = "cart-updated"
	TopicWishlistUpdated = "wishlist-updated"
	TopicOrdersUpdated   = "orders-updated"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Notification is a toast-style message.
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Bus is a synchronous publish/subscribe hub. A nil *Bus drops everything.
type Bus struct {
	bus EventBus.Bus
}

func NewBus() *Bus {
	return &Bus{bus: EventBus.New()}
}

// Subscribe registers fn for topic. Notify handlers take a Notification;
// update handlers take no arguments.
func (b *Bus) Subscribe(topic string, fn any) error {
	return b.bus.Subscribe(topic, fn)
}

func (b *Bus) Notify(level Level, msg string) {
	if b == nil {
		return
	}
	b.bus.Publish(TopicNotify, Notification{Level: level, Message: msg})
}

func (b *Bus) Updated(topic string) {
	if b == nil {
		return
	}
	b.bus.Publish(topic)
}

// Recorder buffers notifications until drained.
type Recorder struct {
	mu      sync.Mutex
	pending []Notification
}

// NewRecorder subscribes a Recorder to the notify topic of b.
func NewRecorder(b *Bus) (*Recorder, error) {
	r := &Recorder{}
	if err := b.Subscribe(TopicNotify, r.record); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Recorder) record(n Notification) {
	r.mu.Lock()
	r.pending = append(r.pending, n)
	r.mu.Unlock()
}

// Drain returns and forgets everything recorded so far.
func (r *Recorder) Drain() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.pending
	r.pending = nil
	return out
}
