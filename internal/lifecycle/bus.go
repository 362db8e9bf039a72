package lifecycle

import (
	"github.com/charmbracelet/log"
)

// Event is a mode transition notice.
type Event interface {
	modeName() string
}

// Unloading is published before the active mode is torn down, including when
// no mode is active yet (Name is then empty).
type Unloading struct {
	Name string
}

// Activated is published after a mode started successfully.
type Activated struct {
	Name string
}

func (e Unloading) modeName() string { return e.Name }
func (e Activated) modeName() string { return e.Name }

type subscriber struct {
	id int
	fn func(Event)
}

// Bus delivers events synchronously to subscribers in subscription order.
// A panicking subscriber is logged and does not stop delivery.
type Bus struct {
	logger *log.Logger
	seq    int
	subs   []subscriber
}

// NewBus creates an empty bus.
func NewBus(logger *log.Logger) *Bus {
	return &Bus{logger: logger}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn func(Event)) (unsubscribe func()) {
	b.seq++
	id := b.seq
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers ev to every subscriber.
func (b *Bus) Publish(ev Event) {
	subs := make([]subscriber, len(b.subs))
	copy(subs, b.subs)
	for _, s := range subs {
		b.deliver(s, ev)
	}
}

func (b *Bus) deliver(s subscriber, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("lifecycle subscriber panicked", "event", ev, "mode", ev.modeName(), "panic", r)
		}
	}()
	s.fn(ev)
}

// Len returns the number of subscribers.
func (b *Bus) Len() int {
	return len(b.subs)
}
