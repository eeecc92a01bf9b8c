// Package events carries task notifications from the task list to whoever
// keeps score. Handlers run synchronously, in subscription order.
package events

import (
	"sync"

	"github.com/sandeepkv93/focusd/internal/progress"
)

type Signal string

const (
	TaskCompleted   Signal = "TaskCompleted"
	TaskUncompleted Signal = "TaskUncompleted"
)

// SignalOf maps a progress event to the signal it travels on. Events that
// are not task notifications report false.
func SignalOf(ev progress.Event) (Signal, bool) {
	switch ev.(type) {
	case progress.TaskCompleted:
		return TaskCompleted, true
	case progress.TaskUncompleted:
		return TaskUncompleted, true
	default:
		return "", false
	}
}

type Handler func(progress.Event)

type subscription struct {
	id int
	fn Handler
}

type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[Signal][]subscription
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Signal][]subscription)}
}

// Subscribe registers fn for sig and returns a func that removes it.
func (b *Bus) Subscribe(sig Signal, fn Handler) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[sig] = append(b.subs[sig], subscription{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			list := b.subs[sig]
			for i, s := range list {
				if s.id == id {
					b.subs[sig] = append(list[:i:i], list[i+1:]...)
					return
				}
			}
		})
	}
}

// Publish delivers ev to the handlers of its signal and reports whether ev
// was a task notification.
func (b *Bus) Publish(ev progress.Event) bool {
	sig, ok := SignalOf(ev)
	if !ok {
		return false
	}
	b.mu.RLock()
	handlers := append([]subscription(nil), b.subs[sig]...)
	b.mu.RUnlock()

	for _, s := range handlers {
		s.fn(ev)
	}
	return true
}
