package ai

import (
	"context"
	"sync"
)

// Latest runs at most one live call per key. Starting a call cancels the
// previous one for the same key, and a superseded call reports
// ErrSuperseded even if it finished.
type Latest[T any] struct {
	mu      sync.Mutex
	seq     uint64
	current map[string]inflight
}

type inflight struct {
	seq    uint64
	cancel context.CancelFunc
}

func NewLatest[T any]() *Latest[T] {
	return &Latest[T]{current: make(map[string]inflight)}
}

func (l *Latest[T]) Do(ctx context.Context, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l.mu.Lock()
	if prev, ok := l.current[key]; ok {
		prev.cancel()
	}
	l.seq++
	mine := l.seq
	l.current[key] = inflight{seq: mine, cancel: cancel}
	l.mu.Unlock()

	out, err := fn(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if cur, ok := l.current[key]; !ok || cur.seq != mine {
		var zero T
		return zero, ErrSuperseded
	}
	delete(l.current, key)
	return out, err
}

// Cancel aborts the live call for key, if any.
func (l *Latest[T]) Cancel(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if cur, ok := l.current[key]; ok {
		cur.cancel()
		delete(l.current, key)
	}
}
