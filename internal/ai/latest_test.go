package ai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatest_NewerCallSupersedesOlder(t *testing.T) {
	l := NewLatest[string]()
	started := make(chan struct{})
	firstErr := make(chan error, 1)

	go func() {
		_, err := l.Do(t.Context(), "task-input", func(ctx context.Context) (string, error) {
			close(started)
			<-ctx.Done()
			return "stale", nil
		})
		firstErr <- err
	}()
	<-started

	out, err := l.Do(t.Context(), "task-input", func(ctx context.Context) (string, error) {
		return "fresh", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", out)

	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(time.Second):
		t.Fatal("older call was not cancelled")
	}
}

func TestLatest_IndependentKeys(t *testing.T) {
	l := NewLatest[int]()
	a, err := l.Do(t.Context(), "a", func(context.Context) (int, error) { return 1, nil })
	require.NoError(t, err)
	b, err := l.Do(t.Context(), "b", func(context.Context) (int, error) { return 2, nil })
	require.NoError(t, err)
	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}

func TestLatest_Cancel(t *testing.T) {
	l := NewLatest[int]()
	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_, err := l.Do(t.Context(), "k", func(ctx context.Context) (int, error) {
			close(started)
			<-ctx.Done()
			return 0, ctx.Err()
		})
		done <- err
	}()
	<-started
	l.Cancel("k")
	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(time.Second):
		t.Fatal("call was not cancelled")
	}
}

func TestFallbackQuote(t *testing.T) {
	assert.Equal(t, FallbackQuotes[0], FallbackQuote(0))
	assert.Equal(t, FallbackQuotes[1], FallbackQuote(len(FallbackQuotes)+1))
	assert.Equal(t, FallbackQuotes[2], FallbackQuote(-2))
}
