package events

import (
	"testing"

	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/progress"
)

func TestPublishRoutesBySignalInOrder(t *testing.T) {
	bus := NewBus()
	var got []string
	bus.Subscribe(TaskCompleted, func(ev progress.Event) {
		got = append(got, "first:"+ev.(progress.TaskCompleted).TaskID)
	})
	bus.Subscribe(TaskCompleted, func(ev progress.Event) {
		got = append(got, "second:"+ev.(progress.TaskCompleted).TaskID)
	})
	bus.Subscribe(TaskUncompleted, func(ev progress.Event) {
		got = append(got, "undo:"+ev.(progress.TaskUncompleted).TaskID)
	})

	if !bus.Publish(progress.TaskCompleted{TaskID: "a", Complexity: model.ComplexityLow}) {
		t.Fatal("expected completion to be delivered")
	}
	bus.Publish(progress.TaskUncompleted{TaskID: "a"})

	want := []string{"first:a", "second:a", "undo:a"}
	if len(got) != len(want) {
		t.Fatalf("unexpected deliveries: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("delivery %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPublishIgnoresNonTaskEvents(t *testing.T) {
	bus := NewBus()
	called := false
	bus.Subscribe(TaskCompleted, func(progress.Event) { called = true })
	if bus.Publish(progress.EnergyDrained{Points: 1}) {
		t.Fatal("drain is not a task notification")
	}
	if called {
		t.Fatal("handler should not run")
	}
}

func TestUnsubscribe(t *testing.T) {
	bus := NewBus()
	count := 0
	cancel := bus.Subscribe(TaskUncompleted, func(progress.Event) { count++ })
	bus.Publish(progress.TaskUncompleted{})
	cancel()
	cancel()
	bus.Publish(progress.TaskUncompleted{})
	if count != 1 {
		t.Fatalf("expected one delivery, got %d", count)
	}
}

func TestHandlerMaySubscribeDuringPublish(t *testing.T) {
	bus := NewBus()
	bus.Subscribe(TaskCompleted, func(progress.Event) {
		bus.Subscribe(TaskCompleted, func(progress.Event) {})
	})
	bus.Publish(progress.TaskCompleted{})
}
