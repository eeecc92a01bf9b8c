package scheduler

import (
	"errors"
	"testing"
	"time"
)

func TestEngineEmitsInWakeOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(WakeEvent{TaskID: "later", At: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(WakeEvent{TaskID: "sooner", At: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.TaskID != "sooner" || second.TaskID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.TaskID, second.TaskID)
	}
	if engine.Pending() != 0 {
		t.Fatalf("expected empty queue, got %d", engine.Pending())
	}
}

func TestRescheduleReplacesPendingWake(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(WakeEvent{TaskID: "a", At: now.Add(time.Hour)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if err := engine.Schedule(WakeEvent{TaskID: "a", At: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if engine.Pending() != 1 {
		t.Fatalf("expected a single pending wake, got %d", engine.Pending())
	}
	ev := waitEvent(t, engine.C(), time.Second)
	if ev.TaskID != "a" {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestCancelRemovesPendingWake(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	_ = engine.Schedule(WakeEvent{TaskID: "cancelled", At: now.Add(20 * time.Millisecond)})
	_ = engine.Schedule(WakeEvent{TaskID: "kept", At: now.Add(60 * time.Millisecond)})
	if !engine.Cancel("cancelled") {
		t.Fatal("expected cancel to find the wake")
	}
	if engine.Cancel("cancelled") {
		t.Fatal("second cancel should report false")
	}

	ev := waitEvent(t, engine.C(), time.Second)
	if ev.TaskID != "kept" {
		t.Fatalf("expected only the kept wake, got %s", ev.TaskID)
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	at := time.Now().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(WakeEvent{TaskID: string(rune('a' + i)), At: at}); err != nil {
			t.Fatalf("schedule event: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped events > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidates(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(WakeEvent{TaskID: "bad"}); !errors.Is(err, ErrInvalidWakeTime) {
		t.Fatalf("expected ErrInvalidWakeTime, got %v", err)
	}
	if err := engine.Schedule(WakeEvent{At: time.Now()}); !errors.Is(err, ErrMissingTaskID) {
		t.Fatalf("expected ErrMissingTaskID, got %v", err)
	}
}

func TestStopClosesChannelAndRejectsSchedule(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	engine.Stop()
	engine.Stop()

	if _, ok := <-engine.C(); ok {
		t.Fatal("expected closed channel")
	}
	if err := engine.Schedule(WakeEvent{TaskID: "a", At: time.Now()}); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func waitEvent(t *testing.T, ch <-chan WakeEvent, timeout time.Duration) WakeEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for event")
		return WakeEvent{}
	}
}
