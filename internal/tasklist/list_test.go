package tasklist

import (
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/progress"
)

type recorder struct {
	events []progress.Event
}

func (r *recorder) Publish(ev progress.Event) bool {
	r.events = append(r.events, ev)
	return true
}

func (r *recorder) completions() []progress.TaskCompleted {
	var out []progress.TaskCompleted
	for _, ev := range r.events {
		if c, ok := ev.(progress.TaskCompleted); ok {
			out = append(out, c)
		}
	}
	return out
}

var t0 = time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC)

func ids(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func texts(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Text
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAddTasksPreservesOrderWithUniqueIDs(t *testing.T) {
	l := New(nil, nil, t0)
	first, err := l.AddTexts(t0, "a", "b", "c")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	second, err := l.AddTexts(t0, "d", "e")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := texts(l.Tasks()); !equal(got, []string{"a", "b", "c", "d", "e"}) {
		t.Fatalf("unexpected order: %v", got)
	}
	seen := map[string]bool{}
	for _, id := range append(first, second...) {
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
	if !equal(ids(l.Tasks()), append(first, second...)) {
		t.Fatal("returned ids do not match list order")
	}
}

func TestAddTasksHeuristicAndExplicitReward(t *testing.T) {
	l := New(nil, nil, t0)
	_, err := l.AddTasks(t0,
		NewTask{Text: "call mom"},
		NewTask{Text: "sort the pile of papers on the desk"},
		NewTask{Text: "write the quarterly report draft with charts and all the numbers included"},
		NewTask{Text: "pay rent", XPReward: 55},
	)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	tasks := l.Tasks()
	want := []struct {
		c  model.Complexity
		xp int
	}{
		{model.ComplexityLow, 10},
		{model.ComplexityMedium, 20},
		{model.ComplexityHigh, 30},
		{model.ComplexityLow, 55},
	}
	for i, w := range want {
		if tasks[i].Complexity != w.c || tasks[i].XPReward != w.xp {
			t.Fatalf("task %d: got %s/%d, want %s/%d", i, tasks[i].Complexity, tasks[i].XPReward, w.c, w.xp)
		}
	}
}

func TestAddTasksRejectsBlankText(t *testing.T) {
	l := New(nil, nil, t0)
	_, err := l.AddTexts(t0, "ok", "   ")
	if !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	if l.Len() != 0 {
		t.Fatalf("expected nothing added, got %d", l.Len())
	}
}

func TestReorderAppendsOmittedTasks(t *testing.T) {
	l := New(nil, nil, t0)
	added, _ := l.AddTexts(t0, "a", "b", "c")
	l.Reorder([]string{added[2], "missing", added[0], added[2]}, t0)
	if got := texts(l.Tasks()); !equal(got, []string{"c", "a", "b"}) {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestMove(t *testing.T) {
	l := New(nil, nil, t0)
	added, _ := l.AddTexts(t0, "a", "b", "c")
	if err := l.Move(added[0], 10, t0); err != nil {
		t.Fatalf("move: %v", err)
	}
	if got := texts(l.Tasks()); !equal(got, []string{"b", "c", "a"}) {
		t.Fatalf("unexpected order: %v", got)
	}
	if err := l.Move("nope", 0, t0); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestToggleCompletePublishesWithStartTime(t *testing.T) {
	rec := &recorder{}
	l := New(nil, rec, t0)
	added, _ := l.AddTexts(t0, "a", "b")

	doneAt := t0.Add(2 * time.Minute)
	task, err := l.ToggleComplete(added[0], doneAt)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !task.Completed || task.CompletedAt == nil || !task.CompletedAt.Equal(doneAt) {
		t.Fatalf("unexpected completed task: %+v", task)
	}

	c := rec.completions()
	if len(c) != 1 {
		t.Fatalf("expected one completion, got %d", len(c))
	}
	if c[0].TaskID != added[0] || !c[0].StartTime.Equal(t0) || c[0].XPReward != 10 {
		t.Fatalf("unexpected completion payload: %+v", c[0])
	}

	// b became current when a was completed.
	id, since := l.CurrentSince()
	if id != added[1] || !since.Equal(doneAt) {
		t.Fatalf("unexpected current: %s since %s", id, since)
	}

	if _, err := l.ToggleComplete(added[0], doneAt); err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	last := rec.events[len(rec.events)-1]
	if _, ok := last.(progress.CurrentTaskChanged); !ok {
		t.Fatalf("expected current change after uncomplete, got %T", last)
	}
	got, _ := l.Get(added[0])
	if got.Completed || got.CompletedAt != nil {
		t.Fatalf("expected task restored, got %+v", got)
	}
	var undo int
	for _, ev := range rec.events {
		if _, ok := ev.(progress.TaskUncompleted); ok {
			undo++
		}
	}
	if undo != 1 {
		t.Fatalf("expected one uncompletion, got %d", undo)
	}
}

func TestCompletingNeverCurrentTaskHasUnknownStart(t *testing.T) {
	rec := &recorder{}
	l := New(nil, rec, t0)
	added, _ := l.AddTexts(t0, "a", "b")
	if _, err := l.ToggleComplete(added[1], t0.Add(time.Minute)); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if c := rec.completions(); !c[0].StartTime.IsZero() {
		t.Fatalf("expected unknown start, got %s", c[0].StartTime)
	}
}

func TestUnknownIDs(t *testing.T) {
	l := New(nil, nil, t0)
	if _, err := l.ToggleComplete("x", t0); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("toggle: %v", err)
	}
	if err := l.DeleteTask("x", t0); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("delete: %v", err)
	}
	if _, err := l.Snooze("x", 0, t0); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("snooze: %v", err)
	}
	if err := l.Wake("x", t0); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("wake: %v", err)
	}
}

func TestDeleteTask(t *testing.T) {
	l := New(nil, nil, t0)
	added, _ := l.AddTexts(t0, "a", "b")
	if err := l.DeleteTask(added[0], t0); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if cur, ok := l.Current(t0); !ok || cur.ID != added[1] {
		t.Fatalf("expected b current, got %+v", cur)
	}
}

func TestSnoozeExpiresAfterDeadline(t *testing.T) {
	l := New(nil, nil, t0)
	added, _ := l.AddTexts(t0, "a", "b")
	until, err := l.Snooze(added[0], 0, t0)
	if err != nil {
		t.Fatalf("snooze: %v", err)
	}
	if !until.Equal(t0.Add(60 * time.Minute)) {
		t.Fatalf("expected default 60 minute snooze, got %s", until)
	}

	at59 := t0.Add(59 * time.Minute)
	if got := ids(l.Active(at59)); !equal(got, []string{added[1]}) {
		t.Fatalf("expected a excluded at 59m, got %v", got)
	}
	if got := ids(l.Snoozed(at59)); !equal(got, []string{added[0]}) {
		t.Fatalf("expected a snoozed at 59m, got %v", got)
	}
	if woken := l.WakeExpired(at59); len(woken) != 0 {
		t.Fatalf("nothing should wake at 59m: %v", woken)
	}

	at61 := t0.Add(61 * time.Minute)
	if got := ids(l.Active(at61)); !equal(got, added) {
		t.Fatalf("expected a back in active list at 61m, got %v", got)
	}
	woken := l.WakeExpired(at61)
	if !equal(woken, []string{added[0]}) {
		t.Fatalf("unexpected woken ids: %v", woken)
	}
	task, _ := l.Get(added[0])
	if task.SnoozedUntil != nil {
		t.Fatal("expected snoozedUntil cleared by sweep")
	}
	id, since := l.CurrentSince()
	if id != added[0] || !since.Equal(at61) {
		t.Fatalf("expected a current again since the sweep, got %s at %s", id, since)
	}
}

func TestWakeClearsSnooze(t *testing.T) {
	l := New(nil, nil, t0)
	added, _ := l.AddTexts(t0, "a")
	if _, err := l.Snooze(added[0], 15*time.Minute, t0); err != nil {
		t.Fatalf("snooze: %v", err)
	}
	if next, ok := l.NextWake(t0); !ok || !next.Equal(t0.Add(15*time.Minute)) {
		t.Fatalf("unexpected next wake: %s %v", next, ok)
	}
	if _, ok := l.Current(t0); ok {
		t.Fatal("expected no current task while snoozed")
	}
	if err := l.Wake(added[0], t0); err != nil {
		t.Fatalf("wake: %v", err)
	}
	if cur, ok := l.Current(t0); !ok || cur.ID != added[0] {
		t.Fatal("expected task current after wake")
	}
}

func TestNewRepairsSavedTasks(t *testing.T) {
	saved := []model.Task{
		{ID: "1", Text: "keep me", Complexity: "huge"},
		{ID: "2", Text: "  "},
		{Text: "no id", Complexity: model.ComplexityHigh, XPReward: 30},
	}
	l := New(saved, nil, t0)
	tasks := l.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("expected blank task dropped, got %d", len(tasks))
	}
	if tasks[0].Complexity != model.ComplexityLow || tasks[0].XPReward != 10 {
		t.Fatalf("expected re-derived complexity, got %+v", tasks[0])
	}
	if tasks[1].ID == "" {
		t.Fatal("expected generated id")
	}
	if id, _ := l.CurrentSince(); id != "1" {
		t.Fatalf("expected first task current on load, got %q", id)
	}
}
