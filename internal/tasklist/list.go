// Package tasklist owns the ordered task collection: adding, completing,
// reordering and snoozing tasks, and deriving which task is current.
package tasklist

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/progress"
)

var (
	ErrTaskNotFound = errors.New("tasklist: task not found")
	ErrEmptyText    = errors.New("tasklist: task text is required")
)

const DefaultSnooze = 60 * time.Minute

// Publisher receives TaskCompleted, TaskUncompleted and CurrentTaskChanged.
type Publisher interface {
	Publish(ev progress.Event) bool
}

// NewTask describes a task to add. A zero Complexity or XPReward is filled
// in from the word-count heuristic.
type NewTask struct {
	Text       string
	Complexity model.Complexity
	XPReward   int
}

type List struct {
	tasks []model.Task
	pub   Publisher

	currentID string
	// startedAt holds when each task last became current.
	startedAt map[string]time.Time
}

// New restores a list from saved tasks. Tasks without text are dropped and
// unknown complexities are re-derived.
func New(saved []model.Task, pub Publisher, now time.Time) *List {
	l := &List{
		tasks:     make([]model.Task, 0, len(saved)),
		pub:       pub,
		startedAt: make(map[string]time.Time),
	}
	for i, t := range saved {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		if t.ID == "" {
			t.ID = model.NewTaskID(now, i)
		}
		if !t.Complexity.IsValid() {
			t.Complexity = model.AssessComplexity(t.Text)
		}
		if t.XPReward <= 0 {
			t.XPReward = t.Complexity.DefaultXPReward()
		}
		l.tasks = append(l.tasks, t)
	}
	l.track(now)
	return l
}

// Tasks returns a copy of the list in order.
func (l *List) Tasks() []model.Task {
	return append([]model.Task(nil), l.tasks...)
}

func (l *List) Len() int {
	return len(l.tasks)
}

func (l *List) Get(id string) (model.Task, error) {
	i, err := l.index(id)
	if err != nil {
		return model.Task{}, err
	}
	return l.tasks[i], nil
}

// AddTexts adds one task per text using the heuristic complexity and reward.
func (l *List) AddTexts(now time.Time, texts ...string) ([]string, error) {
	items := make([]NewTask, len(texts))
	for i, text := range texts {
		items[i] = NewTask{Text: text}
	}
	return l.AddTasks(now, items...)
}

// AddTasks appends items in order and returns their ids. If any item has
// blank text nothing is added.
func (l *List) AddTasks(now time.Time, items ...NewTask) ([]string, error) {
	for i, item := range items {
		if strings.TrimSpace(item.Text) == "" {
			return nil, fmt.Errorf("%w: item %d", ErrEmptyText, i)
		}
	}
	ids := make([]string, 0, len(items))
	for i, item := range items {
		text := strings.TrimSpace(item.Text)
		complexity := item.Complexity
		if !complexity.IsValid() {
			complexity = model.AssessComplexity(text)
		}
		reward := item.XPReward
		if reward <= 0 {
			reward = complexity.DefaultXPReward()
		}
		task := model.Task{
			ID:         model.NewTaskID(now, i),
			Text:       text,
			Complexity: complexity,
			XPReward:   reward,
			CreatedAt:  now.UTC(),
		}
		l.tasks = append(l.tasks, task)
		ids = append(ids, task.ID)
	}
	l.track(now)
	return ids, nil
}

// ToggleComplete flips the completed flag and publishes the matching
// notification.
func (l *List) ToggleComplete(id string, now time.Time) (model.Task, error) {
	i, err := l.index(id)
	if err != nil {
		return model.Task{}, err
	}
	t := &l.tasks[i]
	if t.Completed {
		t.Completed = false
		t.CompletedAt = nil
		l.publish(progress.TaskUncompleted{TaskID: t.ID})
	} else {
		done := now.UTC()
		t.Completed = true
		t.CompletedAt = &done
		l.publish(progress.TaskCompleted{
			TaskID:     t.ID,
			Complexity: t.Complexity,
			XPReward:   t.XPReward,
			StartTime:  l.startedAt[t.ID],
		})
	}
	out := *t
	l.track(now)
	return out, nil
}

func (l *List) DeleteTask(id string, now time.Time) error {
	i, err := l.index(id)
	if err != nil {
		return err
	}
	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	delete(l.startedAt, id)
	l.track(now)
	return nil
}

// Reorder places the given ids first, in that order. Unknown ids are
// ignored and omitted tasks follow in their existing relative order.
func (l *List) Reorder(ids []string, now time.Time) {
	byID := make(map[string]int, len(l.tasks))
	for i, t := range l.tasks {
		byID[t.ID] = i
	}
	placed := make(map[string]bool, len(ids))
	out := make([]model.Task, 0, len(l.tasks))
	for _, id := range ids {
		i, ok := byID[id]
		if !ok || placed[id] {
			continue
		}
		placed[id] = true
		out = append(out, l.tasks[i])
	}
	for _, t := range l.tasks {
		if !placed[t.ID] {
			out = append(out, t)
		}
	}
	l.tasks = out
	l.track(now)
}

// Move shifts the task with id to position pos (0-based, clamped).
func (l *List) Move(id string, pos int, now time.Time) error {
	i, err := l.index(id)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(l.tasks))
	for j, t := range l.tasks {
		if j != i {
			ids = append(ids, t.ID)
		}
	}
	pos = max(0, min(pos, len(ids)))
	ids = append(ids[:pos], append([]string{id}, ids[pos:]...)...)
	l.Reorder(ids, now)
	return nil
}

// Snooze defers the task until now+d. A non-positive d uses DefaultSnooze.
func (l *List) Snooze(id string, d time.Duration, now time.Time) (time.Time, error) {
	i, err := l.index(id)
	if err != nil {
		return time.Time{}, err
	}
	if d <= 0 {
		d = DefaultSnooze
	}
	until := now.Add(d).UTC()
	l.tasks[i].SnoozedUntil = &until
	l.track(now)
	return until, nil
}

func (l *List) Wake(id string, now time.Time) error {
	i, err := l.index(id)
	if err != nil {
		return err
	}
	l.tasks[i].SnoozedUntil = nil
	l.track(now)
	return nil
}

// WakeExpired clears elapsed snoozes and returns the ids it woke.
func (l *List) WakeExpired(now time.Time) []string {
	var woken []string
	for i := range l.tasks {
		until := l.tasks[i].SnoozedUntil
		if until != nil && !until.After(now) {
			l.tasks[i].SnoozedUntil = nil
			woken = append(woken, l.tasks[i].ID)
		}
	}
	l.track(now)
	return woken
}

// Current is the first task that is neither completed nor snoozed.
func (l *List) Current(now time.Time) (model.Task, bool) {
	for _, t := range l.tasks {
		if t.IsActive(now) {
			return t, true
		}
	}
	return model.Task{}, false
}

// CurrentSince reports the current task id as of the last mutation and when
// it became current. The id is empty when there is none.
func (l *List) CurrentSince() (string, time.Time) {
	if l.currentID == "" {
		return "", time.Time{}
	}
	return l.currentID, l.startedAt[l.currentID]
}

func (l *List) Active(now time.Time) []model.Task {
	return l.filter(func(t model.Task) bool { return t.IsActive(now) })
}

func (l *List) Snoozed(now time.Time) []model.Task {
	return l.filter(func(t model.Task) bool { return !t.Completed && t.IsSnoozed(now) })
}

func (l *List) Completed() []model.Task {
	return l.filter(func(t model.Task) bool { return t.Completed })
}

// NextWake is the earliest pending snooze deadline after now.
func (l *List) NextWake(now time.Time) (time.Time, bool) {
	var next time.Time
	for _, t := range l.tasks {
		if !t.IsSnoozed(now) {
			continue
		}
		if next.IsZero() || t.SnoozedUntil.Before(next) {
			next = *t.SnoozedUntil
		}
	}
	return next, !next.IsZero()
}

func (l *List) filter(keep func(model.Task) bool) []model.Task {
	out := make([]model.Task, 0, len(l.tasks))
	for _, t := range l.tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func (l *List) index(id string) (int, error) {
	for i, t := range l.tasks {
		if t.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrTaskNotFound, id)
}

// track re-derives the current task and records when it changed.
func (l *List) track(now time.Time) {
	id := ""
	if t, ok := l.Current(now); ok {
		id = t.ID
	}
	if id == l.currentID {
		return
	}
	l.currentID = id
	if id != "" {
		l.startedAt[id] = now
	}
	l.publish(progress.CurrentTaskChanged{TaskID: id})
}

func (l *List) publish(ev progress.Event) {
	if l.pub != nil {
		l.pub.Publish(ev)
	}
}
