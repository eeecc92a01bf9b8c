// Package focus is the pomodoro timer shown next to the task list.
package focus

import (
	"fmt"
	"time"
)

type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

const (
	DefaultWork  = 25 * time.Minute
	DefaultBreak = 5 * time.Minute
)

// Timer counts down the current phase. When a phase runs out the timer
// stops and switches to the other phase, ready to start again.
type Timer struct {
	Phase              Phase
	Remaining          time.Duration
	Running            bool
	CompletedPomodoros int

	work time.Duration
	brk  time.Duration
}

func NewTimer(work, brk time.Duration) Timer {
	if work <= 0 {
		work = DefaultWork
	}
	if brk <= 0 {
		brk = DefaultBreak
	}
	return Timer{Phase: PhaseWork, Remaining: work, work: work, brk: brk}
}

// Toggle starts or pauses the countdown.
func (t *Timer) Toggle() {
	if !t.Running && t.Remaining <= 0 {
		t.Remaining = t.total()
	}
	t.Running = !t.Running
}

// Reset stops the timer and refills the current phase.
func (t *Timer) Reset() {
	t.Running = false
	t.Remaining = t.total()
}

// Tick advances a running timer by elapsed and reports whether the phase
// finished.
func (t *Timer) Tick(elapsed time.Duration) bool {
	if !t.Running || elapsed <= 0 {
		return false
	}
	t.Remaining -= elapsed
	if t.Remaining > 0 {
		return false
	}
	t.finish()
	return true
}

// Skip ends the current phase early.
func (t *Timer) Skip() {
	t.finish()
}

func (t *Timer) finish() {
	t.Running = false
	if t.Phase == PhaseWork {
		t.CompletedPomodoros++
		t.Phase = PhaseBreak
	} else {
		t.Phase = PhaseWork
	}
	t.Remaining = t.total()
}

func (t Timer) total() time.Duration {
	if t.Phase == PhaseBreak {
		return t.brk
	}
	return t.work
}

// Progress is the fraction of the current phase already spent.
func (t Timer) Progress() float64 {
	total := t.total()
	if total <= 0 {
		return 0
	}
	return 1 - float64(max(t.Remaining, 0))/float64(total)
}

// Clock renders the remaining time as MM:SS.
func (t Timer) Clock() string {
	secs := int(max(t.Remaining, 0).Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
