package progress

import (
	"time"

	"github.com/sandeepkv93/focusd/internal/model"
)

// Event is one of TaskCompleted, TaskUncompleted, EnergyDrained or
// CurrentTaskChanged.
type Event interface {
	progressEvent()
}

type TaskCompleted struct {
	TaskID     string
	Complexity model.Complexity
	XPReward   int
	// StartTime is when the task last became current. Zero when unknown.
	StartTime time.Time
}

type TaskUncompleted struct {
	TaskID string
}

// EnergyDrained is emitted by the background drain while a task is current.
type EnergyDrained struct {
	Points int
}

type CurrentTaskChanged struct {
	TaskID string
}

func (TaskCompleted) progressEvent()      {}
func (TaskUncompleted) progressEvent()    {}
func (EnergyDrained) progressEvent()      {}
func (CurrentTaskChanged) progressEvent() {}
