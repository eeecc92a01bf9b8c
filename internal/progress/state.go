// Package progress implements the gamified progress meter: XP, level and the
// three bounded stats (focus, energy, momentum) driven by task events.
package progress

import (
	"github.com/sandeepkv93/focusd/internal/model"
)

const (
	XPPerLevel = 100
	StatMin    = 0
	StatMax    = 100

	recentToTrack = 5
)

// State is the persisted progress counters.
type State struct {
	XP                     int                `json:"xp"`
	Level                  int                `json:"level"`
	Focus                  int                `json:"focus"`
	Energy                 int                `json:"energy"`
	Momentum               int                `json:"momentum"`
	ConsecutiveCompletions int                `json:"consecutiveCompletions"`
	RecentComplexities     []model.Complexity `json:"recentComplexities"`
	// DrainedForCurrent is the energy already drained while the current
	// task has been current. Reset whenever the current task changes.
	DrainedForCurrent int `json:"drainedForCurrent"`
}

func Default() State {
	return State{
		XP:       0,
		Level:    1,
		Focus:    50,
		Energy:   100,
		Momentum: 10,
	}
}

// Normalize repairs values loaded from storage so the invariants hold.
func (s State) Normalize() State {
	if s.Level < 1 {
		s.Level = 1
	}
	if s.XP < 0 {
		s.XP = 0
	}
	for s.XP >= XPPerLevel {
		s.XP -= XPPerLevel
		s.Level++
	}
	s.Focus = clamp(s.Focus)
	s.Energy = clamp(s.Energy)
	s.Momentum = clamp(s.Momentum)
	if s.ConsecutiveCompletions < 0 {
		s.ConsecutiveCompletions = 0
	}
	if s.DrainedForCurrent < 0 {
		s.DrainedForCurrent = 0
	}
	valid := make([]model.Complexity, 0, len(s.RecentComplexities))
	for _, c := range s.RecentComplexities {
		if c.IsValid() {
			valid = append(valid, c)
		}
	}
	if len(valid) > recentToTrack {
		valid = valid[len(valid)-recentToTrack:]
	}
	s.RecentComplexities = valid
	return s
}

// XPToNextLevel is the XP still needed to reach Level+1.
func (s State) XPToNextLevel() int {
	return XPPerLevel - s.XP
}

func (s State) maxedOut() bool {
	return s.Focus == StatMax && s.Energy == StatMax && s.Momentum == StatMax
}

func clamp(v int) int {
	if v < StatMin {
		return StatMin
	}
	if v > StatMax {
		return StatMax
	}
	return v
}
