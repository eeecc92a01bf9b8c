package progress

import (
	"time"

	"github.com/sandeepkv93/focusd/internal/model"
)

const (
	fastRatio          = 0.7
	uncompleteFocus    = 3
	uncompleteMomentum = 5
)

// Apply returns the state after ev. It never mutates s.
func Apply(s State, ev Event, now time.Time) State {
	s.RecentComplexities = append([]model.Complexity(nil), s.RecentComplexities...)
	switch e := ev.(type) {
	case TaskCompleted:
		return applyCompleted(s, e, now)
	case TaskUncompleted:
		s.ConsecutiveCompletions = 0
		s.Momentum = clamp(s.Momentum - uncompleteMomentum)
		s.Focus = clamp(s.Focus - uncompleteFocus)
		return s
	case EnergyDrained:
		if e.Points <= 0 {
			return s
		}
		s.Energy = clamp(s.Energy - e.Points)
		s.DrainedForCurrent += e.Points
		return s
	case CurrentTaskChanged:
		s.DrainedForCurrent = 0
		return s
	default:
		return s
	}
}

func applyCompleted(s State, e TaskCompleted, now time.Time) State {
	// The prestige reset is decided on the pre-event values and applied last.
	reset := s.maxedOut()

	complexity := e.Complexity
	if !complexity.IsValid() {
		complexity = model.ComplexityLow
	}

	reward := e.XPReward
	if reward <= 0 {
		reward = 1
	}
	s.XP += reward
	for s.XP >= XPPerLevel {
		s.XP -= XPPerLevel
		s.Level++
	}

	s.ConsecutiveCompletions++
	streak := s.ConsecutiveCompletions
	if streak >= 2 {
		s.Focus = clamp(s.Focus + focusStreakGain(streak))
	}

	early, fast := pace(complexity, e.StartTime, now)

	energy := energyGain(complexity)
	if early {
		energy += 2
	}
	if streak >= 3 {
		energy++
	}
	s.Energy = clamp(s.Energy + energy)

	momentum := 0
	switch {
	case fast:
		momentum += 8
	case early:
		momentum += 4
	}
	if streak >= 2 {
		momentum += momentumStreakGain(streak)
	}
	if streak >= 3 {
		momentum += 3
	}
	s.Momentum = clamp(s.Momentum + momentum)

	s.RecentComplexities = append(s.RecentComplexities, complexity)
	if len(s.RecentComplexities) > recentToTrack {
		s.RecentComplexities = s.RecentComplexities[len(s.RecentComplexities)-recentToTrack:]
	}
	if bonus := consistencyBonus(s.RecentComplexities); bonus > 0 {
		s.Focus = clamp(s.Focus + bonus)
	}

	if reset {
		s.Focus, s.Energy, s.Momentum = 1, 1, 1
	}
	return s
}

// pace compares the time spent against the complexity's expected duration.
// An unknown start time is neither early nor fast.
func pace(c model.Complexity, start, now time.Time) (early, fast bool) {
	if start.IsZero() {
		return false, false
	}
	actual := now.Sub(start)
	if actual < 0 {
		actual = 0
	}
	expected := c.ExpectedDuration()
	early = actual < expected
	fast = float64(actual) < float64(expected)*fastRatio
	return early, fast
}

func focusStreakGain(streak int) int {
	return min(3+(streak-2)*2, 8)
}

// momentumStreakGain is min(2 + (streak-2)*1.5, 6), truncated.
func momentumStreakGain(streak int) int {
	return min((4+(streak-2)*3)/2, 6)
}

func energyGain(c model.Complexity) int {
	switch c {
	case model.ComplexityHigh:
		return 5
	case model.ComplexityMedium:
		return 3
	default:
		return 1
	}
}

func consistencyBonus(recent []model.Complexity) int {
	if len(recent) < 3 {
		return 0
	}
	last := recent[len(recent)-3:]
	if last[0] != last[1] || last[1] != last[2] {
		return 0
	}
	if last[0] == model.ComplexityLow {
		return 2
	}
	return 3
}
