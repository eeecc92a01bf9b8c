package model

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidFeeling     = errors.New("model: invalid task feeling")
	ErrInvalidEnergyLevel = errors.New("model: invalid energy level")
)

type TaskFeeling string

const (
	FeelingOverwhelmed TaskFeeling = "overwhelmed"
	FeelingStructure   TaskFeeling = "structure"
)

func (f TaskFeeling) IsValid() bool {
	switch f {
	case FeelingOverwhelmed, FeelingStructure:
		return true
	default:
		return false
	}
}

type EnergyLevel string

const (
	EnergyLow      EnergyLevel = "low"
	EnergyModerate EnergyLevel = "moderate"
	EnergyHigh     EnergyLevel = "high"
)

func (e EnergyLevel) IsValid() bool {
	switch e {
	case EnergyLow, EnergyModerate, EnergyHigh:
		return true
	default:
		return false
	}
}

// Mood is the onboarding selection. Nil fields are unset.
type Mood struct {
	TaskFeeling *TaskFeeling `json:"taskFeeling"`
	EnergyLevel *EnergyLevel `json:"energyLevel"`
	LastUpdated time.Time    `json:"lastUpdated"`
}

func (m Mood) Onboarded() bool {
	return m.TaskFeeling != nil && m.EnergyLevel != nil
}

func (m *Mood) SetFeeling(f TaskFeeling, now time.Time) error {
	if !f.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidFeeling, f)
	}
	m.TaskFeeling = &f
	m.touch(now)
	return nil
}

func (m *Mood) SetEnergyLevel(e EnergyLevel, now time.Time) error {
	if !e.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidEnergyLevel, e)
	}
	m.EnergyLevel = &e
	m.touch(now)
	return nil
}

func (m *Mood) Reset() {
	*m = Mood{}
}

func (m *Mood) touch(now time.Time) {
	if m.Onboarded() {
		m.LastUpdated = now.UTC()
	}
}

// Feeling returns the feeling or "" when unset.
func (m Mood) Feeling() TaskFeeling {
	if m.TaskFeeling == nil {
		return ""
	}
	return *m.TaskFeeling
}

// Energy returns the energy level or "" when unset.
func (m Mood) Energy() EnergyLevel {
	if m.EnergyLevel == nil {
		return ""
	}
	return *m.EnergyLevel
}
