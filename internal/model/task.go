package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidComplexity = errors.New("model: invalid task complexity")
	ErrInvalidXPReward   = errors.New("model: invalid task xp reward")
)

type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

func (c Complexity) IsValid() bool {
	switch c {
	case ComplexityLow, ComplexityMedium, ComplexityHigh:
		return true
	default:
		return false
	}
}

// ExpectedDuration is how long a task of this complexity should take.
func (c Complexity) ExpectedDuration() time.Duration {
	switch c {
	case ComplexityHigh:
		return 25 * time.Minute
	case ComplexityMedium:
		return 12*time.Minute + 30*time.Second
	default:
		return 3*time.Minute + 30*time.Second
	}
}

// DefaultXPReward is the reward used when the caller supplies none.
func (c Complexity) DefaultXPReward() int {
	switch c {
	case ComplexityHigh:
		return 30
	case ComplexityMedium:
		return 20
	default:
		return 10
	}
}

// AssessComplexity classifies task text by word count.
func AssessComplexity(text string) Complexity {
	words := len(strings.Fields(text))
	switch {
	case words > 10:
		return ComplexityHigh
	case words > 5:
		return ComplexityMedium
	default:
		return ComplexityLow
	}
}

type Task struct {
	ID           string     `json:"id"`
	Text         string     `json:"text"`
	Completed    bool       `json:"completed"`
	Complexity   Complexity `json:"complexity"`
	XPReward     int        `json:"xpReward"`
	SnoozedUntil *time.Time `json:"snoozedUntil"`
	CreatedAt    time.Time  `json:"createdAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

// IsSnoozed reports whether the task is deferred at now.
func (t Task) IsSnoozed(now time.Time) bool {
	return t.SnoozedUntil != nil && t.SnoozedUntil.After(now)
}

// IsActive reports whether the task belongs in the active list at now.
func (t Task) IsActive(now time.Time) bool {
	return !t.Completed && !t.IsSnoozed(now)
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Text) == "" {
		return errors.New("model: task text is required")
	}
	if !t.Complexity.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidComplexity, t.Complexity)
	}
	if t.XPReward < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidXPReward, t.XPReward)
	}
	if t.Completed && t.CompletedAt == nil {
		return errors.New("model: completedAt is required when task is completed")
	}
	if !t.Completed && t.CompletedAt != nil {
		return errors.New("model: completedAt must be nil when task is not completed")
	}
	return nil
}

// NewTaskID returns an id that sorts by batch time and index.
func NewTaskID(batch time.Time, index int) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%d-%d-%s", batch.UnixMilli(), index, suffix)
}
