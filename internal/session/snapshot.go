package session

import (
	"sort"
	"time"

	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/progress"
)

const reviewRecent = 5

// Snapshot is a consistent read of the session for rendering.
type Snapshot struct {
	Now       time.Time
	Tasks     []model.Task
	Active    []model.Task
	Snoozed   []model.Task
	Completed []model.Task
	Current   *model.Task
	// CurrentSince is when Current became current.
	CurrentSince time.Time
	Progress     progress.State
	Mood         model.Mood
	BrainDump    string
	AIEnabled    bool
	SaveErr      error
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	out := Snapshot{
		Now:       now,
		Tasks:     s.list.Tasks(),
		Active:    s.list.Active(now),
		Snoozed:   s.list.Snoozed(now),
		Completed: s.list.Completed(),
		Progress:  s.progress,
		Mood:      s.mood,
		BrainDump: s.brainDump,
		AIEnabled: s.ai != nil,
		SaveErr:   s.saveErr,
	}
	if cur, ok := s.list.Current(now); ok {
		out.Current = &cur
		if id, since := s.list.CurrentSince(); id == cur.ID {
			out.CurrentSince = since
		}
	}
	out.Progress.RecentComplexities = append([]model.Complexity(nil), s.progress.RecentComplexities...)
	return out
}

// Review summarizes what got done.
type Review struct {
	Done     int
	Total    int
	Recent   []model.Task
	Progress progress.State
}

// Review counts completed tasks and lists the latest ones, newest first.
func (s *Session) Review() Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	done := s.list.Completed()
	sort.SliceStable(done, func(i, j int) bool {
		return completedAt(done[i]).After(completedAt(done[j]))
	})
	recent := done
	if len(recent) > reviewRecent {
		recent = recent[:reviewRecent]
	}
	return Review{
		Done:     len(done),
		Total:    s.list.Len(),
		Recent:   recent,
		Progress: s.progress,
	}
}

func completedAt(t model.Task) time.Time {
	if t.CompletedAt == nil {
		return time.Time{}
	}
	return *t.CompletedAt
}
