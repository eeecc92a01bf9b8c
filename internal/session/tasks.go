package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/focusd/internal/ai"
	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/safety"
	"github.com/sandeepkv93/focusd/internal/tasklist"
)

// AddResult describes what AddTaskWithAnalysis did.
type AddResult struct {
	ID       string
	Analysis *ai.Analysis
	// AnalysisErr wraps ErrAnalysisUnavailable when the collaborator failed
	// and the heuristic was used instead.
	AnalysisErr error
	// Support is set when the text looked concerning.
	Support *safety.Support
}

func (s *Session) AddTasks(ctx context.Context, texts ...string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids, err := s.list.AddTexts(s.now(), texts...)
	if err != nil {
		return nil, err
	}
	s.persist(ctx)
	return ids, nil
}

const (
	analysisKey  = "task-input"
	breakdownKey = "breakdown"
)

// AddTaskWithAnalysis asks the collaborator to size the task first. When a
// newer call for the task input supersedes this one, nothing is added and
// ai.ErrSuperseded is returned.
func (s *Session) AddTaskWithAnalysis(ctx context.Context, text string) (AddResult, error) {
	var out AddResult
	if strings.TrimSpace(text) == "" {
		return out, tasklist.ErrEmptyText
	}
	out.Support = s.screen(text)

	item := tasklist.NewTask{Text: text}
	if s.ai != nil {
		mood := s.Mood()
		analysis, err := s.analyses.Do(ctx, analysisKey, func(ctx context.Context) (ai.Analysis, error) {
			return s.ai.Analyze(ctx, text, mood)
		})
		switch {
		case errors.Is(err, ai.ErrSuperseded):
			return out, err
		case err != nil:
			out.AnalysisErr = fmt.Errorf("%w: %v", ErrAnalysisUnavailable, err)
			s.log.Warn().Err(err).Msg("analysis failed, using heuristic")
		default:
			out.Analysis = &analysis
			item.Complexity = analysis.Difficulty
			item.XPReward = analysis.XPReward
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ids, err := s.list.AddTasks(s.now(), item)
	if err != nil {
		return out, err
	}
	out.ID = ids[0]
	s.persist(ctx)
	return out, nil
}

// Breakdown asks the collaborator to split a task into steps. It changes
// nothing; AcceptBreakdown adds the steps.
func (s *Session) Breakdown(ctx context.Context, id string) ([]ai.Step, error) {
	if s.ai == nil {
		return nil, ErrAnalysisUnavailable
	}
	s.mu.Lock()
	task, err := s.list.Get(id)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	steps, err := s.breakdowns.Do(ctx, breakdownKey, func(ctx context.Context) ([]ai.Step, error) {
		return s.ai.Breakdown(ctx, task.Text)
	})
	if err != nil && !errors.Is(err, ai.ErrSuperseded) {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisUnavailable, err)
	}
	return steps, err
}

// CancelAssistant aborts any analysis or breakdown still in flight. The
// aborted calls return ai.ErrSuperseded and change nothing.
func (s *Session) CancelAssistant() {
	s.analyses.Cancel(analysisKey)
	s.breakdowns.Cancel(breakdownKey)
}

// AcceptBreakdown turns each step into a task, in order.
func (s *Session) AcceptBreakdown(ctx context.Context, steps []ai.Step) ([]string, error) {
	texts := make([]string, 0, len(steps))
	for _, step := range steps {
		texts = append(texts, step.Text)
	}
	return s.AddTasks(ctx, texts...)
}

func (s *Session) ToggleComplete(ctx context.Context, id string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, err := s.list.ToggleComplete(id, s.now())
	if err != nil {
		return model.Task{}, err
	}
	if task.Completed {
		s.engine.Cancel(id)
	}
	s.persist(ctx)
	return task, nil
}

func (s *Session) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.list.DeleteTask(id, s.now()); err != nil {
		return err
	}
	s.engine.Cancel(id)
	s.persist(ctx)
	return nil
}

func (s *Session) Reorder(ctx context.Context, ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list.Reorder(ids, s.now())
	s.persist(ctx)
}

// Move places task id at 0-based position pos.
func (s *Session) Move(ctx context.Context, id string, pos int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.list.Move(id, pos, s.now()); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

// Snooze defers a task. A non-positive d uses the configured default.
func (s *Session) Snooze(ctx context.Context, id string, d time.Duration) (time.Time, error) {
	if d <= 0 {
		d = s.cfg.SnoozeDefault
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	until, err := s.list.Snooze(id, d, s.now())
	if err != nil {
		return time.Time{}, err
	}
	s.scheduleWake(id, until)
	s.persist(ctx)
	return until, nil
}

func (s *Session) Wake(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.list.Wake(id, s.now()); err != nil {
		return err
	}
	s.engine.Cancel(id)
	if s.metrics != nil {
		s.metrics.RecordWake("manual", 1)
	}
	s.persist(ctx)
	return nil
}

// screen runs the safety check on user text.
func (s *Session) screen(text string) *safety.Support {
	if !safety.Concerning(text) {
		return nil
	}
	if s.metrics != nil {
		s.metrics.RecordSafetyFlag()
	}
	s.log.Info().Msg("concerning content detected, showing support resources")
	support := safety.SupportResources()
	return &support
}
