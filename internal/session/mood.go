package session

import (
	"context"

	"github.com/sandeepkv93/focusd/internal/ai"
	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/safety"
)

func (s *Session) Mood() model.Mood {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mood
}

func (s *Session) SetFeeling(ctx context.Context, f model.TaskFeeling) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mood.SetFeeling(f, s.now()); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

func (s *Session) SetEnergyLevel(ctx context.Context, e model.EnergyLevel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mood.SetEnergyLevel(e, s.now()); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

// ResetOnboarding clears the mood so onboarding runs again.
func (s *Session) ResetOnboarding(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mood.Reset()
	s.persist(ctx)
}

// SetBrainDump replaces the brain dump text. The returned support is
// non-nil when the text looked concerning.
func (s *Session) SetBrainDump(ctx context.Context, text string) *safety.Support {
	support := s.screen(text)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brainDump = text
	s.persist(ctx)
	return support
}

func (s *Session) ClearBrainDump(ctx context.Context) {
	s.SetBrainDump(ctx, "")
}

// Motivate returns a line of encouragement, falling back to a stock quote
// when the collaborator is missing or fails.
func (s *Session) Motivate(ctx context.Context) string {
	mood := s.Mood()
	if s.ai != nil {
		msg, err := s.ai.Motivate(ctx, mood)
		if err == nil && msg != "" {
			return msg
		}
		s.log.Debug().Err(err).Msg("motivation unavailable, using stock quote")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quoteIdx++
	return ai.FallbackQuote(s.quoteIdx - 1)
}
