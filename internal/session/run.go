package session

import (
	"context"
	"time"

	"github.com/sandeepkv93/focusd/internal/progress"
)

// Run drives the snooze sweep, the energy drain and precise snooze wakes
// until ctx is cancelled. It may only be called once.
func (s *Session) Run(ctx context.Context) error {
	started := false
	s.runOnce.Do(func() { started = true })
	if !started {
		return nil
	}

	s.engine.Start()
	defer s.engine.Stop()

	wake := time.NewTicker(s.cfg.WakeInterval)
	defer wake.Stop()
	drain := time.NewTicker(s.cfg.DrainInterval)
	defer drain.Stop()

	s.log.Info().
		Dur("wake_interval", s.cfg.WakeInterval).
		Dur("drain_interval", s.cfg.DrainInterval).
		Msg("background sweeps started")

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("background sweeps stopped")
			return nil
		case <-wake.C:
			s.SweepWake(ctx, "sweep")
		case ev, ok := <-s.engine.C():
			if !ok {
				return nil
			}
			s.log.Debug().Str("task", ev.TaskID).Msg("snooze deadline reached")
			s.SweepWake(ctx, "timer")
		case <-drain.C:
			s.DrainTick(ctx)
		}
	}
}

// SweepWake clears every elapsed snooze and returns the woken ids.
func (s *Session) SweepWake(ctx context.Context, source string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	woken := s.list.WakeExpired(s.now())
	if len(woken) == 0 {
		return nil
	}
	for _, id := range woken {
		s.engine.Cancel(id)
	}
	if s.metrics != nil {
		s.metrics.RecordWake(source, len(woken))
	}
	s.log.Debug().Strs("tasks", woken).Str("source", source).Msg("snoozed tasks woken")
	s.persist(ctx)
	s.notify()
	return woken
}

// DrainTick takes one energy point per whole minute the current task has
// been current, minus what was already taken for it. It returns the points
// drained by this call.
func (s *Session) DrainTick(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, since := s.list.CurrentSince()
	if id == "" {
		return 0
	}
	minutes := int(s.now().Sub(since) / time.Minute)
	due := minutes - s.progress.DrainedForCurrent
	if due <= 0 {
		return 0
	}
	s.apply(progress.EnergyDrained{Points: due})
	s.persist(ctx)
	s.notify()
	return due
}
