// Package session is the application shell: it owns the task list, the
// progress meter, the mood selection and the brain dump, saves after every
// transition and runs the background wake and drain sweeps.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sandeepkv93/focusd/internal/ai"
	"github.com/sandeepkv93/focusd/internal/events"
	"github.com/sandeepkv93/focusd/internal/metrics"
	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/progress"
	"github.com/sandeepkv93/focusd/internal/scheduler"
	"github.com/sandeepkv93/focusd/internal/storage"
	"github.com/sandeepkv93/focusd/internal/tasklist"
)

var ErrAnalysisUnavailable = errors.New("session: analysis unavailable")

// Repository loads and saves the whole persisted state.
type Repository interface {
	Load(ctx context.Context) storage.State
	Save(ctx context.Context, s storage.State) error
}

// Collaborator is the AI side. Any method may fail; the session falls back
// to local behavior.
type Collaborator interface {
	Analyze(ctx context.Context, text string, mood model.Mood) (ai.Analysis, error)
	Breakdown(ctx context.Context, text string) ([]ai.Step, error)
	Motivate(ctx context.Context, mood model.Mood) (string, error)
}

type Config struct {
	WakeInterval    time.Duration
	DrainInterval   time.Duration
	SnoozeDefault   time.Duration
	SchedulerBuffer int
}

func DefaultConfig() Config {
	return Config{
		WakeInterval:    time.Minute,
		DrainInterval:   10 * time.Second,
		SnoozeDefault:   tasklist.DefaultSnooze,
		SchedulerBuffer: 64,
	}
}

type Option func(*Session)

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithCollaborator(c Collaborator) Option {
	return func(s *Session) { s.ai = c }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.log = l }
}

type Session struct {
	// mu guards everything below. Bus handlers run while it is held.
	mu        sync.Mutex
	list      *tasklist.List
	progress  progress.State
	mood      model.Mood
	brainDump string
	saveErr   error
	quoteIdx  int

	cfg     Config
	repo    Repository
	bus     *events.Bus
	engine  *scheduler.Engine
	ai      Collaborator
	metrics *metrics.Metrics
	log     zerolog.Logger
	now     func() time.Time

	analyses   *ai.Latest[ai.Analysis]
	breakdowns *ai.Latest[[]ai.Step]

	changes chan struct{}
	runOnce sync.Once
}

// New loads persisted state and wires the task list to the scorer.
func New(ctx context.Context, repo Repository, cfg Config, opts ...Option) *Session {
	def := DefaultConfig()
	if cfg.WakeInterval <= 0 {
		cfg.WakeInterval = def.WakeInterval
	}
	if cfg.DrainInterval <= 0 {
		cfg.DrainInterval = def.DrainInterval
	}
	if cfg.SnoozeDefault <= 0 {
		cfg.SnoozeDefault = def.SnoozeDefault
	}
	if cfg.SchedulerBuffer <= 0 {
		cfg.SchedulerBuffer = def.SchedulerBuffer
	}

	s := &Session{
		cfg:        cfg,
		repo:       repo,
		bus:        events.NewBus(),
		engine:     scheduler.NewEngine(cfg.SchedulerBuffer),
		log:        zerolog.Nop(),
		now:        time.Now,
		analyses:   ai.NewLatest[ai.Analysis](),
		breakdowns: ai.NewLatest[[]ai.Step](),
		changes:    make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With().Str("component", "session").Logger()

	state := repo.Load(ctx)
	s.progress = state.Progress
	s.mood = state.Mood
	s.brainDump = state.BrainDump

	s.bus.Subscribe(events.TaskCompleted, s.onTaskEvent)
	s.bus.Subscribe(events.TaskUncompleted, s.onTaskEvent)

	now := s.now()
	s.list = tasklist.New(state.Tasks, router{s}, now)
	for _, t := range s.list.Snoozed(now) {
		s.scheduleWake(t.ID, *t.SnoozedUntil)
	}
	s.updateGauges()
	s.log.Info().Int("tasks", s.list.Len()).Int("level", s.progress.Level).Msg("session loaded")
	return s
}

// router sends task notifications over the bus and applies the rest of the
// list's events straight to the progress state.
type router struct{ s *Session }

func (r router) Publish(ev progress.Event) bool {
	if r.s.bus.Publish(ev) {
		return true
	}
	r.s.apply(ev)
	return true
}

func (s *Session) onTaskEvent(ev progress.Event) {
	switch e := ev.(type) {
	case progress.TaskCompleted:
		if s.metrics != nil {
			s.metrics.RecordCompletion(string(e.Complexity))
		}
		s.log.Debug().Str("task", e.TaskID).Str("complexity", string(e.Complexity)).Msg("task completed")
	case progress.TaskUncompleted:
		if s.metrics != nil {
			s.metrics.RecordUncompletion()
		}
		s.log.Debug().Str("task", e.TaskID).Msg("task uncompleted")
	}
	s.apply(ev)
}

// apply feeds ev to the reducer. Caller holds mu.
func (s *Session) apply(ev progress.Event) {
	s.progress = progress.Apply(s.progress, ev, s.now())
	s.updateGauges()
}

func (s *Session) updateGauges() {
	if s.metrics != nil {
		p := s.progress
		s.metrics.SetProgress(p.Level, p.Focus, p.Energy, p.Momentum)
	}
}

// Changes signals after background work changed the state.
func (s *Session) Changes() <-chan struct{} {
	return s.changes
}

func (s *Session) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

// persist saves the full state. Failures are logged and remembered; the
// in-memory state stays authoritative. Caller holds mu.
func (s *Session) persist(ctx context.Context) {
	err := s.repo.Save(ctx, storage.State{
		Tasks:     s.list.Tasks(),
		Mood:      s.mood,
		Progress:  s.progress,
		BrainDump: s.brainDump,
	})
	s.saveErr = err
	if err != nil {
		s.log.Error().Err(err).Msg("save state failed")
		if s.metrics != nil {
			s.metrics.RecordPersistError()
		}
	}
}

func (s *Session) scheduleWake(taskID string, at time.Time) {
	if err := s.engine.Schedule(scheduler.WakeEvent{TaskID: taskID, At: at}); err != nil {
		s.log.Debug().Err(err).Str("task", taskID).Msg("precise wake not scheduled")
	}
}
