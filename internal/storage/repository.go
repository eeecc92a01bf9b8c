package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/progress"
)

// State is everything that survives a restart.
type State struct {
	Tasks     []model.Task
	Mood      model.Mood
	Progress  progress.State
	BrainDump string
}

func DefaultState() State {
	return State{
		Tasks:    []model.Task{},
		Progress: progress.Default(),
	}
}

// Repository maps State onto the fixed KV keys.
type Repository struct {
	kv  KV
	log zerolog.Logger
}

func NewRepository(kv KV, log zerolog.Logger) *Repository {
	return &Repository{kv: kv, log: log.With().Str("component", "storage").Logger()}
}

// Load reads every key. Missing keys fall back to defaults. Unreadable
// payloads are logged, deleted and replaced by defaults.
func (r *Repository) Load(ctx context.Context) State {
	out := DefaultState()

	if raw, ok := r.get(ctx, KeyTasks); ok {
		tasks, err := decodeTasks(raw)
		if err != nil {
			r.discard(ctx, KeyTasks, err)
		} else {
			out.Tasks = tasks
		}
	}

	if raw, ok := r.get(ctx, KeyUserState); ok {
		var mood model.Mood
		if err := json.Unmarshal(raw, &mood); err != nil {
			r.discard(ctx, KeyUserState, err)
		} else if err := validateMood(mood); err != nil {
			r.discard(ctx, KeyUserState, err)
		} else {
			out.Mood = mood
		}
	}

	if raw, ok := r.get(ctx, KeyProgress); ok {
		state := progress.Default()
		if err := json.Unmarshal(raw, &state); err != nil {
			r.discard(ctx, KeyProgress, err)
		} else {
			out.Progress = state.Normalize()
		}
	}

	if raw, ok := r.get(ctx, KeyBrainDump); ok {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			r.discard(ctx, KeyBrainDump, err)
		} else {
			out.BrainDump = text
		}
	}
	return out
}

// Save overwrites every key with s. An unset mood and an empty brain dump
// delete their keys. All keys are attempted; the errors are joined.
func (r *Repository) Save(ctx context.Context, s State) error {
	tasks := s.Tasks
	if tasks == nil {
		tasks = []model.Task{}
	}
	errs := []error{
		r.put(ctx, KeyTasks, tasks),
		r.put(ctx, KeyProgress, s.Progress),
	}
	if s.Mood.Onboarded() {
		errs = append(errs, r.put(ctx, KeyUserState, s.Mood))
	} else {
		errs = append(errs, r.del(ctx, KeyUserState))
	}
	if s.BrainDump != "" {
		errs = append(errs, r.put(ctx, KeyBrainDump, s.BrainDump))
	} else {
		errs = append(errs, r.del(ctx, KeyBrainDump))
	}
	return errors.Join(errs...)
}

func (r *Repository) Close() error {
	return r.kv.Close()
}

func (r *Repository) get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := r.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			r.log.Warn().Err(err).Str("key", key).Msg("read failed, using defaults")
		}
		return nil, false
	}
	return raw, true
}

func (r *Repository) put(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.kv.Put(ctx, key, payload); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (r *Repository) del(ctx context.Context, key string) error {
	if err := r.kv.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (r *Repository) discard(ctx context.Context, key string, cause error) {
	r.log.Warn().Err(cause).Str("key", key).Msg("discarding corrupted payload")
	if err := r.kv.Delete(ctx, key); err != nil {
		r.log.Error().Err(err).Str("key", key).Msg("delete corrupted payload")
	}
}

func decodeTasks(raw []byte) ([]model.Task, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("storage: tasks payload is not an array")
	}
	var tasks []model.Task
	if err := json.Unmarshal(trimmed, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func validateMood(m model.Mood) error {
	if m.TaskFeeling != nil && !m.TaskFeeling.IsValid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidFeeling, *m.TaskFeeling)
	}
	if m.EnergyLevel != nil && !m.EnergyLevel.IsValid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidEnergyLevel, *m.EnergyLevel)
	}
	return nil
}
