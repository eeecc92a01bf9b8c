package update

import (
	"time"

	"github.com/sandeepkv93/focusd/internal/config"
	"github.com/sandeepkv93/focusd/internal/focus"
)

// RuntimeConfig is the part of the app config the UI reads.
type RuntimeConfig struct {
	FocusWork  time.Duration
	FocusBreak time.Duration
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		FocusWork:  focus.DefaultWork,
		FocusBreak: focus.DefaultBreak,
	}
}

// RuntimeConfigFrom picks the UI settings out of cfg, keeping defaults for
// anything unset.
func RuntimeConfigFrom(cfg *config.Config) RuntimeConfig {
	out := DefaultRuntimeConfig()
	if cfg == nil {
		return out
	}
	if cfg.FocusWork > 0 {
		out.FocusWork = cfg.FocusWork
	}
	if cfg.FocusBreak > 0 {
		out.FocusBreak = cfg.FocusBreak
	}
	return out
}
