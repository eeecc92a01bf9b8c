package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focusd/internal/focus"
)

func (m Model) handleFocusKey(key string) (Model, tea.Cmd) {
	switch key {
	case "f":
		m.Focus.Toggle()
		if m.Focus.Running {
			m.focusGen++
			m.Status = StatusBar{Text: "focus running"}
			return m, focusTickCmd(m.focusGen)
		}
		m.Status = StatusBar{Text: "focus paused"}
	case "F":
		m.Focus.Reset()
		m.Status = StatusBar{Text: "focus reset"}
	case "n":
		m.Focus.Skip()
		m.Status = StatusBar{Text: phaseReadyText(m.Focus.Phase)}
	}
	return m, nil
}

// onFocusTick ignores ticks from a run that was paused or restarted.
func (m Model) onFocusTick(msg FocusTickMsg) (tea.Model, tea.Cmd) {
	if !m.Focus.Running || msg.Gen != m.focusGen {
		return m, nil
	}
	if m.Focus.Tick(time.Second) {
		m.Status = StatusBar{Text: phaseReadyText(m.Focus.Phase)}
		return m, nil
	}
	return m, focusTickCmd(m.focusGen)
}

func phaseReadyText(next focus.Phase) string {
	if next == focus.PhaseBreak {
		return "work session complete; press f to start your break"
	}
	return "break complete; press f for the next focus block"
}

func focusTickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return FocusTickMsg{Gen: gen} })
}
