package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focusd/internal/views"
)

func (m Model) Init() tea.Cmd {
	return waitForChangeCmd(m.sess.Changes())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tea.WindowSizeMsg:
		m.helpModel.Width = typed.Width
		return m, nil
	case spinner.TickMsg:
		if m.Pending > 0 {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(typed)
			return m, cmd
		}
		return m, nil
	case StateChangedMsg:
		m.refresh()
		return m, waitForChangeCmd(m.sess.Changes())
	case FocusTickMsg:
		return m.onFocusTick(typed)
	case TaskAddedMsg:
		return m.onTaskAdded(typed), nil
	case BreakdownReadyMsg:
		return m.onBreakdownReady(typed), nil
	case MotivationMsg:
		m.Motivation = typed.Text
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		if typed.Err != nil {
			m = m.fail(typed.Err)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}

	switch m.Mode {
	case ModeAdd:
		next, cmd := m.handleAddKey(msg)
		return next, cmd
	case ModeBrainDump:
		next, cmd := m.handleBrainDumpKey(msg)
		return next, cmd
	case ModePalette:
		next, cmd := m.handlePaletteKey(msg)
		return next, cmd
	}

	switch keyStr {
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	}

	switch m.Screen {
	case ScreenOnboarding:
		next, cmd := m.handleOnboardingKey(msg)
		return next, cmd
	case ScreenReview:
		if keyStr == "esc" || keyStr == m.Keys.Review {
			m.Screen = ScreenDashboard
		}
		return m, nil
	}

	switch keyStr {
	case m.Keys.Palette:
		next, cmd := m.openPalette()
		return next, cmd
	case m.Keys.Review:
		m.Screen = ScreenReview
		return m, nil
	}
	next, cmd := m.handleDashboardKey(msg)
	return next, cmd
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	switch m.Screen {
	case ScreenOnboarding:
		return joinNonEmpty(m.renderOnboarding(), m.renderHelpIfVisible())
	case ScreenReview:
		return joinNonEmpty(
			views.RenderSingle("focusd | review", m.renderReview(), "keys: esc back | ? help | q quit"),
			m.renderHelpIfVisible(),
		)
	}

	left := joinNonEmpty(m.renderTaskPanel(), m.renderBrainDumpPanel())
	right := joinNonEmpty(m.renderProgressPanel(), m.renderFocusPanel(), m.renderAssistantPanel())
	if m.Mode == ModePalette {
		right = joinNonEmpty(right, views.RenderCommandPalette(m.commandInput.View()))
	}
	right = joinNonEmpty(right, m.renderHelpIfVisible())

	return views.RenderApp(views.AppData{
		Header:     m.header(),
		LeftPane:   left,
		RightPane:  right,
		Banner:     m.renderSupportBanner(),
		StatusLine: m.Status.Text,
		IsError:    m.Status.IsError,
		Footer:     "keys: a add | space done | s snooze | b breakdown | e dump | f focus | / cmd | r review | ? help | q quit",
	})
}

func (m Model) header() string {
	snap := m.Snapshot
	parts := []string{
		"focusd",
		fmt.Sprintf("%d active", len(snap.Active)),
		fmt.Sprintf("%d snoozed", len(snap.Snoozed)),
		fmt.Sprintf("%d done", len(snap.Completed)),
	}
	if f := snap.Mood.Feeling(); f != "" {
		parts = append(parts, fmt.Sprintf("%s, %s energy", f, snap.Mood.Energy()))
	}
	if !snap.AIEnabled {
		parts = append(parts, "assistant off")
	}
	if snap.SaveErr != nil {
		parts = append(parts, "not saved")
	}
	return strings.Join(parts, " | ")
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n\n")
}
