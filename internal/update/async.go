package update

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focusd/internal/session"
)

func waitForChangeCmd(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return StateChangedMsg{}
	}
}

func addTaskCmd(ctx context.Context, sess *session.Session, text string) tea.Cmd {
	return func() tea.Msg {
		res, err := sess.AddTaskWithAnalysis(ctx, text)
		return TaskAddedMsg{Text: text, Result: res, Err: err}
	}
}

func breakdownCmd(ctx context.Context, sess *session.Session, id, text string) tea.Cmd {
	return func() tea.Msg {
		steps, err := sess.Breakdown(ctx, id)
		return BreakdownReadyMsg{TaskText: text, Steps: steps, Err: err}
	}
}

func motivateCmd(ctx context.Context, sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		return MotivationMsg{Text: sess.Motivate(ctx)}
	}
}
