package update

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focusd/internal/ai"
	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/session"
)

func (m Model) selectedTask() (model.Task, bool) {
	tasks := m.Snapshot.Tasks
	if m.Cursor < 0 || m.Cursor >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[m.Cursor], true
}

// taskAt resolves a 1-based number from the list shown on screen.
func (m Model) taskAt(n int) (model.Task, error) {
	tasks := m.Snapshot.Tasks
	if n < 1 || n > len(tasks) {
		return model.Task{}, fmt.Errorf("no task number %d", n)
	}
	return tasks[n-1], nil
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()

	if m.Support != nil && key == "esc" {
		m.Support = nil
		return m, nil
	}
	if m.Pending > 0 && key == "esc" {
		m.sess.CancelAssistant()
		m.Status = StatusBar{Text: "assistant request cancelled"}
		return m, nil
	}
	if m.Breakdown != nil {
		switch key {
		case "y":
			return m.acceptBreakdown(), nil
		case "n", "esc":
			m.Breakdown = nil
			m.Status = StatusBar{Text: "breakdown discarded"}
			return m, nil
		}
	}

	switch key {
	case "j", "down":
		m.Cursor = clampCursor(m.Cursor+1, len(m.Snapshot.Tasks))
	case "k", "up":
		m.Cursor = clampCursor(m.Cursor-1, len(m.Snapshot.Tasks))
	case "a":
		m.Mode = ModeAdd
		m.addInput.SetValue("")
		cmd := m.addInput.Focus()
		return m, cmd
	case "e":
		m.Mode = ModeBrainDump
		m.dumpArea.SetValue(m.Snapshot.BrainDump)
		cmd := m.dumpArea.Focus()
		return m, cmd
	case " ", "x":
		return m.withSelected(m.toggleComplete)
	case "d":
		return m.withSelected(m.deleteTask)
	case "s":
		return m.withSelected(m.snoozeTask)
	case "w":
		return m.withSelected(m.wakeTask)
	case "J":
		return m.withSelected(func(t model.Task) (Model, tea.Cmd) { return m.moveTask(t, m.Cursor+1) })
	case "K":
		return m.withSelected(func(t model.Task) (Model, tea.Cmd) { return m.moveTask(t, m.Cursor-1) })
	case "b":
		return m.withSelected(m.startBreakdown)
	case "m":
		return m, motivateCmd(m.ctx, m.sess)
	case "o":
		return m.restartOnboarding(), nil
	case "f", "F", "n":
		return m.handleFocusKey(key)
	}
	return m, nil
}

func (m Model) withSelected(fn func(model.Task) (Model, tea.Cmd)) (Model, tea.Cmd) {
	t, ok := m.selectedTask()
	if !ok {
		m.Status = StatusBar{Text: "no task selected", IsError: true}
		return m, nil
	}
	return fn(t)
}

func (m Model) toggleComplete(t model.Task) (Model, tea.Cmd) {
	updated, err := m.sess.ToggleComplete(m.ctx, t.ID)
	if err != nil {
		return m.fail(err), nil
	}
	m.refresh()
	if updated.Completed {
		p := m.Snapshot.Progress
		m.Status = StatusBar{Text: fmt.Sprintf("done: %s (+%dxp, level %d)", truncate(updated.Text, 30), updated.XPReward, p.Level)}
	} else {
		m.Status = StatusBar{Text: fmt.Sprintf("reopened: %s", truncate(updated.Text, 30))}
	}
	return m, nil
}

func (m Model) deleteTask(t model.Task) (Model, tea.Cmd) {
	if err := m.sess.DeleteTask(m.ctx, t.ID); err != nil {
		return m.fail(err), nil
	}
	m.refresh()
	m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", truncate(t.Text, 30))}
	return m, nil
}

func (m Model) snoozeTask(t model.Task) (Model, tea.Cmd) {
	return m.snoozeFor(t, 0)
}

func (m Model) snoozeFor(t model.Task, minutes int) (Model, tea.Cmd) {
	until, err := m.sess.Snooze(m.ctx, t.ID, minutesToDuration(minutes))
	if err != nil {
		return m.fail(err), nil
	}
	m.refresh()
	m.Status = StatusBar{Text: fmt.Sprintf("snoozed until %s: %s", until.Local().Format("15:04"), truncate(t.Text, 30))}
	return m, nil
}

func (m Model) wakeTask(t model.Task) (Model, tea.Cmd) {
	if err := m.sess.Wake(m.ctx, t.ID); err != nil {
		return m.fail(err), nil
	}
	m.refresh()
	m.Status = StatusBar{Text: fmt.Sprintf("awake: %s", truncate(t.Text, 30))}
	return m, nil
}

// moveTask places t at the 0-based position pos and follows it.
func (m Model) moveTask(t model.Task, pos int) (Model, tea.Cmd) {
	pos = clampCursor(pos, len(m.Snapshot.Tasks))
	if err := m.sess.Move(m.ctx, t.ID, pos); err != nil {
		return m.fail(err), nil
	}
	m.refresh()
	m.Cursor = clampCursor(pos, len(m.Snapshot.Tasks))
	return m, nil
}

func (m Model) startBreakdown(t model.Task) (Model, tea.Cmd) {
	if !m.Snapshot.AIEnabled {
		m.Status = StatusBar{Text: "breakdown needs GROQ_API_KEY", IsError: true}
		return m, nil
	}
	m.Pending++
	m.Status = StatusBar{Text: fmt.Sprintf("breaking down: %s", truncate(t.Text, 30))}
	return m, tea.Batch(breakdownCmd(m.ctx, m.sess, t.ID, t.Text), m.spinner.Tick)
}

func (m Model) acceptBreakdown() Model {
	steps := m.Breakdown.Steps
	m.Breakdown = nil
	ids, err := m.sess.AcceptBreakdown(m.ctx, steps)
	if err != nil {
		return m.fail(err)
	}
	m.refresh()
	m.Status = StatusBar{Text: fmt.Sprintf("added %d steps", len(ids))}
	return m
}

func (m Model) handleAddKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Mode = ModeNormal
		m.addInput.Blur()
		m.addInput.SetValue("")
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.addInput.Value())
		m.Mode = ModeNormal
		m.addInput.Blur()
		m.addInput.SetValue("")
		if text == "" {
			return m, nil
		}
		return m.submitTask(text)
	}
	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	return m, cmd
}

func (m Model) submitTask(text string) (Model, tea.Cmd) {
	m.Pending++
	if m.Snapshot.AIEnabled {
		m.Status = StatusBar{Text: "sizing up your task..."}
		return m, tea.Batch(addTaskCmd(m.ctx, m.sess, text), m.spinner.Tick)
	}
	m.Status = StatusBar{Text: "adding task..."}
	return m, addTaskCmd(m.ctx, m.sess, text)
}

func (m Model) handleBrainDumpKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.Mode = ModeNormal
		m.dumpArea.Blur()
		support := m.sess.SetBrainDump(m.ctx, m.dumpArea.Value())
		m.refresh()
		if support != nil {
			m.Support = support
		}
		m.Status = StatusBar{Text: "brain dump saved"}
		return m, nil
	}
	var cmd tea.Cmd
	m.dumpArea, cmd = m.dumpArea.Update(msg)
	return m, cmd
}

func (m Model) onTaskAdded(msg TaskAddedMsg) Model {
	m.Pending = max(m.Pending-1, 0)
	if errors.Is(msg.Err, ai.ErrSuperseded) {
		return m
	}
	if msg.Err != nil {
		return m.fail(msg.Err)
	}
	m.refresh()
	res := msg.Result
	if res.Support != nil {
		m.Support = res.Support
	}
	switch {
	case res.Analysis != nil:
		m.Analysis = &AnalysisState{TaskText: msg.Text, Result: *res.Analysis}
		m.Status = StatusBar{Text: fmt.Sprintf("added: %s", truncate(msg.Text, 30))}
	case res.AnalysisErr != nil:
		m.Status = StatusBar{Text: "added without analysis (analysis unavailable)", IsError: true}
	default:
		m.Status = StatusBar{Text: fmt.Sprintf("added: %s", truncate(msg.Text, 30))}
	}
	return m
}

func (m Model) onBreakdownReady(msg BreakdownReadyMsg) Model {
	m.Pending = max(m.Pending-1, 0)
	if errors.Is(msg.Err, ai.ErrSuperseded) {
		return m
	}
	if msg.Err != nil {
		return m.fail(msg.Err)
	}
	if len(msg.Steps) == 0 {
		m.Status = StatusBar{Text: "no steps suggested"}
		return m
	}
	m.Breakdown = &BreakdownState{TaskText: msg.TaskText, Steps: msg.Steps}
	m.Status = StatusBar{Text: "review the steps: y to add, n to discard"}
	return m
}

func (m Model) fail(err error) Model {
	m.LastError = err
	text := err.Error()
	if errors.Is(err, session.ErrAnalysisUnavailable) {
		text = "analysis unavailable, try again later"
	}
	m.Status = StatusBar{Text: text, IsError: true}
	return m
}
