package update

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focusd/internal/commands"
	"github.com/sandeepkv93/focusd/internal/model"
)

func (m Model) openPalette() (Model, tea.Cmd) {
	m.Mode = ModePalette
	m.commandInput.SetValue("")
	m.Status = StatusBar{Text: "command palette active"}
	cmd := m.commandInput.Focus()
	return m, cmd
}

func (m Model) closePalette() Model {
	m.Mode = ModeNormal
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		raw := m.commandInput.Value()
		m = m.closePalette()
		return m.executePaletteCommand(raw)
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	return m, cmd
}

func (m Model) executePaletteCommand(raw string) (Model, tea.Cmd) {
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	// Handlers update next in place; follow-up work goes into teaCmd.
	next := m
	var teaCmd tea.Cmd
	resolve := func(n int) (model.Task, error) {
		t, err := next.taskAt(n)
		if err != nil {
			return t, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
		}
		return t, nil
	}
	apply := func(updated Model, c tea.Cmd) (commands.Result, error) {
		next, teaCmd = updated, c
		if updated.Status.IsError {
			return commands.Result{}, errors.New(updated.Status.Text)
		}
		return commands.Result{Message: updated.Status.Text}, nil
	}
	onTask := func(n int, fn func(model.Task) (Model, tea.Cmd)) (commands.Result, error) {
		t, err := resolve(n)
		if err != nil {
			return commands.Result{}, err
		}
		return apply(fn(t))
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.TextArgs) (commands.Result, error) {
			return apply(next.submitTask(a.Text))
		},
		Done: func(a commands.TargetArgs) (commands.Result, error) {
			return onTask(a.Index, next.toggleComplete)
		},
		Delete: func(a commands.TargetArgs) (commands.Result, error) {
			return onTask(a.Index, next.deleteTask)
		},
		Snooze: func(a commands.SnoozeArgs) (commands.Result, error) {
			return onTask(a.Index, func(t model.Task) (Model, tea.Cmd) { return next.snoozeFor(t, a.Minutes) })
		},
		Wake: func(a commands.TargetArgs) (commands.Result, error) {
			return onTask(a.Index, next.wakeTask)
		},
		Move: func(a commands.MoveArgs) (commands.Result, error) {
			return onTask(a.Index, func(t model.Task) (Model, tea.Cmd) { return next.moveTask(t, a.Position-1) })
		},
		Mood: func(a commands.MoodArgs) (commands.Result, error) {
			if err := next.sess.SetFeeling(next.ctx, a.Feeling); err != nil {
				return commands.Result{}, err
			}
			if err := next.sess.SetEnergyLevel(next.ctx, a.Energy); err != nil {
				return commands.Result{}, err
			}
			next.refresh()
			return commands.Result{Message: fmt.Sprintf("mood set: %s, %s energy", a.Feeling, a.Energy)}, nil
		},
		Dump: func(a commands.TextArgs) (commands.Result, error) {
			if support := next.sess.SetBrainDump(next.ctx, a.Text); support != nil {
				next.Support = support
			}
			next.refresh()
			if a.Text == "" {
				return commands.Result{Message: "brain dump cleared"}, nil
			}
			return commands.Result{Message: "brain dump saved"}, nil
		},
		Breakdown: func(a commands.TargetArgs) (commands.Result, error) {
			return onTask(a.Index, next.startBreakdown)
		},
	})
	if err != nil {
		next.Status = StatusBar{Text: err.Error(), IsError: true}
		return next, nil
	}
	next.Status = StatusBar{Text: res.Message}
	return next, teaCmd
}
