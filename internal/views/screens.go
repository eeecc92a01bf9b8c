package views

import (
	"fmt"
	"strings"
)

type ChoiceData struct {
	Label       string
	Description string
}

type OnboardingData struct {
	Question string
	Step     int
	Steps    int
	Choices  []ChoiceData
	Cursor   int
}

type TaskRowData struct {
	Number     int
	Text       string
	Complexity string
	XPReward   int
	Completed  bool
	Current    bool
	// SnoozedFor is empty unless the task is snoozed.
	SnoozedFor string
}

type TaskPanelData struct {
	Rows      []TaskRowData
	Cursor    int
	InputView string
	Pending   string
}

type StatData struct {
	Name  string
	Value int
	Label string
	Bar   string
}

type ProgressPanelData struct {
	Level    int
	XP       int
	XPToNext int
	Streak   int
	Stats    []StatData
}

type FocusPanelData struct {
	Phase              string
	Clock              string
	ProgressView       string
	Running            bool
	CompletedPomodoros int
	CurrentTask        string
	CurrentFor         string
}

type BrainDumpPanelData struct {
	Editing    bool
	EditorView string
	Markdown   string
}

type AnalysisData struct {
	Task         string
	Difficulty   string
	TimeEstimate string
	XPReward     int
	TipsMarkdown string
}

type StepData struct {
	Text  string
	Break bool
}

type BreakdownData struct {
	Task  string
	Steps []StepData
}

type ResourceData struct {
	Name      string
	Contact   string
	Available string
}

type SupportData struct {
	Message   string
	Resources []ResourceData
}

type ReviewData struct {
	Done   int
	Total  int
	Level  int
	XP     int
	Recent []string
}

type HelpPanelData struct {
	Screen   string
	Bindings []string
	HelpView string
}

func RenderOnboarding(data OnboardingData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("step %d of %d\n\n", data.Step, data.Steps))
	b.WriteString(data.Question + "\n\n")
	for i, c := range data.Choices {
		line := fmt.Sprintf("  %d. %s", i+1, c.Label)
		if i == data.Cursor {
			line = cursorStyle.Render(fmt.Sprintf("> %d. %s", i+1, c.Label))
		}
		b.WriteString(line + "\n")
		if c.Description != "" {
			b.WriteString(mutedStyle.Render("     "+c.Description) + "\n")
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderTaskPanel(data TaskPanelData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	if data.InputView != "" {
		b.WriteString(data.InputView + "\n")
	}
	if data.Pending != "" {
		b.WriteString(mutedStyle.Render(data.Pending) + "\n")
	}
	if len(data.Rows) == 0 {
		b.WriteString(mutedStyle.Render("(nothing yet, press a to add a task)"))
		return strings.TrimSpace(b.String())
	}
	for i, row := range data.Rows {
		cursor := " "
		if i == data.Cursor {
			cursor = cursorStyle.Render(">")
		}
		box := "[ ]"
		if row.Completed {
			box = "[x]"
		}
		text := row.Text
		if row.Current {
			text = "* " + text
		}
		line := fmt.Sprintf("%s %2d %s %s %s +%dxp", cursor, row.Number, box, text, complexityBadge(row.Complexity), row.XPReward)
		switch {
		case row.Completed:
			line = doneStyle.Render(line)
		case row.SnoozedFor != "":
			line = mutedStyle.Render(line + " zz " + row.SnoozedFor)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderProgressPanel(data ProgressPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("level %d | %d xp | %d to next | streak %d\n", data.Level, data.XP, data.XPToNext, data.Streak))
	for _, s := range data.Stats {
		b.WriteString(fmt.Sprintf("%-8s %3d %-11s\n%s\n", s.Name, s.Value, s.Label, s.Bar))
	}
	return strings.TrimSpace(b.String())
}

func RenderFocusPanel(data FocusPanelData) string {
	var b strings.Builder
	state := "paused"
	if data.Running {
		state = "running"
	}
	b.WriteString(fmt.Sprintf("focus: %s %s (%s)\n", strings.ToUpper(data.Phase), data.Clock, state))
	b.WriteString(data.ProgressView + "\n")
	b.WriteString(fmt.Sprintf("pomodoros: %d\n", data.CompletedPomodoros))
	if data.CurrentTask != "" {
		b.WriteString(fmt.Sprintf("on: %s", data.CurrentTask))
		if data.CurrentFor != "" {
			b.WriteString(fmt.Sprintf(" for %s", data.CurrentFor))
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderBrainDumpPanel(data BrainDumpPanelData) string {
	if data.Editing {
		return "brain dump (esc to save):\n" + data.EditorView
	}
	if strings.TrimSpace(data.Markdown) == "" {
		return "brain dump:\n" + mutedStyle.Render("(empty, press e to jot things down)")
	}
	return "brain dump:\n" + RenderMarkdown(data.Markdown)
}

func RenderAnalysis(data AnalysisData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("analysis: %s\n", data.Task))
	b.WriteString(fmt.Sprintf("difficulty %s | %s | +%dxp\n", data.Difficulty, data.TimeEstimate, data.XPReward))
	if tips := RenderMarkdown(data.TipsMarkdown); tips != "" {
		b.WriteString(tips)
	}
	return strings.TrimSpace(b.String())
}

func RenderBreakdown(data BreakdownData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("breakdown: %s\n", data.Task))
	for i, s := range data.Steps {
		kind := "work"
		if s.Break {
			kind = "break"
		}
		b.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, kind, s.Text))
	}
	b.WriteString("[y] add as tasks  [n] discard")
	return b.String()
}

func RenderSupport(data SupportData) string {
	var b strings.Builder
	b.WriteString(data.Message + "\n")
	for _, r := range data.Resources {
		b.WriteString(fmt.Sprintf("- %s: %s (%s)\n", r.Name, r.Contact, r.Available))
	}
	b.WriteString("[esc] dismiss")
	return b.String()
}

func RenderReview(data ReviewData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("done %d of %d | level %d | %d xp\n\n", data.Done, data.Total, data.Level, data.XP))
	if len(data.Recent) == 0 {
		b.WriteString(mutedStyle.Render("nothing finished yet, and that's ok"))
		return b.String()
	}
	b.WriteString("recently finished:\n")
	for _, r := range data.Recent {
		b.WriteString("- " + r + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(inputView string) string {
	return "command:\n" + inputView
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help (%s):\n%s\n%s",
		strings.ToLower(data.Screen),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func complexityBadge(c string) string {
	switch c {
	case "high":
		return "[H]"
	case "medium":
		return "[M]"
	default:
		return "[L]"
	}
}
