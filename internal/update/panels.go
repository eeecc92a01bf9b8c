package update

import (
	"strings"

	"github.com/sandeepkv93/focusd/internal/ai"
	"github.com/sandeepkv93/focusd/internal/progress"
	"github.com/sandeepkv93/focusd/internal/views"
)

func (m Model) renderTaskPanel() string {
	snap := m.Snapshot
	data := views.TaskPanelData{Cursor: m.Cursor}
	if m.Mode == ModeAdd {
		data.InputView = m.addInput.View()
	}
	if m.Pending > 0 {
		data.Pending = m.spinner.View() + " waiting on the assistant"
	}
	currentID := ""
	if snap.Current != nil {
		currentID = snap.Current.ID
	}
	for i, t := range snap.Tasks {
		row := views.TaskRowData{
			Number:     i + 1,
			Text:       t.Text,
			Complexity: string(t.Complexity),
			XPReward:   t.XPReward,
			Completed:  t.Completed,
			Current:    t.ID == currentID,
		}
		if t.IsSnoozed(snap.Now) {
			row.SnoozedFor = humanDuration(t.SnoozedUntil.Sub(snap.Now))
		}
		data.Rows = append(data.Rows, row)
	}
	return views.RenderTaskPanel(data)
}

func (m Model) renderProgressPanel() string {
	p := m.Snapshot.Progress
	stat := func(name string, v int, label string) views.StatData {
		return views.StatData{Name: name, Value: v, Label: label, Bar: m.statBar.ViewAs(float64(v) / float64(progress.StatMax))}
	}
	return views.RenderProgressPanel(views.ProgressPanelData{
		Level:    p.Level,
		XP:       p.XP,
		XPToNext: p.XPToNextLevel(),
		Streak:   p.ConsecutiveCompletions,
		Stats: []views.StatData{
			stat("focus", p.Focus, progress.FocusLabel(p.Focus)),
			stat("energy", p.Energy, progress.EnergyLabel(p.Energy)),
			stat("momentum", p.Momentum, progress.MomentumLabel(p.Momentum)),
		},
	})
}

func (m Model) renderFocusPanel() string {
	data := views.FocusPanelData{
		Phase:              string(m.Focus.Phase),
		Clock:              m.Focus.Clock(),
		ProgressView:       m.focusProgress.ViewAs(m.Focus.Progress()),
		Running:            m.Focus.Running,
		CompletedPomodoros: m.Focus.CompletedPomodoros,
	}
	if cur := m.Snapshot.Current; cur != nil {
		data.CurrentTask = truncate(cur.Text, 32)
		if !m.Snapshot.CurrentSince.IsZero() {
			data.CurrentFor = humanDuration(m.Snapshot.Now.Sub(m.Snapshot.CurrentSince))
		}
	}
	return views.RenderFocusPanel(data)
}

func (m Model) renderBrainDumpPanel() string {
	return views.RenderBrainDumpPanel(views.BrainDumpPanelData{
		Editing:    m.Mode == ModeBrainDump,
		EditorView: m.dumpArea.View(),
		Markdown:   m.Snapshot.BrainDump,
	})
}

func (m Model) renderAssistantPanel() string {
	var parts []string
	if m.Breakdown != nil {
		data := views.BreakdownData{Task: truncate(m.Breakdown.TaskText, 40)}
		for _, s := range m.Breakdown.Steps {
			data.Steps = append(data.Steps, views.StepData{Text: s.Text, Break: s.Kind == ai.StepBreak})
		}
		parts = append(parts, views.RenderBreakdown(data))
	}
	if a := m.Analysis; a != nil {
		var tips strings.Builder
		for _, tip := range a.Result.Tips {
			tips.WriteString("- " + tip + "\n")
		}
		parts = append(parts, views.RenderAnalysis(views.AnalysisData{
			Task:         truncate(a.TaskText, 40),
			Difficulty:   string(a.Result.Difficulty),
			TimeEstimate: a.Result.TimeEstimate,
			XPReward:     a.Result.XPReward,
			TipsMarkdown: tips.String(),
		}))
	}
	if m.Motivation != "" {
		parts = append(parts, "\""+m.Motivation+"\"")
	}
	return strings.Join(parts, "\n\n")
}

func (m Model) renderSupportBanner() string {
	if m.Support == nil {
		return ""
	}
	data := views.SupportData{Message: m.Support.Message}
	for _, r := range m.Support.Resources {
		contact := r.Number
		if contact == "" {
			contact = r.Website
		}
		data.Resources = append(data.Resources, views.ResourceData{Name: r.Name, Contact: contact, Available: r.Available})
	}
	return views.RenderSupport(data)
}

func (m Model) renderReview() string {
	r := m.sess.Review()
	data := views.ReviewData{Done: r.Done, Total: r.Total, Level: r.Progress.Level, XP: r.Progress.XP}
	for _, t := range r.Recent {
		data.Recent = append(data.Recent, t.Text)
	}
	return views.RenderReview(data)
}
