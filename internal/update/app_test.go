package update

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/session"
	"github.com/sandeepkv93/focusd/internal/storage"
)

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	kv, err := storage.NewFileKV(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("open file kv: %v", err)
	}
	repo := storage.NewRepository(kv, zerolog.Nop())
	return session.New(t.Context(), repo, session.DefaultConfig())
}

func onboardedModel(t *testing.T) Model {
	t.Helper()
	sess := newTestSession(t)
	if err := sess.SetFeeling(t.Context(), model.FeelingStructure); err != nil {
		t.Fatalf("set feeling: %v", err)
	}
	if err := sess.SetEnergyLevel(t.Context(), model.EnergyModerate); err != nil {
		t.Fatalf("set energy: %v", err)
	}
	return NewModel(t.Context(), sess, DefaultRuntimeConfig())
}

func press(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", updated)
	}
	return next, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	space = tea.KeyMsg{Type: tea.KeySpace}
)

// addTask drives the add input and feeds the async result back.
func addTask(t *testing.T, m Model, text string) Model {
	t.Helper()
	m, _ = press(t, m, runes("a"))
	if m.Mode != ModeAdd {
		t.Fatalf("expected add mode, got %q", m.Mode)
	}
	m, _ = press(t, m, runes(text))
	m, cmd := press(t, m, enter)
	if cmd == nil {
		t.Fatal("expected add command")
	}
	msg, ok := cmd().(TaskAddedMsg)
	if !ok {
		t.Fatal("expected TaskAddedMsg")
	}
	m, _ = press(t, m, msg)
	return m
}

func TestNewModelStartsWithOnboarding(t *testing.T) {
	m := NewModel(t.Context(), newTestSession(t), DefaultRuntimeConfig())
	if m.Screen != ScreenOnboarding {
		t.Fatalf("expected onboarding screen, got %q", m.Screen)
	}
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}

	m, _ = press(t, m, runes("j"))
	m, _ = press(t, m, enter)
	if m.Onboarding.Step != 1 {
		t.Fatalf("expected energy step, got %+v", m.Onboarding)
	}
	m, cmd := press(t, m, runes("3"))
	if m.Screen != ScreenDashboard {
		t.Fatalf("expected dashboard after onboarding, got %q", m.Screen)
	}
	if cmd == nil {
		t.Fatal("expected a motivation command after onboarding")
	}
	mood := m.Snapshot.Mood
	if mood.Feeling() != model.FeelingStructure || mood.Energy() != model.EnergyHigh {
		t.Fatalf("unexpected mood: %+v", mood)
	}
}

func TestEscCancelsPendingAssistant(t *testing.T) {
	m := onboardedModel(t)
	m, _ = press(t, m, runes("a"))
	m, _ = press(t, m, runes("Buy milk"))
	m, cmd := press(t, m, enter)
	if m.Pending != 1 || cmd == nil {
		t.Fatalf("expected one pending request, got %d", m.Pending)
	}

	m, _ = press(t, m, esc)
	if m.Status.Text != "assistant request cancelled" || m.Mode != ModeNormal {
		t.Fatalf("unexpected state after esc: %q/%q", m.Status.Text, m.Mode)
	}

	msg, ok := cmd().(TaskAddedMsg)
	if !ok {
		t.Fatal("expected TaskAddedMsg")
	}
	m, _ = press(t, m, msg)
	if m.Pending != 0 {
		t.Fatalf("expected nothing pending, got %d", m.Pending)
	}
}

func TestRestartOnboarding(t *testing.T) {
	m := onboardedModel(t)
	m, _ = press(t, m, runes("o"))
	if m.Screen != ScreenOnboarding || m.Snapshot.Mood.Onboarded() {
		t.Fatalf("expected onboarding again, screen=%q mood=%+v", m.Screen, m.Snapshot.Mood)
	}
}

func TestAddAndCompleteTask(t *testing.T) {
	m := onboardedModel(t)
	m = addTask(t, m, "Buy milk")
	if len(m.Snapshot.Tasks) != 1 || m.Snapshot.Tasks[0].Text != "Buy milk" {
		t.Fatalf("expected task added, got %+v", m.Snapshot.Tasks)
	}
	if m.Mode != ModeNormal || m.Pending != 0 {
		t.Fatalf("expected normal mode with nothing pending, got %q/%d", m.Mode, m.Pending)
	}

	m, _ = press(t, m, space)
	if !m.Snapshot.Tasks[0].Completed || m.Snapshot.Progress.XP != 10 {
		t.Fatalf("expected completion scored: %+v", m.Snapshot.Progress)
	}
	if !strings.Contains(m.Status.Text, "done: Buy milk") {
		t.Fatalf("unexpected status: %q", m.Status.Text)
	}
}

func TestAddCancelled(t *testing.T) {
	m := onboardedModel(t)
	m, _ = press(t, m, runes("a"))
	m, _ = press(t, m, runes("never mind"))
	m, cmd := press(t, m, esc)
	if cmd != nil || m.Mode != ModeNormal || len(m.Snapshot.Tasks) != 0 {
		t.Fatalf("expected add cancelled, mode=%q tasks=%d", m.Mode, len(m.Snapshot.Tasks))
	}
}

func TestCursorAndReorder(t *testing.T) {
	m := onboardedModel(t)
	for _, text := range []string{"one", "two", "three"} {
		m = addTask(t, m, text)
	}
	m, _ = press(t, m, runes("j"))
	m, _ = press(t, m, runes("j"))
	m, _ = press(t, m, runes("j"))
	if m.Cursor != 2 {
		t.Fatalf("expected cursor clamped at 2, got %d", m.Cursor)
	}
	m, _ = press(t, m, runes("K"))
	if m.Cursor != 1 || m.Snapshot.Tasks[1].Text != "three" {
		t.Fatalf("expected three moved up, got %+v", m.Snapshot.Tasks)
	}
	m, _ = press(t, m, runes("d"))
	if len(m.Snapshot.Tasks) != 2 || m.Snapshot.Tasks[1].Text != "two" {
		t.Fatalf("expected three deleted, got %+v", m.Snapshot.Tasks)
	}
}

func TestSnoozeAndWakeKeys(t *testing.T) {
	m := onboardedModel(t)
	m = addTask(t, m, "later")
	m, _ = press(t, m, runes("s"))
	if len(m.Snapshot.Snoozed) != 1 || m.Snapshot.Current != nil {
		t.Fatalf("expected task snoozed: %+v", m.Snapshot)
	}
	if !strings.Contains(m.View(), "zz") {
		t.Fatal("expected snoozed marker in view")
	}
	m, _ = press(t, m, runes("w"))
	if len(m.Snapshot.Active) != 1 {
		t.Fatalf("expected task awake: %+v", m.Snapshot)
	}
}

func TestPaletteCommands(t *testing.T) {
	m := onboardedModel(t)
	m = addTask(t, m, "first")
	m = addTask(t, m, "second")

	m, _ = press(t, m, runes("/"))
	if m.Mode != ModePalette {
		t.Fatalf("expected palette mode, got %q", m.Mode)
	}
	m, _ = press(t, m, runes("done 2"))
	m, _ = press(t, m, enter)
	if m.Mode != ModeNormal || m.Status.IsError {
		t.Fatalf("unexpected palette result: mode=%q status=%+v", m.Mode, m.Status)
	}
	if !m.Snapshot.Tasks[1].Completed {
		t.Fatalf("expected second task completed: %+v", m.Snapshot.Tasks)
	}

	m, _ = press(t, m, runes("/"))
	m, _ = press(t, m, runes("done 9"))
	m, _ = press(t, m, enter)
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "no task number 9") {
		t.Fatalf("expected bad index error, got %+v", m.Status)
	}

	m, _ = press(t, m, runes("/"))
	m, _ = press(t, m, runes("dump call the bank"))
	m, _ = press(t, m, enter)
	if m.Snapshot.BrainDump != "call the bank" {
		t.Fatalf("expected brain dump saved, got %q", m.Snapshot.BrainDump)
	}

	m, _ = press(t, m, runes("/"))
	m, _ = press(t, m, runes("mood overwhelmed low"))
	m, _ = press(t, m, enter)
	if m.Snapshot.Mood.Feeling() != model.FeelingOverwhelmed || m.Snapshot.Mood.Energy() != model.EnergyLow {
		t.Fatalf("expected mood updated: %+v", m.Snapshot.Mood)
	}

	m, _ = press(t, m, runes("/"))
	m, _ = press(t, m, runes("launch rockets"))
	m, _ = press(t, m, enter)
	if !m.Status.IsError {
		t.Fatal("expected unknown command error")
	}
}

func TestBreakdownNeedsAssistant(t *testing.T) {
	m := onboardedModel(t)
	m = addTask(t, m, "taxes")
	m, cmd := press(t, m, runes("b"))
	if cmd != nil || !m.Status.IsError {
		t.Fatalf("expected breakdown refused without assistant: %+v", m.Status)
	}
}

func TestBrainDumpEditing(t *testing.T) {
	m := onboardedModel(t)
	m, _ = press(t, m, runes("e"))
	if m.Mode != ModeBrainDump {
		t.Fatalf("expected brain dump mode, got %q", m.Mode)
	}
	m, _ = press(t, m, runes("pick up keys"))
	m, _ = press(t, m, esc)
	if m.Mode != ModeNormal || m.Snapshot.BrainDump != "pick up keys" {
		t.Fatalf("expected brain dump saved, mode=%q dump=%q", m.Mode, m.Snapshot.BrainDump)
	}
	if m.Support != nil {
		t.Fatal("unexpected support banner")
	}

	m, _ = press(t, m, runes("e"))
	m, _ = press(t, m, runes(" and I feel hopeless"))
	m, _ = press(t, m, esc)
	if m.Support == nil {
		t.Fatal("expected support banner for concerning text")
	}
	m, _ = press(t, m, esc)
	if m.Support != nil {
		t.Fatal("expected support banner dismissed")
	}
}

func TestFocusTimerKeys(t *testing.T) {
	m := onboardedModel(t)
	m, cmd := press(t, m, runes("f"))
	if !m.Focus.Running || cmd == nil {
		t.Fatal("expected focus running with a tick scheduled")
	}
	before := m.Focus.Remaining

	m, _ = press(t, m, FocusTickMsg{Gen: m.focusGen - 1})
	if m.Focus.Remaining != before {
		t.Fatal("stale tick must be ignored")
	}
	m, cmd = press(t, m, FocusTickMsg{Gen: m.focusGen})
	if m.Focus.Remaining >= before || cmd == nil {
		t.Fatal("expected countdown to advance and keep ticking")
	}

	m, _ = press(t, m, runes("n"))
	if m.Focus.Phase != "break" || m.Focus.CompletedPomodoros != 1 {
		t.Fatalf("expected break phase after skip: %+v", m.Focus)
	}
}

func TestReviewScreen(t *testing.T) {
	m := onboardedModel(t)
	m = addTask(t, m, "finish slides")
	m, _ = press(t, m, space)

	m, _ = press(t, m, runes("r"))
	if m.Screen != ScreenReview {
		t.Fatalf("expected review screen, got %q", m.Screen)
	}
	view := m.View()
	if !strings.Contains(view, "done 1 of 1") || !strings.Contains(view, "finish slides") {
		t.Fatalf("unexpected review view:\n%s", view)
	}
	m, _ = press(t, m, esc)
	if m.Screen != ScreenDashboard {
		t.Fatalf("expected dashboard, got %q", m.Screen)
	}
}

func TestStatusAndErrorMessages(t *testing.T) {
	m := onboardedModel(t)
	m, _ = press(t, m, SetStatusMsg{Text: "ready"})
	if m.Status.Text != "ready" || m.Status.IsError {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
	m, _ = press(t, m, AppErrorMsg{Err: errBoom})
	if m.LastError != errBoom || !m.Status.IsError {
		t.Fatalf("unexpected error status: %+v", m.Status)
	}
	m, _ = press(t, m, ClearStatusMsg{})
	if m.Status.Text != "" || m.Status.IsError {
		t.Fatalf("expected cleared status, got %+v", m.Status)
	}
	m, _ = press(t, m, MotivationMsg{Text: "keep going"})
	if !strings.Contains(m.View(), "keep going") {
		t.Fatal("expected motivation in view")
	}
}

func TestQuitKey(t *testing.T) {
	m := onboardedModel(t)
	m, cmd := press(t, m, runes("q"))
	if !m.Quitting || cmd == nil {
		t.Fatal("expected quit")
	}
}

func TestHelpToggle(t *testing.T) {
	m := onboardedModel(t)
	m, _ = press(t, m, runes("?"))
	if !m.HelpVisible || !strings.Contains(m.View(), "/breakdown") {
		t.Fatal("expected help with command list")
	}
}

var errBoom = errors.New("boom")
