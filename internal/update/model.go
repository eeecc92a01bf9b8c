package update

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sandeepkv93/focusd/internal/ai"
	"github.com/sandeepkv93/focusd/internal/focus"
	"github.com/sandeepkv93/focusd/internal/safety"
	"github.com/sandeepkv93/focusd/internal/session"
)

type Screen string

const (
	ScreenOnboarding Screen = "Onboarding"
	ScreenDashboard  Screen = "Dashboard"
	ScreenReview     Screen = "Review"
)

// Mode is what keystrokes go to on the dashboard.
type Mode string

const (
	ModeNormal    Mode = "normal"
	ModeAdd       Mode = "add"
	ModeBrainDump Mode = "braindump"
	ModePalette   Mode = "palette"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Palette string
	Review  string
	Help    string
	Quit    string
}

type OnboardingState struct {
	// Step 0 asks about tasks, step 1 about energy.
	Step   int
	Cursor int
}

// BreakdownState holds steps waiting for the user to accept or discard.
type BreakdownState struct {
	TaskText string
	Steps    []ai.Step
}

type AnalysisState struct {
	TaskText string
	Result   ai.Analysis
}

type Model struct {
	Screen      Screen
	Mode        Mode
	Cursor      int
	Onboarding  OnboardingState
	Focus       focus.Timer
	Analysis    *AnalysisState
	Breakdown   *BreakdownState
	Support     *safety.Support
	Motivation  string
	Pending     int
	Snapshot    session.Snapshot
	Status      StatusBar
	HelpVisible bool
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error

	ctx      context.Context
	sess     *session.Session
	focusGen int

	addInput      textinput.Model
	commandInput  textinput.Model
	dumpArea      textarea.Model
	focusProgress progress.Model
	statBar       progress.Model
	spinner       spinner.Model
	helpModel     help.Model
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// StateChangedMsg reports that background sweeps changed the session.
type StateChangedMsg struct{}

type FocusTickMsg struct {
	Gen int
}

type TaskAddedMsg struct {
	Text   string
	Result session.AddResult
	Err    error
}

type BreakdownReadyMsg struct {
	TaskText string
	Steps    []ai.Step
	Err      error
}

type MotivationMsg struct {
	Text string
}

func NewModel(ctx context.Context, sess *session.Session, cfg RuntimeConfig) Model {
	m := Model{
		Screen: ScreenDashboard,
		Mode:   ModeNormal,
		Focus:  focus.NewTimer(cfg.FocusWork, cfg.FocusBreak),
		Keys: GlobalKeyMap{
			Palette: "/",
			Review:  "r",
			Help:    "?",
			Quit:    "q",
		},
		ctx:  ctx,
		sess: sess,
	}
	m.initBubbleComponents()
	m.refresh()
	if !m.Snapshot.Mood.Onboarded() {
		m.Screen = ScreenOnboarding
	}
	return m
}

func (m *Model) initBubbleComponents() {
	m.addInput = textinput.New()
	m.addInput.Prompt = "add> "
	m.addInput.Placeholder = "what needs doing?"
	m.addInput.CharLimit = 256
	m.addInput.Width = 48

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 40

	m.dumpArea = textarea.New()
	m.dumpArea.SetWidth(42)
	m.dumpArea.SetHeight(6)
	m.dumpArea.ShowLineNumbers = false
	m.dumpArea.Placeholder = "Anything on your mind (markdown)"

	m.focusProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))
	m.statBar = progress.New(progress.WithSolidFill("12"), progress.WithWidth(40), progress.WithoutPercentage())

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot

	m.helpModel = help.New()
}

// refresh re-reads the session and keeps the cursor in range.
func (m *Model) refresh() {
	m.Snapshot = m.sess.Snapshot()
	m.Cursor = clampCursor(m.Cursor, len(m.Snapshot.Tasks))
}
