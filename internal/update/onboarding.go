package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/views"
)

type choice[T any] struct {
	value       T
	label       string
	description string
}

var feelingChoices = []choice[model.TaskFeeling]{
	{model.FeelingOverwhelmed, "Overwhelmed", "Too much on my plate, I need help starting"},
	{model.FeelingStructure, "Need structure", "I know what to do, I need a plan to follow"},
}

var energyChoices = []choice[model.EnergyLevel]{
	{model.EnergyLow, "Low", "Running on empty"},
	{model.EnergyModerate, "Moderate", "Steady enough"},
	{model.EnergyHigh, "High", "Ready to go"},
}

func (m Model) onboardingChoices() int {
	if m.Onboarding.Step == 0 {
		return len(feelingChoices)
	}
	return len(energyChoices)
}

func (m Model) handleOnboardingKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	n := m.onboardingChoices()
	switch key := msg.String(); key {
	case "j", "down":
		m.Onboarding.Cursor = (m.Onboarding.Cursor + 1) % n
	case "k", "up":
		m.Onboarding.Cursor = (m.Onboarding.Cursor + n - 1) % n
	case "1", "2", "3":
		idx := int(key[0] - '1')
		if idx >= n {
			return m, nil
		}
		m.Onboarding.Cursor = idx
		return m.selectOnboardingChoice()
	case "enter", " ":
		return m.selectOnboardingChoice()
	case "esc":
		if m.Onboarding.Step > 0 {
			m.Onboarding.Step--
			m.Onboarding.Cursor = 0
		}
	}
	return m, nil
}

func (m Model) selectOnboardingChoice() (Model, tea.Cmd) {
	if m.Onboarding.Step == 0 {
		c := feelingChoices[m.Onboarding.Cursor]
		if err := m.sess.SetFeeling(m.ctx, c.value); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		m.Onboarding = OnboardingState{Step: 1}
		return m, nil
	}
	c := energyChoices[m.Onboarding.Cursor]
	if err := m.sess.SetEnergyLevel(m.ctx, c.value); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Onboarding = OnboardingState{}
	m.Screen = ScreenDashboard
	m.refresh()
	m.Status = StatusBar{Text: "all set, one small step at a time"}
	return m, motivateCmd(m.ctx, m.sess)
}

// restartOnboarding clears the saved mood and asks again.
func (m Model) restartOnboarding() Model {
	m.sess.ResetOnboarding(m.ctx)
	m.refresh()
	m.Onboarding = OnboardingState{}
	m.Screen = ScreenOnboarding
	return m
}

func (m Model) renderOnboarding() string {
	data := views.OnboardingData{Step: m.Onboarding.Step + 1, Steps: 2, Cursor: m.Onboarding.Cursor}
	if m.Onboarding.Step == 0 {
		data.Question = "How are you feeling about your tasks today?"
		for _, c := range feelingChoices {
			data.Choices = append(data.Choices, views.ChoiceData{Label: c.label, Description: c.description})
		}
	} else {
		data.Question = "How is your energy right now?"
		for _, c := range energyChoices {
			data.Choices = append(data.Choices, views.ChoiceData{Label: c.label, Description: c.description})
		}
	}
	return views.RenderSingle("focusd | welcome", views.RenderOnboarding(data), "keys: j/k move | enter select | esc back | q quit")
}
