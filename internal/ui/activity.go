package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// activity is a spinner that only ticks while its owner is busy.
type activity struct {
	spinner spinner.Model
	running bool
}

func newActivity() activity {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = Styles.Status
	return activity{spinner: s}
}

// Start begins ticking unless a tick is already in flight.
func (a *activity) Start() tea.Cmd {
	if a.running {
		return nil
	}
	a.running = true
	return a.spinner.Tick
}

// Update advances the spinner while busy and lets the tick chain lapse otherwise.
// Ticks addressed to other spinners are ignored by the spinner itself.
func (a *activity) Update(msg spinner.TickMsg, busy bool) tea.Cmd {
	if msg.ID != a.spinner.ID() {
		return nil
	}
	if !busy {
		a.running = false
		return nil
	}
	var cmd tea.Cmd
	a.spinner, cmd = a.spinner.Update(msg)
	return cmd
}

func (a *activity) View() string {
	return a.spinner.View()
}
