// Package ui holds the small interactive pieces of the CLI.
package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))

type doneMsg struct{ err error }

type progressModel struct {
	spinner spinner.Model
	label   string
	err     error
}

func newProgressModel(label string) progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle
	return progressModel{spinner: s, label: label}
}

func (m progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m progressModel) View() string {
	return "  " + m.spinner.View() + m.label + "\n"
}

// RunWithSpinner shows a spinner while fn runs and returns fn's error. If
// the terminal cannot host the spinner the work still happens; only the
// animation is lost.
func RunWithSpinner(label string, fn func() error) error {
	p := tea.NewProgram(newProgressModel(label))
	done := make(chan error, 1)
	go func() {
		err := fn()
		done <- err
		p.Send(doneMsg{err: err})
	}()
	if _, err := p.Run(); err != nil {
		return <-done
	}
	return <-done
}
