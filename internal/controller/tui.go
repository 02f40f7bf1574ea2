package controller

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	m "github.com/mouse-blink/casecov/internal/model"
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	input  io.Reader
	output io.Writer
}

// NewTUI creates a new TUI. A nil input disables keyboard handling.
func NewTUI(input io.Reader, output io.Writer) *TUI {
	return &TUI{input: input, output: output}
}

// DisplayMembers opens a browser over the declared members.
func (t *TUI) DisplayMembers(members []m.MemberSummary) error {
	model := newBrowserModel("📋 Casecov Members", "Filter by member…")
	model.pending = membersMsg{members: members}

	return t.startWithModel(model)
}

// DisplayReports opens a browser over the member reports of a run.
func (t *TUI) DisplayReports(run m.Run) error {
	model := newBrowserModel("🧮 Casecov Coverage Report", "Filter by member…")
	model.pending = reportsMsg{run: run}

	return t.startWithModel(model)
}

// startWithModel runs the program until the user quits.
func (t *TUI) startWithModel(model tea.Model) error {
	p := tea.NewProgram(model,
		tea.WithInput(t.input),
		tea.WithOutput(t.output),
		tea.WithAltScreen(),
	)

	_, err := p.Run()

	return err
}
