package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/receiptlab/receipt-designer/internal/command"
	"github.com/receiptlab/receipt-designer/pkg/receipt"
)

// CommandModel is the vim-style command line at the bottom of the
// designer. It runs the same commands the HTTP /command endpoint
// accepts.
type CommandModel struct {
	executor *command.Executor
	input    textinput.Model
	output   []string
	history  []string
	histPos  int
	visible  bool
	width    int
}

// NewCommandModel creates the command line.
func NewCommandModel(executor *command.Executor) CommandModel {
	input := textinput.New()
	input.Prompt = ":"
	input.PromptStyle = PromptStyle
	input.CharLimit = 512

	return CommandModel{
		executor: executor,
		input:    input,
		histPos:  -1,
	}
}

// Show makes the command line visible and focused.
func (m *CommandModel) Show() {
	m.visible = true
	m.input.SetValue("")
	m.input.Focus()
	m.histPos = -1
}

// Hide dismisses the command line.
func (m *CommandModel) Hide() {
	m.visible = false
	m.input.Blur()
}

// IsVisible reports whether the command line is showing.
func (m CommandModel) IsVisible() bool {
	return m.visible
}

// SetWidth sets the render width.
func (m *CommandModel) SetWidth(w int) {
	m.width = w
	m.input.Width = w - 4
}

// Update handles a key press while the command line is focused. It
// returns the executed command's result, if any, so the caller can
// apply the updated template.
func (m CommandModel) Update(msg tea.KeyMsg, t receipt.Template, data receipt.PreviewData) (CommandModel, tea.Cmd, *command.Result) {
	switch msg.String() {
	case "enter":
		line := strings.TrimSpace(m.input.Value())
		if line == "" {
			m.Hide()
			return m, nil, nil
		}

		m.history = append(m.history, line)
		m.histPos = -1

		result := m.executor.Execute(t, data, line)
		if result.Success {
			if result.Message != "" {
				m.output = strings.Split(result.Message, "\n")
			} else {
				m.output = []string{"ok"}
			}
		} else {
			m.output = []string{"error: " + result.Error}
		}

		m.input.SetValue("")
		return m, nil, result

	case "up":
		if len(m.history) > 0 {
			if m.histPos == -1 {
				m.histPos = len(m.history) - 1
			} else if m.histPos > 0 {
				m.histPos--
			}
			m.input.SetValue(m.history[m.histPos])
			m.input.CursorEnd()
		}
		return m, nil, nil

	case "down":
		if m.histPos >= 0 {
			m.histPos++
			if m.histPos >= len(m.history) {
				m.histPos = -1
				m.input.SetValue("")
			} else {
				m.input.SetValue(m.history[m.histPos])
				m.input.CursorEnd()
			}
		}
		return m, nil, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd, nil
}

// View renders the output lines above the input line.
func (m CommandModel) View() string {
	var b strings.Builder

	out := m.output
	if len(out) > 8 {
		out = out[len(out)-8:]
	}
	for _, line := range out {
		b.WriteString(StatusStyle.Render(line))
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	return b.String()
}
