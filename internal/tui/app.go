// Package tui is the terminal receipt designer
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/receiptlab/receipt-designer/internal/command"
	"github.com/receiptlab/receipt-designer/pkg/receipt"
)

// mode is the designer's input mode.
type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeUpload
	modeCommand
)

// App is the designer's Bubble Tea model. It holds the working
// template and edits it through the pure operations in pkg/receipt,
// so every keystroke produces a new document and the previous one is
// untouched.
type App struct {
	template receipt.Template
	data     receipt.PreviewData
	savePath string

	mode     mode
	cursor   int
	addPick  int
	input    textinput.Model
	command  CommandModel
	status   string
	statErr  bool
	width    int
	height   int
	ready    bool
	quitting bool
	dirty    bool
}

// NewApp creates a designer over the given template. savePath is
// where 'w' writes the document.
func NewApp(t receipt.Template, data receipt.PreviewData, savePath string) *App {
	input := textinput.New()
	input.Prompt = "> "
	input.PromptStyle = PromptStyle
	input.CharLimit = 512

	return &App{
		template: t,
		data:     data,
		savePath: savePath,
		input:    input,
		command:  NewCommandModel(command.NewExecutor()),
		status:   "ready",
	}
}

// Init initializes the application.
func (a *App) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.command.SetWidth(msg.Width)
		return a, nil

	case tea.KeyMsg:
		switch a.mode {
		case modeAdd:
			return a.updateAdd(msg)
		case modeEdit:
			return a.updateEdit(msg)
		case modeUpload:
			return a.updateUpload(msg)
		case modeCommand:
			return a.updateCommand(msg)
		}
		return a.updateList(msg)
	}

	return a, nil
}

func (a *App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	components := a.ordered()

	switch msg.String() {
	case "ctrl+c", "q":
		a.quitting = true
		return a, tea.Quit

	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}

	case "down", "j":
		if a.cursor < len(components)-1 {
			a.cursor++
		}

	case "K", "shift+up":
		// Move the selected component one slot up.
		if a.cursor > 0 && a.cursor < len(components) {
			a.template = receipt.Reorder(a.template, components[a.cursor].ID, components[a.cursor-1].ID)
			a.cursor--
			a.markDirty("moved " + components[a.cursor+1].ID)
		}

	case "J", "shift+down":
		if a.cursor >= 0 && a.cursor < len(components)-1 {
			a.template = receipt.Reorder(a.template, components[a.cursor].ID, components[a.cursor+1].ID)
			a.cursor++
			a.markDirty("moved " + components[a.cursor-1].ID)
		}

	case " ":
		if a.cursor < len(components) {
			a.template = receipt.ToggleComponent(a.template, components[a.cursor].ID)
			a.markDirty("toggled " + components[a.cursor].ID)
		}

	case "d":
		if a.cursor < len(components) {
			id := components[a.cursor].ID
			a.template = receipt.RemoveComponent(a.template, id)
			if a.cursor >= len(a.template.Style.Components) && a.cursor > 0 {
				a.cursor--
			}
			a.markDirty("removed " + id)
		}

	case "a":
		a.mode = modeAdd
		a.addPick = 0

	case "enter":
		if a.cursor < len(components) {
			c := components[a.cursor]
			a.mode = modeEdit
			a.input.SetValue(editValue(c))
			a.input.Focus()
			return a, textinput.Blink
		}

	case "u":
		// Attach an image file to the selected logo component.
		if a.cursor < len(components) {
			if components[a.cursor].Type != receipt.TypeLogo {
				a.setError("select a logo component to attach an image")
				break
			}
			a.mode = modeUpload
			a.input.SetValue("")
			a.input.Focus()
			return a, textinput.Blink
		}

	case "w":
		if a.savePath == "" {
			a.setError("no save path configured")
			break
		}
		if err := a.template.SaveToFile(a.savePath); err != nil {
			a.setError(err.Error())
			break
		}
		a.dirty = false
		a.setStatus("saved " + a.savePath)

	case ":":
		a.mode = modeCommand
		a.command.Show()
		return a, textinput.Blink
	}

	return a, nil
}

func (a *App) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		a.mode = modeList

	case "up", "k":
		if a.addPick > 0 {
			a.addPick--
		}

	case "down", "j":
		if a.addPick < len(receipt.ComponentTypes)-1 {
			a.addPick++
		}

	case "enter":
		kind := receipt.ComponentTypes[a.addPick]
		a.template = receipt.AddComponent(a.template, kind)
		a.cursor = len(a.template.Style.Components) - 1
		a.mode = modeList
		a.markDirty(fmt.Sprintf("added %s", kind))
	}

	return a, nil
}

func (a *App) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeList
		a.input.Blur()
		return a, nil

	case "enter":
		components := a.ordered()
		if a.cursor < len(components) {
			c := components[a.cursor]
			a.template = receipt.UpdateComponent(a.template, c.ID, editPatch(c, a.input.Value()), nil)
			a.markDirty("updated " + c.ID)
		}
		a.mode = modeList
		a.input.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// editValue picks the field enter edits for a component: the QR
// payload for qrCode, the image URL for logo, the text otherwise.
func editValue(c receipt.Component) string {
	switch c.Type {
	case receipt.TypeQRCode:
		return c.Data.QRData
	case receipt.TypeLogo:
		return c.Data.URL
	default:
		return c.Data.Text
	}
}

func editPatch(c receipt.Component, value string) *receipt.DataPatch {
	switch c.Type {
	case receipt.TypeQRCode:
		return &receipt.DataPatch{QRData: receipt.String(value)}
	case receipt.TypeLogo:
		return &receipt.DataPatch{URL: receipt.String(value)}
	default:
		return &receipt.DataPatch{Text: receipt.String(value)}
	}
}

func (a *App) updateUpload(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeList
		a.input.Blur()
		return a, nil

	case "enter":
		path := strings.TrimSpace(a.input.Value())
		a.mode = modeList
		a.input.Blur()
		if path == "" {
			return a, nil
		}

		url, err := LoadImageDataURL(path)
		if err != nil {
			a.setError(err.Error())
			return a, nil
		}

		components := a.ordered()
		if a.cursor < len(components) {
			id := components[a.cursor].ID
			a.template = receipt.UpdateComponent(a.template, id, &receipt.DataPatch{URL: receipt.String(url)}, nil)
			a.markDirty("attached image to " + id)
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) updateCommand(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		a.mode = modeList
		a.command.Hide()
		return a, nil
	}

	newCmd, teaCmd, result := a.command.Update(msg, a.template, a.data)
	a.command = newCmd

	if result != nil {
		if result.Success {
			if result.Template != nil {
				a.template = *result.Template
				a.dirty = true
			}
			if result.Message != "" {
				a.setStatus(firstLine(result.Message))
			}
		} else {
			a.setError(result.Error)
		}
	}

	if !a.command.IsVisible() {
		a.mode = modeList
	}

	return a, teaCmd
}

// View renders the UI.
func (a *App) View() string {
	if a.quitting {
		return "\n  Goodbye!\n\n"
	}
	if !a.ready {
		return "\n  Loading...\n"
	}

	list := a.renderList()
	preview := a.renderPreview()

	top := lipgloss.JoinHorizontal(lipgloss.Top, list, preview)

	var bottom string
	switch a.mode {
	case modeAdd:
		bottom = a.renderAddPicker()
	case modeEdit:
		bottom = PromptStyle.Render("edit ") + a.input.View()
	case modeUpload:
		bottom = PromptStyle.Render("image path ") + a.input.View()
	case modeCommand:
		bottom = a.command.View()
	default:
		bottom = a.renderStatusBar()
	}

	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

func (a *App) renderList() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(a.template.Name))
	b.WriteString("\n\n")

	components := a.ordered()
	if len(components) == 0 {
		b.WriteString(StatusStyle.Render("  no components, press 'a' to add one"))
	}

	for i, c := range components {
		mark := "[x]"
		if !c.Enabled {
			mark = "[ ]"
		}

		label := fmt.Sprintf(" %s %2d %-10s %s", mark, c.Order, c.Type, c.ID)

		switch {
		case i == a.cursor:
			b.WriteString(SelectedRowStyle.Render(label))
		case !c.Enabled:
			b.WriteString(DisabledRowStyle.Render(label))
		default:
			b.WriteString(RowStyle.Render(label))
		}
		b.WriteString("\n")
	}

	return ListStyle.Render(b.String())
}

func (a *App) renderPreview() string {
	lines := TextPreview(a.template, a.data)

	maxLines := a.height - 6
	if maxLines < 4 {
		maxLines = 4
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}

	return PreviewStyle.Render(strings.Join(lines, "\n"))
}

func (a *App) renderAddPicker() string {
	var b strings.Builder
	b.WriteString(PromptStyle.Render("add component: "))
	for i, t := range receipt.ComponentTypes {
		label := string(t)
		if i == a.addPick {
			b.WriteString(SelectedRowStyle.Render(" " + label + " "))
		} else {
			b.WriteString(RowStyle.Render(" " + label + " "))
		}
	}
	return b.String()
}

func (a *App) renderStatusBar() string {
	flag := ""
	if a.dirty {
		flag = " [+]"
	}

	status := a.status
	style := StatusStyle
	if a.statErr {
		style = ErrorStyle
	}

	help := HelpStyle.Render("  j/k move cursor  J/K reorder  space toggle  a add  d delete  enter edit  u image  w save  : command  q quit")

	return style.Render(status+flag) + help
}

// ordered lists every component sorted by its order field. Display
// position follows the order field, never slice position.
func (a *App) ordered() []receipt.Component {
	components := make([]receipt.Component, len(a.template.Style.Components))
	copy(components, a.template.Style.Components)
	sort.SliceStable(components, func(i, j int) bool {
		return components[i].Order < components[j].Order
	})
	return components
}

func (a *App) markDirty(msg string) {
	a.dirty = true
	a.setStatus(msg)
}

func (a *App) setStatus(msg string) {
	a.status = msg
	a.statErr = false
}

func (a *App) setError(msg string) {
	a.status = msg
	a.statErr = true
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// Run starts the designer.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
