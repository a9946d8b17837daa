package command

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/receiptlab/receipt-designer/internal/printer"
	"github.com/receiptlab/receipt-designer/internal/render"
	"github.com/receiptlab/receipt-designer/pkg/receipt"
)

// handleAdd appends a component.
// Usage: add <type>
func (e *Executor) handleAdd(t receipt.Template, args []string) *Result {
	if len(args) < 1 {
		return &Result{Success: false, Error: "usage: add <type>"}
	}

	kind := receipt.ComponentType(args[0])
	if !kind.Valid() {
		return &Result{
			Success: false,
			Error:   fmt.Sprintf("unknown component type: %s", args[0]),
		}
	}

	updated := receipt.AddComponent(t, kind)
	added := updated.Style.Components[len(updated.Style.Components)-1]

	return &Result{
		Success:  true,
		Message:  fmt.Sprintf("added %s component %s", kind, added.ID),
		Template: &updated,
	}
}

// handleRemove deletes a component by ID.
// Usage: remove <id>
func (e *Executor) handleRemove(t receipt.Template, args []string) *Result {
	if len(args) < 1 {
		return &Result{Success: false, Error: "usage: remove <id>"}
	}

	id := args[0]
	if findComponent(t, id) == nil {
		return &Result{Success: false, Error: fmt.Sprintf("component not found: %s", id)}
	}

	updated := receipt.RemoveComponent(t, id)

	return &Result{
		Success:  true,
		Message:  fmt.Sprintf("removed %s", id),
		Template: &updated,
	}
}

// handleToggle flips a component's enabled flag.
// Usage: toggle <id>
func (e *Executor) handleToggle(t receipt.Template, args []string) *Result {
	if len(args) < 1 {
		return &Result{Success: false, Error: "usage: toggle <id>"}
	}

	id := args[0]
	if findComponent(t, id) == nil {
		return &Result{Success: false, Error: fmt.Sprintf("component not found: %s", id)}
	}

	updated := receipt.ToggleComponent(t, id)

	state := "disabled"
	if findComponent(updated, id).Enabled {
		state = "enabled"
	}

	return &Result{
		Success:  true,
		Message:  fmt.Sprintf("%s %s", state, id),
		Template: &updated,
	}
}

// handleMove moves a component to a new position.
// Usage: move <id> <index>
func (e *Executor) handleMove(t receipt.Template, args []string) *Result {
	if len(args) < 2 {
		return &Result{Success: false, Error: "usage: move <id> <index>"}
	}

	id := args[0]
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return &Result{Success: false, Error: fmt.Sprintf("invalid index: %s", args[1])}
	}

	ordered := orderedComponents(t)
	if index < 0 || index >= len(ordered) {
		return &Result{
			Success: false,
			Error:   fmt.Sprintf("index out of range: %d (0..%d)", index, len(ordered)-1),
		}
	}

	updated := receipt.Reorder(t, id, ordered[index].ID)

	return &Result{
		Success:  true,
		Message:  fmt.Sprintf("moved %s to position %d", id, index),
		Template: &updated,
	}
}

// handleSet updates one data or style field of a component.
// Usage: set <id> <field> <value>
func (e *Executor) handleSet(t receipt.Template, args []string) *Result {
	if len(args) < 3 {
		return &Result{Success: false, Error: "usage: set <id> <field> <value>"}
	}

	id := args[0]
	field := strings.ToLower(args[1])
	value := strings.Join(args[2:], " ")

	if findComponent(t, id) == nil {
		return &Result{Success: false, Error: fmt.Sprintf("component not found: %s", id)}
	}

	var data *receipt.DataPatch
	var styles *receipt.StylesPatch

	switch field {
	case "text":
		data = &receipt.DataPatch{Text: receipt.String(value)}
	case "url":
		data = &receipt.DataPatch{URL: receipt.String(value)}
	case "qrdata":
		data = &receipt.DataPatch{QRData: receipt.String(value)}
	case "align":
		styles = &receipt.StylesPatch{TextAlign: receipt.String(value)}
	case "fontsize":
		styles = &receipt.StylesPatch{FontSize: receipt.String(value)}
	case "fontweight":
		styles = &receipt.StylesPatch{FontWeight: receipt.String(value)}
	case "width":
		styles = &receipt.StylesPatch{Width: receipt.String(value)}
	case "height":
		styles = &receipt.StylesPatch{Height: receipt.String(value)}
	case "margin":
		styles = &receipt.StylesPatch{Margin: receipt.String(value)}
	default:
		return &Result{
			Success: false,
			Error:   fmt.Sprintf("unknown field: %s (text, url, qrdata, align, fontsize, fontweight, width, height, margin)", field),
		}
	}

	updated := receipt.UpdateComponent(t, id, data, styles)

	return &Result{
		Success:  true,
		Message:  fmt.Sprintf("set %s.%s = %s", id, field, value),
		Template: &updated,
	}
}

// handleList describes every component in order.
func (e *Executor) handleList(t receipt.Template) *Result {
	components := orderedComponents(t)

	rows := make([]map[string]any, len(components))
	var b strings.Builder
	for i, c := range components {
		rows[i] = map[string]any{
			"id":      c.ID,
			"type":    c.Type,
			"enabled": c.Enabled,
			"order":   c.Order,
		}

		mark := " "
		if !c.Enabled {
			mark = "x"
		}
		fmt.Fprintf(&b, "[%s] %2d %-10s %s\n", mark, c.Order, c.Type, c.ID)
	}

	return &Result{
		Success: true,
		Message: strings.TrimRight(b.String(), "\n"),
		Data:    map[string]any{"components": rows},
	}
}

// handleRender renders the template in the requested format.
// Usage: render <escpos|html>
func (e *Executor) handleRender(t receipt.Template, data receipt.PreviewData, args []string) *Result {
	format := "escpos"
	if len(args) > 0 {
		format = args[0]
	}

	switch format {
	case "escpos":
		payload := printer.NewGenerator().Generate(t, data)
		return &Result{
			Success: true,
			Message: fmt.Sprintf("generated %d command bytes", len(payload)),
			Data:    map[string]any{"bytes": len(payload)},
		}
	case "html":
		doc := render.HTML(t, data)
		return &Result{
			Success: true,
			Message: fmt.Sprintf("generated %d characters of HTML", len(doc)),
			Data:    map[string]any{"html": doc},
		}
	default:
		return &Result{Success: false, Error: fmt.Sprintf("unknown format: %s (escpos, html)", format)}
	}
}

func (e *Executor) handleHelp() *Result {
	help := `Available commands:
  add <type>              Add a component (logo, header, text, itemList, totals, qrCode, footer, divider, spacer)
  remove <id>             Remove a component
  toggle <id>             Enable/disable a component
  move <id> <index>       Move a component to a position
  set <id> <field> <val>  Update a component field
  list                    List components in order
  render <escpos|html>    Render the template
  help                    Show this help`

	return &Result{Success: true, Message: help}
}

func findComponent(t receipt.Template, id string) *receipt.Component {
	for i := range t.Style.Components {
		if t.Style.Components[i].ID == id {
			return &t.Style.Components[i]
		}
	}
	return nil
}

// orderedComponents lists everything including disabled components,
// sorted by order.
func orderedComponents(t receipt.Template) []receipt.Component {
	components := make([]receipt.Component, len(t.Style.Components))
	copy(components, t.Style.Components)
	sort.SliceStable(components, func(i, j int) bool {
		return components[i].Order < components[j].Order
	})
	return components
}
