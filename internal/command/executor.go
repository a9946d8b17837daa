// Package command provides a text command interface over a template
package command

import (
	"fmt"
	"strings"

	"github.com/receiptlab/receipt-designer/pkg/receipt"
)

// Executor runs editing and rendering commands against a template.
// The same command set backs the designer's command line and the HTTP
// /command endpoint.
type Executor struct{}

// NewExecutor creates an executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Result is the outcome of one command. Template carries the updated
// document when the command mutated it.
type Result struct {
	Success  bool                   `json:"success"`
	Message  string                 `json:"message,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
	Error    string                 `json:"error,omitempty"`
	Template *receipt.Template      `json:"template,omitempty"`
}

// Execute runs a command string against the given template and
// preview data. The input template is never mutated.
func (e *Executor) Execute(t receipt.Template, data receipt.PreviewData, cmdStr string) *Result {
	parts := parseCommand(cmdStr)
	if len(parts) == 0 {
		return &Result{
			Success: false,
			Error:   "empty command",
		}
	}

	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "add":
		return e.handleAdd(t, args)
	case "remove", "rm":
		return e.handleRemove(t, args)
	case "toggle":
		return e.handleToggle(t, args)
	case "move":
		return e.handleMove(t, args)
	case "set":
		return e.handleSet(t, args)
	case "list", "ls":
		return e.handleList(t)
	case "render":
		return e.handleRender(t, data, args)
	case "help":
		return e.handleHelp()
	default:
		return &Result{
			Success: false,
			Error:   fmt.Sprintf("unknown command: %s. Type 'help' for available commands", cmd),
		}
	}
}

// parseCommand splits a command string into parts, honoring single
// and double quotes.
func parseCommand(cmdStr string) []string {
	cmdStr = strings.TrimSpace(cmdStr)
	if cmdStr == "" {
		return []string{}
	}

	var parts []string
	var current strings.Builder
	inQuotes := false
	quoteChar := byte(0)

	for i := 0; i < len(cmdStr); i++ {
		char := cmdStr[i]

		if char == '"' || char == '\'' {
			if !inQuotes {
				inQuotes = true
				quoteChar = char
			} else if char == quoteChar {
				inQuotes = false
				quoteChar = 0
			} else {
				current.WriteByte(char)
			}
		} else if char == ' ' && !inQuotes {
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		} else {
			current.WriteByte(char)
		}
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	return parts
}
