// Package layout provides fixed-width text layout for thermal output
package layout

import (
	"strings"
	"unicode/utf8"
)

// PrintWidth is the column count of the thermal output. The command
// generator's item list and totals blocks are laid out against this
// physical constant, not a per-call setting.
const PrintWidth = 32

// LineWrap word-wraps text to the given width using a greedy split on
// single spaces. A single word longer than width is force-cut at the
// boundary and the remainder continues on the next line. Returns at
// least one line for non-empty input.
func LineWrap(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	if utf8.RuneCountInString(text) <= width {
		return []string{text}
	}

	var lines []string
	current := ""
	currentLen := 0

	words := strings.Split(text, " ")
	for i := 0; i < len(words); i++ {
		word := words[i]
		wordLen := utf8.RuneCountInString(word)

		if current == "" {
			if wordLen > width {
				// Cut on a rune boundary, never mid-character.
				runes := []rune(word)
				lines = append(lines, string(runes[:width]))
				words[i] = string(runes[width:])
				i--
				continue
			}
			current = word
			currentLen = wordLen
			continue
		}

		if currentLen+1+wordLen <= width {
			current += " " + word
			currentLen += 1 + wordLen
			continue
		}

		lines = append(lines, current)
		current = ""
		currentLen = 0
		i--
	}

	if current != "" {
		lines = append(lines, current)
	}

	return lines
}

// Justify lays out left flush-left and right flush-right on a single
// line of the given width. When the combined length does not fit,
// right is kept whole and left is truncated; when right alone exceeds
// the width, right itself is cut to fit and left is dropped.
func Justify(left, right string, width int) string {
	rightRunes := []rune(right)
	if len(rightRunes) >= width {
		return string(rightRunes[:width])
	}

	leftRunes := []rune(left)
	if len(leftRunes)+len(rightRunes) >= width {
		return string(leftRunes[:width-len(rightRunes)]) + right
	}

	return left + strings.Repeat(" ", width-len(leftRunes)-len(rightRunes)) + right
}

// Separator returns char repeated width times.
func Separator(width int, char string) string {
	if width <= 0 || char == "" {
		return ""
	}
	return strings.Repeat(char, width)
}
