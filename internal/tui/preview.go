package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/receiptlab/receipt-designer/internal/layout"
	"github.com/receiptlab/receipt-designer/internal/printer"
	"github.com/receiptlab/receipt-designer/pkg/receipt"
)

// TextPreview renders the template's command stream and projects it
// back to printable lines, so the designer shows what the paper would
// say without touching a printer.
func TextPreview(t receipt.Template, data receipt.PreviewData) []string {
	payload := printer.NewGenerator().Generate(t, data)
	return decodeLines(payload)
}

// decodeLines walks an ESC/POS stream, drops the control sequences
// and keeps the text between them. Alignment commands are honored by
// padding within the print width; everything else (bold, text size,
// cut) only affects glyphs on real hardware and is skipped.
func decodeLines(payload []byte) []string {
	var lines []string
	var current strings.Builder
	align := byte(0)

	flush := func() {
		lines = append(lines, padAligned(current.String(), align))
		current.Reset()
	}

	for i := 0; i < len(payload); i++ {
		b := payload[i]

		switch b {
		case printer.LF:
			flush()

		case printer.ESC:
			if i+1 >= len(payload) {
				return append(lines, current.String())
			}
			switch payload[i+1] {
			case '@':
				i++
			case 'a':
				if i+2 < len(payload) {
					align = payload[i+2]
				}
				i += 2
			case 'E', 'd':
				i += 2
			case '*':
				// ESC * m nL nH then the raster bytes.
				if i+4 < len(payload) {
					n := int(payload[i+3]) | int(payload[i+4])<<8
					i += 4 + n
				} else {
					i = len(payload)
				}
			default:
				i++
			}

		case printer.GS:
			if i+1 >= len(payload) {
				return append(lines, current.String())
			}
			switch payload[i+1] {
			case 'V', '!':
				i += 2
			case '(':
				// GS ( k pL pH then pL+pH*256 function bytes. The print
				// trigger function leaves a marker where the symbol
				// would print.
				if i+4 < len(payload) {
					n := int(payload[i+3]) | int(payload[i+4])<<8
					if i+6 < len(payload) && payload[i+5] == '1' && payload[i+6] == 'Q' {
						lines = append(lines, padAligned("[QR CODE]", align))
					}
					i += 4 + n
				} else {
					i = len(payload)
				}
			default:
				i++
			}

		default:
			if b >= 0x20 || b == '\t' {
				current.WriteByte(b)
			}
		}
	}

	if current.Len() > 0 {
		flush()
	}

	return lines
}

// padAligned positions a line within the print width the way the
// printer's alignment mode would.
func padAligned(s string, align byte) string {
	n := utf8.RuneCountInString(s)
	if n >= layout.PrintWidth {
		return s
	}
	switch align {
	case 1:
		left := (layout.PrintWidth - n) / 2
		return strings.Repeat(" ", left) + s
	case 2:
		return strings.Repeat(" ", layout.PrintWidth-n) + s
	}
	return s
}
