// Package printer generates and transmits ESC/POS command streams
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/receiptlab/receipt-designer/internal/layout"
	"github.com/receiptlab/receipt-designer/internal/vars"
	"github.com/receiptlab/receipt-designer/pkg/receipt"
)

// FormatAmount renders an amount for the command path: fixed two
// decimals, no locale grouping. The HTML path formats with grouping;
// the asymmetry is part of the output contract.
func FormatAmount(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// Generator compiles a receipt template into a printable ESC/POS
// command stream.
type Generator struct {
	enc *Encoder
}

// NewGenerator creates a generator with a fresh command buffer.
func NewGenerator() *Generator {
	return &Generator{enc: NewEncoder()}
}

// Generate walks the enabled components in order and emits the full
// receipt, starting with printer init and ending with a paper cut.
// Formatting never leaks between components: bold, alignment and text
// size are reset after every one.
func (g *Generator) Generate(t receipt.Template, data receipt.PreviewData) []byte {
	g.enc.Reset()
	g.enc.Initialize()

	for _, c := range receipt.EnabledInOrder(t) {
		resolved := receipt.ResolveStyle(c, t)

		g.enc.SetAlignment(resolved.Align)
		g.enc.SetBold(resolved.Bold)

		g.emitComponent(c, data)

		g.enc.SetBold(false)
		g.enc.SetAlignment("left")
		g.enc.SetTextSize(1, 1)
	}

	g.enc.Cut()

	return g.enc.Bytes()
}

// GenerateString returns the command stream as a byte-per-character
// string, the shape download consumers expect.
func (g *Generator) GenerateString(t receipt.Template, data receipt.PreviewData) string {
	return string(g.Generate(t, data))
}

func (g *Generator) emitComponent(c receipt.Component, data receipt.PreviewData) {
	switch c.Type {
	case receipt.TypeLogo:
		g.emitLogo(c, data)
	case receipt.TypeHeader:
		g.emitHeader(c, data)
	case receipt.TypeText, receipt.TypeFooter:
		g.emitText(c, data)
	case receipt.TypeItemList:
		g.emitItemList(data)
	case receipt.TypeTotals:
		g.emitTotals(data)
	case receipt.TypeQRCode:
		g.emitQRCode(c, data)
	case receipt.TypeDivider:
		g.enc.WriteLine(layout.Separator(layout.PrintWidth, "-"))
	case receipt.TypeSpacer:
		g.enc.Feed(spacerFeeds(c.Styles))
	default:
		// Unknown component types from newer template versions are
		// skipped rather than rejected.
	}
}

// emitLogo prints the store name in quadruple-size text. The thermal
// path is text-only; logo images are not rasterized here.
func (g *Generator) emitLogo(c receipt.Component, data receipt.PreviewData) {
	g.enc.SetTextSize(2, 2)
	g.enc.SetBold(true)

	text := c.Data.Text
	if text == "" {
		text = data.StoreName
	}

	g.enc.WriteText(vars.Expand(text, data))
	g.enc.Feed(2)
}

func (g *Generator) emitHeader(c receipt.Component, data receipt.PreviewData) {
	g.enc.SetTextSize(2, 1)
	g.enc.SetBold(true)
	g.enc.WriteLine(vars.Expand(c.Data.Text, data))
}

func (g *Generator) emitText(c receipt.Component, data receipt.PreviewData) {
	g.enc.SetBold(true)
	for _, line := range strings.Split(vars.Expand(c.Data.Text, data), "\n") {
		g.enc.WriteLine(line)
	}
}

// emitItemList prints one justified line per item: the wrapped item
// name against the right-aligned line total, with overflow name lines
// continuing left-aligned underneath.
func (g *Generator) emitItemList(data receipt.PreviewData) {
	if len(data.Items) == 0 {
		return
	}

	g.enc.WriteLine(layout.Separator(layout.PrintWidth, "-"))

	for _, item := range data.Items {
		total := FormatAmount(item.Total)

		nameWidth := layout.PrintWidth - len(total) - 1
		lines := layout.LineWrap(item.Name, nameWidth)

		g.enc.WriteLine(layout.Justify(lines[0], total, layout.PrintWidth))
		for _, line := range lines[1:] {
			g.enc.WriteLine(line)
		}
	}

	g.enc.WriteLine(layout.Separator(layout.PrintWidth, "-"))
}

func (g *Generator) emitTotals(data receipt.PreviewData) {
	g.enc.SetBold(true)

	g.enc.WriteLine(layout.Justify("Subtotal:", FormatAmount(data.Subtotal), layout.PrintWidth))
	if data.Discount > 0 {
		g.enc.WriteLine(layout.Justify("Discount:", "-"+FormatAmount(data.Discount), layout.PrintWidth))
	}
	g.enc.WriteLine(layout.Justify("Tax:", FormatAmount(data.Tax), layout.PrintWidth))

	g.enc.WriteLine(layout.Separator(layout.PrintWidth, "="))
	g.enc.WriteLine(layout.Justify("TOTAL:", FormatAmount(data.Total), layout.PrintWidth))
	g.enc.WriteLine(layout.Separator(layout.PrintWidth, "="))
}

func (g *Generator) emitQRCode(c receipt.Component, data receipt.PreviewData) {
	g.enc.SetAlignment("center")

	payload := c.Data.QRData
	if payload == "" {
		payload = c.Data.QRCodeData
	}
	if payload == "" {
		payload = data.QRCodeData
	}
	if payload == "" {
		return
	}

	g.enc.QRCode(vars.Expand(payload, data))
	g.enc.Feed(2)
}

// spacerFeeds converts the spacer's pixel height to line feeds: one
// feed per 10px, at least one. Height falls back to spacing and then
// to the 20px default.
func spacerFeeds(s receipt.Styles) int {
	height := s.Height
	if height == "" {
		height = s.Spacing
	}
	if height == "" {
		height = "20px"
	}

	px := parseLeadingInt(height)
	if px <= 0 {
		px = 20
	}

	feeds := px / 10
	if feeds < 1 {
		feeds = 1
	}
	return feeds
}

// parseLeadingInt reads the leading digits of a CSS-like length such
// as "20px".
func parseLeadingInt(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
