// Package render produces the HTML preview/print document
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/receiptlab/receipt-designer/internal/layout"
	"github.com/receiptlab/receipt-designer/internal/vars"
	"github.com/receiptlab/receipt-designer/pkg/receipt"
)

// HTML renders a complete standalone document for browser preview and
// printing. It honors the same enabled+order filtering and variable
// substitution as the command generator, with CSS in place of ESC/POS
// codes. Data-shape problems degrade to an empty receipt, never an
// error.
func HTML(t receipt.Template, data receipt.PreviewData) string {
	global := t.Style.Styles
	baseline := receipt.BaselineStyles()

	fontFamily := global.FontFamily
	if fontFamily == "" {
		fontFamily = baseline.FontFamily
	}
	fontSize := global.FontSize
	if fontSize == "" {
		fontSize = baseline.FontSize
	}

	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(t.Name))
	b.WriteString("<style>\n")
	b.WriteString("@media print { @page { size: 80mm auto; margin: 0; } }\n")
	fmt.Fprintf(&b, "body { font-family: %s; font-size: %s; width: 80mm; margin: 0 auto; padding: 8px; ", fontFamily, fontSize)
	if global.Color != "" {
		fmt.Fprintf(&b, "color: %s; ", global.Color)
	}
	if global.BackgroundColor != "" {
		fmt.Fprintf(&b, "background: %s; ", global.BackgroundColor)
	}
	b.WriteString("}\n")
	b.WriteString("table { width: 100%; border-collapse: collapse; }\n")
	b.WriteString("pre { font-family: inherit; margin: 4px 0; white-space: pre; }\n")
	b.WriteString("</style>\n</head>\n<body>\n")

	for _, c := range receipt.EnabledInOrder(t) {
		b.WriteString(renderComponent(c, t, data))
	}

	b.WriteString("</body>\n</html>\n")

	return b.String()
}

func renderComponent(c receipt.Component, t receipt.Template, data receipt.PreviewData) string {
	resolved := receipt.ResolveStyle(c, t)

	switch c.Type {
	case receipt.TypeLogo:
		return renderLogo(c, resolved, data)
	case receipt.TypeHeader, receipt.TypeText, receipt.TypeFooter:
		return renderText(c, resolved, data)
	case receipt.TypeItemList:
		return renderItemList(data)
	case receipt.TypeTotals:
		return renderTotals(data)
	case receipt.TypeQRCode:
		return renderQRPlaceholder()
	case receipt.TypeDivider:
		return renderDivider(resolved)
	case receipt.TypeSpacer:
		return renderSpacer(resolved)
	default:
		// Unknown component types from newer template versions render
		// nothing.
		return ""
	}
}

func renderLogo(c receipt.Component, s receipt.Resolved, data receipt.PreviewData) string {
	if c.Data.URL != "" {
		width := s.Width
		if width == "" {
			width = "150px"
		}
		height := "auto"
		if s.Height != "" {
			height = s.Height
		}
		return fmt.Sprintf(
			"<div style=\"text-align: %s;\"><img src=\"%s\" style=\"width: %s; height: %s;\" alt=\"logo\"></div>\n",
			s.Align, html.EscapeString(c.Data.URL), width, height)
	}

	text := c.Data.Text
	if text == "" {
		text = data.StoreName
	}
	return fmt.Sprintf(
		"<div style=\"text-align: center; font-weight: bold;\">%s</div>\n",
		escapeMultiline(vars.Expand(text, data)))
}

func renderText(c receipt.Component, s receipt.Resolved, data receipt.PreviewData) string {
	text := vars.Expand(c.Data.Text, data)
	if text == "" {
		return ""
	}

	style := fmt.Sprintf("text-align: %s;", s.Align)
	if s.Bold {
		style += " font-weight: bold;"
	}
	if s.Italic {
		style += " font-style: italic;"
	}
	if s.FontSize != "" {
		style += fmt.Sprintf(" font-size: %s;", s.FontSize)
	}
	if s.FontFamily != "" {
		style += fmt.Sprintf(" font-family: %s;", s.FontFamily)
	}
	if s.Margin != "" {
		style += fmt.Sprintf(" margin: %s;", s.Margin)
	}

	return fmt.Sprintf("<div style=\"%s\">%s</div>\n", style, escapeMultiline(text))
}

// renderItemList emits one name row plus one quantity-by-unit-price
// row per item. Unlike the thermal path it does not print the
// per-item extended total; the two paths deliberately diverge here.
func renderItemList(data receipt.PreviewData) string {
	if len(data.Items) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("<table>\n")
	for _, item := range data.Items {
		fmt.Fprintf(&b,
			"<tr><td style=\"font-weight: bold;\" colspan=\"2\">%s</td></tr>\n",
			html.EscapeString(item.Name))
		fmt.Fprintf(&b,
			"<tr><td style=\"text-align: left;\">%s x %s</td></tr>\n",
			vars.FormatGrouped(item.Quantity), vars.FormatGrouped(item.Price))
	}
	b.WriteString("</table>\n")

	return b.String()
}

// renderTotals mirrors the physical 32-column layout in a pre block
// so the browser preview lines up with the thermal output.
func renderTotals(data receipt.PreviewData) string {
	lines := []string{
		layout.Justify("Subtotal:", vars.FormatGrouped(data.Subtotal), layout.PrintWidth),
	}
	if data.Discount > 0 {
		lines = append(lines,
			layout.Justify("Discount:", "-"+vars.FormatGrouped(data.Discount), layout.PrintWidth))
	}
	lines = append(lines,
		layout.Justify("Tax:", vars.FormatGrouped(data.Tax), layout.PrintWidth),
		layout.Separator(layout.PrintWidth, "="),
		layout.Justify("TOTAL:", vars.FormatGrouped(data.Total), layout.PrintWidth),
		layout.Separator(layout.PrintWidth, "="),
	)

	return "<pre>" + html.EscapeString(strings.Join(lines, "\n")) + "</pre>\n"
}

// renderQRPlaceholder draws a fixed-size bordered box. The HTML path
// does not render a real QR symbol.
func renderQRPlaceholder() string {
	return "<div style=\"width: 120px; height: 120px; margin: 8px auto; border: 1px solid #000;" +
		" display: flex; align-items: center; justify-content: center;\">QR CODE</div>\n"
}

func renderDivider(s receipt.Resolved) string {
	margin := s.Margin
	if margin == "" {
		margin = "8px 0"
	}
	return fmt.Sprintf(
		"<hr style=\"border: none; border-top: 1px dashed #000; margin: %s;\">\n", margin)
}

func renderSpacer(s receipt.Resolved) string {
	height := s.Height
	if height == "" {
		height = "20px"
	}
	return fmt.Sprintf("<div style=\"height: %s;\"></div>\n", height)
}

// escapeMultiline HTML-escapes text and converts newlines to <br>.
func escapeMultiline(text string) string {
	return strings.ReplaceAll(html.EscapeString(text), "\n", "<br>")
}
