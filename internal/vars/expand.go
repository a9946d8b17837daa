// Package vars implements template variable substitution
package vars

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/receiptlab/receipt-designer/pkg/receipt"
)

// groupPrinter formats amounts with thousands grouping the way the
// storefront does (ru-RU style grouping).
var groupPrinter = message.NewPrinter(language.Russian)

// FormatGrouped renders a number with locale thousands grouping and
// at most two fractional digits, trailing zeros dropped.
func FormatGrouped(v float64) string {
	return groupPrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// Expand replaces every {{token}} occurrence in text with the value
// from data. The token set is closed and case-sensitive; unrecognized
// tokens are left verbatim. The function performs no caching and must
// be called fresh per render.
func Expand(text string, data receipt.PreviewData) string {
	if text == "" || !strings.Contains(text, "{{") {
		return text
	}

	replacer := strings.NewReplacer(
		"{{storeName}}", data.StoreName,
		"{{storeAddress}}", data.StoreAddress,
		"{{storePhone}}", data.StorePhone,
		"{{cashierName}}", data.CashierName,
		"{{receiptNumber}}", data.ReceiptNumber,
		"{{date}}", data.Date,
		"{{time}}", data.Time,
		"{{change}}", FormatGrouped(data.Change),
		"{{footerText}}", data.FooterText,
		"{{payments}}", expandPayments(data.Payments),
		"{{total}}", FormatGrouped(data.Total),
	)

	return replacer.Replace(text)
}

// expandPayments renders one "method: amount UZS" line per payment,
// newline-joined.
func expandPayments(payments []receipt.Payment) string {
	lines := make([]string, 0, len(payments))
	for _, p := range payments {
		lines = append(lines, p.Method+": "+FormatGrouped(p.Amount)+" UZS")
	}
	return strings.Join(lines, "\n")
}
