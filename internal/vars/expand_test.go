package vars

import (
	"strings"
	"testing"

	"github.com/receiptlab/receipt-designer/pkg/receipt"
)

func sampleData() receipt.PreviewData {
	return receipt.PreviewData{
		StoreName:     "Coffee Corner",
		StoreAddress:  "12 Market Street",
		StorePhone:    "+998 71 200 00 00",
		CashierName:   "Alex",
		ReceiptNumber: "R-000123",
		Date:          "2026-01-15",
		Time:          "14:32",
		Total:         12600,
		Change:        2400,
		FooterText:    "Come again!",
		Payments: []receipt.Payment{
			{Method: "cash", Amount: 10000},
			{Method: "card", Amount: 2600},
		},
	}
}

func TestExpand_AllTokens(t *testing.T) {
	data := sampleData()

	cases := []struct {
		in   string
		want string
	}{
		{"{{storeName}}", "Coffee Corner"},
		{"{{storeAddress}}", "12 Market Street"},
		{"{{storePhone}}", "+998 71 200 00 00"},
		{"{{cashierName}}", "Alex"},
		{"{{receiptNumber}}", "R-000123"},
		{"{{date}}", "2026-01-15"},
		{"{{time}}", "14:32"},
		{"{{footerText}}", "Come again!"},
	}

	for _, c := range cases {
		if got := Expand(c.in, data); got != c.want {
			t.Errorf("Expand(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestExpand_UnknownTokenLeftVerbatim(t *testing.T) {
	got := Expand("Hello {{noSuchToken}} world", sampleData())
	if got != "Hello {{noSuchToken}} world" {
		t.Errorf("unknown tokens must stay verbatim, got %q", got)
	}
}

func TestExpand_CaseSensitive(t *testing.T) {
	got := Expand("{{STORENAME}}", sampleData())
	if got != "{{STORENAME}}" {
		t.Errorf("token matching must be case-sensitive, got %q", got)
	}
}

func TestExpand_MultipleOccurrences(t *testing.T) {
	got := Expand("{{storeName}} / {{storeName}}", sampleData())
	if got != "Coffee Corner / Coffee Corner" {
		t.Errorf("got %q", got)
	}
}

func TestExpand_NoTokens(t *testing.T) {
	if got := Expand("plain text", sampleData()); got != "plain text" {
		t.Errorf("got %q", got)
	}
	if got := Expand("", sampleData()); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestExpand_AmountsGrouped(t *testing.T) {
	got := Expand("Total: {{total}}", sampleData())

	if !strings.Contains(got, "12") || !strings.Contains(got, "600") {
		t.Fatalf("got %q", got)
	}
	// Grouped formatting separates thousands, never decimal-pads.
	if strings.Contains(got, "12600") {
		t.Errorf("amount should be grouped, got %q", got)
	}
	if strings.Contains(got, ".00") {
		t.Errorf("grouped amounts carry no forced decimals, got %q", got)
	}
}

func TestExpand_Payments(t *testing.T) {
	got := Expand("{{payments}}", sampleData())

	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected one line per payment, got %q", got)
	}
	if !strings.HasPrefix(lines[0], "cash: ") || !strings.HasSuffix(lines[0], " UZS") {
		t.Errorf("line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "card: ") || !strings.HasSuffix(lines[1], " UZS") {
		t.Errorf("line = %q", lines[1])
	}
}

func TestFormatGrouped(t *testing.T) {
	if got := FormatGrouped(5); got != "5" {
		t.Errorf("got %q", got)
	}

	got := FormatGrouped(1234567)
	if strings.Contains(got, "1234") {
		t.Errorf("thousands must be separated, got %q", got)
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, got)
	if digits != "1234567" {
		t.Errorf("digits mangled: %q", got)
	}
}
