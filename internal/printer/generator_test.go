package printer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/receiptlab/receipt-designer/pkg/receipt"
)

func textComponent(id, text string, order int, enabled bool) receipt.Component {
	return receipt.Component{
		ID:      id,
		Type:    receipt.TypeText,
		Data:    receipt.Data{Text: text},
		Enabled: enabled,
		Order:   order,
	}
}

func templateWith(components ...receipt.Component) receipt.Template {
	return receipt.Template{
		Name: "test",
		Style: receipt.Style{
			Styles:     receipt.BaselineStyles(),
			Components: components,
		},
	}
}

func TestGenerate_InitAndCutFrame(t *testing.T) {
	payload := NewGenerator().Generate(templateWith(), receipt.PreviewData{})

	if !bytes.HasPrefix(payload, []byte{ESC, '@'}) {
		t.Error("stream must start with printer init")
	}
	if !bytes.HasSuffix(payload, []byte{GS, 'V', 0}) {
		t.Error("stream must end with a full cut")
	}
}

func TestGenerate_DisabledComponentsSkipped(t *testing.T) {
	tpl := templateWith(
		textComponent("on", "VISIBLE LINE", 0, true),
		textComponent("off", "HIDDEN LINE", 1, false),
	)

	payload := NewGenerator().Generate(tpl, receipt.PreviewData{})
	out := string(payload)

	if !strings.Contains(out, "VISIBLE LINE") {
		t.Error("enabled component text missing")
	}
	if strings.Contains(out, "HIDDEN LINE") {
		t.Error("disabled component text leaked into the stream")
	}
}

func TestGenerate_OrderFieldDecidesPosition(t *testing.T) {
	// Slice position contradicts the order field on purpose.
	tpl := templateWith(
		textComponent("second", "SECOND", 1, true),
		textComponent("first", "FIRST", 0, true),
	)

	out := string(NewGenerator().Generate(tpl, receipt.PreviewData{}))

	i := strings.Index(out, "FIRST")
	j := strings.Index(out, "SECOND")
	if i < 0 || j < 0 {
		t.Fatal("both components must be present")
	}
	if i > j {
		t.Error("components must be emitted by order field, not slice position")
	}
}

func TestGenerate_VariableExpansion(t *testing.T) {
	tpl := templateWith(textComponent("t", "Served by {{cashierName}}", 0, true))
	data := receipt.PreviewData{CashierName: "Alex"}

	out := string(NewGenerator().Generate(tpl, data))
	if !strings.Contains(out, "Served by Alex") {
		t.Errorf("variables not expanded: %q", out)
	}
}

func TestGenerate_TotalsPinnedCurrencyFormat(t *testing.T) {
	tpl := templateWith(receipt.Component{
		ID: "tot", Type: receipt.TypeTotals, Enabled: true, Order: 0,
	})
	data := receipt.PreviewData{Subtotal: 1000, Tax: 0, Total: 1000}

	out := string(NewGenerator().Generate(tpl, data))

	// The command path never groups thousands.
	if !strings.Contains(out, "$1000.00") {
		t.Errorf("expected pinned $1000.00, got %q", out)
	}
	if !strings.Contains(out, "TOTAL:") {
		t.Error("TOTAL line missing")
	}
}

func TestGenerate_TotalsDiscountOnlyWhenPositive(t *testing.T) {
	tpl := templateWith(receipt.Component{
		ID: "tot", Type: receipt.TypeTotals, Enabled: true, Order: 0,
	})

	out := string(NewGenerator().Generate(tpl, receipt.PreviewData{Discount: 0}))
	if strings.Contains(out, "Discount") {
		t.Error("zero discount must not print a line")
	}

	out = string(NewGenerator().Generate(tpl, receipt.PreviewData{Discount: 1.50}))
	if !strings.Contains(out, "Discount:") || !strings.Contains(out, "-$1.50") {
		t.Errorf("discount line missing or unsigned: %q", out)
	}
}

func TestGenerate_ItemListJustifiedRows(t *testing.T) {
	tpl := templateWith(receipt.Component{
		ID: "items", Type: receipt.TypeItemList, Enabled: true, Order: 0,
	})
	data := receipt.PreviewData{
		Items: []receipt.LineItem{
			{Name: "Americano", Quantity: 2, Price: 3.50, Total: 7.00},
		},
	}

	out := string(NewGenerator().Generate(tpl, data))

	lines := strings.Split(out, string(rune(LF)))
	var row string
	for _, l := range lines {
		if strings.Contains(l, "Americano") {
			row = l
			break
		}
	}
	if row == "" {
		t.Fatal("item row missing")
	}
	if len(row) != 32 {
		t.Errorf("item row must fill the 32-column width, got %d: %q", len(row), row)
	}
	if !strings.HasSuffix(row, "$7.00") {
		t.Errorf("line total must be flush right: %q", row)
	}
}

func TestGenerate_EmptyItemListEmitsNothing(t *testing.T) {
	tpl := templateWith(receipt.Component{
		ID: "items", Type: receipt.TypeItemList, Enabled: true, Order: 0,
	})

	out := string(NewGenerator().Generate(tpl, receipt.PreviewData{}))
	if strings.Contains(out, "---") {
		t.Error("empty item list must not print separators")
	}
}

func TestGenerate_QRPayloadFallback(t *testing.T) {
	qr := func(c receipt.Data) receipt.Template {
		return templateWith(receipt.Component{
			ID: "qr", Type: receipt.TypeQRCode, Data: c, Enabled: true, Order: 0,
		})
	}
	qrStore := []byte{GS, '(', 'k'}

	t.Run("component qrData wins", func(t *testing.T) {
		out := NewGenerator().Generate(qr(receipt.Data{QRData: "AAA", QRCodeData: "BBB"}),
			receipt.PreviewData{QRCodeData: "CCC"})
		if !bytes.Contains(out, []byte("AAA")) {
			t.Error("qrData payload missing")
		}
	})

	t.Run("falls back to qrCodeData then preview data", func(t *testing.T) {
		out := NewGenerator().Generate(qr(receipt.Data{QRCodeData: "BBB"}),
			receipt.PreviewData{QRCodeData: "CCC"})
		if !bytes.Contains(out, []byte("BBB")) {
			t.Error("component qrCodeData payload missing")
		}

		out = NewGenerator().Generate(qr(receipt.Data{}), receipt.PreviewData{QRCodeData: "CCC"})
		if !bytes.Contains(out, []byte("CCC")) {
			t.Error("preview data payload missing")
		}
	})

	t.Run("no payload skips the symbol", func(t *testing.T) {
		out := NewGenerator().Generate(qr(receipt.Data{}), receipt.PreviewData{})
		if bytes.Contains(out, qrStore) {
			t.Error("empty payload must not emit QR commands")
		}
	})
}

func TestGenerate_FormattingResetBetweenComponents(t *testing.T) {
	tpl := templateWith(
		receipt.Component{
			ID: "h", Type: receipt.TypeHeader,
			Data:    receipt.Data{Text: "BIG"},
			Enabled: true, Order: 0,
		},
		textComponent("t", "normal", 1, true),
	)

	out := NewGenerator().Generate(tpl, receipt.PreviewData{})

	// After the header there must be a bold-off, a left-align and a
	// size reset before the next component's text.
	headerEnd := bytes.Index(out, []byte("BIG")) + 3
	nextText := bytes.Index(out, []byte("normal"))
	between := out[headerEnd:nextText]

	if !bytes.Contains(between, []byte{ESC, 'E', 0}) {
		t.Error("bold not reset after component")
	}
	if !bytes.Contains(between, []byte{ESC, 'a', 0}) {
		t.Error("alignment not reset after component")
	}
	if !bytes.Contains(between, []byte{GS, '!', 0}) {
		t.Error("text size not reset after component")
	}
}

func TestSpacerFeeds(t *testing.T) {
	cases := []struct {
		name   string
		styles receipt.Styles
		want   int
	}{
		{"height drives feeds", receipt.Styles{Height: "35px"}, 3},
		{"spacing fallback", receipt.Styles{Spacing: "50px"}, 5},
		{"default 20px", receipt.Styles{}, 2},
		{"minimum one feed", receipt.Styles{Height: "4px"}, 1},
		{"garbage falls back", receipt.Styles{Height: "px"}, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := spacerFeeds(tc.styles); got != tc.want {
				t.Errorf("spacerFeeds(%+v) = %d, want %d", tc.styles, got, tc.want)
			}
		})
	}
}

func TestEncoder_TextSizeByte(t *testing.T) {
	cases := []struct {
		w, h int
		want byte
	}{
		{1, 1, 0x00},
		{2, 2, 0x11},
		{2, 1, 0x10},
		{8, 8, 0x77},
		{0, 99, 0x07}, // clamped to 1..8
	}

	for _, tc := range cases {
		e := NewEncoder()
		e.SetTextSize(tc.w, tc.h)
		got := e.Bytes()
		if len(got) != 3 || got[2] != tc.want {
			t.Errorf("SetTextSize(%d,%d) = % X, want size byte %02X", tc.w, tc.h, got, tc.want)
		}
	}
}

func TestEncoder_QRStoreLength(t *testing.T) {
	e := NewEncoder()
	data := strings.Repeat("x", 300)
	e.QRCode(data)

	// Find the store command and verify its little-endian length
	// covers the payload plus the three function bytes.
	stream := e.Bytes()
	marker := []byte{'1', 'P', '0'}
	idx := bytes.Index(stream, marker)
	if idx < 5 {
		t.Fatal("store command not found")
	}

	pL := int(stream[idx-2])
	pH := int(stream[idx-1])
	if pL+pH*256 != len(data)+3 {
		t.Errorf("store length = %d, want %d", pL+pH*256, len(data)+3)
	}
}
