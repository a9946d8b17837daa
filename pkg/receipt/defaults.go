package receipt

import "fmt"

// BaselineStyles is the template-level style record used when a
// template arrives with no global styles at all.
func BaselineStyles() Styles {
	return Styles{
		FontFamily:      "'Courier New', monospace",
		FontSize:        "12px",
		ReceiptWidth:    "80mm",
		Color:           "#000000",
		BackgroundColor: "#ffffff",
	}
}

// DefaultData returns the data payload a freshly added component of
// the given type starts with.
func DefaultData(t ComponentType) Data {
	switch t {
	case TypeLogo:
		return Data{URL: "", Text: ""}
	case TypeHeader:
		return Data{Text: "Store Name"}
	case TypeText:
		return Data{Text: "Sample text"}
	case TypeFooter:
		return Data{Text: "Thank you for your purchase!"}
	case TypeQRCode:
		return Data{QRData: ""}
	default:
		return Data{}
	}
}

// DefaultStyles returns the style record a freshly added component of
// the given type starts with.
func DefaultStyles(t ComponentType) Styles {
	switch t {
	case TypeLogo:
		return Styles{TextAlign: "center", Width: "250px"}
	case TypeHeader:
		return Styles{FontWeight: "bold", TextAlign: "center", FontSize: "16px"}
	case TypeText:
		return Styles{FontWeight: "bold", FontSize: "11px"}
	case TypeItemList:
		return Styles{FontWeight: "bold", FontSize: "10px"}
	case TypeTotals:
		return Styles{FontWeight: "bold", FontSize: "11px"}
	case TypeQRCode:
		return Styles{TextAlign: "center"}
	case TypeFooter:
		return Styles{FontWeight: "bold", TextAlign: "center", FontSize: "10px"}
	case TypeDivider:
		return Styles{Margin: "8px 0"}
	case TypeSpacer:
		return Styles{Height: "20px"}
	default:
		return Styles{}
	}
}

// DefaultTemplate builds the standard store receipt layout: logo,
// header, address line, item list with dividers, totals, QR code and
// footer, followed by a trailing spacer for the tear-off.
func DefaultTemplate() Template {
	type entry struct {
		t    ComponentType
		data Data
	}

	entries := []entry{
		{TypeLogo, DefaultData(TypeLogo)},
		{TypeHeader, Data{Text: "{{storeName}}"}},
		{TypeText, Data{Text: "{{storeAddress}}\n{{storePhone}}"}},
		{TypeDivider, Data{}},
		{TypeItemList, Data{}},
		{TypeDivider, Data{}},
		{TypeTotals, Data{}},
		{TypeQRCode, Data{QRData: "{{receiptNumber}}"}},
		{TypeFooter, Data{Text: "{{footerText}}"}},
		{TypeSpacer, Data{}},
	}

	components := make([]Component, len(entries))
	for i, e := range entries {
		components[i] = Component{
			ID:      fmt.Sprintf("%s-%d", e.t, i),
			Type:    e.t,
			Data:    e.data,
			Styles:  DefaultStyles(e.t),
			Enabled: true,
			Order:   i,
		}
	}

	return Template{
		Name: "Standard Receipt",
		Style: Style{
			Styles:     BaselineStyles(),
			Components: components,
		},
	}
}

// SamplePreviewData returns plausible data for designing against.
func SamplePreviewData() PreviewData {
	return PreviewData{
		StoreName:     "Demo Store",
		StoreAddress:  "12 Market Street",
		StorePhone:    "+998 71 200 00 00",
		CashierName:   "Alex",
		ReceiptNumber: "R-000123",
		Date:          "2026-01-15",
		Time:          "14:32",
		Items: []LineItem{
			{Name: "Americano", Quantity: 2, Price: 3.50, Total: 7.00},
			{Name: "Croissant with almond filling", Quantity: 1, Price: 4.25, Total: 4.25},
		},
		Subtotal:      11.25,
		Tax:           1.35,
		Discount:      0,
		Total:         12.60,
		PaymentMethod: "cash",
		Payments:      []Payment{{Method: "cash", Amount: 12.60}},
		Change:        2.40,
		FooterText:    "Thank you for your purchase!",
		QRCodeData:    "https://example.com/r/R-000123",
	}
}
