// Package receipt defines the receipt template document model
package receipt

// ComponentType identifies one of the closed set of component kinds.
// The type of a component is fixed at creation and decides which data
// and style fields the renderers read.
type ComponentType string

const (
	TypeLogo     ComponentType = "logo"
	TypeHeader   ComponentType = "header"
	TypeText     ComponentType = "text"
	TypeItemList ComponentType = "itemList"
	TypeTotals   ComponentType = "totals"
	TypeFooter   ComponentType = "footer"
	TypeDivider  ComponentType = "divider"
	TypeSpacer   ComponentType = "spacer"
	TypeQRCode   ComponentType = "qrCode"
)

// ComponentTypes lists every known component type in the order the
// editing surface offers them.
var ComponentTypes = []ComponentType{
	TypeLogo,
	TypeHeader,
	TypeText,
	TypeItemList,
	TypeTotals,
	TypeQRCode,
	TypeFooter,
	TypeDivider,
	TypeSpacer,
}

// Valid reports whether t is one of the known component types.
func (t ComponentType) Valid() bool {
	for _, known := range ComponentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Data is the variant-specific payload of a component. Fields that a
// given type does not use are ignored by the renderers, not rejected.
type Data struct {
	Text       string `json:"text,omitempty"`
	URL        string `json:"url,omitempty"`
	QRData     string `json:"qrData,omitempty"`
	QRCodeData string `json:"qrCodeData,omitempty"`
}

// Styles is the per-component style record. Every field is optional;
// absent values fall back to the template-level styles (font size and
// family only) and then to the per-type defaults.
type Styles struct {
	TextAlign       string `json:"textAlign,omitempty"`
	FontSize        string `json:"fontSize,omitempty"`
	FontFamily      string `json:"fontFamily,omitempty"`
	FontWeight      string `json:"fontWeight,omitempty"`
	FontStyle       string `json:"fontStyle,omitempty"`
	Margin          string `json:"margin,omitempty"`
	Padding         string `json:"padding,omitempty"`
	Color           string `json:"color,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	Width           string `json:"width,omitempty"`
	Height          string `json:"height,omitempty"`
	Spacing         string `json:"spacing,omitempty"`
	ReceiptWidth    string `json:"receiptWidth,omitempty"`
	BorderTop       bool   `json:"borderTop,omitempty"`
	BorderBottom    bool   `json:"borderBottom,omitempty"`
}

// Component is one visual unit of a receipt.
type Component struct {
	ID      string        `json:"id"`
	Type    ComponentType `json:"type"`
	Data    Data          `json:"data"`
	Styles  Styles        `json:"styles"`
	Enabled bool          `json:"enabled"`
	Order   int           `json:"order"`
}

// Style is the template-level aggregate of global styles plus the
// ordered component list.
type Style struct {
	Styles     Styles      `json:"styles"`
	Components []Component `json:"components"`
}

// Template is the receipt document. ID is assigned externally for
// persisted templates and empty for in-memory ones.
type Template struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Style  Style  `json:"style"`
	IsUsed bool   `json:"is_used,omitempty"`
}

// LineItem is one sold item in the preview data.
type LineItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
}

// Payment is one payment method/amount pair.
type Payment struct {
	Method string  `json:"method"`
	Amount float64 `json:"amount"`
}

// PreviewData is the fixed-shape record available for variable
// substitution and the native rendering of itemList and totals.
type PreviewData struct {
	StoreName     string     `json:"storeName"`
	StoreAddress  string     `json:"storeAddress"`
	StorePhone    string     `json:"storePhone"`
	CashierName   string     `json:"cashierName"`
	ReceiptNumber string     `json:"receiptNumber"`
	Date          string     `json:"date"`
	Time          string     `json:"time"`
	Items         []LineItem `json:"items"`
	Subtotal      float64    `json:"subtotal"`
	Tax           float64    `json:"tax"`
	Discount      float64    `json:"discount"`
	Total         float64    `json:"total"`
	PaymentMethod string     `json:"paymentMethod"`
	Payments      []Payment  `json:"payments"`
	Change        float64    `json:"change"`
	FooterText    string     `json:"footerText"`
	QRCodeData    string     `json:"qrCodeData"`
}

// Components returns the template's component slice, tolerating a
// template whose style block was never populated.
func (t *Template) Components() []Component {
	if t == nil {
		return nil
	}
	return t.Style.Components
}
