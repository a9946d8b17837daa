package receipt

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// The editing operations below are pure: they never mutate their
// input template and return a new value with a fresh component slice.

func cloneComponents(t Template) []Component {
	out := make([]Component, len(t.Style.Components))
	copy(out, t.Style.Components)
	return out
}

// NewComponent builds a component of the given type with default data
// and styles and a fresh unique ID. Order must be assigned by the
// caller (AddComponent appends at the end).
func NewComponent(t ComponentType) Component {
	return Component{
		ID:      fmt.Sprintf("%s-%s", t, uuid.NewString()[:8]),
		Type:    t,
		Data:    DefaultData(t),
		Styles:  DefaultStyles(t),
		Enabled: true,
	}
}

// AddComponent appends a new component of the given type with
// order = len(components).
func AddComponent(t Template, kind ComponentType) Template {
	components := cloneComponents(t)

	c := NewComponent(kind)
	c.Order = len(components)
	components = append(components, c)

	t.Style.Components = components
	return t
}

// RemoveComponent deletes the component with the given ID. Remaining
// order values are left untouched; renumbering happens only after an
// explicit reorder.
func RemoveComponent(t Template, id string) Template {
	components := make([]Component, 0, len(t.Style.Components))
	for _, c := range t.Style.Components {
		if c.ID != id {
			components = append(components, c)
		}
	}
	t.Style.Components = components
	return t
}

// ToggleComponent flips the enabled flag of the matching component.
// Disabled components are skipped by every renderer but stay in the
// document.
func ToggleComponent(t Template, id string) Template {
	components := cloneComponents(t)
	for i := range components {
		if components[i].ID == id {
			components[i].Enabled = !components[i].Enabled
			break
		}
	}
	t.Style.Components = components
	return t
}

// DataPatch is a partial update of a component's data record. A nil
// field leaves the target untouched; a pointer to the zero value
// clears it, so "absent" and "set to empty" stay distinguishable.
type DataPatch struct {
	Text       *string `json:"text,omitempty"`
	URL        *string `json:"url,omitempty"`
	QRData     *string `json:"qrData,omitempty"`
	QRCodeData *string `json:"qrCodeData,omitempty"`
}

// StylesPatch is a partial update of a component's style record, with
// the same nil-means-untouched semantics as DataPatch.
type StylesPatch struct {
	TextAlign       *string `json:"textAlign,omitempty"`
	FontSize        *string `json:"fontSize,omitempty"`
	FontFamily      *string `json:"fontFamily,omitempty"`
	FontWeight      *string `json:"fontWeight,omitempty"`
	FontStyle       *string `json:"fontStyle,omitempty"`
	Margin          *string `json:"margin,omitempty"`
	Padding         *string `json:"padding,omitempty"`
	Color           *string `json:"color,omitempty"`
	BackgroundColor *string `json:"backgroundColor,omitempty"`
	Width           *string `json:"width,omitempty"`
	Height          *string `json:"height,omitempty"`
	Spacing         *string `json:"spacing,omitempty"`
	ReceiptWidth    *string `json:"receiptWidth,omitempty"`
	BorderTop       *bool   `json:"borderTop,omitempty"`
	BorderBottom    *bool   `json:"borderBottom,omitempty"`
}

// String returns a pointer to s, for building patch literals.
func String(s string) *string { return &s }

// Bool returns a pointer to b, for building patch literals.
func Bool(b bool) *bool { return &b }

// UpdateComponent shallow-merges the set fields of data and styles
// into the matching component. Nil patches leave the corresponding
// record untouched.
func UpdateComponent(t Template, id string, data *DataPatch, styles *StylesPatch) Template {
	components := cloneComponents(t)
	for i := range components {
		if components[i].ID != id {
			continue
		}
		if data != nil {
			mergeData(&components[i].Data, *data)
		}
		if styles != nil {
			mergeStyles(&components[i].Styles, *styles)
		}
		break
	}
	t.Style.Components = components
	return t
}

func mergeData(dst *Data, patch DataPatch) {
	if patch.Text != nil {
		dst.Text = *patch.Text
	}
	if patch.URL != nil {
		dst.URL = *patch.URL
	}
	if patch.QRData != nil {
		dst.QRData = *patch.QRData
	}
	if patch.QRCodeData != nil {
		dst.QRCodeData = *patch.QRCodeData
	}
}

func mergeStyles(dst *Styles, patch StylesPatch) {
	if patch.TextAlign != nil {
		dst.TextAlign = *patch.TextAlign
	}
	if patch.FontSize != nil {
		dst.FontSize = *patch.FontSize
	}
	if patch.FontFamily != nil {
		dst.FontFamily = *patch.FontFamily
	}
	if patch.FontWeight != nil {
		dst.FontWeight = *patch.FontWeight
	}
	if patch.FontStyle != nil {
		dst.FontStyle = *patch.FontStyle
	}
	if patch.Margin != nil {
		dst.Margin = *patch.Margin
	}
	if patch.Padding != nil {
		dst.Padding = *patch.Padding
	}
	if patch.Color != nil {
		dst.Color = *patch.Color
	}
	if patch.BackgroundColor != nil {
		dst.BackgroundColor = *patch.BackgroundColor
	}
	if patch.Width != nil {
		dst.Width = *patch.Width
	}
	if patch.Height != nil {
		dst.Height = *patch.Height
	}
	if patch.Spacing != nil {
		dst.Spacing = *patch.Spacing
	}
	if patch.ReceiptWidth != nil {
		dst.ReceiptWidth = *patch.ReceiptWidth
	}
	if patch.BorderTop != nil {
		dst.BorderTop = *patch.BorderTop
	}
	if patch.BorderBottom != nil {
		dst.BorderBottom = *patch.BorderBottom
	}
}

// Reorder moves the component with activeID to the position currently
// held by overID, then renumbers every component's order to its new
// 0-based index. A drop outside any valid target (overID absent) or
// onto itself is a no-op.
func Reorder(t Template, activeID, overID string) Template {
	if activeID == overID {
		return t
	}

	components := cloneComponents(t)
	sort.SliceStable(components, func(i, j int) bool {
		return components[i].Order < components[j].Order
	})

	from, to := -1, -1
	for i, c := range components {
		if c.ID == activeID {
			from = i
		}
		if c.ID == overID {
			to = i
		}
	}
	if from < 0 || to < 0 {
		return t
	}

	moved := components[from]
	components = append(components[:from], components[from+1:]...)
	rest := make([]Component, 0, len(components)+1)
	rest = append(rest, components[:to]...)
	rest = append(rest, moved)
	rest = append(rest, components[to:]...)

	for i := range rest {
		rest[i].Order = i
	}

	t.Style.Components = rest
	return t
}

// EnabledInOrder returns the enabled components sorted ascending by
// order. Renderers must never rely on raw array position; this is the
// single ordering primitive both output paths share.
func EnabledInOrder(t Template) []Component {
	out := make([]Component, 0, len(t.Style.Components))
	for _, c := range t.Style.Components {
		if c.Enabled {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}
