package receipt

// Resolved is the effective style of a component after applying the
// fallback chain. Both renderers consume this instead of re-deriving
// defaults on their own.
type Resolved struct {
	Align      string // left, center or right
	Bold       bool
	Italic     bool
	FontSize   string
	FontFamily string
	Width      string
	Height     string
	Margin     string
	Padding    string
	Color      string
	Background string
}

// ResolveStyle applies the fallback order for every style field:
// component style, then template-level global style (font size and
// family only), then the per-type hardcoded default.
func ResolveStyle(c Component, t Template) Resolved {
	def := DefaultStyles(c.Type)
	global := t.Style.Styles

	pick := func(values ...string) string {
		for _, v := range values {
			if v != "" {
				return v
			}
		}
		return ""
	}

	align := pick(c.Styles.TextAlign, def.TextAlign)
	if align == "" {
		align = "left"
	}

	weight := pick(c.Styles.FontWeight, def.FontWeight)
	style := pick(c.Styles.FontStyle, def.FontStyle)

	return Resolved{
		Align:      align,
		Bold:       weight == "bold",
		Italic:     style == "italic",
		FontSize:   pick(c.Styles.FontSize, global.FontSize, def.FontSize),
		FontFamily: pick(c.Styles.FontFamily, global.FontFamily, def.FontFamily),
		Width:      pick(c.Styles.Width, def.Width),
		Height:     pick(c.Styles.Height, def.Height),
		Margin:     pick(c.Styles.Margin, def.Margin),
		Padding:    pick(c.Styles.Padding, def.Padding),
		Color:      pick(c.Styles.Color, def.Color),
		Background: pick(c.Styles.BackgroundColor, def.BackgroundColor),
	}
}
