package receipt

import (
	"encoding/json"
	"fmt"
	"os"
)

// Parse parses a template from JSON, accepting both transport shapes
// the backend produces: the canonical single-level style.styles and
// the doubly-nested style.style.styles left over from round-tripping.
// Either way the result is normalized to the single-level shape.
func Parse(data []byte) (*Template, error) {
	var temp struct {
		ID     string          `json:"id,omitempty"`
		Name   string          `json:"name"`
		Style  json.RawMessage `json:"style"`
		IsUsed bool            `json:"is_used,omitempty"`
	}

	if err := json.Unmarshal(data, &temp); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	t := Template{
		ID:     temp.ID,
		Name:   temp.Name,
		IsUsed: temp.IsUsed,
	}

	style, err := normalizeStyle(temp.Style)
	if err != nil {
		return nil, err
	}
	t.Style = style

	return &t, nil
}

// normalizeStyle unwraps the style block. A broken or absent block
// degrades to the baseline styles with an empty component list rather
// than failing, so a damaged template still renders a blank receipt.
func normalizeStyle(raw json.RawMessage) (Style, error) {
	empty := Style{Styles: BaselineStyles(), Components: []Component{}}

	if len(raw) == 0 || string(raw) == "null" {
		return empty, nil
	}

	var outer struct {
		Styles     *Styles         `json:"styles"`
		Components []Component     `json:"components"`
		Style      json.RawMessage `json:"style"`
	}
	if err := json.Unmarshal(raw, &outer); err != nil {
		return Style{}, fmt.Errorf("failed to parse template style: %w", err)
	}

	styles := outer.Styles
	components := outer.Components

	// Backend round-tripping can leave the real payload one level
	// deeper at style.style.styles.
	if styles == nil && len(outer.Style) > 0 && string(outer.Style) != "null" {
		var inner struct {
			Styles     *Styles     `json:"styles"`
			Components []Component `json:"components"`
		}
		if err := json.Unmarshal(outer.Style, &inner); err != nil {
			return Style{}, fmt.Errorf("failed to parse nested template style: %w", err)
		}
		styles = inner.Styles
		if components == nil {
			components = inner.Components
		}
	}

	out := Style{}
	if styles != nil {
		out.Styles = *styles
	} else {
		out.Styles = BaselineStyles()
	}
	if components != nil {
		out.Components = components
	} else {
		out.Components = []Component{}
	}

	return out, nil
}

// ParseFile parses a template file from disk.
func ParseFile(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}

	return Parse(data)
}

// ToJSON converts a Template to indented JSON bytes.
func (t *Template) ToJSON() ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// SaveToFile saves a Template to a file.
func (t *Template) SaveToFile(path string) error {
	data, err := t.ToJSON()
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
