package receipt

import (
	"fmt"
	"strings"
)

// Validate checks a template for problems that would make editing it
// confusing: missing or duplicate component IDs, unknown types on
// components the caller created itself, negative order values.
//
// Renderers do not require a valid template; they degrade on bad
// input. Validate is for the API boundary, where rejecting a bad
// write early beats persisting it.
func Validate(t *Template) error {
	if t == nil {
		return fmt.Errorf("template is nil")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("name is required")
	}

	ids := make(map[string]bool)
	for i, c := range t.Style.Components {
		if c.ID == "" {
			return fmt.Errorf("component[%d]: 'id' is required", i)
		}
		if ids[c.ID] {
			return fmt.Errorf("component[%d]: duplicate component id '%s'", i, c.ID)
		}
		ids[c.ID] = true

		if c.Type == "" {
			return fmt.Errorf("component[%d] '%s': 'type' is required", i, c.ID)
		}
		if c.Order < 0 {
			return fmt.Errorf("component[%d] '%s': order must not be negative", i, c.ID)
		}

		if err := validateComponent(&c); err != nil {
			return fmt.Errorf("component[%d] '%s': %w", i, c.ID, err)
		}
	}

	return nil
}

func validateComponent(c *Component) error {
	switch c.Type {
	case TypeLogo:
		return validateLogo(c)
	case TypeHeader, TypeText, TypeFooter:
		// Free-text components accept any payload, including empty
		// text, which simply renders nothing.
		return nil
	case TypeItemList, TypeTotals, TypeDivider, TypeSpacer, TypeQRCode:
		return nil
	default:
		// Unknown types pass validation so templates written by a
		// newer version survive a round trip; renderers skip them.
		return nil
	}
}

func validateLogo(c *Component) error {
	url := c.Data.URL
	if url == "" {
		return nil
	}
	if strings.HasPrefix(url, "data:image/") ||
		strings.HasPrefix(url, "http://") ||
		strings.HasPrefix(url, "https://") {
		return nil
	}
	return fmt.Errorf("logo url must be a data URL or http(s) URL")
}
