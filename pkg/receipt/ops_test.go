package receipt

import (
	"testing"
)

func buildTemplate(components ...Component) Template {
	return Template{
		Name: "test",
		Style: Style{
			Styles:     BaselineStyles(),
			Components: components,
		},
	}
}

func comp(id string, kind ComponentType, order int, enabled bool) Component {
	return Component{
		ID:      id,
		Type:    kind,
		Enabled: enabled,
		Order:   order,
	}
}

func TestAddComponent(t *testing.T) {
	tpl := buildTemplate(comp("a", TypeHeader, 0, true))

	updated := AddComponent(tpl, TypeText)

	if len(updated.Style.Components) != 2 {
		t.Fatalf("expected 2 components, got %d", len(updated.Style.Components))
	}

	added := updated.Style.Components[1]
	if added.Type != TypeText {
		t.Errorf("type = %s", added.Type)
	}
	if added.Order != 1 {
		t.Errorf("new component order = %d, want 1", added.Order)
	}
	if !added.Enabled {
		t.Error("new components start enabled")
	}
	if added.ID == "" || added.ID == "a" {
		t.Errorf("bad id %q", added.ID)
	}
	if added.Data.Text != "Sample text" {
		t.Errorf("default data not applied: %q", added.Data.Text)
	}

	// Input untouched.
	if len(tpl.Style.Components) != 1 {
		t.Error("AddComponent mutated its input")
	}
}

func TestAddComponent_UniqueIDs(t *testing.T) {
	tpl := buildTemplate()
	tpl = AddComponent(tpl, TypeText)
	tpl = AddComponent(tpl, TypeText)

	a, b := tpl.Style.Components[0], tpl.Style.Components[1]
	if a.ID == b.ID {
		t.Errorf("ids must be unique, both %q", a.ID)
	}
}

func TestRemoveComponent(t *testing.T) {
	tpl := buildTemplate(
		comp("a", TypeHeader, 0, true),
		comp("b", TypeText, 1, true),
		comp("c", TypeFooter, 2, true),
	)

	updated := RemoveComponent(tpl, "b")

	if len(updated.Style.Components) != 2 {
		t.Fatalf("expected 2 components, got %d", len(updated.Style.Components))
	}
	for _, c := range updated.Style.Components {
		if c.ID == "b" {
			t.Error("component b still present")
		}
	}

	// Orders stay as they were until an explicit reorder.
	if updated.Style.Components[1].Order != 2 {
		t.Errorf("remove must not renumber, got order %d", updated.Style.Components[1].Order)
	}
}

func TestRemoveComponent_UnknownIDNoop(t *testing.T) {
	tpl := buildTemplate(comp("a", TypeHeader, 0, true))
	updated := RemoveComponent(tpl, "missing")
	if len(updated.Style.Components) != 1 {
		t.Error("removing a missing id must not change the document")
	}
}

func TestToggleComponent(t *testing.T) {
	tpl := buildTemplate(comp("a", TypeHeader, 0, true))

	updated := ToggleComponent(tpl, "a")
	if updated.Style.Components[0].Enabled {
		t.Error("expected disabled after toggle")
	}

	updated = ToggleComponent(updated, "a")
	if !updated.Style.Components[0].Enabled {
		t.Error("expected enabled after second toggle")
	}

	if !tpl.Style.Components[0].Enabled {
		t.Error("ToggleComponent mutated its input")
	}
}

func TestUpdateComponent_MergesSetFields(t *testing.T) {
	c := comp("a", TypeText, 0, true)
	c.Data = Data{Text: "old text", URL: "http://old"}
	c.Styles = Styles{FontSize: "11px", TextAlign: "left"}
	tpl := buildTemplate(c)

	updated := UpdateComponent(tpl, "a",
		&DataPatch{Text: String("new text")},
		&StylesPatch{TextAlign: String("center")})

	got := updated.Style.Components[0]
	if got.Data.Text != "new text" {
		t.Errorf("text = %q", got.Data.Text)
	}
	if got.Data.URL != "http://old" {
		t.Errorf("untouched data field changed: %q", got.Data.URL)
	}
	if got.Styles.TextAlign != "center" {
		t.Errorf("align = %q", got.Styles.TextAlign)
	}
	if got.Styles.FontSize != "11px" {
		t.Errorf("untouched style field changed: %q", got.Styles.FontSize)
	}
}

func TestUpdateComponent_ClearsFields(t *testing.T) {
	// A pointer to the zero value resets the field; only a nil field
	// means "leave alone".
	c := comp("a", TypeText, 0, true)
	c.Data = Data{Text: "wipe me", URL: "http://keep"}
	c.Styles = Styles{BorderTop: true, FontSize: "11px"}
	tpl := buildTemplate(c)

	updated := UpdateComponent(tpl, "a",
		&DataPatch{Text: String("")},
		&StylesPatch{BorderTop: Bool(false)})

	got := updated.Style.Components[0]
	if got.Data.Text != "" {
		t.Errorf("text should be cleared, got %q", got.Data.Text)
	}
	if got.Data.URL != "http://keep" {
		t.Errorf("untouched data field changed: %q", got.Data.URL)
	}
	if got.Styles.BorderTop {
		t.Error("BorderTop should be cleared")
	}
	if got.Styles.FontSize != "11px" {
		t.Errorf("untouched style field changed: %q", got.Styles.FontSize)
	}
}

func TestUpdateComponent_NilPatches(t *testing.T) {
	c := comp("a", TypeText, 0, true)
	c.Data = Data{Text: "keep"}
	tpl := buildTemplate(c)

	updated := UpdateComponent(tpl, "a", nil, nil)
	if updated.Style.Components[0].Data.Text != "keep" {
		t.Error("nil patches must leave the component untouched")
	}
}

func TestReorder_MoveAndRenumber(t *testing.T) {
	tpl := buildTemplate(
		comp("a", TypeHeader, 0, true),
		comp("b", TypeText, 1, true),
		comp("c", TypeFooter, 2, true),
		comp("d", TypeDivider, 3, true),
	)

	// Drag a onto c's position.
	updated := Reorder(tpl, "a", "c")

	ids := make([]string, 0, 4)
	for _, c := range EnabledInOrder(updated) {
		ids = append(ids, c.ID)
	}
	want := []string{"b", "c", "a", "d"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("order after reorder = %v, want %v", ids, want)
		}
	}

	// Orders are renumbered densely from zero.
	for i, c := range EnabledInOrder(updated) {
		if c.Order != i {
			t.Errorf("component %s order = %d, want %d", c.ID, c.Order, i)
		}
	}
}

func TestReorder_DenseAfterSparseOrders(t *testing.T) {
	// Orders can arrive sparse (after removals); reorder renumbers.
	tpl := buildTemplate(
		comp("a", TypeHeader, 0, true),
		comp("b", TypeText, 5, true),
		comp("c", TypeFooter, 9, true),
	)

	updated := Reorder(tpl, "c", "a")

	for i, c := range EnabledInOrder(updated) {
		if c.Order != i {
			t.Errorf("orders must be dense 0..N-1, got %d at %d", c.Order, i)
		}
	}
}

func TestReorder_Noops(t *testing.T) {
	tpl := buildTemplate(
		comp("a", TypeHeader, 0, true),
		comp("b", TypeText, 1, true),
	)

	for _, tc := range []struct {
		name             string
		activeID, overID string
	}{
		{"self drop", "a", "a"},
		{"missing active", "zzz", "a"},
		{"missing over", "a", "zzz"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			updated := Reorder(tpl, tc.activeID, tc.overID)
			ids := make([]string, 0, 2)
			for _, c := range EnabledInOrder(updated) {
				ids = append(ids, c.ID)
			}
			if ids[0] != "a" || ids[1] != "b" {
				t.Errorf("document changed: %v", ids)
			}
		})
	}
}

func TestEnabledInOrder_SortsByOrderNotPosition(t *testing.T) {
	// Slice position deliberately contradicts the order field.
	tpl := buildTemplate(
		comp("last", TypeFooter, 2, true),
		comp("first", TypeHeader, 0, true),
		comp("middle", TypeText, 1, true),
	)

	got := EnabledInOrder(tpl)
	want := []string{"first", "middle", "last"}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("order = %v", got)
		}
	}
}

func TestEnabledInOrder_ExcludesDisabled(t *testing.T) {
	tpl := buildTemplate(
		comp("a", TypeHeader, 0, true),
		comp("b", TypeText, 1, false),
		comp("c", TypeFooter, 2, true),
	)

	got := EnabledInOrder(tpl)
	if len(got) != 2 {
		t.Fatalf("expected 2 enabled components, got %d", len(got))
	}
	for _, c := range got {
		if c.ID == "b" {
			t.Error("disabled component must not appear")
		}
	}

	// But it stays in the document.
	if len(tpl.Style.Components) != 3 {
		t.Error("disabled component should remain in the template")
	}
}

func TestResolveStyle_FallbackChain(t *testing.T) {
	tpl := buildTemplate()
	tpl.Style.Styles.FontSize = "14px"
	tpl.Style.Styles.FontFamily = "monospace"
	tpl.Style.Styles.Color = "#ff0000"

	t.Run("component wins", func(t *testing.T) {
		c := comp("a", TypeText, 0, true)
		c.Styles.FontSize = "18px"
		r := ResolveStyle(c, tpl)
		if r.FontSize != "18px" {
			t.Errorf("FontSize = %q", r.FontSize)
		}
	})

	t.Run("global covers font fields only", func(t *testing.T) {
		c := comp("a", TypeQRCode, 0, true)
		r := ResolveStyle(c, tpl)
		if r.FontSize != "14px" {
			t.Errorf("FontSize = %q, want global", r.FontSize)
		}
		if r.FontFamily != "monospace" {
			t.Errorf("FontFamily = %q, want global", r.FontFamily)
		}
		// Color must not inherit from the global record.
		if r.Color == "#ff0000" {
			t.Error("color must not fall back to global styles")
		}
	})

	t.Run("type default", func(t *testing.T) {
		c := comp("a", TypeHeader, 0, true)
		tplNoGlobal := buildTemplate()
		tplNoGlobal.Style.Styles = Styles{}
		r := ResolveStyle(c, tplNoGlobal)
		if r.FontSize != "16px" {
			t.Errorf("FontSize = %q, want header default", r.FontSize)
		}
		if r.Align != "center" {
			t.Errorf("Align = %q, want header default", r.Align)
		}
		if !r.Bold {
			t.Error("headers default to bold")
		}
	})

	t.Run("align defaults left", func(t *testing.T) {
		c := comp("a", TypeItemList, 0, true)
		r := ResolveStyle(c, tpl)
		if r.Align != "left" {
			t.Errorf("Align = %q, want left", r.Align)
		}
	})
}
