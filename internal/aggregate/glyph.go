package aggregate

import "github.com/dmitrijs2005/fleetcheck/internal/models"

// Glyph is the display symbol class of a status.
type Glyph int

const (
	GlyphUnknown Glyph = iota
	GlyphPass
	GlyphWarn
	GlyphFail
)

var glyphs = [...]struct {
	name   string
	symbol string
	color  string
}{
	GlyphUnknown: {"unknown", "❓", "#999999"},
	GlyphPass:    {"pass", "✅", "#10b981"},
	GlyphWarn:    {"warn", "⚠️", "#f59e0b"},
	GlyphFail:    {"fail", "❌", "#ef4444"},
}

func StatusGlyph(s models.Status) Glyph {
	switch s {
	case models.StatusOK:
		return GlyphPass
	case models.StatusRegular:
		return GlyphWarn
	case models.StatusBad:
		return GlyphFail
	}
	return GlyphUnknown
}

func (g Glyph) valid() bool { return g >= GlyphUnknown && g <= GlyphFail }

func (g Glyph) String() string {
	if !g.valid() {
		g = GlyphUnknown
	}
	return glyphs[g].name
}

// Symbol is the emoji shown next to an item.
func (g Glyph) Symbol() string {
	if !g.valid() {
		g = GlyphUnknown
	}
	return glyphs[g].symbol
}

// Color is the hex display colour for the glyph.
func (g Glyph) Color() string {
	if !g.valid() {
		g = GlyphUnknown
	}
	return glyphs[g].color
}

// Severity ranks statuses: unset < ok < regular < bad.
func Severity(s models.Status) int {
	switch s {
	case models.StatusOK:
		return 1
	case models.StatusRegular:
		return 2
	case models.StatusBad:
		return 3
	}
	return 0
}

// CompareSeverity returns -1, 0 or +1 as a is less, equally or more severe
// than b.
func CompareSeverity(a, b models.Status) int {
	sa, sb := Severity(a), Severity(b)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	}
	return 0
}

// Worst returns the most severe status among a section's items.
func Worst(s models.Section) models.Status {
	worst := models.StatusUnset
	for _, it := range s.Items {
		if CompareSeverity(it.Status, worst) > 0 {
			worst = it.Status
		}
	}
	return worst
}
