// Package export renders checklist records as shareable documents: the
// plain-text ".doc" sheet and a printable HTML page. Renderers only read the
// record; every count comes from the aggregate package.
package export

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	"regexp"
	"strings"
	texttemplate "text/template"

	"github.com/dmitrijs2005/fleetcheck/internal/aggregate"
	"github.com/dmitrijs2005/fleetcheck/internal/models"
)

//go:embed templates/*.tmpl
var templates embed.FS

const unsigned = "Não assinada"

// StatusLabel is the upper-case verdict printed next to an item.
func StatusLabel(s models.Status) string {
	switch s {
	case models.StatusOK:
		return "OK"
	case models.StatusRegular:
		return "REGULAR"
	case models.StatusBad:
		return "RUIM"
	}
	return "N/A"
}

func signature(s string) string {
	if strings.TrimSpace(s) == "" {
		return unsigned
	}
	return s
}

func statusColor(s models.Status) string {
	return aggregate.StatusGlyph(s).Color()
}

var (
	textTmpl = texttemplate.Must(texttemplate.New("checklist.txt.tmpl").Funcs(texttemplate.FuncMap{
		"upper":     strings.ToUpper,
		"label":     StatusLabel,
		"signature": signature,
		"notOk":     aggregate.RecordNotOkCount,
	}).ParseFS(templates, "templates/checklist.txt.tmpl"))

	htmlTmpl = htmltemplate.Must(htmltemplate.New("checklist.html.tmpl").Funcs(htmltemplate.FuncMap{
		"upper": strings.ToUpper,
		"label": StatusLabel,
		"color": statusColor,
	}).ParseFS(templates, "templates/checklist.html.tmpl"))
)

// Text writes the plain-text document for c.
func Text(w io.Writer, c models.Checklist) error {
	if err := textTmpl.Execute(w, c); err != nil {
		return fmt.Errorf("render text document: %w", err)
	}
	return nil
}

type htmlSection struct {
	models.Section
	NotOk int
	Total int
}

type htmlView struct {
	Record     models.Checklist
	Sections   []htmlSection
	NotOk      int
	IssueColor string
}

// HTML writes the printable HTML document for c. User-entered text is
// escaped.
func HTML(w io.Writer, c models.Checklist) error {
	view := htmlView{Record: c, NotOk: aggregate.RecordNotOkCount(c)}
	for i, sum := range aggregate.Summaries(c) {
		view.Sections = append(view.Sections, htmlSection{
			Section: c.Sections[i],
			NotOk:   sum.NotOkCount,
			Total:   sum.TotalItems,
		})
	}
	if view.NotOk > 0 {
		view.IssueColor = aggregate.GlyphFail.Color()
	} else {
		view.IssueColor = aggregate.GlyphPass.Color()
	}

	if err := htmlTmpl.Execute(w, view); err != nil {
		return fmt.Errorf("render html document: %w", err)
	}
	return nil
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// FileName returns "Checklist_<plate>_<date>.<ext>" with every
// non-alphanumeric plate character replaced by '_'.
func FileName(c models.Checklist, ext string) string {
	return fmt.Sprintf("Checklist_%s_%s.%s", nonAlnum.ReplaceAllString(c.Plate, "_"), c.Date, strings.TrimPrefix(ext, "."))
}
