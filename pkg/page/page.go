// Package page renders the query form as an HTML document.
package page

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/app-sre/tabqa/pkg/form"
)

//go:embed templates/*.tmpl
var templates embed.FS

var pageTemplate = template.Must(template.ParseFS(templates, "templates/page.html.tmpl"))

var elementIDs = []string{
	form.IDQueryForm,
	form.IDQuery,
	form.IDAnswer,
	form.IDCoordinates,
	form.IDCells,
	form.IDAggregator,
	form.IDResponse,
	form.IDSummary,
	form.IDLoading,
	form.IDChart,
}

type Element struct {
	Text    string
	Visible bool
}

// Page is an in-memory document holding the form elements by id. It is also
// the chart factory for its energyChart element.
type Page struct {
	Query  string
	Alerts []string

	elements map[string]*Element
	chart    *BarChart
}

var (
	_ form.Document = (*Page)(nil)
	_ form.Charts   = (*Page)(nil)
)

// New returns a page with the response container and loading indicator hidden.
func New() *Page {
	p := &Page{elements: make(map[string]*Element, len(elementIDs))}
	for _, id := range elementIDs {
		p.elements[id] = &Element{Visible: true}
	}
	p.elements[form.IDResponse].Visible = false
	p.elements[form.IDLoading].Visible = false

	return p
}

func (p *Page) SetText(id, text string) error {
	e, ok := p.elements[id]
	if !ok {
		return &form.MissingElementError{ID: id}
	}
	e.Text = text
	return nil
}

func (p *Page) SetVisible(id string, visible bool) error {
	e, ok := p.elements[id]
	if !ok {
		return &form.MissingElementError{ID: id}
	}
	e.Visible = visible
	return nil
}

func (p *Page) Alert(message string) {
	p.Alerts = append(p.Alerts, message)
}

func (p *Page) Text(id string) string {
	if e, ok := p.elements[id]; ok {
		return e.Text
	}
	return ""
}

func (p *Page) Visible(id string) bool {
	if e, ok := p.elements[id]; ok {
		return e.Visible
	}
	return false
}

// Chart returns the chart currently drawn on the page, or nil.
func (p *Page) Chart() *BarChart {
	return p.chart
}

func (p *Page) NewChart(id string, cfg form.ChartConfig) (form.Chart, error) {
	if _, ok := p.elements[id]; !ok {
		return nil, &form.MissingElementError{ID: id}
	}
	if p.chart != nil {
		return nil, fmt.Errorf("element %s already holds a chart", id)
	}

	p.chart = newBarChart(p, cfg)
	return p.chart, nil
}

type view struct {
	*Page
}

func (v view) El(id string) *Element {
	return v.elements[id]
}

func (v view) SVG() template.HTML {
	if v.chart == nil {
		return ""
	}
	return v.chart.SVG()
}

func (p *Page) Render(w io.Writer) error {
	if err := pageTemplate.Execute(w, view{p}); err != nil {
		return fmt.Errorf("unable to render page: %w", err)
	}
	return nil
}
