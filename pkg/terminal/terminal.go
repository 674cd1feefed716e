// Package terminal renders the query form on a terminal.
package terminal

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/app-sre/tabqa/pkg/form"
)

const barWidth = 40

var (
	labelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2196F3"))
	alertStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e53935"))
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#4db6ac"))
	loadingStyle = lipgloss.NewStyle().Faint(true)
)

var labels = map[string]string{
	form.IDAnswer:      "Answer",
	form.IDCoordinates: "Coordinates",
	form.IDCells:       "Cells",
	form.IDAggregator:  "Aggregator",
	form.IDSummary:     "Summary",
}

var order = []string{form.IDAnswer, form.IDCoordinates, form.IDCells, form.IDAggregator, form.IDSummary}

// Document buffers element text and prints it once the response container
// is revealed. Alerts and the loading indicator print immediately.
type Document struct {
	out   io.Writer
	texts map[string]string
	chart *Chart
}

var (
	_ form.Document = (*Document)(nil)
	_ form.Charts   = (*Document)(nil)
)

func New(out io.Writer) *Document {
	return &Document{out: out, texts: make(map[string]string)}
}

func (d *Document) SetText(id, text string) error {
	if _, ok := labels[id]; !ok {
		return &form.MissingElementError{ID: id}
	}
	d.texts[id] = text
	return nil
}

func (d *Document) SetVisible(id string, visible bool) error {
	switch id {
	case form.IDLoading:
		if visible {
			fmt.Fprintln(d.out, loadingStyle.Render("Loading..."))
		}
	case form.IDResponse:
		if visible {
			d.printResponse()
		}
	default:
		return &form.MissingElementError{ID: id}
	}
	return nil
}

func (d *Document) Alert(message string) {
	fmt.Fprintln(d.out, alertStyle.Render(message))
}

func (d *Document) printResponse() {
	for _, id := range order {
		text, ok := d.texts[id]
		if !ok {
			continue
		}
		fmt.Fprintf(d.out, "%s %s\n", labelStyle.Render(labels[id]+":"), text)
	}
}

func (d *Document) NewChart(id string, cfg form.ChartConfig) (form.Chart, error) {
	if id != form.IDChart {
		return nil, &form.MissingElementError{ID: id}
	}

	d.chart = &Chart{doc: d, Config: cfg}
	d.chart.print()

	return d.chart, nil
}

type Chart struct {
	Config form.ChartConfig

	doc *Document
}

var _ form.Chart = (*Chart)(nil)

func (c *Chart) Destroy() {
	if c.doc != nil && c.doc.chart == c {
		c.doc.chart = nil
	}
}

// print draws one horizontal bar per value, scaled to the largest value.
func (c *Chart) print() {
	if len(c.Config.Datasets) == 0 {
		return
	}
	ds := c.Config.Datasets[0]

	top := 0.0
	for _, v := range ds.Data {
		if finite(v) && v > top {
			top = v
		}
	}

	width := 0
	for _, l := range c.Config.Labels {
		width = max(width, len(l))
	}

	fmt.Fprintln(c.doc.out, labelStyle.Render(ds.Label+":"))
	for i, v := range ds.Data {
		label := ""
		if i < len(c.Config.Labels) {
			label = c.Config.Labels[i]
		}

		n := 0
		if top > 0 && finite(v) && v > 0 {
			n = int(math.Round(barWidth * v / top))
		}

		fmt.Fprintf(c.doc.out, "%-*s %s %g\n", width, label, barStyle.Render(strings.Repeat("█", n)), v)
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
