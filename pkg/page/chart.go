package page

import (
	"fmt"
	"html/template"
	"math"
	"strings"

	"github.com/app-sre/tabqa/pkg/form"
)

const (
	chartWidth   = 640.0
	chartHeight  = 320.0
	chartMargin  = 40.0
	chartBarGap  = 0.2
	chartTickNum = 4
)

type BarChart struct {
	Config form.ChartConfig

	page      *Page
	destroyed bool
}

var _ form.Chart = (*BarChart)(nil)

func newBarChart(p *Page, cfg form.ChartConfig) *BarChart {
	return &BarChart{Config: cfg, page: p}
}

// Destroy detaches the chart from its page. It is safe to call twice.
func (c *BarChart) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	if c.page != nil && c.page.chart == c {
		c.page.chart = nil
	}
}

func (c *BarChart) Destroyed() bool {
	return c.destroyed
}

// SVG draws the first dataset as bars on a zero-based axis. Values that are
// not finite or below zero are drawn as empty bars.
func (c *BarChart) SVG() template.HTML {
	var b strings.Builder

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`,
		chartWidth, chartHeight, chartWidth, chartHeight)

	plotW := chartWidth - 2*chartMargin
	plotH := chartHeight - 2*chartMargin
	baseY := chartHeight - chartMargin

	fmt.Fprintf(&b, `<line x1="%g" y1="%g" x2="%g" y2="%g" stroke="#666"/>`, chartMargin, baseY, chartWidth-chartMargin, baseY)

	if len(c.Config.Datasets) == 0 {
		b.WriteString(`</svg>`)
		return template.HTML(b.String())
	}
	ds := c.Config.Datasets[0]

	top := 0.0
	for _, v := range ds.Data {
		if !math.IsNaN(v) && !math.IsInf(v, 0) && v > top {
			top = v
		}
	}
	if top == 0 {
		top = 1
	}

	for i := 0; i <= chartTickNum; i++ {
		v := top * float64(i) / chartTickNum
		y := baseY - plotH*float64(i)/chartTickNum
		fmt.Fprintf(&b, `<text x="%g" y="%g" font-size="10" text-anchor="end">%s</text>`,
			chartMargin-4, y+3, template.HTMLEscapeString(formatValue(v)))
	}

	n := len(ds.Data)
	if n > 0 {
		slot := plotW / float64(n)
		width := slot * (1 - chartBarGap)
		for i, v := range ds.Data {
			h := 0.0
			if !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0 {
				h = plotH * v / top
			}
			x := chartMargin + slot*float64(i) + slot*chartBarGap/2
			fmt.Fprintf(&b, `<rect x="%g" y="%g" width="%g" height="%g" fill="%s" stroke="%s" stroke-width="%d"><title>%s</title></rect>`,
				x, baseY-h, width, h,
				template.HTMLEscapeString(ds.BackgroundColor),
				template.HTMLEscapeString(ds.BorderColor),
				ds.BorderWidth,
				template.HTMLEscapeString(formatValue(v)))

			if i < len(c.Config.Labels) {
				fmt.Fprintf(&b, `<text x="%g" y="%g" font-size="10" text-anchor="middle">%s</text>`,
					x+width/2, baseY+14, template.HTMLEscapeString(c.Config.Labels[i]))
			}
		}
	}

	fmt.Fprintf(&b, `<text x="%g" y="%g" font-size="12" text-anchor="middle">%s</text>`,
		chartWidth/2, chartMargin/2, template.HTMLEscapeString(ds.Label))
	b.WriteString(`</svg>`)

	return template.HTML(b.String())
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%g", v)
}
