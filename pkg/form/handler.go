package form

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/app-sre/tabqa/pkg/client"
	"github.com/app-sre/tabqa/pkg/models"
	"github.com/app-sre/tabqa/pkg/summary"
)

// AnswerFormat selects how the model answer is displayed.
type AnswerFormat int

const (
	// AnswerRaw shows the answer as returned, e.g. "SUM > 10, 12".
	AnswerRaw AnswerFormat = iota
	// AnswerAfterMarker shows the trimmed text after the first '>', e.g. "10, 12".
	AnswerAfterMarker
)

const (
	chartLabel           = "Cell values"
	chartBackgroundColor = "rgba(75, 192, 192, 0.2)"
	chartBorderColor     = "rgba(75, 192, 192, 1)"
	chartBorderWidth     = 1
)

type field struct {
	id   string
	text string
}

var ErrNoAnswerMarker = errors.New("answer has no '>' marker")

type Handler struct {
	querier Querier
	doc     Document
	charts  Charts
	format  AnswerFormat
	summary bool
	loading bool

	mu    sync.Mutex
	chart Chart
}

type Option func(*Handler)

func WithAnswerFormat(format AnswerFormat) Option {
	return func(h *Handler) {
		h.format = format
	}
}

func WithSummary(enabled bool) Option {
	return func(h *Handler) {
		h.summary = enabled
	}
}

func WithLoading(enabled bool) Option {
	return func(h *Handler) {
		h.loading = enabled
	}
}

// WithCharts enables the bar chart; without it no chart is drawn.
func WithCharts(charts Charts) Option {
	return func(h *Handler) {
		h.charts = charts
	}
}

// New returns a handler with the summary and loading indicator enabled and
// the raw answer format.
func New(querier Querier, doc Document, options ...Option) *Handler {
	h := &Handler{
		querier: querier,
		doc:     doc,
		format:  AnswerRaw,
		summary: true,
		loading: true,
	}

	for _, option := range options {
		option(h)
	}

	return h
}

// Submit posts the query and renders the reply. A rejected request is shown
// as an alert and is not an error; any other failure is returned and nothing
// is rendered.
func (h *Handler) Submit(ctx context.Context, query string) error {
	if h.loading {
		if err := h.doc.SetVisible(IDLoading, true); err != nil {
			return err
		}
	}

	resp, err := h.querier.Query(ctx, query)

	if h.loading {
		if verr := h.doc.SetVisible(IDLoading, false); verr != nil && err == nil {
			return verr
		}
	}

	if err != nil {
		var rerr *client.RequestError
		if errors.As(err, &rerr) {
			h.doc.Alert(fmt.Sprintf("Error: %s", rerr.Body))
			return nil
		}
		return err
	}

	return h.render(resp)
}

func (h *Handler) render(resp *models.QueryResponse) error {
	answer, err := h.formatAnswer(resp.Answer)
	if err != nil {
		return err
	}

	coordinates, err := json.Marshal(resp.Coordinates)
	if err != nil {
		return fmt.Errorf("unable to marshal coordinates: %w", err)
	}

	var summaryText string
	if h.summary && resp.Summary != "" {
		summaryText, err = summary.Text(resp.Summary)
		if err != nil {
			return err
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	texts := []field{
		{IDAnswer, answer},
		{IDCoordinates, string(coordinates)},
		{IDCells, strings.Join(resp.Cells, ", ")},
		{IDAggregator, resp.Aggregator},
	}
	if h.summary {
		texts = append(texts, field{IDSummary, summaryText})
	}

	for _, t := range texts {
		if err := h.doc.SetText(t.id, t.text); err != nil {
			return err
		}
	}
	if err := h.doc.SetVisible(IDResponse, true); err != nil {
		return err
	}

	if h.charts == nil {
		return nil
	}
	return h.redraw(resp)
}

// redraw replaces the live chart. Callers hold h.mu.
func (h *Handler) redraw(resp *models.QueryResponse) error {
	if h.chart != nil {
		h.chart.Destroy()
		h.chart = nil
	}

	chart, err := h.charts.NewChart(IDChart, NewChartConfig(resp))
	if err != nil {
		return fmt.Errorf("unable to create chart: %w", err)
	}
	h.chart = chart

	return nil
}

func (h *Handler) formatAnswer(answer string) (string, error) {
	if h.format == AnswerRaw {
		return answer, nil
	}

	_, after, found := strings.Cut(answer, ">")
	if !found {
		return "", fmt.Errorf("%w: %q", ErrNoAnswerMarker, answer)
	}
	return strings.TrimSpace(after), nil
}

// NewChartConfig builds a bar chart of the cells, labelled by coordinates.
func NewChartConfig(resp *models.QueryResponse) ChartConfig {
	labels := make([]string, 0, len(resp.Coordinates))
	for _, c := range resp.Coordinates {
		b, _ := json.Marshal(c)
		labels = append(labels, string(b))
	}

	data := make([]float64, 0, len(resp.Cells))
	for _, cell := range resp.Cells {
		data = append(data, ParseNumber(cell))
	}

	return ChartConfig{
		Labels: labels,
		Datasets: []Dataset{{
			Label:           chartLabel,
			Data:            data,
			BackgroundColor: chartBackgroundColor,
			BorderColor:     chartBorderColor,
			BorderWidth:     chartBorderWidth,
		}},
		BeginAtZero: true,
	}
}

// ParseNumber coerces a cell to a number: blank text is zero and anything
// that is not a number is NaN.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return f
}
