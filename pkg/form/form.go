// Package form implements the query form: it submits a question, then writes
// the answer, its cells and an optional summary and chart into a Document.
package form

import (
	"context"
	"fmt"

	"github.com/app-sre/tabqa/pkg/models"
)

// Element ids a Document is expected to provide.
const (
	IDQueryForm   = "queryForm"
	IDQuery       = "query"
	IDAnswer      = "answer"
	IDCoordinates = "coordinates"
	IDCells       = "cells"
	IDAggregator  = "aggregator"
	IDResponse    = "response"
	IDSummary     = "summary"
	IDLoading     = "loading"
	IDChart       = "energyChart"
)

type Querier interface {
	Query(ctx context.Context, query string) (*models.QueryResponse, error)
}

// Document is the rendering target. Writes to an unknown id fail with
// MissingElementError.
type Document interface {
	SetText(id, text string) error
	SetVisible(id string, visible bool) error
	Alert(message string)
}

type MissingElementError struct {
	ID string
}

func (e *MissingElementError) Error() string {
	return fmt.Sprintf("element not found: %s", e.ID)
}

type Chart interface {
	Destroy()
}

// Charts creates a chart drawn on the element with the given id.
type Charts interface {
	NewChart(id string, cfg ChartConfig) (Chart, error)
}

type ChartConfig struct {
	Labels      []string
	Datasets    []Dataset
	BeginAtZero bool
}

type Dataset struct {
	Label           string
	Data            []float64
	BackgroundColor string
	BorderColor     string
	BorderWidth     int
}
