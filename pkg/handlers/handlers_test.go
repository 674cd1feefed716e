package handlers

import (
	"context"
	"strings"

	"github.com/app-sre/tabqa/pkg/models"
	"github.com/app-sre/tabqa/pkg/table"
)

type sourceFunc func(context.Context) (*table.Table, error)

func (f sourceFunc) Load(ctx context.Context) (*table.Table, error) { return f(ctx) }

type answererFunc func(context.Context, *table.Table, string) (*models.QueryResponse, error)

func (f answererFunc) Answer(ctx context.Context, t *table.Table, q string) (*models.QueryResponse, error) {
	return f(ctx, t, q)
}

func energyTable(context.Context) (*table.Table, error) {
	return table.ParseCSV(strings.NewReader("year,output\n2020,10\n2021,12\n"))
}

func sumAnswer(context.Context, *table.Table, string) (*models.QueryResponse, error) {
	return &models.QueryResponse{
		Answer:      "SUM > 10, 12",
		Coordinates: [][]int{{0, 1}, {1, 1}},
		Cells:       []string{"10", "12"},
		Aggregator:  "SUM",
	}, nil
}
