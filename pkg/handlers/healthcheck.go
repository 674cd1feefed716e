package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/etherlabsio/healthcheck/v2"

	tabqa "github.com/app-sre/tabqa/pkg"
)

const healthcheckTimeout = 5 * time.Second

func Healthcheck(cfg *tabqa.Config) http.Handler {
	options := []healthcheck.Option{
		healthcheck.WithTimeout(healthcheckTimeout),
		healthcheck.WithChecker(
			"table", healthcheck.CheckerFunc(
				func(ctx context.Context) error {
					if _, err := cfg.Source.Load(ctx); err != nil {
						cfg.Logger.Errorf("Unable to load table data: %s", err)
						return errors.New("Unable to load table data")
					}
					return nil
				},
			),
		),
	}

	if cfg.DB != nil {
		options = append(options, healthcheck.WithChecker(
			"database", healthcheck.CheckerFunc(
				func(ctx context.Context) error {
					if err := cfg.DB.PingContext(ctx); err != nil {
						cfg.Logger.Errorf("Unable to connect to the database: %s", err)
						return errors.New("Unable to connect to the database")
					}
					return nil
				},
			),
		))
	}

	return healthcheck.Handler(options...)
}
