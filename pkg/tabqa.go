package tabqa

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/app-sre/tabqa/pkg/audit"
	"github.com/app-sre/tabqa/pkg/query"
	"github.com/app-sre/tabqa/pkg/table"
)

const defaultRequestTimeout = 2 * time.Minute

type Config struct {
	// DB is only set when the table is read from a database.
	DB          *sql.DB
	Source      table.Source
	Service     *query.Service
	LoggerAudit *audit.LoggerAudit
	// SplunkAudit is nil when Splunk auditing is not configured.
	SplunkAudit *audit.SplunkAudit
	Logger      *zap.SugaredLogger
}

func Production() bool {
	return os.Getenv("ENVIRONMENT") == "production"
}

func RequestTimeout() time.Duration {
	if s := os.Getenv("REQUEST_TIMEOUT"); s != "" {
		if d, err := parseDuration(s); err == nil {
			return d
		}
	}
	return defaultRequestTimeout
}

// parseDuration accepts Go durations and bare integers, which are seconds.
// Negative values are made positive.
func parseDuration(s string) (time.Duration, error) {
	var d time.Duration

	if n, err := strconv.Atoi(s); err == nil {
		d = time.Duration(n) * time.Second
	} else {
		d, err = time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("unable to parse duration: %w", err)
		}
	}

	if d < 0 {
		d = -d
	}
	return d, nil
}
