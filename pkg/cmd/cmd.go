package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"go.uber.org/zap"

	tabqa "github.com/app-sre/tabqa/pkg"
	"github.com/app-sre/tabqa/pkg/audit"
	"github.com/app-sre/tabqa/pkg/env"
	"github.com/app-sre/tabqa/pkg/env/db"
	"github.com/app-sre/tabqa/pkg/env/model"
	"github.com/app-sre/tabqa/pkg/env/splunk"
	"github.com/app-sre/tabqa/pkg/env/storage"
	tableenv "github.com/app-sre/tabqa/pkg/env/table"
	"github.com/app-sre/tabqa/pkg/handlers"
	"github.com/app-sre/tabqa/pkg/inference"
	"github.com/app-sre/tabqa/pkg/middleware"
	"github.com/app-sre/tabqa/pkg/query"
	"github.com/app-sre/tabqa/pkg/summary"
	"github.com/app-sre/tabqa/pkg/table"
	"github.com/app-sre/tabqa/pkg/version"
)

const (
	defaultPort = 8080

	readTimeout       = 1 * time.Minute
	readHeaderTimeout = 20 * time.Second
	writeTimeout      = 2 * time.Minute
)

func Run(logger *zap.SugaredLogger) error {
	ctx := context.Background()

	logger.Infof("Starting tabqa version: %s", version.Version())
	logger.Infof("Production: %t", tabqa.Production())

	cfg, err := newConfig(ctx, logger)
	if err != nil {
		return err
	}
	if cfg.DB != nil {
		defer func() { _ = cfg.DB.Close() }()
	}

	port, err := serverPort()
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(port)),
		Handler:           newRouter(cfg),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}

	logger.Infof("HTTP server starting on port: %d", port)
	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("unable to start HTTP server: %w", err)
	}

	return nil
}

func serverPort() (int, error) {
	s := os.Getenv("PORT")
	if s == "" {
		return defaultPort, nil
	}

	port, err := strconv.Atoi(s)
	if err != nil || port <= 0 {
		return 0, &env.TypeError{Name: "PORT"}
	}
	return port, nil
}

func newConfig(ctx context.Context, logger *zap.SugaredLogger) (*tabqa.Config, error) {
	te := tableenv.NewTableEnv()
	if err := te.Populate(); err != nil {
		return nil, fmt.Errorf("unable to configure table source: %w", err)
	}

	cfg := &tabqa.Config{Logger: logger}

	switch te.Source {
	case tableenv.SourceFile:
		cfg.Source = &table.FileSource{Path: te.FilePath}
		logger.Infof("Reading table from file: %s", te.FilePath)
	case tableenv.SourceS3:
		se := storage.NewStorageEnv()
		if err := se.Populate(); err != nil {
			return nil, fmt.Errorf("unable to configure object storage: %w", err)
		}

		source, err := table.NewS3Source(se, te.Bucket, te.Object)
		if err != nil {
			return nil, err
		}
		cfg.Source = source
		logger.Infof("Reading table from object: %s/%s (endpoint: %s)", te.Bucket, te.Object, se.Endpoint)
	case tableenv.SourceDatabase:
		dbe := db.NewDBEnv()
		if err := dbe.Populate(); err != nil {
			return nil, fmt.Errorf("unable to configure database: %w", err)
		}

		conn, err := sql.Open(dbe.Driver.Name(), dbe.ConnectionDSN())
		if err != nil {
			return nil, fmt.Errorf("unable to open database connection: %w", err)
		}
		cfg.DB = conn
		cfg.Source = &table.DBSource{DB: conn, Query: dbe.TableQuery}
		logger.Infof("Using database driver: %s", dbe.Driver)
		logger.Debugf("Connected to database host: %s (port: %d)", dbe.Host, dbe.Port)
	}

	me := model.NewModelEnv()
	if err := me.Populate(); err != nil {
		return nil, fmt.Errorf("unable to configure models: %w", err)
	}
	logger.Infof("Using table question answering model: %s", me.TapasURL)

	service := &query.Service{
		Source: cfg.Source,
		Model:  inference.NewTapasClient(me.TapasURL, me.HuggingFaceToken),
		Logger: logger,
	}

	switch me.SummaryProvider {
	case model.ProviderGemini:
		g, err := summary.NewGemini(ctx, me.SummaryAPIKey, me.SummaryModel, me.SummaryBaseURL)
		if err != nil {
			return nil, err
		}
		service.Summarizer = g
	case model.ProviderOpenAI:
		service.Summarizer = summary.NewOpenAI(me.SummaryAPIKey, me.SummaryModel, me.SummaryBaseURL)
	}
	logger.Infof("Using summary provider: %s (model: %s)", me.SummaryProvider, me.SummaryModel)

	cfg.Service = service
	cfg.LoggerAudit = audit.NewLoggerAudit(logger)

	if splunk.Configured() {
		se := splunk.NewSplunkEnv()
		if err := se.Populate(); err != nil {
			return nil, fmt.Errorf("unable to configure Splunk: %w", err)
		}
		logger.Infof("Sending audit to Splunk endpoint: %s", se.Endpoint)

		cfg.SplunkAudit = audit.NewSplunkAudit(se)
	}

	return cfg, nil
}

func newRouter(cfg *tabqa.Config) http.Handler {
	// Temp workaround for easy to access io.Writer.
	defaultLogOutput := log.Default().Writer()

	healthLogOutput := io.Discard
	if !tabqa.Production() {
		healthLogOutput = defaultLogOutput
	}
	logHandler := gorillaHandlers.LoggingHandler

	queryChain := alice.New(
		alice.Constructor(middleware.Recovery(cfg)),
		alice.Constructor(middleware.Timeout(tabqa.RequestTimeout())),
		alice.Constructor(middleware.Audit(cfg)),
	).Then(handlers.Query(cfg))

	pageChain := alice.New(
		alice.Constructor(middleware.Recovery(cfg)),
		alice.Constructor(middleware.Timeout(tabqa.RequestTimeout())),
	)

	r := mux.NewRouter()
	r.Handle("/healthcheck", logHandler(healthLogOutput, handlers.Healthcheck(cfg))).Methods("GET")
	r.Handle("/query", logHandler(defaultLogOutput, queryChain)).Methods("POST")
	r.Handle("/", logHandler(defaultLogOutput, pageChain.Then(handlers.Page(cfg)))).Methods("GET")
	r.Handle("/", logHandler(defaultLogOutput, pageChain.Append(
		alice.Constructor(middleware.Audit(cfg)),
	).Then(handlers.Page(cfg)))).Methods("POST")

	return r
}
