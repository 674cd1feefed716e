package main

import (
	"log"
	"os"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v4/stdlib"
	"go.uber.org/zap"

	"github.com/app-sre/tabqa/pkg/cmd"
)

func main() {
	l, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Unable to initialize Zap logger: %s", err)
	}
	defer func() { _ = l.Sync() }()

	logger := l.Sugar()
	if err := cmd.NewCommand(logger).Execute(); err != nil {
		logger.Errorf("Unable to run tabqa: %s", err)
		_ = l.Sync()
		os.Exit(1)
	}
}
