package table

import (
	"os"

	"github.com/app-sre/tabqa/pkg/env"
)

const (
	SourceFile     = "file"
	SourceS3       = "s3"
	SourceDatabase = "database"

	defaultFilePath = "data-series.csv"
)

type Env struct {
	Source   string
	FilePath string
	Bucket   string
	Object   string
}

func NewTableEnv() *Env {
	return &Env{}
}

func (t *Env) Populate() error {
	t.Source = SourceFile
	if s := os.Getenv("TABLE_SOURCE"); s != "" {
		t.Source = s
	}

	switch t.Source {
	case SourceFile:
		t.FilePath = defaultFilePath
		if s := os.Getenv("TABLE_FILE_PATH"); s != "" {
			t.FilePath = s
		}
	case SourceS3:
		bucket := os.Getenv("TABLE_BUCKET")
		if bucket == "" {
			return &env.Error{Name: "TABLE_BUCKET"}
		}
		t.Bucket = bucket

		object := os.Getenv("TABLE_OBJECT")
		if object == "" {
			return &env.Error{Name: "TABLE_OBJECT"}
		}
		t.Object = object
	case SourceDatabase:
		// Connection settings live in the database environment.
	default:
		return &env.TypeError{Name: "TABLE_SOURCE"}
	}

	return nil
}
