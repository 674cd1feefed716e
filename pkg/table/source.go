package table

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/app-sre/tabqa/pkg/env/storage"
)

// Source loads the current table. Sources are read on every query so that
// updates to the underlying data are picked up without a restart.
type Source interface {
	Load(ctx context.Context) (*Table, error)
}

type FileSource struct {
	Path string
}

var _ Source = (*FileSource)(nil)

func (s *FileSource) Load(_ context.Context) (*Table, error) {
	file, err := os.Open(filepath.Clean(s.Path))
	if err != nil {
		return nil, fmt.Errorf("unable to read table file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return ParseCSV(file)
}

type DBSource struct {
	DB    *sql.DB
	Query string
}

var _ Source = (*DBSource)(nil)

func (s *DBSource) Load(ctx context.Context) (*Table, error) {
	rows, err := s.DB.QueryContext(ctx, s.Query)
	if err != nil {
		return nil, fmt.Errorf("unable to query table: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return FromRows(rows)
}

// S3Source reads a CSV object from S3-compatible storage.
type S3Source struct {
	Bucket string
	Object string

	client *minio.Client
}

var _ Source = (*S3Source)(nil)

func NewS3Source(se *storage.Env, bucket, object string) (*S3Source, error) {
	client, err := minio.New(se.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(se.AccessKey, se.SecretKey, ""),
		Secure: se.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create object storage client: %w", err)
	}

	return &S3Source{Bucket: bucket, Object: object, client: client}, nil
}

func (s *S3Source) Load(ctx context.Context) (*Table, error) {
	object, err := s.client.GetObject(ctx, s.Bucket, s.Object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("unable to get table object: %w", err)
	}
	defer func() { _ = object.Close() }()

	// GetObject is lazy; Stat surfaces missing objects before parsing.
	if _, err := object.Stat(); err != nil {
		return nil, fmt.Errorf("unable to get table object %s/%s: %w", s.Bucket, s.Object, err)
	}

	return ParseCSV(object)
}
