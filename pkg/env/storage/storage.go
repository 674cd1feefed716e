package storage

import (
	"os"
	"strconv"

	"github.com/app-sre/tabqa/pkg/env"
)

type Env struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

func NewStorageEnv() *Env {
	return &Env{}
}

func (s *Env) Populate() error {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		return &env.Error{Name: "MINIO_ENDPOINT"}
	}
	s.Endpoint = endpoint

	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	if accessKey == "" {
		return &env.Error{Name: "MINIO_ACCESS_KEY"}
	}
	s.AccessKey = accessKey

	secretKey := os.Getenv("MINIO_SECRET_KEY")
	if secretKey == "" {
		return &env.Error{Name: "MINIO_SECRET_KEY"}
	}
	s.SecretKey = secretKey

	if v := os.Getenv("MINIO_USE_SSL"); v != "" {
		useSSL, err := strconv.ParseBool(v)
		if err != nil {
			return &env.TypeError{Name: "MINIO_USE_SSL"}
		}
		s.UseSSL = useSSL
	}

	return nil
}
