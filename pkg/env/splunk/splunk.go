package splunk

import (
	"os"
	"strconv"

	"github.com/app-sre/tabqa/pkg/env"
)

type Env struct {
	Index     string
	Endpoint  string
	Token     string
	Host      string
	Namespace string
	Pod       string

	// InsecureSkipVerify disables certificate checks for self-signed
	// collectors.
	InsecureSkipVerify bool
}

func NewSplunkEnv() *Env {
	return &Env{}
}

// Configured reports whether Splunk auditing was requested at all.
func Configured() bool {
	return os.Getenv("SPLUNK_ENDPOINT") != ""
}

func (s *Env) Populate() error {
	fields := []struct {
		name  string
		value *string
	}{
		{"SPLUNK_ENDPOINT", &s.Endpoint},
		{"SPLUNK_INDEX", &s.Index},
		{"SPLUNK_TOKEN", &s.Token},
		{"HOST", &s.Host},
		{"NAMESPACE", &s.Namespace},
		{"POD_NAME", &s.Pod},
	}

	for _, f := range fields {
		v := os.Getenv(f.name)
		if v == "" {
			return &env.Error{Name: f.name}
		}
		*f.value = v
	}

	if v := os.Getenv("SPLUNK_INSECURE_SKIP_VERIFY"); v != "" {
		skip, err := strconv.ParseBool(v)
		if err != nil {
			return &env.TypeError{Name: "SPLUNK_INSECURE_SKIP_VERIFY"}
		}
		s.InsecureSkipVerify = skip
	}

	return nil
}
