package audit

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/app-sre/tabqa/pkg/env/splunk"
	"github.com/app-sre/tabqa/pkg/version"
)

func TestNewSplunkAudit(t *testing.T) {
	t.Parallel()

	cases := []struct {
		description string
		given       []Option
		defaults    bool
	}{
		{
			"using default HTTP client set internally",
			[]Option{},
			true,
		},
		{
			"using custom HTTP client",
			[]Option{WithHTTPClient(http.DefaultClient)},
			false,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			actual := NewSplunkAudit(&splunk.Env{Index: "test"}, tc.given...)

			require.NotNil(t, actual)
			assert.Equal(t, &splunk.Env{Index: "test"}, actual.SplunkEnv)

			if tc.defaults {
				assert.NotNil(t, actual.client.Transport)
			} else {
				assert.Nil(t, actual.client.Transport)
			}
		})
	}
}

func TestSplunkAuditWrite(t *testing.T) {
	t.Parallel()

	headers := func(token string) http.Header {
		return http.Header{
			"Accept":          []string{"application/json"},
			"Accept-Encoding": []string{"gzip"},
			"Authorization":   []string{token},
			"Content-Type":    []string{"application/json; charset=utf-8"},
			"User-Agent":      []string{fmt.Sprintf("tabqa/%s", version.Version())},
		}
	}

	cases := []struct {
		description string
		given       QueryData
		server      func(*httptest.Server) *splunk.Env
		reply       string
		headers     http.Header
		error       bool
		message     string
		want        *regexp.Regexp
	}{
		{
			"valid query",
			QueryData{Query: "total output", User: "test", Timestamp: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).Unix()},
			func(s *httptest.Server) *splunk.Env {
				return &splunk.Env{Endpoint: s.URL, Token: "test123", Host: "test", Namespace: "test", Pod: "test"}
			},
			`{"code":0,"text":"Success"}`,
			headers("Splunk test123"),
			false,
			``,
			regexp.MustCompile(`{"event":{"query":"total output","user":"test","namespace":"test","pod":"test"},(.*),"source":"tabqa",(.*),"time":1672531200}`),
		},
		{
			"valid query with invalid Splunk environment set",
			QueryData{Query: "total output", User: "test", Timestamp: time.Now().Unix()},
			func(s *httptest.Server) *splunk.Env {
				return &splunk.Env{Endpoint: s.URL}
			},
			`{"code":0,"text":""}`,
			headers("Splunk"),
			false,
			``,
			regexp.MustCompile(`{"event":{"query":"total output","user":"test","namespace":"","pod":""}`),
		},
		{
			"error in Splunk response",
			QueryData{Query: "total output", User: "test"},
			func(s *httptest.Server) *splunk.Env {
				return &splunk.Env{Endpoint: s.URL, Token: "test123"}
			},
			`{"code":4,"text":"Invalid token"}`,
			headers("Splunk test123"),
			true,
			`unable to write to Splunk: Invalid token (4)`,
			regexp.MustCompile(``),
		},
		{
			"malformed JSON in Splunk response",
			QueryData{Query: "total output", User: "test"},
			func(s *httptest.Server) *splunk.Env {
				return &splunk.Env{Endpoint: s.URL, Token: "test123"}
			},
			`{"code:0,"text":""}`,
			headers("Splunk test123"),
			true,
			`unable to unmarshal Splunk response`,
			regexp.MustCompile(``),
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			var body bytes.Buffer

			actualHeaders := make(http.Header)

			s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.Copy(&body, r.Body)
				actualHeaders = r.Header.Clone()
				actualHeaders.Del("Content-Length")
				fmt.Fprintln(w, tc.reply)
			}))
			defer s.Close()

			actual := NewSplunkAudit(tc.server(s), WithHTTPClient(http.DefaultClient))
			err := actual.Write(context.TODO(), &tc.given)

			if tc.error {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.message)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tc.headers, actualHeaders)
			assert.Regexp(t, tc.want, body.String())
		})
	}
}

func TestSplunkAuditWriteUnreachable(t *testing.T) {
	t.Parallel()

	actual := NewSplunkAudit(&splunk.Env{Endpoint: "http://127.0.0.1:0"})
	err := actual.Write(context.TODO(), &QueryData{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to send request to Splunk")
}
