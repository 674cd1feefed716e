package inference

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/app-sre/tabqa/pkg/models"
	"github.com/app-sre/tabqa/pkg/table"
)

func TestNewTapasClient(t *testing.T) {
	t.Parallel()

	actual := NewTapasClient("http://test", "test123")
	assert.NotNil(t, actual.client.Transport)

	actual = NewTapasClient("http://test", "test123", WithHTTPClient(http.DefaultClient))
	assert.Nil(t, actual.client.Transport)
}

func TestTapasClientAnswer(t *testing.T) {
	t.Parallel()

	cases := []struct {
		description string
		handler     func(*bytes.Buffer, *http.Header) http.HandlerFunc
		expected    *models.QueryResponse
		error       bool
		message     string
	}{
		{
			"valid answer",
			func(b *bytes.Buffer, h *http.Header) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					_, _ = io.Copy(b, r.Body)
					*h = r.Header
					fmt.Fprintln(w, `{"answer":"SUM > 10, 12","coordinates":[[0,1],[1,1]],"cells":["10","12"],"aggregator":"SUM"}`)
				}
			},
			&models.QueryResponse{
				Answer:      "SUM > 10, 12",
				Coordinates: [][]int{{0, 1}, {1, 1}},
				Cells:       []string{"10", "12"},
				Aggregator:  "SUM",
			},
			false,
			``,
		},
		{
			"model error",
			func(b *bytes.Buffer, h *http.Header) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					_, _ = io.Copy(b, r.Body)
					*h = r.Header
					http.Error(w, `{"error":"Model is currently loading"}`, http.StatusServiceUnavailable)
				}
			},
			nil,
			true,
			`inference request failed: {"error":"Model is currently loading"} (503)`,
		},
		{
			"malformed response",
			func(b *bytes.Buffer, h *http.Header) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					_, _ = io.Copy(b, r.Body)
					*h = r.Header
					fmt.Fprintln(w, `{"answer":`)
				}
			},
			nil,
			true,
			`unable to unmarshal inference response`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			var body bytes.Buffer

			headers := make(http.Header)

			s := httptest.NewServer(tc.handler(&body, &headers))
			defer s.Close()

			tbl, err := table.ParseCSV(strings.NewReader("year,output\n2020,10\n2021,12\n"))
			require.NoError(t, err)

			c := NewTapasClient(s.URL, "test123", WithHTTPClient(http.DefaultClient))
			actual, err := c.Answer(context.TODO(), tbl, "total output")

			if tc.error {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.message)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expected, actual)
			}

			assert.Equal(t, "Bearer test123", headers.Get("Authorization"))
			assert.Equal(t, "application/json", headers.Get("Content-Type"))
			assert.JSONEq(t, `{"table":{"year":["2020","2021"],"output":["10","12"]},"query":"total output"}`, body.String())
		})
	}
}

func TestTapasClientAnswerUnreachable(t *testing.T) {
	t.Parallel()

	c := NewTapasClient("http://127.0.0.1:0", "test123")
	_, err := c.Answer(context.TODO(), &table.Table{}, "test")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to send inference request")
}
