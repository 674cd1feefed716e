// Package mockmodel serves canned TAPAS inference and Gemini replies so the
// server can run without access to the hosted models.
package mockmodel

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const (
	TapasPath  = "/tapas"
	Aggregator = "SUM"
)

type tapasRequest struct {
	Table map[string][]string `json:"table"`
	Query string              `json:"query"`
}

type tapasResponse struct {
	Answer      string   `json:"answer"`
	Coordinates [][]int  `json:"coordinates"`
	Cells       []string `json:"cells"`
	Aggregator  string   `json:"aggregator"`
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
	ResponseID string      `json:"responseId"`
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

// Router returns the handler serving POST /tapas and the Gemini
// generateContent endpoint.
func Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc(TapasPath, tapas).Methods("POST")
	r.HandleFunc("/{version}/models/{model}:generateContent", generateContent).Methods("POST")

	return r
}

// tapas answers with the sum of the right-most numeric column, ordering
// columns by name.
func tapas(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
		http.Error(w, `{"error":"Authorization header is correct, but the token seems invalid"}`, http.StatusUnauthorized)
		return
	}

	var req tapasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf(`{"error":%q}`, err.Error()), http.StatusBadRequest)
		return
	}

	headers := make([]string, 0, len(req.Table))
	for h := range req.Table {
		headers = append(headers, h)
	}
	sort.Strings(headers)

	resp := tapasResponse{Coordinates: [][]int{}, Cells: []string{}, Aggregator: "NONE"}
	for col := len(headers) - 1; col >= 0; col-- {
		values := req.Table[headers[col]]
		if !numeric(values) {
			continue
		}

		for row, v := range values {
			resp.Coordinates = append(resp.Coordinates, []int{row, col})
			resp.Cells = append(resp.Cells, v)
		}
		resp.Aggregator = Aggregator
		break
	}
	resp.Answer = fmt.Sprintf("%s > %s", resp.Aggregator, strings.Join(resp.Cells, ", "))

	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(&resp)
}

func numeric(values []string) bool {
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if _, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil {
			return false
		}
	}
	return true
}

func generateContent(w http.ResponseWriter, r *http.Request) {
	var req generateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = fmt.Fprintf(w, `{"error":{"code":400,"message":%q,"status":"INVALID_ARGUMENT"}}`, err.Error())
		return
	}

	words := 0
	for _, c := range req.Contents {
		for _, p := range c.Parts {
			words += len(strings.Fields(p.Text))
		}
	}

	resp := generateContentResponse{
		Candidates: []candidate{{
			Content: content{
				Role:  "model",
				Parts: []part{{Text: fmt.Sprintf("The *%s* model read %d words.", mux.Vars(r)["model"], words)}},
			},
			FinishReason: "STOP",
		}},
		ResponseID: uuid.NewString(),
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(&resp)
}
