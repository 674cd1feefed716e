package models

// QueryResponse is the reply of POST /query. Summary holds a JSON-encoded
// summary envelope and is empty when summaries are disabled.
type QueryResponse struct {
	Answer      string   `json:"answer"`
	Coordinates [][]int  `json:"coordinates"`
	Cells       []string `json:"cells"`
	Aggregator  string   `json:"aggregator"`
	Summary     string   `json:"summary,omitempty"`
}
