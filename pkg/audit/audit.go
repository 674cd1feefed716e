package audit

import "context"

// QueryData is the audit record of one submitted question.
type QueryData struct {
	Query     string
	User      string
	Timestamp int64
}

type Audit interface {
	Write(context.Context, *QueryData) error
}
