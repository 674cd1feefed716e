// Package table holds the data series that questions are asked against.
package table

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Table is a column-oriented table. Headers keeps the column order.
type Table struct {
	Headers []string
	Columns map[string][]string
}

// ParseError reports table content that could be read but not parsed.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to parse table: %s", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func New(headers []string) (*Table, error) {
	if len(headers) == 0 {
		return nil, errors.New("table without headers")
	}

	t := &Table{
		Headers: make([]string, 0, len(headers)),
		Columns: make(map[string][]string, len(headers)),
	}
	for _, h := range headers {
		if _, found := t.Columns[h]; found {
			return nil, fmt.Errorf("duplicate column: %s", h)
		}
		t.Headers = append(t.Headers, h)
		t.Columns[h] = []string{}
	}

	return t, nil
}

func (t *Table) Append(row []string) error {
	if len(row) != len(t.Headers) {
		return fmt.Errorf("row has %d values, expected %d", len(row), len(t.Headers))
	}
	for i, value := range row {
		h := t.Headers[i]
		t.Columns[h] = append(t.Columns[h], value)
	}
	return nil
}

// Rows returns the number of data rows.
func (t *Table) Rows() int {
	if len(t.Headers) == 0 {
		return 0
	}
	return len(t.Columns[t.Headers[0]])
}

// String renders one line per column, as "header: v1, v2, ...".
func (t *Table) String() string {
	var b strings.Builder
	for _, h := range t.Headers {
		fmt.Fprintf(&b, "%s: %s\n", h, strings.Join(t.Columns[h], ", "))
	}
	return b.String()
}

func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Columns)
}

// ParseCSV reads a CSV document whose first record is the header row.
func ParseCSV(r io.Reader) (*Table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if len(records) == 0 {
		return nil, &ParseError{Err: errors.New("empty CSV document")}
	}

	t, err := New(records[0])
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	for _, record := range records[1:] {
		if err := t.Append(record); err != nil {
			return nil, &ParseError{Err: err}
		}
	}

	return t, nil
}

// FromRows builds a table from a result set, using column names as headers.
func FromRows(rows *sql.Rows) (*Table, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("unable to read columns: %w", err)
	}

	t, err := New(cols)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	vals := make([]any, len(cols))
	for i := range cols {
		vals[i] = new(sql.RawBytes)
	}

	for rows.Next() {
		if err := rows.Scan(vals...); err != nil {
			return nil, fmt.Errorf("unable to scan row: %w", err)
		}

		row := make([]string, 0, len(vals))
		for _, v := range vals {
			row = append(row, string(*v.(*sql.RawBytes)))
		}
		_ = t.Append(row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unable to read rows: %w", err)
	}

	return t, nil
}
