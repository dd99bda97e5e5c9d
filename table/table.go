package table

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Row is one normalized record keyed by canonical column name.
type Row map[string]string

// Table is an append-only, fixed-column collection of rows.
// Rows are kept in insertion order.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// New creates an empty Table with the given column order
func New(columns ...string) *Table {
	t := &Table{
		columns: append([]string(nil), columns...),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		t.index[c] = i
	}
	return t
}

// Append adds row to the table. Every column of the table must be present in row.
func (t *Table) Append(row Row) error {
	values := make([]string, len(t.columns))
	for i, c := range t.columns {
		v, ok := row[c]
		if !ok {
			return fmt.Errorf("row is missing column %q", c)
		}
		values[i] = v
	}
	t.rows = append(t.rows, values)
	return nil
}

// Clone returns an independent copy of t
func (t *Table) Clone() *Table {
	c := New(t.columns...)
	c.rows = make([][]string, len(t.rows))
	for i, r := range t.rows {
		c.rows[i] = append([]string(nil), r...)
	}
	return c
}

// Columns returns the canonical column order
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Len is the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns a copy of the i-th row
func (t *Table) Row(i int) Row {
	row := make(Row, len(t.columns))
	for j, c := range t.columns {
		row[c] = t.rows[i][j]
	}
	return row
}

// Rows returns a copy of every row in table order
func (t *Table) Rows() []Row {
	rows := make([]Row, len(t.rows))
	for i := range t.rows {
		rows[i] = t.Row(i)
	}
	return rows
}

// Column returns the values of the named column in table order.
func (t *Table) Column(name string) ([]string, error) {
	j, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	values := make([]string, len(t.rows))
	for i, r := range t.rows {
		values[i] = r[j]
	}
	return values, nil
}

// Distinct counts the distinct non-empty values of the named column.
func (t *Table) Distinct(name string) (int, error) {
	values, err := t.Column(name)
	if err != nil {
		return 0, err
	}
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v != "" {
			seen[v] = struct{}{}
		}
	}
	return len(seen), nil
}

// WriteCSV writes a header row followed by every row, without an index column.
func (t *Table) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}
	if err := writer.WriteAll(t.rows); err != nil {
		return fmt.Errorf("failed to write CSV data: %v", err)
	}
	return writer.Error()
}

// ReadCSV loads a table previously written with WriteCSV. The first record is the header.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV data: %v", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no data in CSV file")
	}
	t := New(records[0]...)
	t.rows = append(t.rows, records[1:]...)
	return t, nil
}
