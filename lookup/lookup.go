// Package lookup indexes mapper tables in an in-process full-text engine so
// rows can be found by partial company name, ticker or identifier.
package lookup

import (
	"runtime"

	"github.com/oarkflow/log"
	"github.com/oarkflow/pkg/str"
	"github.com/oarkflow/search"

	"github.com/oarkflow/cikmapper/table"
)

// Result is a page of matching rows
type Result struct {
	Query string      `json:"query"`
	Total int         `json:"total"`
	Rows  []table.Row `json:"rows"`
}

func documents(t *table.Table) []map[string]any {
	rows := t.Rows()
	docs := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		doc := make(map[string]any, len(r))
		for k, v := range r {
			doc[k] = v
		}
		docs = append(docs, doc)
	}
	return docs
}

// Index registers an engine under name and loads every row of t into it.
func Index(name string, t *table.Table) error {
	engine, err := search.SetEngine[map[string]any](name, &search.Config{})
	if err != nil {
		return err
	}
	log.Info().Msg("Indexing " + name)
	engine.InsertWithPool(documents(t), runtime.NumCPU(), 1000)
	log.Info().Msg("Indexed " + name)
	return nil
}

// Search looks q up in the engine registered under name. With no columns
// every column is searched.
func Search(name, q string, columns ...string) (*Result, error) {
	engine, err := search.GetEngine[map[string]any](name)
	if err != nil {
		return nil, err
	}
	result, err := engine.Search(&search.Params{
		Query:      q,
		Properties: columns,
	})
	if err != nil {
		return nil, err
	}
	out := &Result{Query: q, Total: int(result.Count), Rows: make([]table.Row, 0, len(result.Hits))}
	for _, hit := range result.Hits {
		row := make(table.Row, len(hit.Data))
		for k, v := range hit.Data {
			row[k] = str.ToString(v)
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}
