// Package retriever knows where each SEC ticker dataset lives and how to turn one
// positional upstream record into a normalized table row.
package retriever

import (
	"errors"
	"fmt"

	"github.com/oarkflow/cikmapper/table"
)

// See the "CIK, ticker, and exchange associations" section of
// https://www.sec.gov/os/accessing-edgar-data
const (
	DefaultStockURL      = "https://www.sec.gov/files/company_tickers_exchange.json"
	DefaultMutualFundURL = "https://www.sec.gov/files/company_tickers_mf.json"
)

// Canonical column names
const (
	ColCIK      = "CIK"
	ColTicker   = "Ticker"
	ColName     = "Name"
	ColExchange = "Exchange"
	ColSeriesID = "Series ID"
	ColClassID  = "Class ID"
)

// Variant selects a dataset
type Variant string

const (
	Stocks      Variant = "stocks"
	MutualFunds Variant = "mutual_funds"
)

// Variants lists every supported dataset in generation order
var Variants = []Variant{Stocks, MutualFunds}

// ErrUnknownVariant is returned when asked to build something for a variant that does not exist.
var ErrUnknownVariant = errors.New("unknown variant")

// Record is one positional entry of the upstream "data" array.
type Record []any

// Retriever is implemented only by *StockRetriever and *MutualFundRetriever.
type Retriever interface {
	Variant() Variant
	SourceURL() string
	// Fields are the upstream field names Transform reads.
	Fields() []string
	// Columns is the canonical column order of the rows Transform returns.
	Columns() []string
	Transform(idx FieldIndices, rec Record) (table.Row, error)
	sealed()
}

// ForVariant returns the retriever for v. An empty url selects the default SEC endpoint.
func ForVariant(v Variant, url string) (Retriever, error) {
	switch v {
	case Stocks:
		return NewStockRetriever(url), nil
	case MutualFunds:
		return NewMutualFundRetriever(url), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, string(v))
}
