// Package mapper fetches a SEC ticker dataset once, normalizes it into a table
// and derives CIK/ticker/name/exchange/series/class lookup mappings from it.
package mapper

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/oarkflow/cikmapper/fetch"
	"github.com/oarkflow/cikmapper/mapping"
	"github.com/oarkflow/cikmapper/retriever"
	"github.com/oarkflow/cikmapper/table"
)

// ErrUnknownMapping is returned by Mapping for a name the variant does not declare.
var ErrUnknownMapping = fmt.Errorf("unknown mapping")

// Fetcher returns the body found at url
type Fetcher interface {
	Fetch(url string) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher
type FetcherFunc func(url string) ([]byte, error)

func (f FetcherFunc) Fetch(url string) ([]byte, error) { return f(url) }

// Mapper is satisfied by *StockMapper and *MutualFundMapper.
//
// Mapping and the typed accessors return the memoized map shared by every
// caller of the instance. It is read-only: copy it before modifying.
type Mapper interface {
	Variant() retriever.Variant
	Table() *table.Table
	Definitions() []Definition
	// Mapping returns map[string]string or map[string]mapping.Set depending on the definition kind.
	Mapping(name string) (any, error)
	CIKToTickers() map[string]mapping.Set
	TickerToCIK() map[string]string
	WriteCSV(w io.Writer) error
	SaveCSV(path string) error
}

// base holds what both variants share. It is embedded, never returned on its own.
type base struct {
	retriever   retriever.Retriever
	table       *table.Table
	definitions []Definition

	mu    sync.Mutex
	cache map[string]any
}

func newBase(f Fetcher, r retriever.Retriever) (*base, error) {
	defs, err := Definitions(r.Variant())
	if err != nil {
		return nil, err
	}
	body, err := f.Fetch(r.SourceURL())
	if err != nil {
		return nil, err
	}
	payload, err := fetch.ParsePayload(body)
	if err != nil {
		return nil, err
	}
	t, err := buildTable(r, payload)
	if err != nil {
		return nil, err
	}
	logrus.Infof("%s: %d rows from %s", r.Variant(), t.Len(), r.SourceURL())

	b := &base{
		retriever:   r,
		table:       t,
		definitions: defs,
		cache:       make(map[string]any, len(defs)),
	}
	b.warnDuplicateTickers()
	return b, nil
}

func buildTable(r retriever.Retriever, p *fetch.Payload) (*table.Table, error) {
	idx := retriever.IndexFields(p.Fields)
	if err := idx.Require(r.Fields()...); err != nil {
		return nil, err
	}
	t := table.New(r.Columns()...)
	for i, rec := range p.Data {
		row, err := r.Transform(idx, rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if err := t.Append(row); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return t, nil
}

// warnDuplicateTickers logs tickers claimed by more than one CIK.
// ticker_to_cik keeps the last one.
func (b *base) warnDuplicateTickers() {
	tickers, _ := b.table.Column(retriever.ColTicker)
	ciks, _ := b.table.Column(retriever.ColCIK)
	dups := mapping.Duplicates(tickers, ciks)
	if len(dups) == 0 {
		return
	}
	keys := make([]string, 0, len(dups))
	for k := range dups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		logrus.Warnf("%s: ticker %s is claimed by several CIKs (%s), keeping the last", b.retriever.Variant(), k, strings.Join(dups[k], ", "))
	}
}

func (b *base) Variant() retriever.Variant {
	return b.retriever.Variant()
}

// Table returns a copy of the normalized rows
func (b *base) Table() *table.Table {
	return b.table.Clone()
}

func (b *base) Definitions() []Definition {
	return append([]Definition(nil), b.definitions...)
}

func (b *base) definition(name string) (Definition, bool) {
	for _, d := range b.definitions {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}

// Mapping computes the named mapping on first use and returns the memoized value afterwards.
// The returned map is shared and must not be modified.
func (b *base) Mapping(name string) (any, error) {
	d, ok := b.definition(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %q", ErrUnknownMapping, b.Variant(), name)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if m, ok := b.cache[name]; ok {
		return m, nil
	}
	keys, err := b.table.Column(d.Key)
	if err != nil {
		return nil, err
	}
	values, err := b.table.Column(d.Value)
	if err != nil {
		return nil, err
	}
	var m any
	switch d.Kind {
	case Multi:
		m = mapping.BuildSet(keys, values)
	default:
		m = mapping.BuildUnique(keys, values)
	}
	b.cache[name] = m
	return m, nil
}

func (b *base) unique(name string) map[string]string {
	m, err := b.Mapping(name)
	if err != nil {
		panic(err)
	}
	return m.(map[string]string)
}

func (b *base) multi(name string) map[string]mapping.Set {
	m, err := b.Mapping(name)
	if err != nil {
		panic(err)
	}
	return m.(map[string]mapping.Set)
}

// CIKToTickers maps a CIK to every ticker it trades under
func (b *base) CIKToTickers() map[string]mapping.Set { return b.multi(CIKToTickers) }

// TickerToCIK maps a ticker to its CIK
func (b *base) TickerToCIK() map[string]string { return b.unique(TickerToCIK) }

// WriteCSV writes the table with a header row and no index column
func (b *base) WriteCSV(w io.Writer) error {
	return b.table.WriteCSV(w)
}

// SaveCSV writes the table to path
func (b *base) SaveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %v", err)
	}
	if err := b.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
