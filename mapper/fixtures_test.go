package mapper_test

import (
	"github.com/oarkflow/cikmapper/mapper"
)

const stockPayload = `{
  "fields": ["cik", "name", "ticker", "exchange"],
  "data": [
    [320193, "Apple Inc.", "AAPL", "Nasdaq"],
    [1652044, "Alphabet Inc.", "GOOGL", "Nasdaq"],
    [1652044, "Alphabet Inc.", "GOOG", "Nasdaq"],
    [1067983, "BERKSHIRE HATHAWAY INC", "brk-a", "NYSE"],
    [1067983, "BERKSHIRE HATHAWAY INC", "BRK.B", "NYSE"],
    [1000045, "NICHOLAS FINANCIAL INC", "NICK", null],
    [1000045, "NICHOLAS FINANCIAL INC", "(?)", null],
    [111, "FIRST CLAIMANT", "DUP", "OTC"],
    [222, "SECOND CLAIMANT", "DUP", "OTC"]
  ]
}`

const mutualFundPayload = `{
  "fields": ["cik", "seriesId", "classId", "symbol"],
  "data": [
    [2110, "S000009184", "C000024954", "LACAX"],
    [2110, "S000009184", "C000024956", "LIACX"],
    [2110, "S000033622", "C000103613", ""],
    [36405, "S000002848", "C000007804", "VTSAX"],
    [36405, "S000002848", "C000007806", "VTSMX"]
  ]
}`

// staticFetcher serves body for every url and records the urls asked for.
type staticFetcher struct {
	body  string
	err   error
	calls []string
}

func (f *staticFetcher) Fetch(url string) ([]byte, error) {
	f.calls = append(f.calls, url)
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.body), nil
}

var _ mapper.Fetcher = (*staticFetcher)(nil)
