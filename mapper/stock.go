package mapper

import (
	"github.com/oarkflow/cikmapper/mapping"
	"github.com/oarkflow/cikmapper/retriever"
)

// StockMapper maps CIKs, tickers, exchanges, and company names.
type StockMapper struct {
	*base
}

// NewStockMapper fetches the stock dataset through f. A nil r uses the default SEC endpoint.
func NewStockMapper(f Fetcher, r *retriever.StockRetriever) (*StockMapper, error) {
	if r == nil {
		r = retriever.NewStockRetriever("")
	}
	b, err := newBase(f, r)
	if err != nil {
		return nil, err
	}
	return &StockMapper{base: b}, nil
}

// CIKToCompanyName e.g. {"0000320193": "Apple Inc."}
func (m *StockMapper) CIKToCompanyName() map[string]string { return m.unique(CIKToCompanyName) }

// TickerToCompanyName e.g. {"AAPL": "Apple Inc."}
func (m *StockMapper) TickerToCompanyName() map[string]string { return m.unique(TickerToCompanyName) }

// TickerToExchange e.g. {"AAPL": "Nasdaq"}
func (m *StockMapper) TickerToExchange() map[string]string { return m.unique(TickerToExchange) }

// ExchangeToTickers e.g. {"Nasdaq": {"AAPL", "MSFT", ...}}
func (m *StockMapper) ExchangeToTickers() map[string]mapping.Set { return m.multi(ExchangeToTickers) }

// CIKToExchange e.g. {"0000320193": "Nasdaq"}
func (m *StockMapper) CIKToExchange() map[string]string { return m.unique(CIKToExchange) }

// ExchangeToCIKs e.g. {"NYSE": {"0000764478", ...}}
func (m *StockMapper) ExchangeToCIKs() map[string]mapping.Set { return m.multi(ExchangeToCIKs) }
