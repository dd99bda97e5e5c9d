package retriever

import "github.com/oarkflow/cikmapper/table"

// StockRetriever reads the exchange-listed company dataset.
type StockRetriever struct {
	url string
}

// NewStockRetriever returns a retriever for url, or for DefaultStockURL when url is empty
func NewStockRetriever(url string) *StockRetriever {
	if url == "" {
		url = DefaultStockURL
	}
	return &StockRetriever{url: url}
}

func (r *StockRetriever) Variant() Variant { return Stocks }

func (r *StockRetriever) SourceURL() string { return r.url }

func (r *StockRetriever) Fields() []string {
	return []string{"cik", "name", "ticker", "exchange"}
}

func (r *StockRetriever) Columns() []string {
	return []string{ColCIK, ColTicker, ColName, ColExchange}
}

// Transform pads the CIK, cleans the ticker, title-cases the name and keeps the exchange as is.
func (r *StockRetriever) Transform(idx FieldIndices, rec Record) (table.Row, error) {
	cik, err := idx.cik(rec, "cik")
	if err != nil {
		return nil, err
	}
	ticker, err := idx.text(rec, "ticker")
	if err != nil {
		return nil, err
	}
	name, err := idx.text(rec, "name")
	if err != nil {
		return nil, err
	}
	exchange, err := idx.text(rec, "exchange")
	if err != nil {
		return nil, err
	}
	return table.Row{
		ColCIK:      cik,
		ColTicker:   CleanTicker(ticker),
		ColName:     TitleCase(name),
		ColExchange: exchange,
	}, nil
}

func (r *StockRetriever) sealed() {}
