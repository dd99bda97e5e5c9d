package mapper

import (
	"fmt"

	"github.com/oarkflow/cikmapper/retriever"
)

// New builds the mapper for v. An empty url selects the default SEC endpoint.
func New(v retriever.Variant, f Fetcher, url string) (Mapper, error) {
	switch v {
	case retriever.Stocks:
		m, err := NewStockMapper(f, retriever.NewStockRetriever(url))
		if err != nil {
			return nil, err
		}
		return m, nil
	case retriever.MutualFunds:
		m, err := NewMutualFundMapper(f, retriever.NewMutualFundRetriever(url))
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	return nil, fmt.Errorf("%w: %q", retriever.ErrUnknownVariant, string(v))
}
