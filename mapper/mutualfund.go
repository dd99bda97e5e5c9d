package mapper

import (
	"github.com/oarkflow/cikmapper/mapping"
	"github.com/oarkflow/cikmapper/retriever"
)

// MutualFundMapper maps CIKs, tickers, series IDs, and class IDs.
type MutualFundMapper struct {
	*base
}

// NewMutualFundMapper fetches the mutual fund dataset through f. A nil r uses the default SEC endpoint.
func NewMutualFundMapper(f Fetcher, r *retriever.MutualFundRetriever) (*MutualFundMapper, error) {
	if r == nil {
		r = retriever.NewMutualFundRetriever("")
	}
	b, err := newBase(f, r)
	if err != nil {
		return nil, err
	}
	return &MutualFundMapper{base: b}, nil
}

func (m *MutualFundMapper) CIKToSeriesIDs() map[string]mapping.Set { return m.multi(CIKToSeriesIDs) }

func (m *MutualFundMapper) TickerToSeriesID() map[string]string { return m.unique(TickerToSeriesID) }

func (m *MutualFundMapper) SeriesIDToCIK() map[string]string { return m.unique(SeriesIDToCIK) }

func (m *MutualFundMapper) SeriesIDToTickers() map[string]mapping.Set {
	return m.multi(SeriesIDToTickers)
}

func (m *MutualFundMapper) SeriesIDToClassIDs() map[string]mapping.Set {
	return m.multi(SeriesIDToClassIDs)
}

func (m *MutualFundMapper) TickerToClassID() map[string]string { return m.unique(TickerToClassID) }

func (m *MutualFundMapper) CIKToClassIDs() map[string]mapping.Set { return m.multi(CIKToClassIDs) }

func (m *MutualFundMapper) ClassIDToCIK() map[string]string { return m.unique(ClassIDToCIK) }

func (m *MutualFundMapper) ClassIDToTicker() map[string]string { return m.unique(ClassIDToTicker) }
