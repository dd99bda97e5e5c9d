package retriever

import "github.com/oarkflow/cikmapper/table"

// MutualFundRetriever reads the mutual fund share class dataset.
type MutualFundRetriever struct {
	url string
}

// NewMutualFundRetriever returns a retriever for url, or for DefaultMutualFundURL when url is empty
func NewMutualFundRetriever(url string) *MutualFundRetriever {
	if url == "" {
		url = DefaultMutualFundURL
	}
	return &MutualFundRetriever{url: url}
}

func (r *MutualFundRetriever) Variant() Variant { return MutualFunds }

func (r *MutualFundRetriever) SourceURL() string { return r.url }

func (r *MutualFundRetriever) Fields() []string {
	return []string{"cik", "seriesId", "classId", "symbol"}
}

func (r *MutualFundRetriever) Columns() []string {
	return []string{ColCIK, ColTicker, ColSeriesID, ColClassID}
}

// Transform pads the CIK and cleans the symbol into a ticker. Series and class IDs pass through.
func (r *MutualFundRetriever) Transform(idx FieldIndices, rec Record) (table.Row, error) {
	cik, err := idx.cik(rec, "cik")
	if err != nil {
		return nil, err
	}
	seriesID, err := idx.text(rec, "seriesId")
	if err != nil {
		return nil, err
	}
	classID, err := idx.text(rec, "classId")
	if err != nil {
		return nil, err
	}
	symbol, err := idx.text(rec, "symbol")
	if err != nil {
		return nil, err
	}
	return table.Row{
		ColCIK:      cik,
		ColTicker:   CleanTicker(symbol),
		ColSeriesID: seriesID,
		ColClassID:  classID,
	}, nil
}

func (r *MutualFundRetriever) sealed() {}
