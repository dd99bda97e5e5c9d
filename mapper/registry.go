package mapper

import "github.com/oarkflow/cikmapper/retriever"

// Kind is the shape of a derived mapping
type Kind int

const (
	// Unique maps a key to a single value, last write wins.
	Unique Kind = iota
	// Multi maps a key to the set of every value seen.
	Multi
)

func (k Kind) String() string {
	if k == Multi {
		return "multi"
	}
	return "unique"
}

// Definition declares one derived mapping over two table columns.
type Definition struct {
	Name  string
	Key   string
	Value string
	Kind  Kind
}

// Mapping names
const (
	CIKToTickers = "cik_to_tickers"
	TickerToCIK  = "ticker_to_cik"

	CIKToCompanyName    = "cik_to_company_name"
	TickerToCompanyName = "ticker_to_company_name"
	TickerToExchange    = "ticker_to_exchange"
	ExchangeToTickers   = "exchange_to_tickers"
	CIKToExchange       = "cik_to_exchange"
	ExchangeToCIKs      = "exchange_to_ciks"

	CIKToSeriesIDs     = "cik_to_series_ids"
	TickerToSeriesID   = "ticker_to_series_id"
	SeriesIDToCIK      = "series_id_to_cik"
	SeriesIDToTickers  = "series_id_to_tickers"
	SeriesIDToClassIDs = "series_id_to_class_ids"
	TickerToClassID    = "ticker_to_class_id"
	CIKToClassIDs      = "cik_to_class_ids"
	ClassIDToCIK       = "class_id_to_cik"
	ClassIDToTicker    = "class_id_to_ticker"
)

var commonDefinitions = []Definition{
	{Name: CIKToTickers, Key: retriever.ColCIK, Value: retriever.ColTicker, Kind: Multi},
	{Name: TickerToCIK, Key: retriever.ColTicker, Value: retriever.ColCIK, Kind: Unique},
}

var stockDefinitions = append(append([]Definition{}, commonDefinitions...),
	Definition{Name: CIKToCompanyName, Key: retriever.ColCIK, Value: retriever.ColName, Kind: Unique},
	Definition{Name: TickerToCompanyName, Key: retriever.ColTicker, Value: retriever.ColName, Kind: Unique},
	Definition{Name: TickerToExchange, Key: retriever.ColTicker, Value: retriever.ColExchange, Kind: Unique},
	Definition{Name: ExchangeToTickers, Key: retriever.ColExchange, Value: retriever.ColTicker, Kind: Multi},
	Definition{Name: CIKToExchange, Key: retriever.ColCIK, Value: retriever.ColExchange, Kind: Unique},
	Definition{Name: ExchangeToCIKs, Key: retriever.ColExchange, Value: retriever.ColCIK, Kind: Multi},
)

var mutualFundDefinitions = append(append([]Definition{}, commonDefinitions...),
	Definition{Name: CIKToSeriesIDs, Key: retriever.ColCIK, Value: retriever.ColSeriesID, Kind: Multi},
	Definition{Name: TickerToSeriesID, Key: retriever.ColTicker, Value: retriever.ColSeriesID, Kind: Unique},
	Definition{Name: SeriesIDToCIK, Key: retriever.ColSeriesID, Value: retriever.ColCIK, Kind: Unique},
	Definition{Name: SeriesIDToTickers, Key: retriever.ColSeriesID, Value: retriever.ColTicker, Kind: Multi},
	Definition{Name: SeriesIDToClassIDs, Key: retriever.ColSeriesID, Value: retriever.ColClassID, Kind: Multi},
	Definition{Name: TickerToClassID, Key: retriever.ColTicker, Value: retriever.ColClassID, Kind: Unique},
	Definition{Name: CIKToClassIDs, Key: retriever.ColCIK, Value: retriever.ColClassID, Kind: Multi},
	Definition{Name: ClassIDToCIK, Key: retriever.ColClassID, Value: retriever.ColCIK, Kind: Unique},
	Definition{Name: ClassIDToTicker, Key: retriever.ColClassID, Value: retriever.ColTicker, Kind: Unique},
)

// Definitions returns the mappings a variant exposes, in export order.
func Definitions(v retriever.Variant) ([]Definition, error) {
	switch v {
	case retriever.Stocks:
		return append([]Definition(nil), stockDefinitions...), nil
	case retriever.MutualFunds:
		return append([]Definition(nil), mutualFundDefinitions...), nil
	}
	return nil, retriever.ErrUnknownVariant
}
