package mapper_test

import (
	"bytes"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oarkflow/cikmapper/fetch"
	"github.com/oarkflow/cikmapper/mapper"
	"github.com/oarkflow/cikmapper/mapping"
	"github.com/oarkflow/cikmapper/retriever"
	"github.com/oarkflow/cikmapper/table"
)

var (
	cikPattern    = regexp.MustCompile(`^[0-9]{10}$`)
	tickerPattern = regexp.MustCompile(`^[A-Z0-9-]*$`)
)

func init() {
	logrus.SetLevel(logrus.ErrorLevel)
}

func newStockMapper(t *testing.T) *mapper.StockMapper {
	t.Helper()
	m, err := mapper.NewStockMapper(&staticFetcher{body: stockPayload}, nil)
	require.NoError(t, err)
	return m
}

func newMutualFundMapper(t *testing.T) *mapper.MutualFundMapper {
	t.Helper()
	m, err := mapper.NewMutualFundMapper(&staticFetcher{body: mutualFundPayload}, nil)
	require.NoError(t, err)
	return m
}

func distinct(t *testing.T, tbl *table.Table, col string) int {
	t.Helper()
	n, err := tbl.Distinct(col)
	require.NoError(t, err)
	return n
}

func TestConstructionFetchesOnce(t *testing.T) {
	f := &staticFetcher{body: stockPayload}
	m, err := mapper.NewStockMapper(f, retriever.NewStockRetriever("http://127.0.0.1/stocks.json"))
	require.NoError(t, err)
	assert.Equal(t, []string{"http://127.0.0.1/stocks.json"}, f.calls)

	_ = m.TickerToCIK()
	_ = m.ExchangeToCIKs()
	assert.Len(t, f.calls, 1)

	f = &staticFetcher{body: mutualFundPayload}
	_, err = mapper.NewMutualFundMapper(f, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{retriever.DefaultMutualFundURL}, f.calls)
}

func TestStockTableInvariants(t *testing.T) {
	m := newStockMapper(t)
	tbl := m.Table()

	assert.Equal(t, 9, tbl.Len())
	assert.Equal(t, []string{"CIK", "Ticker", "Name", "Exchange"}, tbl.Columns())
	for _, row := range tbl.Rows() {
		assert.Regexp(t, cikPattern, row["CIK"])
		assert.Regexp(t, tickerPattern, row["Ticker"])
	}

	// upstream order is kept
	first := tbl.Row(0)
	assert.Equal(t, table.Row{"CIK": "0000320193", "Ticker": "AAPL", "Name": "Apple Inc.", "Exchange": "Nasdaq"}, first)
	assert.Equal(t, "BRK-A", tbl.Row(3)["Ticker"])
	assert.Equal(t, "Berkshire Hathaway Inc", tbl.Row(3)["Name"])
	assert.Equal(t, "BRKB", tbl.Row(4)["Ticker"])
	assert.Equal(t, "", tbl.Row(5)["Exchange"])
	assert.Equal(t, "", tbl.Row(6)["Ticker"])
}

func TestStockCommonMappings(t *testing.T) {
	m := newStockMapper(t)
	cikToTickers := m.CIKToTickers()
	tickerToCIK := m.TickerToCIK()

	assert.Len(t, cikToTickers, distinct(t, m.Table(), "CIK"))
	assert.Len(t, tickerToCIK, distinct(t, m.Table(), "Ticker"))

	assert.Equal(t, "0000320193", tickerToCIK["AAPL"])
	assert.True(t, cikToTickers["0000320193"].Has("AAPL"))
	assert.Equal(t, []string{"GOOG", "GOOGL"}, cikToTickers["0001652044"].Sorted())
	assert.Equal(t, []string{"NICK"}, cikToTickers["0001000045"].Sorted())

	total := 0
	for cik, tickers := range cikToTickers {
		assert.Len(t, cik, 10)
		total += tickers.Len()
	}
	// DUP is counted once per claiming CIK
	assert.Equal(t, distinct(t, m.Table(), "Ticker")+1, total)
}

func TestDuplicateTickerLastWriteWins(t *testing.T) {
	m := newStockMapper(t)
	assert.Equal(t, "0000000222", m.TickerToCIK()["DUP"])
	assert.True(t, m.CIKToTickers()["0000000111"].Has("DUP"))
	assert.True(t, m.CIKToTickers()["0000000222"].Has("DUP"))
	assert.Equal(t, "Second Claimant", m.TickerToCompanyName()["DUP"])
}

func TestStockMappings(t *testing.T) {
	m := newStockMapper(t)

	assert.Equal(t, "Apple Inc.", m.CIKToCompanyName()["0000320193"])
	assert.Len(t, m.CIKToCompanyName(), distinct(t, m.Table(), "CIK"))
	assert.Equal(t, "Alphabet Inc.", m.TickerToCompanyName()["GOOG"])
	assert.Equal(t, "NYSE", m.TickerToExchange()["BRK-A"])
	assert.NotContains(t, m.TickerToExchange(), "NICK")
	assert.Equal(t, "Nasdaq", m.CIKToExchange()["0001652044"])
	assert.NotContains(t, m.CIKToExchange(), "0001000045")

	exchangeToTickers := m.ExchangeToTickers()
	assert.Len(t, exchangeToTickers, 3)
	assert.Equal(t, []string{"AAPL", "GOOG", "GOOGL"}, exchangeToTickers["Nasdaq"].Sorted())
	assert.Equal(t, []string{"BRK-A", "BRKB"}, exchangeToTickers["NYSE"].Sorted())
	assert.NotContains(t, exchangeToTickers, "")

	assert.Equal(t, []string{"0000000111", "0000000222"}, m.ExchangeToCIKs()["OTC"].Sorted())
}

func TestMutualFundMappings(t *testing.T) {
	m := newMutualFundMapper(t)
	tbl := m.Table()

	assert.Equal(t, []string{"CIK", "Ticker", "Series ID", "Class ID"}, tbl.Columns())
	for _, row := range tbl.Rows() {
		assert.Regexp(t, cikPattern, row["CIK"])
		assert.NotEmpty(t, row["Series ID"])
		assert.NotEmpty(t, row["Class ID"])
	}
	assert.Equal(t, table.Row{
		"CIK":       "0000002110",
		"Ticker":    "LACAX",
		"Series ID": "S000009184",
		"Class ID":  "C000024954",
	}, tbl.Row(0))

	assert.Len(t, m.CIKToTickers(), distinct(t, tbl, "CIK"))
	assert.Len(t, m.TickerToCIK(), distinct(t, tbl, "Ticker"))
	assert.Equal(t, "0000036405", m.TickerToCIK()["VTSAX"])
	assert.True(t, m.CIKToTickers()["0000036405"].Has("VTSAX"))

	assert.Len(t, m.CIKToSeriesIDs(), distinct(t, tbl, "CIK"))
	assert.Equal(t, []string{"S000009184", "S000033622"}, m.CIKToSeriesIDs()["0000002110"].Sorted())
	assert.Equal(t, "S000002848", m.TickerToSeriesID()["VTSAX"])
	assert.Len(t, m.SeriesIDToCIK(), distinct(t, tbl, "Series ID"))
	assert.Equal(t, "0000002110", m.SeriesIDToCIK()["S000033622"])

	seriesToTickers := m.SeriesIDToTickers()
	assert.Len(t, seriesToTickers, 2)
	assert.NotContains(t, seriesToTickers, "S000033622")
	assert.Equal(t, []string{"VTSAX", "VTSMX"}, seriesToTickers["S000002848"].Sorted())

	assert.Len(t, m.SeriesIDToClassIDs(), distinct(t, tbl, "Series ID"))
	assert.Equal(t, []string{"C000024954", "C000024956"}, m.SeriesIDToClassIDs()["S000009184"].Sorted())
	assert.Equal(t, "C000007804", m.TickerToClassID()["VTSAX"])
	assert.Len(t, m.CIKToClassIDs(), distinct(t, tbl, "CIK"))
	assert.Equal(t, 3, m.CIKToClassIDs()["0000002110"].Len())
	assert.Len(t, m.ClassIDToCIK(), distinct(t, tbl, "Class ID"))
	assert.Equal(t, "0000036405", m.ClassIDToCIK()["C000007806"])
	assert.Len(t, m.ClassIDToTicker(), 4)
	assert.Equal(t, "LIACX", m.ClassIDToTicker()["C000024956"])
}

func TestShuffledFieldOrder(t *testing.T) {
	body := `{"fields":["ticker","exchange","cik","name"],"data":[["msft","Nasdaq",789019,"MICROSOFT CORP"]]}`
	m, err := mapper.NewStockMapper(&staticFetcher{body: body}, nil)
	require.NoError(t, err)
	assert.Equal(t, table.Row{"CIK": "0000789019", "Ticker": "MSFT", "Name": "Microsoft Corp", "Exchange": "Nasdaq"}, m.Table().Row(0))
}

func TestDefinitions(t *testing.T) {
	stock := newStockMapper(t)
	fund := newMutualFundMapper(t)

	names := func(defs []mapper.Definition) []string {
		var out []string
		for _, d := range defs {
			out = append(out, d.Name)
		}
		return out
	}
	assert.Equal(t, []string{
		"cik_to_tickers", "ticker_to_cik",
		"cik_to_company_name", "ticker_to_company_name", "ticker_to_exchange",
		"exchange_to_tickers", "cik_to_exchange", "exchange_to_ciks",
	}, names(stock.Definitions()))
	assert.Equal(t, []string{
		"cik_to_tickers", "ticker_to_cik",
		"cik_to_series_ids", "ticker_to_series_id", "series_id_to_cik", "series_id_to_tickers",
		"series_id_to_class_ids", "ticker_to_class_id", "cik_to_class_ids", "class_id_to_cik",
		"class_id_to_ticker",
	}, names(fund.Definitions()))

	for _, m := range []mapper.Mapper{stock, fund} {
		for _, d := range m.Definitions() {
			v, err := m.Mapping(d.Name)
			require.NoError(t, err, d.Name)
			switch d.Kind {
			case mapper.Multi:
				assert.IsType(t, map[string]mapping.Set{}, v, d.Name)
			default:
				assert.IsType(t, map[string]string{}, v, d.Name)
			}
		}
	}

	_, err := mapper.Definitions("etf")
	assert.True(t, errors.Is(err, retriever.ErrUnknownVariant))
}

func TestMappingIsMemoized(t *testing.T) {
	m := newStockMapper(t)
	a, err := m.Mapping(mapper.TickerToCIK)
	require.NoError(t, err)
	b, err := m.Mapping(mapper.TickerToCIK)
	require.NoError(t, err)
	assert.Equal(t, reflect.ValueOf(a).Pointer(), reflect.ValueOf(b).Pointer())
	assert.Equal(t, reflect.ValueOf(a).Pointer(), reflect.ValueOf(m.TickerToCIK()).Pointer())

	// a second instance computes its own
	other := newStockMapper(t)
	assert.NotEqual(t, reflect.ValueOf(a).Pointer(), reflect.ValueOf(other.TickerToCIK()).Pointer())
}

func TestTableIsCopy(t *testing.T) {
	m := newStockMapper(t)
	tbl := m.Table()
	require.NoError(t, tbl.Append(table.Row{"CIK": "0000789019", "Ticker": "MSFT", "Name": "Microsoft Corp", "Exchange": "Nasdaq"}))

	assert.Equal(t, 9, m.Table().Len())
	assert.NotContains(t, m.TickerToCIK(), "MSFT")
}

func TestMappingConcurrentReads(t *testing.T) {
	m := newMutualFundMapper(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, d := range m.Definitions() {
				_, err := m.Mapping(d.Name)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
}

func TestUnknownMapping(t *testing.T) {
	m := newStockMapper(t)
	_, err := m.Mapping(mapper.SeriesIDToCIK)
	assert.True(t, errors.Is(err, mapper.ErrUnknownMapping))
}

func TestNewByVariant(t *testing.T) {
	m, err := mapper.New(retriever.Stocks, &staticFetcher{body: stockPayload}, "")
	require.NoError(t, err)
	assert.Equal(t, retriever.Stocks, m.Variant())
	assert.IsType(t, &mapper.StockMapper{}, m)

	m, err = mapper.New(retriever.MutualFunds, &staticFetcher{body: mutualFundPayload}, "")
	require.NoError(t, err)
	assert.Equal(t, retriever.MutualFunds, m.Variant())

	f := &staticFetcher{body: stockPayload}
	m, err = mapper.New("base", f, "")
	assert.Nil(t, m)
	assert.True(t, errors.Is(err, retriever.ErrUnknownVariant))
	assert.Empty(t, f.calls)
}

func TestNewReturnsNilOnFailure(t *testing.T) {
	m, err := mapper.New(retriever.Stocks, &staticFetcher{body: "{}"}, "")
	assert.Error(t, err)
	assert.Nil(t, m)
}

func TestFetchErrorPropagates(t *testing.T) {
	statusErr := &fetch.StatusError{URL: retriever.DefaultStockURL, StatusCode: http.StatusForbidden}
	m, err := mapper.NewStockMapper(mapper.FetcherFunc(func(string) ([]byte, error) {
		return nil, statusErr
	}), nil)
	assert.Nil(t, m)
	var got *fetch.StatusError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, http.StatusForbidden, got.StatusCode)
}

func TestInvalidPayload(t *testing.T) {
	_, err := mapper.NewStockMapper(&staticFetcher{body: "<html>blocked</html>"}, nil)
	assert.True(t, errors.Is(err, fetch.ErrInvalidPayload))
}

func TestMissingFieldIsSchemaError(t *testing.T) {
	// a mutual fund payload handed to the stock mapper
	m, err := mapper.NewStockMapper(&staticFetcher{body: mutualFundPayload}, nil)
	assert.Nil(t, m)
	var schemaErr *retriever.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "name", schemaErr.Field)
	assert.True(t, errors.Is(err, retriever.ErrMalformed))
}

func TestShortRecordIsSchemaError(t *testing.T) {
	body := `{"fields":["cik","seriesId","classId","symbol"],"data":[[2110,"S000009184","C000024954","LACAX"],[2110,"S000009184"]]}`
	m, err := mapper.NewMutualFundMapper(&staticFetcher{body: body}, nil)
	assert.Nil(t, m)
	assert.True(t, errors.Is(err, retriever.ErrMalformed))
	assert.Contains(t, err.Error(), "record 1")
}

func TestCSVRoundTrip(t *testing.T) {
	for _, m := range []mapper.Mapper{newStockMapper(t), newMutualFundMapper(t)} {
		var buf bytes.Buffer
		require.NoError(t, m.WriteCSV(&buf))

		back, err := table.ReadCSV(&buf)
		require.NoError(t, err)
		assert.Equal(t, m.Table().Len(), back.Len())
		assert.ElementsMatch(t, m.Table().Columns(), back.Columns())
	}
}

func TestSaveCSV(t *testing.T) {
	m := newStockMapper(t)
	path := filepath.Join(t.TempDir(), "mappings.csv")
	require.NoError(t, m.SaveCSV(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	back, err := table.ReadCSV(f)
	require.NoError(t, err)
	assert.Equal(t, m.Table().Rows(), back.Rows())

	assert.Error(t, m.SaveCSV(filepath.Join(t.TempDir(), "missing", "mappings.csv")))
}
