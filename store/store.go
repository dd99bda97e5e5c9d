// Package store keeps a SQLite snapshot of the mapper tables, one table per variant.
// Each save replaces the previous snapshot.
package store

import (
	"fmt"

	"github.com/oarkflow/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oarkflow/cikmapper/retriever"
	"github.com/oarkflow/cikmapper/table"
)

const batchSize = 500

// StockRecord is one row of the stock table
type StockRecord struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	CIK      string `gorm:"index;size:10" json:"cik"`
	Ticker   string `gorm:"index" json:"ticker"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
}

// MutualFundRecord is one row of the mutual fund table
type MutualFundRecord struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	CIK      string `gorm:"index;size:10" json:"cik"`
	Ticker   string `gorm:"index" json:"ticker"`
	SeriesID string `gorm:"index" json:"series_id"`
	ClassID  string `gorm:"index" json:"class_id"`
}

// Store is a SQLite database holding the latest tables
type Store struct {
	DB *gorm.DB
}

// Open opens or creates the database at path and migrates both tables.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "database open error: "+path, "")
	}
	if err := db.AutoMigrate(&StockRecord{}, &MutualFundRecord{}); err != nil {
		return nil, errors.Wrap(err, "database migrate error: "+path, "")
	}
	return &Store{DB: db}, nil
}

// Close releases the underlying connection
func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func model(v retriever.Variant) (any, error) {
	switch v {
	case retriever.Stocks:
		return &StockRecord{}, nil
	case retriever.MutualFunds:
		return &MutualFundRecord{}, nil
	}
	return nil, fmt.Errorf("%w: %q", retriever.ErrUnknownVariant, string(v))
}

func records(v retriever.Variant, t *table.Table) any {
	rows := t.Rows()
	if v == retriever.Stocks {
		out := make([]StockRecord, 0, len(rows))
		for _, r := range rows {
			out = append(out, StockRecord{
				CIK:      r[retriever.ColCIK],
				Ticker:   r[retriever.ColTicker],
				Name:     r[retriever.ColName],
				Exchange: r[retriever.ColExchange],
			})
		}
		return out
	}
	out := make([]MutualFundRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, MutualFundRecord{
			CIK:      r[retriever.ColCIK],
			Ticker:   r[retriever.ColTicker],
			SeriesID: r[retriever.ColSeriesID],
			ClassID:  r[retriever.ColClassID],
		})
	}
	return out
}

// Save replaces the variant's table with the rows of t.
func (s *Store) Save(v retriever.Variant, t *table.Table) error {
	m, err := model(v)
	if err != nil {
		return err
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
			return err
		}
		if t.Len() == 0 {
			return nil
		}
		return tx.CreateInBatches(records(v, t), batchSize).Error
	})
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("saving %s snapshot", v), "")
	}
	logrus.Infof("%s: stored %d rows", v, t.Len())
	return nil
}

// Count returns the number of stored rows for the variant
func (s *Store) Count(v retriever.Variant) (int64, error) {
	m, err := model(v)
	if err != nil {
		return 0, err
	}
	var n int64
	err = s.DB.Model(m).Count(&n).Error
	return n, err
}

// StocksByTicker returns the stock rows listing ticker
func (s *Store) StocksByTicker(ticker string) ([]StockRecord, error) {
	var out []StockRecord
	err := s.DB.Where("ticker = ?", ticker).Order("id").Find(&out).Error
	return out, err
}

// StocksByCIK returns every stock row of a company
func (s *Store) StocksByCIK(cik string) ([]StockRecord, error) {
	var out []StockRecord
	err := s.DB.Where("cik = ?", cik).Order("id").Find(&out).Error
	return out, err
}

// MutualFundsBySeries returns every class row of a series
func (s *Store) MutualFundsBySeries(seriesID string) ([]MutualFundRecord, error) {
	var out []MutualFundRecord
	err := s.DB.Where("series_id = ?", seriesID).Order("id").Find(&out).Error
	return out, err
}
