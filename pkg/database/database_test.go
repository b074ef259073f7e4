package database

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"StockBoard/pkg/model"
)

// newTestDB 每个测试一个独立的内存sqlite库
func newTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := NewWithDialector(sqlite.Open(dsn))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { db.Close() })
	return db
}

func mustDecimal(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return d
}

// createStock 测试辅助，建一只股票
func createStock(t *testing.T, db *DB, symbol, name, price, dailyChange string) *model.Stock {
	t.Helper()
	stock := &model.Stock{
		Symbol:             symbol,
		CompanyName:        name,
		CurrentPrice:       mustDecimal(t, price),
		DailyChange:        mustDecimal(t, dailyChange),
		DailyChangePercent: decimal.Zero,
	}
	require.NoError(t, db.Stock().Create(stock))
	return stock
}
