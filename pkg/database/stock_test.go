package database

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"StockBoard/pkg/model"
)

func TestStockCreate(t *testing.T) {
	db := newTestDB(t)

	stock := &model.Stock{
		Symbol:             " aapl ",
		CompanyName:        "Apple Inc.",
		CurrentPrice:       mustDecimal(t, "150.25"),
		DailyChange:        mustDecimal(t, "2.5"),
		DailyChangePercent: mustDecimal(t, "1.69"),
	}
	require.NoError(t, db.Stock().Create(stock))

	// 代码统一成大写
	assert.Equal(t, "AAPL", stock.Symbol)
	assert.NotZero(t, stock.ID)
	assert.True(t, stock.CurrentPrice.Equal(mustDecimal(t, "150.25")))
}

func TestStockCreateDuplicateSymbol(t *testing.T) {
	db := newTestDB(t)
	createStock(t, db, "AAPL", "Apple Inc.", "150", "0")

	err := db.Stock().Create(&model.Stock{
		Symbol:       "aapl", // 大小写不同也算重复
		CompanyName:  "Apple Clone",
		CurrentPrice: mustDecimal(t, "1"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSymbolExists)
	assert.Contains(t, err.Error(), "AAPL")
}

func TestStockSymbolUniqueIndex(t *testing.T) {
	db := newTestDB(t)
	createStock(t, db, "AAPL", "Apple Inc.", "150", "0")

	// 绕过Create直接插重复行，唯一索引兜底
	// 并发创建时输家拿到的就是这个错误，Create把它映射成ErrSymbolExists
	err := db.db.Create(&model.Stock{
		Symbol:       "AAPL",
		CompanyName:  "Apple Clone",
		CurrentPrice: mustDecimal(t, "1"),
	}).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestStockGetBySymbol(t *testing.T) {
	db := newTestDB(t)
	createStock(t, db, "AAPL", "Apple Inc.", "150", "0")

	// 大小写不敏感且去空白
	stock, err := db.Stock().GetBySymbol("  aapl  ")
	require.NoError(t, err)
	require.NotNil(t, stock)
	assert.Equal(t, "AAPL", stock.Symbol)

	// 未找到返回nil而不是错误
	stock, err = db.Stock().GetBySymbol("TSLA")
	require.NoError(t, err)
	assert.Nil(t, stock)

	// 空代码同样返回nil
	stock, err = db.Stock().GetBySymbol("   ")
	require.NoError(t, err)
	assert.Nil(t, stock)
}

func TestStockUpdatePartial(t *testing.T) {
	db := newTestDB(t)
	created := createStock(t, db, "AAPL", "Apple Inc.", "150", "2.5")

	time.Sleep(10 * time.Millisecond)

	updated, err := db.Stock().Update(created.ID, map[string]interface{}{
		"current_price": mustDecimal(t, "155.75"),
		"updated_at":    time.Now(),
	})
	require.NoError(t, err)

	// 只有提供的字段变了
	assert.True(t, updated.CurrentPrice.Equal(mustDecimal(t, "155.75")))
	assert.True(t, updated.DailyChange.Equal(mustDecimal(t, "2.5")))
	assert.Equal(t, "Apple Inc.", updated.CompanyName)
	// updated_at刷新
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestStockUpdateClearNullable(t *testing.T) {
	db := newTestDB(t)
	volume := int64(1000)
	stock := &model.Stock{
		Symbol:       "AAPL",
		CompanyName:  "Apple Inc.",
		CurrentPrice: mustDecimal(t, "150"),
		MarketCap:    decimal.NullDecimal{Decimal: mustDecimal(t, "2500000000"), Valid: true},
		Volume:       &volume,
	}
	require.NoError(t, db.Stock().Create(stock))

	updated, err := db.Stock().Update(stock.ID, map[string]interface{}{
		"market_cap": nil,
		"volume":     nil,
		"updated_at": time.Now(),
	})
	require.NoError(t, err)
	assert.False(t, updated.MarketCap.Valid)
	assert.Nil(t, updated.Volume)
}

func TestStockUpdateNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Stock().Update(999, map[string]interface{}{
		"updated_at": time.Now(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStockNotFound)
	assert.Contains(t, err.Error(), "999")
}

func TestStockSearchRanking(t *testing.T) {
	db := newTestDB(t)
	createStock(t, db, "GOOG", "Aaplify Holdings", "100", "0") // 公司名包含
	createStock(t, db, "AAPLY", "Levered Apple Fund", "10", "0")
	createStock(t, db, "AAPLX", "Apple ETF", "10", "0") // 代码前缀
	createStock(t, db, "AAPL", "Apple Inc.", "150", "0")
	createStock(t, db, "MSFT", "Microsoft", "300", "0") // 不匹配

	results, err := db.Stock().Search("AAPL", 20)
	require.NoError(t, err)
	require.Len(t, results, 4)

	// 完全匹配 > 前缀匹配(按代码升序) > 公司名包含
	assert.Equal(t, "AAPL", results[0].Symbol)
	assert.Equal(t, "AAPLX", results[1].Symbol)
	assert.Equal(t, "AAPLY", results[2].Symbol)
	assert.Equal(t, "GOOG", results[3].Symbol)
}

func TestStockSearchCaseInsensitiveAndLimit(t *testing.T) {
	db := newTestDB(t)
	createStock(t, db, "AAPL", "Apple Inc.", "150", "0")
	createStock(t, db, "AAPLX", "Apple ETF", "10", "0")

	results, err := db.Stock().Search("aapl", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "AAPL", results[0].Symbol)
}
