package database

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceAppend(t *testing.T) {
	db := newTestDB(t)
	stock := createStock(t, db, "AAPL", "Apple Inc.", "150", "0")

	volume := int64(50000)
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	sample, err := db.Price().Append(stock.ID, mustDecimal(t, "148.5"), &volume, date)
	require.NoError(t, err)

	assert.Equal(t, stock.ID, sample.StockID)
	assert.Equal(t, "AAPL", sample.Symbol)
	assert.True(t, sample.Price.Equal(mustDecimal(t, "148.5")))

	// 同一天可以重复采样
	_, err = db.Price().Append(stock.ID, mustDecimal(t, "149"), nil, date)
	require.NoError(t, err)
}

func TestPriceAppendUnknownStock(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Price().Append(999, mustDecimal(t, "10"), nil, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStockNotFound)
	assert.Contains(t, err.Error(), "999")
}

func TestPriceHistoryRange(t *testing.T) {
	db := newTestDB(t)
	stock := createStock(t, db, "AAPL", "Apple Inc.", "150", "0")

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		price := mustDecimal(t, "140").Add(decimal.NewFromInt(int64(i)))
		_, err := db.Price().Append(stock.ID, price, nil, base.AddDate(0, 0, i))
		require.NoError(t, err)
	}

	// [3月2日, 3月4日]闭区间，最新的在前
	samples, err := db.Price().GetHistory("aapl", base.AddDate(0, 0, 1), base.AddDate(0, 0, 3), 100)
	require.NoError(t, err)
	require.Len(t, samples, 3)
	assert.True(t, samples[0].Price.Equal(mustDecimal(t, "143")))
	assert.True(t, samples[1].Price.Equal(mustDecimal(t, "142")))
	assert.True(t, samples[2].Price.Equal(mustDecimal(t, "141")))

	// limit截断，保留最新的
	samples, err = db.Price().GetHistory("AAPL", base, base.AddDate(0, 0, 4), 2)
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.True(t, samples[0].Price.Equal(mustDecimal(t, "144")))
	assert.True(t, samples[1].Price.Equal(mustDecimal(t, "143")))
}
