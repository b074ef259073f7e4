package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// HistoricalPrice 历史价格采样，只追加不更新
type HistoricalPrice struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	StockID   int64           `gorm:"not null;index" json:"stock_id"`
	Symbol    string          `gorm:"size:10;not null;index" json:"symbol"`
	Price     decimal.Decimal `gorm:"type:numeric(12,4);not null" json:"price"`
	Volume    *int64          `json:"volume"`
	Date      time.Time       `gorm:"not null;index" json:"date"`
	CreatedAt time.Time       `json:"created_at"`
}

func (HistoricalPrice) TableName() string {
	return "historical_prices"
}
