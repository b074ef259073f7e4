package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// 数值字段在JSON中输出为数字而不是字符串
	decimal.MarshalJSONWithoutQuotes = true
}

// Stock 股票基础信息
type Stock struct {
	ID                 int64               `gorm:"primaryKey;autoIncrement" json:"id"`
	Symbol             string              `gorm:"size:10;not null;uniqueIndex" json:"symbol"`
	CompanyName        string              `gorm:"type:text;not null" json:"company_name"`
	CurrentPrice       decimal.Decimal     `gorm:"type:numeric(12,4);not null" json:"current_price"`
	DailyChange        decimal.Decimal     `gorm:"type:numeric(12,4);not null" json:"daily_change"`
	DailyChangePercent decimal.Decimal     `gorm:"type:numeric(8,4);not null" json:"daily_change_percent"`
	MarketCap          decimal.NullDecimal `gorm:"column:market_cap;type:numeric(16,2)" json:"market_cap"`
	Volume             *int64              `json:"volume"`
	PERatio            decimal.NullDecimal `gorm:"column:pe_ratio;type:numeric(8,2)" json:"pe_ratio"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

func (Stock) TableName() string {
	return "stocks"
}
