package model

import (
	"time"
)

// WatchlistItem 自选股条目，同一用户可重复添加同一只股票
type WatchlistItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"size:255;not null;index" json:"user_id"`
	StockID   int64     `gorm:"not null;index" json:"stock_id"`
	Symbol    string    `gorm:"size:10;not null" json:"symbol"` // 冗余字段，避免查询时join
	Notes     *string   `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

func (WatchlistItem) TableName() string {
	return "watchlist"
}
