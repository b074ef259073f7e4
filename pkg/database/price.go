package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"StockBoard/pkg/model"
)

type PriceDB struct {
	db *gorm.DB
}

// Append 追加一条价格采样，同一天重复采样不去重
func (p *PriceDB) Append(stockID int64, price decimal.Decimal, volume *int64, date time.Time) (*model.HistoricalPrice, error) {
	var stock model.Stock
	err := p.db.First(&stock, stockID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrStockNotFound, stockID)
	}
	if err != nil {
		return nil, fmt.Errorf("查询股票失败: %w", err)
	}

	sample := model.HistoricalPrice{
		StockID: stock.ID,
		Symbol:  stock.Symbol,
		Price:   price.Round(4),
		Volume:  volume,
		Date:    date,
	}
	if err := p.db.Create(&sample).Error; err != nil {
		return nil, fmt.Errorf("保存历史价格失败: %w", err)
	}
	return &sample, nil
}

// GetHistory 查询[start, end]闭区间内的采样，最新的在前
func (p *PriceDB) GetHistory(symbol string, start, end time.Time, limit int) ([]*model.HistoricalPrice, error) {
	var samples []*model.HistoricalPrice
	err := p.db.
		Where("upper(symbol) = ? AND date BETWEEN ? AND ?", NormalizeSymbol(symbol), start, end).
		Order("date DESC").
		Limit(limit).
		Find(&samples).Error
	if err != nil {
		return nil, fmt.Errorf("查询历史价格失败: %w", err)
	}
	return samples, nil
}
