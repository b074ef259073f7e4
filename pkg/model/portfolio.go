package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PortfolioHolding 用户在某只股票上的持仓
type PortfolioHolding struct {
	ID                 int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID             string          `gorm:"size:255;not null;uniqueIndex:idx_user_stock" json:"user_id"`
	StockID            int64           `gorm:"not null;uniqueIndex:idx_user_stock" json:"stock_id"`
	Symbol             string          `gorm:"size:10;not null" json:"symbol"` // 冗余字段，避免查询时join
	Quantity           decimal.Decimal `gorm:"type:numeric(12,4);not null" json:"quantity"`
	AverageCost        decimal.Decimal `gorm:"type:numeric(12,4);not null" json:"average_cost"`
	CurrentValue       decimal.Decimal `gorm:"type:numeric(16,2);not null" json:"current_value"`
	TotalReturn        decimal.Decimal `gorm:"type:numeric(16,2);not null" json:"total_return"`
	TotalReturnPercent decimal.Decimal `gorm:"type:numeric(8,4);not null" json:"total_return_percent"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

func (PortfolioHolding) TableName() string {
	return "portfolio_holdings"
}

// Revalue 按股票现价重新计算三个派生指标
// 成本为0时收益率固定为0，避免除零
func (h *PortfolioHolding) Revalue(price decimal.Decimal) {
	cost := h.Quantity.Mul(h.AverageCost)
	h.CurrentValue = h.Quantity.Mul(price).Round(2)
	h.TotalReturn = h.CurrentValue.Sub(cost).Round(2)
	if cost.IsZero() {
		h.TotalReturnPercent = decimal.Zero
		return
	}
	h.TotalReturnPercent = h.CurrentValue.Sub(cost).Div(cost).Mul(decimal.NewFromInt(100)).Round(4)
}

// PortfolioSummary 用户持仓汇总（计算值，不落库）
type PortfolioSummary struct {
	UserID             string          `json:"user_id"`
	TotalValue         decimal.Decimal `json:"total_value"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	TotalReturn        decimal.Decimal `json:"total_return"`
	TotalReturnPercent decimal.Decimal `json:"total_return_percent"`
	DailyChange        decimal.Decimal `json:"daily_change"`
	DailyChangePercent decimal.Decimal `json:"daily_change_percent"`
	HoldingsCount      int             `json:"holdings_count"`
	LastUpdated        time.Time       `json:"last_updated"`
}
