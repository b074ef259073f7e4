package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"StockBoard/pkg/model"
)

type PortfolioDB struct {
	db *gorm.DB
}

var hundred = decimal.NewFromInt(100)

// AddHolding 建仓或加仓
// 同一(user, stock)已有持仓时合并：数量相加，成本按数量加权平均
// 合并读加行锁，并发加仓不会基于过期数量覆盖写
// 并发建仓撞到(user_id, stock_id)唯一索引时重试一次，改走合并路径
func (p *PortfolioDB) AddHolding(userID, symbol string, quantity, cost decimal.Decimal) (*model.PortfolioHolding, error) {
	holding, err := p.addHolding(userID, symbol, quantity, cost)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		holding, err = p.addHolding(userID, symbol, quantity, cost)
	}
	return holding, err
}

func (p *PortfolioDB) addHolding(userID, symbol string, quantity, cost decimal.Decimal) (*model.PortfolioHolding, error) {
	var holding *model.PortfolioHolding

	err := p.db.Transaction(func(tx *gorm.DB) error {
		normalized := NormalizeSymbol(symbol)
		stock, err := findStockBySymbol(tx, normalized)
		if err != nil {
			return err
		}
		if stock == nil {
			return fmt.Errorf("%w: %s", ErrStockNotFound, symbol)
		}

		query := tx.Where("user_id = ? AND stock_id = ?", userID, stock.ID)
		// sqlite不支持FOR UPDATE，事务本身就是单写者
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var existing model.PortfolioHolding
		err = query.First(&existing).Error
		switch {
		case err == nil:
			// 加仓：加权平均成本，先用未舍入的均价算派生值再落库
			newQuantity := existing.Quantity.Add(quantity)
			newAverageCost := existing.Quantity.Mul(existing.AverageCost).
				Add(quantity.Mul(cost)).
				Div(newQuantity)

			existing.Quantity = newQuantity
			existing.AverageCost = newAverageCost
			existing.Revalue(stock.CurrentPrice)
			existing.AverageCost = newAverageCost.Round(4)

			if err := tx.Save(&existing).Error; err != nil {
				return fmt.Errorf("更新持仓失败: %w", err)
			}
			holding = &existing

		case errors.Is(err, gorm.ErrRecordNotFound):
			// 建仓
			h := model.PortfolioHolding{
				UserID:      userID,
				StockID:     stock.ID,
				Symbol:      stock.Symbol,
				Quantity:    quantity,
				AverageCost: cost,
			}
			h.Revalue(stock.CurrentPrice)
			h.AverageCost = cost.Round(4)

			if err := tx.Create(&h).Error; err != nil {
				return fmt.Errorf("创建持仓失败: %w", err)
			}
			holding = &h

		default:
			return fmt.Errorf("查询持仓失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return holding, nil
}

// UpdateHolding 部分更新数量/成本，按股票现价重算派生指标
func (p *PortfolioDB) UpdateHolding(id int64, quantity, cost *decimal.Decimal) (*model.PortfolioHolding, error) {
	var holding *model.PortfolioHolding

	err := p.db.Transaction(func(tx *gorm.DB) error {
		var existing model.PortfolioHolding
		err := tx.First(&existing, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %d", ErrHoldingNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("查询持仓失败: %w", err)
		}

		var stock model.Stock
		if err := tx.First(&stock, existing.StockID).Error; err != nil {
			return fmt.Errorf("查询持仓对应股票失败: %w", err)
		}

		if quantity != nil {
			existing.Quantity = *quantity
		}
		if cost != nil {
			existing.AverageCost = *cost
		}
		existing.Revalue(stock.CurrentPrice)
		existing.AverageCost = existing.AverageCost.Round(4)

		if err := tx.Save(&existing).Error; err != nil {
			return fmt.Errorf("更新持仓失败: %w", err)
		}
		holding = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return holding, nil
}

// GetByUser 查询用户全部持仓
func (p *PortfolioDB) GetByUser(userID string) ([]*model.PortfolioHolding, error) {
	var holdings []*model.PortfolioHolding
	err := p.db.Where("user_id = ?", userID).Order("symbol ASC").Find(&holdings).Error
	if err != nil {
		return nil, fmt.Errorf("查询持仓失败: %w", err)
	}
	return holdings, nil
}

// Summary 汇总用户持仓
// 没有持仓时返回全零汇总，不报错
// 日内变动取Σ(数量×股票日涨跌额)，而不是从总收益率反推
func (p *PortfolioDB) Summary(userID string) (*model.PortfolioSummary, error) {
	holdings, err := p.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	summary := &model.PortfolioSummary{
		UserID:        userID,
		HoldingsCount: len(holdings),
		LastUpdated:   time.Now(),
	}
	if len(holdings) == 0 {
		return summary, nil
	}

	dailyBySymbol, err := p.dailyChangeBySymbol(holdings)
	if err != nil {
		return nil, err
	}

	for _, h := range holdings {
		summary.TotalValue = summary.TotalValue.Add(h.CurrentValue)
		summary.TotalCost = summary.TotalCost.Add(h.Quantity.Mul(h.AverageCost))
		summary.TotalReturn = summary.TotalReturn.Add(h.TotalReturn)
		summary.DailyChange = summary.DailyChange.Add(h.Quantity.Mul(dailyBySymbol[h.StockID]))
	}

	summary.TotalCost = summary.TotalCost.Round(2)
	summary.DailyChange = summary.DailyChange.Round(2)
	if !summary.TotalCost.IsZero() {
		summary.TotalReturnPercent = summary.TotalReturn.Div(summary.TotalCost).Mul(hundred).Round(4)
	}
	base := summary.TotalValue.Sub(summary.DailyChange)
	if !base.IsZero() {
		summary.DailyChangePercent = summary.DailyChange.Div(base).Mul(hundred).Round(4)
	}
	return summary, nil
}

// dailyChangeBySymbol 取持仓对应股票的日涨跌额
func (p *PortfolioDB) dailyChangeBySymbol(holdings []*model.PortfolioHolding) (map[int64]decimal.Decimal, error) {
	ids := make([]int64, 0, len(holdings))
	for _, h := range holdings {
		ids = append(ids, h.StockID)
	}

	var stocks []*model.Stock
	if err := p.db.Where("id IN ?", ids).Find(&stocks).Error; err != nil {
		return nil, fmt.Errorf("查询持仓对应股票失败: %w", err)
	}

	changes := make(map[int64]decimal.Decimal, len(stocks))
	for _, s := range stocks {
		changes[s.ID] = s.DailyChange
	}
	return changes, nil
}

// Delete 删除持仓，返回是否真的删掉了一行
// 对不存在的id返回false而不是错误
func (p *PortfolioDB) Delete(id int64) (bool, error) {
	result := p.db.Delete(&model.PortfolioHolding{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("删除持仓失败: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// RevalueAll 用最新股价重算全部持仓的派生指标，返回更新的行数
// 定时任务调用，股价没变的持仓不动
func (p *PortfolioDB) RevalueAll() (int, error) {
	updated := 0
	err := p.db.Transaction(func(tx *gorm.DB) error {
		var holdings []*model.PortfolioHolding
		if err := tx.Find(&holdings).Error; err != nil {
			return fmt.Errorf("查询持仓失败: %w", err)
		}
		if len(holdings) == 0 {
			return nil
		}

		ids := make([]int64, 0, len(holdings))
		for _, h := range holdings {
			ids = append(ids, h.StockID)
		}
		var stocks []*model.Stock
		if err := tx.Where("id IN ?", ids).Find(&stocks).Error; err != nil {
			return fmt.Errorf("查询股票失败: %w", err)
		}
		prices := make(map[int64]decimal.Decimal, len(stocks))
		for _, s := range stocks {
			prices[s.ID] = s.CurrentPrice
		}

		for _, h := range holdings {
			price, ok := prices[h.StockID]
			if !ok {
				continue
			}
			before := h.CurrentValue
			h.Revalue(price)
			if h.CurrentValue.Equal(before) {
				continue
			}
			if err := tx.Save(h).Error; err != nil {
				return fmt.Errorf("更新持仓失败: %w", err)
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}
