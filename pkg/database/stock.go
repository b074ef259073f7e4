package database

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"StockBoard/pkg/model"
)

type StockDB struct {
	db *gorm.DB
}

// NormalizeSymbol 统一股票代码格式：去空白并转大写
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Create 创建股票，代码重复时返回ErrSymbolExists
// 入库前统一大写，重复靠symbol唯一索引拦截，并发创建也不会落两行
func (s *StockDB) Create(stock *model.Stock) error {
	stock.Symbol = NormalizeSymbol(stock.Symbol)

	if err := s.db.Create(stock).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", ErrSymbolExists, stock.Symbol)
		}
		return fmt.Errorf("创建股票失败: %w", err)
	}
	return nil
}

// Update 部分更新，fields以列名为键，只更新提供的字段
// updated_at由调用方放进fields，每次更新都会刷新
func (s *StockDB) Update(id int64, fields map[string]interface{}) (*model.Stock, error) {
	result := s.db.Model(&model.Stock{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, fmt.Errorf("更新股票失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: %d", ErrStockNotFound, id)
	}

	var stock model.Stock
	if err := s.db.First(&stock, id).Error; err != nil {
		return nil, fmt.Errorf("查询股票失败: %w", err)
	}
	return &stock, nil
}

// GetBySymbol 按代码查询，大小写不敏感
// 未找到或代码为空时返回nil而不是错误
func (s *StockDB) GetBySymbol(symbol string) (*model.Stock, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, nil
	}
	return findStockBySymbol(s.db, symbol)
}

// Resolve 按代码解析股票，未找到时返回ErrStockNotFound
func (s *StockDB) Resolve(symbol string) (*model.Stock, error) {
	stock, err := s.GetBySymbol(symbol)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, fmt.Errorf("%w: %s", ErrStockNotFound, symbol)
	}
	return stock, nil
}

// GetByID 按id查询，未找到时返回ErrStockNotFound
func (s *StockDB) GetByID(id int64) (*model.Stock, error) {
	var stock model.Stock
	err := s.db.First(&stock, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrStockNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("查询股票失败: %w", err)
	}
	return &stock, nil
}

// Search 按代码或公司名模糊搜索，结果按相关度排序：
// 代码完全匹配 > 代码前缀匹配 > 公司名包含 > 其余匹配，同级按代码升序
func (s *StockDB) Search(keyword string, limit int) ([]*model.Stock, error) {
	q := strings.ToLower(strings.TrimSpace(keyword))
	pattern := "%" + q + "%"

	var stocks []*model.Stock
	err := s.db.
		Where("lower(symbol) LIKE ? OR lower(company_name) LIKE ?", pattern, pattern).
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE WHEN lower(symbol) = ? THEN 1 WHEN lower(symbol) LIKE ? THEN 2 WHEN lower(company_name) LIKE ? THEN 3 ELSE 4 END, symbol ASC",
			Vars:               []interface{}{q, q + "%", pattern},
			WithoutParentheses: true,
		}}).
		Limit(limit).
		Find(&stocks).Error
	if err != nil {
		return nil, fmt.Errorf("搜索股票失败: %w", err)
	}
	return stocks, nil
}

// findStockBySymbol 共用查询，事务内也可调用
func findStockBySymbol(tx *gorm.DB, normalized string) (*model.Stock, error) {
	var stock model.Stock
	err := tx.Where("upper(symbol) = ?", normalized).First(&stock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询股票失败: %w", err)
	}
	return &stock, nil
}
