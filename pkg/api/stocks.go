package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"StockBoard/pkg/model"
)

// CreateStockRequest 创建股票请求
type CreateStockRequest struct {
	Symbol             string              `json:"symbol" binding:"required,max=10"`
	CompanyName        string              `json:"company_name" binding:"required"`
	CurrentPrice       decimal.Decimal     `json:"current_price"`
	DailyChange        decimal.Decimal     `json:"daily_change"`
	DailyChangePercent decimal.Decimal     `json:"daily_change_percent"`
	MarketCap          decimal.NullDecimal `json:"market_cap"`
	Volume             *int64              `json:"volume"`
	PERatio            decimal.NullDecimal `json:"pe_ratio"`
}

// CreateStock 创建股票，代码重复返回409
func (h *Handlers) CreateStock(c *gin.Context) {
	var req CreateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !requirePositive(c, "current_price", req.CurrentPrice) {
		return
	}
	if req.MarketCap.Valid && !req.MarketCap.Decimal.IsPositive() {
		badRequest(c, "market_cap必须大于0")
		return
	}
	if req.Volume != nil && *req.Volume < 0 {
		badRequest(c, "volume不能为负数")
		return
	}
	if req.PERatio.Valid && !req.PERatio.Decimal.IsPositive() {
		badRequest(c, "pe_ratio必须大于0")
		return
	}

	stock := model.Stock{
		Symbol:             req.Symbol,
		CompanyName:        req.CompanyName,
		CurrentPrice:       req.CurrentPrice,
		DailyChange:        req.DailyChange,
		DailyChangePercent: req.DailyChangePercent,
		MarketCap:          req.MarketCap,
		Volume:             req.Volume,
		PERatio:            req.PERatio,
	}
	if err := h.db.Stock().Create(&stock); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stock})
}

// UpdateStockRequest 部分更新股票请求
// 可空字段用Nullable区分"未提供"和"置空"
type UpdateStockRequest struct {
	CurrentPrice       *decimal.Decimal                `json:"current_price"`
	DailyChange        *decimal.Decimal                `json:"daily_change"`
	DailyChangePercent *decimal.Decimal                `json:"daily_change_percent"`
	MarketCap          model.Nullable[decimal.Decimal] `json:"market_cap"`
	Volume             model.Nullable[int64]           `json:"volume"`
	PERatio            model.Nullable[decimal.Decimal] `json:"pe_ratio"`
}

// UpdateStock 部分更新，只合并提供的字段，updated_at总是刷新
func (h *Handlers) UpdateStock(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	fields := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if req.CurrentPrice != nil {
		if !requirePositive(c, "current_price", *req.CurrentPrice) {
			return
		}
		fields["current_price"] = *req.CurrentPrice
	}
	if req.DailyChange != nil {
		fields["daily_change"] = *req.DailyChange
	}
	if req.DailyChangePercent != nil {
		fields["daily_change_percent"] = *req.DailyChangePercent
	}
	if req.MarketCap.Set {
		if req.MarketCap.Valid && !req.MarketCap.Value.IsPositive() {
			badRequest(c, "market_cap必须大于0")
			return
		}
		fields["market_cap"] = nullableValue(req.MarketCap)
	}
	if req.Volume.Set {
		if req.Volume.Valid && req.Volume.Value < 0 {
			badRequest(c, "volume不能为负数")
			return
		}
		fields["volume"] = nullableValue(req.Volume)
	}
	if req.PERatio.Set {
		if req.PERatio.Valid && !req.PERatio.Value.IsPositive() {
			badRequest(c, "pe_ratio必须大于0")
			return
		}
		fields["pe_ratio"] = nullableValue(req.PERatio)
	}

	stock, err := h.db.Stock().Update(id, fields)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.publish(model.EventStockUpdated, stock.Symbol, stock)
	c.JSON(http.StatusOK, gin.H{"data": stock})
}

// nullableValue 把Nullable转成可直接写库的值
func nullableValue[T any](n model.Nullable[T]) interface{} {
	if !n.Valid {
		return nil
	}
	return n.Value
}

// SearchStocksQuery 搜索请求参数
type SearchStocksQuery struct {
	Query string `form:"query" binding:"required"`
	Limit int    `form:"limit,default=20" binding:"min=1,max=100"`
}

// SearchStocks 按代码或公司名搜索
func (h *Handlers) SearchStocks(c *gin.Context) {
	var q SearchStocksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err.Error())
		return
	}

	stocks, err := h.db.Stock().Search(q.Query, q.Limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stocks})
}

// GetStockBySymbol 按代码查询，未找到时data为null
func (h *Handlers) GetStockBySymbol(c *gin.Context) {
	stock, err := h.db.Stock().GetBySymbol(c.Param("symbol"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stock})
}
