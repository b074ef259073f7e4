package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"StockBoard/pkg/model"
)

// AddHoldingRequest 建仓/加仓请求
type AddHoldingRequest struct {
	UserID      string          `json:"user_id" binding:"required"`
	Symbol      string          `json:"symbol" binding:"required,max=10"`
	Quantity    decimal.Decimal `json:"quantity"`
	AverageCost decimal.Decimal `json:"average_cost"`
}

// AddPortfolioHolding 建仓或加仓，已持有时按数量加权合并
func (h *Handlers) AddPortfolioHolding(c *gin.Context) {
	var req AddHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !requirePositive(c, "quantity", req.Quantity) {
		return
	}
	if !requirePositive(c, "average_cost", req.AverageCost) {
		return
	}

	holding, err := h.db.Portfolio().AddHolding(req.UserID, req.Symbol, req.Quantity, req.AverageCost)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.publish(model.EventHoldingChanged, holding.Symbol, holding)
	c.JSON(http.StatusOK, gin.H{"data": holding})
}

// UpdateHoldingRequest 部分更新持仓请求
type UpdateHoldingRequest struct {
	Quantity    *decimal.Decimal `json:"quantity"`
	AverageCost *decimal.Decimal `json:"average_cost"`
}

// UpdatePortfolioHolding 更新数量/成本并重算派生指标
func (h *Handlers) UpdatePortfolioHolding(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Quantity != nil && !requirePositive(c, "quantity", *req.Quantity) {
		return
	}
	if req.AverageCost != nil && !requirePositive(c, "average_cost", *req.AverageCost) {
		return
	}

	holding, err := h.db.Portfolio().UpdateHolding(id, req.Quantity, req.AverageCost)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.publish(model.EventHoldingChanged, holding.Symbol, holding)
	c.JSON(http.StatusOK, gin.H{"data": holding})
}

// UserQuery 按用户查询的通用参数
type UserQuery struct {
	UserID string `form:"user_id" binding:"required"`
}

// GetPortfolio 查询用户全部持仓
func (h *Handlers) GetPortfolio(c *gin.Context) {
	var q UserQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err.Error())
		return
	}

	holdings, err := h.db.Portfolio().GetByUser(q.UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": holdings})
}

// GetPortfolioSummary 持仓汇总，没有持仓时返回全零汇总
func (h *Handlers) GetPortfolioSummary(c *gin.Context) {
	var q UserQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err.Error())
		return
	}

	summary, err := h.db.Portfolio().Summary(q.UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": summary})
}

// DeletePortfolioHolding 删除持仓，id不存在时deleted为false不报错
func (h *Handlers) DeletePortfolioHolding(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.db.Portfolio().Delete(id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": deleted}})
}
