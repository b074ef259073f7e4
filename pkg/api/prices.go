package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"StockBoard/pkg/model"
)

// AddHistoricalPriceRequest 追加历史价格请求
type AddHistoricalPriceRequest struct {
	StockID int64           `json:"stock_id" binding:"required"`
	Price   decimal.Decimal `json:"price"`
	Volume  *int64          `json:"volume"`
	Date    time.Time       `json:"date" binding:"required"`
}

// AddHistoricalPrice 追加一条价格采样
func (h *Handlers) AddHistoricalPrice(c *gin.Context) {
	var req AddHistoricalPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !requirePositive(c, "price", req.Price) {
		return
	}
	if req.Volume != nil && *req.Volume < 0 {
		badRequest(c, "volume不能为负数")
		return
	}

	sample, err := h.db.Price().Append(req.StockID, req.Price, req.Volume, req.Date)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.publish(model.EventPriceAppended, sample.Symbol, sample)
	c.JSON(http.StatusOK, gin.H{"data": sample})
}

// HistoricalPricesQuery 历史价格查询参数
type HistoricalPricesQuery struct {
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
	Limit     int    `form:"limit,default=100" binding:"min=1,max=1000"`
}

// GetHistoricalPrices 查询区间内价格采样，最新的在前
func (h *Handlers) GetHistoricalPrices(c *gin.Context) {
	var q HistoricalPricesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err.Error())
		return
	}

	start, err := parseDate(q.StartDate)
	if err != nil {
		badRequest(c, "start_date格式错误")
		return
	}
	end, err := parseDate(q.EndDate)
	if err != nil {
		badRequest(c, "end_date格式错误")
		return
	}

	samples, err := h.db.Price().GetHistory(c.Param("symbol"), start, end, q.Limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": samples})
}
