package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"StockBoard/pkg/model"
)

// AddWatchlistItemRequest 添加自选股请求
type AddWatchlistItemRequest struct {
	UserID string  `json:"user_id" binding:"required"`
	Symbol string  `json:"symbol" binding:"required,max=10"`
	Notes  *string `json:"notes"`
}

// AddWatchlistItem 添加自选股，允许重复添加
func (h *Handlers) AddWatchlistItem(c *gin.Context) {
	var req AddWatchlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	item, err := h.db.Watchlist().Add(req.UserID, req.Symbol, req.Notes)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

// GetWatchlist 查询用户自选股列表
func (h *Handlers) GetWatchlist(c *gin.Context) {
	var q UserQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err.Error())
		return
	}

	items, err := h.db.Watchlist().GetByUser(q.UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

// UpdateWatchlistItemRequest 更新自选股请求
type UpdateWatchlistItemRequest struct {
	Notes model.Nullable[string] `json:"notes"`
}

// UpdateWatchlistItem 更新备注，请求不带字段时原样返回现有行
func (h *Handlers) UpdateWatchlistItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateWatchlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	var notes *string
	if req.Notes.Valid {
		notes = &req.Notes.Value
	}
	item, err := h.db.Watchlist().Update(id, notes, req.Notes.Set)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

// DeleteWatchlistItem 删除自选股，id不存在时deleted为false不报错
func (h *Handlers) DeleteWatchlistItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.db.Watchlist().Delete(id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": deleted}})
}
