package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"StockBoard/pkg/database"
	"StockBoard/pkg/model"
)

// EventPublisher 事件发布接口，为nil时不发布
type EventPublisher interface {
	PublishEvent(eventType model.EventType, symbol string, payload interface{}) error
}

// Handlers API处理程序
type Handlers struct {
	db        *database.DB
	publisher EventPublisher
}

// NewHandlers 创建新的API处理程序
func NewHandlers(db *database.DB, publisher EventPublisher) *Handlers {
	return &Handlers{
		db:        db,
		publisher: publisher,
	}
}

// HealthCheck 健康检查处理程序
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// ReadinessCheck 就绪检查处理程序
func (h *Handlers) ReadinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// handleError 按错误类型映射HTTP状态码
func (h *Handlers) handleError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, database.ErrStockNotFound),
		errors.Is(err, database.ErrHoldingNotFound),
		errors.Is(err, database.ErrWatchlistNotFound),
		errors.Is(err, database.ErrTaskNotFound):
		status = http.StatusNotFound
	case errors.Is(err, database.ErrSymbolExists):
		status = http.StatusConflict
	}

	log.Printf("请求处理失败: %v", err)
	c.JSON(status, gin.H{"error": err.Error()})
}

// badRequest 参数校验失败
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数: " + msg})
}

// parseID 解析路径中的数字id
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "id必须是数字")
		return 0, false
	}
	return id, true
}

// parseDate 接受RFC3339或YYYY-MM-DD两种日期格式
func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// publish 发布事件，失败只记录日志不影响请求
func (h *Handlers) publish(eventType model.EventType, symbol string, payload interface{}) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.PublishEvent(eventType, symbol, payload); err != nil {
		log.Printf("发布事件失败: %v", err)
	}
}

// requirePositive 校验数值必须为正
func requirePositive(c *gin.Context, name string, value decimal.Decimal) bool {
	if !value.IsPositive() {
		badRequest(c, name+"必须大于0")
		return false
	}
	return true
}
