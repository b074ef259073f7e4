package model

import (
	"time"
)

// EventType 市场事件类型
type EventType string

const (
	EventStockUpdated   EventType = "stock.updated"
	EventPriceAppended  EventType = "price.appended"
	EventHoldingChanged EventType = "holding.changed"
)

// MarketEvent 发布到消息队列的事件信封
type MarketEvent struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Symbol    string      `json:"symbol"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
