package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"StockBoard/pkg/model"
)

const streamName = "MARKET_STREAM"

// Publisher NATS JetStream事件发布器
// 行情和持仓变动事件发到market.*主题，供下游消费
type Publisher struct {
	conn      *nats.Conn
	jetStream jetstream.JetStream
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewPublisher 创建事件发布器
func NewPublisher(natsURL string) (*Publisher, error) {
	// 连接NATS
	nc, err := nats.Connect(natsURL,
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1), // 无限重连
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Printf("NATS连接断开: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Println("NATS重新连接成功")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("连接NATS失败: %w", err)
	}

	// 创建JetStream上下文
	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("创建JetStream失败: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	publisher := &Publisher{
		conn:      nc,
		jetStream: js,
		ctx:       ctx,
		cancel:    cancel,
	}

	if err := publisher.setupStream(); err != nil {
		log.Printf("警告: 设置Stream失败: %v", err)
	}

	return publisher, nil
}

// setupStream 设置市场事件Stream
func (p *Publisher) setupStream() error {
	_, err := p.jetStream.CreateOrUpdateStream(p.ctx, jetstream.StreamConfig{
		Name:        streamName,
		Subjects:    []string{"market.>"},
		Description: "市场数据变更事件流",
		Retention:   jetstream.LimitsPolicy,
		MaxMsgs:     100000,
		MaxBytes:    100 * 1024 * 1024,  // 100MB
		MaxAge:      7 * 24 * time.Hour, // 保留7天
	})
	if err != nil {
		return fmt.Errorf("创建/更新Stream失败: %w", err)
	}
	return nil
}

// PublishEvent 发布一条市场事件
func (p *Publisher) PublishEvent(eventType model.EventType, symbol string, payload interface{}) error {
	event := model.MarketEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Symbol:    symbol,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("序列化事件失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(p.ctx, 5*time.Second)
	defer cancel()

	subject := "market." + string(eventType)
	if _, err := p.jetStream.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("发布事件失败: %w", err)
	}
	return nil
}

// Close 关闭连接
func (p *Publisher) Close() {
	p.cancel()
	p.conn.Close()
}
