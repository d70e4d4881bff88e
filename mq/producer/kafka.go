package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Xushengqwer/foundation_service/config"
)

// KafkaProducer Kafka 消息生产者。
// 所有方法在 nil 接收者上都是空操作，未配置 brokers 时服务照常运行。
type KafkaProducer struct {
	writer *kafka.Writer
	logger *zap.Logger
	topics config.Topics
}

// NewKafkaProducer 创建一个新的 Kafka 生产者实例
func NewKafkaProducer(cfg config.KafkaConfig, logger *zap.Logger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaProducer{
		writer: writer,
		logger: logger,
		topics: cfg.Topics,
	}
}

// SendEvent 发送事件到指定 Kafka 主题，key 用于同一实体的消息落到同一分区
func (p *KafkaProducer) SendEvent(ctx context.Context, topic, key string, event interface{}) error {
	if p == nil || topic == "" {
		return nil
	}
	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("序列化 Kafka 事件失败", zap.Error(err), zap.String("topic", topic))
		return err
	}

	p.logger.Debug("发送 Kafka 消息", zap.String("topic", topic), zap.ByteString("payload", eventBytes))
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: eventBytes,
	})
	if err != nil {
		p.logger.Error("写入 Kafka 消息失败", zap.Error(err), zap.String("topic", topic))
	} else {
		p.logger.Info("成功发送 Kafka 消息", zap.String("topic", topic))
	}
	return err
}

// Close 关闭底层 writer
func (p *KafkaProducer) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}

// SendContentEvent 发送文章生命周期事件（post.published / post.archived / post.deleted）
func (p *KafkaProducer) SendContentEvent(ctx context.Context, eventType string, post PostSnapshot, actorID uint64) error {
	if p == nil {
		return nil
	}
	event := ContentEvent{
		EventID:   uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		Post:      post,
		ActorID:   actorID,
	}
	return p.SendEvent(ctx, p.topics.ContentEvents, post.Slug, event)
}

// SendEngagementEvent 发送公开表单提交事件，供通知或 CRM 等下游服务消费
func (p *KafkaProducer) SendEngagementEvent(ctx context.Context, eventType string, entityID uint64, payload map[string]interface{}) error {
	if p == nil {
		return nil
	}
	event := EngagementEvent{
		EventID:   uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		EntityID:  entityID,
		Payload:   payload,
	}
	return p.SendEvent(ctx, p.topics.EngagementEvents, eventType, event)
}
