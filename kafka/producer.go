package kafka

import (
	"context"
	"encoding/json"

	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/models"

	"github.com/segmentio/kafka-go"
)

// ProducerAPI is the publishing surface the order service depends on.
type ProducerAPI interface {
	SendOrderConfirmedEvent(event models.OrderConfirmedEvent) error
	Close()
}

type Producer struct {
	writer *kafka.Writer
	topic  string
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &Producer{
		writer: writer,
		topic:  topic,
	}
}

func (p *Producer) SendOrderConfirmedEvent(event models.OrderConfirmedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID),
		Value: data,
	}

	return p.writer.WriteMessages(context.Background(), msg)
}

func (p *Producer) Close() {
	_ = p.writer.Close()
}
