package kafka

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/RaikyD/parcel-orders/internal/domain"
	"github.com/segmentio/kafka-go"
)

type Producer struct {
	w *kafka.Writer
}

func NewProducer(brokersSTR, topic string) *Producer {
	brokers := strings.Split(brokersSTR, ",")

	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
		},
	}
}

func (p *Producer) Close() error {
	return p.w.Close()
}

// PublishEvent writes ev keyed by order id, so events of one order stay in
// one partition and keep their order.
func (p *Producer) PublishEvent(ctx context.Context, ev domain.OrderEvent) error {
	msg, err := eventMessage(ev)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, msg)
}

func eventMessage(ev domain.OrderEvent) (kafka.Message, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(ev.OrderID),
		Value: b,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
			{Key: "event-type", Value: []byte(ev.Type)},
		},
	}, nil
}
