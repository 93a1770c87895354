package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/RaikyD/parcel-orders/internal/domain"
	"github.com/RaikyD/parcel-orders/internal/logger"
	"github.com/segmentio/kafka-go"
)

type ConsumerConfig struct {
	Brokers string
	Topic   string
	GroupID string
}

// OrderCreator is the part of the orders service the consumer needs.
type OrderCreator interface {
	CreateOrder(ctx context.Context, data domain.NewOrder) (domain.Order, error)
}

// StartConsumer reads create-order commands (domain.NewOrder JSON) until ctx
// is done. Invalid messages are committed and skipped; store failures are
// retried on the same message after a pause, without committing.
func StartConsumer(ctx context.Context, svc OrderCreator, cfg ConsumerConfig) (*kafka.Reader, error) {
	brokers := strings.Split(cfg.Brokers, ",")

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:         brokers,
		GroupID:         cfg.GroupID,
		Topic:           cfg.Topic,
		MinBytes:        1,
		MaxBytes:        10e6,
		CommitInterval:  0,
		StartOffset:     kafka.FirstOffset,
		ReadLagInterval: -1,
	})

	logger.Info("kafka consumer starting", "brokers", cfg.Brokers, "topic", cfg.Topic, "group", cfg.GroupID)

	go func() {
		defer r.Close()
		consume(ctx, r, svc, 300*time.Millisecond)
	}()
	return r, nil
}

// messageReader is the subset of *kafka.Reader the consume loop uses.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// consume handles one message at a time. A message that failed with
// resultRetry is handled again until it succeeds, so its offset is never
// committed past.
func consume(ctx context.Context, r messageReader, svc OrderCreator, backoff time.Duration) {
	for {
		m, err := r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Warn("kafka fetch error", "err", err)
			if !wait(ctx, backoff) {
				return
			}
			continue
		}
		logger.Info("command fetched", "partition", m.Partition, "offset", m.Offset)

		for handleCommand(ctx, svc, m.Value) == resultRetry {
			if !wait(ctx, backoff) {
				return
			}
		}

		if err := r.CommitMessages(ctx, m); err != nil {
			logger.Warn("[kafka] commit failed", "err", err)
		} else {
			logger.Info("[kafka] committed", "topic", m.Topic, "partition", m.Partition, "offset", m.Offset)
		}
	}
}

// wait reports false when ctx ended before d elapsed.
func wait(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

type handleResult int

const (
	resultDone handleResult = iota
	resultSkip
	resultRetry
)

func handleCommand(ctx context.Context, svc OrderCreator, value []byte) handleResult {
	var data domain.NewOrder
	if err := json.Unmarshal(value, &data); err != nil {
		logger.Warn("kafka invalid json. skip and commit", "err", err)
		return resultSkip
	}
	if strings.TrimSpace(data.UserID) == "" {
		logger.Warn("kafka command without userId. skip and commit")
		return resultSkip
	}

	o, err := svc.CreateOrder(ctx, data)
	if err != nil {
		logger.Warn("kafka create order fail, will retry", "err", err)
		return resultRetry
	}
	logger.Info("order created from kafka", "id", o.ID, "user", o.UserID)
	return resultDone
}
