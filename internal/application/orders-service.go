package application

import (
	"context"
	"time"

	"github.com/RaikyD/parcel-orders/internal/domain"
	"github.com/RaikyD/parcel-orders/internal/logger"
	"github.com/RaikyD/parcel-orders/internal/metrics"
	"github.com/RaikyD/parcel-orders/internal/progress"
	"github.com/RaikyD/parcel-orders/internal/query"
	"github.com/RaikyD/parcel-orders/internal/repository"
	"github.com/RaikyD/parcel-orders/internal/stats"
)

// EventPublisher receives an event after every successful mutation.
type EventPublisher interface {
	PublishEvent(ctx context.Context, ev domain.OrderEvent) error
}

type OrderProgress struct {
	OrderID           string    `json:"orderId"`
	CreatedAt         time.Time `json:"createdAt"`
	EstimatedDelivery time.Time `json:"estimatedDelivery"`
	progress.Progress
}

type OrdersService struct {
	repo    repository.OrderRepo
	pub     EventPublisher
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewOrdersService wires the repository with optional event publishing and
// metrics; pub and m may be nil.
func NewOrdersService(r repository.OrderRepo, pub EventPublisher, m *metrics.Metrics) *OrdersService {
	return &OrdersService{
		repo:    r,
		pub:     pub,
		metrics: m,
		now:     time.Now,
	}
}

func (s *OrdersService) CreateOrder(ctx context.Context, data domain.NewOrder) (domain.Order, error) {
	o, err := s.repo.Create(ctx, data)
	if err != nil {
		logger.Warn("create order failed", "user", data.UserID, "err", err)
		return domain.Order{}, err
	}
	logger.Info("order created", "id", o.ID, "user", o.UserID)

	if s.metrics != nil {
		s.metrics.OrdersCreated.Inc()
	}
	s.publish(ctx, domain.OrderEvent{
		Type:    domain.EventCreated,
		OrderID: o.ID,
		UserID:  o.UserID,
		Status:  o.Status,
		At:      o.CreatedAt,
	})
	return o, nil
}

// GetByID returns nil, nil when the order does not exist.
func (s *OrdersService) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		logger.Warn("get order failed", "id", id, "err", err)
		return nil, err
	}
	return o, nil
}

func (s *OrdersService) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListAll(ctx)
}

// ListUserOrders returns the user's orders newest first, narrowed by term and
// statusFilter (see query.Filter).
func (s *OrdersService) ListUserOrders(ctx context.Context, userID, term, statusFilter string) ([]domain.Order, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		logger.Warn("list user orders failed", "user", userID, "err", err)
		return nil, err
	}
	return query.Filter(query.SortByRecency(orders), term, statusFilter), nil
}

func (s *OrdersService) UserStats(ctx context.Context, userID string) (stats.Stats, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return stats.Stats{}, err
	}
	return stats.Compute(orders), nil
}

// Progress returns nil, nil when the order does not exist.
func (s *OrdersService) Progress(ctx context.Context, id string) (*OrderProgress, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil || o == nil {
		return nil, err
	}
	return &OrderProgress{
		OrderID:           o.ID,
		CreatedAt:         o.CreatedAt,
		EstimatedDelivery: progress.EstimatedDelivery(o.CreatedAt),
		Progress:          progress.Resolve(o.Status),
	}, nil
}

// UpdateStatus reports false when the order does not exist. Any status may
// replace any other; a move off the forward path is only logged.
func (s *OrdersService) UpdateStatus(ctx context.Context, id string, status domain.Status) (bool, error) {
	prev, err := s.repo.SwapStatus(ctx, id, status)
	if err != nil {
		logger.Warn("update status failed", "id", id, "err", err)
		return false, err
	}
	if prev == nil {
		return false, nil
	}
	if prev.Status != status && !prev.Status.CanTransitionTo(status) {
		logger.Warn("status change outside lifecycle", "id", id, "from", prev.Status, "to", status)
	}
	logger.Info("order status updated", "id", id, "status", status)

	if s.metrics != nil {
		s.metrics.StatusUpdates.WithLabelValues(string(status)).Inc()
	}
	s.publish(ctx, domain.OrderEvent{
		Type:    domain.EventStatusChanged,
		OrderID: id,
		UserID:  prev.UserID,
		Status:  status,
		At:      s.now().UTC(),
	})
	return true, nil
}

// DeleteOrder reports false when the order does not exist.
func (s *OrdersService) DeleteOrder(ctx context.Context, id string) (bool, error) {
	removed, err := s.repo.Remove(ctx, id)
	if err != nil {
		logger.Warn("delete order failed", "id", id, "err", err)
		return false, err
	}
	if removed == nil {
		return false, nil
	}
	logger.Info("order deleted", "id", id)

	if s.metrics != nil {
		s.metrics.OrdersDeleted.Inc()
	}
	s.publish(ctx, domain.OrderEvent{
		Type:    domain.EventDeleted,
		OrderID: id,
		UserID:  removed.UserID,
		At:      s.now().UTC(),
	})
	return true, nil
}

// publish never fails the caller: the mutation is already persisted.
func (s *OrdersService) publish(ctx context.Context, ev domain.OrderEvent) {
	if s.pub == nil {
		return
	}
	if err := s.pub.PublishEvent(ctx, ev); err != nil {
		logger.Warn("publish order event failed", "type", ev.Type, "id", ev.OrderID, "err", err)
		if s.metrics != nil {
			s.metrics.EventsFailed.Inc()
		}
	}
}
