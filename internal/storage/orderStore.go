package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/RaikyD/parcel-orders/internal/domain"
	"github.com/RaikyD/parcel-orders/internal/logger"
)

// OrderStore persists the whole order collection as one JSON array under a
// single collection key.
type OrderStore struct {
	kv  KV
	key string
}

func NewOrderStore(kv KV, collectionKey string) *OrderStore {
	return &OrderStore{kv: kv, key: collectionKey}
}

// Load returns the stored collection. A missing or unparsable payload yields an
// empty collection; only a failure of the backend itself is returned.
func (s *OrderStore) Load(ctx context.Context) ([]domain.Order, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	if len(raw) == 0 {
		return []domain.Order{}, nil
	}

	var orders []domain.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		logger.Warn("stored orders payload is corrupt; using empty collection", "key", s.key, "err", err)
		return []domain.Order{}, nil
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

// Save replaces the stored collection.
func (s *OrderStore) Save(ctx context.Context, orders []domain.Order) error {
	if orders == nil {
		orders = []domain.Order{}
	}
	payload, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("marshal orders: %w", err)
	}
	if err := s.kv.Put(ctx, s.key, payload); err != nil {
		return fmt.Errorf("save orders: %w", err)
	}
	return nil
}
