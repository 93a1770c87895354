package repository

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/RaikyD/parcel-orders/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderRepo interface {
	ListAll(ctx context.Context) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	Create(ctx context.Context, data domain.NewOrder) (domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	SwapStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error)
	Remove(ctx context.Context, id string) (*domain.Order, error)
}

// Store is the whole-collection persistence the repository works against.
type Store interface {
	Load(ctx context.Context) ([]domain.Order, error)
	Save(ctx context.Context, orders []domain.Order) error
}

// OrderRepository does every operation as load, modify, save of the full
// collection. mu serializes those cycles within one process; separate
// processes sharing a store still overwrite each other (last save wins).
type OrderRepository struct {
	store Store
	mu    sync.Mutex
	now   func() time.Time
}

type Option func(*OrderRepository)

// WithClock overrides time.Now, used for createdAt and updatedAt.
func WithClock(now func() time.Time) Option {
	return func(r *OrderRepository) { r.now = now }
}

func NewOrderRepository(s Store, opts ...Option) *OrderRepository {
	r := &OrderRepository{
		store: s,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.store.Load(ctx)
}

// ListByUser keeps the stored (insertion) order; sorting is up to the caller.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]domain.Order, 0)
	for _, o := range all {
		if o.UserID == userID {
			res = append(res, o)
		}
	}
	return res, nil
}

// GetByID returns nil, nil when no order has the id.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(all, id); i >= 0 {
		o := all[i]
		return &o, nil
	}
	return nil, nil
}

// Create assigns id and createdAt, defaults totalPrice to 0 and status to
// Created, and persists. Items, prices and country are stored as given.
func (r *OrderRepository) Create(ctx context.Context, data domain.NewOrder) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.store.Load(ctx)
	if err != nil {
		return domain.Order{}, err
	}

	now := r.now().UTC()
	o := domain.Order{
		ID:              newOrderID(now),
		UserID:          data.UserID,
		UserName:        data.UserName,
		DeliveryCountry: data.DeliveryCountry,
		Items:           data.Items,
		Status:          data.Status,
		CreatedAt:       now,
		TotalPrice:      data.TotalPrice,
		CustomsDetails:  data.CustomsDetails,
		ShippingCost:    data.ShippingCost,
	}
	if o.Items == nil {
		o.Items = []domain.Item{}
	}
	if o.Status == "" {
		o.Status = domain.StatusCreated
	}
	if o.TotalPrice == nil {
		zero := decimal.Zero
		o.TotalPrice = &zero
	}
	o = o.Clone()

	// в случае ошибки сохранения коллекция в хранилище остаётся прежней
	if err := r.store.Save(ctx, append(all, o)); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

// UpdateStatus writes status over whatever the order had; transitions are not
// checked. Returns false without writing when the id is unknown.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) (bool, error) {
	prev, err := r.SwapStatus(ctx, id, status)
	return prev != nil, err
}

// SwapStatus is UpdateStatus that also returns the order as it was before the
// write, read in the same locked cycle. nil, nil when the id is unknown.
func (r *OrderRepository) SwapStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(all, id)
	if i < 0 {
		return nil, nil
	}
	prev := all[i].Clone()

	now := r.now().UTC()
	all[i].Status = status
	all[i].UpdatedAt = &now

	if err := r.store.Save(ctx, all); err != nil {
		return nil, err
	}
	return &prev, nil
}

// Delete returns false without writing when the id is unknown.
func (r *OrderRepository) Delete(ctx context.Context, id string) (bool, error) {
	prev, err := r.Remove(ctx, id)
	return prev != nil, err
}

// Remove deletes the order and returns it. nil, nil when the id is unknown.
func (r *OrderRepository) Remove(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(all, id)
	if i < 0 {
		return nil, nil
	}
	removed := all[i]

	rest := make([]domain.Order, 0, len(all)-1)
	rest = append(rest, all[:i]...)
	rest = append(rest, all[i+1:]...)
	if err := r.store.Save(ctx, rest); err != nil {
		return nil, err
	}
	return &removed, nil
}

func indexOf(orders []domain.Order, id string) int {
	for i := range orders {
		if orders[i].ID == id {
			return i
		}
	}
	return -1
}

// newOrderID combines the creation time with 48 random bits.
func newOrderID(now time.Time) string {
	rnd := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return "order-" + strconv.FormatInt(now.UnixNano(), 10) + "-" + rnd
}
