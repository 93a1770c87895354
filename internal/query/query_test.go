package query_test

import (
	"testing"
	"time"

	"github.com/RaikyD/parcel-orders/internal/domain"
	"github.com/RaikyD/parcel-orders/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoOrders() []domain.Order {
	return []domain.Order{
		{ID: "order-1", DeliveryCountry: "Poland", Items: []domain.Item{{Title: "Lamp"}}, Status: "Створено"},
		{ID: "order-2", DeliveryCountry: "Germany", Items: []domain.Item{{Title: "Chair"}}, Status: "Доставлено"},
	}
}

func ids(orders []domain.Order) []string {
	res := make([]string, 0, len(orders))
	for _, o := range orders {
		res = append(res, o.ID)
	}
	return res
}

func TestFilter(t *testing.T) {
	orders := twoOrders()

	tests := []struct {
		name   string
		term   string
		status string
		want   []string
	}{
		{"item title, case-insensitive", "lamp", "", []string{"order-1"}},
		{"status only", "", "Доставлено", []string{"order-2"}},
		{"term in both ids", "o", query.StatusAll, []string{"order-1", "order-2"}},
		{"country", "GERM", "", []string{"order-2"}},
		{"id", "order-2", "all", []string{"order-2"}},
		{"term and status anded", "lamp", "Доставлено", []string{}},
		{"no match", "sofa", "", []string{}},
		{"everything", "", "", []string{"order-1", "order-2"}},
		{"status not present", "", "В обробці", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(query.Filter(orders, tt.term, tt.status)))
		})
	}
}

func TestFilter_CyrillicTerm(t *testing.T) {
	orders := []domain.Order{
		{ID: "a", DeliveryCountry: "Україна"},
		{ID: "b", DeliveryCountry: "Польща", Items: []domain.Item{{Title: "Лампа"}}},
	}

	assert.Equal(t, []string{"a"}, ids(query.Filter(orders, "УКР", "")))
	assert.Equal(t, []string{"b"}, ids(query.Filter(orders, "лам", "")))
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	orders := twoOrders()
	before := twoOrders()

	res := query.Filter(orders, "chair", "")
	require.Len(t, res, 1)
	res[0].ID = "changed"

	assert.Equal(t, before, orders)
	assert.Equal(t, []string{"order-1", "order-2"}, ids(query.Filter(orders, "", "")))
}

func TestSortByRecency(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	orders := []domain.Order{
		{ID: "old", CreatedAt: base},
		{ID: "new", CreatedAt: base.Add(48 * time.Hour)},
		{ID: "mid-a", CreatedAt: base.Add(24 * time.Hour)},
		{ID: "mid-b", CreatedAt: base.Add(24 * time.Hour)},
	}

	sorted := query.SortByRecency(orders)

	assert.Equal(t, []string{"new", "mid-a", "mid-b", "old"}, ids(sorted))
	assert.Equal(t, []string{"old", "new", "mid-a", "mid-b"}, ids(orders))
}
