package domain_test

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/RaikyD/parcel-orders/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// как в cmd/main.go
	decimal.MarshalJSONWithoutQuotes = true
	os.Exit(m.Run())
}

func TestOrder_Totals(t *testing.T) {
	o := domain.Order{
		Items: []domain.Item{
			{Title: "Lamp", Price: decimal.RequireFromString("12.5"), Quantity: 2},
			{Title: "Chair", Price: decimal.RequireFromString("40"), Quantity: 1},
		},
	}

	t.Run("items total", func(t *testing.T) {
		assert.True(t, o.ItemsTotal().Equal(decimal.NewFromInt(65)))
	})

	t.Run("total falls back to items sum", func(t *testing.T) {
		assert.True(t, o.TotalOrItemsSum().Equal(decimal.NewFromInt(65)))
	})

	t.Run("explicit total wins", func(t *testing.T) {
		withTotal := o
		tp := decimal.NewFromInt(70)
		withTotal.TotalPrice = &tp
		assert.True(t, withTotal.TotalOrItemsSum().Equal(tp))
	})

	t.Run("shipping cost default", func(t *testing.T) {
		assert.Equal(t, "15", o.ShippingCostOrDefault().String())

		withShipping := o
		sc := decimal.NewFromInt(9)
		withShipping.ShippingCost = &sc
		assert.True(t, withShipping.ShippingCostOrDefault().Equal(sc))
	})
}

func TestOrder_JSONLayout(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	o := domain.Order{
		ID:              "order-1",
		UserID:          "u1",
		UserName:        "Olena",
		DeliveryCountry: "Poland",
		Items:           []domain.Item{{ID: "i1", Title: "Lamp", Price: decimal.RequireFromString("12.5"), Quantity: 1}},
		Status:          domain.StatusCreated,
		CreatedAt:       created,
	}

	raw, err := json.Marshal(o)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": "order-1",
		"userId": "u1",
		"userName": "Olena",
		"deliveryCountry": "Poland",
		"items": [{"id": "i1", "title": "Lamp", "price": 12.5, "quantity": 1}],
		"status": "Створено",
		"createdAt": "2025-03-01T10:00:00Z"
	}`, string(raw))
}

func TestOrder_CloneIsDeep(t *testing.T) {
	w := 1.5
	ts := time.Now().UTC()
	tp := decimal.NewFromInt(3)
	o := domain.Order{
		Items:      []domain.Item{{Title: "Lamp", Weight: &w}},
		UpdatedAt:  &ts,
		TotalPrice: &tp,
	}

	c := o.Clone()
	c.Items[0].Title = "Chair"
	*c.Items[0].Weight = 9
	*c.UpdatedAt = ts.Add(time.Hour)

	assert.Equal(t, "Lamp", o.Items[0].Title)
	assert.InDelta(t, 1.5, *o.Items[0].Weight, 0)
	assert.Equal(t, ts, *o.UpdatedAt)
}
