package stats_test

import (
	"testing"

	"github.com/RaikyD/parcel-orders/internal/domain"
	"github.com/RaikyD/parcel-orders/internal/stats"
	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	t.Run("two orders", func(t *testing.T) {
		orders := []domain.Order{
			{ID: "order-1", Status: "Створено"},
			{ID: "order-2", Status: "Доставлено"},
		}

		assert.Equal(t, stats.Stats{Total: 2, Created: 1, Delivered: 1}, stats.Compute(orders))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, stats.Stats{}, stats.Compute(nil))
	})

	t.Run("every status", func(t *testing.T) {
		orders := []domain.Order{
			{Status: domain.StatusCreated},
			{Status: domain.StatusProcessing},
			{Status: domain.StatusProcessing},
			{Status: domain.StatusDelivered},
			{Status: domain.StatusCancelled},
			{Status: domain.StatusCancelled},
			{Status: domain.StatusCancelled},
			{Status: "legacy"},
		}

		assert.Equal(t, stats.Stats{
			Total:      8,
			Created:    1,
			Processing: 2,
			Delivered:  1,
			Cancelled:  3,
		}, stats.Compute(orders))
	})
}
