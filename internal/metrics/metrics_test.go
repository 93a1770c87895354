package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RaikyD/parcel-orders/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IndependentRegistries(t *testing.T) {
	a := metrics.New()
	b := metrics.New()

	a.OrdersCreated.Inc()

	assert.InDelta(t, 1, testutil.ToFloat64(a.OrdersCreated), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(b.OrdersCreated), 0)
}

func TestHandler_ExposesCounters(t *testing.T) {
	m := metrics.New()
	m.StatusUpdates.WithLabelValues("Доставлено").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "parcel_orders_status_updates_total")
}
