package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerExposesCounters(t *testing.T) {

	reg := NewRegistry()
	reg.Fetches.Inc()
	reg.CacheHits.Inc()
	reg.Orders.Set(3)
	reg.Requests.WithLabelValues("/api/orders", "200").Inc()

	rec := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "cafedash_fetches_total 1")
	assert.Contains(t, string(body), "cafedash_cache_hits_total 1")
	assert.Contains(t, string(body), "cafedash_snapshot_orders 3")
	assert.Contains(t, string(body), `cafedash_requests_total{code="200",route="/api/orders"} 1`)
}
