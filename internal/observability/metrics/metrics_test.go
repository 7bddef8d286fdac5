package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("order_kind", "drop_cable"),
		attribute.String("client_id", "456"),
		attribute.String("prefix", "MAZ"),
	)
	require.Len(t, attrs, 2)
	assert.Equal(t, attribute.Key("order_kind"), attrs[0].Key)
	assert.Equal(t, attribute.Key("prefix"), attrs[1].Key)
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordCostComputation(context.Background(), "drop_cable")
		m.RecordRateLimitDenied(context.Background(), "/mobile/orders", "burst")
	})
}

func TestNewWithNoopProvider(t *testing.T) {
	m, err := New(Config{}, noop.NewMeterProvider())
	require.NoError(t, err)
	m.RecordQuoteIssued(context.Background(), "MAZ")
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	hm, err := newHTTPMetrics(reg)
	require.NoError(t, err)

	r := gin.New()
	r.Use(hm.GinMiddleware())
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(hm.requests.WithLabelValues(http.MethodGet, "/health", "200")))

	again, err := newHTTPMetrics(reg)
	require.NoError(t, err)
	assert.Same(t, hm.requests, again.requests)
}
