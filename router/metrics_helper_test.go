package router_test

import (
	"go-card-bank/metrics"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *metrics.MetricsCollector) string {
	t.Helper()
	rr := httptest.NewRecorder()
	req, err := http.NewRequest("GET", "/metrics", nil)
	require.NoError(t, err)
	m.GetHandler().ServeHTTP(rr, req)
	return rr.Body.String()
}
