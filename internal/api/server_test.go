// internal/api/server_test.go
package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-optimizer/internal/common/config"
	"route-optimizer/internal/common/logger"
	"route-optimizer/internal/fallback"
	"route-optimizer/internal/models"
	"route-optimizer/internal/optimizer"
	"route-optimizer/internal/provider"
)

// newTestServer wires a real engine over a failing provider so requests
// resolve through the fallback chain deterministically.
func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	log := logger.NewTestLogger(t)
	cache := fallback.NewMemoryCache(time.Minute)
	svc := fallback.NewService(cache, nil, log)

	engine := optimizer.NewEngine(
		config.OptimizerConfig{BatchConcurrency: 2},
		provider.NewFailingProvider(),
		svc,
		log,
	)

	return NewServer(engine, svc, log).Handler()
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestServer_Optimize(t *testing.T) {
	handler := newTestServer(t)

	body := `{
		"pickup":   {"latitude": 40.7128, "longitude": -74.0060},
		"delivery": {"latitude": 34.0522, "longitude": -118.2437},
		"options":  {"fuelType": "standard", "cargoWeightKg": 500}
	}`

	rec := doRequest(t, handler, http.MethodPost, "/optimize", body)

	require.Equal(t, http.StatusOK, rec.Code)

	var out models.OptimizationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Success)
	assert.True(t, out.FallbackUsed)
	assert.Equal(t, 3944.0, out.Routes.Shortest.DistanceKm)
	assert.NotEmpty(t, out.Recommendation.Recommended)
}

func TestServer_Optimize_SchemaRejections(t *testing.T) {
	handler := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing delivery", `{"pickup": {"latitude": 1, "longitude": 2}}`},
		{"latitude out of range", `{"pickup": {"latitude": 91, "longitude": 0}, "delivery": {"latitude": 0, "longitude": 0}}`},
		{"unknown fuel type", `{"pickup": {"latitude": 1, "longitude": 2}, "delivery": {"latitude": 3, "longitude": 4}, "options": {"fuelType": "diesel"}}`},
		{"unexpected field", `{"pickup": {"latitude": 1, "longitude": 2}, "delivery": {"latitude": 3, "longitude": 4}, "extra": true}`},
		{"malformed json", `{"pickup": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, handler, http.MethodPost, "/optimize", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var out errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
			assert.False(t, out.Success)
			assert.Equal(t, "INVALID_REQUEST", out.Code)
		})
	}
}

func TestServer_Optimize_MethodNotAllowed(t *testing.T) {
	handler := newTestServer(t)

	rec := doRequest(t, handler, http.MethodGet, "/optimize", "")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServer_OptimizeBatch(t *testing.T) {
	handler := newTestServer(t)

	body := `{
		"requests": [
			{
				"pickup":   {"latitude": 40.7128, "longitude": -74.0060},
				"delivery": {"latitude": 34.0522, "longitude": -118.2437}
			},
			{
				"pickup":   {"latitude": 48.8566, "longitude": 2.3522},
				"delivery": {"latitude": 52.5200, "longitude": 13.4050},
				"options":  {"fuelType": "electric"}
			}
		]
	}`

	rec := doRequest(t, handler, http.MethodPost, "/optimize/batch", body)

	require.Equal(t, http.StatusOK, rec.Code)

	var out batchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Results, 2)
	assert.True(t, out.Results[0].Success)
	assert.True(t, out.Results[1].Success)
	assert.Equal(t, 2, out.Statistics.Total)
	assert.Equal(t, 2, out.Statistics.Successful)
	assert.Equal(t, 0, out.Statistics.Failed)
}

func TestServer_OptimizeBatch_EmptyListRejected(t *testing.T) {
	handler := newTestServer(t)

	rec := doRequest(t, handler, http.MethodPost, "/optimize/batch", `{"requests": []}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Status(t *testing.T) {
	handler := newTestServer(t)

	// An optimization against the failing provider marks the API unavailable.
	doRequest(t, handler, http.MethodPost, "/optimize", `{
		"pickup":   {"latitude": 48.8566, "longitude": 2.3522},
		"delivery": {"latitude": 52.5200, "longitude": 13.4050}
	}`)

	rec := doRequest(t, handler, http.MethodGet, "/status", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var out models.SystemStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "unavailable", out.MapAPIStatus)
	assert.Equal(t, "operational", out.SystemHealth)
	assert.Equal(t, 1, out.CacheSize)
	assert.Positive(t, out.MockRoutesAvailable)
}

func TestServer_HealthAndReady(t *testing.T) {
	handler := newTestServer(t)

	for _, path := range []string{"/health", "/ready"} {
		rec := doRequest(t, handler, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "status")
	}
}

func TestServer_Metrics(t *testing.T) {
	handler := newTestServer(t)

	rec := doRequest(t, handler, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}
