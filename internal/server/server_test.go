package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyclust/internal/catalog"
	"skyclust/internal/config"
	"skyclust/internal/galaxy"
	"skyclust/internal/pipeline"
)

// catalogStub serves two dense, well-separated galaxy groups.
func catalogStub(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"columns": []string{galaxy.ColRA, galaxy.ColDec, galaxy.ColRedshift},
		}
		var rows []map[string]any
		for i := 0; i < 12; i++ {
			rows = append(rows, map[string]any{
				galaxy.ColRA:       187.5 + float64(i)*0.002,
				galaxy.ColDec:      12.0,
				galaxy.ColRedshift: 0.004,
			})
			rows = append(rows, map[string]any{
				galaxy.ColRA:       150.0 + float64(i)*0.002,
				galaxy.ColDec:      -30.0,
				galaxy.ColRedshift: 0.020,
			})
		}
		resp["rows"] = rows
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func newTestServer(t *testing.T, catalogURL string) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Catalog.BaseURL = catalogURL
	cfg.Catalog.RateLimit = 0

	client := catalog.NewClient(catalog.Config{BaseURL: catalogURL}, nil)
	runner := pipeline.NewRunner(client, nil)

	srv, err := New(cfg, runner, nil, nil)
	require.NoError(t, err)
	return srv
}

func TestHandleClusterDefaults(t *testing.T) {
	stub := catalogStub(t)
	defer stub.Close()

	router := newTestServer(t, stub.URL).Router()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/cluster", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp ClusterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 24, resp.Fetched)
	assert.Equal(t, 0, resp.Dropped)
	assert.Equal(t, 2, resp.Clusters)
	assert.Equal(t, 0, resp.Noise)
	require.Len(t, resp.Summaries, 2)
	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, resp.RunID, rec.Header().Get("X-Request-ID"))
}

func TestHandleClusterExplicitParams(t *testing.T) {
	stub := catalogStub(t)
	defer stub.Close()

	body := `{"ra":"10h00m00s","dec":"-30d00m00s","radius_deg":5,"eps":0.02,"min_samples":10,"max_results":500}`
	router := newTestServer(t, stub.URL).Router()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/cluster", bytes.NewReader([]byte(body))))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestHandleClusterValidation(t *testing.T) {
	stub := catalogStub(t)
	defer stub.Close()

	tests := []struct {
		name string
		body string
	}{
		{"malformed RA", `{"ra":"12:30:00"}`},
		{"malformed Dec", `{"dec":"north"}`},
		{"negative radius", `{"radius_deg":-3}`},
		{"zero eps", `{"eps":-0.5}`},
		{"bad json", `{`},
	}

	router := newTestServer(t, stub.URL).Router()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/cluster", bytes.NewReader([]byte(tt.body)))
			req.ContentLength = int64(len(tt.body))
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestHandleClusterUpstreamFailure(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "catalog offline", http.StatusServiceUnavailable)
	}))
	defer down.Close()

	router := newTestServer(t, down.URL).Router()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/cluster", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "acquisition failed")
}

func TestHandleHealth(t *testing.T) {
	stub := catalogStub(t)
	defer stub.Close()

	router := newTestServer(t, stub.URL).Router()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}
