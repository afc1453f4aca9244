package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anagnostou/marketscope/internal/database"
	"github.com/anagnostou/marketscope/internal/modules/analysis"
	analysishandlers "github.com/anagnostou/marketscope/internal/modules/analysis/handlers"
	"github.com/anagnostou/marketscope/internal/modules/ranking"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := database.New(database.Config{
		Path: filepath.Join(t.TempDir(), "scores.db"),
		Name: "scores",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := zerolog.Nop()

	repo := analysis.NewRepository(db.Conn(), log)
	require.NoError(t, repo.Migrate())

	analysisService := analysis.NewService(repo, log)
	rankingService := ranking.NewService(log)

	return New(Config{
		Log:              log,
		ScoresDB:         db,
		Port:             0,
		AnalysisHandlers: analysishandlers.NewHandlers(analysisService, log),
		RankingHandlers:  ranking.NewHandlers(analysisService, rankingService, log),
	})
}

func TestServer_HealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ok", resp.Database)
	assert.NotEmpty(t, resp.Uptime)
}

func TestServer_StatusEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/system/status", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp StatusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Greater(t, resp.Goroutines, 0)
	assert.True(t, strings.HasPrefix(resp.GoVersion, "go"))
}

func TestServer_DatabaseStatsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/system/database", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp DatabaseStatsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "scores", resp.Name)
	assert.Greater(t, resp.PageSize, int64(0))
}

func TestServer_ModuleRoutesMounted(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{
			name:   "analysis score route",
			method: http.MethodPost,
			path:   "/api/analysis/score",
			body:   `{"ticker":"AAPL","price":100}`,
			status: http.StatusOK,
		},
		{
			name:   "analysis list route",
			method: http.MethodGet,
			path:   "/api/analysis",
			status: http.StatusOK,
		},
		{
			name:   "ranking route",
			method: http.MethodPost,
			path:   "/api/ranking/rank",
			body:   `{}`,
			status: http.StatusOK,
		},
		{
			name:   "unknown route",
			method: http.MethodGet,
			path:   "/api/nope",
			status: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}

			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
