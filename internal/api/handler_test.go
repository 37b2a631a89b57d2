package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurihiro0119/github-org-pages/internal/domain"
	"github.com/kurihiro0119/github-org-pages/internal/storage"
	"github.com/kurihiro0119/github-org-pages/internal/storage/sqlite"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, withStore bool) (*gin.Engine, string, storage.Storage) {
	t.Helper()
	dir := t.TempDir()
	indexPath := filepath.Join(dir, "index.md")

	var store storage.Storage
	if withStore {
		s, err := sqlite.NewSQLiteStorage(filepath.Join(dir, "pages.db"))
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		store = s
	}

	return SetupRoutes(NewHandler(indexPath, store)), indexPath, store
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	router, _, _ := newTestServer(t, false)

	w := get(router, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","archive":false}`, w.Body.String())
}

func TestGetIndex(t *testing.T) {
	router, indexPath, _ := newTestServer(t, false)

	w := get(router, "/")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")

	require.NoError(t, os.WriteFile(indexPath, []byte("# acme Projects\n"), 0o644))

	w = get(router, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/markdown; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "# acme Projects\n", w.Body.String())
}

func TestRunsWithoutArchive(t *testing.T) {
	router, _, _ := newTestServer(t, false)

	w := get(router, "/api/v1/orgs/acme/runs")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRunsEndpoints(t *testing.T) {
	router, _, store := newTestServer(t, true)

	run := &domain.Run{
		ID:          "run-1",
		Org:         "acme",
		Count:       1,
		IndexPath:   "index.md",
		GeneratedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Summary:     &domain.Summary{Count: 1, TotalStars: 3, Languages: map[string]int{"Go": 1}},
	}
	repos := []*domain.Repository{{Name: "tool", Description: "d", URL: "u", RepoURL: "u", Topics: []string{"cli"}, Stars: 3, LastUpdated: "2024-01-01", Language: "Go"}}
	require.NoError(t, store.SaveRun(context.Background(), run, repos))

	w := get(router, "/api/v1/orgs/acme/runs?limit=5")
	require.Equal(t, http.StatusOK, w.Code)
	var runsResp struct {
		Data []*domain.Run `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &runsResp))
	require.Len(t, runsResp.Data, 1)
	assert.Equal(t, "run-1", runsResp.Data[0].ID)
	assert.Equal(t, 3, runsResp.Data[0].Summary.TotalStars)

	w = get(router, "/api/v1/runs/run-1/repos")
	require.Equal(t, http.StatusOK, w.Code)
	var reposResp struct {
		Data []*domain.Repository `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reposResp))
	assert.Equal(t, repos, reposResp.Data)

	w = get(router, "/api/v1/runs/run-1")
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(router, "/api/v1/runs/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRunsRejectsInvalidLimit(t *testing.T) {
	router, _, _ := newTestServer(t, true)

	for _, limit := range []string{"abc", "-1", "2.5"} {
		w := get(router, "/api/v1/orgs/acme/runs?limit="+limit)
		require.Equal(t, http.StatusBadRequest, w.Code, limit)

		var resp struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "BAD_REQUEST", resp.Error.Code)
		assert.Contains(t, resp.Error.Message, "invalid limit")
	}

	w := get(router, "/api/v1/orgs/acme/runs?limit=0")
	assert.Equal(t, http.StatusOK, w.Code)
}
