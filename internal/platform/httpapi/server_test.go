package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-lumines/internal/storage"
)

func newTestServer(t *testing.T, scores ...int) *Server {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ranking := storage.NewRanking(store, "lumines", 3)
	for i, s := range scores {
		require.NoError(t, ranking.Record(string(rune('a'+i)), s))
	}
	return New(ranking, log.New(io.Discard), DefaultConfig())
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(t), "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestScoresRanked(t *testing.T) {
	s := newTestServer(t, 30, 50, 10, 40)

	rec := get(t, s, "/api/scores")
	require.Equal(t, http.StatusOK, rec.Code)

	var res scoresRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "lumines", res.Game)
	assert.Equal(t, 3, res.Size)
	require.Len(t, res.Scores, 3)
	assert.Equal(t, []int{50, 40, 30}, []int{res.Scores[0].Score, res.Scores[1].Score, res.Scores[2].Score})
	assert.Equal(t, "b", res.Scores[0].Name)
	assert.Equal(t, 1, res.Scores[0].Rank)
	assert.Equal(t, 3, res.Scores[2].Rank)
}

func TestScoresLimit(t *testing.T) {
	s := newTestServer(t, 30, 50, 40)

	tests := []struct {
		query string
		code  int
		count int
	}{
		{"?limit=1", http.StatusOK, 1},
		{"?limit=2", http.StatusOK, 2},
		{"?limit=99", http.StatusOK, 3},
		{"?limit=0", http.StatusBadRequest, 0},
		{"?limit=-1", http.StatusBadRequest, 0},
		{"?limit=abc", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := get(t, s, "/api/scores"+tt.query)
			require.Equal(t, tt.code, rec.Code)
			if tt.code != http.StatusOK {
				assert.JSONEq(t, `{"error":"bad_limit"}`, rec.Body.String())
				return
			}
			var res scoresRes
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
			assert.Len(t, res.Scores, tt.count)
			assert.Equal(t, 50, res.Scores[0].Score)
		})
	}
}

func TestScoresEmpty(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/scores")
	require.Equal(t, http.StatusOK, rec.Code)

	var res scoresRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Empty(t, res.Scores)
	assert.NotNil(t, res.Scores)
}

func TestStats(t *testing.T) {
	rec := get(t, newTestServer(t, 10, 30), "/api/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats storage.GameStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, "lumines", stats.GameID)
	assert.Equal(t, 2, stats.GamesCount)
	assert.Equal(t, 30, stats.HighScore)
	assert.InDelta(t, 20.0, stats.AvgScore, 0.001)
	assert.EqualValues(t, 40, stats.TotalScore)
	assert.False(t, stats.LastPlayed.IsZero())
}

func TestWithoutStorage(t *testing.T) {
	s := New(nil, log.New(io.Discard), Config{Address: ":0"})

	for _, path := range []string{"/api/scores", "/api/stats"} {
		rec := get(t, s, path)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
		assert.JSONEq(t, `{"error":"no_storage"}`, rec.Body.String(), path)
	}
	assert.Equal(t, http.StatusOK, get(t, s, "/health").Code)
}

func TestNotFoundAndMethod(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not_found"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/scores", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequestIDHeaderAccepted(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "abc")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ":8080", cfg.Address)

	s := New(nil, nil, Config{Address: ":9999"})
	assert.Equal(t, ":9999", s.Addr())
	assert.Equal(t, DefaultConfig().RequestTimeout, s.config.RequestTimeout)
}
