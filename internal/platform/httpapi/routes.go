package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

// scoreRes is one ranked entry of GET /api/scores.
type scoreRes struct {
	Rank      int       `json:"rank"`
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

type scoresRes struct {
	Game   string     `json:"game"`
	Size   int        `json:"size"`
	Scores []scoreRes `json:"scores"`
}

// handleScores returns the ranked list, optionally cut to ?limit=N.
func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if s.ranking == nil {
		writeError(w, http.StatusServiceUnavailable, "no_storage")
		return
	}

	limit := s.ranking.Size()
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = min(n, limit)
	}

	entries, err := s.ranking.Entries()
	if err != nil {
		s.logger.Error("load scores", "err", err)
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}

	res := scoresRes{
		Game:   s.ranking.GameID(),
		Size:   s.ranking.Size(),
		Scores: make([]scoreRes, len(entries)),
	}
	for i, e := range entries {
		res.Scores[i] = scoreRes{Rank: i + 1, Name: e.Name, Score: e.Score, CreatedAt: e.CreatedAt}
	}
	writeJSON(w, http.StatusOK, res)
}

// handleStats returns aggregate statistics over every recorded game.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.ranking == nil {
		writeError(w, http.StatusServiceUnavailable, "no_storage")
		return
	}

	stats, err := s.ranking.Store().GetGameStats(s.ranking.GameID())
	if err != nil {
		s.logger.Error("load stats", "err", err)
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
