package storage

import (
	"strings"
	"unicode"
)

// MaxNameLength caps the display name stored with a ranked score.
const MaxNameLength = 12

// DefaultName is recorded when a player leaves the name blank.
const DefaultName = "anonymous"

// Ranking is the ranked high-score list of one game: the top Size entries
// of the scores table. It decides whether a score qualifies and records
// named entries.
type Ranking struct {
	store  *Store
	gameID string
	size   int
}

// NewRanking creates a ranking over store for gameID keeping size entries.
func NewRanking(store *Store, gameID string, size int) *Ranking {
	if size <= 0 {
		size = 5
	}
	return &Ranking{store: store, gameID: gameID, size: size}
}

// Size returns the number of ranked places.
func (r *Ranking) Size() int {
	return r.size
}

// GameID returns the game the ranking belongs to.
func (r *Ranking) GameID() string {
	return r.gameID
}

// Store returns the underlying score store.
func (r *Ranking) Store() *Store {
	return r.store
}

// Entries returns the ranked list, best first.
func (r *Ranking) Entries() ([]ScoreEntry, error) {
	return r.store.TopScores(r.gameID, r.size)
}

// Qualifies reports whether score earns a place: it must be positive and
// either the list has a free place or score beats its lowest entry.
// A store error means the score does not qualify.
func (r *Ranking) Qualifies(score int) bool {
	if score <= 0 {
		return false
	}
	entries, err := r.Entries()
	if err != nil {
		return false
	}
	if len(entries) < r.size {
		return true
	}
	return score > entries[len(entries)-1].Score
}

// Record stores a named score. The name is cleaned with SanitizeName.
func (r *Ranking) Record(name string, score int) error {
	_, err := r.store.SaveScore(r.gameID, SanitizeName(name), score)
	return err
}

// SanitizeName trims the name, replaces whitespace and control characters
// with underscores and truncates it to MaxNameLength runes.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultName
	}
	runes := make([]rune, 0, MaxNameLength)
	for _, r := range name {
		if len(runes) == MaxNameLength {
			break
		}
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			r = '_'
		}
		runes = append(runes, r)
	}
	return string(runes)
}
