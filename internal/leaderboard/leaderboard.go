// Package leaderboard provides the high-score board used by the game: a
// local SQLite-backed board, an HTTP client for a remote board, and the
// HTTP service that exposes a board to other players.
package leaderboard

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"
)

// DateLayout is the format of Entry.Date.
const DateLayout = "2006-01-02 15:04"

// Defaults used when the config leaves them unset.
const (
	DefaultName       = "Anonymous"
	DefaultMaxNameLen = 16
	DefaultTopN       = 10
)

// Entry is one row of the high-score table.
type Entry struct {
	Name  string `json:"name" msgpack:"name"`
	Score int    `json:"score" msgpack:"score"`
	Date  string `json:"date" msgpack:"date"`
}

// Board is a high-score table.
type Board interface {
	// FetchTopScores returns the best scores, highest first.
	FetchTopScores(ctx context.Context) ([]Entry, error)
	// SubmitScore records a score. An empty name is stored as the default name.
	SubmitScore(ctx context.Context, name string, score int) (bool, error)
}

// NormalizeName trims name, substitutes def when it is empty, and cuts it
// to at most maxLen runes.
func NormalizeName(name, def string, maxLen int) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = def
	}
	if maxLen > 0 && utf8.RuneCountInString(name) > maxLen {
		name = string([]rune(name)[:maxLen])
	}
	return name
}

// Time parses Date. Dates are written in UTC.
func (e Entry) Time() (time.Time, error) {
	return time.ParseInLocation(DateLayout, e.Date, time.UTC)
}
