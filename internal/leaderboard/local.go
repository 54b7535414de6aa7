package leaderboard

import (
	"context"
	"fmt"

	"github.com/vovakirdan/skyraid/internal/config"
	"github.com/vovakirdan/skyraid/internal/storage"
)

// Local is a Board backed by the SQLite store.
type Local struct {
	store       *storage.Store
	topN        int
	defaultName string
	maxNameLen  int
}

// NewLocal creates a board over store using the leaderboard config.
func NewLocal(store *storage.Store, cfg config.LeaderboardConfig) *Local {
	l := &Local{
		store:       store,
		topN:        cfg.TopN,
		defaultName: cfg.DefaultName,
		maxNameLen:  cfg.MaxNameLen,
	}
	if l.topN <= 0 {
		l.topN = DefaultTopN
	}
	if l.defaultName == "" {
		l.defaultName = DefaultName
	}
	if l.maxNameLen <= 0 {
		l.maxNameLen = DefaultMaxNameLen
	}
	return l
}

// FetchTopScores returns the top N scores, highest first.
func (l *Local) FetchTopScores(ctx context.Context) ([]Entry, error) {
	rows, err := l.store.TopScores(ctx, l.topN)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, Entry{
			Name:  r.Name,
			Score: r.Score,
			Date:  r.CreatedAt.UTC().Format(DateLayout),
		})
	}
	return entries, nil
}

// SubmitScore stores a score under a normalized name.
func (l *Local) SubmitScore(ctx context.Context, name string, score int) (bool, error) {
	if score < 0 {
		return false, fmt.Errorf("leaderboard: negative score %d", score)
	}
	if _, err := l.store.SaveScore(ctx, NormalizeName(name, l.defaultName, l.maxNameLen), score); err != nil {
		return false, fmt.Errorf("leaderboard: %w", err)
	}
	return true, nil
}

var _ Board = (*Local)(nil)
