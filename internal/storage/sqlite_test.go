package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreInMemory(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if _, err := store.SaveScore(ctx, "ace", 10); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	scores, err := store.TopScores(ctx, 10)
	if err != nil || len(scores) != 1 {
		t.Fatalf("TopScores() = %v, %v", scores, err)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, s := range []struct {
		name  string
		score int
	}{{"alice", 100}, {"bob", 50}, {"carol", 200}} {
		if _, err := store.SaveScore(ctx, s.name, s.score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores(ctx, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 || scores[0].Name != "carol" {
		t.Errorf("Expected carol/200 first, got %+v", scores[0])
	}
	if scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}
}

func TestStoreTopScoresLimitAndTies(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := range 12 {
		store.SaveScore(ctx, "p", (i+1)*100) //nolint:errcheck
	}
	store.SaveScore(ctx, "first", 50)  //nolint:errcheck
	store.SaveScore(ctx, "second", 50) //nolint:errcheck

	scores, err := store.TopScores(ctx, 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 1200 || scores[1].Score != 1100 || scores[2].Score != 1000 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	// Default limit is 10
	scores, _ = store.TopScores(ctx, 0)
	if len(scores) != 10 {
		t.Errorf("Expected default limit of 10, got %d", len(scores))
	}

	all, _ := store.TopScores(ctx, 100)
	last := all[len(all)-2:]
	if last[0].Name != "first" || last[1].Name != "second" {
		t.Errorf("ties should keep insertion order: %+v", last)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	// No scores yet
	high, err := store.HighScore(ctx)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 with no runs, got %d", high)
	}

	store.SaveRun(ctx, Run{Name: "a", Score: 100}) //nolint:errcheck
	store.SaveRun(ctx, Run{Name: "b", Score: 300}) //nolint:errcheck
	store.SaveRun(ctx, Run{Name: "c", Score: 200}) //nolint:errcheck
	store.SaveScore(ctx, "d", 900)                 //nolint:errcheck

	high, err = store.HighScore(ctx)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected best run of 300 (leaderboard entries excluded), got %d", high)
	}
}

func TestStoreRunsAndStats(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	stats, err := store.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats() on empty store failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	runs := []Run{
		{Name: "a", Score: 100, Level: 2, Destroyed: 10, Duration: 30 * time.Second},
		{Name: "b", Score: 300, Level: 4, Destroyed: 30, Duration: 95 * time.Second},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(ctx, r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	recent, err := store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Name != "b" {
		t.Fatalf("RecentRuns should be newest first: %+v", recent)
	}
	if recent[0].Duration != 95*time.Second || recent[0].Level != 4 {
		t.Errorf("run not round-tripped: %+v", recent[0])
	}

	stats, err = store.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.AvgScore != 200 || stats.TotalScore != 400 {
		t.Errorf("score stats = %+v", stats)
	}
	if stats.BestLevel != 4 || stats.TotalDestroyed != 40 || stats.LongestSurvival != 95*time.Second {
		t.Errorf("run stats = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.SaveScore(ctx, "a", 100)                 //nolint:errcheck
	store.SaveRun(ctx, Run{Name: "a", Score: 100}) //nolint:errcheck

	if err := store.ClearScores(ctx); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores(ctx, 10)
	runs, _ := store.RecentRuns(ctx, 10)
	if len(scores) != 0 || len(runs) != 0 {
		t.Errorf("Expected empty store after clear, got %d scores and %d runs", len(scores), len(runs))
	}
}

func TestStoreCanceledContext(t *testing.T) {
	store := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.SaveScore(ctx, "a", 1); err == nil {
		t.Error("SaveScore with canceled context should fail")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
