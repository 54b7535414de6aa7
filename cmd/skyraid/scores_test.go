package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/skyraid/internal/config"
	"github.com/vovakirdan/skyraid/internal/storage"
)

// useTestStore points the scores command at a temp database and records
// the store it opens.
func useTestStore(t *testing.T) **storage.Store {
	t.Helper()
	var opened *storage.Store

	prevOpen, prevPath, prevRuns := openStore, flagDBPath, flagRuns
	t.Cleanup(func() {
		openStore, flagDBPath, flagRuns = prevOpen, prevPath, prevRuns
	})

	flagDBPath = filepath.Join(t.TempDir(), "scores.db")
	openStore = func(path string) (*storage.Store, error) {
		s, err := storage.Open(path)
		opened = s
		return s, err
	}
	return &opened
}

func TestShowScoresClosesStoreOnError(t *testing.T) {
	opened := useTestStore(t)
	flagRuns = true

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := showScores(ctx, config.DefaultSkyraidConfig()); err == nil {
		t.Fatal("Expected an error with a canceled context")
	}
	if *opened == nil {
		t.Fatal("Expected the store to be opened")
	}
	if _, err := (*opened).TopScores(context.Background(), 1); err == nil {
		t.Error("Expected the store to be closed after a failed command")
	}
}

func TestShowScoresRunsOnEmptyStore(t *testing.T) {
	opened := useTestStore(t)
	flagRuns = true

	if err := showScores(context.Background(), config.DefaultSkyraidConfig()); err != nil {
		t.Fatalf("showScores() failed: %v", err)
	}
	if _, err := (*opened).TopScores(context.Background(), 1); err == nil {
		t.Error("Expected the store to be closed after the command")
	}
}
