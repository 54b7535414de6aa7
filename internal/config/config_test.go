package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadSkyraid("")
	if err != nil {
		t.Fatalf("LoadSkyraid: %v", err)
	}
	if want := DefaultSkyraidConfig(); !reflect.DeepEqual(cfg, want) {
		t.Errorf("embedded yaml differs from DefaultSkyraidConfig:\n got %+v\nwant %+v", cfg, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadSkyraidCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "spawn:\n  min_interval_ms: 600\nplayer:\n  speed: 8\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSkyraid(path)
	if err != nil {
		t.Fatalf("LoadSkyraid: %v", err)
	}
	if cfg.Spawn.MinIntervalMS != 600 || cfg.Player.Speed != 8 {
		t.Errorf("overrides not applied: spawn=%+v speed=%v", cfg.Spawn, cfg.Player.Speed)
	}
	if cfg.Spawn.InitialIntervalMS != 2000 || cfg.Player.MaxHealth != 100 {
		t.Error("fields missing from the file should keep their defaults")
	}
}

func TestLoadSkyraidErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadSkyraid(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom path")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("arena: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSkyraid(bad); err == nil {
		t.Error("expected parse error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("arena:\n  width: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSkyraid(invalid); err == nil {
		t.Error("expected validation error for zero arena width")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *SkyraidConfig)
		wantErr string
	}{
		{"ok", func(c *SkyraidConfig) {}, ""},
		{"drop chance", func(c *SkyraidConfig) { c.Powerups.DropChance = 1.5 }, "drop_chance"},
		{"negative step", func(c *SkyraidConfig) { c.Spawn.IntervalStepMS = -1 }, "interval_step_ms"},
		{"no weights", func(c *SkyraidConfig) {
			c.Enemies.Basic.Weight = 0
			c.Enemies.Fast.Weight = 0
			c.Enemies.Tank.Weight = 0
		}, "positive weight"},
		{"player too big", func(c *SkyraidConfig) { c.Player.Width = 1000 }, "does not fit"},
		{"dead enemy", func(c *SkyraidConfig) { c.Enemies.Tank.Health = 0 }, "enemies.tank.health"},
		{"unknown difficulty", func(c *SkyraidConfig) { c.Difficulty = "insane" }, "unknown difficulty"},
		{"zero refresh", func(c *SkyraidConfig) { c.Leaderboard.RefreshSeconds = 0 }, "leaderboard.refresh_seconds"},
		{"negative refresh", func(c *SkyraidConfig) { c.Leaderboard.RefreshSeconds = -5 }, "leaderboard.refresh_seconds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSkyraidConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestDurations(t *testing.T) {
	cfg := DefaultSkyraidConfig()
	if got := cfg.Timing.FrameTime(); got != 16*time.Millisecond {
		t.Errorf("FrameTime = %v", got)
	}
	if cfg.Weapon.Cooldown() != 300*time.Millisecond || cfg.Weapon.RapidCooldown() != 100*time.Millisecond {
		t.Error("weapon cooldowns wrong")
	}
	if cfg.Leaderboard.RefreshInterval() != 10*time.Second {
		t.Error("refresh interval wrong")
	}
	for _, secs := range []int{0, -3} {
		lb := LeaderboardConfig{RefreshSeconds: secs}
		if got := lb.RefreshInterval(); got != DefaultRefreshInterval {
			t.Errorf("RefreshInterval(%d) = %v, want %v", secs, got, DefaultRefreshInterval)
		}
	}
}

func TestDifficultyManager(t *testing.T) {
	d := NewDifficultyManager(DefaultSkyraidConfig().Spawn)
	if d.Level() != 1 || d.SpawnInterval() != 2000*time.Millisecond {
		t.Fatalf("start: level=%d interval=%v", d.Level(), d.SpawnInterval())
	}

	prev := d.SpawnInterval()
	for destroyed := 1; destroyed <= 200; destroyed++ {
		up := d.RecordDestroyed(destroyed)
		if up != (destroyed%10 == 0) {
			t.Fatalf("destroyed=%d: leveled=%v", destroyed, up)
		}
		if want := 1 + destroyed/10; d.Level() != want {
			t.Fatalf("destroyed=%d: level=%d want %d", destroyed, d.Level(), want)
		}
		if d.SpawnInterval() > prev {
			t.Fatalf("interval increased at destroyed=%d", destroyed)
		}
		if d.SpawnInterval() < 500*time.Millisecond {
			t.Fatalf("interval below floor: %v", d.SpawnInterval())
		}
		prev = d.SpawnInterval()
	}
	if d.SpawnInterval() != 500*time.Millisecond {
		t.Errorf("interval should settle at the floor, got %v", d.SpawnInterval())
	}

	d.Reset()
	if d.Level() != 1 || d.SpawnInterval() != 2000*time.Millisecond {
		t.Error("Reset should restore level 1 and the initial interval")
	}
}

func TestApplySkyraidPreset(t *testing.T) {
	cfg := DefaultSkyraidConfig()
	ApplySkyraidPreset(&cfg, "")
	if !reflect.DeepEqual(cfg, DefaultSkyraidConfig()) {
		t.Error("empty preset should not change config")
	}

	ApplySkyraidPreset(&cfg, DifficultyHard)
	if cfg.Spawn.InitialIntervalMS >= 2000 || cfg.Enemies.ContactDamage <= 10 {
		t.Errorf("hard preset too soft: %+v", cfg.Spawn)
	}

	cfg = DefaultSkyraidConfig()
	ApplySkyraidPreset(&cfg, DifficultyFixed)
	d := NewDifficultyManager(cfg.Spawn)
	d.RecordDestroyed(10)
	if d.Level() != 2 || d.SpawnInterval() != cfg.Spawn.InitialInterval() {
		t.Error("fixed preset should level up without changing the interval")
	}

	if ParseDifficultyPreset("easy") != DifficultyEasy || ParseDifficultyPreset("bogus") != "" {
		t.Error("ParseDifficultyPreset mismatch")
	}
}

func TestGetEnvAndLoadEnv(t *testing.T) {
	t.Setenv("SKYRAID_TEST_KEY", "")
	if got := GetEnv("SKYRAID_TEST_KEY", "fallback"); got != "fallback" {
		t.Errorf("empty var should fall back, got %q", got)
	}

	dir := t.TempDir()
	if err := LoadEnv(filepath.Join(dir, "none.env")); err != nil {
		t.Errorf("missing .env should be ignored: %v", err)
	}

	envFile := filepath.Join(dir, "test.env")
	if err := os.WriteFile(envFile, []byte("SKYRAID_TEST_FROM_FILE=hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SKYRAID_TEST_FROM_FILE", "")
	os.Unsetenv("SKYRAID_TEST_FROM_FILE")
	if err := LoadEnv(envFile); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if got := GetEnv("SKYRAID_TEST_FROM_FILE", ""); got != "hello" {
		t.Errorf("GetEnv = %q, want hello", got)
	}
}
