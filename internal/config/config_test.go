package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SAVE_PATH", "")
	t.Setenv("TICK_CRON", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Game.TickCron != "@every 1s" || cfg.Save.Path != "data/save.json" || cfg.Save.AutosaveTicks != 5 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Offline.Ceiling != time.Hour || cfg.Offline.MoneyPerCompute != 0.1 || cfg.Offline.DataPerSecond != 0.5 {
		t.Errorf("unexpected offline defaults %+v", cfg.Offline)
	}
	if cfg.Research.ChargeOnStart {
		t.Error("research should not charge by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
game:
  tick_cron: "@every 2s"
save:
  path: /tmp/game.json
offline:
  ceiling: 30m
  max_seconds: 900
reward:
  delay: 500ms
  timeout: 3s
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SAVE_PATH", "")
	t.Setenv("TICK_CRON", "@every 500ms")
	t.Setenv("RESEARCH_CHARGE_ON_START", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Game.TickCron != "@every 500ms" {
		t.Errorf("env should override tick cron, got %q", cfg.Game.TickCron)
	}
	if cfg.Save.Path != "/tmp/game.json" {
		t.Errorf("save path = %q", cfg.Save.Path)
	}
	if cfg.Offline.Ceiling != 30*time.Minute || cfg.Offline.MaxSeconds != 900 {
		t.Errorf("offline = %+v", cfg.Offline)
	}
	if cfg.Reward.Delay != 500*time.Millisecond || cfg.Reward.Timeout != 3*time.Second {
		t.Errorf("reward = %+v", cfg.Reward)
	}
	if !cfg.Research.ChargeOnStart {
		t.Error("env should enable research charging")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("game: [unclosed"), 0o644)
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	cfg, _ := Load(filepath.Join(t.TempDir(), "none.yaml"))
	cfg.Reward.SuccessChance = 1.5
	if err := cfg.Validate(); err == nil {
		t.Error("chance above 1 should fail")
	}

	cfg, _ = Load(filepath.Join(t.TempDir(), "none.yaml"))
	cfg.Reward.Timeout = time.Second
	if err := cfg.Validate(); err == nil {
		t.Error("timeout shorter than delay should fail")
	}
}
