package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Game struct {
		TickCron  string `yaml:"tick_cron"`
		SweepCron string `yaml:"sweep_cron"`
		StatsCron string `yaml:"stats_cron"`
	} `yaml:"game"`
	Save struct {
		Path          string `yaml:"path"`
		AutosaveTicks int64  `yaml:"autosave_ticks"`
	} `yaml:"save"`
	Offline struct {
		Ceiling          time.Duration `yaml:"ceiling"`
		MaxSeconds       int64         `yaml:"max_seconds"`
		MoneyPerCompute  float64       `yaml:"money_per_compute"`
		ComputePerSecond float64       `yaml:"compute_per_second"`
		DataPerSecond    float64       `yaml:"data_per_second"`
	} `yaml:"offline"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Server struct {
		ListenAddr      string  `yaml:"listen_addr"`
		CommandsPerSec  float64 `yaml:"commands_per_sec"`
		CommandBurst    int     `yaml:"command_burst"`
		BroadcastStatus bool    `yaml:"broadcast_status"`
	} `yaml:"server"`
	Reward struct {
		ReadyChance   float64       `yaml:"ready_chance"`
		SuccessChance float64       `yaml:"success_chance"`
		Delay         time.Duration `yaml:"delay"`
		Timeout       time.Duration `yaml:"timeout"`
	} `yaml:"reward"`
	Research struct {
		ChargeOnStart bool `yaml:"charge_on_start"`
	} `yaml:"research"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SAVE_PATH"); v != "" {
		cfg.Save.Path = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.ListenAddr = v
	}
	if v := os.Getenv("TICK_CRON"); v != "" {
		cfg.Game.TickCron = v
	}
	if v := os.Getenv("RESEARCH_CHARGE_ON_START"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Research.ChargeOnStart = b
		}
	}

	// Defaults
	if cfg.Game.TickCron == "" {
		cfg.Game.TickCron = "@every 1s"
	}
	if cfg.Game.SweepCron == "" {
		cfg.Game.SweepCron = "@every 1s"
	}
	if cfg.Game.StatsCron == "" {
		cfg.Game.StatsCron = "@every 1m"
	}
	if cfg.Save.Path == "" {
		cfg.Save.Path = "data/save.json"
	}
	if cfg.Save.AutosaveTicks == 0 {
		cfg.Save.AutosaveTicks = 5
	}
	if cfg.Offline.Ceiling == 0 {
		cfg.Offline.Ceiling = time.Hour
	}
	if cfg.Offline.MaxSeconds == 0 {
		cfg.Offline.MaxSeconds = 3600
	}
	if cfg.Offline.MoneyPerCompute == 0 {
		cfg.Offline.MoneyPerCompute = 0.1
	}
	if cfg.Offline.ComputePerSecond == 0 {
		cfg.Offline.ComputePerSecond = 1
	}
	if cfg.Offline.DataPerSecond == 0 {
		cfg.Offline.DataPerSecond = 0.5
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/aitycoon.db"
	}
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8080"
	}
	if cfg.Server.CommandsPerSec == 0 {
		cfg.Server.CommandsPerSec = 5
	}
	if cfg.Server.CommandBurst == 0 {
		cfg.Server.CommandBurst = 10
	}
	if cfg.Reward.ReadyChance == 0 {
		cfg.Reward.ReadyChance = 0.9
	}
	if cfg.Reward.SuccessChance == 0 {
		cfg.Reward.SuccessChance = 0.9
	}
	if cfg.Reward.Delay == 0 {
		cfg.Reward.Delay = 2 * time.Second
	}
	if cfg.Reward.Timeout == 0 {
		cfg.Reward.Timeout = 10 * time.Second
	}

	return cfg, nil
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if c.Save.Path == "" {
		return fmt.Errorf("save.path is required")
	}
	if c.Save.AutosaveTicks < 0 {
		return fmt.Errorf("save.autosave_ticks must not be negative")
	}
	if c.Offline.Ceiling < 0 || c.Offline.MaxSeconds < 0 {
		return fmt.Errorf("offline.ceiling and offline.max_seconds must not be negative")
	}
	if c.Server.CommandsPerSec < 0 || c.Server.CommandBurst < 1 {
		return fmt.Errorf("server.commands_per_sec must not be negative and server.command_burst must be at least 1")
	}
	for name, p := range map[string]float64{
		"reward.ready_chance":   c.Reward.ReadyChance,
		"reward.success_chance": c.Reward.SuccessChance,
	} {
		if p < 0 || p > 1 {
			return fmt.Errorf("%s must be between 0 and 1", name)
		}
	}
	if c.Reward.Timeout <= c.Reward.Delay {
		return fmt.Errorf("reward.timeout must be longer than reward.delay")
	}
	return nil
}
