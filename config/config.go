package config

import (
	"fmt"
	"os"
	"time"
	// Timezones must resolve on hosts without a zoneinfo database.
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`

	// NodeID seeds the snowflake generator of event ids. Processes sharing a
	// broker must use distinct values.
	NodeID int64 `toml:"node_id"`

	Database     DatabaseConfigs     `toml:"database"`
	Redis        RedisConfigs        `toml:"redis"`
	Kafka        KafkaConfigs        `toml:"kafka"`
	Metrics      ServerConfigs       `toml:"metrics"`
	Gamification GamificationConfigs `toml:"gamification"`
}

type DatabaseConfigs struct {
	// Driver is either mysql or sqlite.
	Driver   string `toml:"driver"`
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`

	// Path is the sqlite database file.
	Path string `toml:"path"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type RedisConfigs struct {
	// Addr is optional. Without it, per-user locks are held in process.
	Addr           string `toml:"addr"`
	LockTTLSeconds int    `toml:"lock_ttl_seconds"`
}

func (r RedisConfigs) LockTTL() time.Duration {
	return time.Duration(r.LockTTLSeconds) * time.Second
}

type KafkaConfigs struct {
	// Addr is optional. Without it, gamification events are only logged.
	Addr     string `toml:"addr"`
	ClientID string `toml:"client_id"`
}

type LevelThreshold struct {
	CycleNumber int    `toml:"cycle_number" yaml:"cycle_number"`
	Points      int    `toml:"points" yaml:"points"`
	Level       string `toml:"level" yaml:"level"`
}

type GamificationConfigs struct {
	// Timezone decides which calendar date a timestamp belongs to.
	Timezone string `toml:"timezone"`

	// LevelThresholds is indexed by cycle number. Cycle numbers greater than
	// the last entry use the last entry.
	LevelThresholds []LevelThreshold `toml:"level_thresholds"`

	ReconcileHour    int `toml:"reconcile_hour"`
	ReconcileWorkers int `toml:"reconcile_workers"`
}

func (g GamificationConfigs) Location() (*time.Location, error) {
	if g.Timezone == "" {
		return time.UTC, nil
	}

	return time.LoadLocation(g.Timezone)
}

func Default() Configs {
	return Configs{
		Env:      "local",
		LogLevel: "info",
		Database: DatabaseConfigs{
			Driver: "sqlite",
			Path:   "vitalcycle.db",
		},
		Redis: RedisConfigs{
			LockTTLSeconds: 10,
		},
		Kafka: KafkaConfigs{
			ClientID: "vitalcycle",
		},
		Metrics: ServerConfigs{
			Host: "0.0.0.0",
			Port: "9090",
		},
		Gamification: GamificationConfigs{
			Timezone:         "UTC",
			LevelThresholds:  DefaultLevelThresholds(),
			ReconcileHour:    2,
			ReconcileWorkers: 4,
		},
	}
}

func DefaultLevelThresholds() []LevelThreshold {
	return []LevelThreshold{
		{CycleNumber: 1, Points: 2000, Level: "BRONCE"},
		{CycleNumber: 2, Points: 2000, Level: "PLATA"},
		{CycleNumber: 3, Points: 2000, Level: "ORO"},
		{CycleNumber: 4, Points: 2000, Level: "PLATINO"},
		{CycleNumber: 5, Points: 2000, Level: "MAESTRO"},
		{CycleNumber: 6, Points: 2000, Level: "MAESTRO"},
	}
}

// Load reads the configuration file at path on top of the default values. An
// empty path returns the default configuration.
func Load(path string) (Configs, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if _, err := cfg.Gamification.Location(); err != nil {
		return cfg, fmt.Errorf("invalid timezone %s: %w", cfg.Gamification.Timezone, err)
	}

	if len(cfg.Gamification.LevelThresholds) == 0 {
		return cfg, fmt.Errorf("at least one level threshold is required")
	}

	return cfg, nil
}
