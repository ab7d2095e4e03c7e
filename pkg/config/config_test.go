package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wordfreq.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Report.DefaultTop != 10 {
		t.Errorf("DefaultTop = %d, want 10", cfg.Report.DefaultTop)
	}
	if cfg.Fetch.Timeout != 0 {
		t.Errorf("Fetch.Timeout = %v, want transport default (0)", cfg.Fetch.Timeout)
	}
	if cfg.Redis.Enabled || cfg.Kafka.Enabled || cfg.Postgres.Enabled {
		t.Error("optional integrations should be disabled by default")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
fetch:
  userAgent: test-agent
  timeout: 15s
report:
  defaultTop: 25
redis:
  enabled: true
  addr: cache:6379
  cacheTTL: 1h
metrics:
  textfilePath: /tmp/wordfreq.prom
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Fetch.UserAgent != "test-agent" {
		t.Errorf("UserAgent = %q", cfg.Fetch.UserAgent)
	}
	if cfg.Fetch.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v", cfg.Fetch.Timeout)
	}
	if cfg.Report.DefaultTop != 25 {
		t.Errorf("DefaultTop = %d", cfg.Report.DefaultTop)
	}
	if !cfg.Redis.Enabled || cfg.Redis.Addr != "cache:6379" || cfg.Redis.CacheTTL != time.Hour {
		t.Errorf("Redis = %+v", cfg.Redis)
	}
	if cfg.Redis.PoolSize != 4 {
		t.Errorf("unset PoolSize should keep default, got %d", cfg.Redis.PoolSize)
	}
	if cfg.Metrics.TextfilePath != "/tmp/wordfreq.prom" {
		t.Errorf("TextfilePath = %q", cfg.Metrics.TextfilePath)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "report: [not, a, map")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WF_REPORT_DEFAULT_TOP", "3")
	t.Setenv("WF_FETCH_TIMEOUT", "2s")
	t.Setenv("WF_KAFKA_ENABLED", "true")
	t.Setenv("WF_KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("WF_LOGGING_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Report.DefaultTop != 3 {
		t.Errorf("DefaultTop = %d, want 3", cfg.Report.DefaultTop)
	}
	if cfg.Fetch.Timeout != 2*time.Second {
		t.Errorf("Timeout = %v, want 2s", cfg.Fetch.Timeout)
	}
	if !cfg.Kafka.Enabled || len(cfg.Kafka.Brokers) != 2 {
		t.Errorf("Kafka = %+v", cfg.Kafka)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative top", func(c *Config) { c.Report.DefaultTop = -1 }},
		{"negative timeout", func(c *Config) { c.Fetch.Timeout = -time.Second }},
		{"redis without addr", func(c *Config) { c.Redis.Enabled = true; c.Redis.Addr = "" }},
		{"redis without ttl", func(c *Config) { c.Redis.Enabled = true; c.Redis.CacheTTL = 0 }},
		{"kafka without topic", func(c *Config) { c.Kafka.Enabled = true; c.Kafka.Topic = "" }},
		{"pushgateway without job", func(c *Config) { c.Metrics.PushgatewayURL = "http://pg:9091"; c.Metrics.Job = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
	if err := defaultConfig().Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestDSN(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: 5433, User: "u", Password: "p", Database: "d", SSLMode: "require"}
	want := "host=db port=5433 user=u password=p dbname=d sslmode=require"
	if got := p.DSN(); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}
