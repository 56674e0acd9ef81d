package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.RosterSource != SourceFile {
		t.Errorf("RosterSource = %q, want file", cfg.RosterSource)
	}
	if len(cfg.ReportSinks) != 1 || cfg.ReportSinks[0] != SinkFile {
		t.Errorf("ReportSinks = %v, want [file]", cfg.ReportSinks)
	}
	if cfg.MonthLocale != "ru" {
		t.Errorf("MonthLocale = %q, want ru", cfg.MonthLocale)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.ReprocessInterval != 300*time.Second {
		t.Errorf("ReprocessInterval = %s", cfg.ReprocessInterval)
	}
	if cfg.NeedsMongo() {
		t.Errorf("default config should not need mongo")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("ROSTER_SOURCE", "Mongo")
	t.Setenv("REPORT_SINKS", "file, SQL ,mongo,Redis")
	t.Setenv("SQL_DRIVER", "sqlite")
	t.Setenv("SQL_DSN", "file::memory:")
	t.Setenv("DATETIME_LAYOUTS", "2006-01-02 15:04")
	t.Setenv("MONTH_LOCALE", "EN")
	t.Setenv("WORKERS", "8")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.RosterSource != SourceMongo || !cfg.NeedsMongo() {
		t.Errorf("RosterSource = %q", cfg.RosterSource)
	}
	if !cfg.HasSink(SinkSQL) || !cfg.HasSink(SinkMongo) || !cfg.HasSink(SinkFile) || !cfg.HasSink(SinkRedis) {
		t.Errorf("ReportSinks = %v", cfg.ReportSinks)
	}
	if len(cfg.DateTimeLayouts) != 1 || cfg.DateTimeLayouts[0] != "2006-01-02 15:04" {
		t.Errorf("DateTimeLayouts = %v", cfg.DateTimeLayouts)
	}
	if cfg.MonthLocale != "en" || cfg.Workers != 8 {
		t.Errorf("MonthLocale = %q, Workers = %d", cfg.MonthLocale, cfg.Workers)
	}
}

func TestValidateRejects(t *testing.T) {
	base := func() *Config {
		return &Config{
			RosterSource:    SourceFile,
			ReportSinks:     []string{SinkFile},
			MonthLocale:     "ru",
			Workers:         1,
			DateTimeLayouts: []string{"2006-01-02T15:04:05"},
			SQLDriver:       "postgres",
		}
	}

	cases := map[string]func(c *Config){
		"source":     func(c *Config) { c.RosterSource = "s3" },
		"sink":       func(c *Config) { c.ReportSinks = []string{"kafka"} },
		"sql dsn":    func(c *Config) { c.ReportSinks = []string{SinkSQL} },
		"sql driver": func(c *Config) { c.ReportSinks = []string{SinkSQL}; c.SQLDSN = "x"; c.SQLDriver = "mysql" },
		"locale":     func(c *Config) { c.MonthLocale = "fr" },
		"workers":    func(c *Config) { c.Workers = 0 },
		"layouts":    func(c *Config) { c.DateTimeLayouts = nil },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := base()
			mutate(c)
			if err := c.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("base config: %v", err)
	}
}
