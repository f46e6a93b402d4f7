package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.Database.Host = "localhost"
	cfg.Database.Database = "talent"
	cfg.Database.User = "talent"
	cfg.Auth.JWTSecret = "secret"
	applyDefaults(cfg)
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()

	if cfg.HTTP.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.HTTP.Port)
	}
	if cfg.Matching.EligibleThreshold != 90 || cfg.Matching.AlmostEligibleThreshold != 70 {
		t.Fatalf("unexpected matching thresholds: %+v", cfg.Matching)
	}
	if cfg.Matching.PartialCreditDamping != 0.6 {
		t.Fatalf("expected damping 0.6, got %v", cfg.Matching.PartialCreditDamping)
	}
	if cfg.Ranking.CandidateScanLimit != 50 {
		t.Fatalf("expected scan limit 50, got %d", cfg.Ranking.CandidateScanLimit)
	}
	if cfg.Training.Trees != 200 || cfg.Training.MaxDepth != 12 {
		t.Fatalf("unexpected training defaults: %+v", cfg.Training)
	}
	if err := validate(cfg); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestValidate_MissingDatabase(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Host = ""
	if err := validate(cfg); err == nil || !strings.Contains(err.Error(), "database.host") {
		t.Fatalf("expected database.host error, got %v", err)
	}
}

func TestValidate_ThresholdOrder(t *testing.T) {
	cfg := validConfig()
	cfg.Matching.AlmostEligibleThreshold = 95
	if err := validate(cfg); err == nil {
		t.Fatalf("expected threshold ordering error")
	}
}

func TestDSN(t *testing.T) {
	cfg := validConfig()
	dsn := cfg.Database.DSN()
	for _, part := range []string{"host=localhost", "dbname=talent", "sslmode=disable", "port=5432"} {
		if !strings.Contains(dsn, part) {
			t.Fatalf("dsn missing %q: %s", part, dsn)
		}
	}
}
