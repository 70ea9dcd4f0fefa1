package config

import "testing"

func TestDefaults(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "5000" {
		t.Errorf("port: got %s", cfg.Port)
	}
	if cfg.StoreBackend != "memory" {
		t.Errorf("backend: got %s", cfg.StoreBackend)
	}
	if cfg.RetentionDays != 90 {
		t.Errorf("retention: got %d", cfg.RetentionDays)
	}
}

func TestUnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "cassandra")
	if _, err := NewConfig(); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestRedisBackendNeedsURL(t *testing.T) {
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_URL", "")
	if _, err := NewConfig(); err == nil {
		t.Error("expected error without REDIS_URL")
	}
}

func TestBadRetentionDays(t *testing.T) {
	t.Setenv("RETENTION_DAYS", "soon")
	if _, err := NewConfig(); err == nil {
		t.Error("expected error for non-numeric retention")
	}
}
