package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Addr() != ":8080" {
		t.Errorf("addr: got %s", cfg.Addr())
	}
	if cfg.StoreDriver != StoreDriverPostgres {
		t.Errorf("driver: got %s", cfg.StoreDriver)
	}
	if cfg.LockWait != 5*time.Second || cfg.LockTTL != 10*time.Second {
		t.Errorf("lock timings: got %s / %s", cfg.LockWait, cfg.LockTTL)
	}
	if cfg.TokenTTL != 168*time.Hour {
		t.Errorf("token ttl: got %s", cfg.TokenTTL)
	}
	if cfg.RenumberOnUpdate {
		t.Errorf("renumber on update must default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("RENUMBER_ON_UPDATE", "true")
	t.Setenv("LOCK_WAIT", "250ms")
	t.Setenv("RATE_LIMIT_BURST", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StoreDriver != StoreDriverMemory || !cfg.RenumberOnUpdate ||
		cfg.LockWait != 250*time.Millisecond || cfg.RateLimitBurst != 3 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("LOCK_WAIT", "soon")
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, want := range []string{"JWT_SECRET", "LOCK_WAIT", "STORE_DRIVER"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %s: %v", want, err)
		}
	}
}
