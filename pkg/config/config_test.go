package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Gateway.Kind != GatewayKindRest {
		t.Fatalf("expected rest gateway default, got %s", cfg.Gateway.Kind)
	}
	if cfg.Cache.HealthTTL != 15*time.Second {
		t.Fatalf("expected 15s health ttl, got %s", cfg.Cache.HealthTTL)
	}
	if cfg.Cache.DatasetTTL != 30*time.Second {
		t.Fatalf("expected 30s dataset ttl, got %s", cfg.Cache.DatasetTTL)
	}
	if cfg.Retry.InsertAttempts != 5 {
		t.Fatalf("expected 5 insert attempts, got %d", cfg.Retry.InsertAttempts)
	}
	if cfg.Retry.InsertBackoff != 500*time.Millisecond {
		t.Fatalf("expected 500ms base backoff, got %s", cfg.Retry.InsertBackoff)
	}
	if cfg.Password.AllowLegacyPlaintext {
		t.Fatalf("legacy plaintext comparison must be off by default")
	}
}

func TestLoadRejectsUnknownGatewayKind(t *testing.T) {
	t.Setenv("SUGESTAO_GATEWAY_KIND", "carrier-pigeon")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown gateway kind")
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("SUGESTAO_DB_DRIVER", "oracle")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown db driver")
	}
}
