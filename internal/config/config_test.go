package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8080")
	}
	if cfg.JWTIssuer != "callmonitor-auth" {
		t.Errorf("JWTIssuer = %q, want %q", cfg.JWTIssuer, "callmonitor-auth")
	}
	if cfg.TranscriptionModel != "assemblyai-v1" {
		t.Errorf("TranscriptionModel = %q, want %q", cfg.TranscriptionModel, "assemblyai-v1")
	}
	if cfg.AccessTTL() != 15*time.Minute {
		t.Errorf("AccessTTL = %v, want 15m", cfg.AccessTTL())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("JWT_ACCESS_TTL", "30m")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":9090")
	}
	if cfg.AccessTTL() != 30*time.Minute {
		t.Errorf("AccessTTL = %v, want 30m", cfg.AccessTTL())
	}
	brokers := cfg.TelemetryKafkaBrokersList()
	if len(brokers) != 2 || brokers[0] != "kafka-1:9092" || brokers[1] != "kafka-2:9092" {
		t.Errorf("brokers = %v, want [kafka-1:9092 kafka-2:9092]", brokers)
	}
}

func TestLoadRejectsBadBcryptCost(t *testing.T) {
	t.Setenv("BCRYPT_COST", "50")
	if _, err := Load(); err == nil {
		t.Error("Load accepted BCRYPT_COST=50")
	}
}

func TestLoadRequiresProviderAPIKey(t *testing.T) {
	t.Setenv("PROVIDER_BASE_URL", "https://provider.example.com")
	t.Setenv("PROVIDER_API_KEY", "")
	if _, err := Load(); err == nil {
		t.Error("Load accepted PROVIDER_BASE_URL without PROVIDER_API_KEY")
	}
}

func TestAccessTTLFallback(t *testing.T) {
	cfg := &Config{JWTAccessTTL: "not-a-duration"}
	if cfg.AccessTTL() != 15*time.Minute {
		t.Errorf("AccessTTL = %v, want 15m fallback", cfg.AccessTTL())
	}
	cfg = &Config{JWTAccessTTL: "-5m"}
	if cfg.AccessTTL() != 15*time.Minute {
		t.Errorf("AccessTTL = %v, want 15m fallback for negative", cfg.AccessTTL())
	}
}

func TestBrokersListEmpty(t *testing.T) {
	cfg := &Config{TelemetryKafkaBrokers: "  "}
	if got := cfg.TelemetryKafkaBrokersList(); got != nil {
		t.Errorf("brokers = %v, want nil", got)
	}
}
