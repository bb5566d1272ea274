package otel

import (
	"context"
	"testing"
)

func TestNewProvidersEmptyEndpoint(t *testing.T) {
	p, err := NewProviders(context.Background(), "", "callmonitor-test", false)
	if err != nil {
		t.Fatalf("NewProviders(\"\") error = %v", err)
	}
	if p.TracerProvider == nil || p.MeterProvider == nil || p.LoggerProvider == nil {
		t.Error("no-op providers should be non-nil")
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestNewProvidersInvalidEndpoint(t *testing.T) {
	if _, err := NewProviders(context.Background(), "://", "callmonitor-test", false); err == nil {
		t.Error("NewProviders(\"://\") error = nil, want invalid endpoint error")
	}
}
