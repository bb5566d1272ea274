package permission

import (
	"context"
	"testing"
)

func TestModuleAccessReads(t *testing.T) {
	e, err := NewModuleAccessEvaluator()
	if err != nil {
		t.Fatalf("NewModuleAccessEvaluator() error = %v", err)
	}
	ctx := context.Background()
	for _, module := range []string{"ui", "server_actions", "api_routes"} {
		allowed, err := e.Allow(ctx, module, "GET", "calls")
		if err != nil {
			t.Fatalf("Allow(%s, GET) error = %v", module, err)
		}
		if !allowed {
			t.Errorf("Allow(%s, GET) = false, want true", module)
		}
	}
}

func TestModuleAccessWrites(t *testing.T) {
	e, err := NewModuleAccessEvaluator()
	if err != nil {
		t.Fatalf("NewModuleAccessEvaluator() error = %v", err)
	}
	ctx := context.Background()
	for _, op := range []string{"POST", "PUT", "DELETE"} {
		allowed, err := e.Allow(ctx, "server_actions", op, "calls")
		if err != nil {
			t.Fatalf("Allow(server_actions, %s) error = %v", op, err)
		}
		if !allowed {
			t.Errorf("Allow(server_actions, %s) = false, want true", op)
		}
		allowed, err = e.Allow(ctx, "ui", op, "calls")
		if err != nil {
			t.Fatalf("Allow(ui, %s) error = %v", op, err)
		}
		if allowed {
			t.Errorf("Allow(ui, %s) = true, want false", op)
		}
	}
}

func TestModuleAccessUnknownModule(t *testing.T) {
	e, err := NewModuleAccessEvaluator()
	if err != nil {
		t.Fatalf("NewModuleAccessEvaluator() error = %v", err)
	}
	allowed, err := e.Allow(context.Background(), "cron", "GET", "calls")
	if err != nil {
		t.Fatalf("Allow(cron, GET) error = %v", err)
	}
	if allowed {
		t.Error("Allow(cron, GET) = true, want false")
	}
}

func TestModuleAccessHealthCheck(t *testing.T) {
	e, err := NewModuleAccessEvaluator()
	if err != nil {
		t.Fatalf("NewModuleAccessEvaluator() error = %v", err)
	}
	if err := e.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
}
