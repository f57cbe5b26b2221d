package services_test

import (
	"context"
	"testing"

	"eventkernel/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithEventID(ctx, "ev-42")
	ctx = services.WithStep(ctx, 3)
	ctx = services.WithTenantID(ctx, "acme")
	ctx = services.WithRequestID(ctx, "req-123")

	if id, ok := services.EventIDFromContext(ctx); !ok || id != "ev-42" {
		t.Fatalf("unexpected event id: %v %v", id, ok)
	}
	if step, ok := services.StepFromContext(ctx); !ok || step != 3 {
		t.Fatalf("unexpected step: %v %v", step, ok)
	}
	if tenant, ok := services.TenantIDFromContext(ctx); !ok || tenant != "acme" {
		t.Fatalf("unexpected tenant id: %v %v", tenant, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestStepZeroPreservesContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStep(ctx, 0)
	if _, ok := services.StepFromContext(ctx); ok {
		t.Fatal("expected no step value")
	}
}

func TestBlankValuesAreNotStamped(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithEventID(ctx, "")
	ctx = services.WithTenantID(ctx, "")
	ctx = services.WithRequestID(ctx, "")

	if _, ok := services.EventIDFromContext(ctx); ok {
		t.Fatal("expected no event id value")
	}
	if _, ok := services.TenantIDFromContext(ctx); ok {
		t.Fatal("expected no tenant id value")
	}
	if _, ok := services.RequestIDFromContext(ctx); ok {
		t.Fatal("expected no request id value")
	}
}
