package device

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSimSyncRequiresConnection(t *testing.T) {
	t.Parallel()

	adapter := NewSimAdapter(ModelRing)

	if _, err := adapter.Sync(context.Background(), "2025-03-20"); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Sync before Connect: err = %v, want ErrNotConnected", err)
	}
}

func TestSimSyncDeterministicPerDay(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	adapter := NewSimAdapter(ModelRing)

	devices, err := adapter.Scan(ctx)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(devices) != 1 {
		t.Fatalf("got %d devices, want 1", len(devices))
	}
	if err := adapter.Connect(ctx, devices[0].ID); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	first, err := adapter.Sync(ctx, "2025-03-20")
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	second, err := adapter.Sync(ctx, "2025-03-20")
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("same day produced different samples (-first +second):\n%s", diff)
	}

	other, err := adapter.Sync(ctx, "2025-03-21")
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if cmp.Equal(first, other) {
		t.Error("different days produced identical samples")
	}
}

func TestSimDiagnostics(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	adapter := NewSimAdapter(ModelBand)

	diag, err := adapter.Diagnostics(ctx)
	if err != nil {
		t.Fatalf("Diagnostics: %v", err)
	}
	if diag.Connected {
		t.Error("Connected = true before Connect")
	}

	if err := adapter.Connect(ctx, "sim-band-01"); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	diag, err = adapter.Diagnostics(ctx)
	if err != nil {
		t.Fatalf("Diagnostics: %v", err)
	}
	if !diag.Connected {
		t.Error("Connected = false after Connect")
	}

	if err := adapter.Disconnect(ctx); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
	diag, err = adapter.Diagnostics(ctx)
	if err != nil {
		t.Fatalf("Diagnostics: %v", err)
	}
	if diag.Connected {
		t.Error("Connected = true after Disconnect")
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(NewSimAdapter(ModelRing))

	if _, err := registry.Get(ModelRing); err != nil {
		t.Errorf("Get(ring): %v", err)
	}
	if _, err := registry.Get(ModelBand); !errors.Is(err, ErrUnknownModel) {
		t.Errorf("Get(band): err = %v, want ErrUnknownModel", err)
	}
	if models := registry.Models(); len(models) != 1 || models[0] != ModelRing {
		t.Errorf("Models() = %v, want [ring]", models)
	}
}
