// Package device abstracts wearable integrations. An Adapter wraps one
// device family's transport; the registry maps models to adapters so
// sync flows stay device-agnostic.
package device

import (
	"context"
	"errors"
	"time"

	"github.com/vyrlabs/vyr/internal/vyr"
)

type Model string

const (
	ModelRing Model = "ring"
	ModelBand Model = "band"
)

var (
	ErrUnknownModel = errors.New("unknown device model")
	ErrNotConnected = errors.New("device not connected")
)

// Device is one discovered unit of a model.
type Device struct {
	ID       string `json:"id"`
	Model    Model  `json:"model"`
	Name     string `json:"name"`
	Firmware string `json:"firmware,omitempty"`
}

// Diagnostics reports adapter health for the status surface.
type Diagnostics struct {
	Connected  bool      `json:"connected"`
	Battery    int       `json:"battery"`
	LastSyncAt time.Time `json:"last_sync_at"`
	SignalDBm  int       `json:"signal_dbm,omitempty"`
}

// Adapter is one device family's integration surface. Implementations
// must be safe for concurrent use.
type Adapter interface {
	Model() Model

	// Scan discovers nearby devices of this adapter's model.
	Scan(ctx context.Context) ([]Device, error)

	// Connect establishes a session with a discovered device.
	Connect(ctx context.Context, deviceID string) error

	// Sync pulls the device's readings for one day.
	// Returns ErrNotConnected if no session is established.
	Sync(ctx context.Context, day string) (vyr.BiometricSample, error)

	Disconnect(ctx context.Context) error

	Diagnostics(ctx context.Context) (Diagnostics, error)
}

// Registry resolves adapters by model. Adapters are injected at
// construction; there is no global registration.
type Registry struct {
	adapters map[Model]Adapter
}

func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[Model]Adapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.Model()] = a
	}
	return r
}

func (r *Registry) Get(model Model) (Adapter, error) {
	adapter, ok := r.adapters[model]
	if !ok {
		return nil, ErrUnknownModel
	}
	return adapter, nil
}

func (r *Registry) Models() []Model {
	models := make([]Model, 0, len(r.adapters))
	for model := range r.adapters {
		models = append(models, model)
	}
	return models
}
