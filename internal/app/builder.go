package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/labgen/internal/core/ports"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App       *App
	Logger    ports.Logger
	Telemetry ports.Telemetry
}

// NewApp resolves the Graft dependency graph and returns the wired components.
func NewApp(ctx context.Context) (*Components, error) {
	components, _, err := graft.ExecuteFor[*Components](ctx)
	if err != nil {
		return nil, err
	}
	return components, nil
}

// Close releases resources held by the components.
func (c *Components) Close() error {
	return c.Telemetry.Close()
}
