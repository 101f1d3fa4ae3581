package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/labgen/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/labgen/internal/adapters/labcfg"             //nolint:depguard // Wired in app layer
	"go.trai.ch/labgen/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/labgen/internal/adapters/manifest"           //nolint:depguard // Wired in app layer
	"go.trai.ch/labgen/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/labgen/internal/core/ports"
	"go.trai.ch/labgen/internal/engine/matrix"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			matrix.NodeID,
			labcfg.NodeID,
			manifest.NodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.CatalogLoader](ctx)
	if err != nil {
		return nil, err
	}

	generator, err := graft.Dep[*matrix.Generator](ctx)
	if err != nil {
		return nil, err
	}

	encoder, err := graft.Dep[ports.DocumentEncoder](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.StampStore](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, generator, encoder, store, log, telemetry), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       app,
		Logger:    log,
		Telemetry: telemetry,
	}, nil
}
