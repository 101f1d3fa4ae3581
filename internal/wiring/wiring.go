// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/labgen/internal/adapters/config"
	_ "go.trai.ch/labgen/internal/adapters/labcfg"
	_ "go.trai.ch/labgen/internal/adapters/logger"
	_ "go.trai.ch/labgen/internal/adapters/manifest"
	_ "go.trai.ch/labgen/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/labgen/internal/app"
	_ "go.trai.ch/labgen/internal/engine/matrix"
)
