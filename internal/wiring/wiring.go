// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/flowlock/internal/adapters/artifact"
	_ "go.trai.ch/flowlock/internal/adapters/config"
	_ "go.trai.ch/flowlock/internal/adapters/flowgen"
	_ "go.trai.ch/flowlock/internal/adapters/flowtyped"
	_ "go.trai.ch/flowlock/internal/adapters/lockfile"
	_ "go.trai.ch/flowlock/internal/adapters/logger"
	_ "go.trai.ch/flowlock/internal/adapters/npm"
	_ "go.trai.ch/flowlock/internal/adapters/pkgmanager"
	_ "go.trai.ch/flowlock/internal/adapters/shell"
	_ "go.trai.ch/flowlock/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/flowlock/internal/app"
	_ "go.trai.ch/flowlock/internal/engine/resolver"
)
