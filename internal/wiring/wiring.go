// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/vista/internal/adapters/config"
	_ "go.trai.ch/vista/internal/adapters/execache"
	_ "go.trai.ch/vista/internal/adapters/feed"
	_ "go.trai.ch/vista/internal/adapters/livedata"
	_ "go.trai.ch/vista/internal/adapters/logger"
	_ "go.trai.ch/vista/internal/adapters/refdata"
	_ "go.trai.ch/vista/internal/adapters/telemetry"
	_ "go.trai.ch/vista/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/vista/internal/app"
	_ "go.trai.ch/vista/internal/engine/calc"
	_ "go.trai.ch/vista/internal/engine/compiler"
)
