// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/symcache/internal/adapters/cas"
	_ "go.trai.ch/symcache/internal/adapters/config"
	_ "go.trai.ch/symcache/internal/adapters/dumpsyms"
	_ "go.trai.ch/symcache/internal/adapters/fs"
	_ "go.trai.ch/symcache/internal/adapters/logger"
	_ "go.trai.ch/symcache/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/symcache/internal/app"
	_ "go.trai.ch/symcache/internal/engine/pipeline"
)
