// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/relpack/relpack/internal/adapters/archive"
	_ "github.com/relpack/relpack/internal/adapters/config"
	_ "github.com/relpack/relpack/internal/adapters/fs"
	_ "github.com/relpack/relpack/internal/adapters/logger"
	_ "github.com/relpack/relpack/internal/adapters/shell"
	_ "github.com/relpack/relpack/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "github.com/relpack/relpack/internal/app"
	_ "github.com/relpack/relpack/internal/engine/pipeline"
)
