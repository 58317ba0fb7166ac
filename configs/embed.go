// Package configs holds the default runtime files shipped inside the binary.
package configs

import "embed"

//go:embed SYSTEM.md simulation.yaml
var FS embed.FS
