package fmca

import "github.com/fmc-tools/fmca/internal/core/config"

// App carries the long-lived dependencies shared by all commands.
// It is pre-allocated in main and populated once configuration is loaded.
type App struct {
	Config  *config.Config
	Service *Service
}
