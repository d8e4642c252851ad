// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/forge/internal/core/domain"

// ConfigLoader defines the interface for loading the build configuration file.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path. When path is empty the well-known
	// file names are probed in root; if none exists an empty ConfigFile is returned.
	Load(root, path string) (*domain.ConfigFile, error)
}
