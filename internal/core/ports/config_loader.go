package ports

import "go.trai.ch/symcache/internal/core/domain"

// ConfigLoader defines the interface for loading run settings.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the config file at path on top of the defaults.
	// A missing file yields the defaults.
	Load(path string) (domain.Config, error)
}
