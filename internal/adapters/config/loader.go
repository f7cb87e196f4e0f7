// Package config provides the configuration loader for symcache.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"

	"go.trai.ch/symcache/internal/core/domain"
	"go.trai.ch/symcache/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	logger ports.Logger
}

// NewLoader creates a new FileConfigLoader.
func NewLoader(logger ports.Logger) *FileConfigLoader {
	return &FileConfigLoader{logger: logger}
}

// Load reads the config file at path on top of the defaults. An empty path
// means symcache.yaml in the working directory, which may be absent.
// An explicitly named file must exist.
func (l *FileConfigLoader) Load(path string) (domain.Config, error) {
	optional := path == ""
	if optional {
		path = domain.ConfigFileName
	}

	cfg, err := Load(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			l.logger.Debug("no " + domain.ConfigFileName + " found, using defaults")
			return domain.DefaultConfig(), nil
		}
		return domain.Config{}, err
	}

	l.logger.Debug("loaded config from " + path)
	return cfg, nil
}

// Load reads a configuration file from the given path and applies it over the defaults.
func Load(path string) (domain.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return domain.Config{}, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	return Parse(data)
}

// Parse decodes YAML config data and applies it over the defaults.
func Parse(data []byte) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	var symfile Symfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&symfile); err != nil && !errors.Is(err, io.EOF) {
		return domain.Config{}, zerr.Wrap(domain.ErrConfigParseFailed, err.Error())
	}

	if symfile.Tool != nil && *symfile.Tool != "" {
		cfg.Tool = *symfile.Tool
	}
	if symfile.HeaderFlag != nil {
		cfg.HeaderFlag = *symfile.HeaderFlag
	}
	if symfile.Suffix != nil && *symfile.Suffix != "" {
		cfg.Suffix = *symfile.Suffix
	}
	if symfile.Jobs != nil {
		if *symfile.Jobs < 0 {
			return domain.Config{}, zerr.With(zerr.Wrap(domain.ErrInvalidJobs, "invalid jobs in config"), "jobs", *symfile.Jobs)
		}
		if *symfile.Jobs > 0 {
			cfg.Jobs = *symfile.Jobs
		}
	}
	if symfile.Ignore != nil {
		cfg.Ignore = symfile.Ignore
	}

	return cfg, nil
}
