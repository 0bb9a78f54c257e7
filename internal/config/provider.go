// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// LoadOptions selects where configuration comes from. The zero value means
// the platform config directory.
type LoadOptions struct {
	// ConfigFilePath is the --config flag. When set, no other location is
	// consulted and a missing file is an error.
	ConfigFilePath string
	// ConfigDirPath replaces ConfigDir() as the directory searched for
	// config.cue, which keeps tests away from the user's real settings.
	ConfigDirPath string
}

// Provider yields the effective coreutils configuration. The CLI depends on
// this interface so tests can hand it a fixed Config.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
}

// cueProvider reads a CUE file validated against the embedded schema and
// layers it over DefaultConfig through viper.
type cueProvider struct{}

// NewProvider returns the Provider used by the coreutils binary.
func NewProvider() Provider {
	return cueProvider{}
}

// Load returns the defaults merged with the selected config file, if any.
func (cueProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	return cfg, err
}
