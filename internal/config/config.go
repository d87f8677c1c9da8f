// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QueryLens Contributors

// Package config loads QueryLens configuration with the standard
// precedence: flags > environment > config file > defaults.
package config

import (
	"errors"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	qlerr "github.com/querylens/querylens/pkg/errors"
)

// Config is the top-level QueryLens configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Embedding EmbeddingConfig `mapstructure:"embedding"`
}

// ServerConfig controls how the HTTP API listens for connections.
type ServerConfig struct {
	Listen      string   `mapstructure:"listen"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// StorageConfig locates the per-engine database files.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// EmbeddingConfig selects the embedding provider for the semantic engine.
type EmbeddingConfig struct {
	Provider   string `mapstructure:"provider"`
	Model      string `mapstructure:"model"`
	Dimensions int    `mapstructure:"dimensions"`
	APIKey     string `mapstructure:"api_key"`
}

// SetDefaults installs the default configuration values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.listen", "127.0.0.1:8080")
	v.SetDefault("storage.data_dir", "data")
	v.SetDefault("embedding.provider", "local")
	v.SetDefault("embedding.dimensions", 384)
}

// SetupEnv binds environment variables with the QUERYLENS_ prefix, e.g.
// QUERYLENS_SERVER_LISTEN and QUERYLENS_EMBEDDING_API_KEY.
func SetupEnv(v *viper.Viper) {
	v.SetEnvPrefix("QUERYLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads configuration from the given path (or defaults) with
// environment variable overrides.
func Load(path string) (*Config, error) {
	v := viper.New()

	SetDefaults(v)
	SetupEnv(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, qlerr.Errorf(qlerr.CodeConfigLoadReadFailure, "reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, qlerr.Errorf(qlerr.CodeConfigValidateInvalidValue, "unmarshalling config: %w", err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, qlerr.Errorf(qlerr.CodeConfigValidateInvalidValue, "validating config: %w", errors.Join(errs...))
	}

	return &cfg, nil
}

// Validate checks the configuration for logical errors, collecting all
// issues rather than stopping at the first one.
func (c *Config) Validate() []error {
	var errs []error

	errs = append(errs, c.validateServer()...)
	errs = append(errs, c.validateStorage()...)
	errs = append(errs, c.validateEmbedding()...)

	return errs
}

func (c *Config) validateServer() []error {
	var errs []error

	if c.Server.Listen == "" {
		errs = append(errs, qlerr.Errorf(qlerr.CodeConfigValidateInvalidValue, "config: server.listen must not be empty"))
		return errs
	}

	_, portStr, err := net.SplitHostPort(c.Server.Listen)
	if err != nil {
		errs = append(errs, qlerr.Errorf(qlerr.CodeConfigValidateInvalidValue,
			"config: server.listen must be a valid host:port address, got %q: %w",
			c.Server.Listen, err,
		))
		return errs
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		errs = append(errs, qlerr.Errorf(qlerr.CodeConfigValidateInvalidValue,
			"config: server.listen port must be a number, got %q", portStr))
	} else if port < 1 || port > 65535 {
		errs = append(errs, qlerr.Errorf(qlerr.CodeConfigValidateInvalidValue,
			"config: server.listen port must be between 1 and 65535, got %d", port))
	}

	return errs
}

func (c *Config) validateStorage() []error {
	var errs []error

	if c.Storage.DataDir == "" {
		errs = append(errs, qlerr.Errorf(qlerr.CodeConfigValidateInvalidValue, "config: storage.data_dir must not be empty"))
	}

	return errs
}

func (c *Config) validateEmbedding() []error {
	var errs []error

	validProviders := map[string]bool{"local": true, "openai": true, "google": true}
	if !validProviders[c.Embedding.Provider] {
		errs = append(errs, qlerr.Errorf(qlerr.CodeConfigValidateInvalidValue,
			"config: embedding.provider must be one of [local, openai, google], got %q",
			c.Embedding.Provider,
		))
	}

	if c.Embedding.Dimensions < 1 {
		errs = append(errs, qlerr.Errorf(qlerr.CodeConfigValidateInvalidValue,
			"config: embedding.dimensions must be >= 1, got %d", c.Embedding.Dimensions))
	}

	if c.Embedding.Provider != "local" && c.Embedding.Provider != "" && c.Embedding.APIKey == "" {
		errs = append(errs, qlerr.Errorf(qlerr.CodeConfigValidateInvalidValue,
			"config: embedding.api_key is required for provider %q", c.Embedding.Provider))
	}

	return errs
}
