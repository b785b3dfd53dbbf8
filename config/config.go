// config.go - daemon configuration.
// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// Package config defines the daemon configuration and its TOML loader.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	defaultLogLevel                  = "NOTICE"
	defaultOracleTimeoutMilliseconds = 30 * 1000
)

// nolint: gochecknoglobals
var defaultLogging = Logging{
	Disable: false,
	File:    "",
	Level:   defaultLogLevel,
}

// Peace is the main daemon configuration.
type Peace struct {
	// DataDir is the directory artifacts are written to.
	DataDir string

	// SnarkBinary is the path of the external SNARK oracle executable.
	// When empty the in-process pairing oracle is used.
	SnarkBinary string
}

// Oracle is the SNARK oracle configuration.
type Oracle struct {
	// Native forces the in-process pairing oracle even when SnarkBinary
	// is set. It cannot prove or verify circuits.
	Native bool

	// TimeoutMilliseconds is the per-invocation deadline for the
	// external oracle binary.
	TimeoutMilliseconds int
}

// Logging is the logging configuration.
type Logging struct {
	// Disable disables logging entirely.
	Disable bool

	// File specifies the log file, if omitted stdout will be used.
	File string

	// Level specifies the log level.
	Level string
}

// Config is the top level configuration.
type Config struct {
	Peace   *Peace
	Oracle  *Oracle
	Logging *Logging
}

func (cfg *Config) validateAndApplyDefaults() error {
	if cfg.Peace == nil {
		return errors.New("config: No Peace block was present")
	}
	if cfg.Peace.DataDir == "" {
		return errors.New("config: Unspecified data directory")
	}
	if !filepath.IsAbs(cfg.Peace.DataDir) {
		return errors.New("config: Data directory must be an absolute path")
	}

	if cfg.Oracle == nil {
		cfg.Oracle = &Oracle{}
	}
	if cfg.Oracle.TimeoutMilliseconds <= 0 {
		cfg.Oracle.TimeoutMilliseconds = defaultOracleTimeoutMilliseconds
	}
	if !cfg.Oracle.Native && cfg.Peace.SnarkBinary == "" {
		cfg.Oracle.Native = true
	}

	if cfg.Logging == nil {
		cfg.Logging = &defaultLogging
	}

	return nil
}

// LoadBinary loads, parses and validates the provided buffer b (as a config)
// and returns the Config.
func LoadBinary(b []byte) (*Config, error) {
	cfg := new(Config)
	if err := toml.Unmarshal(b, cfg); err != nil {
		return nil, err
	}
	if err := cfg.validateAndApplyDefaults(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads, parses and validates the provided file and returns the
// Config.
func LoadFile(f string) (*Config, error) {
	b, err := os.ReadFile(f)
	if err != nil {
		return nil, err
	}
	return LoadBinary(b)
}
