/*
Copyright 2024 - 2026 the ChatterNet authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package cfg defines the chatternet configuration file format and defaults.
package cfg

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Config represents a chatternet configuration file.
//
// Every field is optional: a missing or zero field falls back to its
// default. Tunables (page sizes, body caps) take effect on reload;
// everything else is read once, at startup.
type Config struct {
	DatabaseOptions string

	PostsPerPage int
	MaxPageSize  int

	MaxRequestBodySize int64

	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	MaxConns int

	LogLevel int
}

// FillDefaults replaces missing or invalid settings with defaults.
func (c *Config) FillDefaults() {
	if c.DatabaseOptions == "" {
		c.DatabaseOptions = "_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	}

	if c.PostsPerPage <= 0 {
		c.PostsPerPage = 32
	}

	if c.MaxPageSize <= 0 {
		c.MaxPageSize = 128
	}

	if c.MaxRequestBodySize <= 0 {
		c.MaxRequestBodySize = 1024 * 1024
	}

	if c.ReadTimeout <= 0 {
		c.ReadTimeout = time.Second * 30
	}

	if c.WriteTimeout <= 0 {
		c.WriteTimeout = time.Second * 30
	}

	if c.MaxConns <= 0 {
		c.MaxConns = 128
	}
}

// Load reads a configuration file and fills in the gaps with defaults.
//
// An empty path yields the default configuration.
func Load(path string) (*Config, error) {
	var c Config

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	c.FillDefaults()
	return &c, nil
}
