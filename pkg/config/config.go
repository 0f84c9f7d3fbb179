// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// DefaultExtensions are the file suffixes rewritten when none are configured.
func DefaultExtensions() []string {
	return []string{".kt", ".java", ".xml"}
}

// DefaultExclude are the directory names skipped when none are configured.
func DefaultExclude() []string {
	return []string{"build", ".git"}
}

// 📚 Config represents the complete configuration
type Config struct {
	Extensions   []string      `json:"extensions,omitempty" yaml:"extensions,omitempty"`     // File suffixes to rewrite
	Exclude      []string      `json:"exclude,omitempty" yaml:"exclude,omitempty"`           // Directory names to skip
	Replacements []Replacement `json:"replacements,omitempty" yaml:"replacements,omitempty"` // Ordered substitutions

	location string
	table    *Table
}

// 🎯 Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

// 🔍 Validate fills defaults, normalises extensions and builds the table.
// A nil Exclude means "use the defaults"; an empty, non-nil one disables exclusion.
func (cfg *Config) Validate() error {
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = DefaultExtensions()
	}
	for i, ext := range cfg.Extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" || ext == "." {
			return errors.Errorf("extensions[%d]: extension is empty", i)
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.Extensions[i] = ext
	}

	if cfg.Exclude == nil {
		cfg.Exclude = DefaultExclude()
	}
	for i, name := range cfg.Exclude {
		if name == "" {
			return errors.Errorf("exclude[%d]: name is empty", i)
		}
		if strings.ContainsAny(name, `/\`) {
			return errors.Errorf("exclude[%d]: %q must be a single path component", i, name)
		}
	}

	if len(cfg.Replacements) == 0 {
		cfg.Replacements = DefaultReplacements()
	}
	table, err := NewTable(cfg.Replacements...)
	if err != nil {
		return errors.Errorf("building replacement table: %w", err)
	}
	cfg.table = table

	return nil
}

// Table returns the validated replacement table. Validate must have succeeded first.
func (cfg *Config) Table() *Table {
	return cfg.table
}

// Location returns the file the config was loaded from, or "" for the built-in one.
func (cfg *Config) Location() string {
	return cfg.location
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	src := cfg.location
	if src == "" {
		src = "built-in"
	}
	return fmt.Sprintf("%s: %d replacements over %s (excluding %s)",
		src, len(cfg.Replacements), strings.Join(cfg.Extensions, ","), strings.Join(cfg.Exclude, ","))
}
