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
	"gitlab.com/tozd/go/errors"
)

// 🔄 Replacement is a literal substitution of one fully-qualified name by another
type Replacement struct {
	Old string `json:"old" yaml:"old"` // Text to search for
	New string `json:"new" yaml:"new"` // Text to put in its place
}

// DefaultReplacements returns the built-in table moving the graffitixr model
// types into the common module. Order matters: the package prefix goes first.
func DefaultReplacements() []Replacement {
	return []Replacement{
		{Old: "com.hereliesaz.graffitixr.domain.model", New: "com.hereliesaz.graffitixr.common.model"},
		{Old: "com.hereliesaz.graffitixr.feature.ar.ArState", New: "com.hereliesaz.graffitixr.common.model.ArState"},
		{Old: "com.hereliesaz.graffitixr.feature.editor.RotationAxis", New: "com.hereliesaz.graffitixr.common.model.RotationAxis"},
		{Old: "com.hereliesaz.graffitixr.UiState", New: "com.hereliesaz.graffitixr.common.model.UiState"},
		{Old: "com.hereliesaz.graffitixr.data.LoadedProject", New: "com.hereliesaz.graffitixr.common.model.LoadedProject"},
	}
}

// 📚 Table is an ordered, read-only set of replacements
type Table struct {
	entries []Replacement
}

// 🏭 NewTable validates the pairs and returns a table holding its own copy of them.
// Every Old must be non-empty and unique.
func NewTable(pairs ...Replacement) (*Table, error) {
	seen := make(map[string]int, len(pairs))
	for i, p := range pairs {
		if p.Old == "" {
			return nil, errors.Errorf("replacement %d: old is required", i)
		}
		if first, ok := seen[p.Old]; ok {
			return nil, errors.Errorf("replacement %d: duplicate old %q (already defined by replacement %d)", i, p.Old, first)
		}
		seen[p.Old] = i
	}

	entries := make([]Replacement, len(pairs))
	copy(entries, pairs)
	return &Table{entries: entries}, nil
}

// DefaultTable returns the table built from DefaultReplacements.
func DefaultTable() *Table {
	t, err := NewTable(DefaultReplacements()...)
	if err != nil {
		panic(err) // literal table, cannot happen
	}
	return t
}

// Replacements returns the entries in application order.
func (t *Table) Replacements() []Replacement {
	out := make([]Replacement, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}
