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

package text

import (
	"bytes"

	"github.com/walteh/fqrename/pkg/config"
)

// AppliedReplacement records how often one table entry matched
type AppliedReplacement struct {
	Old   string
	New   string
	Count int
}

// ReplacementResult contains the results of a text replacement operation
type ReplacementResult struct {
	// WasModified indicates if the final content differs from the original
	WasModified bool

	// ReplacementCount is the number of matches across all entries
	ReplacementCount int

	// Applied lists the entries that matched at least once, in table order
	Applied []AppliedReplacement

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte
}

// Replacer applies a replacement table as a sequential fold: each entry sees
// the output of the previous one, so a later entry may match text an earlier
// entry introduced.
type Replacer struct {
	table *config.Table
}

// NewReplacer creates a Replacer for the given table
func NewReplacer(table *config.Table) *Replacer {
	return &Replacer{table: table}
}

// Replace applies every entry to content. The input slice is never modified.
func (r *Replacer) Replace(content []byte) *ReplacementResult {
	result := &ReplacementResult{
		OriginalContent: content,
		ModifiedContent: content,
	}

	current := content
	for _, rule := range r.table.Replacements() {
		old := []byte(rule.Old)

		count := bytes.Count(current, old)
		if count == 0 {
			continue
		}

		current = bytes.ReplaceAll(current, old, []byte(rule.New))
		result.ReplacementCount += count
		result.Applied = append(result.Applied, AppliedReplacement{
			Old:   rule.Old,
			New:   rule.New,
			Count: count,
		})
	}

	result.ModifiedContent = current
	result.WasModified = !bytes.Equal(content, current)
	return result
}
