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

// Package rewrite applies a replacement table to a single file in place.
package rewrite

import (
	"context"
	"os"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/walteh/fqrename/pkg/config"
	"github.com/walteh/fqrename/pkg/status"
	"github.com/walteh/fqrename/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 💾 FileSystem is the file access a Rewriter needs
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	// WriteFile replaces the content of an existing file, keeping its mode
	WriteFile(name string, data []byte) error
}

// OSFileSystem reads and writes the real filesystem
type OSFileSystem struct{}

func (OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFile truncates and rewrites name in place; no temporary file or backup
// is made, so an interrupted write can leave the file truncated.
func (OSFileSystem) WriteFile(name string, data []byte) error {
	return os.WriteFile(name, data, 0o644)
}

// 🔧 Options configures a Rewriter
type Options struct {
	Table  *config.Table // Required
	FS     FileSystem    // Defaults to OSFileSystem
	DryRun bool          // Compute a diff instead of writing
}

// ✏️ Rewriter rewrites files with a replacement table
type Rewriter struct {
	replacer *text.Replacer
	fs       FileSystem
	dryRun   bool
}

// 🏭 New creates a Rewriter
func New(opts Options) (*Rewriter, error) {
	if opts.Table == nil {
		return nil, errors.Errorf("replacement table is required")
	}
	fsys := opts.FS
	if fsys == nil {
		fsys = OSFileSystem{}
	}
	return &Rewriter{
		replacer: text.NewReplacer(opts.Table),
		fs:       fsys,
		dryRun:   opts.DryRun,
	}, nil
}

// 📄 Rewrite processes one file and never returns an error: failures are
// reported in the result so the caller can move on to the next file.
func (r *Rewriter) Rewrite(ctx context.Context, path string) status.FileResult {
	logger := zerolog.Ctx(ctx).With().Str("path", path).Logger()

	content, err := r.fs.ReadFile(path)
	if err != nil {
		logger.Debug().Err(err).Msg("read failed")
		return status.Failed(path, status.FailureRead, errors.Errorf("reading file: %w", err))
	}

	if !utf8.Valid(content) {
		logger.Debug().Msg("content is not valid UTF-8")
		return status.Failed(path, status.FailureDecode, errors.Errorf("decoding file: content is not valid UTF-8 text"))
	}

	result := r.replacer.Replace(content)
	if !result.WasModified {
		logger.Trace().Int("replacements", result.ReplacementCount).Msg("unchanged")
		return status.FileResult{
			Path:         path,
			Status:       status.StatusUnchanged,
			Replacements: result.ReplacementCount,
		}
	}

	for _, applied := range result.Applied {
		logger.Debug().
			Str("old", applied.Old).
			Str("new", applied.New).
			Int("count", applied.Count).
			Msg("replacement applied")
	}

	if r.dryRun {
		return status.FileResult{
			Path:         path,
			Status:       status.StatusWouldUpdate,
			Replacements: result.ReplacementCount,
			Diff:         text.LineDiff(path, result.OriginalContent, result.ModifiedContent),
		}
	}

	if err := r.fs.WriteFile(path, result.ModifiedContent); err != nil {
		logger.Debug().Err(err).Msg("write failed")
		return status.Failed(path, status.FailureWrite, errors.Errorf("writing file: %w", err))
	}

	return status.FileResult{
		Path:         path,
		Status:       status.StatusUpdated,
		Replacements: result.ReplacementCount,
	}
}
