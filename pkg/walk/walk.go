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

// Package walk finds the files a rename run should rewrite.
package walk

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options configures a Walker
type Options struct {
	Extensions []string // File suffixes to visit, e.g. ".kt"
	Exclude    []string // Directory name patterns whose subtree is skipped
}

// 👀 Visitor receives candidate files and walk errors
type Visitor interface {
	// VisitFile is called for every regular file matching an extension.
	// Returning an error stops the walk.
	VisitFile(ctx context.Context, path string) error
	// VisitError is called for a path below the root that could not be read.
	VisitError(ctx context.Context, path string, err error)
}

// 🚶 Walker enumerates candidate files under a root
type Walker struct {
	include []string
	exclude []string
}

// 🏭 New creates a Walker. Extensions become "*<ext>" globs matched against
// the base name; exclude entries are globs matched against single path components.
func New(opts Options) (*Walker, error) {
	w := &Walker{}

	for _, ext := range opts.Extensions {
		pattern := "*" + ext
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid extension %q", ext)
		}
		w.include = append(w.include, pattern)
	}

	for _, name := range opts.Exclude {
		if !doublestar.ValidatePattern(name) {
			return nil, errors.Errorf("invalid exclude pattern %q", name)
		}
		w.exclude = append(w.exclude, name)
	}

	return w, nil
}

// Matches reports whether a file with the given base name should be visited
func (w *Walker) Matches(name string) bool {
	for _, pattern := range w.include {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// Excluded reports whether any component of rel, a path relative to the
// root, matches an exclude pattern
func (w *Walker) Excluded(rel string) bool {
	for _, component := range strings.Split(filepath.ToSlash(rel), "/") {
		if component == "" || component == "." {
			continue
		}
		for _, pattern := range w.exclude {
			if ok, _ := doublestar.Match(pattern, component); ok {
				return true
			}
		}
	}
	return false
}

// 🏃 Walk visits every matching file under root. Excluded directories are
// skipped with their subtree and symbolic links are never followed. An error
// on the root itself is returned; errors below it go to the visitor.
func (w *Walker) Walk(ctx context.Context, root string, v Visitor) error {
	logger := zerolog.Ctx(ctx)

	info, err := os.Lstat(root)
	if err != nil {
		return errors.Errorf("walking %s: %w", root, err)
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		resolved, err := filepath.EvalSymlinks(root)
		if err != nil {
			return errors.Errorf("resolving root %s: %w", root, err)
		}
		logger.Debug().Str("root", root).Str("resolved", resolved).Msg("root is a symbolic link")
		root = resolved
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			if path == root {
				return err
			}
			v.VisitError(ctx, path, errors.Errorf("walking %s: %w", path, err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}
			if w.Excluded(rel) {
				logger.Debug().Str("dir", path).Msg("skipping excluded directory")
				return fs.SkipDir
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			logger.Debug().Str("path", path).Msg("skipping symbolic link")
			return nil
		}

		if !d.Type().IsRegular() || !w.Matches(d.Name()) {
			return nil
		}

		return v.VisitFile(ctx, path)
	})
	if err != nil {
		return errors.Errorf("walking %s: %w", root, err)
	}

	return nil
}
