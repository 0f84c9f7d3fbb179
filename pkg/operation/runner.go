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

package operation

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/fqrename/pkg/status"
	"github.com/walteh/fqrename/pkg/walk"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🚶 TreeWalker enumerates candidate files
type TreeWalker interface {
	Walk(ctx context.Context, root string, v walk.Visitor) error
}

// ✏️ FileRewriter processes a single file
type FileRewriter interface {
	Rewrite(ctx context.Context, path string) status.FileResult
}

// 📢 Reporter is told about every result as soon as it is known
type Reporter interface {
	Report(ctx context.Context, r status.FileResult)
}

// 🔧 Options configures a Runner
type Options struct {
	Root     string       // Directory to walk, defaults to "."
	Walker   TreeWalker   // Required
	Rewriter FileRewriter // Required
	Reporter Reporter     // Optional
	Jobs     int          // Files rewritten at once; 1 or less is sequential
}

// 🏃 Runner drives a rename run: walk, rewrite, report
type Runner struct {
	root     string
	walker   TreeWalker
	rewriter FileRewriter
	reporter Reporter
	jobs     int
}

// 🏗️ NewRunner creates a new runner
func NewRunner(opts Options) (*Runner, error) {
	if opts.Walker == nil {
		return nil, errors.Errorf("walker is required")
	}
	if opts.Rewriter == nil {
		return nil, errors.Errorf("rewriter is required")
	}
	root := opts.Root
	if root == "" {
		root = "."
	}
	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}
	return &Runner{
		root:     root,
		walker:   opts.Walker,
		rewriter: opts.Rewriter,
		reporter: opts.Reporter,
		jobs:     jobs,
	}, nil
}

// 🏃 Run walks the tree and rewrites every candidate. Per-file failures are
// recorded in the summary and never stop the run; only a failure to walk the
// root (or cancellation) is returned as an error, along with what was done so far.
func (r *Runner) Run(ctx context.Context) (*status.Summary, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("root", r.root).Int("jobs", r.jobs).Msg("starting rename")

	v := &visitor{runner: r, summary: &status.Summary{}}
	if r.jobs > 1 {
		v.group = &errgroup.Group{}
		v.group.SetLimit(r.jobs)
	}

	walkErr := r.walker.Walk(ctx, r.root, v)
	if v.group != nil {
		// results are never returned as errors, Wait only drains the pool
		_ = v.group.Wait()
	}

	v.summary.Sort()

	logger.Debug().
		Int("visited", v.summary.Visited()).
		Int("updated", v.summary.Count(status.StatusUpdated)).
		Int("failed", v.summary.Count(status.StatusFailed)).
		Msg("rename finished")

	if walkErr != nil {
		return v.summary, errors.Errorf("running rename: %w", walkErr)
	}
	return v.summary, nil
}

// visitor feeds walker output to the rewriter and collects results
type visitor struct {
	runner  *Runner
	group   *errgroup.Group
	mu      sync.Mutex
	summary *status.Summary
}

func (v *visitor) VisitFile(ctx context.Context, path string) error {
	if v.group == nil {
		v.record(ctx, v.runner.rewriter.Rewrite(ctx, path))
		return nil
	}

	v.group.Go(func() error {
		if ctx.Err() != nil {
			return nil
		}
		v.record(ctx, v.runner.rewriter.Rewrite(ctx, path))
		return nil
	})
	return nil
}

func (v *visitor) VisitError(ctx context.Context, path string, err error) {
	v.record(ctx, status.Failed(path, status.FailureWalk, err))
}

func (v *visitor) record(ctx context.Context, res status.FileResult) {
	v.mu.Lock()
	v.summary.Add(res)
	v.mu.Unlock()

	if v.runner.reporter != nil {
		v.runner.reporter.Report(ctx, res)
	}
}
