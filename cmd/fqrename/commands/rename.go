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

package commands

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/walteh/fqrename/cmd/fqrename/opts"
	"github.com/walteh/fqrename/pkg/config"
	"github.com/walteh/fqrename/pkg/log"
	"github.com/walteh/fqrename/pkg/operation"
	"github.com/walteh/fqrename/pkg/rewrite"
	"github.com/walteh/fqrename/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// 🏃 Rename runs one rename over o.Root, writing per-file lines to out.
// Per-file failures are printed and never returned.
func Rename(ctx context.Context, o *opts.RootOpts, out io.Writer) error {
	ctx = zerolog.Ctx(ctx).With().Str("command", "rename").Logger().WithContext(ctx)
	logger := zerolog.Ctx(ctx)

	cfg, err := loadConfig(ctx, o.ConfigFile)
	if err != nil {
		return err
	}
	logger.Debug().Str("config", cfg.String()).Msg("using config")

	walker, err := walk.New(walk.Options{
		Extensions: cfg.Extensions,
		Exclude:    cfg.Exclude,
	})
	if err != nil {
		return errors.Errorf("creating walker: %w", err)
	}

	rewriter, err := rewrite.New(rewrite.Options{
		Table:  cfg.Table(),
		DryRun: o.DryRun,
	})
	if err != nil {
		return errors.Errorf("creating rewriter: %w", err)
	}

	console := log.New(out, *logger)
	ctx = log.NewContext(ctx, console)

	runner, err := operation.NewRunner(operation.Options{
		Root:     o.Root,
		Walker:   walker,
		Rewriter: rewriter,
		Reporter: console,
		Jobs:     o.Jobs,
	})
	if err != nil {
		return errors.Errorf("creating runner: %w", err)
	}

	if o.Summary {
		console.Header("renaming in " + o.Root)
		console.Infof("using %s", cfg)
		if o.DryRun {
			console.Info("dry run, no files will be written")
		}
	}

	summary, err := runner.Run(ctx)
	if err != nil {
		logger.Error().Err(err).Str("root", o.Root).Msg("rename aborted")
		return errors.Errorf("renaming files: %w", err)
	}

	if o.Summary {
		return printSummary(ctx, summary, out)
	}
	return nil
}

func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.LoadConfig(ctx, path)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
