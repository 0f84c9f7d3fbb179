package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/fqrename/cmd/fqrename/commands"
	"github.com/walteh/fqrename/cmd/fqrename/opts"
)

// newRootCmd creates the fqrename command. Run without arguments it renames
// under the current directory with the built-in table.
func newRootCmd() *cobra.Command {
	o := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "fqrename",
		Short: "Rewrite fully-qualified names across a source tree",
		Long: `fqrename walks a directory tree and rewrites fully-qualified type names
in Kotlin, Java and XML files. It will:
1. Skip every build and .git directory
2. Apply each replacement, in order, to every matching file
3. Write back only the files whose content changed`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			logger := setupLogging(cmd.ErrOrStderr(), o.Debug)
			cmd.SetContext(logger.WithContext(ctx))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.Rename(cmd.Context(), o, cmd.OutOrStdout())
		},
	}

	addRootFlags(cmd, o)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.Flags().StringVarP(&o.Root, "root", "r", ".", "directory to walk")
	cmd.Flags().StringVarP(&o.ConfigFile, "config", "c", "", "config file path (yaml, json or hcl)")
	cmd.Flags().BoolVarP(&o.DryRun, "dry-run", "n", false, "print a diff for each file instead of writing it")
	cmd.Flags().IntVarP(&o.Jobs, "jobs", "j", 1, "number of files to rewrite at once")
	cmd.Flags().BoolVar(&o.Summary, "summary", false, "print totals after the run")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
}

// setupLogging builds the diagnostics logger. Diagnostics never go to the
// console writer used for per-file lines.
func setupLogging(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
