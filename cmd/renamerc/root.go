package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/renamerc/pkg/config"
	"github.com/walteh/renamerc/pkg/run"
	"github.com/walteh/renamerc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	directory   string
	configFile  string
	dryRun      bool
	maxSize     int64
	jobs        int
	ignoreDirs  []string
	ignoreFiles []string
	debug       bool
)

// newRootCmd builds the root command
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "renamerc <new-name>",
		Short: "Replace the PROJECT placeholder across a directory tree",
		Long: `renamerc performs a bulk, idempotent substitution of the fixed placeholder
token "PROJECT" with the given name. It rewrites matching text inside file
contents, renames files whose names contain the token, and renames
directories whose names contain the token, deepest first.

Binary files, oversized files, and ignored paths are skipped. Use --dry-run
to see what would change without touching the filesystem.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context())

			cfg, err := buildConfig(ctx, cmd, args[0])
			if err != nil {
				return err
			}

			runner := run.New(cfg, status.NewConsoleReporter())
			if _, err := runner.Run(ctx); err != nil {
				return errors.Errorf("running rename: %w", err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVarP(&directory, "directory", "d", ".", "root directory to process")
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "config file path (.renamerc, .hcl, .yaml, .json)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be changed without making changes")
	cmd.Flags().Int64Var(&maxSize, "max-size", config.DefaultMaxFileSize, "maximum file size in bytes to process")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "worker pool size for file processing (0 = number of CPUs)")
	cmd.Flags().StringSliceVar(&ignoreDirs, "ignore-dirs", nil, "directory name patterns to ignore")
	cmd.Flags().StringSliceVar(&ignoreFiles, "ignore-files", nil, "file name patterns to ignore")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")

	return cmd
}

// buildConfig assembles the run config: file values first, then flags on top
func buildConfig(ctx context.Context, cmd *cobra.Command, replacement string) (*config.Config, error) {
	cfg := config.Default()

	path := configFile
	if path == "" {
		// A .renamerc next to the working directory is picked up implicitly
		if _, err := os.Stat(".renamerc"); err == nil {
			path = ".renamerc"
		}
	}
	if path != "" {
		loaded, err := config.Load(ctx, path)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
		zerolog.Ctx(ctx).Debug().Str("config", path).Msg("loaded config file")
	}

	cfg.Replacement = replacement
	if cmd.Flags().Changed("directory") || cfg.Root == "" {
		cfg.Root = directory
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun = dryRun
	}
	if cmd.Flags().Changed("max-size") {
		cfg.MaxFileSize = maxSize
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = jobs
	}
	if cmd.Flags().Changed("ignore-dirs") {
		cfg.Ignore.Dirs = ignoreDirs
	}
	if cmd.Flags().Changed("ignore-files") {
		cfg.Ignore.Files = ignoreFiles
	}

	if err := config.Validate(ctx, cfg); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// setupLogging configures zerolog based on flags and returns the run context
func setupLogging(ctx context.Context) context.Context {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	return logger.WithContext(ctx)
}
