/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package cli implements the lattice command line. Applications register their models with a
// modules.Registry and embed the command returned by NewRootCommand in their own main package.
package cli

import (
	"os"

	"github.com/botobag/lattice/internal/logs"
	"github.com/botobag/lattice/modules"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version of the lattice command (set via ldflags at build time)
var Version = "0.1.0-dev"

// Config configures the root command.
type Config struct {
	// (Optional) Registry resolving discovered files to their exports; defaults to
	// modules.DefaultRegistry
	Registry *modules.Registry

	// (Optional) Filesystem searched for models and preferences; defaults to the OS filesystem
	Fs afero.Fs
}

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	Config
	logLevel  string
	logFormat string
}

// logger builds the logger selected by --log-level and --log-format. Entries go to the command's
// error stream.
func (o *rootOptions) logger(cmd *cobra.Command) *zap.Logger {
	return logs.New(logs.Config{
		Level:  o.logLevel,
		Format: o.logFormat,
		Output: cmd.ErrOrStderr(),
	})
}

// runE adapts fn to cobra.Command.RunE. The command's logger is installed as the global zap logger
// while fn runs.
func (o *rootOptions) runE(
	fn func(cmd *cobra.Command, args []string, logger *zap.Logger) error,
) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		logger := o.logger(cmd)
		defer logger.Sync()
		defer zap.ReplaceGlobals(logger)()

		return fn(cmd, args, logger)
	}
}

// NewRootCommand returns the lattice command resolving modules with registry.
func NewRootCommand(registry *modules.Registry) *cobra.Command {
	return New(Config{
		Registry: registry,
	})
}

// New returns the lattice command configured by config.
func New(config Config) *cobra.Command {
	if config.Registry == nil {
		config.Registry = modules.DefaultRegistry
	}
	if config.Fs == nil {
		config.Fs = afero.NewOsFs()
	}

	options := &rootOptions{Config: config}

	cmd := &cobra.Command{
		Use:   "lattice",
		Short: "Discover GraphQL models and build their schema",
		Long: `Lattice finds the GraphQL models registered for the files of a directory tree,
merges their SDL into one schema and patches the models' resolvers, enum values,
scalar coercions and documentation onto it.

Preferences are read from the nearest lattice.yaml (or .yml, .json, .toml) above
the searched directory and can be overridden with LATTICE_* environment variables.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&options.logLevel, "log-level", "warn",
		"Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&options.logFormat, "log-format", "text",
		"Log format (json, text)")

	cmd.AddCommand(
		newDiscoverCommand(options),
		newSDLCommand(options),
		newSchemaCommand(options),
	)

	return cmd
}

// Execute runs the lattice command with the models of registry and exits with status 1 on failure.
func Execute(registry *modules.Registry) {
	cmd := NewRootCommand(registry)
	if err := cmd.Execute(); err != nil {
		cmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
