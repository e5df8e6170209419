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

package cli

import (
	"fmt"
	"io"

	"github.com/botobag/lattice/concurrent/future"
	"github.com/botobag/lattice/model"
	"github.com/botobag/lattice/modules"
	"github.com/botobag/lattice/prefs"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// PluginExtension is the extension of modules loaded by --plugins.
const PluginExtension = ".so"

// discoveryFlags are the flags of every command that runs a discovery pass.
type discoveryFlags struct {
	extensions       []string
	plugins          bool
	failOnError      bool
	omitLatticeTypes bool
	sync             bool
}

func (flags *discoveryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil,
		"File extensions to visit (overrides ModuleParser.extensions)")
	cmd.Flags().BoolVar(&flags.plugins, "plugins", false,
		"Also load "+PluginExtension+" files built with -buildmode=plugin")
	cmd.Flags().BoolVar(&flags.failOnError, "fail-on-error", false,
		"Fail when any file could not be loaded")
	cmd.Flags().BoolVar(&flags.omitLatticeTypes, "no-lattice-types", false,
		"Do not add lattice's built-in types (JSON)")
	cmd.Flags().BoolVar(&flags.sync, "sync", false,
		"Walk and load on the calling goroutine without the future scheduler")
}

// discover runs a discovery pass over dir.
func (flags *discoveryFlags) discover(
	cmd *cobra.Command,
	options *rootOptions,
	logger *zap.Logger,
	dir string) (*modules.Parser, []model.Model, error) {

	config := modules.Config{
		Directory:        dir,
		Loader:           options.Registry,
		Fs:               options.Fs,
		Logger:           logger,
		Extensions:       flags.extensions,
		FailOnError:      flags.failOnError,
		OmitLatticeTypes: flags.omitLatticeTypes,
		Output:           cmd.ErrOrStderr(),
	}

	if flags.plugins {
		preferences, err := prefs.LoadFs(options.Fs, dir)
		if err != nil {
			return nil, nil, err
		}

		exts := config.Extensions
		if len(exts) == 0 {
			exts = preferences.ModuleParser.Extensions
		}
		if len(exts) == 0 {
			exts = modules.DefaultExtensions
		}

		config.Prefs = preferences
		config.Extensions = append(append([]string{}, exts...), PluginExtension)
		config.Loader = modules.ExtensionLoader{
			PluginExtension: modules.PluginLoader{},
			"":              options.Registry,
		}
	}

	parser := modules.NewParser(config)

	if flags.sync {
		classes, err := parser.ParseSync()
		return parser, classes, err
	}

	result, err := future.Await(cmd.Context(), parser.Parse())
	if err != nil {
		return parser, nil, err
	}
	return parser, result.([]model.Model), nil
}

type discoverOptions struct {
	discoveryFlags
	json bool
}

// discoverReport is the --json output of discover.
type discoverReport struct {
	Directory string         `json:"directory"`
	Models    []modelEntry   `json:"models"`
	Skipped   []skippedEntry `json:"skipped"`
}

type modelEntry struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	Type string `json:"type"`
}

type skippedEntry struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

func newDiscoverCommand(root *rootOptions) *cobra.Command {
	options := &discoverOptions{}

	cmd := &cobra.Command{
		Use:   "discover DIR",
		Short: "List the models found under a directory",
		Long: `Discover walks DIR, loads every matching file through the module registry and
lists the models it exports, sorted by GraphQL type name. Files that fail to load
are skipped and reported on stderr.

Example:
  lattice discover ./models --json`,
		Args: cobra.ExactArgs(1),
		RunE: root.runE(func(cmd *cobra.Command, args []string, logger *zap.Logger) error {
			parser, classes, err := options.discover(cmd, root, logger, args[0])
			if err != nil {
				return err
			}

			if options.json {
				return writeDiscoverJSON(cmd.OutOrStdout(), parser, classes)
			}

			writeDiscoverText(cmd.OutOrStdout(), parser, classes)
			if parser.Skipped().Len() > 0 {
				parser.PrintSkipped(cmd.ErrOrStderr())
			}
			return nil
		}),
	}

	options.register(cmd)
	cmd.Flags().BoolVar(&options.json, "json", false, "Print the result as JSON")

	return cmd
}

func writeDiscoverText(w io.Writer, parser *modules.Parser, classes []model.Model) {
	width := 0
	for _, m := range classes {
		if n := len(m.TypeName()); n > width {
			width = n
		}
	}

	fmt.Fprintf(w, "Discovered %d model(s) in %s:\n", len(classes), parser.Directory())
	for _, m := range classes {
		fmt.Fprintf(w, "  %-*s  %-12s %s\n", width, m.TypeName(), m.Kind(), model.Identity(m))
	}
}

func writeDiscoverJSON(w io.Writer, parser *modules.Parser, classes []model.Model) error {
	report := discoverReport{
		Directory: parser.Directory(),
		Models:    make([]modelEntry, 0, len(classes)),
		Skipped:   []skippedEntry{},
	}

	for _, m := range classes {
		report.Models = append(report.Models, modelEntry{
			Name: m.TypeName(),
			Kind: m.Kind().String(),
			Type: model.Identity(m).String(),
		})
	}

	skipped := parser.Skipped()
	for _, path := range skipped.Paths() {
		report.Skipped = append(report.Skipped, skippedEntry{
			Path:  path,
			Error: skipped.Get(path).Error(),
		})
	}

	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
