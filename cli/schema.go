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

	"github.com/botobag/lattice/schema"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSDLCommand(root *rootOptions) *cobra.Command {
	flags := &discoveryFlags{}

	cmd := &cobra.Command{
		Use:   "sdl DIR",
		Short: "Print the merged SDL of the models found under a directory",
		Long: `SDL discovers the models under DIR and prints the schema document assembled from
their SDL fragments (including adjacent .graphql files), without validating it.

Example:
  lattice sdl ./models > schema.graphql`,
		Args: cobra.ExactArgs(1),
		RunE: root.runE(func(cmd *cobra.Command, args []string, logger *zap.Logger) error {
			_, classes, err := flags.discover(cmd, root, logger, args[0])
			if err != nil {
				return err
			}

			doc, err := schema.GenerateSDL(root.Fs, classes, logger)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), doc.String())
			return err
		}),
	}

	flags.register(cmd)
	return cmd
}

func newSchemaCommand(root *rootOptions) *cobra.Command {
	flags := &discoveryFlags{}

	cmd := &cobra.Command{
		Use:   "schema DIR",
		Short: "Build and print the schema of the models found under a directory",
		Long: `Schema discovers the models under DIR, builds and validates a GraphQL schema from
their SDL and patches enum values, descriptions and deprecations onto it before
printing the result.

Example:
  lattice schema ./models --fail-on-error`,
		Args: cobra.ExactArgs(1),
		RunE: root.runE(func(cmd *cobra.Command, args []string, logger *zap.Logger) error {
			_, classes, err := flags.discover(cmd, root, logger, args[0])
			if err != nil {
				return err
			}

			s, err := schema.Build(schema.Config{
				Models: classes,
				Fs:     root.Fs,
				Logger: logger,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), s.String())
			return err
		}),
	}

	flags.register(cmd)
	return cmd
}
