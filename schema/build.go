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

package schema

import (
	"fmt"

	"github.com/botobag/lattice/model"
	"github.com/spf13/afero"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"go.uber.org/zap"
)

// SourceName names the generated schema in errors reported by gqlparser.
const SourceName = "lattice"

// GenerateSDL builds the schema document of models. Models deferring to an adjacent schema file
// have it read from fs.
func GenerateSDL(fs afero.Fs, models []model.Model, logger *zap.Logger) (*Document, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	doc := NewDocument()
	for _, m := range models {
		sdl, err := model.ResolveSchema(fs, m)
		if err != nil {
			return nil, err
		}

		if m.Schema() == model.AdjacentFile {
			logger.Debug("Read schema", zap.String("model", m.TypeName()), zap.String("sdl", sdl))
		}

		if err := doc.Append(m.TypeName(), sdl); err != nil {
			return nil, err
		}
	}

	logger.Debug("Generated schema", zap.String("sdl", doc.String()))
	return doc, nil
}

// Config configures Build.
type Config struct {
	// (Required) Models to build the schema from, usually discovered by a modules.Parser
	Models []model.Model

	// (Optional) Filesystem for adjacent schema files; defaults to the OS filesystem.
	Fs afero.Fs

	// (Optional) Logger; defaults to a no-op logger.
	Logger *zap.Logger
}

// Build generates the schema document of the models, builds and validates a schema from it and
// patches the models onto the result.
func Build(config Config) (*Schema, error) {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	doc, err := GenerateSDL(config.Fs, config.Models, logger)
	if err != nil {
		return nil, err
	}

	built, err := gqlparser.LoadSchema(&ast.Source{
		Name:  SourceName,
		Input: doc.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build schema: %w", err)
	}

	s := New(built)
	InjectAll(s, config.Models, logger)
	return s, nil
}
