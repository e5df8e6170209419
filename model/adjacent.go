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

package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// AdjacentFile is returned from Model.Schema to read the SDL from a file next to the model's
// source. The file has the same stem as the source and one of AdjacentExtensions.
const AdjacentFile = "\x00lattice:adjacent-file"

// AdjacentExtensions lists the extensions tried, in order, when reading an adjacent schema.
var AdjacentExtensions = []string{".graphql", ".gql"}

// ErrAdjacentSchemaNotFound is returned when no adjacent schema file exists for a model.
var ErrAdjacentSchemaNotFound = errors.New("adjacent schema file not found")

// ModulePather is implemented by models that know the path of the source file declaring them.
type ModulePather interface {
	ModulePath() string
}

// AdjacentSchema can be embedded in a model to read its SDL from the file next to Path.
//
//	type User struct {
//		model.ThisIsObjectModel
//		model.AdjacentSchema
//	}
//
//	var user = User{AdjacentSchema: model.AdjacentSchema{Path: modules.Here()}}
type AdjacentSchema struct {
	// Path of the source file that declares the model
	Path string
}

// Schema implements Model.
func (s AdjacentSchema) Schema() string {
	return AdjacentFile
}

// ModulePath implements ModulePather.
func (s AdjacentSchema) ModulePath() string {
	return s.Path
}

// ResolveSchema returns the SDL of m, reading it from fs when m defers to an adjacent file.
func ResolveSchema(fs afero.Fs, m Model) (string, error) {
	sdl := m.Schema()
	if sdl != AdjacentFile {
		return sdl, nil
	}

	pather, ok := m.(ModulePather)
	if !ok || len(pather.ModulePath()) == 0 {
		return "", fmt.Errorf("model %s defers to an adjacent schema but has no module path", m.TypeName())
	}

	path := pather.ModulePath()
	stem := strings.TrimSuffix(path, filepath.Ext(path))
	for _, ext := range AdjacentExtensions {
		data, err := afero.ReadFile(fs, stem+ext)
		if err == nil {
			return string(data), nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}

	return "", fmt.Errorf("model %s: %w (%s.{graphql,gql})", m.TypeName(), ErrAdjacentSchemaNotFound, stem)
}
