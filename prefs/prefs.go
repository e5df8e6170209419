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

// Package prefs reads project level lattice preferences.
//
// Preferences live in a file named lattice.yaml (or .yml, .json, .toml) in the project directory
// or any of its parents; the nearest one wins. Every key can be overridden from the environment
// with the LATTICE_ prefix, e.g. LATTICE_MODULEPARSER_FAILONERROR=true.
//
//	ModuleParser:
//	  extensions: [.go]
//	  failOnError: true
package prefs

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Keys recognized in the preferences file.
const (
	ExtensionsKey  = "ModuleParser.extensions"
	FailOnErrorKey = "ModuleParser.failOnError"
)

// EnvPrefix is the prefix of environment variables that override preferences.
const EnvPrefix = "LATTICE"

// ConfigNames lists the file names searched for in each directory, in order.
var ConfigNames = []string{
	"lattice.yaml",
	"lattice.yml",
	"lattice.json",
	"lattice.toml",
	".lattice.yaml",
}

// ModuleParserPrefs configures module discovery.
type ModuleParserPrefs struct {
	// Extensions overrides the file extensions visited by the directory walk. Nil means the
	// walker's defaults.
	Extensions []string

	// FailOnError fails a discovery pass when any file could not be loaded.
	FailOnError bool
}

// Prefs holds all lattice preferences.
type Prefs struct {
	// File is the preferences file the values were read from. Empty when no file was found.
	File string

	ModuleParser ModuleParserPrefs
}

// Default returns preferences with every value unset.
func Default() *Prefs {
	return &Prefs{}
}

// Load finds the nearest preferences file from dir upwards on the OS filesystem and reads it.
func Load(dir string) (*Prefs, error) {
	return LoadFs(afero.NewOsFs(), dir)
}

// LoadFs is like Load but searches fs. Missing preferences are not an error; the environment is
// still consulted.
func LoadFs(fs afero.Fs, dir string) (*Prefs, error) {
	v := newViper(fs)

	path, err := Find(fs, dir)
	if err != nil {
		return nil, err
	}

	if len(path) > 0 {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read lattice preferences %s: %w", path, err)
		}
	}

	p := FromViper(v)
	p.File = path
	return p, nil
}

// Find returns the path of the nearest preferences file in dir or its parents, or an empty string
// if there is none.
func Find(fs afero.Fs, dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		for _, name := range ConfigNames {
			path := filepath.Join(dir, name)
			if info, err := fs.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// FromViper reads preferences from an already configured viper instance.
func FromViper(v *viper.Viper) *Prefs {
	p := Default()
	p.ModuleParser.FailOnError = v.GetBool(FailOnErrorKey)
	if v.IsSet(ExtensionsKey) {
		p.ModuleParser.Extensions = NormalizeExtensions(v.Get(ExtensionsKey))
	}
	return p
}

// NormalizeExtensions converts a configured extension value into a list. A single value becomes a
// one-element list.
func NormalizeExtensions(value interface{}) []string {
	switch value := value.(type) {
	case nil:
		return nil
	case string:
		// Environment values may carry several extensions separated by spaces or commas.
		return strings.FieldsFunc(value, func(r rune) bool {
			return r == ',' || r == ' '
		})
	case []string, []interface{}:
		return cast.ToStringSlice(value)
	default:
		return []string{cast.ToString(value)}
	}
}

func newViper(fs afero.Fs) *viper.Viper {
	v := viper.New()
	v.SetFs(fs)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}
