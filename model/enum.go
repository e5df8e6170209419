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
	"reflect"
	"sync"

	"github.com/botobag/lattice/internal/logs"
	"github.com/spf13/afero"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"go.uber.org/zap"
)

// EnumModel is implemented by enum models. Embedding ThisIsEnumModel provides both methods; a model
// overrides Values to attach internal values and metadata to the values declared in its SDL.
type EnumModel interface {
	Model

	// Values returns overrides keyed by enum value name.
	Values() EnumValues
}

// EnumValueConfig provides the definition for an enum value.
type EnumValueConfig struct {
	// The internal value of the enum value. Nil means the value name.
	Value interface{}

	// DeprecationReason marks the value as deprecated when non-empty.
	DeprecationReason string

	// Description of the value
	Description string
}

// EnumValues maps enum value name to its config.
type EnumValues map[string]EnumValueConfig

// ValueFor builds an EnumValueConfig.
func ValueFor(value interface{}, deprecationReason string, description string) EnumValueConfig {
	return EnumValueConfig{
		Value:             value,
		DeprecationReason: deprecationReason,
		Description:       description,
	}
}

// EnumSymbol describes one value of an enum model. Lookups through an EnumSet by name and by value
// return the same *EnumSymbol.
type EnumSymbol struct {
	Name              string
	Value             interface{}
	DeprecationReason string
	Description       string
}

// IsDeprecated returns true if the value is deprecated.
func (symbol *EnumSymbol) IsDeprecated() bool {
	return len(symbol.DeprecationReason) > 0
}

// EnumSet is the symbol table of an enum model.
type EnumSet struct {
	name    string
	symbols []*EnumSymbol
	byName  map[string]*EnumSymbol
	byValue map[interface{}]*EnumSymbol
}

// Name of the enum type.
func (set *EnumSet) Name() string {
	return set.name
}

// Symbols returns the enum values in declaration order.
func (set *EnumSet) Symbols() []*EnumSymbol {
	return set.symbols
}

// Len returns the number of enum values.
func (set *EnumSet) Len() int {
	return len(set.symbols)
}

// ByName finds the enum value with the given name.
func (set *EnumSet) ByName(name string) *EnumSymbol {
	return set.byName[name]
}

// ByValue finds the enum value whose internal value equals value. Values of types that cannot be
// map keys never match.
func (set *EnumSet) ByValue(value interface{}) *EnumSymbol {
	if !hashable(value) {
		return nil
	}
	return set.byValue[value]
}

// Lookup resolves keyOrValue as a name first and then as an internal value.
func (set *EnumSet) Lookup(keyOrValue interface{}) *EnumSymbol {
	if name, ok := keyOrValue.(string); ok {
		if symbol := set.byName[name]; symbol != nil {
			return symbol
		}
	}
	return set.ByValue(keyOrValue)
}

func hashable(value interface{}) bool {
	return reflect.ValueOf(value).Comparable()
}

// ErrNotEnumSchema is returned when the SDL of an enum model does not start with an enum definition.
var ErrNotEnumSchema = errors.New("schema does not define an enum")

var enumSets = struct {
	sync.Mutex
	sets map[reflect.Type]*EnumSet
}{
	sets: map[reflect.Type]*EnumSet{},
}

// Enums returns the symbol table of m. The table is built on first access and cached per model
// type for the lifetime of the process. Adjacent schemas are read from the OS filesystem and
// failures are logged to the global zap logger.
func Enums(m EnumModel) (*EnumSet, error) {
	return EnumsFs(afero.NewOsFs(), m, nil)
}

// EnumsFs is like Enums but reads adjacent schemas from fs and logs failures to logger. A nil
// logger means the global zap logger.
//
// The cache is not locked while the table is built, so Values and Schema of an enum model may read
// the tables of other enums. When two goroutines build the same table, the first one stored wins.
func EnumsFs(fs afero.Fs, m EnumModel, logger *zap.Logger) (*EnumSet, error) {
	id := Identity(m)

	enumSets.Lock()
	set, exists := enumSets.sets[id]
	enumSets.Unlock()
	if exists {
		return set, nil
	}

	set, err := buildEnumSet(fs, m)
	if err != nil {
		logger = logs.OrGlobal(logger)
		logger.Error("Failed to build enum values", zap.String("model", m.TypeName()))
		logger.Error(err.Error())
		return nil, err
	}

	enumSets.Lock()
	defer enumSets.Unlock()
	if stored, exists := enumSets.sets[id]; exists {
		return stored, nil
	}
	enumSets.sets[id] = set
	return set, nil
}

// MustEnums is like Enums but panics on error.
func MustEnums(m EnumModel) *EnumSet {
	set, err := Enums(m)
	if err != nil {
		panic(err)
	}
	return set
}

func buildEnumSet(fs afero.Fs, m EnumModel) (*EnumSet, error) {
	sdl, err := ResolveSchema(fs, m)
	if err != nil {
		return nil, err
	}

	doc, err := parser.ParseSchema(&ast.Source{
		Name:  m.TypeName(),
		Input: sdl,
	})
	if err != nil {
		return nil, fmt.Errorf("enum model %s: %w", m.TypeName(), err)
	}

	if len(doc.Definitions) == 0 || doc.Definitions[0].Kind != ast.Enum {
		return nil, fmt.Errorf("enum model %s: %w", m.TypeName(), ErrNotEnumSchema)
	}

	def := doc.Definitions[0]
	overrides := m.Values()

	set := &EnumSet{
		name:    def.Name,
		symbols: make([]*EnumSymbol, 0, len(def.EnumValues)),
		byName:  make(map[string]*EnumSymbol, len(def.EnumValues)),
		byValue: make(map[interface{}]*EnumSymbol, len(def.EnumValues)),
	}

	for _, valueDef := range def.EnumValues {
		symbol := &EnumSymbol{
			Name:              valueDef.Name,
			Value:             valueDef.Name,
			Description:       valueDef.Description,
			DeprecationReason: DeprecationReason(valueDef.Directives),
		}

		if config, exists := overrides[valueDef.Name]; exists {
			if config.Value != nil {
				symbol.Value = config.Value
			}
			if len(config.DeprecationReason) > 0 {
				symbol.DeprecationReason = config.DeprecationReason
			}
			if len(config.Description) > 0 {
				symbol.Description = config.Description
			}
		}

		set.symbols = append(set.symbols, symbol)
		set.byName[symbol.Name] = symbol
		if hashable(symbol.Value) {
			set.byValue[symbol.Value] = symbol
		}
	}

	return set, nil
}

// DefaultDeprecationReason is the reason given by @deprecated without arguments.
const DefaultDeprecationReason = "No longer supported"

// DeprecationReason returns the reason of the @deprecated directive in directives, or an empty
// string when there is none.
func DeprecationReason(directives ast.DirectiveList) string {
	directive := directives.ForName("deprecated")
	if directive == nil {
		return ""
	}
	if arg := directive.Arguments.ForName("reason"); arg != nil && arg.Value != nil {
		return arg.Value.Raw
	}
	return DefaultDeprecationReason
}
