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

// Valuer is implemented by objects that carry an enum value.
type Valuer interface {
	Value() interface{}
}

// Enum is an instance of an enum model resolved from a name or a value. An instance that matched
// nothing is empty: it has no name, value or symbol.
type Enum struct {
	model  EnumModel
	symbol *EnumSymbol
}

// NewEnum resolves keyOrValue against the enum values of m. keyOrValue is either a raw name or
// value, or a value-bearing object (EnumValueConfig, *EnumSymbol, Enum, a map with a "value" entry
// or a Valuer). Unmatched input yields an empty instance, not an error. The only error is a model
// whose enum values cannot be built.
func NewEnum(m EnumModel, keyOrValue interface{}) (Enum, error) {
	set, err := Enums(m)
	if err != nil {
		return Enum{}, err
	}

	return Enum{
		model:  m,
		symbol: resolveEnumSymbol(set, keyOrValue),
	}, nil
}

func resolveEnumSymbol(set *EnumSet, keyOrValue interface{}) *EnumSymbol {
	if symbol := set.Lookup(keyOrValue); symbol != nil {
		return symbol
	}

	var value interface{}
	switch v := keyOrValue.(type) {
	case *EnumSymbol:
		if v == nil {
			return nil
		}
		value = v.Value
	case EnumValueConfig:
		value = v.Value
	case *EnumValueConfig:
		if v == nil {
			return nil
		}
		value = v.Value
	case map[string]interface{}:
		var exists bool
		if value, exists = v["value"]; !exists {
			return nil
		}
	case Valuer:
		value = v.Value()
	default:
		return nil
	}

	return set.Lookup(value)
}

// Model returns the enum model of the instance.
func (e Enum) Model() EnumModel {
	return e.model
}

// Symbol returns the matched enum value or nil.
func (e Enum) Symbol() *EnumSymbol {
	return e.symbol
}

// Name returns the name of the matched enum value or an empty string.
func (e Enum) Name() string {
	if e.symbol == nil {
		return ""
	}
	return e.symbol.Name
}

// Value returns the internal value of the matched enum value or nil. It also makes Enum a Valuer.
func (e Enum) Value() interface{} {
	if e.symbol == nil {
		return nil
	}
	return e.symbol.Value
}

// IsNull returns true if the instance matched no enum value.
func (e Enum) IsNull() bool {
	return e.symbol == nil
}

// String implements fmt.Stringer.
func (e Enum) String() string {
	if e.model == nil {
		return "Enum(<nil>)"
	}
	if e.symbol == nil {
		return e.model.TypeName() + "(<null>)"
	}
	return e.model.TypeName() + "." + e.symbol.Name
}

var _ Valuer = Enum{}
