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
	"github.com/botobag/lattice/model"
)

// Operation identifies a root operation type.
type Operation string

// Enumeration of Operation
const (
	Query        Operation = "Query"
	Mutation     Operation = "Mutation"
	Subscription Operation = "Subscription"
)

// Operations lists every Operation in the order their root types are patched.
var Operations = []Operation{Query, Mutation, Subscription}

// EnumValue is the record a schema keeps for an enum value.
type EnumValue struct {
	Name              string
	Value             interface{}
	DeprecationReason string
	Description       string
}

// Target is a schema that lattice can patch. The patching passes only go through this interface.
// Every setter reports whether the named type (and member) exists; a missing target is not an
// error.
type Target interface {
	// SetTypeDescription sets the description of a type.
	SetTypeDescription(typeName string, description string) bool

	// SetFieldDescription sets the description of a field of an object, interface or input object,
	// or of a value of an enum.
	SetFieldDescription(typeName string, fieldName string, description string) bool

	// EnumValue returns the record of an enum value.
	EnumValue(typeName string, name string) (EnumValue, bool)

	// SetEnumValue replaces the record of the enum value with the same name.
	SetEnumValue(typeName string, value EnumValue) bool

	// SetTypeResolver attaches a type resolver to an interface or union.
	SetTypeResolver(typeName string, resolver model.TypeResolver) bool

	// SetScalarCoercer attaches serialize and parse functions to a scalar.
	SetScalarCoercer(typeName string, coercer model.ScalarCoercer) bool

	// RootTypeName returns the name of the root type of op or an empty string if the schema has none.
	RootTypeName(op Operation) string
}
