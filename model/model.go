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

// Package model defines the Go side of a lattice model: a Go type that contributes a GraphQL type
// definition (as an SDL fragment) to a schema, together with the runtime hooks the wrapped GraphQL
// library cannot express in SDL (enum values, type resolution, scalar coercion and documentation).
//
// A model is declared by embedding one of the marker types and implementing TypeName and Schema:
//
//	type Size struct {
//		model.ThisIsEnumModel
//	}
//
//	func (Size) TypeName() string { return "Size" }
//	func (Size) Schema() string   { return "enum Size { SMALL, LARGE }" }
//	func (Size) Values() model.EnumValues {
//		return model.EnumValues{"LARGE": model.ValueFor("BIG", "", "")}
//	}
package model

import (
	"reflect"
)

// Kind identifies the kind of GraphQL type a model declares.
type Kind uint

// Enumeration of Kind
const (
	KindObject Kind = iota
	KindEnum
	KindInterface
	KindScalar
	KindInputObject
	KindUnion
)

var kindNames = [...]string{
	KindObject:      "Object",
	KindEnum:        "Enum",
	KindInterface:   "Interface",
	KindScalar:      "Scalar",
	KindInputObject: "InputObject",
	KindUnion:       "Union",
}

// String implements fmt.Stringer.
func (kind Kind) String() string {
	if int(kind) < len(kindNames) {
		return kindNames[kind]
	}
	return "Unknown"
}

// Model is implemented by every type that contributes a definition to a lattice schema.
type Model interface {
	// TypeName returns the name of the GraphQL type declared by the model.
	TypeName() string

	// Schema returns the SDL fragment of the model or AdjacentFile to read it from the .graphql file
	// next to the model's source file.
	Schema() string

	// Kind is provided by embedding one of the ThisIsXxxModel markers.
	Kind() Kind
}

// ThisIsObjectModel is used by object models to set their kind.
type ThisIsObjectModel struct{}

// Kind implements Model.
func (ThisIsObjectModel) Kind() Kind {
	return KindObject
}

// ThisIsEnumModel is used by enum models to set their kind. It also gives the model an empty set of
// value overrides.
type ThisIsEnumModel struct{}

// Kind implements Model.
func (ThisIsEnumModel) Kind() Kind {
	return KindEnum
}

// Values implements EnumModel. It declares no overrides.
func (ThisIsEnumModel) Values() EnumValues {
	return nil
}

// ThisIsInterfaceModel is used by interface models to set their kind.
type ThisIsInterfaceModel struct{}

// Kind implements Model.
func (ThisIsInterfaceModel) Kind() Kind {
	return KindInterface
}

// ThisIsScalarModel is used by scalar models to set their kind.
type ThisIsScalarModel struct{}

// Kind implements Model.
func (ThisIsScalarModel) Kind() Kind {
	return KindScalar
}

// ThisIsInputObjectModel is used by input object models to set their kind.
type ThisIsInputObjectModel struct{}

// Kind implements Model.
func (ThisIsInputObjectModel) Kind() Kind {
	return KindInputObject
}

// ThisIsUnionModel is used by union models to set their kind.
type ThisIsUnionModel struct{}

// Kind implements Model.
func (ThisIsUnionModel) Kind() Kind {
	return KindUnion
}

// Identity returns the Go type that identifies m. A model and a pointer to it share the same
// identity.
func Identity(m Model) reflect.Type {
	t := reflect.TypeOf(m)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// IsModel returns true if value implements Model.
func IsModel(value interface{}) bool {
	_, ok := value.(Model)
	return ok
}

// IsEnum returns true if m declares an enum.
func IsEnum(m Model) bool {
	return m.Kind() == KindEnum
}

// IsInterface returns true if m declares an interface.
func IsInterface(m Model) bool {
	return m.Kind() == KindInterface
}

// IsScalar returns true if m declares a scalar.
func IsScalar(m Model) bool {
	return m.Kind() == KindScalar
}

// IsAbstract returns true if m declares an interface or a union.
func IsAbstract(m Model) bool {
	return m.Kind() == KindInterface || m.Kind() == KindUnion
}
