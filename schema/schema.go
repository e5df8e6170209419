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

// Package schema assembles a GraphQL schema from lattice models and patches the runtime behavior
// declared by the models onto it.
//
// The schema itself is built and validated by gqlparser. What SDL cannot carry (enum internal
// values, interface type resolvers and scalar coercion functions) is kept by Schema next to the
// parsed type registry. Descriptions and deprecations written by the patcher go straight into the
// type registry so they show up when the schema is printed.
package schema

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/botobag/lattice/internal/util"
	"github.com/botobag/lattice/model"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
)

// Errors reported by the runtime accessors of Schema
var (
	ErrNoSuchType       = errors.New("no such type")
	ErrNoTypeResolver   = errors.New("no type resolver")
	ErrNoScalarCoercer  = errors.New("no scalar coercer")
	ErrInvalidTypeValue = errors.New("resolved type is not a possible type")
)

// Schema is a Target backed by a gqlparser schema.
type Schema struct {
	schema    *ast.Schema
	resolvers map[string]model.TypeResolver
	coercers  map[string]model.ScalarCoercer

	// Internal values of enum values keyed by enum type name and then value name
	enumValues map[string]map[string]interface{}
}

var _ Target = (*Schema)(nil)

// New wraps a schema built by gqlparser. The internal value of every enum value starts out as its
// name.
func New(schema *ast.Schema) *Schema {
	s := &Schema{
		schema:     schema,
		resolvers:  map[string]model.TypeResolver{},
		coercers:   map[string]model.ScalarCoercer{},
		enumValues: map[string]map[string]interface{}{},
	}

	for name, def := range schema.Types {
		if def.Kind != ast.Enum || def.BuiltIn {
			continue
		}
		values := make(map[string]interface{}, len(def.EnumValues))
		for _, value := range def.EnumValues {
			values[value.Name] = value.Name
		}
		s.enumValues[name] = values
	}

	return s
}

// AST returns the underlying gqlparser schema.
func (s *Schema) AST() *ast.Schema {
	return s.schema
}

// String prints the schema as SDL.
func (s *Schema) String() string {
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatSchema(s.schema)
	return buf.String()
}

// SetTypeDescription implements Target.
func (s *Schema) SetTypeDescription(typeName string, description string) bool {
	def := s.schema.Types[typeName]
	if def == nil {
		return false
	}
	def.Description = description
	return true
}

// SetFieldDescription implements Target.
func (s *Schema) SetFieldDescription(typeName string, fieldName string, description string) bool {
	def := s.schema.Types[typeName]
	if def == nil {
		return false
	}

	if def.Kind == ast.Enum {
		value := def.EnumValues.ForName(fieldName)
		if value == nil {
			return false
		}
		value.Description = description
		return true
	}

	field := def.Fields.ForName(fieldName)
	if field == nil {
		return false
	}
	field.Description = description
	return true
}

func (s *Schema) enumValueDefinition(typeName string, name string) *ast.EnumValueDefinition {
	def := s.schema.Types[typeName]
	if def == nil || def.Kind != ast.Enum {
		return nil
	}
	return def.EnumValues.ForName(name)
}

// EnumValue implements Target.
func (s *Schema) EnumValue(typeName string, name string) (EnumValue, bool) {
	def := s.enumValueDefinition(typeName, name)
	if def == nil {
		return EnumValue{}, false
	}

	return EnumValue{
		Name:              def.Name,
		Value:             s.enumValues[typeName][name],
		DeprecationReason: model.DeprecationReason(def.Directives),
		Description:       def.Description,
	}, true
}

// SetEnumValue implements Target. An empty deprecation reason leaves the deprecation state as is.
func (s *Schema) SetEnumValue(typeName string, value EnumValue) bool {
	def := s.enumValueDefinition(typeName, value.Name)
	if def == nil {
		return false
	}

	def.Description = value.Description
	if len(value.DeprecationReason) > 0 {
		def.Directives = s.deprecate(def.Directives, value.DeprecationReason)
	}
	if value.Value != nil {
		s.enumValues[typeName][value.Name] = value.Value
	}
	return true
}

// deprecate returns directives with a @deprecated directive carrying reason.
func (s *Schema) deprecate(directives ast.DirectiveList, reason string) ast.DirectiveList {
	arg := &ast.Argument{
		Name: "reason",
		Value: &ast.Value{
			Kind: ast.StringValue,
			Raw:  reason,
		},
	}

	if directive := directives.ForName("deprecated"); directive != nil {
		directive.Arguments = ast.ArgumentList{arg}
		return directives
	}

	return append(directives, &ast.Directive{
		Name:       "deprecated",
		Arguments:  ast.ArgumentList{arg},
		Definition: s.schema.Directives["deprecated"],
		Location:   ast.LocationEnumValue,
	})
}

// SetTypeResolver implements Target.
func (s *Schema) SetTypeResolver(typeName string, resolver model.TypeResolver) bool {
	def := s.schema.Types[typeName]
	if def == nil || !def.IsAbstractType() {
		return false
	}
	s.resolvers[typeName] = resolver
	return true
}

// SetScalarCoercer implements Target.
func (s *Schema) SetScalarCoercer(typeName string, coercer model.ScalarCoercer) bool {
	def := s.schema.Types[typeName]
	if def == nil || def.Kind != ast.Scalar {
		return false
	}
	s.coercers[typeName] = coercer
	return true
}

// RootTypeName implements Target.
func (s *Schema) RootTypeName(op Operation) string {
	var def *ast.Definition
	switch op {
	case Query:
		def = s.schema.Query
	case Mutation:
		def = s.schema.Mutation
	case Subscription:
		def = s.schema.Subscription
	}
	if def == nil {
		return ""
	}
	return def.Name
}

// ResolveType determines the object type of value for the interface or union typeName with the
// resolver attached to it. The result must be one of the possible types of typeName.
func (s *Schema) ResolveType(ctx context.Context, typeName string, value interface{}) (*ast.Definition, error) {
	def := s.schema.Types[typeName]
	if def == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchType, typeName)
	}

	resolver := s.resolvers[typeName]
	if resolver == nil {
		return nil, fmt.Errorf("%w for %s", ErrNoTypeResolver, typeName)
	}

	name, err := resolver.ResolveType(ctx, value)
	if err != nil {
		return nil, err
	}

	possibleTypes := s.schema.GetPossibleTypes(def)
	names := make([]string, 0, len(possibleTypes))
	for _, possibleType := range possibleTypes {
		if possibleType.Name == name {
			return possibleType, nil
		}
		names = append(names, possibleType.Name)
	}

	return nil, fmt.Errorf(`%w: %s resolved to "%s".%s`, ErrInvalidTypeValue, typeName, name,
		util.DidYouMean(name, names))
}

func (s *Schema) coercer(typeName string) (model.ScalarCoercer, error) {
	coercer := s.coercers[typeName]
	if coercer == nil {
		return nil, fmt.Errorf("%w for %s", ErrNoScalarCoercer, typeName)
	}
	return coercer, nil
}

// Serialize converts value into a result value with the functions attached to scalar typeName.
func (s *Schema) Serialize(typeName string, value interface{}) (interface{}, error) {
	coercer, err := s.coercer(typeName)
	if err != nil {
		return nil, err
	}
	return coercer.Serialize(value)
}

// ParseValue converts an input value from variables with the functions attached to scalar
// typeName.
func (s *Schema) ParseValue(typeName string, value interface{}) (interface{}, error) {
	coercer, err := s.coercer(typeName)
	if err != nil {
		return nil, err
	}
	return coercer.ParseValue(value)
}

// ParseLiteral converts an input literal with the functions attached to scalar typeName.
func (s *Schema) ParseLiteral(typeName string, value *ast.Value, variables map[string]interface{}) (interface{}, error) {
	coercer, err := s.coercer(typeName)
	if err != nil {
		return nil, err
	}
	return coercer.ParseLiteral(value, variables)
}
