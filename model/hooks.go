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
	"context"
	"net/http"

	"github.com/vektah/gqlparser/v2/ast"
)

// TypeResolver is implemented by interface (and union) models to determine the concrete object
// type of a value.
type TypeResolver interface {
	// ResolveType returns the name of the object type of value.
	ResolveType(ctx context.Context, value interface{}) (string, error)
}

// TypeResolverFunc is an adapter to allow the use of ordinary functions as TypeResolver.
type TypeResolverFunc func(ctx context.Context, value interface{}) (string, error)

// ResolveType calls f(ctx, value).
func (f TypeResolverFunc) ResolveType(ctx context.Context, value interface{}) (string, error) {
	return f(ctx, value)
}

// Serializer converts an internal value into a result value.
type Serializer interface {
	Serialize(value interface{}) (interface{}, error)
}

// ValueParser converts an input value from variables into an internal value.
type ValueParser interface {
	ParseValue(value interface{}) (interface{}, error)
}

// LiteralParser converts an input literal from a document into an internal value.
type LiteralParser interface {
	ParseLiteral(value *ast.Value, variables map[string]interface{}) (interface{}, error)
}

// ScalarCoercer is the complete set of functions a scalar model must provide.
type ScalarCoercer interface {
	Serializer
	ValueParser
	LiteralParser
}

// AsScalarCoercer returns m as a ScalarCoercer if it implements all three functions.
func AsScalarCoercer(m Model) (ScalarCoercer, bool) {
	coercer, ok := m.(ScalarCoercer)
	return coercer, ok
}

// RequestData carries what a root resolver factory may need from the current request.
type RequestData struct {
	Request       *http.Request
	Variables     map[string]interface{}
	OperationName string
}

// ResolverFunc resolves a root field.
type ResolverFunc func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// RootResolvers are the root fields a model contributes, keyed by field name.
type RootResolvers struct {
	Query        map[string]ResolverFunc
	Mutation     map[string]ResolverFunc
	Subscription map[string]ResolverFunc
}

// RootProvider is implemented by models that contribute root fields.
type RootProvider interface {
	RootResolvers(ctx context.Context, req *RequestData) RootResolvers
}

// RootProviderFunc is an adapter to allow the use of ordinary functions as RootProvider.
type RootProviderFunc func(ctx context.Context, req *RequestData) RootResolvers

// RootResolvers calls f(ctx, req).
func (f RootProviderFunc) RootResolvers(ctx context.Context, req *RequestData) RootResolvers {
	return f(ctx, req)
}
