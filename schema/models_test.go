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

package schema_test

import (
	"context"
	"errors"
	"time"

	"github.com/botobag/lattice/model"
	"github.com/vektah/gqlparser/v2/ast"
)

type QueryRoot struct {
	model.ThisIsObjectModel
}

func (QueryRoot) TypeName() string { return "Query" }
func (QueryRoot) Schema() string {
	return `
		type Query {
			fruit(id: ID!): Fruit
			today: Date
		}
	`
}

func (QueryRoot) APIDocs() model.Docs {
	return model.Docs{
		Query: "Entry points for reading",
		Queries: map[string]string{
			"fruit":   "Finds a fruit by id",
			"missing": "Not a field",
		},
	}
}

func (QueryRoot) RootResolvers(ctx context.Context, req *model.RequestData) model.RootResolvers {
	return model.RootResolvers{
		Query: map[string]model.ResolverFunc{
			"fruit": func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				return Apple{ID: args["id"].(string)}, nil
			},
			"today": func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				return "query:today", nil
			},
		},
	}
}

type Fruit struct {
	model.ThisIsInterfaceModel
}

func (Fruit) TypeName() string { return "Fruit" }
func (Fruit) Schema() string   { return "interface Fruit { id: ID! }" }

func (Fruit) ResolveType(ctx context.Context, value interface{}) (string, error) {
	switch value.(type) {
	case Apple:
		return "Apple", nil
	case Banana:
		return "Banana", nil
	case string:
		return value.(string), nil
	}
	return "", errors.New("unknown fruit")
}

type Apple struct {
	model.ThisIsObjectModel
	ID string
}

func (Apple) TypeName() string { return "Apple" }
func (Apple) Schema() string {
	return `
		type Apple implements Fruit {
			id: ID!
			color: Color
		}
	`
}

func (Apple) APIDocs() model.Docs {
	return model.Docs{
		Class: "A crunchy fruit",
		Fields: map[string]string{
			"color": "Color of the skin",
			"taste": "Not a field",
		},
		Mutation: "Not applied without a mutation type",
	}
}

type Banana struct {
	model.ThisIsObjectModel
}

func (Banana) TypeName() string { return "Banana" }
func (Banana) Schema() string   { return "type Banana implements Fruit { id: ID! }" }

type Color struct {
	model.ThisIsEnumModel
}

func (Color) TypeName() string { return "Color" }
func (Color) Schema() string {
	return `
		enum Color {
			"Red color"
			RED
			GREEN
			YELLOW
		}
	`
}

func (Color) Values() model.EnumValues {
	return model.EnumValues{
		"RED":    model.ValueFor(1, "", ""),
		"GREEN":  model.ValueFor(nil, "Not ripe", "Green color"),
		"PURPLE": model.ValueFor(4, "", "Not a value"),
	}
}

func (Color) APIDocs() model.Docs {
	return model.Docs{
		Fields: map[string]string{
			"YELLOW": "Yellow color",
		},
	}
}

type Date struct {
	model.ThisIsScalarModel
}

func (Date) TypeName() string { return "Date" }
func (Date) Schema() string   { return "scalar Date" }

func (Date) Serialize(value interface{}) (interface{}, error) {
	if t, ok := value.(time.Time); ok {
		return t.Format("2006-01-02"), nil
	}
	return nil, errors.New("not a date")
}

func (Date) ParseValue(value interface{}) (interface{}, error) {
	if s, ok := value.(string); ok {
		return time.Parse("2006-01-02", s)
	}
	return nil, errors.New("not a date")
}

func (d Date) ParseLiteral(value *ast.Value, variables map[string]interface{}) (interface{}, error) {
	if value.Kind != ast.StringValue {
		return nil, errors.New("not a date")
	}
	return d.ParseValue(value.Raw)
}

type Broken struct {
	model.ThisIsScalarModel
}

func (Broken) TypeName() string { return "Broken" }
func (Broken) Schema() string   { return "scalar Broken" }

func (Broken) Serialize(value interface{}) (interface{}, error) {
	return value, nil
}

type MutationRoot struct {
	model.ThisIsObjectModel
}

func (MutationRoot) TypeName() string { return "Mutation" }
func (MutationRoot) Schema() string   { return "type Mutation { ripen(id: ID!): Fruit }" }

func (MutationRoot) RootResolvers(ctx context.Context, req *model.RequestData) model.RootResolvers {
	return model.RootResolvers{
		Query: map[string]model.ResolverFunc{
			"today": func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				return "mutation:today", nil
			},
		},
		Mutation: map[string]model.ResolverFunc{
			"ripen": func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				return req.OperationName, nil
			},
		},
	}
}

func allModels() []model.Model {
	return []model.Model{
		Apple{},
		Banana{},
		Broken{},
		Color{},
		Date{},
		Fruit{},
		model.JSON,
		QueryRoot{},
	}
}

// Produce is a union whose resolver and docs are plain functions.
type Produce struct {
	model.ThisIsUnionModel
	model.TypeResolverFunc
	model.DocumentedFunc
}

func (Produce) TypeName() string { return "Produce" }
func (Produce) Schema() string   { return "union Produce = Apple | Banana" }

func newProduce() Produce {
	return Produce{
		TypeResolverFunc: Fruit{}.ResolveType,
		DocumentedFunc: func() model.Docs {
			return model.Docs{Class: "Anything grown"}
		},
	}
}

// Subscriptions provides root resolvers through a function.
type Subscriptions struct {
	model.ThisIsObjectModel
	model.RootProviderFunc
}

func (Subscriptions) TypeName() string { return "Subscription" }
func (Subscriptions) Schema() string   { return "type Subscription { ripened: Fruit }" }
