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
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/vektah/gqlparser/v2/ast"
)

// JSONScalar is the built-in scalar for arbitrary JSON values. It is appended to the discovered
// models unless discovery is told otherwise.
type JSONScalar struct {
	ThisIsScalarModel
}

// JSON is the built-in JSON scalar model.
var JSON = JSONScalar{}

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	_ Model         = JSONScalar{}
	_ ScalarCoercer = JSONScalar{}
	_ Documented    = JSONScalar{}
)

// TypeName implements Model.
func (JSONScalar) TypeName() string {
	return "JSON"
}

// Schema implements Model.
func (JSONScalar) Schema() string {
	return "scalar JSON"
}

// APIDocs implements Documented.
func (JSONScalar) APIDocs() Docs {
	return Docs{
		Class: JoinLines(`
			The JSON scalar type represents arbitrary JSON values: objects, lists, strings, numbers,
			booleans and null.
		`),
	}
}

// Serialize implements Serializer. Raw JSON is decoded; any other value is returned as is.
func (JSONScalar) Serialize(value interface{}) (interface{}, error) {
	switch value := value.(type) {
	case jsoniter.RawMessage:
		return decodeJSON(value)
	case *jsoniter.RawMessage:
		if value == nil {
			return nil, nil
		}
		return decodeJSON(*value)
	}
	return value, nil
}

// ParseValue implements ValueParser. A string holding a JSON document is decoded; other values are
// returned as is.
func (JSONScalar) ParseValue(value interface{}) (interface{}, error) {
	if s, ok := value.(string); ok {
		trimmed := strings.TrimSpace(s)
		if jsonAPI.Valid([]byte(trimmed)) {
			return decodeJSON([]byte(trimmed))
		}
	}
	return value, nil
}

// ParseLiteral implements LiteralParser.
func (JSONScalar) ParseLiteral(value *ast.Value, variables map[string]interface{}) (interface{}, error) {
	return value.Value(variables)
}

func decodeJSON(data []byte) (interface{}, error) {
	var result interface{}
	if err := jsonAPI.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return result, nil
}
