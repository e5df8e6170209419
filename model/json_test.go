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

package model_test

import (
	"github.com/botobag/lattice/model"
	jsoniter "github.com/json-iterator/go"
	"github.com/vektah/gqlparser/v2/ast"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("JSON", func() {
	It("declares a scalar", func() {
		Expect(model.JSON.TypeName()).Should(Equal("JSON"))
		Expect(model.JSON.Schema()).Should(Equal("scalar JSON"))
		Expect(model.JSON.APIDocs().Class).Should(HavePrefix("The JSON scalar type represents arbitrary JSON values"))
	})

	It("serializes values as is", func() {
		value := map[string]interface{}{"a": 1}
		Expect(model.JSON.Serialize(value)).Should(Equal(value))
		Expect(model.JSON.Serialize(nil)).Should(BeNil())
	})

	It("decodes raw JSON when serializing", func() {
		Expect(model.JSON.Serialize(jsoniter.RawMessage(`{"a":[1,true]}`))).Should(Equal(map[string]interface{}{
			"a": []interface{}{float64(1), true},
		}))

		_, err := model.JSON.Serialize(jsoniter.RawMessage(`{`))
		Expect(err).Should(HaveOccurred())
	})

	It("decodes JSON strings in variables", func() {
		Expect(model.JSON.ParseValue(`{"b": "c"}`)).Should(Equal(map[string]interface{}{"b": "c"}))
		Expect(model.JSON.ParseValue("plain text")).Should(Equal("plain text"))
		Expect(model.JSON.ParseValue(3.5)).Should(Equal(3.5))
	})

	It("converts literals", func() {
		literal := &ast.Value{
			Kind: ast.ObjectValue,
			Children: ast.ChildValueList{
				{Name: "n", Value: &ast.Value{Kind: ast.IntValue, Raw: "7"}},
				{Name: "v", Value: &ast.Value{Kind: ast.Variable, Raw: "x"}},
				{Name: "l", Value: &ast.Value{Kind: ast.ListValue, Children: ast.ChildValueList{
					{Value: &ast.Value{Kind: ast.StringValue, Raw: "s"}},
				}}},
			},
		}

		Expect(model.JSON.ParseLiteral(literal, map[string]interface{}{"x": true})).Should(Equal(map[string]interface{}{
			"n": int64(7),
			"v": true,
			"l": []interface{}{"s"},
		}))
	})
})
