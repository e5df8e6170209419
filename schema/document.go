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
	"bytes"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"github.com/vektah/gqlparser/v2/parser"
)

// Document is the schema document assembled from the SDL fragments of models. Fragments are parsed
// when appended so a malformed fragment is reported with the name of the model it came from.
type Document struct {
	doc *ast.SchemaDocument
}

// NewDocument creates an empty Document.
func NewDocument() *Document {
	return &Document{
		doc: &ast.SchemaDocument{},
	}
}

// Append parses sdl and adds its definitions to the document. name identifies the fragment in
// errors. An object, interface or input object whose name is already defined with the same kind is
// merged into the existing definition: fields and interfaces it does not have yet are appended.
func (d *Document) Append(name string, sdl string) error {
	fragment, err := parser.ParseSchema(&ast.Source{
		Name:  name,
		Input: sdl,
	})
	if err != nil {
		return fmt.Errorf("invalid schema for %s: %w", name, err)
	}

	for _, def := range fragment.Definitions {
		existing := d.doc.Definitions.ForName(def.Name)
		if existing != nil && existing.Kind == def.Kind && mergeable(def.Kind) {
			mergeDefinition(existing, def)
			continue
		}
		d.doc.Definitions = append(d.doc.Definitions, def)
	}

	d.doc.Schema = append(d.doc.Schema, fragment.Schema...)
	d.doc.SchemaExtension = append(d.doc.SchemaExtension, fragment.SchemaExtension...)
	d.doc.Directives = append(d.doc.Directives, fragment.Directives...)
	d.doc.Extensions = append(d.doc.Extensions, fragment.Extensions...)

	return nil
}

func mergeable(kind ast.DefinitionKind) bool {
	switch kind {
	case ast.Object, ast.Interface, ast.InputObject:
		return true
	}
	return false
}

func mergeDefinition(dst *ast.Definition, src *ast.Definition) {
	if len(dst.Description) == 0 {
		dst.Description = src.Description
	}

	for _, field := range src.Fields {
		if dst.Fields.ForName(field.Name) == nil {
			dst.Fields = append(dst.Fields, field)
		}
	}

	for _, iface := range src.Interfaces {
		if !containsString(dst.Interfaces, iface) {
			dst.Interfaces = append(dst.Interfaces, iface)
		}
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// Definitions returns the type definitions in the order they were first appended.
func (d *Document) Definitions() ast.DefinitionList {
	return d.doc.Definitions
}

// AST returns the underlying document.
func (d *Document) AST() *ast.SchemaDocument {
	return d.doc
}

// String prints the document as SDL.
func (d *Document) String() string {
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatSchemaDocument(d.doc)
	return buf.String()
}
