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
	"github.com/botobag/lattice/internal/util"
)

// Docs is the documentation a model reports for its type and members. Every entry is optional;
// entries that match nothing in the schema are ignored.
type Docs struct {
	// Description of the type itself
	Class string

	// Descriptions of fields (objects, interfaces, input objects) or enum values keyed by name
	Fields map[string]string

	// Descriptions of the root operation types
	Query        string
	Mutation     string
	Subscription string

	// Descriptions of the root fields contributed by the model, keyed by field name
	Queries       map[string]string
	Mutators      map[string]string
	Subscriptions map[string]string
}

// Documented is implemented by models that report documentation.
type Documented interface {
	APIDocs() Docs
}

// DocumentedFunc is an adapter to allow the use of ordinary functions as Documented.
type DocumentedFunc func() Docs

// APIDocs calls f().
func (f DocumentedFunc) APIDocs() Docs {
	return f()
}

// JoinLines formats a doc written as an indented multi-line Go string literal: the common
// indentation is removed and the lines of each paragraph are joined with spaces.
func JoinLines(s string) string {
	return util.JoinLines(s)
}
