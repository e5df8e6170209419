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

package util_test

import (
	"strings"

	"github.com/botobag/lattice/internal/util"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Dedent", func() {
	It("removes indentation in typical usage", func() {
		output := util.Dedent(`
      type Query {
        me: User
      }

      type User {
        id: ID
        name: String
      }
    `)

		Expect(output).Should(Equal(strings.Join([]string{
			"type Query {",
			"  me: User",
			"}",
			"",
			"type User {",
			"  id: ID",
			"  name: String",
			"}",
			"",
		}, "\n")))
	})

	It("removes only the first level of indentation", func() {
		output := util.Dedent(`
            qux
              quux
                quuux
    `)

		Expect(output).Should(Equal("qux\n  quux\n    quuux\n"))
	})

	It("also removes indentation using tabs", func() {
		output := util.Dedent(`
		    enum Size {
		      SMALL
		    }
    `)

		Expect(output).Should(Equal("enum Size {\n  SMALL\n}\n"))
	})

	It("does not remove trailing newlines", func() {
		output := util.Dedent(`
      scalar JSON

    `)

		Expect(output).Should(Equal("scalar JSON\n\n"))
	})

	It("works on empty string and text without indentation", func() {
		Expect(util.Dedent("")).Should(Equal(""))
		Expect(util.Dedent("\ntype Query {\n  me: User\n}\n")).Should(Equal("type Query {\n  me: User\n}\n"))
	})
})

var _ = Describe("JoinLines", func() {
	It("folds indented lines into one line", func() {
		Expect(util.JoinLines(`
			A person who owns
			one or more pets.
		`)).Should(Equal("A person who owns one or more pets."))
	})

	It("keeps paragraphs apart", func() {
		Expect(util.JoinLines(`
			First paragraph
			continues here.


			Second paragraph.
		`)).Should(Equal("First paragraph continues here.\n\nSecond paragraph."))
	})

	It("returns an empty string for blank input", func() {
		Expect(util.JoinLines("\n   \n")).Should(BeEmpty())
	})
})
