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

package logs_test

import (
	"bytes"

	"github.com/botobag/lattice/internal/logs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Logs", func() {
	It("parses level names", func() {
		Expect(logs.ParseLevel("debug")).Should(Equal(zapcore.DebugLevel))
		Expect(logs.ParseLevel("WARN")).Should(Equal(zapcore.WarnLevel))
		Expect(logs.ParseLevel("error")).Should(Equal(zapcore.ErrorLevel))
		Expect(logs.ParseLevel("")).Should(Equal(zapcore.InfoLevel))
		Expect(logs.ParseLevel("verbose")).Should(Equal(zapcore.InfoLevel))
	})

	It("writes JSON entries at or above the configured level", func() {
		var buf bytes.Buffer
		logger := logs.New(logs.Config{Level: "warn", Format: "json", Output: &buf})

		logger.Info("hidden")
		logger.Warn("Skipping", zap.String("path", "/models/c.go"))

		Expect(buf.String()).ShouldNot(ContainSubstring("hidden"))
		Expect(buf.String()).Should(ContainSubstring(`"msg":"Skipping"`))
		Expect(buf.String()).Should(ContainSubstring(`"path":"/models/c.go"`))
	})

	It("falls back to the global logger", func() {
		Expect(logs.OrGlobal(nil)).Should(BeIdenticalTo(zap.L()))

		logger := zap.NewNop()
		Expect(logs.OrGlobal(logger)).Should(BeIdenticalTo(logger))
	})
})
