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

package modules_test

import (
	"bytes"
	"context"
	"errors"

	"github.com/botobag/lattice/concurrent/future"
	"github.com/botobag/lattice/model"
	"github.com/botobag/lattice/modules"
	"github.com/botobag/lattice/prefs"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Parser", func() {
	var (
		fs       afero.Fs
		registry *modules.Registry
		output   *bytes.Buffer
		loadErr  error
	)

	BeforeEach(func() {
		fs = afero.NewMemMapFs()
		registry = modules.NewRegistry()
		output = &bytes.Buffer{}
		loadErr = errors.New("boom")

		writeFiles(fs, "/models/A.go", "/models/B.go", "/models/C.go", "/models/README.md")
		registry.Register("/models/A.go", Zebra{})
		registry.Register("/models/B.go", Apple{})
		registry.RegisterFunc("/models/C.go", func() (interface{}, error) {
			return nil, loadErr
		})
	})

	newParser := func(config modules.Config) *modules.Parser {
		if len(config.Directory) == 0 {
			config.Directory = "/models"
		}
		if config.Loader == nil {
			config.Loader = registry
		}
		config.Fs = fs
		config.Output = output
		return modules.NewParser(config)
	}

	Describe("discovering A, B and a broken C", func() {
		expectSkippedC := func(parser *modules.Parser) {
			skipped := parser.Skipped()
			Expect(skipped.Len()).Should(Equal(1))
			Expect(skipped.Paths()).Should(Equal([]string{"/models/C.go"}))

			var err *modules.LoadError
			Expect(errors.As(skipped.Get("/models/C.go"), &err)).Should(BeTrue())
			Expect(err.Path).Should(Equal("/models/C.go"))
			Expect(err.Cause).Should(MatchError(loadErr))
		}

		It("returns the other models sorted by name followed by JSON", func() {
			parser := newParser(modules.Config{Prefs: prefs.Default()})
			Expect(parser.Err()).ShouldNot(HaveOccurred())

			classes, err := parser.ParseSync()
			Expect(err).ShouldNot(HaveOccurred())
			Expect(classes).Should(Equal([]model.Model{Apple{}, Zebra{}, model.JSON}))
			Expect(parser.Classes()).Should(Equal(classes))
			expectSkippedC(parser)
		})

		It("returns the same result without blocking", func() {
			parser := newParser(modules.Config{Prefs: prefs.Default()})

			classes, err := future.BlockOn(parser.Parse())
			Expect(err).ShouldNot(HaveOccurred())
			Expect(classes).Should(Equal([]model.Model{Apple{}, Zebra{}, model.JSON}))
			expectSkippedC(parser)
		})

		It("omits lattice types on request", func() {
			parser := newParser(modules.Config{Prefs: prefs.Default(), OmitLatticeTypes: true})
			Expect(parser.ParseSync()).Should(Equal([]model.Model{Apple{}, Zebra{}}))
		})

		It("fails loudly with FailOnError", func() {
			parser := newParser(modules.Config{Prefs: prefs.Default(), FailOnError: true})

			classes, err := parser.ParseSync()
			Expect(classes).Should(BeNil())
			Expect(errors.Is(err, modules.ErrFilesSkipped)).Should(BeTrue())
			Expect(errors.Is(err, loadErr)).Should(BeTrue())
			Expect(parser.Classes()).Should(BeNil())

			Expect(output.String()).Should(ContainSubstring("/models/C.go"))
			Expect(output.String()).Should(ContainSubstring("boom"))
		})

		It("fails loudly without blocking", func() {
			parser := newParser(modules.Config{Prefs: prefs.Default(), FailOnError: true})

			_, err := future.BlockOn(parser.Parse())
			Expect(errors.Is(err, modules.ErrFilesSkipped)).Should(BeTrue())
		})

		It("reads failOnError from the preferences file", func() {
			Expect(afero.WriteFile(fs, "/lattice.yaml", []byte("ModuleParser:\n  failOnError: true\n"), 0644)).Should(Succeed())

			_, err := newParser(modules.Config{}).ParseSync()
			Expect(errors.Is(err, modules.ErrFilesSkipped)).Should(BeTrue())
		})

		It("logs skipped files", func() {
			core, logs := observer.New(zapcore.DebugLevel)
			parser := newParser(modules.Config{Prefs: prefs.Default(), Logger: zap.New(core)})

			_, err := parser.ParseSync()
			Expect(err).ShouldNot(HaveOccurred())

			skipping := logs.FilterMessage("Skipping").All()
			Expect(skipping).Should(HaveLen(1))
			Expect(skipping[0].Level).Should(Equal(zapcore.InfoLevel))
			Expect(skipping[0].ContextMap()).Should(HaveKeyWithValue("path", "/models/C.go"))

			failures := logs.FilterMessage("Failed to load module").All()
			Expect(failures).Should(HaveLen(1))
			Expect(failures[0].Level).Should(Equal(zapcore.DebugLevel))
			Expect(failures[0].ContextMap()).Should(HaveKeyWithValue("error", "boom"))
		})
	})

	It("reports that nothing was skipped", func() {
		parser := newParser(modules.Config{Prefs: prefs.Default(), Extensions: []string{".md"}})
		_, err := parser.ParseSync()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(parser.Skipped().Len()).Should(Equal(0))

		report := &bytes.Buffer{}
		parser.PrintSkipped(report)
		Expect(report.String()).Should(ContainSubstring("No files skipped"))
	})

	It("loads one module per poll without blocking", func() {
		writeFiles(fs, "/m/a.go", "/m/b.go", "/m/c.go", "/m/d.go")

		loaded := 0
		parser := newParser(modules.Config{
			Directory: "/m",
			Loader: modules.LoaderFunc(func(path string) (interface{}, error) {
				loaded++
				return nil, nil
			}),
			Prefs: prefs.Default(),
		})

		f := parser.Parse()
		var perPoll []int
		for {
			before := loaded
			result, err := f.Poll(future.NopWaker)
			Expect(err).ShouldNot(HaveOccurred())
			perPoll = append(perPoll, loaded-before)
			if !future.IsPending(result) {
				Expect(result).Should(Equal([]model.Model{model.JSON}))
				break
			}
		}

		Expect(loaded).Should(Equal(4))
		for _, n := range perPoll {
			Expect(n).Should(BeNumerically("<=", 1))
		}
	})

	It("resets the skip table on every pass", func() {
		attempts := 0
		registry.RegisterFunc("/models/D.go", func() (interface{}, error) {
			attempts++
			if attempts == 1 {
				return nil, errors.New("first attempt fails")
			}
			return Mango{}, nil
		})
		loadErr = nil
		writeFiles(fs, "/models/D.go")

		parser := newParser(modules.Config{Prefs: prefs.Default(), OmitLatticeTypes: true})

		_, err := parser.ParseSync()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(parser.Skipped().Paths()).Should(Equal([]string{"/models/D.go"}))

		classes, err := future.BlockOn(parser.Parse())
		Expect(err).ShouldNot(HaveOccurred())
		Expect(classes).Should(Equal([]model.Model{Apple{}, Mango{}, Zebra{}}))
		Expect(parser.Skipped().Len()).Should(Equal(0))
	})

	It("collects models from nested directories and custom extensions", func() {
		writeFiles(fs, "/models/sub/fruit.model", "/models/sub/ignored.go")
		registry.Register("/models/sub/fruit.model", []interface{}{Mango{}, map[string]interface{}{"apple": Apple{}}})

		config := modules.Config{
			Prefs:            &prefs.Prefs{ModuleParser: prefs.ModuleParserPrefs{Extensions: []string{".model"}}},
			OmitLatticeTypes: true,
		}

		parser := newParser(config)
		Expect(parser.Extensions()).Should(Equal(modules.Extensions{".model"}))
		Expect(parser.ParseSync()).Should(Equal([]model.Model{Apple{}, Mango{}}))
		Expect(parser.Skipped().Len()).Should(Equal(0))

		Expect(future.BlockOn(newParser(config).Parse())).Should(Equal([]model.Model{Apple{}, Mango{}}))
	})

	It("removes duplicates and keeps discovery order for equal names", func() {
		registry.Register("/models/A.go", AnotherApple{}, &Apple{})
		registry.Register("/models/B.go", Zebra{})

		parser := newParser(modules.Config{Prefs: prefs.Default(), OmitLatticeTypes: true})
		Expect(parser.ParseSync()).Should(Equal([]model.Model{AnotherApple{}, &Apple{}, Zebra{}}))
	})

	It("does not add JSON twice", func() {
		registry.Register("/models/B.go", model.JSON)

		parser := newParser(modules.Config{Prefs: prefs.Default()})
		Expect(parser.ParseSync()).Should(Equal([]model.Model{Apple{}, model.JSON, Zebra{}}))
	})

	It("records loader panics as skipped files", func() {
		parser := newParser(modules.Config{
			Prefs: prefs.Default(),
			Loader: modules.LoaderFunc(func(path string) (interface{}, error) {
				if path == "/models/B.go" {
					panic("unexpected")
				}
				return registry.Load(path)
			}),
		})

		Expect(parser.ParseSync()).Should(Equal([]model.Model{Zebra{}, model.JSON}))
		Expect(parser.Skipped().Get("/models/B.go")).Should(MatchError(ContainSubstring("panic: unexpected")))
	})

	Describe("with an invalid directory", func() {
		It("fails on every pass when the directory is missing", func() {
			parser := newParser(modules.Config{Directory: "/missing"})
			Expect(errors.Is(parser.Err(), modules.ErrInvalidDirectory)).Should(BeTrue())

			_, err := parser.ParseSync()
			Expect(errors.Is(err, modules.ErrInvalidDirectory)).Should(BeTrue())

			_, err = future.BlockOn(parser.Parse())
			Expect(errors.Is(err, modules.ErrInvalidDirectory)).Should(BeTrue())
		})

		It("fails when the path is a file", func() {
			parser := newParser(modules.Config{Directory: "/models/A.go"})
			Expect(parser.Err()).Should(MatchError(ContainSubstring("is not a directory")))
		})

		It("fails without a directory", func() {
			parser := modules.NewParser(modules.Config{Fs: fs})
			Expect(errors.Is(parser.Err(), modules.ErrInvalidDirectory)).Should(BeTrue())
		})
	})

	It("stops when the context is done", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		parser := newParser(modules.Config{Prefs: prefs.Default()})
		_, err := future.Await(ctx, parser.Parse())
		Expect(err).Should(MatchError(context.Canceled))
	})
})
