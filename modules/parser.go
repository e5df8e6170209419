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

// Package modules discovers lattice models in a directory tree.
//
// A Parser walks a directory, loads every file whose extension is allowed through a Loader, and
// collects the models found in the loaded exports. Files that fail to load are recorded in a skip
// table instead of aborting discovery. Discovery is available as a blocking call (ParseSync) and as
// a future (Parse) that yields at every directory read and module load; both produce the same
// result for the same filesystem state.
package modules

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sort"

	"github.com/botobag/lattice/concurrent/future"
	"github.com/botobag/lattice/model"
	"github.com/botobag/lattice/prefs"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ErrInvalidDirectory is reported by a Parser whose directory does not exist or is not a
// directory.
var ErrInvalidDirectory = errors.New("invalid module directory")

// Config configures a Parser.
type Config struct {
	// (Required) Directory to search for models
	Directory string

	// (Optional) Loader for modules; defaults to DefaultRegistry.
	Loader Loader

	// (Optional) Filesystem to walk; defaults to the OS filesystem.
	Fs afero.Fs

	// (Optional) Logger; defaults to a no-op logger.
	Logger *zap.Logger

	// (Optional) Project preferences. When nil, they are looked up from Directory upwards.
	Prefs *prefs.Prefs

	// (Optional) Allowed file extensions. Overrides the preferences; DefaultExtensions are used
	// when neither sets any.
	Extensions []string

	// (Optional) Fail the whole pass when any file was skipped. Either this or the preference
	// enables the behavior.
	FailOnError bool

	// (Optional) Do not append the built-in lattice types (the JSON scalar) to the result.
	OmitLatticeTypes bool

	// (Optional) Destination of the skip report printed before failing on errors; defaults to
	// os.Stderr.
	Output io.Writer
}

// Parser discovers models. A Parser keeps the result and the skip table of its last pass; each
// pass overwrites them.
type Parser struct {
	dir              string
	loader           Loader
	fs               afero.Fs
	logger           *zap.Logger
	exts             Extensions
	failOnError      bool
	omitLatticeTypes bool
	output           io.Writer

	// Set when the parser was constructed with an invalid configuration
	err error

	classes []model.Model
	skipped *SkipTable
}

// NewParser creates a Parser from config. An invalid configuration does not fail construction;
// it is returned by Err and by every pass.
func NewParser(config Config) *Parser {
	p := &Parser{
		loader:           config.Loader,
		fs:               config.Fs,
		logger:           config.Logger,
		failOnError:      config.FailOnError,
		omitLatticeTypes: config.OmitLatticeTypes,
		output:           config.Output,
		skipped:          newSkipTable(),
	}

	if p.loader == nil {
		p.loader = DefaultRegistry
	}
	if p.fs == nil {
		p.fs = afero.NewOsFs()
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	if p.output == nil {
		p.output = os.Stderr
	}

	p.err = p.init(config)
	return p
}

func (p *Parser) init(config Config) error {
	if len(config.Directory) == 0 {
		return fmt.Errorf("%w: no directory given", ErrInvalidDirectory)
	}

	dir, err := filepath.Abs(config.Directory)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidDirectory, config.Directory, err)
	}
	p.dir = dir

	ok, err := isDir(p.fs, dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidDirectory, dir, err)
	} else if !ok {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidDirectory, dir)
	}

	preferences := config.Prefs
	if preferences == nil {
		preferences, err = prefs.LoadFs(p.fs, dir)
		if err != nil {
			return err
		}
		if len(preferences.File) > 0 {
			p.logger.Debug("Loaded preferences", zap.String("file", preferences.File))
		}
	}

	exts := config.Extensions
	if len(exts) == 0 {
		exts = preferences.ModuleParser.Extensions
	}
	p.exts = NewExtensions(exts...)
	p.failOnError = p.failOnError || preferences.ModuleParser.FailOnError

	return nil
}

// Err returns the configuration error of the parser, if any.
func (p *Parser) Err() error {
	return p.err
}

// Directory returns the absolute path of the directory being searched.
func (p *Parser) Directory() string {
	return p.dir
}

// Extensions returns the allowed file extensions.
func (p *Parser) Extensions() Extensions {
	return p.exts
}

// Classes returns the models found by the last successful pass.
func (p *Parser) Classes() []model.Model {
	return p.classes
}

// Skipped returns the skip table of the last pass.
func (p *Parser) Skipped() *SkipTable {
	return p.skipped
}

// PrintSkipped writes the skip report of the last pass to w.
func (p *Parser) PrintSkipped(w io.Writer) {
	p.skipped.Print(w)
}

// ParseSync discovers models, blocking until done.
func (p *Parser) ParseSync() ([]model.Model, error) {
	if p.err != nil {
		return nil, p.err
	}

	p.reset()

	files, err := WalkSync(p.fs, p.dir, p.exts)
	if err != nil {
		return nil, err
	}

	var found []model.Model
	for _, file := range files {
		found = append(found, p.collect(file)...)
	}

	return p.finish(found)
}

// Parse returns a Future that discovers models and resolves to []model.Model. Drive it with
// future.BlockOn or future.Await.
func (p *Parser) Parse() future.Future {
	if p.err != nil {
		return future.Err(p.err)
	}
	return &parse{parser: p}
}

// parse implements the Future returned by Parser.Parse.
type parse struct {
	parser *Parser
	walk   future.Future
	loads  future.Future
}

// Poll implements future.Future.
func (f *parse) Poll(waker future.Waker) (future.PollResult, error) {
	p := f.parser

	if f.walk == nil {
		p.reset()
		f.walk = Walk(p.fs, p.dir, p.exts)
	}

	if f.loads == nil {
		result, err := f.walk.Poll(waker)
		if err != nil {
			return nil, err
		} else if future.IsPending(result) {
			return result, nil
		}

		// One module is loaded per poll.
		files := result.([]string)
		loads := make([]future.Future, len(files))
		for i := range files {
			file := files[i]
			loads[i] = future.Lazy(func() (interface{}, error) {
				return p.collect(file), nil
			})
		}
		f.loads = future.Sequence(loads...)
	}

	result, err := f.loads.Poll(waker)
	if err != nil {
		return nil, err
	} else if future.IsPending(result) {
		return result, nil
	}

	var found []model.Model
	for _, models := range result.([]interface{}) {
		found = append(found, models.([]model.Model)...)
	}

	return p.finish(found)
}

func (p *Parser) reset() {
	p.skipped = newSkipTable()
}

// collect loads the module at path and returns the models it exports. A module that fails to load
// is recorded in the skip table.
func (p *Parser) collect(path string) []model.Model {
	exports, err := p.load(path)
	if err != nil {
		var loadErr *LoadError
		if !errors.As(err, &loadErr) {
			loadErr = &LoadError{
				Path:  path,
				Cause: err,
			}
		}
		p.skipped.set(path, loadErr)

		p.logger.Info("Skipping", zap.String("path", path))
		p.logger.Debug("Failed to load module", zap.String("path", path), zap.Error(err))
		return nil
	}

	return FindModels(exports)
}

func (p *Parser) load(path string) (exports interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			exports, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	return p.loader.Load(path)
}

func (p *Parser) finish(found []model.Model) ([]model.Model, error) {
	classes := uniqueModels(found)

	// Equal names keep their discovery order.
	sort.SliceStable(classes, func(i, j int) bool {
		return classes[i].TypeName() < classes[j].TypeName()
	})

	if !p.omitLatticeTypes && !containsModel(classes, model.JSON) {
		classes = append(classes, model.JSON)
	}

	if p.skipped.Len() > 0 && p.failOnError {
		p.skipped.Print(p.output)
		p.classes = nil
		return nil, p.skipped.Err()
	}

	p.classes = classes
	p.logger.Debug("Discovered models",
		zap.String("directory", p.dir),
		zap.Int("count", len(classes)),
		zap.Int("skipped", p.skipped.Len()))

	return classes, nil
}

func uniqueModels(models []model.Model) []model.Model {
	seen := make(map[reflect.Type]bool, len(models))
	result := make([]model.Model, 0, len(models))
	for _, m := range models {
		id := model.Identity(m)
		if seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, m)
	}
	return result
}

func containsModel(models []model.Model, m model.Model) bool {
	id := model.Identity(m)
	for _, candidate := range models {
		if model.Identity(candidate) == id {
			return true
		}
	}
	return false
}

