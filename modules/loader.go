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

package modules

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
)

// Loader loads the module stored at a path and returns its exported surface. A module that exports
// nothing loads as nil.
type Loader interface {
	Load(path string) (interface{}, error)
}

// LoaderFunc is an adapter to allow the use of ordinary functions as Loader.
type LoaderFunc func(path string) (interface{}, error)

// Load calls f(path).
func (f LoaderFunc) Load(path string) (interface{}, error) {
	return f(path)
}

// LoadError is recorded for a module that could not be loaded.
type LoadError struct {
	// Path of the module
	Path string

	// The error reported by the loader
	Cause error
}

// Error implements error.
func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load module %s: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ExtensionLoader dispatches a module to a loader by the extension of its path. The loader stored
// under the empty extension handles every other path; without one, such modules export nothing.
type ExtensionLoader map[string]Loader

// Load implements Loader.
func (loaders ExtensionLoader) Load(path string) (interface{}, error) {
	loader, exists := loaders[strings.ToLower(filepath.Ext(path))]
	if !exists {
		loader, exists = loaders[""]
		if !exists {
			return nil, nil
		}
	}
	return loader.Load(path)
}

// export is a value registered for a module. A lazy export computes its value on first successful
// load.
type export struct {
	mutex sync.Mutex
	fn    func() (interface{}, error)
	value interface{}
	done  bool
}

func (e *export) load() (value interface{}, err error) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.done {
		return e.value, nil
	}

	defer func() {
		if r := recover(); r != nil {
			value, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()

	value, err = e.fn()
	if err != nil {
		return nil, err
	}

	e.value, e.done = value, true
	return value, nil
}

// Registry is a Loader for modules that register their exports explicitly, usually from an init
// function of the Go source file that declares them:
//
//	func init() {
//		modules.Register(modules.Here(), Zebra{})
//	}
//
// The directory walk acts as the manifest: a module is loaded by looking up its path. Files that
// never registered anything export nothing.
type Registry struct {
	mutex   sync.Mutex
	modules map[string][]*export
}

var _ Loader = (*Registry)(nil)

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		modules: map[string][]*export{},
	}
}

// DefaultRegistry is the Registry used by Register, RegisterFunc and parsers without a Loader.
var DefaultRegistry = NewRegistry()

// Register adds exports to the module at path. A single export is returned as is by Load; several
// are returned as []interface{}.
func (r *Registry) Register(path string, exports ...interface{}) {
	var value interface{}
	if len(exports) == 1 {
		value = exports[0]
	} else {
		value = exports
	}
	r.add(path, &export{value: value, done: true})
}

// RegisterFunc adds a lazily computed export to the module at path. fn is called when the module
// is loaded. An error or a panic from fn fails the load; a successful value is kept for later loads.
func (r *Registry) RegisterFunc(path string, fn func() (interface{}, error)) {
	r.add(path, &export{fn: fn})
}

func (r *Registry) add(path string, e *export) {
	path = filepath.Clean(path)

	r.mutex.Lock()
	r.modules[path] = append(r.modules[path], e)
	r.mutex.Unlock()
}

// Load implements Loader.
func (r *Registry) Load(path string) (interface{}, error) {
	r.mutex.Lock()
	exports := r.modules[filepath.Clean(path)]
	r.mutex.Unlock()

	switch len(exports) {
	case 0:
		return nil, nil
	case 1:
		return exports[0].load()
	}

	values := make([]interface{}, 0, len(exports))
	for _, e := range exports {
		value, err := e.load()
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}

// Paths returns the registered module paths in lexical order.
func (r *Registry) Paths() []string {
	r.mutex.Lock()
	paths := make([]string, 0, len(r.modules))
	for path := range r.modules {
		paths = append(paths, path)
	}
	r.mutex.Unlock()

	sort.Strings(paths)
	return paths
}

// Register adds exports to the module at path in DefaultRegistry.
func Register(path string, exports ...interface{}) {
	DefaultRegistry.Register(path, exports...)
}

// RegisterFunc adds a lazy export to the module at path in DefaultRegistry.
func RegisterFunc(path string, fn func() (interface{}, error)) {
	DefaultRegistry.RegisterFunc(path, fn)
}

// Here returns the path of the source file that calls it. The path is the one recorded by the
// compiler, so binaries built with -trimpath report module-relative paths that a directory walk
// will not find.
func Here() string {
	_, file, _, ok := runtime.Caller(1)
	if !ok {
		return ""
	}
	return filepath.Clean(file)
}
