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
	"plugin"
)

// DefaultPluginSymbol is the symbol looked up by PluginLoader when none is given.
const DefaultPluginSymbol = "Exports"

// PluginLoader loads modules built with -buildmode=plugin. The exports of a plugin are the value of
// its Symbol. A function symbol of type func() interface{} or func() (interface{}, error) is called
// to produce them.
type PluginLoader struct {
	// (Optional) Name of the exported symbol; defaults to DefaultPluginSymbol
	Symbol string
}

var _ Loader = PluginLoader{}

// Load implements Loader.
func (loader PluginLoader) Load(path string) (interface{}, error) {
	name := loader.Symbol
	if len(name) == 0 {
		name = DefaultPluginSymbol
	}

	p, err := plugin.Open(path)
	if err != nil {
		return nil, err
	}

	symbol, err := p.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("plugin %s has no exports: %w", path, err)
	}

	return symbolExports(symbol)
}

// symbolExports returns the exports held by a plugin symbol. Functions are called; any other value
// is the exports itself.
func symbolExports(symbol plugin.Symbol) (interface{}, error) {
	switch symbol := symbol.(type) {
	case func() interface{}:
		return symbol(), nil
	case func() (interface{}, error):
		return symbol()
	}
	return symbol, nil
}
