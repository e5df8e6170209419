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
	"errors"
	"fmt"
	"io"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/gookit/color"
	"go.uber.org/multierr"
)

// ErrFilesSkipped is reported when a discovery pass skipped files and failing on errors was
// requested.
var ErrFilesSkipped = errors.New("some files were skipped while discovering models")

// SkipTable records, in discovery order, the modules that could not be loaded and why.
type SkipTable struct {
	entries *orderedmap.OrderedMap[string, error]
}

func newSkipTable() *SkipTable {
	return &SkipTable{
		entries: orderedmap.NewOrderedMap[string, error](),
	}
}

func (table *SkipTable) set(path string, err error) {
	table.entries.Set(path, err)
}

// Len returns the number of skipped modules.
func (table *SkipTable) Len() int {
	if table == nil {
		return 0
	}
	return table.entries.Len()
}

// Get returns the error recorded for path or nil.
func (table *SkipTable) Get(path string) error {
	if table == nil {
		return nil
	}
	err, _ := table.entries.Get(path)
	return err
}

// Paths returns the skipped module paths in the order they were skipped.
func (table *SkipTable) Paths() []string {
	paths := make([]string, 0, table.Len())
	if table == nil {
		return paths
	}
	for el := table.entries.Front(); el != nil; el = el.Next() {
		paths = append(paths, el.Key)
	}
	return paths
}

// Err combines ErrFilesSkipped with every recorded error. It returns nil when nothing was skipped.
func (table *SkipTable) Err() error {
	if table.Len() == 0 {
		return nil
	}

	err := ErrFilesSkipped
	for el := table.entries.Front(); el != nil; el = el.Next() {
		err = multierr.Append(err, el.Value)
	}
	return err
}

// Print writes a report of the skipped modules to w.
func (table *SkipTable) Print(w io.Writer) {
	if table.Len() == 0 {
		fmt.Fprintln(w, color.Green.Sprint("No files skipped"))
		return
	}

	fmt.Fprintln(w, color.Yellow.Sprintf("Skipped %d file(s) while discovering models:", table.Len()))
	for el := table.entries.Front(); el != nil; el = el.Next() {
		fmt.Fprintf(w, "  %s\n", color.Bold.Sprint(el.Key))

		cause := el.Value
		var loadErr *LoadError
		if errors.As(cause, &loadErr) {
			cause = loadErr.Cause
		}
		fmt.Fprintf(w, "    %s\n", color.Red.Sprint(cause))
	}
}
