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
	"path/filepath"
	"strings"

	"github.com/botobag/lattice/concurrent/future"
	"github.com/spf13/afero"
)

// Extensions is an allow-list of file name extensions. Matching is case-insensitive and applies to
// the end of the file name, so multi-part extensions such as ".graphql.go" are supported.
type Extensions []string

// DefaultExtensions is used when no extensions are configured.
var DefaultExtensions = Extensions{".go"}

// NewExtensions normalizes exts into an allow-list. Every extension gets a leading dot. An empty
// list gives DefaultExtensions.
func NewExtensions(exts ...string) Extensions {
	result := make(Extensions, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		if len(ext) == 0 {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		result = append(result, ext)
	}
	if len(result) == 0 {
		return DefaultExtensions
	}
	return result
}

// Match returns true if the name of path ends with one of the extensions.
func (exts Extensions) Match(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	for _, ext := range exts {
		ext = strings.ToLower(ext)
		if len(name) > len(ext) && strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// WalkSync returns the absolute path of every file below root whose name matches exts. Directory
// entries are visited in lexical order, depth first. Any filesystem error aborts the walk and no
// partial result is returned.
func WalkSync(fs afero.Fs, root string, exts Extensions) ([]string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	files := []string{}
	if err := walkDirSync(fs, root, exts, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func walkDirSync(fs afero.Fs, dir string, exts Extensions, files *[]string) error {
	names, err := readDirNames(fs, dir)
	if err != nil {
		return err
	}

	for _, name := range names {
		path := filepath.Join(dir, name)
		info, err := fs.Stat(path)
		if err != nil {
			return err
		}

		if info.IsDir() {
			if err := walkDirSync(fs, path, exts, files); err != nil {
				return err
			}
		} else if exts.Match(path) {
			*files = append(*files, path)
		}
	}

	return nil
}

// readDirNames lists the entries of dir sorted by name.
func readDirNames(fs afero.Fs, dir string) ([]string, error) {
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name()
	}
	return names, nil
}

// walkFrame is a directory being listed by walker.
type walkFrame struct {
	dir   string
	names []string
	next  int
}

// walker implements the Future returned by Walk. It reads at most one directory per poll.
type walker struct {
	fs    afero.Fs
	exts  Extensions
	root  string
	files []string
	stack []*walkFrame
}

var _ future.Future = (*walker)(nil)

// Walk is the non-blocking variant of WalkSync. The returned Future resolves to []string with the
// same content WalkSync would return for the same filesystem state. It yields to its driver after
// every directory it reads.
func Walk(fs afero.Fs, root string, exts Extensions) future.Future {
	root, err := filepath.Abs(root)
	if err != nil {
		return future.Err(err)
	}

	return &walker{
		fs:    fs,
		exts:  exts,
		root:  root,
		files: []string{},
	}
}

// enter reads dir and pushes it onto the stack.
func (w *walker) enter(dir string) error {
	names, err := readDirNames(w.fs, dir)
	if err != nil {
		return err
	}
	w.stack = append(w.stack, &walkFrame{
		dir:   dir,
		names: names,
	})
	return nil
}

// Poll implements future.Future.
func (w *walker) Poll(waker future.Waker) (future.PollResult, error) {
	if len(w.root) > 0 {
		root := w.root
		w.root = ""
		if err := w.enter(root); err != nil {
			return nil, err
		}
		return future.Yield(waker)
	}

	for len(w.stack) > 0 {
		top := w.stack[len(w.stack)-1]
		if top.next >= len(top.names) {
			w.stack = w.stack[:len(w.stack)-1]
			continue
		}

		path := filepath.Join(top.dir, top.names[top.next])
		top.next++

		info, err := w.fs.Stat(path)
		if err != nil {
			return nil, err
		}

		if info.IsDir() {
			if err := w.enter(path); err != nil {
				return nil, err
			}
			return future.Yield(waker)
		} else if w.exts.Match(path) {
			w.files = append(w.files, path)
		}
	}

	return w.files, nil
}

// isDir reports whether path names an existing directory in fs.
func isDir(fs afero.Fs, path string) (bool, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
