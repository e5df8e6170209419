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
	"reflect"
	"sort"

	"github.com/botobag/lattice/model"
)

// FindModels returns every model reachable from exports, in traversal order. Maps, slices, arrays,
// exported struct fields, pointers and interfaces are searched; a model is not searched further. Map
// entries are visited in the order of their formatted keys. Nil pointers are ignored.
func FindModels(exports interface{}) []model.Model {
	c := &collector{
		visiting: map[visitKey]bool{},
	}
	c.visit(reflect.ValueOf(exports))
	return c.models
}

// visitKey identifies a container on the current search path.
type visitKey struct {
	typ reflect.Type
	ptr uintptr
	len int
}

type collector struct {
	models []model.Model

	// Containers being visited; used to break cycles
	visiting map[visitKey]bool
}

func (c *collector) visit(v reflect.Value) {
	if !v.IsValid() {
		return
	}

	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return
		}
	}

	if v.CanInterface() && model.IsModel(v.Interface()) {
		c.models = append(c.models, v.Interface().(model.Model))
		return
	}

	switch v.Kind() {
	case reflect.Interface:
		c.visit(v.Elem())

	case reflect.Ptr:
		c.enter(v, 0, func() {
			c.visit(v.Elem())
		})

	case reflect.Map:
		c.enter(v, 0, func() {
			keys := v.MapKeys()
			sort.SliceStable(keys, func(i, j int) bool {
				return formatKey(keys[i]) < formatKey(keys[j])
			})
			for _, key := range keys {
				c.visit(v.MapIndex(key))
			}
		})

	case reflect.Slice:
		c.enter(v, v.Len(), func() {
			for i := 0; i < v.Len(); i++ {
				c.visit(v.Index(i))
			}
		})

	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			c.visit(v.Index(i))
		}

	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if t.Field(i).PkgPath == "" {
				c.visit(v.Field(i))
			}
		}
	}
}

// enter runs fn unless v is already on the search path.
func (c *collector) enter(v reflect.Value, length int, fn func()) {
	key := visitKey{
		typ: v.Type(),
		ptr: v.Pointer(),
		len: length,
	}
	if c.visiting[key] {
		return
	}

	c.visiting[key] = true
	fn()
	delete(c.visiting, key)
}

func formatKey(key reflect.Value) string {
	if key.CanInterface() {
		return fmt.Sprint(key.Interface())
	}
	return key.String()
}
