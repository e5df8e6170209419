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

package future

import (
	"errors"
)

// failed implements a Future that has already failed.
type failed struct {
	err error
}

// Poll implements Future.
func (f failed) Poll(waker Waker) (PollResult, error) {
	return nil, f.err
}

// errNilError is used by Err when it is given a nil error. It has an empty message.
var errNilError = errors.New("")

// Err creates a Future that fails with err on its first Poll. A nil err still produces a failed
// future.
func Err(err error) Future {
	if err == nil {
		err = errNilError
	}
	return failed{err: err}
}

// lazy implements Future returned by Lazy.
type lazy struct {
	fn      func() (interface{}, error)
	yielded bool
}

// Poll implements Future.
func (f *lazy) Poll(waker Waker) (PollResult, error) {
	if !f.yielded {
		f.yielded = true
		return Yield(waker)
	}
	return f.fn()
}

// Lazy creates a Future that yields once to its driver and then computes its value by calling fn.
// It marks an I/O boundary inside a larger future.
func Lazy(fn func() (interface{}, error)) Future {
	return &lazy{fn: fn}
}
