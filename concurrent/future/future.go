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

// A Future represents a computation that may not have produced its value yet.
//
// The model follows Rust's futures: a Future is inert until it is polled, and it is polled again
// only after it has asked to be woken through the Waker handed to Poll. lattice uses futures to
// express its non-blocking discovery path. A walk or a parse returns a Future that performs one
// step of I/O per Poll and yields between steps, so the caller decides how the work is scheduled
// (BlockOn, Await or a custom loop) while the algorithm stays the same as its blocking twin.
type Future interface {
	// Poll attempts to resolve the future to a final value. The return value is one of:
	//
	//	* (any, err): the future finished with an error;
	//	* (PollResultPending, nil): the future is not ready and has arranged for waker.Wake to be
	//	  called once it can make progress;
	//	* (value, nil): the future finished successfully with value.
	//
	// A finished future must not be polled again. Poll must never block.
	Poll(waker Waker) (PollResult, error)
}

// PollFunc is an adapter to allow the use of ordinary functions as Future.
type PollFunc func(waker Waker) (PollResult, error)

// PollFunc implements Future.
var _ Future = PollFunc(nil)

// Poll implements Future by calling f(waker).
func (f PollFunc) Poll(waker Waker) (PollResult, error) {
	return f(waker)
}
