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

// sequence implements Future returned by Sequence.
type sequence struct {
	inputs  []Future
	results []interface{}
}

// Poll implements Future.
func (f *sequence) Poll(waker Waker) (PollResult, error) {
	for len(f.results) < len(f.inputs) {
		result, err := f.inputs[len(f.results)].Poll(waker)
		if err != nil {
			return nil, err
		}
		if IsPending(result) {
			return PollResultPending, nil
		}
		f.results = append(f.results, result)
	}
	return f.results, nil
}

// Sequence creates a Future which drives the given futures one after another and collects their
// values into an []interface{} in the same order. An input is first polled only after the one
// before it finished, in the same Poll. Sequence fails with the first error reported by an input.
func Sequence(f ...Future) Future {
	return &sequence{
		inputs:  f,
		results: make([]interface{}, 0, len(f)),
	}
}
