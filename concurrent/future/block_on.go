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
	"context"
)

// BlockOn drives f on the calling goroutine until it finishes and returns its value.
func BlockOn(f Future) (interface{}, error) {
	return Await(context.Background(), f)
}

// Await is like BlockOn but gives up with ctx.Err() when ctx is done before f finishes. The context
// is checked before every poll. f is polled again whenever it wakes its waker; a future that
// returns PollResultPending without ever waking blocks Await until ctx is done.
func Await(ctx context.Context, f Future) (interface{}, error) {
	wake := make(chan struct{}, 1)
	waker := WakerFunc(func() error {
		select {
		case wake <- struct{}{}:
		default:
		}
		return nil
	})

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := f.Poll(waker)
		if err != nil {
			return nil, err
		}
		if result != PollResultPending {
			return result, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-wake:
		}
	}
}
