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

package util

import (
	"sort"
	"strings"
)

// SuggestionList given an invalid input string and a list of valid options, returns a filtered
// list of valid options sorted based on their similarity with the input.
func SuggestionList(input string, options []string) []string {
	type candidate struct {
		option   string
		distance int
	}

	var candidates []candidate
	inputThreshold := len(input) / 2
	for _, option := range options {
		threshold := inputThreshold
		if t := len(option) / 2; t > threshold {
			threshold = t
		}
		if threshold < 1 {
			threshold = 1
		}

		if distance := lexicalDistance(input, option); distance <= threshold {
			candidates = append(candidates, candidate{option, distance})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	result := make([]string, len(candidates))
	for i, c := range candidates {
		result[i] = c.option
	}
	return result
}

// DidYouMean returns ` Did you mean "A", "B", or "C"?` for the options close to input, or an empty
// string when nothing is close. At most five suggestions are listed.
func DidYouMean(input string, options []string) string {
	suggestions := SuggestionList(input, options)
	if len(suggestions) == 0 {
		return ""
	}
	if len(suggestions) > 5 {
		suggestions = suggestions[:5]
	}

	var b strings.Builder
	b.WriteString(" Did you mean ")
	for i, suggestion := range suggestions {
		if i > 0 {
			if len(suggestions) > 2 {
				b.WriteString(",")
			}
			b.WriteString(" ")
			if i == len(suggestions)-1 {
				b.WriteString("or ")
			}
		}
		b.WriteString(`"`)
		b.WriteString(suggestion)
		b.WriteString(`"`)
	}
	b.WriteString("?")

	return b.String()
}

// lexicalDistance counts the minimum number of edits (insertion, deletion, substitution or swap of
// two adjacent characters) that turn a into b. A pure case change counts as a single edit.
func lexicalDistance(aStr string, bStr string) int {
	if aStr == bStr {
		return 0
	}

	a := strings.ToLower(aStr)
	b := strings.ToLower(bStr)
	if a == b {
		return 1
	}

	d := make([][]int, len(a)+1)
	for i := range d {
		d[i] = make([]int, len(b)+1)
		d[i][0] = i
	}
	for j := 1; j <= len(b); j++ {
		d[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			min := d[i-1][j] + 1
			if v := d[i][j-1] + 1; v < min {
				min = v
			}
			if v := d[i-1][j-1] + cost; v < min {
				min = v
			}
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				if v := d[i-2][j-2] + cost; v < min {
					min = v
				}
			}

			d[i][j] = min
		}
	}

	return d[len(a)][len(b)]
}
