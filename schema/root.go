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

package schema

import (
	"context"

	"dario.cat/mergo"
	"github.com/botobag/lattice/model"
)

// MergedRoot collects the root resolvers of every model implementing model.RootProvider into one
// root value. Later models override fields of earlier ones. With separateByType the result holds
// one map per operation under "Query", "Mutation" and "Subscription"; otherwise all fields share a
// single map.
func MergedRoot(ctx context.Context, models []model.Model, req *model.RequestData, separateByType bool) (map[string]interface{}, error) {
	roots := map[Operation]map[string]interface{}{
		Query:        {},
		Mutation:     {},
		Subscription: {},
	}

	for _, m := range models {
		provider, ok := m.(model.RootProvider)
		if !ok {
			continue
		}

		resolvers := provider.RootResolvers(ctx, req)
		for _, op := range Operations {
			root := roots[op]
			if err := mergo.Merge(&root, resolverMap(resolvers, op), mergo.WithOverride); err != nil {
				return nil, err
			}
			roots[op] = root
		}
	}

	if separateByType {
		result := make(map[string]interface{}, len(Operations))
		for _, op := range Operations {
			result[string(op)] = roots[op]
		}
		return result, nil
	}

	result := map[string]interface{}{}
	for _, op := range Operations {
		if err := mergo.Merge(&result, roots[op], mergo.WithOverride); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func resolverMap(resolvers model.RootResolvers, op Operation) map[string]interface{} {
	var fields map[string]model.ResolverFunc
	switch op {
	case Query:
		fields = resolvers.Query
	case Mutation:
		fields = resolvers.Mutation
	case Subscription:
		fields = resolvers.Subscription
	}

	result := make(map[string]interface{}, len(fields))
	for name, resolver := range fields {
		result[name] = resolver
	}
	return result
}
