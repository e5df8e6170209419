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
	"sort"

	"dario.cat/mergo"
	"github.com/botobag/lattice/model"
	"go.uber.org/zap"
)

// InjectAll patches everything models declare beyond their SDL onto target: interface type
// resolvers, enum value metadata, scalar functions and documentation. The passes are independent
// and may run in any order. Patches to types or members the target does not have are ignored.
func InjectAll(target Target, models []model.Model, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}

	InjectInterfaceResolvers(target, models)
	InjectEnums(target, models, logger)
	InjectScalars(target, models, logger)
	InjectComments(target, models)
}

// InjectInterfaceResolvers attaches the type resolvers of interface and union models.
func InjectInterfaceResolvers(target Target, models []model.Model) {
	for _, m := range models {
		if !model.IsAbstract(m) {
			continue
		}
		if resolver, ok := m.(model.TypeResolver); ok {
			target.SetTypeResolver(m.TypeName(), resolver)
		}
	}
}

// InjectEnums merges the value overrides of enum models onto the enum values of the same name:
// internal value, deprecation reason and description. Empty entries in an override keep what the
// schema already has.
func InjectEnums(target Target, models []model.Model, logger *zap.Logger) {
	for _, m := range models {
		enum, ok := m.(model.EnumModel)
		if !ok || !model.IsEnum(m) {
			continue
		}

		typeName := m.TypeName()
		values := enum.Values()
		for _, name := range sortedKeys(values) {
			current, exists := target.EnumValue(typeName, name)
			if !exists {
				continue
			}

			config := values[name]
			patch := EnumValue{
				Name:              name,
				DeprecationReason: config.DeprecationReason,
				Description:       config.Description,
			}
			if err := mergo.Merge(&current, patch, mergo.WithOverride); err != nil {
				logger.Error("Failed to merge enum value",
					zap.String("type", typeName),
					zap.String("value", name),
					zap.Error(err))
				continue
			}

			// Internal values are replaced, not merged.
			if config.Value != nil {
				current.Value = config.Value
			}

			target.SetEnumValue(typeName, current)
		}
	}
}

// InjectScalars attaches the functions of scalar models. A scalar model must implement Serialize,
// ParseValue and ParseLiteral; one that does not is reported and skipped.
func InjectScalars(target Target, models []model.Model, logger *zap.Logger) {
	for _, m := range models {
		if !model.IsScalar(m) {
			continue
		}

		coercer, ok := model.AsScalarCoercer(m)
		if !ok {
			logger.Error("Scalar type " + m.TypeName() + " has invalid impl.")
			continue
		}
		target.SetScalarCoercer(m.TypeName(), coercer)
	}
}

// InjectComments copies the documentation of documented models onto the descriptions of their
// types, fields, enum values and the root operation types and fields.
func InjectComments(target Target, models []model.Model) {
	for _, m := range models {
		documented, ok := m.(model.Documented)
		if !ok {
			continue
		}

		docs := documented.APIDocs()
		typeName := m.TypeName()

		if len(docs.Class) > 0 {
			target.SetTypeDescription(typeName, docs.Class)
		}
		for _, field := range sortedKeys(docs.Fields) {
			target.SetFieldDescription(typeName, field, docs.Fields[field])
		}

		for _, op := range Operations {
			rootName := target.RootTypeName(op)
			if len(rootName) == 0 {
				continue
			}

			description, fields := rootDocs(docs, op)
			if len(description) > 0 {
				target.SetTypeDescription(rootName, description)
			}
			for _, field := range sortedKeys(fields) {
				target.SetFieldDescription(rootName, field, fields[field])
			}
		}
	}
}

func rootDocs(docs model.Docs, op Operation) (string, map[string]string) {
	switch op {
	case Query:
		return docs.Query, docs.Queries
	case Mutation:
		return docs.Mutation, docs.Mutators
	case Subscription:
		return docs.Subscription, docs.Subscriptions
	}
	return "", nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
