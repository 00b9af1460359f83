// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaview

package schemaview

// plannedProperty is one object property selected for rendering with its forwarded example.
type plannedProperty struct {
	Property
	example    any
	hasExample bool
}

// scalarExample resolves representative literal: examples[0], else default.
func scalarExample(node *Schema, path []string) (any, error) {
	if len(node.Examples) > 0 {
		return node.Examples[0], nil
	}

	if node.HasDefault {
		return node.Default, nil
	}

	return nil, newPathError(ErrMissingExample, path, "")
}

// enumValues returns enum alternatives when node declares a non-empty enum.
func enumValues(node *Schema) ([]any, bool) {
	if node.Scalar == nil || !node.Scalar.HasEnum || len(node.Scalar.Enum) == 0 {
		return nil, false
	}

	return node.Scalar.Enum, true
}

// arrayExamples returns element examples: exampleItems, else list default, else none.
func arrayExamples(node *Schema) []any {
	if node.Array.HasExampleItems {
		return node.Array.ExampleItems
	}

	if node.HasDefault {
		if items, ok := node.Default.([]any); ok {
			return items
		}
	}

	return nil
}

// itemSchema selects prefixItems[index] when in bounds, else shared items schema.
func itemSchema(node *Schema, index int) *Schema {
	if index < len(node.Array.PrefixItems) {
		return node.Array.PrefixItems[index]
	}

	return node.Array.Items
}

// arrayElements pairs every element example with its merged item schema.
func arrayElements(node *Schema, path []string) ([]*Schema, error) {
	examples := arrayExamples(node)
	out := make([]*Schema, 0, len(examples))
	for index, example := range examples {
		schema := itemSchema(node, index)
		if schema == nil {
			return nil, newPathError(ErrUnsupportedType, path, "items")
		}

		out = append(out, withExample(schema, example))
	}

	return out, nil
}

// drivingExample returns object example that decides which properties appear.
func drivingExample(node *Schema) (*ObjectValue, bool) {
	if len(node.Examples) == 0 {
		return nil, false
	}

	object, ok := node.Examples[0].(*ObjectValue)
	return object, ok
}

// visibleProperties returns declared properties minus those a driving example omits.
func visibleProperties(node *Schema) []plannedProperty {
	driving, hasDriving := drivingExample(node)

	out := make([]plannedProperty, 0, len(node.Object.Properties))
	for _, prop := range node.Object.Properties {
		planned := plannedProperty{Property: prop}
		if hasDriving {
			value, ok := driving.Get(prop.Name)
			if !ok {
				continue
			}

			planned.example = value
			planned.hasExample = true
		}

		out = append(out, planned)
	}

	return out
}

// childSchema returns property schema merged with its forwarded example.
func (p plannedProperty) childSchema() *Schema {
	if !p.hasExample {
		return p.Schema
	}

	return withExample(p.Schema, p.example)
}

// withExample returns schema copy where example value overrides the schema's own examples.
func withExample(node *Schema, value any) *Schema {
	if !node.validShape() {
		return node
	}

	switch node.Kind {
	case KindReference:
		return node
	case KindArray:
		items, ok := value.([]any)
		if !ok {
			return node
		}

		out := node.clone()
		out.Array.ExampleItems = items
		out.Array.HasExampleItems = true
		return out
	case KindObject:
		out := node.clone()
		out.Examples = []any{value}
		if object, ok := value.(*ObjectValue); ok && len(node.Object.Patterns) > 0 {
			out.Object.ExampleKeys = object.Keys()
		}

		return out
	default:
		out := node.clone()
		out.Examples = []any{value}
		return out
	}
}

// patternEntry resolves schema for one example key of a pattern-keyed object.
func patternEntry(node *Schema, key string) (*Schema, bool) {
	pattern, ok := node.Object.match(key)
	if !ok {
		return nil, false
	}

	if driving, ok := drivingExample(node); ok {
		if value, exists := driving.Get(key); exists {
			return withExample(pattern.Schema, value), true
		}
	}

	return pattern.Schema, true
}

// opensContainer reports whether rendering node starts with an opening bracket or brace.
func opensContainer(node *Schema) bool {
	return node.Kind == KindArray || node.Kind == KindObject
}
