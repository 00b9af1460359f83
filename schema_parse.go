// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaview

package schemaview

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseFile reads schema document from file.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadSchemaFile, err)
	}

	return ParseDocument(data)
}

// ParseDocument decodes YAML or JSON schema bytes into a typed schema tree.
//
// Mapping order is preserved, so properties render in declaration order.
func ParseDocument(data []byte) (*Document, error) {
	var document yaml.Node
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeSchema, err)
	}

	root := resolveAlias(documentContent(&document))
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, ErrSchemaRootType
	}

	schema, err := parseSchemaNode(root, nil)
	if err != nil {
		return nil, err
	}

	return &Document{Root: schema}, nil
}

// documentContent unwraps yaml document node.
func documentContent(node *yaml.Node) *yaml.Node {
	if node == nil || node.Kind != yaml.DocumentNode {
		return node
	}

	if len(node.Content) == 0 {
		return nil
	}

	return node.Content[0]
}

// resolveAlias follows yaml alias nodes to their anchors.
func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}

	return node
}

// mappingField returns value node stored under key in yaml mapping.
func mappingField(node *yaml.Node, key string) *yaml.Node {
	for index := 0; index+1 < len(node.Content); index += 2 {
		if node.Content[index].Value == key {
			return resolveAlias(node.Content[index+1])
		}
	}

	return nil
}

// mappingEach calls fn for every key/value pair in declaration order.
func mappingEach(node *yaml.Node, fn func(key string, value *yaml.Node) error) error {
	for index := 0; index+1 < len(node.Content); index += 2 {
		if err := fn(node.Content[index].Value, resolveAlias(node.Content[index+1])); err != nil {
			return err
		}
	}

	return nil
}

// parseSchemaNode converts one schema mapping into typed node.
func parseSchemaNode(node *yaml.Node, path []string) (*Schema, error) {
	node = resolveAlias(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil, newPathError(ErrUnsupportedType, path, "non-object schema")
	}

	schema := &Schema{
		Title:       scalarText(mappingField(node, "title")),
		Description: scalarText(mappingField(node, "description")),
	}

	if raw := mappingField(node, "examples"); raw != nil {
		value, err := decodeValue(raw)
		if err != nil {
			return nil, newPathError(ErrDecodeSchema, path, err.Error())
		}

		if list, ok := value.([]any); ok {
			schema.Examples = list
		} else {
			schema.Examples = []any{value}
		}
	}

	if raw := mappingField(node, "default"); raw != nil {
		value, err := decodeValue(raw)
		if err != nil {
			return nil, newPathError(ErrDecodeSchema, path, err.Error())
		}

		schema.Default = value
		schema.HasDefault = true
	}

	if ref := mappingField(node, "$ref"); ref != nil {
		schema.Kind = KindReference
		schema.Ref = &RefShape{Target: strings.TrimSpace(ref.Value)}
		return schema, nil
	}

	kind, kinds, err := parseTypeKeyword(mappingField(node, "type"), path)
	if err != nil {
		return nil, err
	}

	schema.Kind = kind
	switch kind {
	case KindNull, KindNumber, KindBoolean, KindString, KindMixed:
		schema.Scalar, err = parseScalarShape(node, kinds, path)
	case KindArray:
		schema.Array, err = parseArrayShape(node, path)
	case KindObject:
		schema.Object, err = parseObjectShape(node, path)
	}

	if err != nil {
		return nil, err
	}

	return schema, nil
}

// parseTypeKeyword classifies "type" keyword as single kind or scalar union.
func parseTypeKeyword(node *yaml.Node, path []string) (Kind, []Kind, error) {
	if node == nil {
		return 0, nil, newPathError(ErrUnsupportedType, path, "(none)")
	}

	switch node.Kind {
	case yaml.ScalarNode:
		name := strings.ToLower(strings.TrimSpace(node.Value))
		kind, ok := kindNames[name]
		if !ok {
			return 0, nil, newPathError(ErrUnsupportedType, path, node.Value)
		}

		return kind, []Kind{kind}, nil

	case yaml.SequenceNode:
		kinds := make([]Kind, 0, len(node.Content))
		seen := make(map[Kind]struct{}, len(node.Content))
		for _, item := range node.Content {
			name := strings.ToLower(strings.TrimSpace(item.Value))
			kind, ok := kindNames[name]
			if !ok || !kind.isScalar() {
				return 0, nil, newPathError(ErrUnsupportedType, path, item.Value)
			}

			if _, exists := seen[kind]; exists {
				continue
			}

			seen[kind] = struct{}{}
			kinds = append(kinds, kind)
		}

		switch len(kinds) {
		case 0:
			return 0, nil, newPathError(ErrUnsupportedType, path, "[]")
		case 1:
			return kinds[0], kinds, nil
		default:
			return KindMixed, kinds, nil
		}

	default:
		return 0, nil, newPathError(ErrUnsupportedType, path, "non-scalar type keyword")
	}
}

// parseScalarShape reads enum alternatives of scalar node.
func parseScalarShape(node *yaml.Node, kinds []Kind, path []string) (*ScalarShape, error) {
	shape := &ScalarShape{Kinds: kinds}

	raw := mappingField(node, "enum")
	if raw == nil {
		return shape, nil
	}

	value, err := decodeValue(raw)
	if err != nil {
		return nil, newPathError(ErrDecodeSchema, path, err.Error())
	}

	values, ok := value.([]any)
	if !ok {
		return nil, newPathError(ErrDecodeSchema, path, "enum must be a list")
	}

	shape.Enum = values
	shape.HasEnum = true
	return shape, nil
}

// parseArrayShape reads items, prefixItems, exampleItems and foldStyle.
func parseArrayShape(node *yaml.Node, path []string) (*ArrayShape, error) {
	foldStyle, err := parseFoldStyle(mappingField(node, "foldStyle"), path)
	if err != nil {
		return nil, err
	}

	shape := &ArrayShape{FoldStyle: foldStyle}

	if raw := mappingField(node, "items"); raw != nil {
		shape.Items, err = parseSchemaNode(raw, path)
		if err != nil {
			return nil, err
		}
	}

	if raw := mappingField(node, "prefixItems"); raw != nil {
		if raw.Kind != yaml.SequenceNode {
			return nil, newPathError(ErrDecodeSchema, path, "prefixItems must be a list")
		}

		shape.PrefixItems = make([]*Schema, 0, len(raw.Content))
		for _, item := range raw.Content {
			itemSchema, err := parseSchemaNode(item, path)
			if err != nil {
				return nil, err
			}

			shape.PrefixItems = append(shape.PrefixItems, itemSchema)
		}
	}

	if raw := mappingField(node, "exampleItems"); raw != nil {
		value, err := decodeValue(raw)
		if err != nil {
			return nil, newPathError(ErrDecodeSchema, path, err.Error())
		}

		items, ok := value.([]any)
		if !ok {
			return nil, newPathError(ErrDecodeSchema, path, "exampleItems must be a list")
		}

		shape.ExampleItems = items
		shape.HasExampleItems = true
	}

	return shape, nil
}

// parseObjectShape reads properties, patternProperties, exampleKeys and foldStyle.
func parseObjectShape(node *yaml.Node, path []string) (*ObjectShape, error) {
	foldStyle, err := parseFoldStyle(mappingField(node, "foldStyle"), path)
	if err != nil {
		return nil, err
	}

	shape := &ObjectShape{FoldStyle: foldStyle}

	if raw := mappingField(node, "properties"); raw != nil && raw.Kind == yaml.MappingNode {
		err := mappingEach(raw, func(name string, value *yaml.Node) error {
			propSchema, err := parseSchemaNode(value, appendSegment(path, name))
			if err != nil {
				return err
			}

			shape.Properties = append(shape.Properties, Property{Name: name, Schema: propSchema})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if raw := mappingField(node, "patternProperties"); raw != nil && raw.Kind == yaml.MappingNode {
		err := mappingEach(raw, func(pattern string, value *yaml.Node) error {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return newPathError(ErrInvalidPattern, path, pattern)
			}

			patternSchema, err := parseSchemaNode(value, appendSegment(path, pattern))
			if err != nil {
				return err
			}

			shape.Patterns = append(shape.Patterns, PatternProperty{
				Pattern: pattern,
				Schema:  patternSchema,
				re:      re,
			})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if raw := mappingField(node, "exampleKeys"); raw != nil {
		if raw.Kind != yaml.SequenceNode {
			return nil, newPathError(ErrDecodeSchema, path, "exampleKeys must be a list")
		}

		for _, item := range raw.Content {
			shape.ExampleKeys = append(shape.ExampleKeys, item.Value)
		}
	}

	return shape, nil
}

// parseFoldStyle maps foldStyle keyword to tri-state fold style.
func parseFoldStyle(node *yaml.Node, path []string) (FoldStyle, error) {
	if node == nil {
		return FoldAuto, nil
	}

	switch strings.ToLower(strings.TrimSpace(node.Value)) {
	case "", "auto":
		return FoldAuto, nil
	case "inline":
		return FoldInline, nil
	case "block":
		return FoldBlock, nil
	default:
		return FoldAuto, newPathError(ErrInvalidFoldStyle, path, node.Value)
	}
}

// scalarText returns trimmed text of scalar yaml node.
func scalarText(node *yaml.Node) string {
	if node == nil || node.Kind != yaml.ScalarNode {
		return ""
	}

	return strings.TrimSpace(node.Value)
}
