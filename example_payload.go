// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaview

package schemaview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ExampleFormatJSON encodes example payload as JSON.
	ExampleFormatJSON ExampleFormat = "json"
	// ExampleFormatYAML encodes example payload as YAML.
	ExampleFormatYAML ExampleFormat = "yaml"
)

// ExampleFormat configures output format for generated example payload.
type ExampleFormat string

// exampleBuilder converts schema tree into the example document it describes.
type exampleBuilder struct {
	doc        *Document
	activeRefs map[string]int
	path       []string
}

// GenerateExampleJSON returns example payload encoded as pretty JSON.
func GenerateExampleJSON(schemaBytes []byte) ([]byte, error) {
	doc, err := ParseDocument(schemaBytes)
	if err != nil {
		return nil, err
	}

	return doc.ExampleJSON()
}

// GenerateExampleYAML returns example payload encoded as YAML with schema comments.
func GenerateExampleYAML(schemaBytes []byte) ([]byte, error) {
	doc, err := ParseDocument(schemaBytes)
	if err != nil {
		return nil, err
	}

	return doc.ExampleYAML()
}

// GenerateExample returns example payload encoded in selected format.
func GenerateExample(schemaBytes []byte, format ExampleFormat) ([]byte, error) {
	format, err := normalizeExampleFormat(format)
	if err != nil {
		return nil, err
	}

	switch format {
	case ExampleFormatJSON:
		return GenerateExampleJSON(schemaBytes)
	case ExampleFormatYAML:
		return GenerateExampleYAML(schemaBytes)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownExampleFormat, format)
	}
}

// ExampleValue builds the example document with references expanded.
//
// Objects are returned as *ObjectValue to keep declaration order.
func (d *Document) ExampleValue() (any, error) {
	builder := newExampleBuilder(d)
	return builder.buildNode(d.Root)
}

// ExampleJSON encodes example document as pretty JSON.
func (d *Document) ExampleJSON() ([]byte, error) {
	value, err := d.ExampleValue()
	if err != nil {
		return nil, err
	}

	data, err := marshalExampleJSON(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeExampleJSON, err)
	}

	return data, nil
}

// ExampleYAML encodes example document as YAML, commenting keys with title and description.
func (d *Document) ExampleYAML() ([]byte, error) {
	value, err := d.ExampleValue()
	if err != nil {
		return nil, err
	}

	rootNode, err := yamlNodeForValue(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeExampleYAML, err)
	}

	builder := newExampleBuilder(d)
	builder.annotateYAMLNode(rootNode, d.Root)

	data, err := marshalExampleYAMLNode(rootNode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeExampleYAML, err)
	}

	return data, nil
}

// newExampleBuilder returns builder with empty reference guard.
func newExampleBuilder(doc *Document) *exampleBuilder {
	return &exampleBuilder{
		doc:        doc,
		activeRefs: make(map[string]int),
	}
}

// normalizeExampleFormat validates and normalizes caller format value.
func normalizeExampleFormat(format ExampleFormat) (ExampleFormat, error) {
	normalized := ExampleFormat(strings.ToLower(strings.TrimSpace(string(format))))
	switch normalized {
	case "", ExampleFormatJSON:
		return ExampleFormatJSON, nil
	case "yml", ExampleFormatYAML:
		return ExampleFormatYAML, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownExampleFormat, format)
	}
}

// buildNode recursively builds example value for one schema node.
func (builder *exampleBuilder) buildNode(node *Schema) (any, error) {
	if !node.validShape() {
		return nil, newPathError(ErrUnsupportedType, builder.path, shapeLabel(node))
	}

	switch node.Kind {
	case KindNull, KindNumber, KindBoolean, KindString, KindMixed:
		if values, ok := enumValues(node); ok {
			return values[0], nil
		}

		return scalarExample(node, builder.path)
	case KindArray:
		return builder.buildArray(node)
	case KindObject:
		if node.patternKeyed() {
			return builder.buildPatternObject(node)
		}

		return builder.buildObject(node)
	case KindReference:
		return builder.buildReference(node)
	default:
		return nil, newPathError(ErrUnsupportedType, builder.path, node.Kind.String())
	}
}

// buildArray materializes element examples with their item schemas.
func (builder *exampleBuilder) buildArray(node *Schema) ([]any, error) {
	elements, err := arrayElements(node, builder.path)
	if err != nil {
		return nil, err
	}

	out := make([]any, 0, len(elements))
	for _, element := range elements {
		value, err := builder.buildNode(element)
		if err != nil {
			return nil, err
		}

		out = append(out, value)
	}

	return out, nil
}

// buildObject materializes visible properties in declaration order.
func (builder *exampleBuilder) buildObject(node *Schema) (*ObjectValue, error) {
	out := NewObjectValue()
	for _, prop := range visibleProperties(node) {
		builder.path = append(builder.path, prop.Name)
		value, err := builder.buildNode(prop.childSchema())
		builder.path = builder.path[:len(builder.path)-1]
		if err != nil {
			return nil, err
		}

		out.Set(prop.Name, value)
	}

	return out, nil
}

// buildPatternObject materializes example keys; unmatched keys keep their raw example value.
func (builder *exampleBuilder) buildPatternObject(node *Schema) (*ObjectValue, error) {
	driving, _ := drivingExample(node)

	out := NewObjectValue()
	for _, key := range node.Object.ExampleKeys {
		schema, ok := patternEntry(node, key)
		if !ok {
			if driving != nil {
				raw, _ := driving.Get(key)
				out.Set(key, raw)
			}

			continue
		}

		builder.path = append(builder.path, key)
		value, err := builder.buildNode(schema)
		builder.path = builder.path[:len(builder.path)-1]
		if err != nil {
			return nil, err
		}

		out.Set(key, value)
	}

	return out, nil
}

// buildReference expands reference target value under the active-reference guard.
func (builder *exampleBuilder) buildReference(node *Schema) (any, error) {
	target, err := builder.doc.resolveReference(node.Ref.Target, builder.path)
	if err != nil {
		return nil, err
	}

	release, ok := builder.enterReference(target.id)
	if !ok {
		return nil, newPathError(ErrCyclicReference, builder.path, node.Ref.Target)
	}
	defer release()

	return builder.buildNode(target.schema)
}

// enterReference registers active target and returns release callback.
func (builder *exampleBuilder) enterReference(id string) (func(), bool) {
	if builder.activeRefs[id] > 0 {
		return nil, false
	}

	builder.activeRefs[id]++
	return func() {
		builder.activeRefs[id]--
		if builder.activeRefs[id] <= 0 {
			delete(builder.activeRefs, id)
		}
	}, true
}

// annotateYAMLNode assigns schema title/description comments to YAML map keys.
func (builder *exampleBuilder) annotateYAMLNode(node *yaml.Node, schema *Schema) {
	resolved, release := builder.resolveSchema(schema)
	if release != nil {
		defer release()
	}

	if resolved == nil {
		return
	}

	switch node.Kind {
	case yaml.MappingNode:
		if resolved.Object == nil {
			return
		}

		for index := 0; index+1 < len(node.Content); index += 2 {
			keyNode := node.Content[index]
			property, ok := mappingKeySchema(resolved, keyNode.Value)
			if !ok {
				continue
			}

			if comment := schemaKeyComment(property); comment != "" {
				keyNode.HeadComment = comment
			}

			builder.annotateYAMLNode(node.Content[index+1], property)
		}
	case yaml.SequenceNode:
		if resolved.Array == nil {
			return
		}

		for index, item := range node.Content {
			if itemNode := itemSchema(resolved, index); itemNode != nil {
				builder.annotateYAMLNode(item, itemNode)
			}
		}
	}
}

// resolveSchema follows reference node to its target while guarding cycles.
func (builder *exampleBuilder) resolveSchema(schema *Schema) (*Schema, func()) {
	if !schema.validShape() {
		return nil, nil
	}

	if schema.Kind != KindReference {
		return schema, nil
	}

	target, err := builder.doc.resolveReference(schema.Ref.Target, nil)
	if err != nil {
		return nil, nil
	}

	release, ok := builder.enterReference(target.id)
	if !ok {
		return nil, nil
	}

	return target.schema, release
}

// mappingKeySchema returns declared or pattern-matched schema for mapping key.
func mappingKeySchema(schema *Schema, key string) (*Schema, bool) {
	if schema.patternKeyed() {
		pattern, ok := schema.Object.match(key)
		if !ok {
			return nil, false
		}

		return pattern.Schema, true
	}

	return schema.property(key)
}

// schemaKeyComment builds YAML key comment from schema title and description.
func schemaKeyComment(schema *Schema) string {
	title := strings.TrimSpace(schema.Title)
	description := strings.TrimSpace(schema.Description)

	switch {
	case title == "" && description == "":
		return ""
	case title == "":
		return normalizeYAMLComment(description)
	case description == "", title == description:
		return normalizeYAMLComment(title)
	default:
		return normalizeYAMLComment(title + "\n" + description)
	}
}

// normalizeYAMLComment drops blank lines from comment body.
func normalizeYAMLComment(comment string) string {
	lines := strings.Split(unixNewlines(comment), "\n")
	normalized := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		normalized = append(normalized, strings.TrimRight(line, " \t"))
	}

	return strings.Join(normalized, "\n")
}

// marshalExampleJSON serializes example payload as pretty JSON.
func marshalExampleJSON(value any) ([]byte, error) {
	var out bytes.Buffer
	encoder := json.NewEncoder(&out)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(value); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// marshalExampleYAMLNode serializes example payload as YAML.
func marshalExampleYAMLNode(node *yaml.Node) ([]byte, error) {
	document := &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{node},
	}

	var out bytes.Buffer
	encoder := yaml.NewEncoder(&out)
	encoder.SetIndent(2)

	if err := encoder.Encode(document); err != nil {
		return nil, err
	}

	if err := encoder.Close(); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// yamlNodeForValue builds yaml.Node tree from decoded example value.
func yamlNodeForValue(value any) (*yaml.Node, error) {
	switch typed := value.(type) {
	case nil:
		return yamlScalarNode("!!null", "null"), nil

	case bool:
		return yamlScalarNode("!!bool", strconv.FormatBool(typed)), nil

	case string:
		return yamlScalarNode("!!str", typed), nil

	case int:
		return yamlScalarNode("!!int", strconv.Itoa(typed)), nil

	case int64:
		return yamlScalarNode("!!int", strconv.FormatInt(typed, 10)), nil

	case uint64:
		return yamlScalarNode("!!int", strconv.FormatUint(typed, 10)), nil

	case float64:
		return yamlScalarNode("!!float", strconv.FormatFloat(typed, 'g', -1, 64)), nil

	case *ObjectValue:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range typed.Keys() {
			item, _ := typed.Get(key)
			valueNode, err := yamlNodeForValue(item)
			if err != nil {
				return nil, err
			}

			node.Content = append(node.Content, yamlScalarNode("!!str", key), valueNode)
		}

		return node, nil

	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range typed {
			valueNode, err := yamlNodeForValue(item)
			if err != nil {
				return nil, err
			}

			node.Content = append(node.Content, valueNode)
		}

		return node, nil

	default:
		node := &yaml.Node{}
		if err := node.Encode(typed); err != nil {
			return nil, err
		}

		return node, nil
	}
}

// yamlScalarNode creates one scalar yaml.Node with explicit tag.
func yamlScalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   tag,
		Value: value,
	}
}
