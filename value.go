// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaview

package schemaview

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ObjectValue is a decoded mapping literal that keeps declared key order.
type ObjectValue struct {
	keys   []string
	values map[string]any
}

// NewObjectValue returns empty ordered mapping literal.
func NewObjectValue() *ObjectValue {
	return &ObjectValue{values: make(map[string]any)}
}

// Set stores value under key, appending key on first use.
func (o *ObjectValue) Set(key string, value any) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}

	o.values[key] = value
}

// Get returns value stored under key.
func (o *ObjectValue) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}

	value, ok := o.values[key]
	return value, ok
}

// Keys returns keys in declaration order.
func (o *ObjectValue) Keys() []string {
	if o == nil {
		return nil
	}

	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// MarshalJSON encodes mapping with keys in declaration order.
func (o *ObjectValue) MarshalJSON() ([]byte, error) {
	var out bytes.Buffer
	out.WriteByte('{')
	for index, key := range o.Keys() {
		if index > 0 {
			out.WriteByte(',')
		}

		keyData, err := encodeJSONInline(key)
		if err != nil {
			return nil, err
		}

		valueData, err := encodeJSONInline(o.values[key])
		if err != nil {
			return nil, err
		}

		out.Write(keyData)
		out.WriteByte(':')
		out.Write(valueData)
	}

	out.WriteByte('}')
	return out.Bytes(), nil
}

// decodeValue converts yaml.Node into literal value keeping mapping order.
func decodeValue(node *yaml.Node) (any, error) {
	if node == nil {
		return nil, nil
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}

		return decodeValue(node.Content[0])

	case yaml.AliasNode:
		return decodeValue(node.Alias)

	case yaml.MappingNode:
		out := NewObjectValue()
		for index := 0; index+1 < len(node.Content); index += 2 {
			value, err := decodeValue(node.Content[index+1])
			if err != nil {
				return nil, err
			}

			out.Set(node.Content[index].Value, value)
		}

		return out, nil

	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			value, err := decodeValue(item)
			if err != nil {
				return nil, err
			}

			out = append(out, value)
		}

		return out, nil

	case yaml.ScalarNode:
		// timestamps stay textual, JSON has no such type
		if node.Tag == "!!timestamp" {
			return node.Value, nil
		}

		var value any
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}

		return value, nil

	default:
		return nil, fmt.Errorf("line %d: unexpected yaml node kind %d", node.Line, node.Kind)
	}
}

// literalText renders literal value as single-line JSON text.
func literalText(value any) string {
	data, err := encodeJSONInline(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}

	return string(data)
}

// encodeJSONInline marshals value without HTML escaping or trailing newline.
func encodeJSONInline(value any) ([]byte, error) {
	var out bytes.Buffer
	encoder := json.NewEncoder(&out)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return nil, err
	}

	return bytes.TrimRight(out.Bytes(), "\n"), nil
}

// literalCategory picks style category from the dynamic type of a literal.
func literalCategory(value any) Category {
	switch value.(type) {
	case nil:
		return CategoryNull
	case bool:
		return CategoryBoolean
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, json.Number:
		return CategoryNumber
	default:
		return CategoryString
	}
}
