// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaview

package schemaview

import (
	"regexp"
	"strings"
)

// Kind classifies a schema node.
type Kind int

const (
	// KindNull is a scalar null node.
	KindNull Kind = iota
	// KindNumber is a scalar number node (integer is an alias).
	KindNumber
	// KindBoolean is a scalar boolean node.
	KindBoolean
	// KindString is a scalar string node.
	KindString
	// KindMixed is a union of several scalar kinds.
	KindMixed
	// KindArray is an array node.
	KindArray
	// KindObject is an object node.
	KindObject
	// KindReference points to a property of the document root.
	KindReference
)

// kindNames maps schema type keywords to node kinds.
var kindNames = map[string]Kind{
	"null":    KindNull,
	"number":  KindNumber,
	"integer": KindNumber,
	"boolean": KindBoolean,
	"string":  KindString,
	"array":   KindArray,
	"object":  KindObject,
}

// String returns schema keyword for kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindString:
		return "string"
	case KindMixed:
		return "mixed"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindReference:
		return "reference"
	default:
		return "unknown"
	}
}

// isScalar reports whether kind renders a single literal.
func (k Kind) isScalar() bool {
	return k <= KindMixed
}

// FoldStyle selects how container children are laid out.
type FoldStyle int

const (
	// FoldAuto picks inline or block from the first emitted child.
	FoldAuto FoldStyle = iota
	// FoldInline keeps all children on the opening line.
	FoldInline
	// FoldBlock puts every child on its own indented line.
	FoldBlock
)

// Schema is one immutable node of the schema tree.
//
// Exactly one shape pointer matching Kind is set: Scalar for null, number,
// boolean, string and mixed nodes, Array, Object or Ref otherwise.
type Schema struct {
	Kind        Kind
	Title       string
	Description string
	// Examples holds declared examples; only the first one is used.
	Examples []any
	Default  any
	// HasDefault distinguishes an explicit null default from an absent one.
	HasDefault bool

	Scalar *ScalarShape
	Array  *ArrayShape
	Object *ObjectShape
	Ref    *RefShape
}

// ScalarShape describes scalar and mixed nodes.
type ScalarShape struct {
	// Kinds lists declared scalar kinds; one entry unless node is mixed.
	Kinds []Kind
	// Enum holds ordered literal alternatives.
	Enum    []any
	HasEnum bool
}

// ArrayShape describes array nodes.
type ArrayShape struct {
	Items        *Schema
	PrefixItems  []*Schema
	ExampleItems []any
	// HasExampleItems distinguishes an explicit empty list from an absent one.
	HasExampleItems bool
	FoldStyle       FoldStyle
}

// ObjectShape describes object nodes.
type ObjectShape struct {
	Properties []Property
	Patterns   []PatternProperty
	// ExampleKeys drives pattern-keyed rendering.
	ExampleKeys []string
	FoldStyle   FoldStyle
}

// Property is one named object property in declaration order.
type Property struct {
	Name   string
	Schema *Schema
}

// PatternProperty is one patternProperties entry compiled at parse time.
type PatternProperty struct {
	Pattern string
	Schema  *Schema
	re      *regexp.Regexp
}

// RefShape describes $ref nodes.
type RefShape struct {
	// Target is the raw $ref value, for example "#/properties/widget".
	Target string
}

// Document is a parsed schema document.
type Document struct {
	Root *Schema
}

// validShape reports whether node is non-nil and carries the shape pointer its Kind requires.
func (s *Schema) validShape() bool {
	if s == nil {
		return false
	}

	switch s.Kind {
	case KindNull, KindNumber, KindBoolean, KindString, KindMixed:
		return true
	case KindArray:
		return s.Array != nil
	case KindObject:
		return s.Object != nil
	case KindReference:
		return s.Ref != nil
	default:
		return false
	}
}

// shapeLabel names node kind for malformed-node errors.
func shapeLabel(s *Schema) string {
	if s == nil {
		return "(nil)"
	}

	return s.Kind.String()
}

// documented reports whether node carries title or description text.
func (s *Schema) documented() bool {
	return strings.TrimSpace(s.Title) != "" || strings.TrimSpace(s.Description) != ""
}

// property returns named property schema of an object node.
func (s *Schema) property(name string) (*Schema, bool) {
	if s == nil || s.Object == nil {
		return nil, false
	}

	for _, prop := range s.Object.Properties {
		if prop.Name == name {
			return prop.Schema, true
		}
	}

	return nil, false
}

// patternKeyed reports whether object renders from exampleKeys and patternProperties.
func (s *Schema) patternKeyed() bool {
	return s.Object != nil && len(s.Object.Patterns) > 0 && len(s.Object.ExampleKeys) > 0
}

// typeLabel renders declared node type for annotations.
func (s *Schema) typeLabel() string {
	switch s.Kind {
	case KindMixed:
		if s.Scalar == nil {
			return s.Kind.String()
		}

		names := make([]string, 0, len(s.Scalar.Kinds))
		for _, kind := range s.Scalar.Kinds {
			names = append(names, kind.String())
		}

		return strings.Join(names, " | ")
	default:
		return s.Kind.String()
	}
}

// clone returns a shallow copy with its own shape struct so overrides never leak into the document.
func (s *Schema) clone() *Schema {
	out := *s
	if s.Scalar != nil {
		shape := *s.Scalar
		out.Scalar = &shape
	}

	if s.Array != nil {
		shape := *s.Array
		out.Array = &shape
	}

	if s.Object != nil {
		shape := *s.Object
		out.Object = &shape
	}

	if s.Ref != nil {
		shape := *s.Ref
		out.Ref = &shape
	}

	return &out
}

// match returns first pattern property, in declaration order, whose expression finds key.
func (o *ObjectShape) match(key string) (*PatternProperty, bool) {
	for index := range o.Patterns {
		if o.Patterns[index].re.MatchString(key) {
			return &o.Patterns[index], true
		}
	}

	return nil, false
}
