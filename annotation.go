// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaview

package schemaview

import (
	"strconv"
	"strings"
)

// Annotation is the header payload of a documented section.
type Annotation struct {
	Title       string
	Description string
	Attributes  []Attribute
}

// Attribute is a single name/value metadata item shown under a section header.
type Attribute struct {
	Name  string
	Value string
}

// Heading returns the title, falling back to the first description line.
func (a *Annotation) Heading() string {
	if a == nil {
		return ""
	}

	if title := collapseSpace(a.Title); title != "" {
		return title
	}

	first, _, _ := strings.Cut(strings.TrimSpace(unixNewlines(a.Description)), "\n")
	return collapseSpace(first)
}

// schemaAnnotation builds header annotation for a documented property node.
func schemaAnnotation(node *Schema) *Annotation {
	return &Annotation{
		Title:       strings.TrimSpace(node.Title),
		Description: strings.TrimSpace(node.Description),
		Attributes:  schemaAttributes(node),
	}
}

// schemaAttributes renders flat attribute list for one schema node.
func schemaAttributes(node *Schema) []Attribute {
	out := make(attributeList, 0, 6)
	out.add("Type", node.typeLabel())

	if node.HasDefault {
		out.add("Default", literalText(node.Default))
	}

	if node.Scalar != nil && node.Scalar.HasEnum {
		out.add("Enum", literalList(node.Scalar.Enum))
	}

	if len(node.Examples) > 0 {
		out.add("Examples", literalList(node.Examples))
	}

	switch node.Kind {
	case KindArray:
		if len(node.Array.PrefixItems) > 0 {
			out.add("Prefix items", strconv.Itoa(len(node.Array.PrefixItems)))
		}
	case KindObject:
		if len(node.Object.Properties) > 0 {
			out.add("Properties", strconv.Itoa(len(node.Object.Properties)))
		}

		if len(node.Object.Patterns) > 0 {
			patterns := make([]string, 0, len(node.Object.Patterns))
			for _, pattern := range node.Object.Patterns {
				patterns = append(patterns, pattern.Pattern)
			}

			out.add("Pattern properties", strings.Join(patterns, ", "))
		}
	case KindReference:
		out.add("Reference", node.Ref.Target)
	}

	return out
}

// attributeList collects attributes in display order.
type attributeList []Attribute

// add appends non-empty attribute value.
func (list *attributeList) add(name, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}

	*list = append(*list, Attribute{Name: name, Value: value})
}

// literalList renders literal values into comma-separated JSON texts.
func literalList(values []any) string {
	parts := make([]string, 0, len(values))
	for _, value := range values {
		parts = append(parts, literalText(value))
	}

	return strings.Join(parts, ", ")
}

// collapseSpace trims text and joins whitespace runs with single spaces.
func collapseSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// unixNewlines rewrites CRLF and lone CR line breaks as LF.
func unixNewlines(text string) string {
	return strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(text)
}
