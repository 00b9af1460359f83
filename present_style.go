// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaview

package schemaview

import (
	"html"

	"github.com/fatih/color"
)

// StyleSheet looks up how a token category is styled.
type StyleSheet interface {
	Style(category Category) func(string) string
}

// StyleMap is a StyleSheet backed by a category map with a default style.
type StyleMap struct {
	Default func(string) string
	Map     map[Category]func(string) string
}

// Style returns style for category or the default one.
func (s *StyleMap) Style(category Category) func(string) string {
	if style, ok := s.Map[category]; ok && style != nil {
		return style
	}

	if s.Default != nil {
		return s.Default
	}

	return styleIdentity
}

// PlainStyles returns style sheet that leaves text untouched.
func PlainStyles() *StyleMap {
	return &StyleMap{Default: styleIdentity}
}

// ANSIStyles returns terminal color style sheet.
//
// Colors are always emitted; callers decide whether the output is a terminal.
func ANSIStyles() *StyleMap {
	return &StyleMap{
		Default: styleIdentity,
		Map: map[Category]func(string) string{
			CategorySyntax:      ansiStyle(color.FgHiBlack),
			CategoryNull:        ansiStyle(color.FgMagenta),
			CategoryNumber:      ansiStyle(color.FgCyan),
			CategoryBoolean:     ansiStyle(color.FgYellow),
			CategoryString:      ansiStyle(color.FgGreen),
			CategoryIdentifier:  ansiStyle(color.FgBlue),
			CategoryReference:   ansiStyle(color.FgHiBlue, color.Underline),
			CategoryPlaceholder: ansiStyle(color.FgRed, color.Bold),
		},
	}
}

// HTMLClassStyles returns style sheet wrapping escaped text in <span class="prefix-category">.
func HTMLClassStyles(prefix string) *StyleMap {
	styles := &StyleMap{
		Default: html.EscapeString,
		Map:     make(map[Category]func(string) string, len(categoryNames)),
	}

	for category, name := range categoryNames {
		class := prefix + "-" + name
		styles.Map[category] = func(text string) string {
			return `<span class="` + class + `">` + html.EscapeString(text) + `</span>`
		}
	}

	return styles
}

// ansiStyle builds always-on color function for attributes.
func ansiStyle(attrs ...color.Attribute) func(string) string {
	c := color.New(attrs...)
	c.EnableColor()
	sprint := c.SprintFunc()
	return func(text string) string {
		return sprint(text)
	}
}

// styleIdentity returns text unchanged.
func styleIdentity(text string) string {
	return text
}
