// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaview

package schemaview

import "strconv"

// TokenKind classifies renderable atoms.
type TokenKind int

const (
	// TokenLiteral is an example value.
	TokenLiteral TokenKind = iota
	// TokenSyntax is punctuation.
	TokenSyntax
	// TokenIdentifier is a property name or pattern key.
	TokenIdentifier
	// TokenReference is a cross-reference link to another section.
	TokenReference
	// TokenSpace is a raw space.
	TokenSpace
)

// Category is the style lookup key for a token.
type Category int

const (
	CategorySyntax Category = iota
	CategoryNull
	CategoryNumber
	CategoryBoolean
	CategoryString
	CategoryIdentifier
	CategoryReference
	// CategoryPlaceholder marks the error identifier of an unmatched pattern key.
	CategoryPlaceholder
)

// categoryNames are stable names used by CSS classes and debug output.
var categoryNames = map[Category]string{
	CategorySyntax:      "syntax",
	CategoryNull:        "null",
	CategoryNumber:      "number",
	CategoryBoolean:     "boolean",
	CategoryString:      "string",
	CategoryIdentifier:  "identifier",
	CategoryReference:   "reference",
	CategoryPlaceholder: "placeholder",
}

// String returns category name.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}

	return "category(" + strconv.Itoa(int(c)) + ")"
}

// Punct enumerates syntax punctuation.
type Punct int

const (
	PunctOpenBrace Punct = iota
	PunctCloseBrace
	PunctOpenBracket
	PunctCloseBracket
	PunctColon
	PunctComma
	PunctPipe
)

// punctText maps punctuation kinds to their text.
var punctText = map[Punct]string{
	PunctOpenBrace:    "{",
	PunctCloseBrace:   "}",
	PunctOpenBracket:  "[",
	PunctCloseBracket: "]",
	PunctColon:        ":",
	PunctComma:        ",",
	PunctPipe:         "|",
}

// syntaxToken builds punctuation token, failing for unknown kinds.
func syntaxToken(punct Punct) (Token, error) {
	text, ok := punctText[punct]
	if !ok {
		return Token{}, &PathError{Err: ErrUnreachableToken, Type: "punct(" + strconv.Itoa(int(punct)) + ")"}
	}

	return Token{Kind: TokenSyntax, Text: text, Category: CategorySyntax}, nil
}

// Token is one renderable atom.
type Token struct {
	Kind TokenKind
	// Text is the display text; literals hold inline JSON.
	Text     string
	Category Category
	// Anchor is the section id an identifier belongs to or a reference links to.
	Anchor string
}

// Line is one output line of tokens.
type Line struct {
	Indent int
	Tokens []Token
}

// Text concatenates token texts without styling.
func (l *Line) Text() string {
	size := 0
	for _, token := range l.Tokens {
		size += len(token.Text)
	}

	out := make([]byte, 0, size)
	for _, token := range l.Tokens {
		out = append(out, token.Text...)
	}

	return string(out)
}

// Section is a contiguous chunk of lines, optionally headed by a property annotation.
type Section struct {
	// ID is the dot-joined property path; empty for continuation sections.
	ID     string
	Header *Annotation
	Closed bool
	// Active is set when ID equals the active anchor of the render.
	Active bool
	Lines  []*Line
}

// Layout is the complete compiled output of one render pass.
type Layout struct {
	Sections []*Section
}

// Anchor is one navigable documented section.
type Anchor struct {
	ID    string
	Title string
}

// Anchors lists documented sections in render order.
func (l *Layout) Anchors() []Anchor {
	out := make([]Anchor, 0, len(l.Sections))
	for _, section := range l.Sections {
		if section.Header == nil {
			continue
		}

		out = append(out, Anchor{ID: section.ID, Title: section.Header.Heading()})
	}

	return out
}

// Tokens returns every token of the layout in emission order.
func (l *Layout) Tokens() []Token {
	out := make([]Token, 0, 64)
	for _, section := range l.Sections {
		for _, line := range section.Lines {
			out = append(out, line.Tokens...)
		}
	}

	return out
}
