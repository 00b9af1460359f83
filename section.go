// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaview

package schemaview

import "strings"

// push appends token to the current line, starting a line or a continuation section when needed.
func (c *compiler) push(token Token) {
	section := c.currentSection()
	if section.Closed {
		section = c.startSection("", nil)
	}

	if c.lineBreak || len(section.Lines) == 0 {
		section.Lines = append(section.Lines, &Line{Indent: c.indent})
		c.lineBreak = false
	}

	line := section.Lines[len(section.Lines)-1]
	line.Tokens = append(line.Tokens, token)
}

// pushSyntax appends punctuation token.
func (c *compiler) pushSyntax(punct Punct) error {
	token, err := syntaxToken(punct)
	if err != nil {
		return err
	}

	c.push(token)
	return nil
}

// pushSpace appends raw space token.
func (c *compiler) pushSpace() {
	c.push(Token{Kind: TokenSpace, Text: " ", Category: CategorySyntax})
}

// pushLiteral appends example value token.
func (c *compiler) pushLiteral(value any) {
	c.push(Token{
		Kind:     TokenLiteral,
		Text:     literalText(value),
		Category: literalCategory(value),
	})
}

// breakLine makes the next pushed token start a new line.
func (c *compiler) breakLine() {
	c.lineBreak = true
}

// currentSection returns the section receiving emitted tokens.
func (c *compiler) currentSection() *Section {
	return c.sections[len(c.sections)-1]
}

// startSection appends a new section; its first token always starts a new line.
func (c *compiler) startSection(id string, header *Annotation) *Section {
	section := &Section{ID: id, Header: header}
	c.sections = append(c.sections, section)
	return section
}

// openSection starts documented section for current property path.
//
// It returns false when the id was already used in this render, in which case
// the property renders without its own anchor.
func (c *compiler) openSection(node *Schema) bool {
	id := joinPath(c.path)
	if _, used := c.sectionIDs[id]; used {
		return false
	}

	c.sectionIDs[id] = struct{}{}
	c.startSection(id, schemaAnnotation(node))
	c.log.V(1).Info("open section", "id", id)
	return true
}

// closeSection closes current section; header-less sections stay open.
func (c *compiler) closeSection() {
	section := c.currentSection()
	if section.Header == nil || section.Closed {
		return
	}

	section.Closed = true
	c.log.V(1).Info("close section", "id", section.ID)
}

// finish drops empty sections, trims line-end spaces, normalizes indentation and marks the active section.
func (c *compiler) finish(activeAnchor string) *Layout {
	layout := &Layout{Sections: make([]*Section, 0, len(c.sections))}
	for _, section := range c.sections {
		lines := section.Lines[:0]
		for _, line := range section.Lines {
			trimTrailingSpace(line)
			if len(line.Tokens) > 0 {
				lines = append(lines, line)
			}
		}

		section.Lines = lines
		if len(section.Lines) == 0 {
			continue
		}

		normalizeIndent(section)
		section.Active = section.Header != nil && activeAnchor != "" && section.ID == activeAnchor
		layout.Sections = append(layout.Sections, section)
	}

	return layout
}

// trimTrailingSpace drops space tokens left at line end when a section break splits a line.
func trimTrailingSpace(line *Line) {
	end := len(line.Tokens)
	for end > 0 && line.Tokens[end-1].Kind == TokenSpace {
		end--
	}

	line.Tokens = line.Tokens[:end]
}

// normalizeIndent shifts section lines so the least indented non-empty line is at zero.
func normalizeIndent(section *Section) {
	base := -1
	for _, line := range section.Lines {
		if len(line.Tokens) == 0 {
			continue
		}

		if base < 0 || line.Indent < base {
			base = line.Indent
		}
	}

	if base <= 0 {
		return
	}

	for _, line := range section.Lines {
		line.Indent -= base
		if line.Indent < 0 {
			line.Indent = 0
		}
	}
}

// appendSegment returns a new path with segment appended.
func appendSegment(path []string, segment string) []string {
	out := make([]string, 0, len(path)+1)
	out = append(out, path...)
	return append(out, segment)
}

// joinPath joins property path segments with dots.
func joinPath(path []string) string {
	return strings.Join(path, ".")
}
