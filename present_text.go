// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaview

package schemaview

import (
	"bufio"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// textIndent is written once per indentation level.
	textIndent = "  "
	// textComment prefixes header lines.
	textComment = "# "
	// textActiveComment prefixes header lines of the active section.
	textActiveComment = "#> "
)

// TextPresenter writes layout as indented text with comment headers.
type TextPresenter struct {
	Styles    StyleSheet
	Link      LinkFunc
	WrapWidth int
}

// Present implements Presenter.
func (p *TextPresenter) Present(w io.Writer, layout *Layout) error {
	out := bufio.NewWriter(w)
	for index, section := range layout.Sections {
		if index > 0 && section.Header != nil {
			out.WriteString("\n")
		}

		if section.Header != nil {
			p.writeHeader(out, section)
		}

		for _, line := range section.Lines {
			out.WriteString(strings.Repeat(textIndent, line.Indent))
			for _, token := range line.Tokens {
				out.WriteString(p.token(token))
			}

			out.WriteString("\n")
		}
	}

	return out.Flush()
}

// writeHeader writes section annotation as comment lines.
func (p *TextPresenter) writeHeader(out *bufio.Writer, section *Section) {
	prefix := textComment
	if section.Active {
		prefix = textActiveComment
	}

	heading := "[" + section.ID + "]"
	if title := collapseSpace(section.Header.Title); title != "" {
		heading += " " + title
	}

	out.WriteString(prefix + heading + "\n")
	for _, line := range descriptionLines(section.Header.Description, normalizeWrapWidth(p.WrapWidth)) {
		out.WriteString(strings.TrimRight(prefix+line, " ") + "\n")
	}
}

// token renders one token through the style sheet and link primitive.
func (p *TextPresenter) token(token Token) string {
	if token.Kind == TokenSpace {
		return token.Text
	}

	styles := p.Styles
	if styles == nil {
		styles = PlainStyles()
	}

	text := styles.Style(token.Category)(token.Text)
	if token.Kind == TokenReference && p.Link != nil {
		return p.Link(token.Anchor, text)
	}

	return text
}

// blockMarkers start markdown lines that are kept verbatim instead of re-wrapped.
var blockMarkers = []string{"#", ">", "- ", "* ", "+ ", "|", "---", "***", "___"}

// orderedListItem matches "1. " and "1) " list markers.
var orderedListItem = regexp.MustCompile(`^[0-9]+[.)] `)

// descriptionLines splits description into display lines.
//
// Plain paragraphs are re-wrapped at width; fences, lists, quotes, tables and
// indented code keep their original lines. Runs of blank lines become one.
func descriptionLines(text string, width int) []string {
	var (
		out   []string
		words []string
		fence bool
	)

	flush := func() {
		out = append(out, wrapWords(words, width)...)
		words = words[:0]
	}

	for _, line := range strings.Split(strings.TrimSpace(unixNewlines(text)), "\n") {
		line = strings.TrimRight(line, " \t")
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "```"):
			flush()
			fence = !fence
			out = append(out, line)
		case fence:
			out = append(out, line)
		case trimmed == "":
			flush()
			if n := len(out); n > 0 && out[n-1] != "" {
				out = append(out, "")
			}
		case verbatimLine(line):
			flush()
			out = append(out, line)
		default:
			words = append(words, strings.Fields(trimmed)...)
		}
	}

	flush()
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}

	return out
}

// verbatimLine reports whether line is markdown structure or indented code.
func verbatimLine(line string) bool {
	if strings.HasPrefix(line, "\t") || strings.HasPrefix(line, "    ") {
		return true
	}

	trimmed := strings.TrimSpace(line)
	for _, marker := range blockMarkers {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}

	return orderedListItem.MatchString(trimmed)
}

// wrapWords greedily packs words into lines of at most width runes; width <= 0 disables wrapping.
func wrapWords(words []string, width int) []string {
	if len(words) == 0 {
		return nil
	}

	var out []string
	var line strings.Builder
	lineLen := 0
	for _, word := range words {
		wordLen := utf8.RuneCountInString(word)
		if lineLen > 0 && width > 0 && lineLen+1+wordLen > width {
			out = append(out, line.String())
			line.Reset()
			lineLen = 0
		}

		if lineLen > 0 {
			line.WriteByte(' ')
			lineLen++
		}

		line.WriteString(word)
		lineLen += wordLen
	}

	return append(out, line.String())
}
