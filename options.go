// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaview

package schemaview

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
)

const (
	// defaultTitle is used when caller does not provide custom title.
	defaultTitle = "schema example"
	// defaultWrapWidth wraps plain description paragraphs at this width.
	defaultWrapWidth = 80
)

const (
	// FormatText renders plain or ANSI-colored text.
	FormatText Format = "text"
	// FormatMarkdown renders CommonMark with one fenced block per section.
	FormatMarkdown Format = "markdown"
	// FormatHTML renders an HTML fragment with one <section> per section.
	FormatHTML Format = "html"
)

// Format selects the presentation adapter.
type Format string

// Options configures compile and presentation.
type Options struct {
	// Title is the document heading for markdown output.
	Title string
	// SourcePath is shown as document source in markdown output.
	SourcePath string
	// Format selects output adapter; text when empty.
	Format Format
	// ActiveAnchor is the id of the currently navigated section, if any.
	ActiveAnchor string
	// WrapWidth wraps description paragraphs; 80 when not positive.
	WrapWidth int
	// Color enables ANSI colors and terminal hyperlinks for text output.
	Color bool
	// TemplateText replaces the built-in markdown or html template.
	TemplateText string
	// Logger receives compile diagnostics; discarded when unset.
	Logger logr.Logger
}

// FormatNames returns supported output format names.
func FormatNames() []string {
	return []string{string(FormatHTML), string(FormatMarkdown), string(FormatText)}
}

// normalizeFormat validates and normalizes caller format value.
func normalizeFormat(format Format) (Format, error) {
	normalized := Format(strings.ToLower(strings.TrimSpace(string(format))))
	switch normalized {
	case "":
		return FormatText, nil
	case "md":
		return FormatMarkdown, nil
	case FormatText, FormatMarkdown, FormatHTML:
		return normalized, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

// normalizeWrapWidth validates wrap width and falls back to default.
func normalizeWrapWidth(value int) int {
	if value <= 0 {
		return defaultWrapWidth
	}

	return value
}

// normalizeTitle falls back to default title.
func normalizeTitle(value string) string {
	if title := collapseSpace(value); title != "" {
		return title
	}

	return defaultTitle
}

// normalizeAnchor strips surrounding whitespace and a leading "#".
func normalizeAnchor(value string) string {
	return strings.TrimPrefix(strings.TrimSpace(value), "#")
}

// normalizeLogger replaces an unset logger with a discarding one.
func normalizeLogger(log logr.Logger) logr.Logger {
	if log.GetSink() == nil {
		return logr.Discard()
	}

	return log
}
