// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaview

package schemaview

import (
	"fmt"
	"io"
	"strings"
)

// Presenter writes a compiled layout in one output format.
type Presenter interface {
	Present(w io.Writer, layout *Layout) error
}

// LinkFunc renders content as a hyperlink to the section with the given anchor.
type LinkFunc func(target, content string) string

// PlainLink leaves content unchanged.
func PlainLink(_, content string) string {
	return content
}

// TerminalLink wraps content in an OSC 8 terminal hyperlink to "#target".
func TerminalLink(target, content string) string {
	if target == "" {
		return content
	}

	return "\x1b]8;;#" + target + "\x1b\\" + content + "\x1b]8;;\x1b\\"
}

// RenderFile reads schema from file, compiles it and renders selected format.
func RenderFile(path string, opt Options) (string, error) {
	doc, err := ParseFile(path)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(opt.SourcePath) == "" {
		opt.SourcePath = path
	}

	return doc.Render(opt)
}

// Render converts schema bytes into laid-out example text in selected format.
func Render(schemaBytes []byte, opt Options) (string, error) {
	doc, err := ParseDocument(schemaBytes)
	if err != nil {
		return "", err
	}

	return doc.Render(opt)
}

// Render compiles document from scratch and presents it.
func (d *Document) Render(opt Options) (string, error) {
	presenter, err := NewPresenter(opt)
	if err != nil {
		return "", err
	}

	layout, err := d.Compile(opt)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	if err := presenter.Present(&out, layout); err != nil {
		return "", err
	}

	return out.String(), nil
}

// NewPresenter returns built-in presenter for options format.
func NewPresenter(opt Options) (Presenter, error) {
	format, err := normalizeFormat(opt.Format)
	if err != nil {
		return nil, err
	}

	wrapWidth := normalizeWrapWidth(opt.WrapWidth)

	switch format {
	case FormatText:
		presenter := &TextPresenter{
			Styles:    PlainStyles(),
			Link:      PlainLink,
			WrapWidth: wrapWidth,
		}
		if opt.Color {
			presenter.Styles = ANSIStyles()
			presenter.Link = TerminalLink
		}

		return presenter, nil

	case FormatMarkdown:
		tpl, err := resolveMarkdownTemplate(opt.TemplateText)
		if err != nil {
			return nil, err
		}

		return &markdownPresenter{
			template:   tpl,
			title:      normalizeTitle(opt.Title),
			sourcePath: strings.TrimSpace(opt.SourcePath),
			wrapWidth:  wrapWidth,
		}, nil

	case FormatHTML:
		tpl, err := resolveHTMLTemplate(opt.TemplateText)
		if err != nil {
			return nil, err
		}

		return &htmlPresenter{
			template: tpl,
			title:    normalizeTitle(opt.Title),
			styles:   HTMLClassStyles(htmlClassPrefix),
		}, nil

	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}
