// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaview

package schemaview

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	"sort"
	"strings"
	"sync"
	"text/template"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

// htmlClassPrefix prefixes CSS classes of the html presenter.
const htmlClassPrefix = "schemaview"

// templateFS stores built-in templates embedded into the package.
//
//go:embed templates/*.gotmpl
var templateFS embed.FS

// builtInTemplateFiles maps template formats to embedded file paths.
var builtInTemplateFiles = map[Format]string{
	FormatMarkdown: "templates/layout.md.gotmpl",
	FormatHTML:     "templates/layout.html.gotmpl",
}

var (
	descriptionPolicyOnce sync.Once
	descriptionPolicy     *bluemonday.Policy
)

// layoutView is the root view model passed to templates.
type layoutView struct {
	Title      string
	SourcePath string
	Sections   []sectionView
}

// sectionView represents one layout section.
type sectionView struct {
	ID          string
	Heading     string
	HasHeader   bool
	Active      bool
	Description string
	Attributes  []Attribute
	Code        string
	Links       []linkView

	DescriptionHTML htmltemplate.HTML
	CodeHTML        htmltemplate.HTML
}

// linkView is one cross-reference found in section code.
type linkView struct {
	Target string
	Text   string
}

// markdownPresenter renders layout through text/template into CommonMark.
type markdownPresenter struct {
	template   *template.Template
	title      string
	sourcePath string
	wrapWidth  int
}

// Present implements Presenter.
func (p *markdownPresenter) Present(w io.Writer, layout *Layout) error {
	view := layoutView{
		Title:      p.title,
		SourcePath: escapeBackticks(p.sourcePath),
		Sections:   make([]sectionView, 0, len(layout.Sections)),
	}

	text := PlainStyles()
	for _, section := range layout.Sections {
		item := newSectionView(section)
		if section.Header != nil {
			item.Description = strings.Join(descriptionLines(section.Header.Description, p.wrapWidth), "\n")
			item.Attributes = escapeAttributes(section.Header.Attributes)
		}

		item.Code = sectionCode(section, text, PlainLink)
		item.Links = sectionLinks(section)
		view.Sections = append(view.Sections, item)
	}

	var out strings.Builder
	if err := p.template.Execute(&out, view); err != nil {
		return fmt.Errorf("%w: %w", ErrExecuteTemplate, err)
	}

	_, err := io.WriteString(w, tidyMarkdown(out.String()))
	return err
}

// htmlPresenter renders layout through html/template into an HTML fragment.
type htmlPresenter struct {
	template *htmltemplate.Template
	title    string
	styles   StyleSheet
}

// Present implements Presenter.
func (p *htmlPresenter) Present(w io.Writer, layout *Layout) error {
	view := layoutView{
		Title:    p.title,
		Sections: make([]sectionView, 0, len(layout.Sections)),
	}

	for _, section := range layout.Sections {
		item := newSectionView(section)
		if section.Header != nil {
			item.Attributes = section.Header.Attributes
			item.DescriptionHTML = descriptionHTML(section.Header.Description)
		}

		//nolint:gosec // every token text is escaped by the class style sheet.
		item.CodeHTML = htmltemplate.HTML(sectionCode(section, p.styles, htmlLink))
		view.Sections = append(view.Sections, item)
	}

	if err := p.template.Execute(w, view); err != nil {
		return fmt.Errorf("%w: %w", ErrExecuteTemplate, err)
	}

	return nil
}

// newSectionView copies presentation-independent section fields.
func newSectionView(section *Section) sectionView {
	item := sectionView{
		ID:        section.ID,
		HasHeader: section.Header != nil,
		Active:    section.Active,
	}

	if section.Header != nil {
		item.Heading = section.Header.Heading()
		if item.Heading == "" {
			item.Heading = section.ID
		}
	}

	return item
}

// sectionCode renders section lines through style sheet and link primitive.
func sectionCode(section *Section, styles StyleSheet, link LinkFunc) string {
	lines := make([]string, 0, len(section.Lines))
	for _, line := range section.Lines {
		var out strings.Builder
		out.WriteString(strings.Repeat(textIndent, line.Indent))
		for _, token := range line.Tokens {
			if token.Kind == TokenSpace {
				out.WriteString(token.Text)
				continue
			}

			text := styles.Style(token.Category)(token.Text)
			if token.Kind == TokenReference {
				text = link(token.Anchor, text)
			}

			out.WriteString(text)
		}

		lines = append(lines, out.String())
	}

	return strings.Join(lines, "\n")
}

// sectionLinks lists unique reference targets of section in order of appearance.
func sectionLinks(section *Section) []linkView {
	var out []linkView
	seen := make(map[string]struct{})
	for _, line := range section.Lines {
		for _, token := range line.Tokens {
			if token.Kind != TokenReference {
				continue
			}

			if _, ok := seen[token.Anchor]; ok {
				continue
			}

			seen[token.Anchor] = struct{}{}
			out = append(out, linkView{Target: token.Anchor, Text: token.Text})
		}
	}

	return out
}

// escapeAttributes escapes backticks for inline code rendering.
func escapeAttributes(attrs []Attribute) []Attribute {
	out := make([]Attribute, 0, len(attrs))
	for _, attr := range attrs {
		out = append(out, Attribute{Name: attr.Name, Value: escapeBackticks(attr.Value)})
	}

	return out
}

// htmlLink renders an in-page anchor link; content is already escaped.
func htmlLink(target, content string) string {
	if target == "" {
		return content
	}

	return `<a href="#` + htmltemplate.HTMLEscapeString(target) + `">` + content + `</a>`
}

// descriptionHTML converts markdown description into sanitized HTML.
func descriptionHTML(description string) htmltemplate.HTML {
	description = strings.TrimSpace(unixNewlines(description))
	if description == "" {
		return ""
	}

	extensions := parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags | mdhtml.HrefTargetBlank})
	rendered := markdown.ToHTML([]byte(description), parser.NewWithExtensions(extensions), renderer)

	//nolint:gosec // output of the sanitizer policy.
	return htmltemplate.HTML(strings.TrimSpace(string(descriptionSanitizer().SanitizeBytes(rendered))))
}

// descriptionSanitizer returns shared policy for user-provided description markup.
func descriptionSanitizer() *bluemonday.Policy {
	descriptionPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		descriptionPolicy = policy
	})

	return descriptionPolicy
}

// BuiltinTemplateNames returns formats that have a built-in template.
func BuiltinTemplateNames() []string {
	names := make([]string, 0, len(builtInTemplateFiles))
	for format := range builtInTemplateFiles {
		names = append(names, string(format))
	}

	sort.Strings(names)
	return names
}

// BuiltinTemplate returns built-in template text for format.
func BuiltinTemplate(format Format) (string, error) {
	normalized, err := normalizeFormat(format)
	if err != nil {
		return "", err
	}

	path, ok := builtInTemplateFiles[normalized]
	if !ok {
		return "", fmt.Errorf("%w %q: no template", ErrUnknownFormat, format)
	}

	data, err := templateFS.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrParseTemplate, err)
	}

	return string(data), nil
}

// resolveMarkdownTemplate parses custom or built-in markdown template.
func resolveMarkdownTemplate(custom string) (*template.Template, error) {
	text, name, err := templateSource(FormatMarkdown, custom)
	if err != nil {
		return nil, err
	}

	parsed, err := template.New(name).Funcs(template.FuncMap{"code": escapeBackticks}).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrParseTemplate, name, err)
	}

	return parsed, nil
}

// resolveHTMLTemplate parses custom or built-in html template.
func resolveHTMLTemplate(custom string) (*htmltemplate.Template, error) {
	text, name, err := templateSource(FormatHTML, custom)
	if err != nil {
		return nil, err
	}

	parsed, err := htmltemplate.New(name).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrParseTemplate, name, err)
	}

	return parsed, nil
}

// templateSource picks custom template text over the built-in one.
func templateSource(format Format, custom string) (string, string, error) {
	if strings.TrimSpace(custom) != "" {
		return custom, "custom", nil
	}

	text, err := BuiltinTemplate(format)
	if err != nil {
		return "", "", err
	}

	return text, string(format), nil
}

// escapeBackticks makes value safe inside a markdown code span.
func escapeBackticks(value string) string {
	return strings.ReplaceAll(value, "`", "\\`")
}

// tidyMarkdown trims trailing blanks, squeezes blank-line runs outside fences
// and ends the document with exactly one newline.
func tidyMarkdown(text string) string {
	var out strings.Builder
	fence := false
	pendingBlank := false
	for _, line := range strings.Split(unixNewlines(text), "\n") {
		line = strings.TrimRight(line, " \t")
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			fence = !fence
		} else if !fence && strings.TrimSpace(line) == "" {
			pendingBlank = out.Len() > 0
			continue
		}

		if pendingBlank {
			out.WriteByte('\n')
			pendingBlank = false
		}

		out.WriteString(line)
		out.WriteByte('\n')
	}

	return out.String()
}
