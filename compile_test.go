// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaview

package schemaview

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompileFixtureText(t *testing.T) {
	t.Parallel()

	got, err := RenderFile(filepath.Join("testdata", "schema.fixture.yaml"), Options{})
	if err != nil {
		t.Fatalf("RenderFile: %v", err)
	}

	want := strings.Join([]string{
		`{`,
		``,
		`# [name] Service Name`,
		`# Human-readable service name.`,
		`name: "demo",`,
		``,
		`# [server] Server`,
		`# Listener settings.`,
		`server: {`,
		`  host: "0.0.0.0",`,
		``,
		`# [server.port] Port`,
		`# TCP port to listen on.`,
		`port: 8080,`,
		`},`,
		``,
		`# [mode]`,
		`# Processing mode.`,
		`mode: "safe" | "fast",`,
		`tags: ["alpha", "beta"],`,
		`limits: {cpu: 0.5, memory: "512Mi"},`,
		``,
		`# [labels]`,
		`# Free-form labels.`,
		`labels: {`,
		`  team: "core",`,
		`  env: "prod",`,
		`},`,
		``,
		`# [backup]`,
		`# Backup listener.`,
		`backup: See server,`,
		`}`,
	}, "\n") + "\n"

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fixture text mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileIsDeterministic(t *testing.T) {
	t.Parallel()

	doc, err := ParseFile(filepath.Join("testdata", "schema.fixture.yaml"))
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}

	first, err := doc.Compile(Options{ActiveAnchor: "server.port"})
	if err != nil {
		t.Fatalf("Compile first: %v", err)
	}

	second, err := doc.Compile(Options{ActiveAnchor: "server.port"})
	if err != nil {
		t.Fatalf("Compile second: %v", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("layouts differ between runs (-first +second):\n%s", diff)
	}
}

func TestCompileSectionIDsAreUnique(t *testing.T) {
	t.Parallel()

	layout := compileFixture(t, Options{})
	seen := make(map[string]struct{})
	for _, section := range layout.Sections {
		if section.Header == nil {
			continue
		}

		if _, exists := seen[section.ID]; exists {
			t.Fatalf("duplicate section id %q", section.ID)
		}

		seen[section.ID] = struct{}{}
	}

	want := []Anchor{
		{ID: "name", Title: "Service Name"},
		{ID: "server", Title: "Server"},
		{ID: "server.port", Title: "Port"},
		{ID: "mode", Title: "Processing mode."},
		{ID: "labels", Title: "Free-form labels."},
		{ID: "backup", Title: "Backup listener."},
	}
	if diff := cmp.Diff(want, layout.Anchors()); diff != "" {
		t.Fatalf("anchors mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileNormalizesSectionIndent(t *testing.T) {
	t.Parallel()

	layout := compileFixture(t, Options{})
	for _, section := range layout.Sections {
		minIndent := -1
		for _, line := range section.Lines {
			if len(line.Tokens) == 0 {
				continue
			}

			if minIndent < 0 || line.Indent < minIndent {
				minIndent = line.Indent
			}
		}

		if minIndent != 0 {
			t.Fatalf("section %q min indent = %d, want 0", section.ID, minIndent)
		}
	}
}

func TestCompileDropsEmptySections(t *testing.T) {
	t.Parallel()

	layout := compileFixture(t, Options{})
	for _, section := range layout.Sections {
		if len(section.Lines) == 0 {
			t.Fatalf("section %q has no lines", section.ID)
		}
	}
}

func TestCompileMarksActiveSection(t *testing.T) {
	t.Parallel()

	layout := compileFixture(t, Options{ActiveAnchor: "#server.port"})
	active := 0
	for _, section := range layout.Sections {
		if !section.Active {
			continue
		}

		active++
		if section.ID != "server.port" {
			t.Fatalf("active section = %q, want server.port", section.ID)
		}
	}

	if active != 1 {
		t.Fatalf("active sections = %d, want 1", active)
	}
}

func TestCompileUnknownAnchorMarksNothing(t *testing.T) {
	t.Parallel()

	layout := compileFixture(t, Options{ActiveAnchor: "missing"})
	for _, section := range layout.Sections {
		if section.Active {
			t.Fatalf("unexpected active section %q", section.ID)
		}
	}
}

func TestCompileForcedInlineObjectIsOneLine(t *testing.T) {
	t.Parallel()

	got := renderText(t, `
type: object
properties:
  point:
    type: object
    foldStyle: inline
    properties:
      x: {type: number, examples: [1]}
      y: {type: number, examples: [2]}
`)

	want := "{\n  point: {x: 1, y: 2},\n}\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("inline fold mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileForcedInlinePinsNestedContainers(t *testing.T) {
	t.Parallel()

	got := renderText(t, `
type: object
properties:
  box:
    type: object
    foldStyle: inline
    properties:
      size:
        type: array
        items: {type: number}
        exampleItems: [1, 2]
      meta:
        type: object
        properties:
          tag: {type: string, examples: [a]}
`)

	want := "{\n  box: {size: [1, 2], meta: {tag: \"a\"}},\n}\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("pinned fold mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileForcedBlockArray(t *testing.T) {
	t.Parallel()

	got := renderText(t, `
type: object
properties:
  nums:
    type: array
    foldStyle: block
    items: {type: number}
    exampleItems: [1, 2]
`)

	want := "{\n  nums: [\n    1,\n    2,\n  ],\n}\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("block fold mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileAutoFoldKeepsNestedOpenerInline(t *testing.T) {
	t.Parallel()

	got := renderText(t, `
type: object
properties:
  list:
    type: array
    items:
      type: object
      properties:
        a: {type: number}
    exampleItems:
      - a: 1
`)

	want := "{\n  list: [{\n    a: 1,\n  }],\n}\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("auto fold mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileEmptyContainersCloseInline(t *testing.T) {
	t.Parallel()

	got := renderText(t, `
type: object
properties:
  empty:
    type: array
    items: {type: string}
    exampleItems: []
  none:
    type: object
`)

	want := "{\n  empty: [],\n  none: {},\n}\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("empty container mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileExampleItemsPropagateInOrder(t *testing.T) {
	t.Parallel()

	layout, err := Compile([]byte(`
type: array
items: {type: number}
exampleItems: [1, 2, 3]
`), Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	var literals []string
	for _, token := range layout.Tokens() {
		if token.Kind == TokenLiteral {
			literals = append(literals, token.Text)
		}
	}

	if diff := cmp.Diff([]string{"1", "2", "3"}, literals); diff != "" {
		t.Fatalf("literals mismatch (-want +got):\n%s", diff)
	}
}

func TestCompilePrefixItemsOverrideItems(t *testing.T) {
	t.Parallel()

	got := renderText(t, `
type: array
foldStyle: inline
prefixItems:
  - type: string
    enum: [x, y]
items: {type: number}
exampleItems: [x, 5]
`)

	want := "[\"x\" | \"y\", 5]\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("prefix items mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileOmitsPropertiesMissingFromExample(t *testing.T) {
	t.Parallel()

	got := renderText(t, `
type: object
examples:
  - a: 7
properties:
  a: {type: number}
  b: {type: number, examples: [9]}
`)

	assertContains(t, got, "a: 7,")
	assertNotContains(t, got, "b:")
}

func TestCompileForwardsExampleOverDefault(t *testing.T) {
	t.Parallel()

	got := renderText(t, `
type: object
properties:
  inner:
    type: object
    examples:
      - level: debug
        items: [x, y]
    properties:
      level: {type: string, default: info}
      items:
        type: array
        foldStyle: inline
        items: {type: string}
        exampleItems: [z]
`)

	assertContains(t, got, `level: "debug",`)
	assertContains(t, got, `items: ["x", "y"],`)
	assertNotContains(t, got, `"info"`)
	assertNotContains(t, got, `"z"`)
}

func TestCompileScalarFallsBackToDefault(t *testing.T) {
	t.Parallel()

	got := renderText(t, `
type: object
properties:
  flag: {type: boolean, default: false}
  nothing: {type: "null", default: null}
  mixed: {type: [string, number], examples: [3]}
`)

	assertContains(t, got, "flag: false,")
	assertContains(t, got, "nothing: null,")
	assertContains(t, got, "mixed: 3,")
}

func TestCompileEnumAlternation(t *testing.T) {
	t.Parallel()

	layout, err := Compile([]byte(`
type: object
properties:
  mode: {type: string, enum: [safe, fast]}
`), Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	var pipes, literals int
	for _, token := range layout.Tokens() {
		switch {
		case token.Kind == TokenSyntax && token.Text == "|":
			pipes++
		case token.Kind == TokenLiteral:
			literals++
		}
	}

	if pipes != 1 || literals != 2 {
		t.Fatalf("pipes = %d, literals = %d; want 1 and 2", pipes, literals)
	}
}

func TestCompilePatternKeysFallBackToPlaceholder(t *testing.T) {
	t.Parallel()

	layout, err := Compile([]byte(`
type: object
patternProperties:
  "^[a-z]+$":
    type: string
    examples: [v]
exampleKeys: [good, 1bad]
`), Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	tokens := layout.Tokens()
	var placeholder *Token
	for index := range tokens {
		if tokens[index].Category == CategoryPlaceholder {
			placeholder = &tokens[index]
		}
	}

	if placeholder == nil {
		t.Fatal("no placeholder token emitted")
	}

	if placeholder.Text != "error" || placeholder.Kind != TokenIdentifier {
		t.Fatalf("placeholder token = %+v", *placeholder)
	}

	got := renderLayout(t, layout)
	assertContains(t, got, `good: "v",`)
	assertContains(t, got, `1bad: error,`)
}

func TestCompilePatternFirstMatchWins(t *testing.T) {
	t.Parallel()

	got := renderText(t, `
type: object
foldStyle: inline
patternProperties:
  "^n":
    type: number
    examples: [1]
  ".*":
    type: string
    examples: [s]
exampleKeys: [num, str]
`)

	want := "{num: 1, str: \"s\"}\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("pattern match mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileReferenceIsAnchorNotExpansion(t *testing.T) {
	t.Parallel()

	layout, err := Compile([]byte(`
type: object
properties:
  widget:
    type: object
    title: Widget
    properties:
      size: {type: number, examples: [3]}
  other:
    $ref: "#/properties/widget"
`), Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	var refs []Token
	sizeKeys := 0
	for _, token := range layout.Tokens() {
		if token.Kind == TokenReference {
			refs = append(refs, token)
		}

		if token.Kind == TokenIdentifier && token.Text == "size" {
			sizeKeys++
		}
	}

	want := []Token{{Kind: TokenReference, Text: "See widget", Category: CategoryReference, Anchor: "widget"}}
	if diff := cmp.Diff(want, refs); diff != "" {
		t.Fatalf("reference tokens mismatch (-want +got):\n%s", diff)
	}

	if sizeKeys != 1 {
		t.Fatalf("referenced subtree rendered %d times, want 1", sizeKeys)
	}
}

func TestCompileReferenceChainResolvesToFinalTarget(t *testing.T) {
	t.Parallel()

	got := renderText(t, `
type: object
properties:
  a:
    type: object
    properties:
      b: {type: string, examples: [x]}
  alias:
    $ref: "#/properties/a/properties/b"
  second:
    $ref: "#/properties/alias"
`)

	assertContains(t, got, "alias: See b,")
	assertContains(t, got, "second: See b,")
}

func TestCompileKeyAnchorsUsePropertyPath(t *testing.T) {
	t.Parallel()

	layout := compileFixture(t, Options{})
	anchors := make(map[string]string)
	for _, token := range layout.Tokens() {
		if token.Kind == TokenIdentifier && token.Category == CategoryIdentifier {
			anchors[token.Text] = token.Anchor
		}
	}

	if anchors["port"] != "server.port" {
		t.Fatalf("port anchor = %q, want server.port", anchors["port"])
	}

	if anchors["team"] != "labels.team" {
		t.Fatalf("team anchor = %q, want labels.team", anchors["team"])
	}
}

func TestCompileDuplicateIDsDoNotReopenSections(t *testing.T) {
	t.Parallel()

	layout, err := Compile([]byte(`
type: object
properties:
  list:
    type: array
    foldStyle: block
    items:
      type: object
      properties:
        name: {type: string, description: Entry name.}
    exampleItems:
      - name: a
      - name: b
`), Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	headers := 0
	for _, section := range layout.Sections {
		if section.Header != nil {
			headers++
			if section.ID != "list.name" {
				t.Fatalf("unexpected section %q", section.ID)
			}
		}
	}

	if headers != 1 {
		t.Fatalf("header sections = %d, want 1", headers)
	}
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		schema   string
		wantErr  error
		wantPath string
	}{
		{
			name: "missing example",
			schema: `
type: object
properties:
  a:
    type: object
    properties:
      b: {type: string}
`,
			wantErr:  ErrMissingExample,
			wantPath: "a.b",
		},
		{
			name: "unsupported type",
			schema: `
type: object
properties:
  a: {type: tuple}
`,
			wantErr:  ErrUnsupportedType,
			wantPath: "a",
		},
		{
			name: "cyclic reference",
			schema: `
type: object
properties:
  a: {$ref: "#/properties/b"}
  b: {$ref: "#/properties/a"}
`,
			wantErr:  ErrCyclicReference,
			wantPath: "a",
		},
		{
			name: "unresolved reference",
			schema: `
type: object
properties:
  a: {$ref: "#/properties/missing"}
`,
			wantErr:  ErrUnresolvedReference,
			wantPath: "a",
		},
		{
			name: "array without item schema",
			schema: `
type: object
properties:
  a:
    type: array
    exampleItems: [1]
`,
			wantErr:  ErrUnsupportedType,
			wantPath: "a",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Compile([]byte(tt.schema), Options{})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Compile error = %v, want %v", err, tt.wantErr)
			}

			var pathErr *PathError
			if !errors.As(err, &pathErr) {
				t.Fatalf("Compile error %T is not *PathError", err)
			}

			if pathErr.Path != tt.wantPath {
				t.Fatalf("error path = %q, want %q", pathErr.Path, tt.wantPath)
			}
		})
	}
}

func TestCompileRejectsIncompleteSchemaShapes(t *testing.T) {
	t.Parallel()

	documented := func(node *Schema) *Schema {
		node.Description = "Documented."
		return node
	}

	tests := []struct {
		name     string
		root     *Schema
		wantPath string
	}{
		{name: "nil root"},
		{name: "array without shape", root: &Schema{Kind: KindArray}},
		{name: "object without shape", root: &Schema{Kind: KindObject}},
		{name: "reference without target", root: &Schema{Kind: KindReference}},
		{name: "unknown kind", root: &Schema{Kind: Kind(42)}},
		{
			name: "documented reference property without target",
			root: &Schema{Kind: KindObject, Object: &ObjectShape{
				Properties: []Property{{Name: "a", Schema: documented(&Schema{Kind: KindReference})}},
			}},
			wantPath: "a",
		},
		{
			name: "nil property schema",
			root: &Schema{Kind: KindObject, Object: &ObjectShape{
				Properties: []Property{{Name: "a"}},
			}},
			wantPath: "a",
		},
		{
			name: "reference to incomplete target",
			root: &Schema{Kind: KindObject, Object: &ObjectShape{
				Properties: []Property{
					{Name: "a", Schema: &Schema{Kind: KindReference, Ref: &RefShape{Target: "#/properties/b"}}},
					{Name: "b", Schema: documented(&Schema{Kind: KindObject})},
				},
			}},
			wantPath: "a",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := &Document{Root: tt.root}

			_, err := doc.Compile(Options{})
			if !errors.Is(err, ErrUnsupportedType) {
				t.Fatalf("Compile error = %v, want ErrUnsupportedType", err)
			}

			var pathErr *PathError
			if !errors.As(err, &pathErr) {
				t.Fatalf("Compile error %T is not *PathError", err)
			}

			if pathErr.Path != tt.wantPath {
				t.Fatalf("error path = %q, want %q", pathErr.Path, tt.wantPath)
			}

			if _, err := doc.ExampleValue(); !errors.Is(err, ErrUnsupportedType) {
				t.Fatalf("ExampleValue error = %v, want ErrUnsupportedType", err)
			}
		})
	}
}

func TestCompileMixedWithoutScalarShape(t *testing.T) {
	t.Parallel()

	doc := &Document{Root: &Schema{Kind: KindObject, Object: &ObjectShape{
		Properties: []Property{{Name: "any", Schema: &Schema{
			Kind:        KindMixed,
			Description: "Anything.",
			Examples:    []any{"x"},
		}}},
	}}}

	layout, err := doc.Compile(Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	assertContains(t, renderLayout(t, layout), `any: "x",`)
}

func TestCompilePatternObjectFollowsFoldStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		style string
		want  string
	}{
		{
			name:  "inline",
			style: "inline",
			want:  "{\n  env: {a: 1, b: 1},\n}\n",
		},
		{
			name:  "block",
			style: "block",
			want:  "{\n  env: {\n    a: 1,\n    b: 1,\n  },\n}\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := renderText(t, `
type: object
properties:
  env:
    type: object
    foldStyle: `+tt.style+`
    patternProperties:
      "^[a-z]+$": {type: number, examples: [1]}
    exampleKeys: [a, b]
`)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("pattern fold mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompileTrimsSpaceBeforeSectionBreak(t *testing.T) {
	t.Parallel()

	layout, err := Compile([]byte(`
type: object
foldStyle: inline
properties:
  a: {type: number, description: First., examples: [1]}
  b: {type: number, examples: [2]}
`), Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	for _, section := range layout.Sections {
		for _, line := range section.Lines {
			if len(line.Tokens) == 0 {
				t.Fatalf("section %q has an empty line", section.ID)
			}

			if last := line.Tokens[len(line.Tokens)-1]; last.Kind == TokenSpace {
				t.Fatalf("section %q line %q ends with a space token", section.ID, line.Text())
			}
		}
	}

	got := renderLayout(t, layout)
	assertContains(t, got, "a: 1,\n")
	assertContains(t, got, "b: 2}")
	assertNotContains(t, got, " \n")
}

func TestSyntaxTokenRejectsUnknownPunct(t *testing.T) {
	t.Parallel()

	_, err := syntaxToken(Punct(99))
	if !errors.Is(err, ErrUnreachableToken) {
		t.Fatalf("syntaxToken error = %v, want ErrUnreachableToken", err)
	}
}

func TestCompileDoesNotMutateDocument(t *testing.T) {
	t.Parallel()

	doc, err := ParseDocument([]byte(`
type: object
properties:
  inner:
    type: object
    examples:
      - list: [1]
    properties:
      list:
        type: array
        items: {type: number}
        exampleItems: [5, 6]
`))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}

	if _, err := doc.Compile(Options{}); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	inner, _ := doc.Root.property("inner")
	list, _ := inner.property("list")
	if diff := cmp.Diff([]any{5, 6}, list.Array.ExampleItems); diff != "" {
		t.Fatalf("document mutated (-want +got):\n%s", diff)
	}
}

// compileFixture compiles the shared schema fixture.
func compileFixture(t *testing.T, opt Options) *Layout {
	t.Helper()

	layout, err := CompileFile(filepath.Join("testdata", "schema.fixture.yaml"), opt)
	if err != nil {
		t.Fatalf("CompileFile: %v", err)
	}

	return layout
}

// renderText compiles schema text and presents it as plain text.
func renderText(t *testing.T, schema string) string {
	t.Helper()

	layout, err := Compile([]byte(schema), Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	return renderLayout(t, layout)
}

// renderLayout presents layout as plain text.
func renderLayout(t *testing.T, layout *Layout) string {
	t.Helper()

	var out strings.Builder
	presenter := &TextPresenter{Styles: PlainStyles(), Link: PlainLink}
	if err := presenter.Present(&out, layout); err != nil {
		t.Fatalf("Present: %v", err)
	}

	return out.String()
}

func assertContains(t *testing.T, haystack, needle string) {
	t.Helper()

	if !strings.Contains(haystack, needle) {
		t.Fatalf("missing substring %q in:\n%s", needle, haystack)
	}
}

func assertNotContains(t *testing.T, haystack, needle string) {
	t.Helper()

	if strings.Contains(haystack, needle) {
		t.Fatalf("unexpected substring %q in:\n%s", needle, haystack)
	}
}
