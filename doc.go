// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaview

/*
Package schemaview compiles annotated schemas into navigable example documents.

A schema is a small JSON Schema-like tree (YAML or JSON) whose nodes carry
examples, defaults, enums, exampleItems and exampleKeys. Compile walks the tree
once and produces a Layout: an ordered list of sections, each holding indented
lines of classified tokens. Every documented property gets its own section whose
id is the dot-joined property path, so a viewer can link to it and mark it active.

Compile and print plain text:

	layout, err := schemaview.CompileFile("schema.yaml", schemaview.Options{})
	if err != nil {
		return err
	}

	err = (&schemaview.TextPresenter{Styles: schemaview.PlainStyles(), Link: schemaview.PlainLink}).
		Present(os.Stdout, layout)

Render markdown or html with built-in templates:

	out, err := schemaview.RenderFile("schema.yaml", schemaview.Options{
		Format:       schemaview.FormatMarkdown,
		ActiveAnchor: "server.port",
	})

List section anchors for navigation:

	for _, anchor := range layout.Anchors() {
		fmt.Println(anchor.ID, anchor.Title)
	}

Generate the example document itself, with references expanded:

	data, err := schemaview.GenerateExample(schemaBytes, schemaview.ExampleFormatYAML)

Compile never mutates the parsed Document; re-run it whenever the active anchor
changes.
*/
package schemaview
