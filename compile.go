// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaview

package schemaview

import (
	"github.com/go-logr/logr"
)

// placeholderIdentifier is rendered for example keys no pattern property matches.
const placeholderIdentifier = "error"

// compiler is the render context of one compile pass.
//
// All layout state lives here and is threaded through every emit helper; the
// schema tree itself is never mutated.
type compiler struct {
	doc *Document
	log logr.Logger

	sections   []*Section
	sectionIDs map[string]struct{}

	indent    int
	lineBreak bool
	folds     []foldFrame

	// path holds property names of the nodes currently being visited.
	path []string
}

// Compile parses schema bytes and compiles them into a layout.
func Compile(schemaBytes []byte, opt Options) (*Layout, error) {
	doc, err := ParseDocument(schemaBytes)
	if err != nil {
		return nil, err
	}

	return doc.Compile(opt)
}

// CompileFile reads schema file and compiles it into a layout.
func CompileFile(path string, opt Options) (*Layout, error) {
	doc, err := ParseFile(path)
	if err != nil {
		return nil, err
	}

	return doc.Compile(opt)
}

// Compile walks the document once and returns a fresh layout.
//
// The active anchor is read once; callers re-run Compile when it changes.
func (d *Document) Compile(opt Options) (*Layout, error) {
	c := &compiler{
		doc:        d,
		log:        normalizeLogger(opt.Logger),
		sectionIDs: make(map[string]struct{}),
	}
	c.startSection("", nil)

	if err := c.node(d.Root); err != nil {
		return nil, err
	}

	layout := c.finish(normalizeAnchor(opt.ActiveAnchor))
	c.log.V(1).Info("compiled layout", "sections", len(layout.Sections))
	return layout, nil
}

// node dispatches emission by node kind.
func (c *compiler) node(node *Schema) error {
	if !node.validShape() {
		return newPathError(ErrUnsupportedType, c.path, shapeLabel(node))
	}

	switch node.Kind {
	case KindNull, KindNumber, KindBoolean, KindString, KindMixed:
		return c.scalar(node)
	case KindArray:
		return c.array(node)
	case KindObject:
		if node.patternKeyed() {
			return c.patternObject(node)
		}

		return c.object(node)
	case KindReference:
		return c.reference(node)
	default:
		return newPathError(ErrUnsupportedType, c.path, node.Kind.String())
	}
}

// scalar emits enum alternation or resolved example literal.
func (c *compiler) scalar(node *Schema) error {
	if values, ok := enumValues(node); ok {
		for index, value := range values {
			if index > 0 {
				c.pushSpace()
				if err := c.pushSyntax(PunctPipe); err != nil {
					return err
				}

				c.pushSpace()
			}

			c.pushLiteral(value)
		}

		return nil
	}

	value, err := scalarExample(node, c.path)
	if err != nil {
		return err
	}

	c.pushLiteral(value)
	return nil
}

// array emits element examples inside brackets.
func (c *compiler) array(node *Schema) error {
	elements, err := arrayElements(node, c.path)
	if err != nil {
		return err
	}

	plan := containerPlan{
		style:    node.Array.FoldStyle,
		children: len(elements),
	}
	if len(elements) > 0 {
		plan.leadsWithOpen = opensContainer(elements[0])
	}

	if err := c.openContainer(PunctOpenBracket, plan); err != nil {
		return err
	}

	for index, element := range elements {
		if err := c.node(element); err != nil {
			return err
		}

		if err := c.separate(index, len(elements)); err != nil {
			return err
		}
	}

	return c.closeContainer(PunctCloseBracket)
}

// object emits declared properties inside braces.
func (c *compiler) object(node *Schema) error {
	props := visibleProperties(node)
	plan := containerPlan{
		style:    node.Object.FoldStyle,
		children: len(props),
	}

	if err := c.openContainer(PunctOpenBrace, plan); err != nil {
		return err
	}

	for index, prop := range props {
		if err := c.property(prop, index, len(props)); err != nil {
			return err
		}
	}

	return c.closeContainer(PunctCloseBrace)
}

// property emits one "name: value" entry, inside its own section when documented.
func (c *compiler) property(prop plannedProperty, index, count int) error {
	c.enter(prop.Name)
	defer c.leave()

	if !prop.Schema.validShape() {
		return newPathError(ErrUnsupportedType, c.path, shapeLabel(prop.Schema))
	}

	opened := false
	if prop.Schema.documented() {
		opened = c.openSection(prop.Schema)
	}

	if err := c.key(prop.Name); err != nil {
		return err
	}

	if err := c.node(prop.childSchema()); err != nil {
		return err
	}

	if err := c.separate(index, count); err != nil {
		return err
	}

	if opened {
		c.closeSection()
	}

	return nil
}

// patternObject emits example keys matched against patternProperties.
// Entries are separated by the object's fold frame, so foldStyle applies as for declared properties.
func (c *compiler) patternObject(node *Schema) error {
	keys := node.Object.ExampleKeys
	plan := containerPlan{
		style:    node.Object.FoldStyle,
		children: len(keys),
	}

	if err := c.openContainer(PunctOpenBrace, plan); err != nil {
		return err
	}

	for index, key := range keys {
		if err := c.patternEntry(node, key, index, len(keys)); err != nil {
			return err
		}
	}

	return c.closeContainer(PunctCloseBrace)
}

// patternEntry emits one example key with the first matching pattern schema.
func (c *compiler) patternEntry(node *Schema, key string, index, count int) error {
	c.enter(key)
	defer c.leave()

	if err := c.key(key); err != nil {
		return err
	}

	schema, ok := patternEntry(node, key)
	if ok {
		if err := c.node(schema); err != nil {
			return err
		}
	} else {
		c.log.Info("no pattern property matches example key", "key", key, "path", joinPath(c.path))
		c.push(Token{
			Kind:     TokenIdentifier,
			Text:     placeholderIdentifier,
			Category: CategoryPlaceholder,
		})
	}

	return c.separate(index, count)
}

// reference emits a "See <name>" link to the target property's section.
func (c *compiler) reference(node *Schema) error {
	target, err := c.doc.resolveReference(node.Ref.Target, c.path)
	if err != nil {
		return err
	}

	c.push(Token{
		Kind:     TokenReference,
		Text:     "See " + target.name,
		Category: CategoryReference,
		Anchor:   target.id,
	})
	return nil
}

// key emits identifier, colon and space.
func (c *compiler) key(name string) error {
	c.push(Token{
		Kind:     TokenIdentifier,
		Text:     name,
		Category: CategoryIdentifier,
		Anchor:   joinPath(c.path),
	})

	if err := c.pushSyntax(PunctColon); err != nil {
		return err
	}

	c.pushSpace()
	return nil
}

// enter pushes property path segment.
func (c *compiler) enter(name string) {
	c.path = append(c.path, name)
}

// leave pops property path segment.
func (c *compiler) leave() {
	c.path = c.path[:len(c.path)-1]
}
