// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaview

package schemaview

// foldFrame is the layout state of one open container.
type foldFrame struct {
	// inline is true when children share the opening line.
	inline bool
	// indented is true when opening the container increased indentation.
	indented bool
	// pinned keeps auto-folded descendants inline under a forced-inline ancestor.
	pinned bool
}

// containerPlan is what a container knows about its children before emitting any of them.
type containerPlan struct {
	style    FoldStyle
	children int
	// leadsWithOpen is true when the first child starts with an opening bracket or brace.
	leadsWithOpen bool
}

// decideFold picks inline or block layout for container with given plan under parent frame.
func decideFold(plan containerPlan, parent *foldFrame) foldFrame {
	parentPinned := parent != nil && parent.pinned

	// empty containers close on the opening line
	if plan.children == 0 {
		return foldFrame{inline: true, pinned: parentPinned}
	}

	switch plan.style {
	case FoldInline:
		return foldFrame{inline: true, pinned: true}
	case FoldBlock:
		return foldFrame{inline: false}
	default:
		return foldFrame{
			inline: parentPinned || plan.leadsWithOpen,
			pinned: parentPinned,
		}
	}
}

// openContainer emits opening punctuation and commits fold decision for its children.
func (c *compiler) openContainer(open Punct, plan containerPlan) error {
	if err := c.pushSyntax(open); err != nil {
		return err
	}

	frame := decideFold(plan, c.topFold())
	if !frame.inline {
		c.breakLine()
		c.indent++
		frame.indented = true
	}

	c.folds = append(c.folds, frame)
	return nil
}

// separate terminates item at index of count according to the active fold.
//
// Inline containers get ", " between consecutive items; block containers end
// every item, the last one included, with "," and a line break.
func (c *compiler) separate(index, count int) error {
	frame := c.topFold()
	if frame == nil {
		return nil
	}

	if frame.inline {
		if index >= count-1 {
			return nil
		}

		if err := c.pushSyntax(PunctComma); err != nil {
			return err
		}

		c.pushSpace()
		return nil
	}

	if err := c.pushSyntax(PunctComma); err != nil {
		return err
	}

	c.breakLine()
	return nil
}

// closeContainer pops fold frame, restores indentation and emits closing punctuation.
func (c *compiler) closeContainer(closing Punct) error {
	if len(c.folds) > 0 {
		frame := c.folds[len(c.folds)-1]
		c.folds = c.folds[:len(c.folds)-1]
		if frame.indented {
			c.indent--
		}
	}

	return c.pushSyntax(closing)
}

// topFold returns innermost open container frame.
func (c *compiler) topFold() *foldFrame {
	if len(c.folds) == 0 {
		return nil
	}

	return &c.folds[len(c.folds)-1]
}
