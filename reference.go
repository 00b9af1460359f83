// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaview

package schemaview

import "strings"

// referenceTarget is a resolved root property a $ref points to.
type referenceTarget struct {
	// id is the dot-joined property path, equal to the target section id.
	id     string
	name   string
	schema *Schema
}

// resolveReference resolves $ref against root properties, following reference chains.
//
// A pointer seen twice on the chain fails with ErrCyclicReference.
func (d *Document) resolveReference(ref string, path []string) (referenceTarget, error) {
	visited := make(map[string]struct{}, 2)
	current := strings.TrimSpace(ref)

	for {
		if _, seen := visited[current]; seen {
			return referenceTarget{}, newPathError(ErrCyclicReference, path, current)
		}

		visited[current] = struct{}{}

		names, ok := referenceSegments(current)
		if !ok {
			return referenceTarget{}, newPathError(ErrUnresolvedReference, path, current)
		}

		schema := d.Root
		for _, name := range names {
			schema, ok = schema.property(name)
			if !ok {
				return referenceTarget{}, newPathError(ErrUnresolvedReference, path, current)
			}
		}

		if !schema.validShape() {
			return referenceTarget{}, newPathError(ErrUnsupportedType, path, shapeLabel(schema))
		}

		if schema.Kind != KindReference {
			return referenceTarget{
				id:     joinPath(names),
				name:   names[len(names)-1],
				schema: schema,
			}, nil
		}

		current = strings.TrimSpace(schema.Ref.Target)
	}
}

// referenceSegments parses "#/properties/a/properties/b" into property names.
func referenceSegments(ref string) ([]string, bool) {
	if !strings.HasPrefix(ref, "#/") {
		return nil, false
	}

	tokens := strings.Split(strings.TrimPrefix(ref, "#/"), "/")
	if len(tokens) == 0 || len(tokens)%2 != 0 {
		return nil, false
	}

	names := make([]string, 0, len(tokens)/2)
	for index := 0; index < len(tokens); index += 2 {
		if tokens[index] != "properties" {
			return nil, false
		}

		name := decodeJSONPointerToken(tokens[index+1])
		if name == "" {
			return nil, false
		}

		names = append(names, name)
	}

	return names, true
}

// decodeJSONPointerToken unescapes one JSON pointer token.
func decodeJSONPointerToken(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	token = strings.ReplaceAll(token, "~0", "~")
	return token
}
