// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaview

package schemaview

import (
	"errors"
	"strings"
)

var (
	// ErrReadSchemaFile is returned when schema file loading fails.
	ErrReadSchemaFile = errors.New("read schema file")
	// ErrDecodeSchema is returned when schema YAML/JSON decoding fails.
	ErrDecodeSchema = errors.New("decode schema")
	// ErrSchemaRootType is returned when schema root is not a mapping.
	ErrSchemaRootType = errors.New("schema root must be an object")
	// ErrUnsupportedType is returned when a node type is not one of the recognized kinds.
	ErrUnsupportedType = errors.New("unsupported type")
	// ErrInvalidFoldStyle is returned when foldStyle is not inline, block or auto.
	ErrInvalidFoldStyle = errors.New("invalid fold style")
	// ErrInvalidPattern is returned when a patternProperties key is not a valid regular expression.
	ErrInvalidPattern = errors.New("invalid pattern property")
	// ErrMissingExample is returned when a scalar node has neither examples nor default.
	ErrMissingExample = errors.New("missing example")
	// ErrUnreachableToken is returned when emission requests an unknown punctuation kind.
	ErrUnreachableToken = errors.New("unreachable token")
	// ErrUnresolvedReference is returned when $ref does not point to a root property.
	ErrUnresolvedReference = errors.New("unresolved reference")
	// ErrCyclicReference is returned when a $ref chain points back to itself.
	ErrCyclicReference = errors.New("cyclic reference")
	// ErrUnknownFormat is returned when requested output format is not supported.
	ErrUnknownFormat = errors.New("unknown output format")
	// ErrParseTemplate is returned when built-in or custom template parsing fails.
	ErrParseTemplate = errors.New("parse template")
	// ErrExecuteTemplate is returned when template execution fails.
	ErrExecuteTemplate = errors.New("execute template")
	// ErrUnknownExampleFormat is returned when example payload format is not supported.
	ErrUnknownExampleFormat = errors.New("unknown example format")
	// ErrEncodeExampleJSON is returned when example JSON encoding fails.
	ErrEncodeExampleJSON = errors.New("encode example json")
	// ErrEncodeExampleYAML is returned when example YAML encoding fails.
	ErrEncodeExampleYAML = errors.New("encode example yaml")
)

// PathError reports a schema failure together with the property path where it happened.
type PathError struct {
	// Err is one of the package sentinel errors.
	Err error
	// Path is the dot-joined property path, empty for the document root.
	Path string
	// Type is the offending type name or reference, when relevant.
	Type string
}

// Error implements error.
func (e *PathError) Error() string {
	var out strings.Builder
	out.WriteString(e.Err.Error())
	if e.Type != "" {
		out.WriteString(" ")
		out.WriteString(quoteDetail(e.Type))
	}

	out.WriteString(" at ")
	out.WriteString(pathLabel(e.Path))
	return out.String()
}

// Unwrap returns the sentinel error.
func (e *PathError) Unwrap() error {
	return e.Err
}

// newPathError builds PathError for sentinel, path segments and detail.
func newPathError(err error, path []string, detail string) *PathError {
	return &PathError{
		Err:  err,
		Path: joinPath(path),
		Type: detail,
	}
}

// pathLabel renders empty root path as readable marker.
func pathLabel(path string) string {
	if path == "" {
		return "(root)"
	}

	return path
}

// quoteDetail wraps detail value in double quotes.
func quoteDetail(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `\"`) + `"`
}
