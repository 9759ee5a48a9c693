// Package catalog loads the YAML map catalog: a single document whose top
// level is a sequence of mappings, one per map.
package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"

	ferrors "git.home.luguber.info/inful/mappages/internal/foundation/errors"
	"gopkg.in/yaml.v3"
)

// Field names with a meaning to the page generator. Any other field is
// passed through to the page front-matter untouched.
const (
	FieldMapName     = "mapName"
	FieldURL         = "url"
	FieldDescription = "description"
	FieldMapType     = "mapType"
	FieldVersion     = "version"
	FieldImage       = "img"
)

// Record is one catalog entry in document order.
type Record struct {
	Index  int
	Line   int
	Fields map[string]any
}

// Load reads and decodes the catalog at path.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryParse, "failed to read catalog").
			Fatal().
			WithContext(ferrors.ContextPath, path).
			Build()
	}
	defer func() { _ = f.Close() }()

	return Parse(f, path)
}

// Parse decodes a catalog document from r. name identifies the source in
// diagnostics.
func Parse(r io.Reader, name string) ([]Record, error) {
	dec := yaml.NewDecoder(r)
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return []Record{}, nil
		}
		return nil, parseError(name, 0, "catalog is not valid YAML", err)
	}

	var extra yaml.Node
	switch err := dec.Decode(&extra); {
	case errors.Is(err, io.EOF):
	case err != nil:
		return nil, parseError(name, 0, "catalog is not valid YAML", err)
	default:
		return nil, parseError(name, extra.Line, "catalog must be a single YAML document", nil)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return []Record{}, nil
		}
		root = root.Content[0]
	}

	switch {
	case root.Kind == yaml.ScalarNode && root.Tag == "!!null":
		return []Record{}, nil
	case root.Kind != yaml.SequenceNode:
		return nil, parseError(name, root.Line, "catalog top level must be a sequence of maps", nil)
	}

	records := make([]Record, 0, len(root.Content))
	for i, item := range root.Content {
		if item.Kind != yaml.MappingNode {
			return nil, parseError(name, item.Line, fmt.Sprintf("catalog entry %d is not a mapping", i), nil).
				WithContext(ferrors.ContextRecordIndex, i)
		}
		fields := map[string]any{}
		if err := item.Decode(&fields); err != nil {
			return nil, parseError(name, item.Line, fmt.Sprintf("catalog entry %d cannot be decoded", i), err).
				WithContext(ferrors.ContextRecordIndex, i)
		}
		records = append(records, Record{Index: i, Line: item.Line, Fields: fields})
	}
	return records, nil
}

func parseError(name string, line int, msg string, cause error) *ferrors.ClassifiedError {
	b := ferrors.ParseError(msg).WithContext(ferrors.ContextPath, name)
	if line > 0 {
		b = b.WithContext(ferrors.ContextLine, line)
	}
	if cause != nil {
		b = b.WithCause(cause)
	}
	return b.Build()
}
