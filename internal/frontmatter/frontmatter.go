// Package frontmatter reads and writes `---` delimited YAML front-matter
// blocks of the kind static site generators consume.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// Delimiter opens and closes a front-matter block.
const Delimiter = "---"

// ErrMissingClosingDelimiter indicates the document started with a
// front-matter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Style captures the newline sequence used when rendering a document.
type Style struct {
	Newline string
}

func (s Style) newline() string {
	if s.Newline == "" {
		return "\n"
	}
	return s.Newline
}

// Document is a page split into front-matter fields and body.
type Document struct {
	Fields map[string]any
	Body   []byte
}

// Render serializes the fields and emits
//
//	---
//	<fields>
//	---
//	<body>
//
// Fields are always rendered in sorted key order, so equal documents render to equal bytes.
func (d Document) Render(style Style) ([]byte, error) {
	raw, err := SerializeYAML(d.Fields, style)
	if err != nil {
		return nil, err
	}
	return Join(raw, d.Body, style), nil
}

// Join wraps raw YAML front-matter (without delimiters) in delimiter lines
// and appends the body.
func Join(frontmatter []byte, body []byte, style Style) []byte {
	nl := style.newline()
	line := []byte(Delimiter + nl)

	out := make([]byte, 0, 2*len(line)+len(frontmatter)+len(body))
	out = append(out, line...)
	out = append(out, frontmatter...)
	out = append(out, line...)
	out = append(out, body...)
	return out
}

// Split separates the front-matter block from the body.
//
// If the content does not start with a delimiter line, had is false and body
// is the full input.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)
	open := []byte(Delimiter + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + Delimiter + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	end := start + idx + len(nl)
	return content[start:end], content[start+idx+len(closeSeq):], true, nil
}

// Parse splits content and decodes its front-matter. Content without a
// front-matter block yields empty Fields and the whole input as Body.
func Parse(content []byte) (Document, error) {
	raw, body, _, err := Split(content)
	if err != nil {
		return Document{}, err
	}
	fields, err := ParseYAML(raw)
	if err != nil {
		return Document{}, err
	}
	return Document{Fields: fields, Body: body}, nil
}

// ParseYAML parses raw YAML front-matter (without delimiters) into a map.
func ParseYAML(frontmatter []byte) (map[string]any, error) {
	if len(frontmatter) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
