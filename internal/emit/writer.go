// Package emit writes map pages to the output directory.
package emit

import (
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/mappages/internal/foundation/errors"
	"git.home.luguber.info/inful/mappages/internal/frontmatter"
	"git.home.luguber.info/inful/mappages/internal/frontmatterops"
	"git.home.luguber.info/inful/mappages/internal/mappage"
	"git.home.luguber.info/inful/mappages/internal/render"
)

// PageExtension is appended to the slug to name the page file.
const PageExtension = ".html"

const (
	dirPermissions  = 0o755
	filePermissions = 0o644
)

// Options control how pages are rendered and written.
type Options struct {
	// CreateDir creates the output directory when it is missing instead of failing.
	CreateDir bool
	// BodyFormat selects how the description is rendered.
	BodyFormat render.Format
	// Fingerprint adds a content fingerprint to the front-matter.
	Fingerprint bool
}

// Writer writes one file per page into a fixed directory.
type Writer struct {
	dir  string
	opts Options
}

// NewWriter returns a Writer for dir.
func NewWriter(dir string, opts Options) *Writer {
	return &Writer{dir: dir, opts: opts}
}

// PathFor returns the file a page with slug is written to.
func (w *Writer) PathFor(slug string) string {
	return filepath.Join(w.dir, slug+PageExtension)
}

// Prepare checks the output directory, creating it when CreateDir is set.
func (w *Writer) Prepare() error {
	if w.opts.CreateDir {
		if err := os.MkdirAll(w.dir, dirPermissions); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create output directory").
				Fatal().
				WithContext(ferrors.ContextPath, w.dir).
				Build()
		}
		return nil
	}
	info, err := os.Stat(w.dir)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "output directory is not accessible").
			Fatal().
			WithContext(ferrors.ContextPath, w.dir).
			Build()
	}
	if !info.IsDir() {
		return ferrors.WriteError("output path is not a directory").
			WithContext(ferrors.ContextPath, w.dir).
			Build()
	}
	return nil
}

// Render returns the bytes of the page file:
//
//	---
//	<front-matter>
//	---
//	<description>
func (w *Writer) Render(page mappage.Page) ([]byte, error) {
	body, err := render.Body(page.Description, w.opts.BodyFormat)
	if err != nil {
		return nil, err
	}
	doc := frontmatter.Document{
		Fields: page.FrontMatter(),
		Body:   []byte(body + "\n"),
	}
	if w.opts.Fingerprint {
		if _, err := frontmatterops.StampFingerprint(doc.Fields, doc.Body); err != nil {
			return nil, err
		}
	}
	return doc.Render(frontmatter.Style{Newline: "\n"})
}

// Write renders page and writes it to PathFor(page.Slug), replacing any
// existing file.
func (w *Writer) Write(page mappage.Page) (string, error) {
	path := w.PathFor(page.Slug)

	content, err := w.Render(page)
	if err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryInternal, "failed to render page").
			Fatal().
			WithContext(ferrors.ContextRecordIndex, page.Index).
			WithContext(ferrors.ContextSlug, page.Slug).
			Build()
	}

	if err := os.WriteFile(path, content, filePermissions); err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write page").
			Fatal().
			WithContext(ferrors.ContextRecordIndex, page.Index).
			WithContext(ferrors.ContextMapName, page.MapName).
			WithContext(ferrors.ContextPath, path).
			Build()
	}
	return path, nil
}
