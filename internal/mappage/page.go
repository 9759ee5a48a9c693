// Package mappage turns catalog records into pages: it normalizes text
// fields and derives the slug, title and download URL of each map.
package mappage

import (
	"fmt"
	"maps"
	"strings"

	"git.home.luguber.info/inful/mappages/internal/catalog"
	ferrors "git.home.luguber.info/inful/mappages/internal/foundation/errors"
)

// DefaultTitleSuffix is appended to the map name to build the page title.
const DefaultTitleSuffix = " | TripleA Map"

// Front-matter keys added by Derive.
const (
	KeyMapName     = catalog.FieldMapName
	KeySlug        = "slug"
	KeyTitle       = "title"
	KeyDownloadURL = "dlurl"
)

// Options tune derivation.
type Options struct {
	TitleSuffix string
}

// DefaultOptions returns the options matching the published site.
func DefaultOptions() Options {
	return Options{TitleSuffix: DefaultTitleSuffix}
}

// Page is a derived, read-only view of one catalog record.
type Page struct {
	Index       int
	Line        int
	MapName     string
	Slug        string
	Title       string
	DownloadURL string
	Description string
	// Extra holds every normalized field that is not consumed by derivation.
	Extra map[string]any
}

// FrontMatter returns a new map with the fields emitted between the page
// delimiters. It never contains description or url.
func (p Page) FrontMatter() map[string]any {
	fm := make(map[string]any, len(p.Extra)+4)
	maps.Copy(fm, p.Extra)
	fm[KeyMapName] = p.MapName
	fm[KeySlug] = p.Slug
	fm[KeyTitle] = p.Title
	fm[KeyDownloadURL] = p.DownloadURL
	return fm
}

// Slug lowercases name and replaces every space with a hyphen.
func Slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// Title appends suffix to name.
func Title(name, suffix string) string {
	return name + suffix
}

// Derive normalizes rec and computes its page. A record without a usable
// mapName fails with a validation error naming the record.
func Derive(rec catalog.Record, opts Options) (Page, error) {
	fields := Normalize(rec.Fields)

	raw, ok := fields[catalog.FieldMapName]
	if !ok || raw == nil {
		return Page{}, recordError(ferrors.MissingFieldError(catalog.FieldMapName), rec)
	}
	name, ok := raw.(string)
	if !ok {
		return Page{}, recordError(ferrors.ValidationError("mapName must be text").
			WithContext(ferrors.ContextField, catalog.FieldMapName), rec)
	}
	if name == "" {
		return Page{}, recordError(ferrors.MissingFieldError(catalog.FieldMapName), rec)
	}

	slug := Slug(name)
	if !validFileStem(slug) {
		return Page{}, recordError(ferrors.ValidationError("slug is not a valid file name").
			WithContext(ferrors.ContextMapName, name).
			WithContext(ferrors.ContextSlug, slug), rec)
	}

	page := Page{
		Index:       rec.Index,
		Line:        rec.Line,
		MapName:     name,
		Slug:        slug,
		Title:       Title(name, opts.TitleSuffix),
		Description: take(fields, catalog.FieldDescription),
		DownloadURL: take(fields, catalog.FieldURL),
	}
	delete(fields, catalog.FieldMapName)
	page.Extra = fields
	return page, nil
}

// take removes key from fields and returns its value as text, empty when absent.
func take(fields map[string]any, key string) string {
	v, ok := fields[key]
	delete(fields, key)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func validFileStem(slug string) bool {
	if slug == "." || slug == ".." {
		return false
	}
	return !strings.ContainsAny(slug, `/\`)
}

func recordError(b *ferrors.ErrorBuilder, rec catalog.Record) error {
	b = b.WithContext(ferrors.ContextRecordIndex, rec.Index)
	if rec.Line > 0 {
		b = b.WithContext(ferrors.ContextLine, rec.Line)
	}
	return b.Build()
}
