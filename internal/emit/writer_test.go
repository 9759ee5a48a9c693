package emit

import (
	"os"
	"path/filepath"
	"testing"

	ferrors "git.home.luguber.info/inful/mappages/internal/foundation/errors"
	"git.home.luguber.info/inful/mappages/internal/frontmatter"
	"git.home.luguber.info/inful/mappages/internal/frontmatterops"
	"git.home.luguber.info/inful/mappages/internal/mappage"
	"git.home.luguber.info/inful/mappages/internal/render"
	"github.com/stretchr/testify/require"
)

func pacificTheater() mappage.Page {
	return mappage.Page{
		MapName:     "Pacific Theater",
		Slug:        "pacific-theater",
		Title:       "Pacific Theater | TripleA Map",
		DownloadURL: "http://x/y",
		Description: "A great map.",
		Extra:       map[string]any{},
	}
}

func TestWriter_Write_ExactLayout(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, Options{})
	require.NoError(t, w.Prepare())

	path, err := w.Write(pacificTheater())
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "pacific-theater.html"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "---\n"+
		"dlurl: http://x/y\n"+
		"mapName: Pacific Theater\n"+
		"slug: pacific-theater\n"+
		"title: Pacific Theater | TripleA Map\n"+
		"---\n"+
		"A great map.\n", string(content))
}

func TestWriter_Write_EmptyDescriptionAndURL(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, Options{})

	page := mappage.Page{MapName: "Alpha", Slug: "alpha", Title: "Alpha | TripleA Map"}
	path, err := w.Write(page)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "---\ndlurl: \"\"\nmapName: Alpha\nslug: alpha\ntitle: Alpha | TripleA Map\n---\n\n", string(content))
}

func TestWriter_Write_OverwritesExistingFile(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, Options{})
	target := filepath.Join(dir, "alpha.html")
	require.NoError(t, os.WriteFile(target, []byte("stale"), 0o600))

	_, err := w.Write(mappage.Page{MapName: "Alpha", Slug: "alpha", Description: "fresh"})
	require.NoError(t, err)

	doc, err := frontmatter.Parse(mustRead(t, target))
	require.NoError(t, err)
	require.Equal(t, "fresh\n", string(doc.Body))
}

func TestWriter_Write_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "absent")
	w := NewWriter(dir, Options{})

	_, err := w.Write(pacificTheater())
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))

	classified, _ := ferrors.AsClassified(err)
	path, _ := classified.Context().GetString(ferrors.ContextPath)
	require.Equal(t, filepath.Join(dir, "pacific-theater.html"), path)
}

func TestWriter_Prepare(t *testing.T) {
	t.Run("missing directory fails", func(t *testing.T) {
		w := NewWriter(filepath.Join(t.TempDir(), "absent"), Options{})
		err := w.Prepare()
		require.Error(t, err)
		require.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
	})

	t.Run("file instead of directory fails", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, nil, 0o600))
		require.Error(t, NewWriter(file, Options{}).Prepare())
	})

	t.Run("create dir", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "out")
		require.NoError(t, NewWriter(dir, Options{CreateDir: true}).Prepare())
		info, err := os.Stat(dir)
		require.NoError(t, err)
		require.True(t, info.IsDir())
	})
}

func TestWriter_Render_Markdown(t *testing.T) {
	w := NewWriter(t.TempDir(), Options{BodyFormat: render.FormatMarkdown})
	page := pacificTheater()
	page.Description = "A *great* map."

	out, err := w.Render(page)
	require.NoError(t, err)

	doc, err := frontmatter.Parse(out)
	require.NoError(t, err)
	require.Equal(t, "<p>A <em>great</em> map.</p>\n", string(doc.Body))
}

func TestWriter_Render_Fingerprint(t *testing.T) {
	w := NewWriter(t.TempDir(), Options{Fingerprint: true})

	out, err := w.Render(pacificTheater())
	require.NoError(t, err)

	doc, err := frontmatter.Parse(out)
	require.NoError(t, err)
	fp, ok := doc.Fields[frontmatterops.FingerprintField].(string)
	require.True(t, ok)

	expected, err := frontmatterops.ComputeFingerprint(doc.Fields, doc.Body)
	require.NoError(t, err)
	require.Equal(t, expected, fp)
}

func TestWriter_Render_IsDeterministic(t *testing.T) {
	w := NewWriter(t.TempDir(), Options{})
	page := pacificTheater()
	page.Extra = map[string]any{"version": 3, "mapType": "MAP", "tags": []any{"ww2"}}

	first, err := w.Render(page)
	require.NoError(t, err)
	for range 5 {
		again, err := w.Render(page)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func mustRead(t *testing.T, path string) []byte {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return b
}
