package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("A great map.\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_FrontmatterAndBody(t *testing.T) {
	input := []byte("---\nslug: alpha\n---\nA great map.\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("slug: alpha\n"), fm)
	require.Equal(t, []byte("A great map.\n"), body)
}

func TestSplit_EmptyBody(t *testing.T) {
	fm, body, had, err := Split([]byte("---\nslug: alpha\n---\n\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("slug: alpha\n"), fm)
	require.Equal(t, []byte("\n"), body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	_, _, had, err := Split([]byte("---\nslug: alpha\nA great map.\n"))
	require.Error(t, err)
	require.False(t, had)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestSplit_CRLF(t *testing.T) {
	fm, body, had, err := Split([]byte("---\r\nslug: alpha\r\n---\r\nbody\r\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("slug: alpha\r\n"), fm)
	require.Equal(t, []byte("body\r\n"), body)
}

func TestJoin_WrapsInDelimiters(t *testing.T) {
	out := Join([]byte("slug: alpha\n"), []byte("body\n"), Style{})
	require.Equal(t, "---\nslug: alpha\n---\nbody\n", string(out))
}

func TestDocument_RenderThenParse(t *testing.T) {
	doc := Document{
		Fields: map[string]any{
			"mapName": "Pacific Theater",
			"slug":    "pacific-theater",
			"dlurl":   "",
		},
		Body: []byte("A great map.\n"),
	}

	out, err := doc.Render(Style{})
	require.NoError(t, err)
	require.Equal(t, "---\ndlurl: \"\"\nmapName: Pacific Theater\nslug: pacific-theater\n---\nA great map.\n", string(out))

	parsed, err := Parse(out)
	require.NoError(t, err)
	require.Equal(t, doc.Fields, parsed.Fields)
	require.Equal(t, doc.Body, parsed.Body)
}

func TestParseYAML_Empty_ReturnsEmptyMap(t *testing.T) {
	fields, err := ParseYAML(nil)
	require.NoError(t, err)
	require.Empty(t, fields)
}

func TestParseYAML_InvalidYAML_ReturnsError(t *testing.T) {
	_, err := ParseYAML([]byte(": not yaml"))
	require.Error(t, err)
}
