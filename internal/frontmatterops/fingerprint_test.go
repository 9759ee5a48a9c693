package frontmatterops

import (
	"testing"

	"git.home.luguber.info/inful/mappages/internal/frontmatter"
	"github.com/inful/mdfp"
	"github.com/stretchr/testify/require"
)

func TestComputeFingerprint(t *testing.T) {
	t.Run("excludes the fingerprint field", func(t *testing.T) {
		fields := map[string]any{
			"mapName":        "Alpha",
			FingerprintField: "should-be-ignored",
		}
		body := []byte("A great map.\n")

		got, err := ComputeFingerprint(fields, body)
		require.NoError(t, err)

		fmBytes, err := frontmatter.SerializeYAML(map[string]any{"mapName": "Alpha"}, frontmatter.Style{Newline: "\n"})
		require.NoError(t, err)
		expected := mdfp.CalculateFingerprintFromParts(trimSingleTrailingNewline(string(fmBytes)), string(body))

		require.Equal(t, expected, got)
	})

	t.Run("stable across map insertion order", func(t *testing.T) {
		fieldsA := map[string]any{}
		fieldsA["title"] = "Alpha | TripleA Map"
		fieldsA["version"] = 3

		fieldsB := map[string]any{}
		fieldsB["version"] = 3
		fieldsB["title"] = "Alpha | TripleA Map"

		fpA, err := ComputeFingerprint(fieldsA, []byte("x"))
		require.NoError(t, err)
		fpB, err := ComputeFingerprint(fieldsB, []byte("x"))
		require.NoError(t, err)
		require.Equal(t, fpA, fpB)
	})

	t.Run("body changes the fingerprint", func(t *testing.T) {
		fields := map[string]any{"mapName": "Alpha"}
		a, err := ComputeFingerprint(fields, []byte("one\n"))
		require.NoError(t, err)
		b, err := ComputeFingerprint(fields, []byte("two\n"))
		require.NoError(t, err)
		require.NotEqual(t, a, b)
	})

	t.Run("nil fields", func(t *testing.T) {
		_, err := ComputeFingerprint(nil, nil)
		require.Error(t, err)
	})
}

func TestStampFingerprint(t *testing.T) {
	fields := map[string]any{"mapName": "Alpha"}
	fp, err := StampFingerprint(fields, []byte("body\n"))
	require.NoError(t, err)
	require.NotEmpty(t, fp)
	require.Equal(t, fp, fields[FingerprintField])

	again, err := StampFingerprint(fields, []byte("body\n"))
	require.NoError(t, err)
	require.Equal(t, fp, again)
}

func TestTrimSingleTrailingNewline(t *testing.T) {
	require.Equal(t, "a", trimSingleTrailingNewline("a\n"))
	require.Equal(t, "a", trimSingleTrailingNewline("a\r\n"))
	require.Equal(t, "a\n", trimSingleTrailingNewline("a\n\n"))
	require.Equal(t, "a", trimSingleTrailingNewline("a"))
}
