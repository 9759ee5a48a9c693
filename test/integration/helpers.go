package integration

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listFiles returns the sorted names of the regular files in dir.
func listFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err, "failed to read %s", dir)

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// verifyPages compares every page in outputDir byte for byte with goldenDir.
// With updateGolden set the golden directory is replaced by the output.
func verifyPages(t *testing.T, outputDir, goldenDir string, updateGolden bool) {
	t.Helper()

	if updateGolden {
		require.NoError(t, os.RemoveAll(goldenDir), "failed to clear golden directory")
		require.NoError(t, os.MkdirAll(goldenDir, 0o750), "failed to create golden directory")
		for _, name := range listFiles(t, outputDir) {
			// #nosec G304 -- test utility copying generated pages
			data, err := os.ReadFile(filepath.Join(outputDir, name))
			require.NoError(t, err)
			require.NoError(t, os.WriteFile(filepath.Join(goldenDir, name), data, 0o600))
		}
		t.Logf("Updated golden files: %s", goldenDir)
		return
	}

	require.Equal(t, listFiles(t, goldenDir), listFiles(t, outputDir), "generated page set differs from golden")
	for _, name := range listFiles(t, goldenDir) {
		// #nosec G304 -- test utility reading golden file from testdata
		want, err := os.ReadFile(filepath.Join(goldenDir, name))
		require.NoError(t, err)
		got, err := os.ReadFile(filepath.Join(outputDir, name))
		require.NoError(t, err)
		assert.Equal(t, string(want), string(got), "page %s differs from golden", name)
	}
}
