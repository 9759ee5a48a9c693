package testing

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"

	"git.home.luguber.info/inful/mappages/internal/frontmatter"
)

// FileAssertions provides utilities for asserting file system state in tests
type FileAssertions struct {
	t       *testing.T
	baseDir string
}

// NewFileAssertions creates a new file assertions helper
func NewFileAssertions(t *testing.T, baseDir string) *FileAssertions {
	return &FileAssertions{
		t:       t,
		baseDir: baseDir,
	}
}

// AssertFileExists validates that a file exists
func (fa *FileAssertions) AssertFileExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		fa.t.Errorf("Expected file to exist: %s", fullPath)
	}
	return fa
}

// AssertFileNotExists validates that a file does not exist
func (fa *FileAssertions) AssertFileNotExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	if _, err := os.Stat(fullPath); err == nil {
		fa.t.Errorf("Expected file to not exist: %s", fullPath)
	}
	return fa
}

// AssertFileContent validates that a file holds exactly expected.
func (fa *FileAssertions) AssertFileContent(relativePath, expected string) *FileAssertions {
	fa.t.Helper()
	if actual := fa.GetFileContent(relativePath); actual != expected {
		fa.t.Errorf("Unexpected content in %s\nExpected:\n%s\nActual:\n%s", relativePath, expected, actual)
	}
	return fa
}

// AssertFileContains validates that a file contains expected content
func (fa *FileAssertions) AssertFileContains(relativePath, expectedContent string) *FileAssertions {
	fa.t.Helper()
	content := fa.GetFileContent(relativePath)
	if !strings.Contains(content, expectedContent) {
		fa.t.Errorf("Expected file %s to contain %q\nActual content:\n%s",
			relativePath, expectedContent, content)
	}
	return fa
}

// AssertFrontMatter parses the page's front-matter and checks key equals expected.
func (fa *FileAssertions) AssertFrontMatter(relativePath, key string, expected any) *FileAssertions {
	fa.t.Helper()
	fields := fa.FrontMatter(relativePath)
	actual, ok := fields[key]
	if !ok {
		fa.t.Errorf("Expected front-matter key %q in %s, keys: %v", key, relativePath, sortedKeys(fields))
		return fa
	}
	if !reflect.DeepEqual(actual, expected) {
		fa.t.Errorf("Front-matter %s[%q] = %#v, expected %#v", relativePath, key, actual, expected)
	}
	return fa
}

// AssertNoFrontMatterKey validates that the page's front-matter lacks key.
func (fa *FileAssertions) AssertNoFrontMatterKey(relativePath, key string) *FileAssertions {
	fa.t.Helper()
	if _, ok := fa.FrontMatter(relativePath)[key]; ok {
		fa.t.Errorf("Expected front-matter of %s to not contain %q", relativePath, key)
	}
	return fa
}

// AssertFileCount validates that a directory holds exactly count files.
func (fa *FileAssertions) AssertFileCount(relativePath string, count int) *FileAssertions {
	fa.t.Helper()
	if actual := fa.CountFiles(relativePath); actual != count {
		fa.t.Errorf("Expected %d files in %s, found %d: %v", count, relativePath, actual, fa.ListFiles(relativePath))
	}
	return fa
}

// FrontMatter parses and returns the front-matter of a page file.
func (fa *FileAssertions) FrontMatter(relativePath string) map[string]any {
	fa.t.Helper()
	doc, err := frontmatter.Parse([]byte(fa.GetFileContent(relativePath)))
	if err != nil {
		fa.t.Fatalf("Failed to parse front-matter of %s: %v", relativePath, err)
	}
	return doc.Fields
}

// CountFiles returns the number of files in a directory (non-recursive)
func (fa *FileAssertions) CountFiles(relativePath string) int {
	fa.t.Helper()
	return len(fa.ListFiles(relativePath))
}

// ListFiles returns the sorted file names in a directory
func (fa *FileAssertions) ListFiles(relativePath string) []string {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		fa.t.Logf("Failed to read directory %s: %v", fullPath, err)
		return nil
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, entry.Name())
		}
	}
	return files
}

// GetFileContent reads and returns the content of a file
func (fa *FileAssertions) GetFileContent(relativePath string) string {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)

	content, err := os.ReadFile(fullPath)
	if err != nil {
		fa.t.Fatalf("Failed to read file %s: %v", fullPath, err)
	}
	return string(content)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
