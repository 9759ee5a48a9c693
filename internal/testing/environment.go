package testing

import (
	"os"
	"path/filepath"
	"testing"

	"git.home.luguber.info/inful/mappages/internal/config"
)

// TestEnvironment is a temporary workspace holding a catalog file and an
// output directory, plus a config pointing at both.
type TestEnvironment struct {
	t           *testing.T
	TempDir     string
	CatalogPath string
	OutputDir   string
	Config      *config.Config
}

// NewTestEnvironment creates a workspace with an existing, empty output
// directory. The catalog file is not written until WriteCatalog is called.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()
	tempDir := t.TempDir()

	outputDir := filepath.Join(tempDir, config.DefaultOutputDir)
	if err := os.MkdirAll(outputDir, testDirPermissions); err != nil {
		t.Fatalf("Failed to create output directory: %v", err)
	}

	cfg := config.Default()
	cfg.Input.Path = filepath.Join(tempDir, config.DefaultCatalogPath)
	cfg.Output.Directory = outputDir

	return &TestEnvironment{
		t:           t,
		TempDir:     tempDir,
		CatalogPath: cfg.Input.Path,
		OutputDir:   outputDir,
		Config:      cfg,
	}
}

// WriteCatalog replaces the catalog file with content.
func (env *TestEnvironment) WriteCatalog(content string) *TestEnvironment {
	env.t.Helper()
	if err := os.WriteFile(env.CatalogPath, []byte(content), testFilePermissions); err != nil {
		env.t.Fatalf("Failed to write catalog: %v", err)
	}
	return env
}

// RemoveOutputDir deletes the output directory so writes fail.
func (env *TestEnvironment) RemoveOutputDir() *TestEnvironment {
	env.t.Helper()
	if err := os.RemoveAll(env.OutputDir); err != nil {
		env.t.Fatalf("Failed to remove output directory: %v", err)
	}
	return env
}

// Pages returns assertions rooted at the output directory.
func (env *TestEnvironment) Pages() *FileAssertions {
	return NewFileAssertions(env.t, env.OutputDir)
}
