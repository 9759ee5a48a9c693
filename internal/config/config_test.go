package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/mappages/internal/foundation/errors"
	"git.home.luguber.info/inful/mappages/internal/mappage"
	"git.home.luguber.info/inful/mappages/internal/render"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultCatalogPath, cfg.Input.Path)
	assert.False(t, cfg.Input.TolerateParseErrors)
	assert.Equal(t, DefaultOutputDir, cfg.Output.Directory)
	assert.False(t, cfg.Output.CreateDir)
	assert.Equal(t, DuplicateOverwrite, cfg.Output.OnDuplicate)
	assert.Equal(t, render.FormatText, cfg.Output.BodyFormat)
	assert.False(t, cfg.Output.Fingerprint)
	assert.Equal(t, mappage.DefaultTitleSuffix, cfg.TitleSuffix())
	assert.Equal(t, " | TripleA Map", cfg.TitleSuffix())
	assert.Empty(t, cfg.Metrics.Textfile)
}

func TestLoad_MissingOptionalFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingRequiredFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), true)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappages.yaml")
	content := `input:
  path: maps.yaml
  tolerate_parse_errors: true
output:
  directory: site/_maps
  create_dir: true
  on_duplicate: FAIL
  body_format: Markdown
  fingerprint: true
page:
  title_suffix: ""
metrics:
  textfile: /var/lib/node_exporter/mappages.prom
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, "maps.yaml", cfg.Input.Path)
	assert.True(t, cfg.Input.TolerateParseErrors)
	assert.Equal(t, "site/_maps", cfg.Output.Directory)
	assert.True(t, cfg.Output.CreateDir)
	assert.Equal(t, DuplicateFail, cfg.Output.OnDuplicate)
	assert.Equal(t, render.FormatMarkdown, cfg.Output.BodyFormat)
	assert.True(t, cfg.Output.Fingerprint)
	assert.Empty(t, cfg.TitleSuffix())
	assert.Equal(t, "/var/lib/node_exporter/mappages.prom", cfg.Metrics.Textfile)
}

func TestParse_ExpandsEnvironment(t *testing.T) {
	t.Setenv("MAPPAGES_TEST_SITE", "/srv/site")

	cfg, err := Parse([]byte("output:\n  directory: ${MAPPAGES_TEST_SITE}/_maps\n"))
	require.NoError(t, err)
	assert.Equal(t, "/srv/site/_maps", cfg.Output.Directory)
	assert.Equal(t, DefaultCatalogPath, cfg.Input.Path)
}

func TestParse_InvalidEnum(t *testing.T) {
	_, err := Parse([]byte("output:\n  on_duplicate: ignore\n"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
	assert.Contains(t, err.Error(), "duplicate policy")
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappages.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: [unclosed\n"), 0o600))

	_, err := Load(path, false)
	require.Error(t, err)
	classified, ok := ferrors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, ferrors.CategoryConfig, classified.Category())
	got, _ := classified.Context().GetString(ferrors.ContextPath)
	assert.Equal(t, path, got)
}

func TestApply(t *testing.T) {
	cfg := Default()

	err := cfg.Apply(Overrides{
		Input:       "other.yaml",
		Output:      "out",
		OnDuplicate: "fail",
		MetricsFile: "run.prom",
	})
	require.NoError(t, err)

	assert.Equal(t, "other.yaml", cfg.Input.Path)
	assert.Equal(t, "out", cfg.Output.Directory)
	assert.Equal(t, DuplicateFail, cfg.Output.OnDuplicate)
	assert.Equal(t, "run.prom", cfg.Metrics.Textfile)
}

func TestApply_EmptyOverridesKeepValues(t *testing.T) {
	cfg, err := Parse([]byte("input:\n  path: a.yaml\noutput:\n  on_duplicate: fail\n"))
	require.NoError(t, err)

	require.NoError(t, cfg.Apply(Overrides{}))
	assert.Equal(t, "a.yaml", cfg.Input.Path)
	assert.Equal(t, DuplicateFail, cfg.Output.OnDuplicate)
}

func TestApply_InvalidPolicy(t *testing.T) {
	cfg := Default()
	err := cfg.Apply(Overrides{OnDuplicate: "skip"})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestDuplicatePolicyValues(t *testing.T) {
	assert.Equal(t, []string{"fail", "overwrite"}, DuplicatePolicyValues())
}
