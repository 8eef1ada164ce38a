package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_DefaultValues(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "REQUEST", cfg.Labels.Request)
	assert.Equal(t, "RESPONSE", cfg.Labels.Response)
	assert.Equal(t, 50, cfg.Display.MaxValueLength)
	assert.True(t, cfg.Display.Color)
	assert.Equal(t, FormatTable, cfg.Display.Format)
	assert.True(t, cfg.Summary.ShowMatching)
	assert.True(t, cfg.Summary.ShowDifferent)
}

func TestConfig_LoadFromYAML(t *testing.T) {
	yamlContent := `
labels:
  request: "BEFORE"
  response: "AFTER"
display:
  max_value_length: 80
  color: false
  format: "json"
summary:
  show_matching: false
`

	tmpFile := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(yamlContent), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)

	assert.Equal(t, "BEFORE", cfg.Labels.Request)
	assert.Equal(t, "AFTER", cfg.Labels.Response)
	assert.Equal(t, 80, cfg.Display.MaxValueLength)
	assert.False(t, cfg.Display.Color)
	assert.Equal(t, FormatJSON, cfg.Display.Format)
	assert.False(t, cfg.Summary.ShowMatching)
	// Untouched keys keep their defaults.
	assert.True(t, cfg.Summary.ShowDifferent)
}

func TestConfig_PartialFileKeepsDefaults(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("display:\n  max_value_length: 25\n"), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Display.MaxValueLength)
	assert.Equal(t, "REQUEST", cfg.Labels.Request)
	assert.Equal(t, FormatTable, cfg.Display.Format)
}

func TestConfig_LoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "bad.yml")
		require.NoError(t, os.WriteFile(tmpFile, []byte("labels: [unclosed"), 0644))
		_, err := LoadConfig(tmpFile)
		assert.Error(t, err)
	})

	t.Run("invalid format value", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "badformat.yml")
		require.NoError(t, os.WriteFile(tmpFile, []byte("display:\n  format: xml\n"), 0644))
		_, err := LoadConfig(tmpFile)
		assert.ErrorContains(t, err, "invalid display format")
	})

	t.Run("non-positive truncation", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "badlen.yml")
		require.NoError(t, os.WriteFile(tmpFile, []byte("display:\n  max_value_length: 0\n"), 0644))
		_, err := LoadConfig(tmpFile)
		assert.ErrorContains(t, err, "max_value_length")
	})
}

func TestValidate_EmptyLabels(t *testing.T) {
	cfg := NewConfig()
	cfg.Labels.Request = ""
	assert.ErrorContains(t, cfg.Validate(), "labels")
}

func TestFindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	nested := filepath.Join(tmpDir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	configPath := filepath.Join(tmpDir, ".jsoncompare.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("display:\n  color: false\n"), 0644))

	origDir, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(origDir) }()

	require.NoError(t, os.Chdir(nested))

	found := FindConfigFile()
	require.NotEmpty(t, found, "config file should be found in an ancestor directory")
	// Resolve symlinks before comparing; t.TempDir may sit behind one.
	wantResolved, err := filepath.EvalSymlinks(configPath)
	require.NoError(t, err)
	gotResolved, err := filepath.EvalSymlinks(found)
	require.NoError(t, err)
	assert.Equal(t, wantResolved, gotResolved)
}
