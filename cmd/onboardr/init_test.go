package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/onboardr/internal/config"
	"github.com/mark3labs/onboardr/internal/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points global config at a temp dir and runs the test from another.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestWriteInitFiles_Project(t *testing.T) {
	isolate(t)

	var out bytes.Buffer
	require.NoError(t, writeInitFiles(&out, true, false))
	assert.Contains(t, out.String(), "Config written to: onboardr.yml")

	data, err := os.ReadFile(contentFileName)
	require.NoError(t, err)
	assert.Equal(t, content.DefaultYAML(), data)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, contentFileName, cfg.Content)

	c, err := content.Load(cfg.Content)
	require.NoError(t, err)
	assert.Len(t, c.Steps, 4)
}

func TestWriteInitFiles_Global(t *testing.T) {
	isolate(t)

	var out bytes.Buffer
	require.NoError(t, writeInitFiles(&out, false, false))

	assert.FileExists(t, config.GlobalPath())
	assert.FileExists(t, filepath.Join(filepath.Dir(config.GlobalPath()), contentFileName))
	assert.NoFileExists(t, config.ProjectPath())
}

func TestWriteInitFiles_RefusesOverwrite(t *testing.T) {
	isolate(t)

	require.NoError(t, writeInitFiles(&bytes.Buffer{}, true, false))
	err := writeInitFiles(&bytes.Buffer{}, true, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestWriteInitFiles_ForcePrintsDiff(t *testing.T) {
	isolate(t)

	require.NoError(t, writeInitFiles(&bytes.Buffer{}, true, false))
	require.NoError(t, os.WriteFile(contentFileName, []byte("steps:\n  - kind: welcome\n    heading: Custom\n"), 0644))

	var out bytes.Buffer
	require.NoError(t, writeInitFiles(&out, true, true))
	assert.Contains(t, out.String(), "--- onboardr-steps.yml (old)")
	assert.Contains(t, out.String(), "+++ onboardr-steps.yml")
	assert.Contains(t, out.String(), "-    heading: Custom")

	data, err := os.ReadFile(contentFileName)
	require.NoError(t, err)
	assert.Equal(t, content.DefaultYAML(), data)
}

func TestUnifiedDiff(t *testing.T) {
	assert.Empty(t, unifiedDiff("a.yml", "same\n", "same\n"))

	diff := unifiedDiff("a.yml", "one\ntwo\n", "one\nthree\n")
	assert.Contains(t, diff, "-two")
	assert.Contains(t, diff, "+three")
}
