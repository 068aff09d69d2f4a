package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points XDG at a temp dir and changes into it so neither the
// developer's global nor project config leaks into a test.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()

	origWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { _ = os.Chdir(origWd) })

	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	for _, key := range envKeys {
		t.Setenv("ONBOARDR_"+strings.ToUpper(key), "")
		_ = os.Unsetenv("ONBOARDR_" + strings.ToUpper(key))
	}
	return tmpDir
}

func TestGlobalPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/onboardr/onboardr.yml", GlobalPath())

	t.Setenv("XDG_CONFIG_HOME", "")
	got := GlobalPath()
	assert.True(t, filepath.IsAbs(got), "GlobalPath() should be absolute, got %v", got)
	assert.Equal(t, "onboardr.yml", filepath.Base(got))
}

func TestProjectPath(t *testing.T) {
	assert.Equal(t, "onboardr.yml", ProjectPath())
}

func TestExists(t *testing.T) {
	isolate(t)
	assert.False(t, Exists())

	require.NoError(t, WriteProject(&Config{LogLevel: "info"}))
	assert.True(t, Exists())
	require.NoError(t, os.Remove(ProjectPath()))

	require.NoError(t, WriteGlobal(&Config{LogLevel: "info"}))
	assert.True(t, Exists())
}

func TestWriteGlobal(t *testing.T) {
	isolate(t)

	cfg := &Config{
		Content:  "steps.yml",
		LogLevel: "debug",
		LogFile:  "/tmp/onboardr.log",
		Journal:  true,
		DataDir:  ".journal",
		MCPPort:  7777,
	}
	require.NoError(t, WriteGlobal(cfg))

	data, err := os.ReadFile(GlobalPath())
	require.NoError(t, err)
	content := string(data)
	for _, field := range []string{
		"content: steps.yml",
		"log_level: debug",
		"log_file: /tmp/onboardr.log",
		"journal: true",
		"data_dir: .journal",
		"mcp_port: 7777",
	} {
		assert.Contains(t, content, field)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Content)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Journal)
	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, 0, cfg.MCPPort)
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)

	require.NoError(t, WriteGlobal(&Config{LogLevel: "warn", MCPPort: 1000, DataDir: "global"}))
	require.NoError(t, WriteProject(&Config{LogLevel: "debug", MCPPort: 2000, DataDir: "project"}))
	t.Setenv("ONBOARDR_MCP_PORT", "3000")
	t.Setenv("ONBOARDR_JOURNAL", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel, "project overrides global")
	assert.Equal(t, "project", cfg.DataDir)
	assert.Equal(t, 3000, cfg.MCPPort, "env overrides files")
	assert.True(t, cfg.Journal)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	contentPath := filepath.Join(dir, "steps.yml")
	require.NoError(t, os.WriteFile(contentPath, []byte("steps: []\n"), 0644))

	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"defaults", Config{LogLevel: "info"}, false},
		{"with content file", Config{LogLevel: "info", Content: contentPath}, false},
		{"bad level", Config{LogLevel: "chatty"}, true},
		{"port too high", Config{LogLevel: "info", MCPPort: 70000}, true},
		{"negative port", Config{LogLevel: "info", MCPPort: -1}, true},
		{"missing content file", Config{LogLevel: "info", Content: filepath.Join(dir, "nope.yml")}, true},
		{"journal without data dir", Config{LogLevel: "info", Journal: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
