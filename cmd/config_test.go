package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsConfig_ParsesYAML(t *testing.T) {
	// GIVEN a defaults file setting both fields
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: /tmp/snapshots\nlog_level: debug\n"), 0o644))

	// WHEN loaded
	cfg := LoadDefaultsConfig(path)

	// THEN both fields are populated
	assert.Equal(t, "/tmp/snapshots", cfg.OutputDir)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadDefaultsConfig_MissingFile_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for missing defaults file")
		}
	}()
	LoadDefaultsConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
}

func TestLoadDefaultsConfig_MalformedYAML_Panics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid: yaml"), 0o644))

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for malformed defaults file")
		}
	}()
	LoadDefaultsConfig(path)
}
