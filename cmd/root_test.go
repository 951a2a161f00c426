package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStemFor_DefaultsAlongsideInput(t *testing.T) {
	// WHEN no output directory is given
	got := stemFor("/data/traces/run1.txt", "")

	// THEN the stem sits next to the input file, extension stripped
	assert.Equal(t, "/data/traces/run1", got)
}

func TestStemFor_UsesExplicitOutputDir(t *testing.T) {
	// WHEN an output directory is given
	got := stemFor("/data/traces/run1.txt", "/var/snapshots")

	// THEN the stem is rooted there instead, extension still stripped
	assert.Equal(t, "/var/snapshots/run1", got)
}

func TestStemFor_NoExtension_KeepsBaseName(t *testing.T) {
	got := stemFor("run1", "")
	assert.Equal(t, "run1", got)
}
