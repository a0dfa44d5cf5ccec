package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_BadSettingsStillWriteSnapshot(t *testing.T) {
	dir := t.TempDir()
	sources := filepath.Join(dir, "sources.yaml")
	out := filepath.Join(dir, "data.js")
	require.NoError(t, os.WriteFile(sources, []byte("hackernews: [oops"), 0o644))

	t.Setenv("SOURCES_CONFIG_PATH", sources)
	t.Setenv("OUTPUT_FILE", out)
	t.Setenv("TARGET_LOCALE", "not a locale!")
	t.Setenv("TRANSLATE_PROVIDERS", "google")
	t.Setenv("METRICS_TEXTFILE", "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, run(ctx))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "window.AI_DATA = {"))
}

func TestRun_StrictExitReportsPersistenceFailure(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SOURCES_CONFIG_PATH", filepath.Join(dir, "missing.yaml"))
	t.Setenv("OUTPUT_FILE", dir)
	t.Setenv("TRANSLATE_PROVIDERS", "google")
	t.Setenv("METRICS_TEXTFILE", "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	t.Setenv("STRICT_EXIT", "")
	assert.NoError(t, run(ctx))

	t.Setenv("STRICT_EXIT", "true")
	assert.Error(t, run(ctx))
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "ainexus dev\n", buf.String())
}
