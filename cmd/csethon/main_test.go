//go:build !android

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"csethon/internal/app"
	"csethon/internal/config"
	"csethon/internal/snapshot"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderWritesFrames(t *testing.T) {
	t.Setenv(config.SeedEnv, "")
	cfgPath := writeConfig(t, "window:\n  width: 96\n  height: 64\n")
	dir := filepath.Join(t.TempDir(), "out")

	out, err := execute(t, "render", "--config", cfgPath, "--seed", "7", "--frames", "6", "--every", "2", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 3 frames")

	for _, n := range []int{2, 4, 6} {
		assert.FileExists(t, filepath.Join(dir, snapshot.FileName(n)))
	}
	assert.NoFileExists(t, filepath.Join(dir, snapshot.FileName(1)))
}

func TestRenderRejectsBadEvery(t *testing.T) {
	cfgPath := writeConfig(t, "window:\n  width: 32\n  height: 32\n")
	_, err := execute(t, "render", "--config", cfgPath, "--every", "0", "--dir", t.TempDir())
	require.ErrorIs(t, err, snapshot.ErrInvalid)
}

func TestInvalidConfigFails(t *testing.T) {
	cfgPath := writeConfig(t, "fps: 0\n")
	_, err := execute(t, "render", "--config", cfgPath)
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestMissingContentFails(t *testing.T) {
	_, err := execute(t, "render", "--content", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestSetupAppliesSeedFlag(t *testing.T) {
	t.Setenv(config.SeedEnv, "")
	c := &cli{seed: 42}
	require.NoError(t, c.setup(nil, nil))
	assert.Equal(t, uint64(42), c.cfg.Seed)
	assert.NotNil(t, c.doc)
	assert.Empty(t, c.contentPath)
}

func TestWatchContentFailureIsReported(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	c := &cli{
		contentPath: filepath.Join(t.TempDir(), "missing", "content.yaml"),
		logger:      zap.New(core),
	}
	a := app.New(app.Options{Config: config.Default()})
	defer a.Close()

	c.watchContent(context.Background(), a, zap.NewNop())
	entries := logs.FilterMessage("content reload disabled").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["error"], "watch ")
}
