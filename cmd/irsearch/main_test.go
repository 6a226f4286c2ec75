package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irsearch/internal/apperrors"
	"irsearch/internal/config"
)

func testConfig(t *testing.T, dir string) *config.AppConfig {
	t.Helper()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	cfg.Data.Dir = dir
	return cfg
}

func TestRunOneShot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc1.txt"), []byte("the cat sat"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc2.txt"), []byte("the dog sat"), 0o644))

	assert.NoError(t, run(context.Background(), testConfig(t, dir), "cat"))
}

func TestRunMissingDirectory(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "missing"))
	err := run(context.Background(), cfg, "cat")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, userMessage(err, cfg), "does not exist")
}

func TestRunEmptyDirectory(t *testing.T) {
	err := run(context.Background(), testConfig(t, t.TempDir()), "cat")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
