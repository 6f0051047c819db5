package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string, modTime time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
}

func TestCollectArtifacts(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "new.txt"), epoch.Add(time.Hour))
	touch(t, filepath.Join(dir, "old.txt"), epoch)
	touch(t, filepath.Join(dir, "tie-b.txt"), epoch.Add(time.Minute))
	touch(t, filepath.Join(dir, "tie-a.txt"), epoch.Add(time.Minute))
	touch(t, filepath.Join(dir, "notes.md"), epoch.Add(2*time.Hour))
	touch(t, filepath.Join(dir, LogPrefix+"2026-10-17_09-00-00.txt"), epoch.Add(3*time.Hour))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.txt"), 0o755))

	artifacts, err := CollectArtifacts(dir, LogPrefix)
	require.NoError(t, err)

	var names []string
	for _, artifact := range artifacts {
		names = append(names, filepath.Base(artifact.Path))
	}
	assert.Equal(t, []string{"old.txt", "tie-a.txt", "tie-b.txt", "new.txt"}, names)
	assert.True(t, artifacts[3].ModTime.Equal(epoch.Add(time.Hour)))
}

func TestCollectArtifactsMissingDirectory(t *testing.T) {
	artifacts, err := CollectArtifacts(filepath.Join(t.TempDir(), "missing"), LogPrefix)
	require.NoError(t, err)
	assert.Empty(t, artifacts)
}

func TestLatestWindow(t *testing.T) {
	_, ok := latestWindow(nil)
	assert.False(t, ok)

	_, ok = latestWindow([]ArtifactRef{{Path: "a"}})
	assert.False(t, ok)

	window, ok := latestWindow([]ArtifactRef{{Path: "a"}, {Path: "b"}, {Path: "c"}})
	require.True(t, ok)
	assert.Equal(t, "b", window.Older.Path)
	assert.Equal(t, "c", window.Newer.Path)
}

func TestWindowEqualComparesPaths(t *testing.T) {
	a := Window{Older: ArtifactRef{Path: "x", ModTime: epoch}, Newer: ArtifactRef{Path: "y", ModTime: epoch}}
	b := Window{Older: ArtifactRef{Path: "x"}, Newer: ArtifactRef{Path: "y", ModTime: epoch.Add(time.Hour)}}
	c := Window{Older: ArtifactRef{Path: "y"}, Newer: ArtifactRef{Path: "x"}}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(Window{}))
	assert.True(t, Window{}.IsZero())
}
