package watch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const reportExt = ".txt"

// ArtifactRef identifies a report file in the output directory.
type ArtifactRef struct {
	Path    string
	ModTime time.Time
}

func (a ArtifactRef) String() string {
	return a.Path
}

// Window is the pair of most recently modified reports, oldest first.
type Window struct {
	Older ArtifactRef
	Newer ArtifactRef
}

func (w Window) IsZero() bool {
	return w.Older.Path == "" && w.Newer.Path == ""
}

// Equal compares windows by their path pair. A report rewritten in place under
// the same name does not count as a new window.
func (w Window) Equal(other Window) bool {
	return w.Older.Path == other.Older.Path && w.Newer.Path == other.Newer.Path
}

// CollectArtifacts lists the *.txt reports in dir sorted by modification time,
// oldest first. Files whose name starts with excludePrefix are skipped. A missing
// directory yields no artifacts.
func CollectArtifacts(dir string, excludePrefix string) ([]ArtifactRef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list output directory %s: %w", dir, err)
	}

	var artifacts []ArtifactRef
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != reportExt {
			continue
		}
		if excludePrefix != "" && strings.HasPrefix(name, excludePrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue // removed since listing, or not a plain file
		}
		artifacts = append(artifacts, ArtifactRef{
			Path:    filepath.Join(dir, name),
			ModTime: info.ModTime(),
		})
	}

	sort.SliceStable(artifacts, func(i, j int) bool {
		if artifacts[i].ModTime.Equal(artifacts[j].ModTime) {
			return artifacts[i].Path < artifacts[j].Path
		}
		return artifacts[i].ModTime.Before(artifacts[j].ModTime)
	})

	return artifacts, nil
}

// latestWindow returns the window formed by the two newest artifacts.
func latestWindow(artifacts []ArtifactRef) (Window, bool) {
	if len(artifacts) < 2 {
		return Window{}, false
	}
	return Window{
		Older: artifacts[len(artifacts)-2],
		Newer: artifacts[len(artifacts)-1],
	}, true
}
