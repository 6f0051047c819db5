package watch

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/liamg/scandiff/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventLogRecordNoChanges(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewEventLog(buf, func() time.Time { return epoch }, nil)

	window := Window{Older: ArtifactRef{Path: "a.txt"}, Newer: ArtifactRef{Path: "b.txt"}}
	require.NoError(t, l.Record(window, nil))

	assert.Equal(t, "2026-10-17T09:00:00Z - No changes between a.txt and b.txt\n", buf.String())
}

func TestEventLogStampsEachLineAtWriteTime(t *testing.T) {
	buf := &bytes.Buffer{}
	now := epoch
	l := NewEventLog(buf, func() time.Time {
		now = now.Add(time.Second)
		return now
	}, scan.ServiceDescriber{})

	window := Window{Older: ArtifactRef{Path: "a.txt"}, Newer: ArtifactRef{Path: "b.txt"}}
	require.NoError(t, l.Record(window, []scan.Change{
		{Kind: scan.NewHost, Host: "h", Ports: []scan.Port{ssh}},
		{Kind: scan.PortsOpened, Host: "g", Ports: []scan.Port{https}},
	}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "2026-10-17T09:00:01Z - Changes between a.txt and b.txt: 1 new host(s), 0 host(s) left, 1 host(s) with opened ports, 0 host(s) with closed ports", lines[0])
	assert.Equal(t, "2026-10-17T09:00:02Z - New host h with open ports: 22/tcp (ssh)", lines[1])
	assert.Equal(t, "2026-10-17T09:00:03Z - New port(s) 443/tcp (https) open on host g", lines[2])
}

func TestCreateEventLogAppends(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output")

	l, err := CreateEventLog(dir, epoch, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "continuous_differential_analysis_2026-10-17_09-00-00.txt"), l.Path())

	window := Window{Older: ArtifactRef{Path: "a.txt"}, Newer: ArtifactRef{Path: "b.txt"}}
	require.NoError(t, l.Record(window, nil))
	require.NoError(t, l.Close())

	l, err = CreateEventLog(dir, epoch, nil)
	require.NoError(t, err)
	require.NoError(t, l.Record(window, nil))
	require.NoError(t, l.Close())

	data, err := os.ReadFile(l.Path())
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "No changes between a.txt and b.txt"))
}
