package scan

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReportParsesBack(t *testing.T) {
	snapshot := Snapshot{
		"H":        NewPortSet(tcp(80), udp(53)),
		"10.0.0.2": NewPortSet(tcp(22)),
	}

	buf := &bytes.Buffer{}
	require.NoError(t, WriteReport(buf, snapshot, time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)))

	assert.Contains(t, buf.String(), "Nmap scan report for H\n")
	assert.Equal(t, snapshot, NewParser(nil).ParseString(buf.String()))
}

func TestSnapshotString(t *testing.T) {
	snapshot := Snapshot{"h": NewPortSet(tcp(22))}

	text := snapshot.String()
	assert.Contains(t, text, "1 host(s) with open ports")
	assert.Contains(t, text, "Scan results for host h")
	assert.Contains(t, text, "22/tcp")
}
