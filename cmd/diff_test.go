package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/liamg/scandiff/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestDiffCommand(t *testing.T) {
	dir := t.TempDir()
	older := writeFile(t, dir, "old.txt", "Nmap scan report for 10.0.0.1\n22/tcp open ssh\nNmap scan report for 10.0.0.2\n80/tcp open http\n")
	newer := writeFile(t, dir, "new.txt", "Nmap scan report for 10.0.0.1\n22/tcp open ssh\n443/tcp open https\n")

	out, err := execute(t, "diff", older, newer)
	require.NoError(t, err)

	assert.Contains(t, out, "New port(s) 443/tcp (https) open on host 10.0.0.1\n")
	assert.Contains(t, out, "Host 10.0.0.2 is no longer present (had open ports: 80/tcp (http))\n")
	assert.Contains(t, out, "0 new host(s), 1 host(s) left, 1 host(s) with opened ports, 0 host(s) with closed ports")
}

func TestDiffCommandMissingReport(t *testing.T) {
	dir := t.TempDir()
	older := writeFile(t, dir, "old.txt", "")

	_, err := execute(t, "diff", older, filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, scan.ErrNotFound)
}

func TestParseCommand(t *testing.T) {
	report := writeFile(t, t.TempDir(), "scan.txt", "Nmap scan report for h\n80/tcp open http\n53/udp open domain\n")

	out, err := execute(t, "parse", report)
	require.NoError(t, err)
	assert.Contains(t, out, "Scan results for host h")
	assert.Contains(t, out, "53/udp")
	assert.Contains(t, out, "80/tcp")
}

func TestNewMatcher(t *testing.T) {
	assert.IsType(t, scan.FirstMatchMatcher{}, newMatcher(true))
	assert.IsType(t, scan.BlockMatcher{}, newMatcher(false))
}
