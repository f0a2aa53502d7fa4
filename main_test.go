package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestReverse(t *testing.T) {
	out, _, err := execute(t, "a\nb\nc\n", "reverse")
	require.Nil(t, err)
	require.Equal(t, "c\nb\na\n", out)
}

func TestReverseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.Nil(t, os.WriteFile(path, []byte("first\nsecond\n"), 0o600))
	out, _, err := execute(t, "", "reverse", path)
	require.Nil(t, err)
	require.Equal(t, "second\nfirst\n", out)
}

func TestReverseSkipsLargeLines(t *testing.T) {
	out, stderr, err := execute(t, "ok\ntoolong\nfine\n", "reverse", "--max-element-size", "5B")
	require.Nil(t, err)
	require.Equal(t, "fine\nok\n", out)
	require.Contains(t, stderr, "skipping line")
}

func TestReverseInvalidElementSize(t *testing.T) {
	_, _, err := execute(t, "a\n", "reverse", "--max-element-size", "1MiB")
	require.NotNil(t, err)
	_, _, err = execute(t, "a\n", "reverse", "--max-element-size", "lots")
	require.NotNil(t, err)
}

func TestStats(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 100; i++ {
		sb.WriteString("line\n")
	}
	out, _, err := execute(t, sb.String(), "stats")
	require.Nil(t, err)
	require.Contains(t, out, "pushed:         100\n")
	require.Contains(t, out, "peak capacity:  128\n")
	require.Contains(t, out, "grows:          3\n")
	require.Contains(t, out, "shrinks:        3\n")
	require.Contains(t, out, "final capacity: 16\n")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.Nil(t, err)
	require.Equal(t, "boundedstack "+version+"\n", out)
}
