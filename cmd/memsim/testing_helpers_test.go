package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w
	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)

	return buf.String(), fnErr
}

// resetFlags clears every global flag and silences logging
func resetFlags() {
	verbose = false
	quiet = true
	jsonOut = false
	format = ""
	configPath = ""

	memoryFlag = ""
	processesFlag = ""
	sizesFlag = ""
	pageSizeFlag = ""
	segmentsFlag = ""
}

// writeRequestFile writes a YAML request file to a temporary directory
func writeRequestFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "request.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}
