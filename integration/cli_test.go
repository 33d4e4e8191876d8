//go:build basic

// Package integration contains end-to-end tests that drive the spans binary.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliInterval struct {
	Index   int    `json:"index"`
	Start   string `json:"start"`
	Stop    string `json:"stop"`
	Seconds int64  `json:"seconds"`
}

func TestRangeAndOverlapJSON(t *testing.T) {
	home := t.TempDir()

	out, err := runSpans(t, home, "range", "2010-01-12 10:30:00", "2010-01-12 10:45:00", "2", "60", "--output", "json")
	require.NoError(t, err)
	var built []cliInterval
	require.NoError(t, json.Unmarshal([]byte(out), &built))
	require.Len(t, built, 2)
	assert.Equal(t, "2010-01-12 10:37:00", built[0].Stop)

	out, err = runSpans(t, home, "overlap",
		"--large", "2019-10-31 00:00:00,2019-10-31 00:50:00,3,600",
		"--short", "2019-10-31 00:05:00,2019-10-31 00:45:00",
		"--output", "json")
	require.NoError(t, err)
	var overlap []cliInterval
	require.NoError(t, json.Unmarshal([]byte(out), &overlap))
	require.Len(t, overlap, 3)
	assert.Equal(t, "2019-10-31 00:05:00", overlap[0].Start)
	assert.Equal(t, "2019-10-31 00:45:00", overlap[2].Stop)
}

func TestCheckExitCodes(t *testing.T) {
	home := t.TempDir()

	out, err := runSpans(t, home, "check", "core/algo/testdata/overlap_cases.yaml", "--color", "no")
	require.NoError(t, err)
	assert.Contains(t, out, "0 failed")

	failing := filepath.Join(t.TempDir(), "failing.yaml")
	require.NoError(t, os.WriteFile(failing, []byte(`
- wrong:
    test_input:
      interval_1: ["2019-01-01 00:00:00", "2019-01-01 01:00:00"]
      interval_2: ["2019-01-01 00:30:00", "2019-01-01 02:00:00"]
    expected: interval_2
`), 0o644))

	_, err = runSpans(t, home, "check", failing)
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
}

func TestInvalidInputsFail(t *testing.T) {
	home := t.TempDir()

	tests := []struct {
		name string
		args []string
	}{
		{"reversed range", []string{"range", "2010-01-12 11:00:00", "2010-01-12 10:00:00"}},
		{"gaps overflow span", []string{"range", "2019-01-01 00:00:00", "2019-01-01 00:10:00", "3", "5m"}},
		{"bad output", []string{"range", "2019-01-01 00:00:00", "2019-01-01 00:10:00", "--output", "xml"}},
		{"parquet without file", []string{"range", "2019-01-01 00:00:00", "2019-01-01 00:10:00", "--output", "parquet"}},
		{"bad latitude", []string{"passes", "--lat", "95", "--lon", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runSpans(t, home, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestSquaresAndHistory(t *testing.T) {
	home := t.TempDir()
	numbers := filepath.Join(t.TempDir(), "numbers.txt")
	require.NoError(t, os.WriteFile(numbers, []byte("3 4\n"), 0o644))

	out, err := runSpans(t, home, "squares", numbers, "--root", "--output", "csv", "--precision", "3")
	require.NoError(t, err)
	assert.Equal(t, "count,weighted,root,value\n2,false,true,3.536\n", out)

	out, err = runSpans(t, home, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Runs: 1")

	_, err = runSpans(t, home, "history", "clear")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(home, ".spans_history.db"))
	assert.True(t, os.IsNotExist(err))
}

func TestVersion(t *testing.T) {
	out, err := runSpans(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "spans CLI"))
}
