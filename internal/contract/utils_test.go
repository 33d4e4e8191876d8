package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	assert.Equal(t, PassValue, GetPlainLabel(true))
	assert.Equal(t, FailValue, GetPlainLabel(false))
}

func TestGetColorLabel(t *testing.T) {
	assert.Contains(t, GetColorLabel(true), PassValue)
	assert.Contains(t, GetColorLabel(false), FailValue)
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		precision int
		expected  string
	}{
		{"shortest", 7.0, -1, "7"},
		{"shortest fraction", 2.6457513110645907, -1, "2.6457513110645907"},
		{"two places", 2.6457513110645907, 2, "2.65"},
		{"zero places", 6.4, 0, "6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatFloat(tt.value, tt.precision))
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	f, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, f)

	path := filepath.Join(t.TempDir(), "out.txt")
	f, err = SelectOutputFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.FileExists(t, path)
}

func TestReadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "numbers.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 2\n4\n"), 0o644))

	lines, err := ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"1 2", "4"}, lines)

	_, err = ReadLines(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestDBFilePaths(t *testing.T) {
	assert.True(t, strings.HasSuffix(GetCacheDBFilePath(), ".spans_cache.db"))
	assert.True(t, strings.HasSuffix(GetHistoryDBFilePath(), ".spans_history.db"))
	assert.NotEqual(t, GetCacheDBFilePath(), GetHistoryDBFilePath())
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input     string
		expected  bool
		expectErr bool
	}{
		{"yes", true, false},
		{"YES", true, false},
		{"true", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
