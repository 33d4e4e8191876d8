package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Check outcome label constants.
const (
	PassValue = "PASS"
	FailValue = "FAIL"
)

// Color variables for console output.
var (
	PassColor   = color.New(color.FgGreen, color.Bold) // PassColor marks a satisfied case.
	FailColor   = color.New(color.FgRed, color.Bold)   // FailColor marks a failed case.
	HeaderColor = color.New(color.FgCyan)              // HeaderColor marks section headers.
)

// GetPlainLabel returns PASS or FAIL for CSV, JSON and uncolored tables.
func GetPlainLabel(passed bool) string {
	if passed {
		return PassValue
	}
	return FailValue
}

// GetColorLabel returns a colored PASS or FAIL label for console output (table).
func GetColorLabel(passed bool) string {
	if passed {
		return PassColor.Sprint(PassValue)
	}
	return FailColor.Sprint(FailValue)
}

// FormatFloat renders v with the configured precision; -1 means shortest.
func FormatFloat(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// LogInfo writes an emoji-prefixed progress note to stderr.
func LogInfo(emoji, format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, emoji+" "+format+"\n", args...)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".spans_cache.db"
	}
	return filepath.Join(homeDir, ".spans_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for history storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".spans_history.db"
	}
	return filepath.Join(homeDir, ".spans_history.db")
}

// ReadLines reads a text file and returns its lines.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n"), nil
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
