//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedSpansPath holds the path to a shared spans binary built once for all tests.
	sharedSpansPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getSpansBinary returns the path to the spans binary, building it once if needed.
func getSpansBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "spans-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		spansPath := filepath.Join(tempDir, "spans")
		buildCmd := exec.Command("go", "build", "-o", spansPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if err := buildCmd.Run(); err != nil {
			panic(fmt.Sprintf("failed to build spans: %v", err))
		}

		sharedSpansPath = spansPath
	})

	return sharedSpansPath
}

// runSpans runs the binary from the project root with HOME pointed at home,
// so default SQLite files stay out of the real home directory.
func runSpans(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getSpansBinary(), args...)
	cmd.Dir = "../" // Run from project root
	cmd.Env = append(os.Environ(), "HOME="+home)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			t.Logf("Command failed: %s\nStderr: %s", cmd.String(), string(exitErr.Stderr))
		}
		return string(output), err
	}
	return string(output), nil
}
