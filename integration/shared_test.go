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
	// sharedGeoqaPath holds the path to a shared geoqa binary built once for all tests.
	sharedGeoqaPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// roadsDoc is a two point dataset with one null attribute cell. Completeness
// lands at 0.75 and the overall quality score at exactly 92.5.
const roadsDoc = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [13.4, 52.5]}, "properties": {"name": "a", "lanes": 2}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [13.5, 52.6]}, "properties": {"name": "b", "lanes": null}}
  ]
}`

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getGeoqaBinary returns the path to the geoqa binary, building it once if needed.
func getGeoqaBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "geoqa-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		geoqaPath := filepath.Join(tempDir, "geoqa")
		buildCmd := exec.Command("go", "build", "-o", geoqaPath, "./cmd/geoqa")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build geoqa: %v", err))
		}

		sharedGeoqaPath = geoqaPath
	})

	return sharedGeoqaPath
}

// writeFixture writes a dataset document into a per-test temp dir and returns its path.
func writeFixture(t *testing.T, name, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("failed to write fixture %s: %v", name, err)
	}
	return path
}
