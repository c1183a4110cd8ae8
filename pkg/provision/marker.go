package provision

import (
	"fmt"
	"os"
	"path/filepath"
)

// MarkerStore manages the provisioning markers in the state directory. One
// marker exists per (database, phase) pair; its presence is the only signal
// that the phase has completed.
type MarkerStore struct {
	// Dir is the state directory holding the markers.
	Dir string
}

// Path returns the marker path for a (database, phase) pair. Database names
// are validated against a path-safe alphabet before any path is derived.
func (s MarkerStore) Path(database string, phase Phase) string {
	return filepath.Join(s.Dir, fmt.Sprintf("%s.%s.done", database, phase))
}

// Exists reports whether the phase has completed for the database.
func (s MarkerStore) Exists(database string, phase Phase) (bool, error) {
	_, err := os.Stat(s.Path(database, phase))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat marker for %s/%s: %w", database, phase, err)
}

// Write records that the phase has completed. It is called only after the
// task body succeeded; a failed task leaves the marker absent so the next
// provisioning attempt retries.
func (s MarkerStore) Write(database string, phase Phase) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory %s: %w", s.Dir, err)
	}
	path := s.Path(database, phase)
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		return fmt.Errorf("failed to write marker %s: %w", path, err)
	}
	return nil
}
