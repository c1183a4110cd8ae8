package provision

import (
	"fmt"
	"path/filepath"
)

// Task is a typed descriptor of one idempotent one-shot provisioning task,
// handed to the external scheduler. Ordering is expressed as explicit edges
// on unit names; the idempotency condition is an explicit marker path, never
// inline shell logic.
type Task struct {
	// Database is the registry entry this task provisions.
	Database string

	// Phase is the provisioning phase this task performs.
	Phase Phase

	// Command is the argv the scheduler executes.
	Command []string

	// User is the system identity the command runs as. Create tasks run as
	// the administrative role; post-create tasks run as the database owner.
	User string

	// Marker is the idempotency marker path. The scheduler skips the task
	// when the marker exists and writes it after successful completion.
	Marker string

	// After and Requires name units that must be started before this task.
	After    []string
	Requires []string

	// Before names units this task must complete before.
	Before []string
}

// Unit returns the scheduler unit name for this task.
func (t Task) Unit() string {
	return fmt.Sprintf("nixcloud-pgdb-%s-%s.service", t.Database, t.Phase)
}

// Validate checks the descriptor at construction time.
func (t Task) Validate() error {
	if t.Database == "" {
		return fmt.Errorf("task has empty database name")
	}
	if !t.Phase.IsAPhase() {
		return fmt.Errorf("task for %q has invalid phase", t.Database)
	}
	if len(t.Command) == 0 {
		return fmt.Errorf("task %s has empty command", t.Unit())
	}
	if t.User == "" {
		return fmt.Errorf("task %s has no execution identity", t.Unit())
	}
	if t.Marker == "" || !filepath.IsAbs(t.Marker) {
		return fmt.Errorf("task %s has invalid marker path %q", t.Unit(), t.Marker)
	}
	return nil
}
