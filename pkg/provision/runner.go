package provision

import (
	"context"
	"fmt"

	"github.com/keeganpoppen/nixcloud-webservices/pkg/registry"
)

// Executor performs the body of a provisioning phase against the engine.
type Executor interface {
	// Create creates the owning role and the database if they do not exist.
	Create(ctx context.Context, db registry.Database) error

	// PostCreate runs the post-create script against the new database.
	PostCreate(ctx context.Context, db registry.Database) error
}

// Runner applies the scheduler contract in-process: evaluate the idempotency
// predicate, run the task body once, and record the marker on success. The
// generated units encode the same contract for systemd; Runner is what
// `pgprovctl apply` and direct invocations use.
type Runner struct {
	Markers MarkerStore
	Exec    Executor
}

// Run executes one phase for one database. It returns skipped=true without
// touching the executor when the phase's marker already exists. A failed
// phase leaves the marker absent, so the next attempt retries.
func (r Runner) Run(ctx context.Context, db registry.Database, phase Phase) (skipped bool, err error) {
	done, err := r.Markers.Exists(db.Name, phase)
	if err != nil {
		return false, err
	}
	if done {
		return true, nil
	}

	switch phase {
	case PhaseCreate:
		err = r.Exec.Create(ctx, db)
	case PhasePostCreate:
		if db.PostCreate == "" {
			return false, fmt.Errorf("database %q has no post-create script", db.Name)
		}
		err = r.Exec.PostCreate(ctx, db)
	default:
		return false, fmt.Errorf("invalid phase %v", phase)
	}
	if err != nil {
		return false, fmt.Errorf("%s phase for database %q failed: %w", phase, db.Name, err)
	}

	if err := r.Markers.Write(db.Name, phase); err != nil {
		return false, err
	}
	return false, nil
}

// Apply runs every phase of every database in dependency order: create
// before post-create within a database, databases independent of each other.
// The first failure stops the run; already-completed phases are skipped.
func (r Runner) Apply(ctx context.Context, dbs []registry.Database) error {
	for _, db := range dbs {
		if _, err := r.Run(ctx, db, PhaseCreate); err != nil {
			return err
		}
		if db.PostCreate == "" {
			continue
		}
		if _, err := r.Run(ctx, db, PhasePostCreate); err != nil {
			return err
		}
	}
	return nil
}
