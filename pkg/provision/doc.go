// Package provision synthesizes the idempotent one-shot tasks that set up
// each declared PostgreSQL database.
//
// Each database gets a create task (role and database creation, run as the
// administrative role) and, when the registry entry declares a post-create
// script, a post-create task run as the database owner. Tasks are typed
// descriptors validated at construction; idempotency is an explicit marker
// file per (database, phase): the task is skipped when the marker exists and
// the marker is written after success. The marker is the only completion
// signal, but the task bodies themselves are written to be safe to re-run,
// so a retry after a mid-task failure converges instead of aborting.
//
// Tasks carry ordering edges (After/Requires/Before on unit names) but never
// schedule anything themselves; sequencing and execution belong to the
// external scheduler (see the sequence subpackage), or to Runner.Apply when
// provisioning runs in-process.
package provision
