// Package sequence turns synthesized provisioning tasks into the static
// ordering graph the external scheduler consumes.
//
// The graph always has the shape
//
//	cluster-init -> base-service -> {create(db) -> post-create(db)} -> db-ready(db) -> target
//
// with one independent subgraph per database. The package only declares
// ordering edges; scheduling, parallelism and failure propagation belong to
// the scheduler. For systemd the graph is rendered as oneshot service units
// carrying the marker condition, per-database readiness targets, and one
// global target dependents can order against.
package sequence
