package sequence

import (
	"fmt"
	"strings"

	"github.com/keeganpoppen/nixcloud-webservices/pkg/provision"
)

// Options names the shared units every per-database subgraph hangs off.
type Options struct {
	// InitUnit performs cluster initialization and precedes the service.
	InitUnit string

	// ServiceUnit is the base engine service.
	ServiceUnit string

	// Target is the unit signalling that every database is ready.
	Target string
}

// Edge is one ordering constraint: From must complete before To starts.
type Edge struct {
	From string
	To   string
}

// Graph is the static ordering graph handed to the external scheduler. It is
// built once per configuration build and never re-evaluated at runtime.
type Graph struct {
	opts  Options
	tasks []provision.Task
	// order lists databases in task order; byDB groups their tasks.
	order []string
	byDB  map[string][]provision.Task
}

// Build validates the tasks and assembles the ordering graph
//
//	cluster-init -> base-service -> {create(db) -> post-create(db)} -> db-ready(db) -> target
//
// Per-database subgraphs are mutually independent; the scheduler may run
// them concurrently.
func Build(tasks []provision.Task, opts Options) (*Graph, error) {
	if opts.InitUnit == "" || opts.ServiceUnit == "" || opts.Target == "" {
		return nil, fmt.Errorf("sequence options must name init, service and target units")
	}

	g := &Graph{opts: opts, byDB: map[string][]provision.Task{}}
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, ok := g.byDB[t.Database]; !ok {
			g.order = append(g.order, t.Database)
		}
		g.byDB[t.Database] = append(g.byDB[t.Database], t)
	}
	g.tasks = tasks
	return g, nil
}

// Edges returns every ordering constraint of the graph in a stable order.
func (g *Graph) Edges() []Edge {
	edges := []Edge{{From: g.opts.InitUnit, To: g.opts.ServiceUnit}}
	for _, t := range g.tasks {
		for _, after := range t.After {
			edges = append(edges, Edge{From: after, To: t.Unit()})
		}
		for _, before := range t.Before {
			edges = append(edges, Edge{From: t.Unit(), To: before})
		}
	}
	for _, db := range g.order {
		edges = append(edges, Edge{From: provision.ReadyTarget(db), To: g.opts.Target})
	}
	return dedupe(edges)
}

// DOT renders the graph in Graphviz format, for inspection only.
func (g *Graph) DOT() string {
	var b strings.Builder
	b.WriteString("digraph provisioning {\n")
	b.WriteString("  rankdir=LR;\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&b, "  %q -> %q;\n", e.From, e.To)
	}
	b.WriteString("}\n")
	return b.String()
}

func dedupe(edges []Edge) []Edge {
	seen := make(map[Edge]bool, len(edges))
	out := edges[:0]
	for _, e := range edges {
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}
