package sequence

import (
	"fmt"
	"io"
	"strings"

	"github.com/coreos/go-systemd/v22/unit"

	"github.com/keeganpoppen/nixcloud-webservices/pkg/provision"
)

// UnitFiles renders the graph as systemd unit files: one oneshot service per
// task, one readiness target per database, and the global target. The map
// key is the unit file name. Rendering the same graph twice produces
// byte-identical output.
func (g *Graph) UnitFiles() (map[string]string, error) {
	files := make(map[string]string)
	for _, t := range g.tasks {
		body, err := serialize(taskUnit(t))
		if err != nil {
			return nil, fmt.Errorf("failed to render unit for %s: %w", t.Unit(), err)
		}
		files[t.Unit()] = body
	}

	for _, db := range g.order {
		name := provision.ReadyTarget(db)
		body, err := serialize(g.readyTarget(db))
		if err != nil {
			return nil, fmt.Errorf("failed to render unit for %s: %w", name, err)
		}
		files[name] = body
	}

	body, err := serialize(g.globalTarget())
	if err != nil {
		return nil, fmt.Errorf("failed to render unit for %s: %w", g.opts.Target, err)
	}
	files[g.opts.Target] = body

	return files, nil
}

// taskUnit expresses the task descriptor as unit options. The marker is
// evaluated by systemd before the task body runs (ConditionPathExists with a
// negation) and written by ExecStartPost only after the body succeeded; the
// "+" prefix writes it with full privileges since the state directory is not
// owned by the task's execution identity.
func taskUnit(t provision.Task) []*unit.UnitOption {
	opts := []*unit.UnitOption{
		unit.NewUnitOption("Unit", "Description", fmt.Sprintf("Provision PostgreSQL database %s (%s)", t.Database, t.Phase)),
	}
	for _, a := range t.After {
		opts = append(opts, unit.NewUnitOption("Unit", "After", a))
	}
	for _, r := range t.Requires {
		opts = append(opts, unit.NewUnitOption("Unit", "Requires", r))
	}
	for _, b := range t.Before {
		opts = append(opts, unit.NewUnitOption("Unit", "Before", b))
	}
	opts = append(opts,
		unit.NewUnitOption("Unit", "ConditionPathExists", "!"+t.Marker),
		unit.NewUnitOption("Service", "Type", "oneshot"),
		unit.NewUnitOption("Service", "RemainAfterExit", "yes"),
		unit.NewUnitOption("Service", "User", t.User),
		unit.NewUnitOption("Service", "ExecStart", execLine(t.Command)),
		unit.NewUnitOption("Service", "ExecStartPost", "+/bin/touch "+t.Marker),
	)
	return opts
}

func (g *Graph) readyTarget(db string) []*unit.UnitOption {
	opts := []*unit.UnitOption{
		unit.NewUnitOption("Unit", "Description", fmt.Sprintf("PostgreSQL database %s ready", db)),
	}
	for _, t := range g.byDB[db] {
		opts = append(opts,
			unit.NewUnitOption("Unit", "Requires", t.Unit()),
			unit.NewUnitOption("Unit", "After", t.Unit()),
		)
	}
	opts = append(opts, unit.NewUnitOption("Unit", "Before", g.opts.Target))
	return opts
}

func (g *Graph) globalTarget() []*unit.UnitOption {
	opts := []*unit.UnitOption{
		unit.NewUnitOption("Unit", "Description", "All nixcloud PostgreSQL databases ready"),
	}
	for _, db := range g.order {
		ready := provision.ReadyTarget(db)
		opts = append(opts,
			unit.NewUnitOption("Unit", "Wants", ready),
			unit.NewUnitOption("Unit", "After", ready),
		)
	}
	return opts
}

// execLine joins an argv into a systemd ExecStart line, quoting arguments
// containing whitespace.
func execLine(argv []string) string {
	parts := make([]string, len(argv))
	for i, arg := range argv {
		if strings.ContainsAny(arg, " \t") {
			parts[i] = fmt.Sprintf("%q", arg)
			continue
		}
		parts[i] = arg
	}
	return strings.Join(parts, " ")
}

func serialize(opts []*unit.UnitOption) (string, error) {
	data, err := io.ReadAll(unit.Serialize(opts))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
