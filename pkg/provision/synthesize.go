package provision

import (
	"fmt"

	"github.com/keeganpoppen/nixcloud-webservices/pkg/config"
	"github.com/keeganpoppen/nixcloud-webservices/pkg/registry"
)

// Synthesizer derives the set of provisioning tasks for a registry slice.
type Synthesizer struct {
	cfg        config.Config
	markers    MarkerStore
	configPath string
}

// NewSynthesizer returns a Synthesizer for the given configuration.
// configPath is the configuration file the generated commands point back at,
// so a task invoked by the scheduler sees the same configuration as the
// build that generated it.
func NewSynthesizer(cfg config.Config, configPath string) *Synthesizer {
	return &Synthesizer{
		cfg:        cfg,
		markers:    MarkerStore{Dir: cfg.StateDir},
		configPath: configPath,
	}
}

// ReadyTarget returns the per-database readiness unit name. Dependents of a
// single database order against this rather than the global target.
func ReadyTarget(database string) string {
	return fmt.Sprintf("nixcloud-pgdb-%s-ready.target", database)
}

// Tasks synthesizes the ordered tasks for the given databases: one create
// task per database, plus one post-create task when the entry declares a
// post-create script. Per-database sequences are independent of each other;
// all ordering below is intra-database or against the shared base service.
func (s *Synthesizer) Tasks(dbs []registry.Database) ([]Task, error) {
	var tasks []Task
	for _, db := range dbs {
		if err := db.Validate(); err != nil {
			return nil, err
		}

		create := Task{
			Database: db.Name,
			Phase:    PhaseCreate,
			Command:  s.command(db.Name, PhaseCreate),
			User:     s.cfg.AdminRole,
			Marker:   s.markers.Path(db.Name, PhaseCreate),
			After:    []string{s.cfg.ServiceUnit},
			Requires: []string{s.cfg.ServiceUnit},
			Before:   []string{ReadyTarget(db.Name)},
		}
		if err := create.Validate(); err != nil {
			return nil, err
		}
		tasks = append(tasks, create)

		if db.PostCreate == "" {
			continue
		}

		// Post-create runs as the owner, not the admin: once the database
		// exists there is no reason to keep administrative privileges.
		postCreate := Task{
			Database: db.Name,
			Phase:    PhasePostCreate,
			Command:  s.command(db.Name, PhasePostCreate),
			User:     db.Owner,
			Marker:   s.markers.Path(db.Name, PhasePostCreate),
			After:    []string{s.cfg.ServiceUnit, create.Unit()},
			Requires: []string{s.cfg.ServiceUnit, create.Unit()},
			Before:   []string{ReadyTarget(db.Name)},
		}
		if err := postCreate.Validate(); err != nil {
			return nil, err
		}
		tasks = append(tasks, postCreate)
	}
	return tasks, nil
}

func (s *Synthesizer) command(database string, phase Phase) []string {
	return []string{
		s.cfg.Executable,
		"--config", s.configPath,
		"run",
		"--database", database,
		"--phase", phase.String(),
	}
}
