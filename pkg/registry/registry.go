package registry

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// nameRgx constrains database and role names. Marker file paths and unit
// names are derived from these, so path separators and shell metacharacters
// must never appear.
var nameRgx = regexp.MustCompile(`^[a-z_][a-z0-9_-]*$`)

// Database is one entry of the multi-engine database registry, as populated
// by Parse. Entries are immutable for a given run.
type Database struct {
	// Name is the unique identifier, also the engine-level database name.
	Name string

	// Engine selects the database engine this entry belongs to.
	Engine Engine

	// Owner is the role that owns the database at creation time.
	Owner string

	// AdditionalOwners are roles granted peer access mapped onto Owner.
	AdditionalOwners []string

	// PostCreate is an optional SQL script run exactly once after creation,
	// trimmed of surrounding whitespace. Empty means no post-create phase.
	PostCreate string

	// Socket overrides the engine's default unix socket directory.
	Socket string
}

// Registry is the full multi-engine database registry, ordered by name.
type Registry struct {
	Databases []Database
}

// entry is the decode shape of one registry value. Engine is a pointer so a
// missing engine key is distinguishable from the zero value and rejected,
// instead of silently defaulting to the first engine.
type entry struct {
	Engine           *Engine  `yaml:"engine"`
	Owner            string   `yaml:"owner"`
	AdditionalOwners []string `yaml:"additional_owners"`
	PostCreate       string   `yaml:"post_create"`
	Socket           string   `yaml:"socket"`
}

// Parse decodes a registry document. The document is a mapping from database
// name to entry; yaml.v3 rejects duplicate keys, which enforces name
// uniqueness. Entries are returned sorted by name so every build of the
// registry is deterministic. Post-create scripts are trimmed on ingestion, so
// a whitespace-only script means no post-create phase.
func Parse(data []byte) (*Registry, error) {
	var raw map[string]entry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse registry: %w", err)
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	reg := &Registry{Databases: make([]Database, 0, len(raw))}
	for _, name := range names {
		e := raw[name]
		if e.Engine == nil {
			return nil, fmt.Errorf("database %q: engine must be set", name)
		}
		db := Database{
			Name:             name,
			Engine:           *e.Engine,
			Owner:            e.Owner,
			AdditionalOwners: e.AdditionalOwners,
			PostCreate:       strings.TrimSpace(e.PostCreate),
			Socket:           e.Socket,
		}
		if err := db.Validate(); err != nil {
			return nil, err
		}
		reg.Databases = append(reg.Databases, db)
	}
	return reg, nil
}

// Load reads and parses the registry file at path.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry file %s: %w", path, err)
	}
	return Parse(data)
}

// Validate rejects malformed entries at build time, before any task or
// artifact is generated from them.
func (d Database) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("registry entry with empty database name")
	}
	if !nameRgx.MatchString(d.Name) {
		return fmt.Errorf("database %q: name must match %s", d.Name, nameRgx)
	}
	if !d.Engine.IsAEngine() {
		return fmt.Errorf("database %q: unknown engine", d.Name)
	}
	if d.Owner == "" {
		return fmt.Errorf("database %q: owner must not be empty", d.Name)
	}
	if !nameRgx.MatchString(d.Owner) {
		return fmt.Errorf("database %q: owner %q must match %s", d.Name, d.Owner, nameRgx)
	}
	for _, owner := range d.AdditionalOwners {
		if !nameRgx.MatchString(owner) {
			return fmt.Errorf("database %q: additional owner %q must match %s", d.Name, owner, nameRgx)
		}
	}
	return nil
}

// FilterEngine returns the registry entries belonging to the given engine,
// with all other fields unmodified. An empty result is valid and turns the
// provisioning subsystem for that engine into a no-op.
func FilterEngine(reg *Registry, engine Engine) []Database {
	var out []Database
	for _, db := range reg.Databases {
		if db.Engine == engine {
			out = append(out, db)
		}
	}
	return out
}
