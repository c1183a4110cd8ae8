package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/pgprovision"
	ConfigFileName    = "pgprov.yml"
)

// Config holds the provisioning run configuration. A Config is assembled
// once by Load and passed by value into the components that need it; there
// is no global configuration state.
type Config struct {
	// Enable activates the PostgreSQL provisioning subsystem. When false
	// no artifacts or tasks are generated at all.
	Enable bool `yaml:"enable"`

	// StateDir holds the per-phase provisioning markers.
	StateDir string `yaml:"state_dir"`

	// RunDir is the directory containing the PostgreSQL unix socket.
	RunDir string `yaml:"run_dir"`

	// DataDir is the PostgreSQL data directory for this engine version.
	DataDir string `yaml:"data_dir"`

	// RegistryPath is the multi-engine database registry file.
	RegistryPath string `yaml:"registry"`

	// AdminRole is the administrative role used by create tasks.
	AdminRole string `yaml:"admin_role"`

	// ServiceUnit is the base engine service every task runs after.
	ServiceUnit string `yaml:"service_unit"`

	// InitUnit is the cluster initialization unit (initdb).
	InitUnit string `yaml:"init_unit"`

	// Target is the unit that signals "all databases ready" to dependents.
	Target string `yaml:"target"`

	// Executable is the path the generated units use to invoke this tool.
	Executable string `yaml:"executable"`
}

// Default returns a Config with default values.
func Default() Config {
	return Config{
		Enable:       true,
		StateDir:     "/var/lib/pgprovision",
		RunDir:       "/run/postgresql",
		DataDir:      "/var/lib/postgresql/16",
		RegistryPath: "/etc/pgprovision/databases.yml",
		AdminRole:    "postgres",
		ServiceUnit:  "postgresql.service",
		InitUnit:     "nixcloud-postgresql-initdb.service",
		Target:       "nixcloud-postgresql-ready.target",
		Executable:   "/usr/bin/pgprovctl",
	}
}

// Load loads configuration from a file and environment variables.
// Environment variables take precedence over file values. A missing file is
// not an error; defaults and the environment still apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("PGPROV_CONFIG_PATH")
	}
	if path == "" {
		path = filepath.Join(DefaultConfigPath, ConfigFileName)
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv("PGPROV_ENABLE"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Enable = b
		}
	}
	for env, dst := range map[string]*string{
		"PGPROV_STATE_DIR":  &cfg.StateDir,
		"PGPROV_RUN_DIR":    &cfg.RunDir,
		"PGPROV_DATA_DIR":   &cfg.DataDir,
		"PGPROV_REGISTRY":   &cfg.RegistryPath,
		"PGPROV_ADMIN_ROLE": &cfg.AdminRole,
		"PGPROV_EXECUTABLE": &cfg.Executable,
	} {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			*dst = v
		}
	}
}

// Validate checks that the configuration is usable. Validation failures are
// configuration errors and reject the run before any task is generated.
func (c Config) Validate() error {
	for name, value := range map[string]string{
		"state_dir":    c.StateDir,
		"run_dir":      c.RunDir,
		"registry":     c.RegistryPath,
		"admin_role":   c.AdminRole,
		"service_unit": c.ServiceUnit,
		"target":       c.Target,
		"executable":   c.Executable,
	} {
		if value == "" {
			return fmt.Errorf("config field %s must not be empty", name)
		}
	}
	if !filepath.IsAbs(c.StateDir) {
		return fmt.Errorf("state_dir must be an absolute path, got %q", c.StateDir)
	}
	if !filepath.IsAbs(c.RunDir) {
		return fmt.Errorf("run_dir must be an absolute path, got %q", c.RunDir)
	}
	return nil
}
