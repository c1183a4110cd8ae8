package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/keeganpoppen/nixcloud-webservices/pkg/config"
	"github.com/keeganpoppen/nixcloud-webservices/pkg/registry"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "pgprovctl",
	Short: "Provision declaratively managed PostgreSQL databases",
	Long: `pgprovctl turns a declarative database registry into PostgreSQL
peer-authentication configuration and idempotent one-shot provisioning
units, and executes the individual provisioning tasks those units invoke.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the pgprov.yml configuration file")
}

// effectiveConfigPath is the configuration file path generated commands
// reference, so scheduler-invoked runs see the build's configuration.
func effectiveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	if env := os.Getenv("PGPROV_CONFIG_PATH"); env != "" {
		return env
	}
	return filepath.Join(config.DefaultConfigPath, config.ConfigFileName)
}

func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}

// loadSelected loads the registry and returns this engine's entries.
func loadSelected(cfg config.Config) ([]registry.Database, error) {
	reg, err := registry.Load(cfg.RegistryPath)
	if err != nil {
		return nil, err
	}
	return registry.FilterEngine(reg, registry.EnginePostgreSQL), nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
