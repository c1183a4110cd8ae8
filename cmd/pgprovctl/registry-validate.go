package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/keeganpoppen/nixcloud-webservices/pkg/registry"
)

// registryValidateCmd represents the registry validate command
var registryValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the database registry",
	Long: `Validate the registry file without generating anything.

Malformed entries are configuration errors; they reject the build before any
provisioning task would be derived from them.

Example:
  pgprovctl registry validate`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fatal(err)
		}
		reg, err := registry.Load(cfg.RegistryPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Registry is invalid: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registry is valid (%d entries)\n", len(reg.Databases))
	},
}

func init() {
	registryCmd.AddCommand(registryValidateCmd)
}
