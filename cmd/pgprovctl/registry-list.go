package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// registryListCmd represents the registry list command
var registryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List this engine's registry entries",
	Long: `List the PostgreSQL entries of the database registry.

Example:
  pgprovctl registry list`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fatal(err)
		}
		dbs, err := loadSelected(cfg)
		if err != nil {
			fatal(err)
		}

		if len(dbs) == 0 {
			fmt.Println("No PostgreSQL databases declared")
			return
		}
		for _, db := range dbs {
			phases := "create"
			if db.PostCreate != "" {
				phases = "create, post-create"
			}
			owners := db.Owner
			if len(db.AdditionalOwners) > 0 {
				owners += ", " + strings.Join(db.AdditionalOwners, ", ")
			}
			fmt.Printf("%s\towners: %s\tphases: %s\n", db.Name, owners, phases)
		}
	},
}

func init() {
	registryCmd.AddCommand(registryListCmd)
}
