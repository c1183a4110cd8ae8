package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// registryCmd represents the registry command
var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Inspect the database registry",
	Long:  `Inspect and validate the multi-engine database registry.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'registry' requires a subcommand (list, validate)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(registryCmd)
}
