package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/keeganpoppen/nixcloud-webservices/pkg/pgexec"
	"github.com/keeganpoppen/nixcloud-webservices/pkg/provision"
)

// applyCmd represents the apply command
var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Provision all declared databases in-process",
	Long: `Provision every declared database now, without the scheduler.

Phases run in dependency order (create before post-create, databases
independent), honoring the same markers the generated units use: completed
phases are skipped and markers are written as phases succeed. A failed phase
stops the run and leaves its marker absent, so the next apply retries it.

Example:
  pgprovctl apply`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := applyAll(); err != nil {
			fmt.Fprintf(os.Stderr, "Provisioning failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All databases provisioned")
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)
}

func applyAll() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Enable {
		return fmt.Errorf("provisioning is disabled in the configuration")
	}
	dbs, err := loadSelected(cfg)
	if err != nil {
		return err
	}

	runner := provision.Runner{
		Markers: provision.MarkerStore{Dir: cfg.StateDir},
		Exec:    pgexec.New(pgexec.Config{RunDir: cfg.RunDir, AdminRole: cfg.AdminRole}),
	}
	return runner.Apply(context.Background(), dbs)
}
