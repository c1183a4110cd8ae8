package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/keeganpoppen/nixcloud-webservices/pkg/pgexec"
	"github.com/keeganpoppen/nixcloud-webservices/pkg/provision"
	"github.com/keeganpoppen/nixcloud-webservices/pkg/registry"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one provisioning phase for one database",
	Long: `Run a single provisioning task.

This is the command the generated units invoke. It honors the same markers
the units do: a phase whose marker exists is skipped without connecting to
the server, and the marker is written when the phase succeeds. The unit's
ConditionPathExists and ExecStartPost encode the same contract on the
scheduler side, so direct invocation and scheduler invocation are
interchangeable.

Example:
  pgprovctl run --database app --phase create
  pgprovctl run --database app --phase post-create`,
	Run: func(cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("database")
		phaseStr, _ := cmd.Flags().GetString("phase")

		if err := runPhase(name, phaseStr); err != nil {
			fmt.Fprintf(os.Stderr, "Provisioning failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("database", "d", "", "Database name from the registry")
	runCmd.Flags().StringP("phase", "p", "", "Provisioning phase (create, post-create)")
	_ = runCmd.MarkFlagRequired("database")
	_ = runCmd.MarkFlagRequired("phase")
}

func runPhase(name, phaseStr string) error {
	phase, err := provision.PhaseString(phaseStr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dbs, err := loadSelected(cfg)
	if err != nil {
		return err
	}
	db, err := findDatabase(dbs, name)
	if err != nil {
		return err
	}

	runner := provision.Runner{
		Markers: provision.MarkerStore{Dir: cfg.StateDir},
		Exec:    pgexec.New(pgexec.Config{RunDir: cfg.RunDir, AdminRole: cfg.AdminRole}),
	}
	skipped, err := runner.Run(context.Background(), db, phase)
	if err != nil {
		return err
	}
	if skipped {
		fmt.Printf("Phase %s for database %s already completed, nothing to do\n", phase, name)
	}
	return nil
}

func findDatabase(dbs []registry.Database, name string) (registry.Database, error) {
	for _, db := range dbs {
		if db.Name == name {
			return db, nil
		}
	}
	return registry.Database{}, fmt.Errorf("database %q is not declared in the registry", name)
}
