package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/keeganpoppen/nixcloud-webservices/pkg/authmap"
	"github.com/keeganpoppen/nixcloud-webservices/pkg/config"
	"github.com/keeganpoppen/nixcloud-webservices/pkg/provision"
	"github.com/keeganpoppen/nixcloud-webservices/pkg/provision/sequence"
)

const (
	identFileName = "pg_ident_nixcloud.conf"
	hbaFileName   = "pg_hba_nixcloud.conf"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate authentication config and provisioning units",
	Long: `Generate all provisioning artifacts from the database registry.

This renders the peer-authentication identity map, the per-database access
rules, and one systemd oneshot unit per provisioning task, plus the readiness
targets the units order against. All artifacts are rewritten in full; output
is byte-identical for identical inputs.

When provisioning is disabled or the registry has no PostgreSQL entries,
nothing is generated.

Example:
  pgprovctl generate --output /etc/systemd/system`,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		cfg, err := loadConfig()
		if err != nil {
			fatal(err)
		}

		written, err := generateArtifacts(cfg, effectiveConfigPath(), output)
		if err != nil {
			fatal(err)
		}
		if written == 0 {
			fmt.Println("Provisioning disabled or no databases declared; nothing to generate")
			return
		}
		fmt.Printf("Generated %d artifacts in %s\n", written, output)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringP("output", "o", "/etc/systemd/system", "Directory the artifacts are written to")
}

// generateArtifacts builds every artifact and returns how many files were
// written. Zero files means the subsystem is inactive for this build.
func generateArtifacts(cfg config.Config, cfgPath, output string) (int, error) {
	dbs, err := loadSelected(cfg)
	if err != nil {
		return 0, err
	}
	if !cfg.Enable || len(dbs) == 0 {
		return 0, nil
	}

	if err := os.MkdirAll(output, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create output directory %s: %w", output, err)
	}

	files := map[string]string{
		identFileName: authmap.RenderIdent(authmap.IdentMap(dbs)),
		hbaFileName:   authmap.RenderHBA(authmap.HBARules(dbs)),
	}

	tasks, err := provision.NewSynthesizer(cfg, cfgPath).Tasks(dbs)
	if err != nil {
		return 0, err
	}
	graph, err := sequence.Build(tasks, sequence.Options{
		InitUnit:    cfg.InitUnit,
		ServiceUnit: cfg.ServiceUnit,
		Target:      cfg.Target,
	})
	if err != nil {
		return 0, err
	}
	units, err := graph.UnitFiles()
	if err != nil {
		return 0, err
	}
	for name, body := range units {
		files[name] = body
	}

	for name, body := range files {
		path := filepath.Join(output, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			return 0, fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return len(files), nil
}
