package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keeganpoppen/nixcloud-webservices/pkg/provision"
	"github.com/keeganpoppen/nixcloud-webservices/pkg/provision/sequence"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the provisioning dependency graph",
	Long: `Print the task ordering graph in Graphviz DOT format.

Example:
  pgprovctl graph | dot -Tsvg -o provisioning.svg`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fatal(err)
		}
		dbs, err := loadSelected(cfg)
		if err != nil {
			fatal(err)
		}

		tasks, err := provision.NewSynthesizer(cfg, effectiveConfigPath()).Tasks(dbs)
		if err != nil {
			fatal(err)
		}
		graph, err := sequence.Build(tasks, sequence.Options{
			InitUnit:    cfg.InitUnit,
			ServiceUnit: cfg.ServiceUnit,
			Target:      cfg.Target,
		})
		if err != nil {
			fatal(err)
		}
		fmt.Print(graph.DOT())
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
