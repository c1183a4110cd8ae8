package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate artifacts whenever the registry changes",
	Long: `Watch the registry file and regenerate all artifacts on change.

Every change produces a full rewrite of the authentication configuration and
the provisioning units, exactly as "pgprovctl generate" would.

Example:
  pgprovctl watch --output /etc/systemd/system`,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		if err := watchRegistry(output); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to watch registry: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringP("output", "o", "/etc/systemd/system", "Directory the artifacts are written to")
}

func watchRegistry(output string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(cfg.RegistryPath); err != nil {
		return fmt.Errorf("failed to watch file %s: %w", cfg.RegistryPath, err)
	}

	fmt.Printf("Watching %s for registry changes\n", cfg.RegistryPath)

	// Handle signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				fmt.Printf("[%s] Registry modified, regenerating...\n", time.Now().Format(time.RFC3339))

				// Reload the configuration too; the registry path may have
				// been the only thing that changed on disk, but entries are
				// validated against the current config.
				cfg, err := loadConfig()
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
					continue
				}

				written, err := generateArtifacts(cfg, effectiveConfigPath(), output)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error regenerating artifacts: %v\n", err)
				} else {
					fmt.Printf("Generated %d artifacts in %s\n", written, output)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
		case <-sigChan:
			fmt.Println("\nShutting down...")
			return nil
		}
	}
}
