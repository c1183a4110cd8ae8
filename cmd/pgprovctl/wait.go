package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/keeganpoppen/nixcloud-webservices/pkg/pgexec"
)

// waitCmd represents the wait command
var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for the PostgreSQL server to be ready",
	Long: `Wait for the PostgreSQL server to accept connections.

This command repeatedly opens an administrative connection over the unix
socket until it succeeds or the maximum number of retries is reached.

Example:
  pgprovctl wait
  pgprovctl wait --retries 60`,
	Run: func(cmd *cobra.Command, args []string) {
		retries, _ := cmd.Flags().GetInt("retries")

		if err := waitForServer(retries); err != nil {
			fmt.Fprintf(os.Stderr, "Server did not become ready: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("PostgreSQL is ready")
	},
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().IntP("retries", "r", 90, "Number of retries")
}

func waitForServer(retries int) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	exec := pgexec.New(pgexec.Config{RunDir: cfg.RunDir, AdminRole: cfg.AdminRole})

	fmt.Println("Waiting for PostgreSQL to be ready...")

	for i := 0; i < retries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := exec.Ping(ctx)
		cancel()
		if err == nil {
			fmt.Println()
			return nil
		}

		fmt.Print(".")
		time.Sleep(1 * time.Second)
	}

	fmt.Println()
	return fmt.Errorf("PostgreSQL is not ready after %d seconds", retries)
}
