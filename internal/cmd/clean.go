package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gradeflow/jobwatch/internal/config"
	"github.com/gradeflow/jobwatch/internal/ledger"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove all completion markers from the session ledger",
	Long: `Clean resets the session: every job becomes eligible to notify again.
The watcher itself never expires markers, so long-lived sessions
accumulate them until cleaned.`,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	sessionLedger, err := ledger.NewFileLedger(cfg.Session.ResolveSessionDir())
	if err != nil {
		return fmt.Errorf("open session ledger: %w", err)
	}

	removed, err := sessionLedger.Clear()
	if err != nil {
		return fmt.Errorf("clear session ledger: %w", err)
	}

	fmt.Printf("removed %d completion markers from %s\n", removed, sessionLedger.BaseDir())
	return nil
}
