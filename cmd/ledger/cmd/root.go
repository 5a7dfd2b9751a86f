package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ledger",
	Short: "A paper-trading position ledger with margin accounting",
	Long: `Ledger is a paper-trading position ledger written in Go.

It provides tools for:
  - Opening and closing simulated leveraged positions
  - Live mark-to-market P&L over a simulated price feed
  - Margin debit/credit settlement into an account balance
  - Durable state snapshots that survive restarts
  - A settlement journal with CSV and SQLite backends`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
