package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var positionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "List open positions from the persisted snapshot",
	RunE:  runPositions,
}

var positionsConfigPath string

func init() {
	rootCmd.AddCommand(positionsCmd)

	positionsCmd.Flags().StringVarP(&positionsConfigPath, "config", "f", "", "path to config file (YAML or JSON)")
}

func runPositions(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(positionsConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	j, err := openJournal(cfg)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer j.Close()

	l, st, err := restoreLedger(cfg, j)
	if err != nil {
		return err
	}
	defer st.Close()

	acct := l.Account()
	open := l.Positions()

	fmt.Printf("Account %s: balance %.2f %s, equity %.2f, %d open position(s)\n\n",
		acct.ID, acct.Balance, acct.Currency, l.Equity(), len(open))

	if len(open) == 0 {
		return nil
	}

	fmt.Printf("%-26s  %-10s  %-5s  %12s  %10s  %4s  %12s\n",
		"ID", "SYMBOL", "SIDE", "ENTRY", "MARGIN", "LEV", "UNREALIZED")
	for _, p := range open {
		fmt.Printf("%-26s  %-10s  %-5s  %12.4f  %10.2f  %3dx  %12.2f\n",
			p.ID, p.Symbol, p.Direction, p.EntryPrice, p.Margin, p.Leverage, p.UnrealizedPL)
	}
	return nil
}
