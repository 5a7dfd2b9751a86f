package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/papertrade/ledger/journal"
	"github.com/papertrade/ledger/ledger"
	"github.com/papertrade/ledger/store"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted open/mark/close walkthrough",
	Long: `Run a scripted scenario against a throwaway state database.

Shows the full workflow:
  1. Opening a leveraged position (margin debited)
  2. Marking it to market as the price moves
  3. Closing it (margin + P&L settled into the balance)
  4. A rejected oversized open and an idempotent double close`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	fmt.Println("=== Position Ledger Demo ===")
	fmt.Println()

	dir, err := os.MkdirTemp("", "ledger-demo-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	st, err := store.Open(filepath.Join(dir, "state.db"))
	if err != nil {
		return err
	}
	defer st.Close()

	j, err := journal.NewCSV("./demo-settlements.csv", "./demo-equity.csv")
	if err != nil {
		return err
	}
	defer j.Close()

	l := ledger.New(ledger.Account{
		ID:       "DEMO-001",
		Currency: "USDT",
		Balance:  10_000,
	}, st, j)

	mark := 67245.50
	fmt.Printf("Starting balance: $%.2f\n", l.Account().Balance)
	fmt.Printf("BTC/USDT mark: %.2f\n\n", mark)

	fmt.Println("Opening LONG BTC/USDT, margin 100, leverage 100x...")
	pos, err := l.Open(ctx, ledger.OpenRequest{
		Symbol:    "BTC/USDT",
		Direction: ledger.Long,
		Margin:    100,
		Leverage:  100,
		MarkPrice: mark,
	})
	if err != nil {
		return err
	}
	fmt.Printf("  Opened: id=%s entry=%.2f notional=%.2f\n", pos.ID, pos.EntryPrice, pos.Notional())
	fmt.Printf("  Balance after margin debit: $%.2f\n\n", l.Account().Balance)

	fmt.Println("Simulating a +1% move...")
	mark *= 1.01
	l.MarkPrice("BTC/USDT", mark)
	for _, p := range l.Positions() {
		fmt.Printf("  Mark %.2f -> unrealized P&L: $%.2f\n", mark, p.UnrealizedPL)
	}
	fmt.Printf("  Equity: $%.2f\n\n", l.Equity())

	fmt.Println("Closing the position...")
	settled, err := l.Close(ctx, pos.ID)
	if err != nil {
		return err
	}
	fmt.Printf("  Realized P&L: $%.2f\n", settled.RealizedPL)
	fmt.Printf("  Balance after settlement: $%.2f\n\n", settled.Balance)

	fmt.Println("Trying to open with margin larger than the balance...")
	_, err = l.Open(ctx, ledger.OpenRequest{
		Symbol:    "BTC/USDT",
		Direction: ledger.Short,
		Margin:    l.Account().Balance * 2,
		Leverage:  10,
		MarkPrice: mark,
	})
	fmt.Printf("  Rejected: %v\n\n", err)

	fmt.Println("Closing the same position a second time...")
	_, err = l.Close(ctx, pos.ID)
	fmt.Printf("  Rejected: %v\n\n", err)

	fmt.Printf("Final balance: $%.2f\n", l.Account().Balance)
	fmt.Println("✓ Check demo-settlements.csv and demo-equity.csv for the journal rows.")

	return nil
}
