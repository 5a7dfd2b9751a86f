package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/papertrade/ledger/journal"
)

var settlementsCmd = &cobra.Command{
	Use:   "settlements",
	Short: "Query the settlement journal",
	Long: `List settlements from a SQLite journal, optionally restricted to a
date range (YYYY-MM-DD, close-time based, end exclusive).

Example:
  ledger settlements --db ./journal.db --from 2026-08-01 --to 2026-09-01`,
	RunE: runSettlements,
}

var (
	settlementsDB   string
	settlementsFrom string
	settlementsTo   string
)

func init() {
	rootCmd.AddCommand(settlementsCmd)

	settlementsCmd.Flags().StringVar(&settlementsDB, "db", "", "path to SQLite journal (required)")
	settlementsCmd.Flags().StringVar(&settlementsFrom, "from", "", "start date, inclusive (YYYY-MM-DD)")
	settlementsCmd.Flags().StringVar(&settlementsTo, "to", "", "end date, exclusive (YYYY-MM-DD)")
	settlementsCmd.MarkFlagRequired("db")
}

func runSettlements(cmd *cobra.Command, args []string) error {
	start := time.Time{}
	end := time.Now().UTC().Add(24 * time.Hour)

	var err error
	if settlementsFrom != "" {
		start, err = time.Parse("2006-01-02", settlementsFrom)
		if err != nil {
			return fmt.Errorf("parse --from: %w", err)
		}
	}
	if settlementsTo != "" {
		end, err = time.Parse("2006-01-02", settlementsTo)
		if err != nil {
			return fmt.Errorf("parse --to: %w", err)
		}
	}

	j, err := journal.NewSQLite(settlementsDB)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	recs, err := j.ListSettlementsBetween(start, end)
	if err != nil {
		return err
	}

	if len(recs) == 0 {
		fmt.Println("No settlements in range.")
		return nil
	}

	var total float64
	fmt.Printf("%-26s  %-10s  %-5s  %12s  %12s  %12s  %s\n",
		"POSITION", "SYMBOL", "SIDE", "ENTRY", "EXIT", "REALIZED", "CLOSED")
	for _, r := range recs {
		total += r.RealizedPL
		fmt.Printf("%-26s  %-10s  %-5s  %12.4f  %12.4f  %12.2f  %s\n",
			r.PositionID, r.Symbol, r.Direction, r.EntryPrice, r.ExitPrice,
			r.RealizedPL, r.CloseTime.Format(time.RFC3339))
	}
	fmt.Printf("\n%d settlement(s), net realized P&L: %.2f\n", len(recs), total)
	return nil
}
