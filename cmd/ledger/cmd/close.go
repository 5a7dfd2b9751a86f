package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/papertrade/ledger/ledger"
	"github.com/papertrade/ledger/notify"
)

var closeCmd = &cobra.Command{
	Use:   "close <position-id>",
	Short: "Close an open position and settle its P&L",
	Long: `Close a position by ID. Margin plus the P&L from the most recent
mark is credited back to the balance, and a settlement row is journaled.

Optionally pass --price to revalue the position at a final mark before
settling.

Example:
  ledger close 01J9ZC4QJ4W95W0V0S2M0XK2A9 --price 67917.95`,
	Args: cobra.ExactArgs(1),
	RunE: runClose,
}

var (
	closeConfigPath string
	closePrice      float64
)

func init() {
	rootCmd.AddCommand(closeCmd)

	closeCmd.Flags().StringVarP(&closeConfigPath, "config", "f", "", "path to config file (YAML or JSON)")
	closeCmd.Flags().Float64Var(&closePrice, "price", 0, "final mark price (optional)")
}

func runClose(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(closeConfigPath)
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

	sink := &notify.LogSink{Log: slog.New(slog.NewTextHandler(os.Stdout, nil))}

	positionID := args[0]
	if closePrice > 0 {
		for _, p := range l.Positions() {
			if p.ID == positionID {
				l.MarkPrice(p.Symbol, closePrice)
				break
			}
		}
	}

	settled, err := l.Close(context.Background(), positionID)
	if err != nil {
		if errors.Is(err, ledger.ErrPositionNotFound) {
			// Already closed or never existed; a no-op for the user.
			sink.Notify("Position not found", positionID, notify.Info)
			return nil
		}
		return err
	}

	sink.Notify("Position closed",
		fmt.Sprintf("%s id=%s realized=%.2f margin=%.2f balance=%.2f",
			settled.Symbol, settled.PositionID, settled.RealizedPL, settled.Margin, settled.Balance),
		notify.Success)
	return nil
}
