package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papertrade/ledger/ledger"
	"github.com/papertrade/ledger/notify"
)

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open a leveraged position",
	Long: `Open a position against the persisted ledger state.

The entry price is captured from --price, which stands in for the live
mark at call time. Margin is debited from the balance immediately.

Example:
  ledger open --symbol BTC/USDT --side long --margin 100 --leverage 100 --price 67245.50`,
	RunE: runOpen,
}

var (
	openConfigPath string
	openSymbol     string
	openSide       string
	openMargin     float64
	openLeverage   int
	openPrice      float64
)

func init() {
	rootCmd.AddCommand(openCmd)

	openCmd.Flags().StringVarP(&openConfigPath, "config", "f", "", "path to config file (YAML or JSON)")
	openCmd.Flags().StringVar(&openSymbol, "symbol", "", "instrument symbol, e.g. BTC/USDT (required)")
	openCmd.Flags().StringVar(&openSide, "side", "", "long or short (required)")
	openCmd.Flags().Float64Var(&openMargin, "margin", 0, "margin to commit (required)")
	openCmd.Flags().IntVar(&openLeverage, "leverage", 1, "leverage multiplier")
	openCmd.Flags().Float64Var(&openPrice, "price", 0, "current mark price (required)")
	openCmd.MarkFlagRequired("symbol")
	openCmd.MarkFlagRequired("side")
	openCmd.MarkFlagRequired("margin")
	openCmd.MarkFlagRequired("price")
}

func runOpen(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(openConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	direction := ledger.Long
	if strings.EqualFold(openSide, "short") {
		direction = ledger.Short
	} else if !strings.EqualFold(openSide, "long") {
		return fmt.Errorf("side must be long or short, got %q", openSide)
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

	pos, err := l.Open(context.Background(), ledger.OpenRequest{
		Symbol:    openSymbol,
		Direction: direction,
		Margin:    openMargin,
		Leverage:  openLeverage,
		MarkPrice: openPrice,
	})
	if err != nil {
		if errors.Is(err, ledger.ErrInsufficientBalance) ||
			errors.Is(err, ledger.ErrInvalidAmount) ||
			errors.Is(err, ledger.ErrInvalidDirection) ||
			errors.Is(err, ledger.ErrInvalidPrice) ||
			errors.Is(err, ledger.ErrLeverageExceeded) ||
			errors.Is(err, ledger.ErrUnknownSymbol) {
			// Validation failures are reported once, not fatal.
			sink.Notify("Open rejected", err.Error(), notify.Error)
			return nil
		}
		return err
	}

	sink.Notify("Position opened",
		fmt.Sprintf("%s %s id=%s entry=%.4f margin=%.2f leverage=%dx balance=%.2f",
			pos.Direction, pos.Symbol, pos.ID, pos.EntryPrice, pos.Margin, pos.Leverage, l.Account().Balance),
		notify.Success)
	return nil
}
