package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/papertrade/ledger/feed"
	"github.com/papertrade/ledger/internal/logger"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the ledger against the simulated price feed",
	Long: `Restore the ledger from its last snapshot and keep every open
position marked to market with a simulated price feed until interrupted.

Open and close positions from another terminal with 'ledger open' and
'ledger close'; this process revalues them on every tick.

Example:
  ledger run --config examples/configs/basic.yaml`,
	RunE: runRun,
}

var runConfigPath string

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(runConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		File:       cfg.Log.File,
		Level:      cfg.Log.Level,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
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
	log.Info("ledger restored",
		"account", acct.ID,
		"balance", acct.Balance,
		"currency", acct.Currency,
		"open_positions", len(l.Positions()))

	interval, err := cfg.Feed.ParseInterval()
	if err != nil {
		return err
	}

	marks := feed.NewStore()
	sim := feed.NewSimulator(feed.Config{
		Interval:   interval,
		Volatility: cfg.Feed.Volatility,
		Seed:       cfg.Feed.Seed,
		Initial:    cfg.Feed.Initial,
	}, marks, func(t feed.Tick) {
		l.MarkPrice(t.Symbol, t.Price)
		log.Debug("tick", "symbol", t.Symbol, "mark", t.Price, "equity", l.Equity())
	})

	sim.Start()
	defer sim.Stop()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("feed running", "interval", interval.String(), "symbols", len(cfg.Feed.Initial))
	<-ctx.Done()

	sim.Stop()

	acct = l.Account()
	log.Info("ledger stopped",
		"balance", acct.Balance,
		"equity", l.Equity(),
		"open_positions", len(l.Positions()))
	return nil
}
