package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/troethe/connections/pkg/game"
	"github.com/troethe/connections/pkg/solver"
)

const (
	verdictWin  = "There is a winning strategy!"
	verdictNone = "There is no winning strategy."
)

var (
	cfgPath   string
	slotCount int
	groupSize int
	tries     int
	workers   int
	timeout   time.Duration
	noMemo    bool
	showPlan  bool
	verbose   bool

	rootCmd = &cobra.Command{
		Use:   "cnxcli",
		Short: "Decide whether a connections-style puzzle can always be won",
		Long: `cnxcli plays a connections-style puzzle against a fully adversarial
opponent: the items are split into equal hidden groups, every selection is
answered only with EXACT, NEAR or FAR, and each answer other than EXACT costs
one of the allowed misses. It reports whether some selection strategy is
guaranteed to identify every group before the misses run out, whichever
grouping turns out to be the true one.`,
		SilenceUsage:      true,
		PersistentPreRunE: applyConfig,
		RunE:              runSolve,
	}
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func init() {
	rootCmd.Flags().IntVarP(&slotCount, "slots", "s", 8, "Number of items in the puzzle")
	rootCmd.Flags().IntVarP(&groupSize, "group-size", "g", 4, "Number of items per hidden group")
	rootCmd.Flags().IntVarP(&tries, "tries", "t", 4, "Number of non-exact answers the player may survive")
	rootCmd.Flags().IntVarP(&workers, "workers", "w", 1, "Root selections searched concurrently (1 = sequential)")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "Abort the search after this long (0 = no limit)")
	rootCmd.Flags().BoolVar(&noMemo, "no-memo", false, "Disable verdict memoization")
	rootCmd.Flags().BoolVar(&showPlan, "plan", false, "Print a winning strategy when one exists")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "",
		"Path to a YAML config file (default "+defaultConfigPath+" if present)")
}

// applyConfig layers the optional config file under any explicitly set flags:
// flags beat file values, file values beat built-in defaults.
func applyConfig(cmd *cobra.Command, _ []string) error {
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if cfg.Slots != 0 && !flags.Changed("slots") {
		slotCount = cfg.Slots
	}
	if cfg.GroupSize != 0 && !flags.Changed("group-size") {
		groupSize = cfg.GroupSize
	}
	if cfg.Tries != nil && !flags.Changed("tries") {
		tries = *cfg.Tries
	}
	if cfg.Workers != 0 && !flags.Changed("workers") {
		workers = cfg.Workers
	}
	if cfg.Memo != nil && !flags.Changed("no-memo") {
		noMemo = !*cfg.Memo
	}
	if cfg.LogLevel != "" && !verbose {
		lvl, err := zerolog.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("parsing config log_level: %w", err)
		}
		zerolog.SetGlobalLevel(lvl)
	}
	return nil
}

func runSolve(cmd *cobra.Command, _ []string) error {
	runID := uuid.NewString()
	logger := log.With().Str("run_id", runID).Logger()

	params, err := game.NewParams(slotCount, groupSize)
	if err != nil {
		return err
	}
	logger.Debug().Int("groups", params.Groups()).Msg("configuration valid")

	ctx := cmd.Context()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	logger.Info().
		Int("slots", slotCount).
		Int("group_size", groupSize).
		Int("tries", tries).
		Int("workers", workers).
		Bool("memo", !noMemo).
		Bool("plan", showPlan).
		Msg("starting search")

	s := solver.New(solver.Options{Workers: workers, Memo: !noMemo})
	st := solver.NewState(params)

	if showPlan {
		plan, stats, err := s.FindPlan(ctx, st, tries)
		if err != nil {
			return err
		}
		logStats(logger, stats)
		if plan == nil {
			fmt.Println(verdictNone)
			return nil
		}
		fmt.Println(verdictWin)
		fmt.Print(plan.Render())
		return nil
	}

	win, stats, err := s.HasWinningStrategy(ctx, st, tries)
	if err != nil {
		return err
	}
	logStats(logger, stats)
	if win {
		fmt.Println(verdictWin)
	} else {
		fmt.Println(verdictNone)
	}
	return nil
}

func logStats(logger zerolog.Logger, stats solver.Stats) {
	logger.Info().
		Int64("nodes", stats.Nodes).
		Dur("duration", stats.Duration).
		Msg("search finished")
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
