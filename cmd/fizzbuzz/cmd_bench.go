package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/fizzbuzz/internal/fizzbuzz"
)

var (
	benchN          int
	benchIterations int
	benchStrategies []string
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time every generation strategy",
	Long: `Runs each strategy --iterations times with --n values and prints the
mean time per run. Restrict the run with --strategy (repeatable).`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List generation strategies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range fizzbuzz.StrategyNames() {
			marker := " "
			if name == cfg.Generate.Strategy {
				marker = "*"
			}
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	benchCmd.Flags().IntVar(&benchN, "n", 10_000, "Sequence length")
	benchCmd.Flags().IntVarP(&benchIterations, "iterations", "i", 1_000, "Runs per strategy")
	benchCmd.Flags().StringSliceVarP(&benchStrategies, "strategy", "s", nil, "Strategies to run (default all)")
}

// benchResult is the timing of one strategy.
type benchResult struct {
	Name  string
	Total time.Duration
	PerOp time.Duration
}

func runBench(cmd *cobra.Command, args []string) error {
	if benchIterations <= 0 {
		return fmt.Errorf("--iterations must be positive, got %d", benchIterations)
	}

	names := benchStrategies
	if len(names) == 0 {
		names = fizzbuzz.StrategyNames()
	}

	results := make([]benchResult, 0, len(names))
	for _, name := range names {
		strategy, err := fizzbuzz.Lookup(name)
		if err != nil {
			return err
		}
		results = append(results, timeStrategy(name, strategy, benchN, benchIterations))
		logger.Debug("benchmarked strategy", zap.String("strategy", name), zap.Duration("per_op", results[len(results)-1].PerOp))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "n=%d iterations=%d\n", benchN, benchIterations)
	fmt.Fprintf(out, "%-14s %14s %14s\n", "STRATEGY", "TOTAL", "PER RUN")
	for _, r := range results {
		fmt.Fprintf(out, "%-14s %14s %14s\n", r.Name, r.Total.Round(time.Microsecond), r.PerOp)
	}
	return nil
}

func timeStrategy(name string, strategy fizzbuzz.Strategy, n, iterations int) benchResult {
	start := time.Now()
	for i := 0; i < iterations; i++ {
		_ = strategy(n)
	}
	total := time.Since(start)
	return benchResult{
		Name:  name,
		Total: total,
		PerOp: total / time.Duration(iterations),
	}
}
