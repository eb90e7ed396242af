package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/fizzbuzz/internal/fizzbuzz"
)

var (
	generateJSON     bool
	generateStrategy string
)

var generateCmd = &cobra.Command{
	Use:   "generate N",
	Short: "Print the FizzBuzz sequence for 1..N",
	Long: `Prints one value per line, or the whole sequence as a JSON array with
--json. N <= 0 produces no values ("[]" in JSON mode).

Example:
  fizzbuzz generate 15 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "Print a JSON array")
	generateCmd.Flags().StringVarP(&generateStrategy, "strategy", "s", "", "Generation strategy (default from config)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("N must be an integer: %q", args[0])
	}

	name := cfg.Generate.Strategy
	if cmd.Flags().Changed("strategy") {
		name = generateStrategy
	}
	strategy, err := fizzbuzz.Lookup(name)
	if err != nil {
		return err
	}

	logger.Debug("generating", zap.Int("n", n), zap.String("strategy", name))
	seq := strategy(n)

	out := cmd.OutOrStdout()
	if generateJSON {
		_, err = fmt.Fprintln(out, seq.JSON())
		return err
	}
	for _, v := range seq {
		if _, err := fmt.Fprintln(out, v); err != nil {
			return err
		}
	}
	return nil
}
