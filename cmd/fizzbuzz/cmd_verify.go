package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/fizzbuzz/internal/fizzbuzz"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [FILE]",
	Short: "Check a JSON FizzBuzz array",
	Long: `Reads a JSON array from FILE (or stdin) and checks that it is the
FizzBuzz sequence for 1..N, where N is its length.

Example:
  fizzbuzz generate 100 --json | fizzbuzz verify`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	seq, err := fizzbuzz.ParseJSON(string(data))
	if err != nil {
		return err
	}
	if err := fizzbuzz.Verify(seq); err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d values\n", len(seq))
	return err
}
