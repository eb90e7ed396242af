package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	glua "github.com/yuin/gopher-lua"

	"github.com/dshills/fizzbuzz/internal/lua"
)

var runCmd = &cobra.Command{
	Use:   "run SCRIPT",
	Short: "Run a Lua script with the fizzbuzz module loaded",
	Long: `Executes SCRIPT in a sandboxed Lua state. The module is available via
require and as a global. Values returned by the script are printed one per
line: strings as-is, everything else as JSON.

Example script:
  local fb = require("fizzbuzz")
  return fb.fizz_buzz(15)`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScript(cmd, func(state *lua.State) ([]glua.LValue, error) {
			return state.EvalFile(cmd.Context(), args[0])
		})
	},
}

var evalCmd = &cobra.Command{
	Use:   "eval CODE",
	Short: "Evaluate a Lua chunk with the fizzbuzz module loaded",
	Long: `Evaluates CODE like run evaluates a script file.

Example:
  fizzbuzz eval 'return fizzbuzz.fizz_buzz_json(5)'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code := strings.Join(args, " ")
		return runScript(cmd, func(state *lua.State) ([]glua.LValue, error) {
			return state.Eval(cmd.Context(), code)
		})
	},
}

// openHost creates a Lua state configured from cfg, writing print output
// to out.
func openHost(cmd *cobra.Command, out io.Writer) (*lua.State, error) {
	module := lua.NewModule(
		lua.WithModuleName(cfg.Lua.Module),
		lua.WithMaxN(cfg.Lua.MaxN),
		lua.WithModuleLogger(logger.Named("module")),
	)
	return lua.Open(cmd.Context(), module, true,
		lua.WithTimeout(cfg.Lua.Timeout),
		lua.WithStdout(out),
		lua.WithLogger(logger.Named("lua")),
	)
}

func runScript(cmd *cobra.Command, exec func(*lua.State) ([]glua.LValue, error)) error {
	out := cmd.OutOrStdout()

	state, err := openHost(cmd, out)
	if err != nil {
		return fmt.Errorf("starting lua: %w", err)
	}
	defer state.Close()

	results, err := exec(state)
	if err != nil {
		return err
	}

	bridge := lua.NewBridge(state.LuaState())
	for _, v := range bridge.Results(results) {
		if err := printResult(out, v); err != nil {
			return err
		}
	}
	return nil
}

// printResult writes strings verbatim and any other value as JSON.
func printResult(w io.Writer, v any) error {
	if s, ok := v.(string); ok {
		_, err := fmt.Fprintln(w, s)
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
