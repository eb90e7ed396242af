package lua

import (
	"context"
	"math"

	"github.com/dshills/fizzbuzz/internal/fizzbuzz"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// DefaultModuleName is the name scripts pass to require.
const DefaultModuleName = "fizzbuzz"

// Module exposes fizzbuzz to Lua scripts.
type Module struct {
	name   string
	maxN   int
	logger *zap.Logger
}

// ModuleOption configures a Module.
type ModuleOption func(*Module)

// WithModuleName sets the name the module is preloaded under.
func WithModuleName(name string) ModuleOption {
	return func(m *Module) {
		if name != "" {
			m.name = name
		}
	}
}

// WithMaxN rejects requests for sequences longer than n. Zero means no
// limit.
func WithMaxN(n int) ModuleOption {
	return func(m *Module) {
		m.maxN = n
	}
}

// WithModuleLogger sets the logger used to trace calls.
func WithModuleLogger(l *zap.Logger) ModuleOption {
	return func(m *Module) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewModule creates the fizzbuzz module.
func NewModule(opts ...ModuleOption) *Module {
	m := &Module{
		name:   DefaultModuleName,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the require name of the module.
func (m *Module) Name() string {
	return m.name
}

// Funcs returns the module's Lua functions.
func (m *Module) Funcs() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"fizz_buzz":      m.fizzBuzz,
		"fizz_buzz_json": m.fizzBuzzJSON,
		"classify":       m.classify,
		"strategies":     m.strategies,
	}
}

// Loader is the require loader for the module.
func (m *Module) Loader(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), m.Funcs())
	L.SetField(mod, "_NAME", lua.LString(m.name))
	L.Push(mod)
	return 1
}

// sequence reads n and the optional strategy name from the stack and
// builds the sequence. Invalid arguments raise a Lua error.
func (m *Module) sequence(L *lua.LState) fizzbuzz.Sequence {
	f := float64(L.CheckNumber(1))
	name := L.OptString(2, "")

	if m.maxN > 0 && f > float64(m.maxN) {
		L.ArgError(1, "n exceeds the configured maximum")
	}
	n := checkIntRange(L, 1, f)

	strategy, err := fizzbuzz.Lookup(name)
	if err != nil {
		L.ArgError(2, err.Error())
	}

	m.logger.Debug("generating sequence", zap.Int("n", n), zap.String("strategy", name))
	return strategy(n)
}

// checkIntRange truncates f to an int, raising an argument error for NaN
// and for values outside the int range.
func checkIntRange(L *lua.LState, idx int, f float64) int {
	if math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		L.ArgError(idx, "number has no integer representation")
	}
	return int(f)
}

// fizz_buzz(n [, strategy]) -> table
func (m *Module) fizzBuzz(L *lua.LState) int {
	L.Push(SequenceTable(L, m.sequence(L)))
	return 1
}

// fizz_buzz_json(n [, strategy]) -> string
func (m *Module) fizzBuzzJSON(L *lua.LState) int {
	L.Push(lua.LString(m.sequence(L).JSON()))
	return 1
}

// classify(n) -> number | string
func (m *Module) classify(L *lua.LState) int {
	n := checkIntRange(L, 1, float64(L.CheckNumber(1)))
	L.Push(ValueToLua(fizzbuzz.Classify(n)))
	return 1
}

// strategies() -> table
func (m *Module) strategies(L *lua.LState) int {
	names := fizzbuzz.StrategyNames()
	t := L.CreateTable(len(names), 0)
	for i, name := range names {
		t.RawSetInt(i+1, lua.LString(name))
	}
	L.Push(t)
	return 1
}

// Open creates a sandboxed state with module preloaded. When bindGlobal is
// set the module is also available as a global under its name.
func Open(ctx context.Context, module *Module, bindGlobal bool, opts ...StateOption) (*State, error) {
	if module == nil {
		module = NewModule()
	}

	state, err := NewState(opts...)
	if err != nil {
		return nil, err
	}

	if err := state.Preload(module.Name(), module.Loader); err != nil {
		state.Close()
		return nil, err
	}

	if bindGlobal {
		if err := state.Require(ctx, module.Name()); err != nil {
			state.Close()
			return nil, err
		}
	}

	return state, nil
}
