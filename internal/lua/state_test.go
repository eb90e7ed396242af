package lua

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	glua "github.com/yuin/gopher-lua"
)

func newTestState(t *testing.T, opts ...StateOption) *State {
	t.Helper()
	state, err := NewState(opts...)
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	t.Cleanup(func() { state.Close() })
	return state
}

func TestNewState(t *testing.T) {
	state := newTestState(t)

	if state.IsClosed() {
		t.Error("NewState() returned closed state")
	}
	if state.LuaState() == nil {
		t.Error("NewState() LuaState() is nil")
	}
	if state.Sandbox() == nil {
		t.Error("NewState() Sandbox() is nil")
	}
}

func TestStateDoString(t *testing.T) {
	state := newTestState(t)

	if err := state.DoString(context.Background(), `x = 1 + 1`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	v, ok := state.GetGlobal("x").(glua.LNumber)
	if !ok || v != 2 {
		t.Errorf("x = %v, want 2", state.GetGlobal("x"))
	}
}

func TestStateDoStringSyntaxError(t *testing.T) {
	state := newTestState(t)

	if err := state.DoString(context.Background(), `x = = 1`); err == nil {
		t.Error("DoString() with syntax error should fail")
	}
}

func TestStateDoFile(t *testing.T) {
	state := newTestState(t)

	path := filepath.Join(t.TempDir(), "script.lua")
	if err := os.WriteFile(path, []byte(`greeting = "hello"`), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := state.DoFile(context.Background(), path); err != nil {
		t.Fatalf("DoFile() error = %v", err)
	}
	if got := state.GetGlobal("greeting").String(); got != "hello" {
		t.Errorf("greeting = %q, want hello", got)
	}

	if err := state.DoFile(context.Background(), filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("DoFile() on missing file should fail")
	}
}

func TestStateTimeout(t *testing.T) {
	state := newTestState(t, WithTimeout(50*time.Millisecond))

	err := state.DoString(context.Background(), `while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Fatalf("DoString() error = %v, want ErrExecutionTimeout", err)
	}

	// The state stays usable after a timeout.
	if err := state.DoString(context.Background(), `y = 3`); err != nil {
		t.Errorf("DoString() after timeout error = %v", err)
	}
}

func TestStateCancel(t *testing.T) {
	state := newTestState(t, WithTimeout(0))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := state.DoString(ctx, `while true do end`)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("DoString() error = %v, want context.Canceled", err)
	}
}

func TestStateCall(t *testing.T) {
	state := newTestState(t)
	ctx := context.Background()

	if err := state.DoString(ctx, `
		function add(a, b) return a + b end
		function pair() return 1, "two" end
		function nothing() end
		notfn = 5
	`); err != nil {
		t.Fatal(err)
	}

	results, err := state.Call(ctx, "add", glua.LNumber(2), glua.LNumber(3))
	if err != nil {
		t.Fatalf("Call(add) error = %v", err)
	}
	if len(results) != 1 || results[0] != glua.LNumber(5) {
		t.Errorf("Call(add) = %v, want [5]", results)
	}

	results, err = state.Call(ctx, "pair")
	if err != nil {
		t.Fatalf("Call(pair) error = %v", err)
	}
	if len(results) != 2 || results[1] != glua.LString("two") {
		t.Errorf("Call(pair) = %v", results)
	}

	results, err = state.Call(ctx, "nothing")
	if err != nil || results == nil || len(results) != 0 {
		t.Errorf("Call(nothing) = %v, %v; want empty slice", results, err)
	}

	if _, err := state.Call(ctx, "notfn"); !errors.Is(err, ErrNotFunction) {
		t.Errorf("Call(notfn) error = %v, want ErrNotFunction", err)
	}
	if _, err := state.Call(ctx, "missing"); !errors.Is(err, ErrNotFunction) {
		t.Errorf("Call(missing) error = %v, want ErrNotFunction", err)
	}
}

func TestStateCallRuntimeError(t *testing.T) {
	state := newTestState(t)
	ctx := context.Background()

	if err := state.DoString(ctx, `function boom() error("kaboom") end`); err != nil {
		t.Fatal(err)
	}

	top := state.LuaState().GetTop()
	_, err := state.Call(ctx, "boom")
	if err == nil || !strings.Contains(err.Error(), "kaboom") {
		t.Errorf("Call(boom) error = %v, want kaboom", err)
	}
	if got := state.LuaState().GetTop(); got != top {
		t.Errorf("stack top = %d after failed call, want %d", got, top)
	}
}

func TestStatePrint(t *testing.T) {
	var out bytes.Buffer
	state := newTestState(t, WithStdout(&out))

	if err := state.DoString(context.Background(), `print("a", 1, true)`); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "a\t1\ttrue\n" {
		t.Errorf("print output = %q", got)
	}
}

func TestStateClosed(t *testing.T) {
	state, err := NewState()
	if err != nil {
		t.Fatal(err)
	}

	if err := state.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := state.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if !state.IsClosed() {
		t.Error("IsClosed() = false after Close")
	}

	ctx := context.Background()
	if err := state.DoString(ctx, `x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() error = %v, want ErrStateClosed", err)
	}
	if err := state.DoFile(ctx, "x.lua"); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoFile() error = %v, want ErrStateClosed", err)
	}
	if _, err := state.Call(ctx, "f"); !errors.Is(err, ErrStateClosed) {
		t.Errorf("Call() error = %v, want ErrStateClosed", err)
	}
	if err := state.Preload("m", func(*glua.LState) int { return 0 }); !errors.Is(err, ErrStateClosed) {
		t.Errorf("Preload() error = %v, want ErrStateClosed", err)
	}
	if v := state.GetGlobal("x"); v != glua.LNil {
		t.Errorf("GetGlobal() = %v, want nil", v)
	}
	state.SetGlobal("x", glua.LNumber(1))
}

func TestStateEval(t *testing.T) {
	state := newTestState(t)
	ctx := context.Background()

	results, err := state.Eval(ctx, `return 1, "two", {3}`)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if len(results) != 3 || results[0] != glua.LNumber(1) || results[1] != glua.LString("two") {
		t.Errorf("Eval() = %v", results)
	}
	if results[2].Type() != glua.LTTable {
		t.Errorf("third result type = %s, want table", results[2].Type())
	}

	results, err = state.Eval(ctx, `local x = 1`)
	if err != nil || results == nil || len(results) != 0 {
		t.Errorf("Eval() without return = %v, %v", results, err)
	}

	if got := state.LuaState().GetTop(); got != 0 {
		t.Errorf("stack top = %d after Eval, want 0", got)
	}
}

func TestStateEvalFile(t *testing.T) {
	state := newTestState(t)

	path := filepath.Join(t.TempDir(), "ret.lua")
	if err := os.WriteFile(path, []byte(`return "done"`), 0o644); err != nil {
		t.Fatal(err)
	}

	results, err := state.EvalFile(context.Background(), path)
	if err != nil {
		t.Fatalf("EvalFile() error = %v", err)
	}
	if len(results) != 1 || results[0] != glua.LString("done") {
		t.Errorf("EvalFile() = %v", results)
	}
}
