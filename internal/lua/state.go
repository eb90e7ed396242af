package lua

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single script execution.
const DefaultTimeout = 5 * time.Second

// State wraps gopher-lua with a sandbox and bounded execution.
//
// gopher-lua's LState is not goroutine-safe. The mutex serializes calls made
// through State; direct use of LuaState bypasses it.
type State struct {
	L *lua.LState

	mu sync.Mutex

	timeout time.Duration
	stdout  io.Writer
	logger  *zap.Logger

	sandbox *Sandbox
	closed  bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithTimeout sets the execution timeout for DoString, DoFile and Call.
// Zero disables the timeout; the caller's context still applies.
func WithTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.timeout = d
	}
}

// WithStdout redirects the Lua print function.
func WithStdout(w io.Writer) StateOption {
	return func(s *State) {
		s.stdout = w
	}
}

// WithLogger sets the logger used for execution tracing.
func WithLogger(l *zap.Logger) StateOption {
	return func(s *State) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewState creates a new sandboxed Lua state.
func NewState(opts ...StateOption) (*State, error) {
	state := &State{
		timeout: DefaultTimeout,
		stdout:  os.Stdout,
		logger:  zap.NewNop(),
	}

	for _, opt := range opts {
		opt(state)
	}

	L := lua.NewState(lua.Options{
		SkipOpenLibs: true, // opened selectively below
	})
	state.L = L

	if err := openSafeLibraries(L); err != nil {
		L.Close()
		return nil, err
	}

	state.sandbox = NewSandbox(L, state.stdout)
	state.sandbox.Install()

	return state, nil
}

// openSafeLibraries opens only the Lua standard libraries scripts may use.
// io, os and debug are never opened.
func openSafeLibraries(L *lua.LState) error {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage},
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			return fmt.Errorf("opening lua library %s: %w", lib.name, err)
		}
	}
	return nil
}

// DoFile executes a Lua file, discarding any values it returns.
func (s *State) DoFile(ctx context.Context, path string) error {
	_, err := s.EvalFile(ctx, path)
	return err
}

// DoString executes a Lua chunk, discarding any values it returns.
func (s *State) DoString(ctx context.Context, code string) error {
	_, err := s.Eval(ctx, code)
	return err
}

// EvalFile executes a Lua file and returns the values the chunk returns.
func (s *State) EvalFile(ctx context.Context, path string) ([]lua.LValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStateClosed
	}

	s.logger.Debug("executing lua file", zap.String("path", path))
	return s.execute(ctx, func() (*lua.LFunction, error) {
		return s.L.LoadFile(path)
	})
}

// Eval executes a Lua chunk and returns the values the chunk returns.
func (s *State) Eval(ctx context.Context, code string) ([]lua.LValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStateClosed
	}

	s.logger.Debug("executing lua chunk", zap.Int("bytes", len(code)))
	return s.execute(ctx, func() (*lua.LFunction, error) {
		return s.L.LoadString(code)
	})
}

// execute compiles a chunk and calls it, collecting its results.
// Must be called with s.mu held.
func (s *State) execute(ctx context.Context, load func() (*lua.LFunction, error)) ([]lua.LValue, error) {
	fn, err := load()
	if err != nil {
		return nil, err
	}
	return s.callValue(ctx, fn)
}

// callValue calls fn with args and returns its results with the stack
// restored. Returns an empty slice (not nil) if fn returns no values.
// Must be called with s.mu held.
func (s *State) callValue(ctx context.Context, fn lua.LValue, args ...lua.LValue) ([]lua.LValue, error) {
	stackTop := s.L.GetTop()

	err := s.run(ctx, func() error {
		s.L.Push(fn)
		for _, arg := range args {
			s.L.Push(arg)
		}
		return s.L.PCall(len(args), lua.MultRet, nil)
	})
	if err != nil {
		s.L.SetTop(stackTop)
		return nil, err
	}

	nRet := s.L.GetTop() - stackTop
	if nRet <= 0 {
		return []lua.LValue{}, nil
	}
	results := make([]lua.LValue, nRet)
	for i := 0; i < nRet; i++ {
		results[i] = s.L.Get(stackTop + i + 1)
	}
	s.L.Pop(nRet)

	return results, nil
}

// run executes fn under the state's timeout with panic recovery.
// Must be called with s.mu held.
func (s *State) run(ctx context.Context, fn func() error) (err error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
		if err != nil {
			err = contextError(ctx, err)
			s.logger.Debug("lua execution failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		}
	}()

	return fn()
}

// contextError replaces the Lua error raised on context expiry with one that
// matches the context's cause.
func contextError(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrExecutionTimeout, err)
	case errors.Is(ctx.Err(), context.Canceled):
		return fmt.Errorf("%w: %v", context.Canceled, err)
	default:
		return err
	}
}

// Call calls a global Lua function with the given arguments.
// Returns an empty slice (not nil) if the function returns no values.
func (s *State) Call(ctx context.Context, fn string, args ...lua.LValue) ([]lua.LValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStateClosed
	}

	fnVal := s.L.GetGlobal(fn)
	if fnVal.Type() != lua.LTFunction {
		return nil, fmt.Errorf("%w: %q (got %s)", ErrNotFunction, fn, fnVal.Type())
	}

	return s.callValue(ctx, fnVal, args...)
}

// GetGlobal returns a global variable value.
func (s *State) GetGlobal(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return lua.LNil
	}

	return s.L.GetGlobal(name)
}

// SetGlobal sets a global variable.
func (s *State) SetGlobal(name string, value lua.LValue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.L.SetGlobal(name, value)
}

// Preload registers a module loader for require(name) and allows the name
// through the sandbox.
func (s *State) Preload(name string, loader lua.LGFunction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	s.L.PreloadModule(name, loader)
	s.sandbox.Allow(name)
	s.logger.Debug("preloaded lua module", zap.String("module", name))
	return nil
}

// Require loads a preloaded module and binds it to a global of the same
// name.
func (s *State) Require(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	results, err := s.callValue(ctx, s.L.GetGlobal("require"), lua.LString(name))
	if err != nil {
		return err
	}
	mod := lua.LValue(lua.LNil)
	if len(results) > 0 {
		mod = results[0]
	}
	s.L.SetGlobal(name, mod)
	return nil
}

// LuaState returns the underlying gopher-lua state.
//
// Direct access bypasses the mutex and the execution timeout.
func (s *State) LuaState() *lua.LState {
	return s.L
}

// Sandbox returns the state's sandbox.
func (s *State) Sandbox() *Sandbox {
	return s.sandbox
}

// IsClosed returns true if the state has been closed.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close releases all resources associated with the Lua state.
// After Close is called, all other methods will return ErrStateClosed.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.L.Close()
	s.closed = true
	return nil
}
