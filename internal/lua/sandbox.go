package lua

import (
	"fmt"
	"io"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// Sandbox restricts Lua execution to safe operations.
type Sandbox struct {
	L *lua.LState

	stdout io.Writer

	mu      sync.RWMutex
	allowed map[string]bool
}

// builtinModules are the library modules require may return.
var builtinModules = []string{"string", "table", "math"}

// NewSandbox creates a new sandbox for the Lua state. print writes to
// stdout; a nil stdout discards output.
func NewSandbox(L *lua.LState, stdout io.Writer) *Sandbox {
	if stdout == nil {
		stdout = io.Discard
	}
	allowed := make(map[string]bool, len(builtinModules))
	for _, name := range builtinModules {
		allowed[name] = true
	}
	return &Sandbox{
		L:       L,
		stdout:  stdout,
		allowed: allowed,
	}
}

// Install sets up the sandbox restrictions.
func (s *Sandbox) Install() {
	// These load code from disk or strings and would bypass require.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		s.L.SetGlobal(name, lua.LNil)
	}

	s.installPrint()
	s.installSafeRequire()
}

// Allow lets require load the named module.
func (s *Sandbox) Allow(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.allowed[name] = true
}

// IsAllowed reports whether require may load the named module.
func (s *Sandbox) IsAllowed(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.allowed[name]
}

// installPrint replaces print with a version writing to the sandbox output.
func (s *Sandbox) installPrint() {
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		top := L.GetTop()
		parts := make([]string, top)
		for i := 1; i <= top; i++ {
			parts[i-1] = L.ToStringMeta(L.Get(i)).String()
		}
		fmt.Fprintln(s.stdout, strings.Join(parts, "\t"))
		return 0
	}))
}

// installSafeRequire clears package.path and package.cpath and replaces
// require with a whitelist-based version. Only allowed built-ins and
// modules registered through Allow can be loaded.
func (s *Sandbox) installSafeRequire() {
	if pkgTable, ok := s.L.GetGlobal("package").(*lua.LTable); ok {
		s.L.SetField(pkgTable, "path", lua.LString(""))
		s.L.SetField(pkgTable, "cpath", lua.LString(""))
	}

	originalRequire := s.L.GetGlobal("require")

	s.L.SetGlobal("require", s.L.NewFunction(func(L *lua.LState) int {
		modName := L.CheckString(1)

		if !s.IsAllowed(modName) {
			// RaiseError does not return.
			L.RaiseError("module %q is not available", modName)
			return 0
		}

		L.Push(originalRequire)
		L.Push(lua.LString(modName))
		L.Call(1, 1)
		return 1
	}))
}
