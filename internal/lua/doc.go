// Package lua hosts fizzbuzz inside an embedded Lua runtime.
//
// This package wraps the gopher-lua library to provide:
//   - Sandboxed Lua state management
//   - The fizzbuzz module, loadable with require
//   - Go-Lua type conversion
//   - Context-bounded script execution
//
// # State
//
// A State is a Lua runtime with only safe libraries opened:
//
//	state, err := lua.Open(ctx, lua.NewModule(), false, lua.WithTimeout(2*time.Second))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer state.Close()
//
//	err = state.DoString(ctx, `
//	    local fb = require("fizzbuzz")
//	    result = fb.fizz_buzz_json(15)
//	`)
//
// # Module
//
// The fizzbuzz module exposes:
//
//	fizz_buzz(n [, strategy])      -- array table of numbers and strings
//	fizz_buzz_json(n [, strategy]) -- compact JSON array string
//	classify(n)                    -- number or category string
//	strategies()                   -- array of strategy names
//
// Non-positive n yields an empty table and "[]".
//
// # Bridge
//
// The Bridge converts values between Go and Lua:
//
//	bridge := lua.NewBridge(state.LuaState())
//	goVal := bridge.ToGoValue(state.GetGlobal("result"))
package lua
