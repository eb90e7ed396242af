package lua

import (
	"fmt"
	"sort"

	"github.com/dshills/fizzbuzz/internal/fizzbuzz"
	lua "github.com/yuin/gopher-lua"
)

// Bridge provides utilities for Go-Lua interoperability.
type Bridge struct {
	L *lua.LState
}

// NewBridge creates a new Bridge for the given Lua state.
func NewBridge(L *lua.LState) *Bridge {
	return &Bridge{L: L}
}

// SequenceTable renders seq as a Lua array: numbers become LNumber cells
// and categories become LString cells. The table is pre-sized to len(seq).
func SequenceTable(L *lua.LState, seq fizzbuzz.Sequence) *lua.LTable {
	t := L.CreateTable(len(seq), 0)
	for i, v := range seq {
		t.RawSetInt(i+1, ValueToLua(v))
	}
	return t
}

// ValueToLua converts a single classified value.
func ValueToLua(v fizzbuzz.Value) lua.LValue {
	if v.IsNumber() {
		return lua.LNumber(v.N)
	}
	return lua.LString(v.Kind.String())
}

// ToGoValue converts a Lua value to a Go value. Integral numbers become
// int64, tables become []any (sequential keys from 1, or empty) or
// map[string]any.
func (b *Bridge) ToGoValue(lv lua.LValue) any {
	return b.toGoValueWithVisited(lv, make(map[*lua.LTable]bool))
}

func (b *Bridge) toGoValueWithVisited(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil // circular reference
		}
		visited[v] = true
		out := b.tableToGo(v, visited)
		delete(visited, v)
		return out
	case *lua.LUserData:
		return v.Value
	default:
		// nil, functions, threads and channels have no Go form.
		return nil
	}
}

// tableToGo converts a Lua table to either a Go slice or map.
func (b *Bridge) tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	isArray := true
	maxN, count := 0, 0
	t.ForEach(func(k, _ lua.LValue) {
		count++
		if kn, ok := k.(lua.LNumber); ok {
			n := int(kn)
			if float64(n) == float64(kn) && n > 0 {
				maxN = max(maxN, n)
				return
			}
		}
		isArray = false
	})

	if isArray && count == maxN {
		arr := make([]any, maxN)
		for i := 1; i <= maxN; i++ {
			arr[i-1] = b.toGoValueWithVisited(t.RawGetInt(i), visited)
		}
		return arr
	}

	m := make(map[string]any, count)
	t.ForEach(func(k, v lua.LValue) {
		var key string
		switch kv := k.(type) {
		case lua.LString:
			key = string(kv)
		case lua.LNumber:
			key = fmt.Sprintf("%v", float64(kv))
		default:
			key = k.String()
		}
		m[key] = b.toGoValueWithVisited(v, visited)
	})
	return m
}

// ToLuaValue converts a Go value to a Lua value. Unsupported types become
// userdata.
func (b *Bridge) ToLuaValue(v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case lua.LValue:
		return val
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int32:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case fizzbuzz.Value:
		return ValueToLua(val)
	case fizzbuzz.Sequence:
		return SequenceTable(b.L, val)
	case []string:
		t := b.L.CreateTable(len(val), 0)
		for i, s := range val {
			t.RawSetInt(i+1, lua.LString(s))
		}
		return t
	case []any:
		t := b.L.CreateTable(len(val), 0)
		for i, e := range val {
			t.RawSetInt(i+1, b.ToLuaValue(e))
		}
		return t
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		t := b.L.CreateTable(0, len(val))
		for _, k := range keys {
			t.RawSetString(k, b.ToLuaValue(val[k]))
		}
		return t
	default:
		ud := b.L.NewUserData()
		ud.Value = v
		return ud
	}
}

// Results converts multiple Lua values, as returned by State.Call.
func (b *Bridge) Results(values []lua.LValue) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = b.ToGoValue(v)
	}
	return out
}
