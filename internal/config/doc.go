// Package config provides the configuration for the fizzbuzz CLI and Lua
// host.
//
// Configuration is layered, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← FIZZBUZZ_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← TOML or YAML
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Layers 1-3 are handled by Load; flags are applied by the caller before
// Validate.
//
// A TOML file looks like:
//
//	[logging]
//	level = "debug"
//	format = "json"
//
//	[lua]
//	timeout = "2s"
//	max_n = 1000000
//	module = "fizzbuzz"
//
//	[generate]
//	strategy = "unrolled"
package config
