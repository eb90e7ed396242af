package config

import (
	"time"

	"github.com/dshills/fizzbuzz/internal/fizzbuzz"
	"github.com/dshills/fizzbuzz/internal/lua"
)

// Config holds all fizzbuzz settings.
type Config struct {
	Logging  LoggingConfig
	Lua      LuaConfig
	Generate GenerateConfig
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string
	// Format is console or json.
	Format string
}

// LuaConfig configures the Lua host.
type LuaConfig struct {
	// Timeout bounds a script execution. Zero disables it.
	Timeout time.Duration
	// MaxN is the largest n the module accepts. Zero means no limit.
	MaxN int
	// Module is the require name of the fizzbuzz module.
	Module string
}

// GenerateConfig configures sequence generation.
type GenerateConfig struct {
	// Strategy names the generation algorithm.
	Strategy string
}

// DefaultMaxN caps sequences built for scripts.
const DefaultMaxN = 1 << 24

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Lua: LuaConfig{
			Timeout: lua.DefaultTimeout,
			MaxN:    DefaultMaxN,
			Module:  lua.DefaultModuleName,
		},
		Generate: GenerateConfig{
			Strategy: fizzbuzz.DefaultStrategy,
		},
	}
}

// Validate checks every setting and returns the first *ValidationError.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "logging.level", Message: "must be debug, info, warn or error", Value: c.Logging.Level}
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return &ValidationError{Path: "logging.format", Message: "must be console or json", Value: c.Logging.Format}
	}

	if c.Lua.Timeout < 0 {
		return &ValidationError{Path: "lua.timeout", Message: "must not be negative", Value: c.Lua.Timeout}
	}
	if c.Lua.MaxN < 0 {
		return &ValidationError{Path: "lua.max_n", Message: "must not be negative", Value: c.Lua.MaxN}
	}
	if c.Lua.Module == "" {
		return &ValidationError{Path: "lua.module", Message: "must not be empty", Value: c.Lua.Module}
	}

	if _, err := fizzbuzz.Lookup(c.Generate.Strategy); err != nil {
		return &ValidationError{Path: "generate.strategy", Message: "unknown strategy", Value: c.Generate.Strategy}
	}

	return nil
}
