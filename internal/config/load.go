package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/dshills/fizzbuzz/internal/config/loader"
)

// Options controls where Load reads from.
type Options struct {
	// Path is the config file. Empty skips the file layer.
	Path string
	// FS reads Path. Defaults to the OS file system.
	FS loader.FileSystem
	// Environ supplies environment variables. Defaults to os.Environ().
	Environ []string
	// EnvPrefix defaults to loader.DefaultEnvPrefix.
	EnvPrefix string
}

// Load builds a Config from defaults, the config file and the environment,
// then validates it.
func Load(opts Options) (*Config, error) {
	cfg, err := load(opts)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadUnvalidated is Load without the final Validate, for callers that
// apply further overrides first.
func LoadUnvalidated(opts Options) (*Config, error) {
	return load(opts)
}

func load(opts Options) (*Config, error) {
	if opts.FS == nil {
		opts.FS = loader.DefaultFS()
	}
	if opts.Environ == nil {
		opts.Environ = os.Environ()
	}
	if opts.EnvPrefix == "" {
		opts.EnvPrefix = loader.DefaultEnvPrefix
	}

	var merged map[string]any

	if opts.Path != "" {
		fileCfg, err := loader.ForPath(opts.FS, opts.Path).Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, fileCfg)
	}

	envCfg, err := loader.NewEnvLoaderWithEnviron(opts.EnvPrefix, opts.Environ).Load()
	if err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}
	merged = loader.DeepMerge(merged, envCfg)

	cfg := Default()
	if err := cfg.apply(merged); err != nil {
		return nil, err
	}
	return cfg, nil
}

// apply copies recognized settings from a merged map onto c.
func (c *Config) apply(m map[string]any) error {
	setters := []struct {
		path string
		set  func(v any) error
	}{
		{"logging.level", stringSetter("logging.level", &c.Logging.Level)},
		{"logging.format", stringSetter("logging.format", &c.Logging.Format)},
		{"lua.timeout", durationSetter("lua.timeout", &c.Lua.Timeout)},
		{"lua.max_n", intSetter("lua.max_n", &c.Lua.MaxN)},
		{"lua.module", stringSetter("lua.module", &c.Lua.Module)},
		{"generate.strategy", stringSetter("generate.strategy", &c.Generate.Strategy)},
	}

	for _, s := range setters {
		v, ok := loader.GetByPath(m, s.path)
		if !ok {
			continue
		}
		if err := s.set(v); err != nil {
			return err
		}
	}
	return nil
}

func typeError(path string, v any, want string) error {
	return &ValidationError{Path: path, Message: "expected " + want, Value: v}
}

func stringSetter(path string, dst *string) func(any) error {
	return func(v any) error {
		s, ok := v.(string)
		if !ok {
			return typeError(path, v, "string")
		}
		*dst = s
		return nil
	}
}

func intSetter(path string, dst *int) func(any) error {
	return func(v any) error {
		switch n := v.(type) {
		case int:
			*dst = n
		case int64:
			*dst = int(n)
		case float64:
			if n != math.Trunc(n) {
				return typeError(path, v, "integer")
			}
			*dst = int(n)
		default:
			return typeError(path, v, "integer")
		}
		return nil
	}
}

// durationSetter accepts duration strings ("250ms"), parsed durations from
// the environment, and integer seconds.
func durationSetter(path string, dst *time.Duration) func(any) error {
	return func(v any) error {
		switch d := v.(type) {
		case time.Duration:
			*dst = d
		case string:
			parsed, err := time.ParseDuration(d)
			if err != nil {
				return typeError(path, v, "duration")
			}
			*dst = parsed
		case int:
			*dst = time.Duration(d) * time.Second
		case int64:
			*dst = time.Duration(d) * time.Second
		default:
			return typeError(path, v, "duration")
		}
		return nil
	}
}
