package loader

import (
	"testing"
	"time"
)

func TestEnvLoader_Load(t *testing.T) {
	loader := NewEnvLoaderWithEnviron(DefaultEnvPrefix, []string{
		"FIZZBUZZ_LOG_LEVEL=debug",
		"FIZZBUZZ_STRATEGY=naive",
		"FIZZBUZZ_LUA_MAX_N=1",
		"FIZZBUZZ_LUA_TIMEOUT=250ms",
		"FIZZBUZZ_LUA_MODULE=fb",
		"HOME=/root",
		"FIZZBUZZ_=ignored",
		"FIZZBUZZ_SOLO=ignored",
	})

	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{"logging.level", "debug"},
		{"generate.strategy", "naive"},
		{"lua.max_n", int64(1)},
		{"lua.timeout", 250 * time.Millisecond},
		{"lua.module", "fb"},
	}
	for _, tt := range tests {
		if val, ok := GetByPath(config, tt.path); !ok || val != tt.want {
			t.Errorf("%s = %v (%T), want %v", tt.path, val, val, tt.want)
		}
	}

	if len(config) != 3 {
		t.Errorf("config has sections %v, want logging, generate, lua", config)
	}
}

func TestEnvLoader_AddMapping(t *testing.T) {
	loader := NewEnvLoaderWithEnviron(DefaultEnvPrefix, []string{"FIZZBUZZ_TIMEOUT=1s"})
	loader.AddMapping("FIZZBUZZ_TIMEOUT", "lua.timeout")

	config, _ := loader.Load()
	if val, ok := GetByPath(config, "lua.timeout"); !ok || val != time.Second {
		t.Errorf("lua.timeout = %v, want 1s", val)
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	loader := NewEnvLoader(DefaultEnvPrefix)

	tests := map[string]string{
		"FIZZBUZZ_LUA_MAX_N":         "lua.max_n",
		"FIZZBUZZ_LOGGING_LEVEL":     "logging.level",
		"FIZZBUZZ_GENERATE_STRATEGY": "generate.strategy",
		"FIZZBUZZ_SOLO":              "",
	}
	for env, want := range tests {
		if got := loader.envToPath(env); got != want {
			t.Errorf("envToPath(%q) = %q, want %q", env, got, want)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"", ""},
		{"42", int64(42)},
		{"0", int64(0)},
		{"true", true},
		{"off", false},
		{"5s", 5 * time.Second},
		{"info", "info"},
	}
	for _, tt := range tests {
		if got := parseValue(tt.input); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v", tt.input, got, got, tt.want)
		}
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"logging": map[string]any{"level": "info", "format": "console"},
		"lua":     map[string]any{"max_n": int64(10)},
	}
	src := map[string]any{
		"logging":  map[string]any{"level": "debug"},
		"generate": map[string]any{"strategy": "lcm"},
	}

	merged := DeepMerge(dst, src)

	tests := map[string]any{
		"logging.level":     "debug",
		"logging.format":    "console",
		"lua.max_n":         int64(10),
		"generate.strategy": "lcm",
	}
	for path, want := range tests {
		if val, ok := GetByPath(merged, path); !ok || val != want {
			t.Errorf("%s = %v, want %v", path, val, want)
		}
	}

	if got := DeepMerge(nil, nil); got == nil {
		t.Error("DeepMerge(nil, nil) returned nil")
	}
}
